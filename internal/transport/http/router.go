package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/Gunvolt24/rushbuy/internal/ports"
	"github.com/Gunvolt24/rushbuy/pkg/httpx"
)

const maxPageSize = 100

type Handler struct {
	service         ports.CatalogService
	log             ports.Logger
	defaultPageSize int
}

func NewHandler(service ports.CatalogService, log ports.Logger, defaultPageSize int) *Handler {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	return &Handler{service: service, log: log, defaultPageSize: defaultPageSize}
}

// NewRouter — маршруты каталога. otelServiceName непустой — включает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/products", h.listProducts)
	r.GET("/products/:id", h.getProductByID)
	r.POST("/products", h.addProduct)
	r.PUT("/products/:id", h.updateProduct)
	r.DELETE("/products/:id", h.deleteProduct)
	r.GET("/categories", h.listCategories)

	return r
}

// listProducts — одна страница каталога: limit/cursor плюс необязательные
// q (текстовый поиск) и category.
func (h *Handler) listProducts(c *gin.Context) {
	limit, cursor := httpx.ParsePageParams(c, h.defaultPageSize, maxPageSize)

	req := domain.PageRequest{
		Cursor:         cursor,
		PageSize:       limit,
		TextFilter:     c.Query("q"),
		CategoryFilter: c.Query("category"),
	}

	page, err := h.service.ProductsPage(c.Request.Context(), req)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "ProductsPage failed cursor=%v err=%v", cursor, err)
		writeLoadError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) getProductByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "GetProduct failed id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) addProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	if err := h.service.AddProduct(c.Request.Context(), &product); err != nil {
		if errors.Is(err, domain.ErrStorage) {
			h.log.Errorf(c.Request.Context(), "AddProduct failed err=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	product.ID = id // id берётся из пути, а не из тела

	if err := h.service.UpdateProduct(c.Request.Context(), product); err != nil {
		if errors.Is(err, domain.ErrStorage) {
			h.log.Errorf(c.Request.Context(), "UpdateProduct failed id=%d err=%v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		h.log.Errorf(c.Request.Context(), "DeleteProduct failed id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		h.log.Errorf(c.Request.Context(), "Categories failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// writeLoadError — сбой постраничной загрузки: повторяемые ошибки уходят
// как 502 с флагом retryable, чтобы клиент показал кнопку повтора.
func writeLoadError(c *gin.Context, err error) {
	if domain.Retryable(err) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream unavailable", "retryable": true})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
