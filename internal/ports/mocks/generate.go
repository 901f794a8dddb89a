//go:generate mockgen -source=../product_store.go     -destination=./mock_product_store.go     -package=mocks
//go:generate mockgen -source=../catalog_client.go    -destination=./mock_catalog_client.go    -package=mocks
//go:generate mockgen -source=../product_validator.go -destination=./mock_product_validator.go -package=mocks
//go:generate mockgen -source=../notifier.go          -destination=./mock_notifier.go          -package=mocks
//go:generate mockgen -source=../logger.go            -destination=./mock_logger.go            -package=mocks
//go:generate mockgen -source=../catalog_service.go   -destination=./mock_catalog_service.go   -package=mocks

package mocks
