package notify

import "time"

// Config — подключение издателя к Kafka.
type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

func (c *Config) batchTimeout() time.Duration {
	if c.BatchTimeout <= 0 {
		return 50 * time.Millisecond
	}
	return c.BatchTimeout
}
