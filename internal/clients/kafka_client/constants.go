package kafka_client

import "time"

const (
	KAFKA_TOPIC_ANALYSIS_EVENTS = "analysis-events" // one record per completed analysis
)

const (
	// Undelivered events are dropped after this long.
	DELIVERY_TIMEOUT = 10 * time.Second
	FLUSH_TIMEOUT_MS = 5000
)
