package kafka_client

import "testing"

func TestKafkaConfigTopic(t *testing.T) {
	if got := (KafkaConfig{}).topic(); got != KAFKA_TOPIC_ANALYSIS_EVENTS {
		t.Errorf("topic() = %q, want %q", got, KAFKA_TOPIC_ANALYSIS_EVENTS)
	}
	if got := (KafkaConfig{Topic: "custom"}).topic(); got != "custom" {
		t.Errorf("topic() = %q, want %q", got, "custom")
	}
}
