package kafka

import (
	"context"

	"github.com/alimikegami/pharmacy-order-tracker/config"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// CreateKafkaProducer returns nil when no broker is configured; the service
// skips event publishing in that case.
func CreateKafkaProducer(config *config.Config) *kafka.Conn {
	if config.KafkaConfig.BrokerAddress == "" {
		return nil
	}

	conn, err := kafka.DialLeader(context.Background(), "tcp", config.KafkaConfig.BrokerAddress, config.KafkaConfig.BrokerTopic, config.KafkaConfig.BrokerPartition)
	if err != nil {
		log.Error().Err(err).Str("component", "CreateKafkaProducer").Msg("")
		return nil
	}

	return conn
}
