package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type PostgreSQLConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUsername string
	DBPassword string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

type TracingConfig struct {
	CollectorHost string
}

type Config struct {
	Environment      string
	ServicePort      string
	MetricsPort      string
	PostgreSQLConfig PostgreSQLConfig
	JWTSecret        string
	KafkaConfig      KafkaConfig
	SMTPConfig       SMTPConfig
	TracingConfig    TracingConfig
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServicePort: getEnv("SERVICE_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   os.Getenv("BROKER_TOPIC"),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("TRACING_COLLECTOR_HOST"),
		},
	}

	brokerPartition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	if err == nil {
		conf.KafkaConfig.BrokerPartition = brokerPartition
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err == nil {
		conf.SMTPConfig.Port = smtpPort
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
