package main

import (
	"log"

	"github.com/alimikegami/pharmacy-order-tracker/config"
	"github.com/alimikegami/pharmacy-order-tracker/internal/app"
	postgresDriver "github.com/alimikegami/pharmacy-order-tracker/internal/infrastructure/database/postgres"
	kafkaDriver "github.com/alimikegami/pharmacy-order-tracker/internal/infrastructure/message-queue/kafka"
)

func main() {
	config := config.CreateNewConfig()

	db, err := postgresDriver.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	if err := postgresDriver.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialize the database schema: %v", err)
	}

	kafkaProducer := kafkaDriver.CreateKafkaProducer(config)

	server := app.App{
		DB:            db,
		Config:        config,
		KafkaProducer: kafkaProducer,
	}

	server.Start()
}
