package main

import (
	"admission-portal/config"
	"admission-portal/db"
	"admission-portal/http"
	"admission-portal/logger"
	"admission-portal/services"
	"log"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize Kafka producer and consumer (non-fatal)
	services.InitProducer()
	if err := services.InitConsumer(); err != nil {
		logger.Warn("Error initializing Kafka consumer: %v", err)
	}
	services.StartConsumer()

	// Initialize database
	if err := db.InitDB(); err != nil {
		logger.Fatal("Error initializing database: %v", err)
	}

	// Setup routes
	http.SetupRoutes()

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting on :8080")
		log.Fatal(netHttp.ListenAndServe(":8080", nil))
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info("Shutdown signal received, closing Kafka producer and consumer...")

	if err := services.StopConsumer(); err != nil {
		logger.Error("Error stopping Kafka consumer: %v", err)
	}
	if err := services.Close(); err != nil {
		logger.Error("Error closing Kafka producer: %v", err)
	}

	logger.Info("Server shutdown complete")
}
