package services

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"
	"time"

	"admission-portal/config"
	"admission-portal/logger"
	"admission-portal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

var (
	producer      *kafka.Writer
	producerMutex sync.Mutex
	isConnected   bool
)

// InitProducer initializes a Kafka writer using brokers from the config
func InitProducer() {
	producerMutex.Lock()
	defer producerMutex.Unlock()

	if config.AppConfig.KafkaBrokers == "" {
		logger.Info("Kafka is disabled (KAFKA_BROKERS is empty)")
		return
	}

	brokers := strings.Split(config.AppConfig.KafkaBrokers, ",")

	var validBrokers []string
	for _, b := range brokers {
		if b := strings.TrimSpace(b); b != "" {
			validBrokers = append(validBrokers, b)
		}
	}

	if len(validBrokers) == 0 {
		logger.Warn("No valid Kafka brokers configured")
		return
	}

	producer = &kafka.Writer{
		Addr:         kafka.TCP(validBrokers...),
		Balancer:     &kafka.LeastBytes{},
		Async:        false,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
	}

	logger.Info("Kafka producer initialized. Brokers=%v", validBrokers)
	isConnected = true
}

// Publish marshals value to JSON and publishes to the given topic with key.
// Uses exponential backoff retry logic (3 attempts). Best-effort: when Kafka
// is disabled the publish is skipped, never failed.
func Publish(topic, key string, value interface{}) error {
	producerMutex.Lock()
	if producer == nil && config.AppConfig.KafkaBrokers != "" {
		producerMutex.Unlock()
		InitProducer()
		producerMutex.Lock()
	}
	defer producerMutex.Unlock()

	if producer == nil || config.AppConfig.KafkaBrokers == "" {
		logger.Warn("Kafka producer not initialized, skipping publish to topic: %s", topic)
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logger.Error("Error marshaling Kafka message: %v", err)
		return err
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}

	// Retry with exponential backoff
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := producer.WriteMessages(ctx, msg)
		cancel()

		if err == nil {
			isConnected = true
			return nil
		}

		lastErr = err
		if attempt < 2 {
			backoffTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			logger.Warn("Kafka publish attempt %d/%d failed, retrying in %v: %v", attempt+1, 3, backoffTime, err)
			time.Sleep(backoffTime)
		} else {
			logger.Error("Kafka publish failed after 3 attempts: %v", err)
		}
		isConnected = false
	}

	return lastErr
}

// IsConnected returns true if Kafka producer is connected and ready
func IsConnected() bool {
	producerMutex.Lock()
	defer producerMutex.Unlock()
	return isConnected && producer != nil
}

// Close gracefully closes the Kafka producer
func Close() error {
	producerMutex.Lock()
	defer producerMutex.Unlock()

	if producer != nil {
		return producer.Close()
	}
	return nil
}

// PublishOrderCreated publishes a payment.initiated event (best-effort,
// fire-and-forget).
func PublishOrderCreated(rollNumber string, order *models.OrderIntent) {
	go func() {
		evt := map[string]interface{}{
			"event_id":    uuid.NewString(),
			"event":       "payment.initiated",
			"roll_number": rollNumber,
			"order_id":    order.ID,
			"amount":      order.Amount,
			"currency":    order.Currency,
			"status":      "PENDING",
			"ts":          time.Now().UTC().Format(time.RFC3339),
		}
		if err := Publish(config.AppConfig.KafkaTopic, "roll-"+rollNumber, evt); err != nil {
			logger.Warn("Failed to publish payment.initiated event: %v", err)
		}
	}()
}

// PublishPaymentSettled publishes a payment.settled event carrying the ledger
// entry and the student's email so the consumer can dispatch the receipt.
func PublishPaymentSettled(entry models.LedgerEntry, email string) {
	go func() {
		evt := map[string]interface{}{
			"event_id":     uuid.NewString(),
			"event":        "payment.settled",
			"roll_number":  entry.RollNumber,
			"student_name": entry.StudentName,
			"email":        email,
			"order_id":     entry.OrderID,
			"payment_id":   entry.PaymentID,
			"amount":       entry.Amount,
			"currency":     entry.Currency,
			"course":       entry.Course,
			"status":       "PAID",
			"ts":           time.Now().UTC().Format(time.RFC3339),
		}
		if err := Publish(config.AppConfig.KafkaTopic, "roll-"+entry.RollNumber, evt); err != nil {
			logger.Warn("Failed to publish payment.settled event: %v", err)
		}
	}()
}
