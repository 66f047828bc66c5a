package services

import (
	"admission-portal/config"
	"admission-portal/logger"
	"admission-portal/models"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	consumer        *kafka.Reader
	consumerMutex   sync.Mutex
	consumerRunning bool
	stopConsumer    chan bool
)

// InitConsumer initializes a Kafka reader on the payments topic. The consumer
// dispatches receipt emails after settlements, off the request path.
func InitConsumer() error {
	consumerMutex.Lock()
	defer consumerMutex.Unlock()

	if config.AppConfig.KafkaBrokers == "" {
		logger.Info("Kafka consumer is disabled (KAFKA_BROKERS is empty)")
		return nil
	}

	brokers := strings.Split(config.AppConfig.KafkaBrokers, ",")

	var validBrokers []string
	for _, b := range brokers {
		if b := strings.TrimSpace(b); b != "" {
			validBrokers = append(validBrokers, b)
		}
	}

	if len(validBrokers) == 0 {
		logger.Warn("No valid Kafka brokers configured for consumer")
		return nil
	}

	consumer = kafka.NewReader(kafka.ReaderConfig{
		Brokers:        validBrokers,
		Topic:          config.AppConfig.KafkaTopic,
		GroupID:        "admission-portal-consumer-group",
		StartOffset:    -1,
		CommitInterval: time.Second,
		MaxBytes:       10e6,
		SessionTimeout: 20 * time.Second,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
		QueueCapacity:  100,
	})

	stopConsumer = make(chan bool)
	logger.Info("Kafka consumer initialized. Brokers=%v, Topic=%s", validBrokers, config.AppConfig.KafkaTopic)
	return nil
}

// StartConsumer starts consuming messages in a separate goroutine
// This runs continuously until StopConsumer() is called
func StartConsumer() {
	consumerMutex.Lock()
	if consumer == nil {
		consumerMutex.Unlock()
		logger.Warn("Consumer not initialized, cannot start")
		return
	}
	if consumerRunning {
		consumerMutex.Unlock()
		logger.Warn("Consumer already running")
		return
	}
	consumerRunning = true
	consumerMutex.Unlock()

	go consumeMessages()
	logger.Info("Kafka consumer started")
}

// StopConsumer signals the consume loop to exit and closes the reader.
func StopConsumer() error {
	consumerMutex.Lock()
	defer consumerMutex.Unlock()

	if !consumerRunning {
		return nil
	}

	close(stopConsumer)
	if consumer != nil {
		return consumer.Close()
	}
	return nil
}

func consumeMessages() {
	defer func() {
		consumerMutex.Lock()
		consumerRunning = false
		consumerMutex.Unlock()
	}()

	// Allow time for broker to stabilize
	time.Sleep(2 * time.Second)

	for {
		select {
		case <-stopConsumer:
			logger.Info("Consumer stop signal received")
			return
		default:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			msg, err := consumer.ReadMessage(ctx)
			cancel()

			if err != nil {
				if err == context.DeadlineExceeded || err.Error() == "EOF" {
					continue
				}
				if strings.Contains(err.Error(), "Group Coordinator Not Available") {
					time.Sleep(500 * time.Millisecond)
					continue
				}
				time.Sleep(1 * time.Second)
				continue
			}

			handleKafkaMessage(msg)
		}
	}
}

// handleKafkaMessage routes a payments-topic message to its handler.
func handleKafkaMessage(msg kafka.Message) {
	var eventData map[string]interface{}
	if err := json.Unmarshal(msg.Value, &eventData); err != nil {
		logger.Error("Error unmarshaling message: %v", err)
		return
	}

	eventType, ok := eventData["event"].(string)
	if !ok {
		logger.Warn("Message does not contain event type")
		return
	}

	switch eventType {
	case "payment.settled":
		if err := handlePaymentSettled(eventData); err != nil {
			logger.Error("Error handling payment.settled: %v", err)
		}
	case "payment.initiated":
		// Nothing to dispatch; logged for audit visibility.
		logger.Info("Payment initiated for order %v", eventData["order_id"])
	default:
		logger.Warn("Unknown event type: %s", eventType)
	}
}

// handlePaymentSettled rebuilds the ledger entry from the event and sends the
// receipt email.
func handlePaymentSettled(eventData map[string]interface{}) error {
	entry := models.LedgerEntry{
		RollNumber:  stringField(eventData, "roll_number"),
		StudentName: stringField(eventData, "student_name"),
		OrderID:     stringField(eventData, "order_id"),
		PaymentID:   stringField(eventData, "payment_id"),
		Currency:    stringField(eventData, "currency"),
		Course:      stringField(eventData, "course"),
		PaymentDate: time.Now().UTC(),
	}
	if amount, ok := eventData["amount"].(float64); ok {
		entry.Amount = amount
	}
	if ts, ok := eventData["ts"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.PaymentDate = parsed
		}
	}

	return SendReceiptEmail(entry, stringField(eventData, "email"))
}

func stringField(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}
