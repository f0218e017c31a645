package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lsp-search-service/internal/models"

	"github.com/IBM/sarama"
)

// Наблюдатель топика бронирований: показывает события, которые забирает
// поток подтверждения.
func main() {
	brokers := []string{"localhost:9092"}
	topic := "bookings.initiated"

	config := sarama.NewConfig()
	config.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumer(brokers, config)
	if err != nil {
		log.Fatalf("Failed to start consumer: %v", err)
	}
	defer consumer.Close()

	partitionConsumer, err := consumer.ConsumePartition(topic, 0, sarama.OffsetOldest)
	if err != nil {
		log.Fatalf("Failed to start partition consumer: %v", err)
	}
	defer partitionConsumer.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Watching booking topic:", topic)
	fmt.Print("Press Ctrl+C to stop.\n")

consumeLoop:
	for {
		select {
		case msg := <-partitionConsumer.Messages():
			var booking models.BookingRequest
			if err := json.Unmarshal(msg.Value, &booking); err != nil {
				log.Printf("Skipping unreadable booking at offset %d: %v", msg.Offset, err)
				continue
			}
			fmt.Printf("[offset %d] provider=%s total=%.2f draft_order=%s\n",
				msg.Offset,
				booking.Quote.Name,
				booking.Quote.TotalCharges(),
				booking.DraftOrder.ID)

		case err := <-partitionConsumer.Errors():
			if err != nil {
				log.Printf("Consumer error: %v", err)
			}

		case <-signals:
			fmt.Println("\nShutting down booking watcher")
			break consumeLoop
		}
	}
}
