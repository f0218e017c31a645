package service

import (
	"encoding/json"
	"log"

	"lsp-search-service/internal/models"

	"github.com/IBM/sarama"
)

// BookingProducer отвечает за передачу выбранного предложения в поток
// подтверждения через Kafka
type BookingProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewBookingProducer создаёт новый продюсер бронирований
func NewBookingProducer(producer sarama.SyncProducer, topic string) *BookingProducer {
	return &BookingProducer{
		producer: producer,
		topic:    topic,
	}
}

// Initiate публикует событие бронирования: выбранное предложение вместе с
// черновиком заказа. Дальнейший сбор инструкций забора/доставки выполняет
// поток подтверждения на стороне потребителя топика.
func (bp *BookingProducer) Initiate(quote *models.Quote, draft models.DraftOrder) error {
	if quote == nil {
		return ErrQuoteRequired
	}

	booking := models.BookingRequest{
		Quote:      *quote,
		DraftOrder: draft,
	}

	data, err := json.Marshal(booking)
	if err != nil {
		return ErrSendMessage{Err: err}
	}

	return bp.PushToQueue(data)
}

// PushToQueue отправляет сообщение в Kafka с обработкой ошибок
func (bp *BookingProducer) PushToQueue(message []byte) error {
	if bp.producer == nil {
		return ErrProducerNotInitialized
	}
	if len(message) == 0 {
		return ErrEmptyMessage
	}
	if bp.topic == "" {
		return ErrTopicRequired
	}

	msg := &sarama.ProducerMessage{
		Topic: bp.topic,
		Value: sarama.ByteEncoder(message),
	}

	partition, offset, err := bp.producer.SendMessage(msg)
	if err != nil {
		log.Printf("Failed to send message: %v", err)
		return ErrSendMessage{Err: err}
	}

	log.Printf("Message delivered to topic=%s partition=%d offset=%d",
		bp.topic, partition, offset)
	return nil
}

// Ошибки
var (
	ErrProducerNotInitialized = &AppError{"producer is not initialized"}
	ErrEmptyMessage           = &AppError{"message is empty"}
	ErrTopicRequired          = &AppError{"topic is required"}
	ErrQuoteRequired          = &AppError{"quote is required"}
)

// AppError — пользовательская ошибка
type AppError struct {
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// ErrSendMessage — ошибка отправки
type ErrSendMessage struct {
	Err error
}

func (e ErrSendMessage) Error() string {
	return "failed to send booking: " + e.Err.Error()
}
