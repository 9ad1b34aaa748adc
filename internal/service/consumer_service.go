package service

import (
	"context"
	"encoding/json"
	"log"

	"parts-assist-be/internal/constant"
	"parts-assist-be/internal/dto"
	"parts-assist-be/internal/repository/specification"
	"parts-assist-be/internal/repository/unitofwork"
	"parts-assist-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	id, err := uuid.Parse(payload.Id)
	if err != nil {
		log.Printf("[ERROR] Embed message carries invalid id %q: %v", payload.Id, err)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Processing %s embedding for id: %s", payload.DocType, payload.Id)

	switch payload.DocType {
	case dto.DocTypeProduct:
		cs.embedProduct(ctx, msg, id)
	case dto.DocTypeOrder:
		cs.embedOrder(ctx, msg, id)
	default:
		log.Printf("[ERROR] Unknown doc type %q in embed message", payload.DocType)
		msg.Ack()
	}
}

func (cs *consumerService) embedProduct(ctx context.Context, msg *message.Message, id uuid.UUID) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		log.Printf("[ERROR] Failed to get product %s: %v", id, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if product == nil {
		log.Printf("[ERROR] Product not found: %s", id)
		msg.Ack() // Row deleted? Ack.
		return
	}

	res, err := cs.embeddingProvider.Generate(product.Document, constant.EmbeddingTaskDocument)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for product %s: %v", id, err)
		msg.Nack()
		return
	}

	product.Embedding = pgvector.NewVector(res.Embedding.Values)
	if err := uow.ProductRepository().Update(ctx, product); err != nil {
		log.Printf("[ERROR] Failed to store product embedding %s: %v", id, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Product embedded: %s", id)
	msg.Ack()
}

func (cs *consumerService) embedOrder(ctx context.Context, msg *message.Message, id uuid.UUID) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		log.Printf("[ERROR] Failed to get order %s: %v", id, err)
		msg.Nack()
		return
	}
	if order == nil {
		log.Printf("[ERROR] Order not found: %s", id)
		msg.Ack()
		return
	}

	res, err := cs.embeddingProvider.Generate(order.Document, constant.EmbeddingTaskDocument)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for order %s: %v", id, err)
		msg.Nack()
		return
	}

	order.Embedding = pgvector.NewVector(res.Embedding.Values)
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		log.Printf("[ERROR] Failed to store order embedding %s: %v", id, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Order embedded: %s", id)
	msg.Ack()
}
