package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/mrchongyl/zus-chatbot/internal/dto"
	"github.com/mrchongyl/zus-chatbot/internal/entity"
	"github.com/mrchongyl/zus-chatbot/internal/pkg/logger"
	"github.com/mrchongyl/zus-chatbot/internal/repository/contract"
	"github.com/mrchongyl/zus-chatbot/pkg/embedding"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	productRepo       contract.ProductRepository
	embeddingRepo     contract.ProductEmbeddingRepository
	embeddingProvider embedding.Provider
	log               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	productRepo contract.ProductRepository,
	embeddingRepo contract.ProductEmbeddingRepository,
	embeddingProvider embedding.Provider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		productRepo:       productRepo,
		embeddingRepo:     embeddingRepo,
		embeddingProvider: embeddingProvider,
		log:               log,
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
	var payload dto.PublishEmbedProductMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.log.Info("consumer", "processing product embedding", map[string]interface{}{"product_id": payload.ProductId.String()})

	product, err := cs.productRepo.FindById(ctx, payload.ProductId)
	if err != nil {
		cs.log.Error("consumer", "failed to load product", map[string]interface{}{"product_id": payload.ProductId.String(), "error": err.Error()})
		msg.Nack() // Nack for retriable errors
		return
	}
	if product == nil {
		// Product deleted between publish and consume. Ack.
		cs.log.Warn("consumer", "product not found", map[string]interface{}{"product_id": payload.ProductId.String()})
		msg.Ack()
		return
	}

	document := ProductDocument(product)

	vector, err := cs.embeddingProvider.Embed(ctx, document, embedding.TaskRetrievalDocument)
	if err != nil {
		cs.log.Error("consumer", "embedding failed", map[string]interface{}{"product_id": payload.ProductId.String(), "error": err.Error()})
		msg.Nack()
		return
	}

	// Replace swaps out any previous embedding atomically, so a redelivered
	// message never leaves duplicates behind.
	err = cs.embeddingRepo.Replace(ctx, &entity.ProductEmbedding{
		Document:       document,
		EmbeddingValue: vector,
		ProductId:      product.Id,
	})
	if err != nil {
		cs.log.Error("consumer", "failed to store embedding", map[string]interface{}{"product_id": payload.ProductId.String(), "error": err.Error()})
		msg.Nack()
		return
	}

	msg.Ack()
}

// ProductDocument renders one product as the searchable text that gets
// embedded and later surfaced to the summary prompt.
func ProductDocument(product *entity.Product) string {
	colours := "No colours specified"
	if len(product.Colours) > 0 {
		colours = strings.Join(product.Colours, ", ")
	}
	promotion := product.Promotion
	if promotion == "" {
		promotion = "N/A"
	}
	return fmt.Sprintf(`Product: %s
Category: %s
Price: %s
Colours: %s
Promotion: %s

%s`,
		product.Name,
		product.Category,
		product.Price,
		colours,
		promotion,
		product.Description,
	)
}
