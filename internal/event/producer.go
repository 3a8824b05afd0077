package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/desistore/storefront/internal/domain"
	pkgkafka "github.com/desistore/storefront/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicOrderPlaced    = "storefront.order.placed"
	TopicCartUpdated    = "storefront.cart.updated"
	TopicProductUpdated = "storefront.product.updated"
)

// Aggregate type constants.
const (
	AggregateTypeOrder   = "order"
	AggregateTypeCart    = "cart"
	AggregateTypeProduct = "product"
)

// Source identifier for events originating from the storefront service.
const SourceStorefront = "storefront"

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID       int64  `json:"order_id"`
	UserID        string `json:"user_id"`
	Total         int64  `json:"total"`
	ItemCount     int64  `json:"item_count"`
	PaymentMethod string `json:"payment_method"`
	Country       string `json:"country"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	UserID    string `json:"user_id"`
	Action    string `json:"action"`
	ProductID int64  `json:"product_id,omitempty"`
	Quantity  int64  `json:"quantity,omitempty"`
}

// ProductUpdatedData is the payload for a product.updated event.
type ProductUpdatedData struct {
	ProductID int64  `json:"product_id"`
	Action    string `json:"action"`
	ActorID   string `json:"actor_id"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, orderID int64, userID string, cart domain.PricedCart, method domain.PaymentMethod, country string) error {
	data := OrderPlacedData{
		OrderID:       orderID,
		UserID:        userID,
		Total:         cart.Total,
		ItemCount:     cart.ItemCount(),
		PaymentMethod: string(method),
		Country:       country,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, userID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.Int64("order_id", orderID),
		slog.String("user_id", userID),
	)

	return nil
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, userID, action string, productID, quantity int64) error {
	data := CartUpdatedData{
		UserID:    userID,
		Action:    action,
		ProductID: productID,
		Quantity:  quantity,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, userID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("user_id", userID),
		slog.String("action", action),
	)

	return nil
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, productID int64, action, actorID string) error {
	data := ProductUpdatedData{
		ProductID: productID,
		Action:    action,
		ActorID:   actorID,
	}

	event, err := pkgkafka.NewEvent(TopicProductUpdated, fmt.Sprintf("%d", productID), AggregateTypeProduct, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create product.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductUpdated, event); err != nil {
		return fmt.Errorf("publish product.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.updated event",
		slog.Int64("product_id", productID),
		slog.String("action", action),
	)

	return nil
}
