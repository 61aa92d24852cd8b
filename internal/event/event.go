// Package event carries catalog change notifications to the websocket hub
// and, when configured, to RabbitMQ.
package event

import (
	"context"
	"time"

	"go-inventory-catalog/internal/model"
)

const TypeCatalogUpdate = "catalog_update"

// Actions
const (
	CategoryCreated  = "category_created"
	CategoryUpdated  = "category_updated"
	CategoryDeleted  = "category_deleted"
	ProductCreated   = "product_created"
	ProductUpdated   = "product_updated"
	ProductDeleted   = "product_deleted"
	InventoryCreated = "inventory_created"
	InventoryUpdated = "inventory_updated"
	InventoryDeleted = "inventory_deleted"
	CSVImported      = "csv_imported"
)

type Event struct {
	Type    string           `json:"type"`
	Action  string           `json:"action"`
	Data    any              `json:"data,omitempty"`
	User    *model.Principal `json:"user,omitempty"`
	Message string           `json:"message"`
	At      time.Time        `json:"at"`
}

func New(action string, data any, user model.Principal, message string) Event {
	return Event{
		Type:    TypeCatalogUpdate,
		Action:  action,
		Data:    data,
		User:    &user,
		Message: message,
		At:      time.Now().UTC(),
	}
}

// Publisher delivers events on a best-effort basis. Publish must not block
// on slow consumers and never reports failure to the caller.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Multi fans an event out to every publisher.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) {
	for _, p := range m {
		p.Publish(ctx, e)
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
