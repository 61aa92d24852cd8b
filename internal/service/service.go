package service

import (
	"context"
	"log/slog"

	"go-inventory-catalog/internal/apperr"
	"go-inventory-catalog/internal/event"
	"go-inventory-catalog/internal/model"
	"go-inventory-catalog/pkg/validator"

	"github.com/google/uuid"
)

// validateInput runs the struct validator over a request body.
func validateInput(req interface{}) error {
	if err := validator.Struct(req); err != nil {
		return apperr.Validation(validator.Describe(err)).Wrap(err)
	}
	return nil
}

// notify publishes after a successful commit; failures are only logged by the publisher.
func notify(ctx context.Context, pub event.Publisher, action string, data any, by model.Principal, message string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event.New(action, data, by, message))
}

func actorName(by model.Principal) string {
	if by.Name != "" {
		return by.Name
	}
	return "System"
}

// dedupe drops repeated IDs, keeping the first occurrence.
func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func logger(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}

func errorsIsNotFound(err error) bool {
	return apperr.IsKind(err, apperr.KindNotFound)
}
