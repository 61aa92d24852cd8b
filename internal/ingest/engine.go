package ingest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"go-inventory-catalog/internal/apperr"
	"go-inventory-catalog/internal/model"

	"github.com/google/uuid"
)

type CategoryStore interface {
	FindByName(ctx context.Context, name string) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
}

type ProductStore interface {
	FindByName(ctx context.Context, name string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	AddCategory(ctx context.Context, productID, categoryID uuid.UUID) error
}

type InventoryStore interface {
	FindByProductID(ctx context.Context, productID uuid.UUID) (*model.Inventory, error)
	Create(ctx context.Context, inventory *model.Inventory) error
	Update(ctx context.Context, inventory *model.Inventory) error
}

// Stores is the set of stores one row writes to.
type Stores struct {
	Categories CategoryStore
	Products   ProductStore
	Inventory  InventoryStore
}

// ErrStoreUnavailable marks a row that could not reach the stores at all.
// It aborts the run instead of being reported against the row.
var ErrStoreUnavailable = errors.New("store unavailable")

// Atomic runs fn against stores bound to a single unit of work. When fn
// returns an error none of its writes may be kept.
type Atomic func(ctx context.Context, fn func(Stores) error) error

// Direct runs fn against s without any transaction.
func Direct(s Stores) Atomic {
	return func(ctx context.Context, fn func(Stores) error) error {
		return fn(s)
	}
}

// Resolution is the outcome of looking an entity up by its identity key:
// either the existing entity or one that was just created.
type Resolution[T any] struct {
	Entity  *T
	Created bool
}

// Effect records which entities a row created.
type Effect struct {
	CategoryCreated  bool
	ProductCreated   bool
	InventoryCreated bool
}

// RowResult is either an applied Effect or a skip with Err as the reason.
type RowResult struct {
	Row    int
	Effect Effect
	Err    error
}

// Reason is the caller-facing text for a skipped row.
func (r RowResult) Reason() string {
	if r.Err == nil {
		return ""
	}
	var e *apperr.Error
	if errors.As(r.Err, &e) {
		return e.Msg()
	}
	if errors.Is(r.Err, ErrMissingFields) || errors.Is(r.Err, ErrInvalidPrice) {
		return r.Err.Error()
	}
	return "Unexpected error while saving row"
}

type Engine struct {
	atomic Atomic
	log    *slog.Logger
}

func NewEngine(atomic Atomic, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{atomic: atomic, log: log}
}

// Run validates and applies records in file order, one unit of work per row.
// A failing row is recorded in the report and the run moves on. Run stops
// with an error, together with the partial report, when ctx is done or a row
// fails with ErrStoreUnavailable.
func (e *Engine) Run(ctx context.Context, records []Record, actor string) (*Report, error) {
	report := NewReport()
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("ingest cancelled at row %d: %w", RowNumber(i), err)
		}
		res := e.Apply(ctx, RowNumber(i), rec, actor)
		if errors.Is(res.Err, ErrStoreUnavailable) {
			return report, fmt.Errorf("ingest aborted at row %d: %w", res.Row, res.Err)
		}
		report.Add(res)
	}
	return report, nil
}

// Apply validates one record and reconciles it against the stores.
func (e *Engine) Apply(ctx context.Context, number int, rec Record, actor string) RowResult {
	row, err := Validate(number, rec)
	if err != nil {
		return RowResult{Row: number, Err: err}
	}

	var (
		effect Effect
		rowErr error
	)
	err = e.atomic(ctx, func(s Stores) error {
		effect = Effect{}
		rowErr = reconcile(ctx, s, row, actor, &effect)
		return rowErr
	})
	switch {
	case err == nil:
		return RowResult{Row: number, Effect: effect}
	case rowErr == nil || unreachable(err):
		// begin or commit failed, or the connection went away mid-row
		e.log.ErrorContext(ctx, "ingest store unavailable", slog.Int("row", number), slog.Any("error", err))
		return RowResult{Row: number, Err: fmt.Errorf("%w: %w", ErrStoreUnavailable, err)}
	case apperr.KindOf(err) == apperr.KindInternal:
		e.log.ErrorContext(ctx, "ingest row failed", slog.Int("row", number), slog.Any("error", err))
	default:
		e.log.DebugContext(ctx, "ingest row skipped", slog.Int("row", number), slog.Any("error", err))
	}
	return RowResult{Row: number, Err: err}
}

// reconcile resolves the row's category, product and inventory in that order.
func reconcile(ctx context.Context, s Stores, row Row, actor string, effect *Effect) error {
	category, err := resolveCategory(ctx, s.Categories, row, actor)
	if err != nil {
		return fmt.Errorf("category %q: %w", row.CategoryName, err)
	}
	effect.CategoryCreated = category.Created

	product, err := resolveProduct(ctx, s.Products, row, category.Entity, actor)
	if err != nil {
		return fmt.Errorf("product %q: %w", row.ProductName, err)
	}
	effect.ProductCreated = product.Created

	inventory, err := resolveInventory(ctx, s.Inventory, row, product.Entity, actor)
	if err != nil {
		return fmt.Errorf("inventory of %q: %w", row.ProductName, err)
	}
	effect.InventoryCreated = inventory.Created
	return nil
}

// unreachable reports whether err means the store could not be talked to,
// as opposed to the store rejecting the row.
func unreachable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}

func resolveCategory(ctx context.Context, store CategoryStore, row Row, actor string) (Resolution[model.Category], error) {
	existing, err := store.FindByName(ctx, row.CategoryName)
	if err == nil {
		return Resolution[model.Category]{Entity: existing}, nil
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		return Resolution[model.Category]{}, err
	}

	category := &model.Category{Name: row.CategoryName, Description: row.CategoryDescription}
	category.Stamp(actor)
	if err := store.Create(ctx, category); err != nil {
		return Resolution[model.Category]{}, err
	}
	return Resolution[model.Category]{Entity: category, Created: true}, nil
}

// resolveProduct never changes the price or stock of an existing product;
// it only adds the row's category when the product lacks it.
func resolveProduct(ctx context.Context, store ProductStore, row Row, category *model.Category, actor string) (Resolution[model.Product], error) {
	existing, err := store.FindByName(ctx, row.ProductName)
	if err == nil {
		if !existing.HasCategory(category.ID) {
			if err := store.AddCategory(ctx, existing.ID, category.ID); err != nil {
				return Resolution[model.Product]{}, err
			}
			existing.Categories = append(existing.Categories, *category)
		}
		return Resolution[model.Product]{Entity: existing}, nil
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		return Resolution[model.Product]{}, err
	}

	product := &model.Product{
		Name:        row.ProductName,
		Description: row.ProductDescription,
		Price:       row.Price.InexactFloat64(),
		Stock:       row.Available,
		Categories:  []model.Category{*category},
	}
	product.Stamp(actor)
	if err := store.Create(ctx, product); err != nil {
		return Resolution[model.Product]{}, err
	}
	return Resolution[model.Product]{Entity: product, Created: true}, nil
}

// resolveInventory overwrites available and sold of an existing record.
func resolveInventory(ctx context.Context, store InventoryStore, row Row, product *model.Product, actor string) (Resolution[model.Inventory], error) {
	existing, err := store.FindByProductID(ctx, product.ID)
	if err == nil {
		existing.Available = row.Available
		existing.Sold = row.Sold
		existing.Stamp(actor)
		if err := store.Update(ctx, existing); err != nil {
			return Resolution[model.Inventory]{}, err
		}
		return Resolution[model.Inventory]{Entity: existing}, nil
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		return Resolution[model.Inventory]{}, err
	}

	inventory := &model.Inventory{ProductID: product.ID, Available: row.Available, Sold: row.Sold}
	inventory.Stamp(actor)
	if err := store.Create(ctx, inventory); err != nil {
		return Resolution[model.Inventory]{}, err
	}
	return Resolution[model.Inventory]{Entity: inventory, Created: true}, nil
}
