package ingest_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"go-inventory-catalog/internal/ingest"
	"go-inventory-catalog/internal/repository"
	"go-inventory-catalog/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Category Name,Category Description,Product Name,Product Description,Product Price,Available Units,Sold Units\n"

func newEngine(t *testing.T) (*ingest.Engine, *repository.Store) {
	t.Helper()
	e, store, _ := newEngineDB(t)
	return e, store
}

func newEngineDB(t *testing.T) (*ingest.Engine, *repository.Store, *sql.DB) {
	t.Helper()

	db, err := database.ConnectDB(database.MemoryConfig())
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store := repository.NewStore(db)
	atomic := func(ctx context.Context, fn func(ingest.Stores) error) error {
		return store.Transaction(ctx, func(tx *repository.Store) error {
			return fn(ingest.Stores{Categories: tx.Categories, Products: tx.Products, Inventory: tx.Inventory})
		})
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	return ingest.NewEngine(atomic, nil), store, sqlDB
}

func run(t *testing.T, e *ingest.Engine, csv string) *ingest.Report {
	t.Helper()
	records, err := ingest.Read(strings.NewReader(header + csv))
	require.NoError(t, err)
	report, err := e.Run(context.Background(), records, "tester")
	require.NoError(t, err)
	return report
}

func TestRunLastWriteWins(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	report := run(t, e,
		"Fruit,,Apple,,1.50,100,10\n"+
			"Fruit,,Apple,,1.50,80,30\n")

	assert.Equal(t, &ingest.Report{Categories: 1, Products: 1, Inventory: 1, Errors: []string{}}, report)

	categories, err := store.Categories.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Fruit", categories[0].Name)
	assert.Equal(t, "Fruit", categories[0].Description)

	apple, err := store.Products.FindByName(ctx, "Apple")
	require.NoError(t, err)
	assert.Equal(t, "Apple", apple.Description)
	assert.Equal(t, 1.5, apple.Price)
	assert.Equal(t, 100, apple.Stock)
	assert.Equal(t, "tester", apple.CreatedBy)

	inv, err := store.Inventory.FindByProductID(ctx, apple.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, inv.Available)
	assert.Equal(t, 30, inv.Sold)
}

func TestRunIsIdempotent(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()
	csv := "Fruit,Fresh fruit,Apple,Red apple,1.50,100,10\n" +
		"Vegetable,,Carrot,,0.40,50,5\n" +
		"Red,,Apple,,1.50,90,20\n"

	first := run(t, e, csv)
	assert.Equal(t, 3, first.Categories)
	assert.Equal(t, 2, first.Products)
	assert.Equal(t, 2, first.Inventory)
	assert.Empty(t, first.Errors)

	inv, err := store.Inventory.FindAll(ctx)
	require.NoError(t, err)
	for i := range inv {
		inv[i].Available = 1
		require.NoError(t, store.Inventory.Update(ctx, &inv[i]))
	}

	second := run(t, e, csv)
	assert.Equal(t, &ingest.Report{Errors: []string{}}, second)

	products, total, err := store.Products.FindPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, p := range products {
		if p.Name == "Apple" {
			assert.Len(t, p.Categories, 2)
		} else {
			assert.Len(t, p.Categories, 1)
		}
	}

	apple, err := store.Products.FindByName(ctx, "Apple")
	require.NoError(t, err)
	appleInv, err := store.Inventory.FindByProductID(ctx, apple.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, appleInv.Available, "inventory is reset to the file, not added")
	assert.Equal(t, 20, appleInv.Sold)
}

func TestRunAddsCategoryToExistingProduct(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	run(t, e, "Fruit,,Apple,,1.50,100,10\n")
	report := run(t, e, "Red,,Apple,,9.99,5,1\nFruit,,Apple,,9.99,5,1\n")

	assert.Equal(t, 1, report.Categories)
	assert.Equal(t, 0, report.Products)
	assert.Equal(t, 0, report.Inventory)

	apple, err := store.Products.FindByName(ctx, "Apple")
	require.NoError(t, err)
	names := []string{}
	for _, c := range apple.Categories {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Fruit", "Red"}, names)
	assert.Equal(t, 1.5, apple.Price, "existing price is not refreshed")
	assert.Equal(t, 100, apple.Stock, "existing stock is not refreshed")
}

func TestRunRecordsRowErrors(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	report := run(t, e,
		"Fruit,,Apple,,,100,10\n"+
			"Fruit,,Apple,,-5,100,10\n"+
			"Fruit,,Apple,,abc,100,10\n"+
			"Fruit,,Gold,,1000000,1,1\n"+
			"Fruit,,Pear,,2,x,-1\n")

	assert.Equal(t, []string{
		"Row 2: Missing required fields",
		"Row 3: Invalid price format",
		"Row 4: Invalid price format",
		"Row 5: price must be less than or equal to 999999.99",
	}, report.Errors)
	assert.Equal(t, 1, report.Categories)
	assert.Equal(t, 1, report.Products)
	assert.Equal(t, 1, report.Inventory)

	_, err := store.Products.FindByName(ctx, "Apple")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	_, err = store.Products.FindByName(ctx, "Gold")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	pear, err := store.Products.FindByName(ctx, "Pear")
	require.NoError(t, err)
	inv, err := store.Inventory.FindByProductID(ctx, pear.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Available)
	assert.Equal(t, 0, inv.Sold)
}

func TestRunRollsBackFailedRow(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	// The category would be new but the product fails validation, so the
	// whole row is discarded.
	report := run(t, e, "Metals,,Gold,,1000000,1,1\n")
	assert.Equal(t, 0, report.Categories)
	require.Len(t, report.Errors, 1)

	_, err := store.Categories.FindByName(ctx, "Metals")
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func TestRunLongNames(t *testing.T) {
	e, _ := newEngine(t)

	report := run(t, e, strings.Repeat("c", 101)+",,Apple,,1,1,1\n")
	assert.Equal(t, []string{"Row 2: name cannot exceed 100 characters"}, report.Errors)
}

func TestRunStopsWhenCancelled(t *testing.T) {
	e, _ := newEngine(t)
	records, err := ingest.Read(strings.NewReader(header + "Fruit,,Apple,,1,1,1\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := e.Run(ctx, records, "tester")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, &ingest.Report{Errors: []string{}}, report)
}

func TestRunFailsWhenStoreIsClosed(t *testing.T) {
	e, _, sqlDB := newEngineDB(t)
	records, err := ingest.Read(strings.NewReader(header +
		"Fruit,,Apple,,1,1,1\n" +
		"Fruit,,Pear,,2,2,2\n" +
		"Veg,,Leek,,3,3,3\n"))
	require.NoError(t, err)

	require.NoError(t, sqlDB.Close())

	report, err := e.Run(context.Background(), records, "tester")
	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "row 2")
	assert.Equal(t, &ingest.Report{Errors: []string{}}, report)
}

func TestDeleteAfterIngest(t *testing.T) {
	e, store := newEngine(t)
	ctx := context.Background()

	run(t, e, "Fruit,,Apple,,1,1,1\nRed,,Apple,,1,1,1\n")
	fruit, err := store.Categories.FindByName(ctx, "Fruit")
	require.NoError(t, err)
	require.NoError(t, store.Categories.Delete(ctx, fruit.ID))

	apple, err := store.Products.FindByName(ctx, "Apple")
	require.NoError(t, err)
	require.Len(t, apple.Categories, 1)
	assert.Equal(t, "Red", apple.Categories[0].Name)

	require.NoError(t, store.Products.Delete(ctx, apple.ID))
	inventory, err := store.Inventory.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, inventory)
}
