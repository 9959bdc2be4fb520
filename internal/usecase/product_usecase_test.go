package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campustrade/internal/domain/entity"
	"campustrade/pkg/errors"
)

func newProductFixture(t *testing.T) (*ProductUseCase, *memStore) {
	t.Helper()

	store := newMemStore()
	uc := NewProductUseCase(
		&fakeProductRepo{s: store},
		&fakeRequestRepo{s: store},
		&fakeUserRepo{s: store},
	)

	store.users["seller-1"] = &entity.User{ID: "seller-1", Status: entity.UserStatusActive}
	store.users["seller-2"] = &entity.User{ID: "seller-2", Status: entity.UserStatusActive}

	return uc, store
}

func saleInput(price float64) ProductInput {
	return ProductInput{
		CategoryID:  "books",
		Title:       "Linear Algebra Done Right",
		Description: "Third edition, lightly annotated",
		Price:       &price,
		TradeOption: entity.TradeOptionSale,
		Condition:   "good",
		Location:    "North Campus",
	}
}

func TestCreateProduct(t *testing.T) {
	uc, _ := newProductFixture(t)

	product, err := uc.CreateProduct(context.Background(), "seller-1", saleInput(120000))
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, entity.ProductStatusAvailable, product.Status)
	assert.Equal(t, "seller-1", product.SellerID)
}

func TestCreateProductValidation(t *testing.T) {
	uc, _ := newProductFixture(t)

	_, err := uc.CreateProduct(context.Background(), "seller-1", ProductInput{TradeOption: "auction"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = uc.CreateProduct(context.Background(), "seller-1", ProductInput{TradeOption: entity.TradeOptionSale})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	// Trade-only listings do not need a price.
	_, err = uc.CreateProduct(context.Background(), "seller-1", ProductInput{
		Title:       "Graphing calculator",
		TradeOption: entity.TradeOptionTrade,
	})
	assert.NoError(t, err)
}

func TestCreateProductDeactivatedSeller(t *testing.T) {
	uc, store := newProductFixture(t)
	store.users["seller-1"].Status = entity.UserStatusDeactivated

	_, err := uc.CreateProduct(context.Background(), "seller-1", saleInput(120000))
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestUpdateProductBlockedUnlessAvailable(t *testing.T) {
	uc, store := newProductFixture(t)

	product, err := uc.CreateProduct(context.Background(), "seller-1", saleInput(120000))
	require.NoError(t, err)

	_, err = uc.UpdateProduct(context.Background(), product.ID, "seller-2", saleInput(110000))
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	store.mu.Lock()
	store.products[product.ID].Status = entity.ProductStatusReserved
	store.mu.Unlock()

	_, err = uc.UpdateProduct(context.Background(), product.ID, "seller-1", saleInput(110000))
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_STATE"))
	assert.Contains(t, err.Error(), entity.ProductStatusReserved)

	store.mu.Lock()
	store.products[product.ID].Status = entity.ProductStatusAvailable
	store.mu.Unlock()

	updated, err := uc.UpdateProduct(context.Background(), product.ID, "seller-1", saleInput(110000))
	require.NoError(t, err)
	assert.Equal(t, 110000.0, *updated.Price)
}

func TestRemoveProduct(t *testing.T) {
	uc, store := newProductFixture(t)

	product, err := uc.CreateProduct(context.Background(), "seller-1", saleInput(120000))
	require.NoError(t, err)

	err = uc.RemoveProduct(context.Background(), product.ID, "seller-1")
	require.NoError(t, err)

	store.mu.Lock()
	status := store.products[product.ID].Status
	store.mu.Unlock()
	assert.Equal(t, entity.ProductStatusRemoved, status)

	// Terminal statuses cannot be removed again.
	err = uc.RemoveProduct(context.Background(), product.ID, "seller-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_STATE"))
}

func TestListProductsDefaultsToAvailable(t *testing.T) {
	uc, store := newProductFixture(t)

	available, err := uc.CreateProduct(context.Background(), "seller-1", saleInput(120000))
	require.NoError(t, err)
	removed, err := uc.CreateProduct(context.Background(), "seller-1", saleInput(80000))
	require.NoError(t, err)
	require.NoError(t, uc.RemoveProduct(context.Background(), removed.ID, "seller-1"))

	products, _, err := uc.ListProducts(context.Background(), "", "", 1, 20)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, available.ID, products[0].ID)

	_, _, err = uc.ListProducts(context.Background(), "", "archived", 1, 20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	mine, _, err := uc.ListMyProducts(context.Background(), "seller-1", "", 1, 20)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	store.mu.Lock()
	total := len(store.products)
	store.mu.Unlock()
	assert.Equal(t, 2, total)
}
