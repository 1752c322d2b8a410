package usecase_test

import (
	"context"
	"math"
	"testing"

	"ordermgr/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockProduct(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	p, err := s.products.StockProduct(ctx, usecase.StockProductInput{Name: " Widget ", Quantity: 5, Price: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Widget", p.Name)

	// 在庫0も登録できる
	_, err = s.products.StockProduct(ctx, usecase.StockProductInput{Name: "Empty", Quantity: 0, Price: 1})
	require.NoError(t, err)

	items, err := s.products.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Widget", items[0].Name)
	assert.Equal(t, "Empty", items[1].Name)
}

func TestStockProduct_InvalidInput(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   usecase.StockProductInput
		want string
	}{
		{"blank name", usecase.StockProductInput{Name: " ", Quantity: 1, Price: 1}, "name is required"},
		{"negative quantity", usecase.StockProductInput{Name: "x", Quantity: -1, Price: 1}, "quantity must be at least 0"},
		{"zero price", usecase.StockProductInput{Name: "x", Quantity: 1, Price: 0}, "price must be greater than 0"},
		{"infinite price", usecase.StockProductInput{Name: "x", Quantity: 1, Price: math.Inf(1)}, "price must be a finite number"},
		{"NaN price", usecase.StockProductInput{Name: "x", Quantity: 1, Price: math.NaN()}, "price must be a finite number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.products.StockProduct(ctx, tt.in)
			ue := requireKind(t, err, usecase.KindInvalidInput)
			assert.Equal(t, tt.want, ue.Message)
		})
	}

	items, err := s.products.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetProduct_NotFound(t *testing.T) {
	s := newStack(t)

	_, err := s.products.GetProduct(context.Background(), 3)
	ue := requireKind(t, err, usecase.KindNotFound)
	assert.Equal(t, "product 3 not found", ue.Message)
}
