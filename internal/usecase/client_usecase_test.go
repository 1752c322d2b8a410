package usecase_test

import (
	"context"
	"testing"

	"ordermgr/internal/domain/model"
	"ordermgr/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterClient(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	c, err := s.clients.RegisterClient(ctx, usecase.RegisterClientInput{Name: "  Alice ", OrderNumber: " A1 "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, "Alice", c.Name)
	require.NotNil(t, c.OrderNumber)
	assert.Equal(t, "A1", *c.OrderNumber)
	// 時刻は落として日付だけ
	assert.Equal(t, "2024-03-01", c.OrderDate.Format("2006-01-02"))
	assert.Equal(t, 0, c.OrderDate.Hour())

	got, err := s.clients.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "2024-03-01", got.OrderDate.Format("2006-01-02"))
}

func TestRegisterClient_DuplicateOrderNumber(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	s.client(t, "Alice", "A1")

	_, err := s.clients.RegisterClient(ctx, usecase.RegisterClientInput{Name: "Bob", OrderNumber: "A1"})
	ue := requireKind(t, err, usecase.KindUniqueViolation)
	assert.Equal(t, `a client with order number "A1" already exists`, ue.Message)

	items, err := s.clients.ListClients(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestRegisterClient_BlankOrderNumberIsNull(t *testing.T) {
	s := newStack(t)

	a := s.client(t, "Alice", "")
	b := s.client(t, "Bob", "   ")
	assert.Nil(t, a.OrderNumber)
	assert.Nil(t, b.OrderNumber)
}

func TestRegisterClient_InvalidInput(t *testing.T) {
	s := newStack(t)

	_, err := s.clients.RegisterClient(context.Background(), usecase.RegisterClientInput{Name: "  "})
	ue := requireKind(t, err, usecase.KindInvalidInput)
	assert.Equal(t, "name is required", ue.Message)
}

func TestDeleteClient_CascadesOrders(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	alice := s.client(t, "Alice", "A1")
	bob := s.client(t, "Bob", "B1")
	p := s.product(t, "Widget", 10, 1)

	for _, cid := range []int64{alice.ID, alice.ID, bob.ID} {
		_, err := s.orders.PlaceOrder(ctx, usecase.PlaceOrderInput{
			ClientID: cid,
			Lines:    []model.OrderLine{{ProductID: p.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	require.NoError(t, s.clients.DeleteClient(ctx, alice.ID))

	_, err := s.clients.GetClient(ctx, alice.ID)
	requireKind(t, err, usecase.KindNotFound)

	left, err := s.orders.ListOrders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, bob.ID, left[0].ClientID)

	err = s.clients.DeleteClient(ctx, alice.ID)
	ue := requireKind(t, err, usecase.KindNotFound)
	assert.Equal(t, "client 1 not found", ue.Message)
}

func TestGetClient_InvalidID(t *testing.T) {
	s := newStack(t)

	_, err := s.clients.GetClient(context.Background(), -1)
	requireKind(t, err, usecase.KindInvalidInput)
}
