package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lavka-market/lavka-backend/pkg/enums"
	"github.com/lavka-market/lavka-backend/pkg/pagination"
)

func TestListForUser_ScopedAndPaged(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	for i := 0; i < 3; i++ {
		seedOrder(t, conn, alice, enums.OrderStatusPlaced, "alice@example.com")
	}
	seedOrder(t, conn, bob, enums.OrderStatusPlaced, "bob@example.com")

	list, err := repo.ListForUser(ctx, alice, pagination.Params{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, list.Orders, 2)
	assert.Equal(t, int64(3), list.Page.Total)
	assert.Equal(t, 2, list.Page.TotalPages)

	for _, order := range list.Orders {
		assert.Equal(t, alice, order.UserID)
		require.Len(t, order.Items, 1, "items preloaded")
		require.Len(t, order.Events, 1, "events preloaded")
	}
}

func TestListAdmin_Filters(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	userID := uuid.New()
	seedOrder(t, conn, userID, enums.OrderStatusPlaced, "alice@example.com")
	seedOrder(t, conn, userID, enums.OrderStatusPaid, "alice@example.com")
	seedOrder(t, conn, userID, enums.OrderStatusPaid, "bob@example.com")

	paid := enums.OrderStatusPaid
	list, err := repo.ListAdmin(ctx, pagination.Params{}, AdminOrderFilters{Status: &paid})
	require.NoError(t, err)
	assert.Len(t, list.Orders, 2)

	list, err = repo.ListAdmin(ctx, pagination.Params{}, AdminOrderFilters{Status: &paid, Email: "bob@"})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "bob@example.com", list.Orders[0].Email)

	list, err = repo.ListAdmin(ctx, pagination.Params{}, AdminOrderFilters{})
	require.NoError(t, err)
	assert.Len(t, list.Orders, 3)
}

func TestFindByIDForUser_OtherUserHidden(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	owner := uuid.New()
	order := seedOrder(t, conn, owner, enums.OrderStatusPlaced, "alice@example.com")

	found, err := repo.FindByIDForUser(ctx, order.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindByIDForUser(ctx, order.ID, uuid.New())
	require.Error(t, err)
}
