package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newSQLiteRepo opens a fresh in-memory database per test so cases
// cannot interfere with each other. The database is named after the
// test and shared across pooled connections.
func newSQLiteRepo(t *testing.T) *repositories.GORMOrderRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Order{}))
	return repositories.NewGORMOrderRepository(db)
}

func newOrder(sessionID string) *models.Order {
	return &models.Order{
		Items: models.OrderItems{
			{ProductID: 1, Name: "Wireless Headphones", Price: 79.99, Quantity: 2},
		},
		TotalAmount:     159.98,
		CustomerEmail:   "a@b.com",
		PaymentStatus:   models.PaymentStatusPending,
		StripeSessionID: sessionID,
	}
}

// Both implementations must satisfy the same semantics, so every case
// runs against the GORM store and the in-memory store.
func runOnBothRepos(t *testing.T, name string, test func(t *testing.T, repo repositories.OrderRepository)) {
	t.Run(name+"/gorm", func(t *testing.T) {
		test(t, newSQLiteRepo(t))
	})
	t.Run(name+"/mock", func(t *testing.T) {
		test(t, repositories.NewMockOrderRepository())
	})
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	runOnBothRepos(t, "round trip", func(t *testing.T, repo repositories.OrderRepository) {
		order := newOrder("cs_1")
		assert.NoError(t, repo.Create(order))
		assert.NotEmpty(t, order.ID)
		assert.False(t, order.CreatedAt.IsZero())

		got, err := repo.GetBySessionID("cs_1")
		assert.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, models.PaymentStatusPending, got.PaymentStatus)
		assert.Equal(t, 159.98, got.TotalAmount)
		assert.Len(t, got.Items, 1)
		assert.Equal(t, "Wireless Headphones", got.Items[0].Name)
	})

	runOnBothRepos(t, "miss", func(t *testing.T, repo repositories.OrderRepository) {
		got, err := repo.GetBySessionID("cs_unknown")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
	})

	runOnBothRepos(t, "duplicate session id", func(t *testing.T, repo repositories.OrderRepository) {
		assert.NoError(t, repo.Create(newOrder("cs_1")))
		assert.Error(t, repo.Create(newOrder("cs_1")))
	})
}

func TestOrderRepository_TerminalTransitions(t *testing.T) {
	runOnBothRepos(t, "succeed", func(t *testing.T, repo repositories.OrderRepository) {
		assert.NoError(t, repo.Create(newOrder("cs_1")))

		updated, err := repo.MarkSucceeded("cs_1", "pi_1")
		assert.NoError(t, err)
		assert.True(t, updated)

		got, err := repo.GetBySessionID("cs_1")
		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusSucceeded, got.PaymentStatus)
		assert.Equal(t, "pi_1", got.TransactionID)
	})

	runOnBothRepos(t, "succeed is idempotent", func(t *testing.T, repo repositories.OrderRepository) {
		assert.NoError(t, repo.Create(newOrder("cs_1")))

		updated, err := repo.MarkSucceeded("cs_1", "pi_1")
		assert.NoError(t, err)
		assert.True(t, updated)

		// The redelivery touches no row.
		updated, err = repo.MarkSucceeded("cs_1", "pi_other")
		assert.NoError(t, err)
		assert.False(t, updated)

		got, err := repo.GetBySessionID("cs_1")
		assert.NoError(t, err)
		assert.Equal(t, "pi_1", got.TransactionID)
	})

	runOnBothRepos(t, "terminal state never flips", func(t *testing.T, repo repositories.OrderRepository) {
		assert.NoError(t, repo.Create(newOrder("cs_1")))

		updated, err := repo.MarkSucceeded("cs_1", "pi_1")
		assert.NoError(t, err)
		assert.True(t, updated)

		updated, err = repo.MarkFailed("cs_1")
		assert.NoError(t, err)
		assert.False(t, updated)

		got, err := repo.GetBySessionID("cs_1")
		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusSucceeded, got.PaymentStatus)
	})

	runOnBothRepos(t, "fail pending", func(t *testing.T, repo repositories.OrderRepository) {
		assert.NoError(t, repo.Create(newOrder("cs_1")))

		updated, err := repo.MarkFailed("cs_1")
		assert.NoError(t, err)
		assert.True(t, updated)

		got, err := repo.GetBySessionID("cs_1")
		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusFailed, got.PaymentStatus)
	})

	runOnBothRepos(t, "unknown session", func(t *testing.T, repo repositories.OrderRepository) {
		updated, err := repo.MarkSucceeded("cs_unknown", "pi_1")
		assert.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestOrderRepository_Stats(t *testing.T) {
	runOnBothRepos(t, "aggregate", func(t *testing.T, repo repositories.OrderRepository) {
		for i := 1; i <= 3; i++ {
			assert.NoError(t, repo.Create(newOrder(fmt.Sprintf("cs_%d", i))))
		}
		_, err := repo.MarkSucceeded("cs_1", "pi_1")
		assert.NoError(t, err)
		_, err = repo.MarkFailed("cs_2")
		assert.NoError(t, err)

		stats, err := repo.Stats()
		assert.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalOrders)
		assert.Equal(t, int64(1), stats.SuccessfulOrders)
		assert.Equal(t, int64(1), stats.FailedOrders)
		assert.Equal(t, int64(1), stats.PendingOrders)
		// Revenue counts succeeded orders only.
		assert.Equal(t, 159.98, stats.TotalRevenue)
	})
}
