//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumina-search/lumina/internal/domain"
	"github.com/lumina-search/lumina/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUser(ctx context.Context, t *testing.T, userRepo *UserRepository) *domain.User {
	id := uuid.NewString()
	user := domain.NewUser(id, "user_"+id[:8], id+"@example.com",
		domain.GenderOther, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, userRepo.Create(ctx, user))
	return user
}

func historyFixture(userID string) *domain.HistoryRecord {
	return domain.NewHistoryRecord(uuid.NewString(), userID, "golang concurrency",
		[]domain.SearchResult{
			{
				Title:     "Go Concurrency Patterns",
				Link:      "https://go.dev/blog/pipelines",
				Snippet:   "Patterns for composing concurrent programs",
				Summary:   "An overview of pipeline patterns in Go.",
				Category:  domain.CategoryTechnology,
				Relevance: 9,
			},
		},
		domain.SearchFilters{SafeSearch: true, Language: "en", Region: "US"},
		time.Now().UTC().Truncate(time.Microsecond),
	)
}

func TestHistoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	userRepo := NewUserRepository(pool)
	historyRepo := NewHistoryRepository(pool)

	user := setupUser(ctx, t, userRepo)
	record := historyFixture(user.ID)
	require.NoError(t, historyRepo.Create(ctx, record))

	retrieved, err := historyRepo.GetByID(ctx, user.ID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Query, retrieved.Query)
	assert.Equal(t, record.Results, retrieved.Results)
	assert.Equal(t, record.Filters, retrieved.Filters)
	assert.Equal(t, record.Timestamp, retrieved.Timestamp)
}

func TestHistoryRepository_GetByID_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	userRepo := NewUserRepository(pool)
	historyRepo := NewHistoryRepository(pool)

	owner := setupUser(ctx, t, userRepo)
	other := setupUser(ctx, t, userRepo)

	record := historyFixture(owner.ID)
	require.NoError(t, historyRepo.Create(ctx, record))

	_, err := historyRepo.GetByID(ctx, other.ID, record.ID)
	assert.ErrorIs(t, err, domain.ErrHistoryNotFound)
}

func TestHistoryRepository_ListByUser_NewestFirst(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	userRepo := NewUserRepository(pool)
	historyRepo := NewHistoryRepository(pool)

	user := setupUser(ctx, t, userRepo)

	older := historyFixture(user.ID)
	older.Timestamp = older.Timestamp.Add(-time.Hour)
	newer := historyFixture(user.ID)
	newer.Query = "newer query"

	require.NoError(t, historyRepo.Create(ctx, older))
	require.NoError(t, historyRepo.Create(ctx, newer))

	records, err := historyRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "newer query", records[0].Query)
}

func TestHistoryRepository_DeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	userRepo := NewUserRepository(pool)
	historyRepo := NewHistoryRepository(pool)

	user := setupUser(ctx, t, userRepo)

	old := historyFixture(user.ID)
	old.Timestamp = time.Now().UTC().Add(-48 * time.Hour)
	fresh := historyFixture(user.ID)

	require.NoError(t, historyRepo.Create(ctx, old))
	require.NoError(t, historyRepo.Create(ctx, fresh))

	deleted, err := historyRepo.DeleteOlderThan(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	records, err := historyRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, fresh.ID, records[0].ID)
}
