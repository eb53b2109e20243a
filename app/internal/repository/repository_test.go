package repository_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
	"github.com/marketconnect/riskmap-agent/app/internal/repository"
)

// backends returns a fresh, initialized instance of every backend.
func backends(t *testing.T) map[string]repository.Repository {
	t.Helper()

	sqliteRepo, err := repository.NewSQLiteRepository(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteRepo.Close() })

	out := map[string]repository.Repository{
		repository.TypeMemory: repository.NewMemoryRepository(),
		repository.TypeSQLite: sqliteRepo,
	}
	for name, repo := range out {
		require.NoError(t, repo.Init(), name)
	}
	return out
}

func TestRepository_CreateSession(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			created, err := repo.CreateSession("screen-1")
			require.NoError(t, err)
			assert.Equal(t, &entities.SessionData{SessionID: "screen-1"}, created)

			got, err := repo.GetSession("screen-1")
			require.NoError(t, err)
			assert.Equal(t, created, got)

			_, err = repo.RecordExchange("screen-1", entities.Exchange{TotalTokens: 3})
			require.NoError(t, err)
			again, err := repo.CreateSession("screen-1")
			require.NoError(t, err)
			assert.Equal(t, 3, again.TotalTokens, "creating twice must not reset the row")
		})
	}
}

func TestRepository_GetMissingSession(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.GetSession("missing")
			assert.ErrorIs(t, err, entities.ErrSessionNotFound)
		})
	}
}

func TestRepository_RecordExchange(t *testing.T) {
	exchanges := []entities.Exchange{
		{Question: "What is JSX?", PromptTokens: 20, CompletionTokens: 10, TotalTokens: 30},
		{Question: "Kotlin?", Answer: "Error: invalid key", Failed: true},
		{Question: "Hooks?", PromptTokens: 5, CompletionTokens: 5, TotalTokens: 10},
	}
	want := []entities.SessionData{
		{SessionID: "s", TotalPromptTokens: 20, TotalCompletionTokens: 10, TotalTokens: 30, RequestCount: 1},
		{SessionID: "s", TotalPromptTokens: 20, TotalCompletionTokens: 10, TotalTokens: 30, RequestCount: 2, FailedCount: 1},
		{SessionID: "s", TotalPromptTokens: 25, TotalCompletionTokens: 15, TotalTokens: 40, RequestCount: 3, FailedCount: 1},
	}

	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for i, ex := range exchanges {
				got, err := repo.RecordExchange("s", ex)
				require.NoError(t, err)
				assert.Equal(t, want[i], *got, "after exchange %d", i)
			}
		})
	}
}

func TestRepository_ReturnsCopies(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := repo.RecordExchange("s", entities.Exchange{TotalTokens: 5})
			require.NoError(t, err)
			got.TotalTokens = 999

			again, err := repo.GetSession("s")
			require.NoError(t, err)
			assert.Equal(t, 5, again.TotalTokens)
		})
	}
}

func TestRepository_ListSessions(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			list, err := repo.ListSessions()
			require.NoError(t, err)
			assert.Empty(t, list)

			_, err = repo.CreateSession("s1")
			require.NoError(t, err)
			_, err = repo.RecordExchange("s2", entities.Exchange{TotalTokens: 100})
			require.NoError(t, err)

			list, err = repo.ListSessions()
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, 0, list["s1"].RequestCount)
			assert.Equal(t, 100, list["s2"].TotalTokens)
		})
	}
}

func TestRepository_ConcurrentRecords(t *testing.T) {
	const writers, perWriter = 8, 25

	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			errs := make(chan error, writers)
			for w := range writers {
				go func() {
					var err error
					for range perWriter {
						if _, e := repo.RecordExchange("shared", entities.Exchange{TotalTokens: 1}); e != nil {
							err = fmt.Errorf("writer %d: %w", w, e)
						}
					}
					errs <- err
				}()
			}
			for range writers {
				require.NoError(t, <-errs)
			}

			got, err := repo.GetSession("shared")
			require.NoError(t, err)
			assert.Equal(t, writers*perWriter, got.RequestCount)
			assert.Equal(t, writers*perWriter, got.TotalTokens)
		})
	}
}

func TestNew_SelectsBackend(t *testing.T) {
	repo, err := repository.New(repository.TypeMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &repository.MemoryRepository{}, repo)

	repo, err = repository.New("", "")
	require.NoError(t, err)
	assert.IsType(t, &repository.MemoryRepository{}, repo)

	repo, err = repository.New(repository.TypeSQLite, "file:new_selects_backend?mode=memory&cache=shared")
	require.NoError(t, err)
	defer repo.Close()
	assert.IsType(t, &repository.SQLiteRepository{}, repo)

	_, err = repository.New("postgres", "")
	assert.ErrorContains(t, err, "unknown repository type")
}
