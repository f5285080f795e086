// Package testutils provides shared helpers for package tests.
package testutils

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chaptermill/chaptermill/pkg/config"
	"github.com/chaptermill/chaptermill/pkg/database"
	"github.com/chaptermill/chaptermill/pkg/migrations"
	"github.com/chaptermill/chaptermill/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var (
	dbOnce sync.Once
	dbConn *bun.DB
	dbErr  error
)

// Database returns a migrated connection to the shared in-memory test
// database. Tests isolate themselves through unique row IDs rather than
// separate databases.
func Database(t *testing.T) *bun.DB {
	t.Helper()

	dbOnce.Do(func() {
		dbConn, dbErr = database.New(config.NewForTest())
		if dbErr != nil {
			return
		}
		_, dbErr = migrations.BringUpToDate(context.Background(), dbConn)
	})
	require.NoError(t, dbErr)

	return dbConn
}

// Book inserts and returns a minimal book owned by a fresh random owner.
func Book(t *testing.T, db *bun.DB) *models.Book {
	t.Helper()

	now := time.Now()
	book := &models.Book{
		ID:        uuid.NewString(),
		OwnerID:   uuid.NewString(),
		Title:     "Test Book",
		Language:  "en",
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.NewInsert().Model(book).Exec(context.Background())
	require.NoError(t, err)

	return book
}
