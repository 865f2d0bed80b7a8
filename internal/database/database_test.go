package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/advisor/internal/entities"
)

func setupTestDB(t *testing.T) (*Database, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "advisor.db")
	db, err := NewDatabase(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, dbPath
}

func TestNewDatabase(t *testing.T) {
	db, _ := setupTestDB(t)

	t.Run("seeds import tags", func(t *testing.T) {
		var tags []entities.Tag
		require.NoError(t, db.DB.Order("name").Find(&tags).Error)
		require.Len(t, tags, 2)
		assert.Equal(t, "Advisor", tags[0].Name)
		assert.Equal(t, "Archetype", tags[1].Name)
	})

	t.Run("migrates deck tables", func(t *testing.T) {
		for _, table := range []string{"decks", "deck_cards", "tags", "deck_tags", "import_runs"} {
			assert.True(t, db.DB.Migrator().HasTable(table), table)
		}
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, db.Ping())
	})
}

func TestNewDatabase_ReopenDoesNotDuplicateTags(t *testing.T) {
	db, dbPath := setupTestDB(t)
	require.NoError(t, db.Close())

	reopened, err := NewDatabase(dbPath, nil)
	require.NoError(t, err)
	defer reopened.Close()

	var count int64
	require.NoError(t, reopened.DB.Model(&entities.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
