package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	db, err := OpenSQL("sqlite", filepath.Join(t.TempDir(), "dinein.db"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Close())
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := OpenSQL("oracle", "")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
