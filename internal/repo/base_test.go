package repo

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type note struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Body string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&note{}))
	return conn
}

func TestDBBindsContext(t *testing.T) {
	base := NewBase(newTestDB(t))
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")

	assert.Equal(t, ctx, base.DB(ctx).Statement.Context)
}

func TestDeleteByIDAndExists(t *testing.T) {
	conn := newTestDB(t)
	base := NewBase(conn)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, conn.Create(&note{ID: id, Body: "measure twice"}).Error)

	ok, err := base.Exists(ctx, &note{}, "body = ?", "measure twice")
	require.NoError(t, err)
	assert.True(t, ok)

	deleted, err := base.DeleteByID(ctx, &note{}, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = base.DeleteByID(ctx, &note{}, id)
	require.NoError(t, err)
	assert.False(t, deleted)

	ok, err = base.Exists(ctx, &note{}, "id = ?", id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBindUsesTransaction(t *testing.T) {
	conn := newTestDB(t)
	base := NewBase(conn)
	ctx := context.Background()

	assert.Equal(t, base, base.Bind(nil))

	id := uuid.New()
	err := conn.Transaction(func(tx *gorm.DB) error {
		return base.Bind(tx).DB(ctx).Create(&note{ID: id, Body: "rolled back"}).Error
	})
	require.NoError(t, err)

	_ = conn.Transaction(func(tx *gorm.DB) error {
		require.NoError(t, base.Bind(tx).DB(ctx).Where("id = ?", id).Delete(&note{}).Error)
		return assert.AnError
	})
	ok, err := base.Exists(ctx, &note{}, "id = ?", id)
	require.NoError(t, err)
	assert.True(t, ok, "rollback must restore the row")
}
