package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/angelmondragon/windowquote-backend/pkg/config"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/angelmondragon/windowquote-backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn
}

func fastPasswords() config.PasswordConfig {
	return config.PasswordConfig{ArgonMemoryKB: 8 * 1024, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
}

func newTestSeeder(t *testing.T, conn *gorm.DB) *Seeder {
	t.Helper()
	s, err := NewSeeder(conn, config.SeedConfig{
		AdminUsername: " Admin ",
		AdminPassword: "admin123",
		AdminEmail:    "admin@windowshawaii.com",
	}, fastPasswords(), nil)
	require.NoError(t, err)
	return s
}

func TestSeederInsertsDefaults(t *testing.T) {
	conn := newTestDB(t)
	res, err := newTestSeeder(t, conn).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Inserted["representatives"])
	assert.Equal(t, 3, res.Inserted["brands"])
	assert.Equal(t, 4, res.Inserted["frame_types"])
	assert.Equal(t, 4, res.Inserted["frame_colors"])
	assert.Equal(t, 4, res.Inserted["glass_types"])
	assert.Equal(t, 4, res.Inserted["grid_styles"])
	assert.Equal(t, 3, res.Inserted["grid_sizes"])
	assert.Equal(t, 12, res.Inserted["product_configs"])
	assert.Equal(t, 4, res.Inserted["disclaimers"])

	var admin models.Representative
	require.NoError(t, conn.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, enums.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	ok, err := security.VerifyPassword("admin123", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	var milgard models.Brand
	require.NoError(t, conn.Where("name = ?", "Milgard").First(&milgard).Error)
	assert.Equal(t, "1.25", milgard.Factor.StringFixed(2))

	var doors int64
	require.NoError(t, conn.Model(&models.ProductConfig{}).Where("category = ?", enums.ProductCategoryDoor).Count(&doors).Error)
	assert.EqualValues(t, 3, doors)
}

func TestSeederIsIdempotent(t *testing.T) {
	conn := newTestDB(t)
	seeder := newTestSeeder(t, conn)

	_, err := seeder.Run(context.Background())
	require.NoError(t, err)
	res, err := seeder.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Total())

	var brands int64
	require.NoError(t, conn.Model(&models.Brand{}).Count(&brands).Error)
	assert.EqualValues(t, 3, brands)
}

func TestSeederCollectsStepFailures(t *testing.T) {
	conn := newTestDB(t)
	require.NoError(t, conn.Migrator().DropTable(&models.Brand{}, &models.GridSize{}))

	res, err := newTestSeeder(t, conn).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seeding brands")
	assert.Contains(t, err.Error(), "seeding grid_sizes")
	assert.Equal(t, 4, res.Inserted["disclaimers"], "other steps still run")
}
