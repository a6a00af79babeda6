package customers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/windowquote-backend/internal/reference"
	pkgAuth "github.com/angelmondragon/windowquote-backend/pkg/auth"
	pkgdb "github.com/angelmondragon/windowquote-backend/pkg/db"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fixture struct {
	db    *gorm.DB
	svc   Service
	rep   pkgAuth.Actor
	other pkgAuth.Actor
	admin pkgAuth.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(models.All()...))

	f := &fixture{db: conn}
	for _, actor := range []*pkgAuth.Actor{&f.rep, &f.other, &f.admin} {
		rep := &models.Representative{Name: "Rep", Username: uuid.NewString(), PasswordHash: "x", Role: enums.RoleRepresentative, IsActive: true}
		require.NoError(t, conn.Create(rep).Error)
		*actor = pkgAuth.Actor{RepresentativeID: rep.ID, Role: enums.RoleRepresentative}
	}
	f.admin.Role = enums.RoleAdmin

	require.NoError(t, conn.Create(&models.Disclaimer{Description: "Second clause", IncludeByDefault: true, IsActive: true, SortOrder: 2}).Error)
	require.NoError(t, conn.Create(&models.Disclaimer{Description: "First clause", IncludeByDefault: true, IsActive: true, SortOrder: 1}).Error)
	require.NoError(t, conn.Create(&models.Disclaimer{Description: "Opt-in clause", IncludeByDefault: false, IsActive: true}).Error)

	f.svc, err = NewService(ServiceParams{
		Repo:        NewRepository(conn),
		Disclaimers: reference.NewRepository(conn),
		Tx:          pkgdb.NewFromGorm(conn),
	})
	require.NoError(t, err)
	return f
}

func str(v string) *string { return &v }

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestCreateAppliesDefaultsAndCopiesDisclaimers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.rep, CreateCustomerInput{
		Name:    "  Kalani Ohana ",
		Address: str("12 Beach Rd"),
		City:    str(" "),
		Email:   str("kalani@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kalani Ohana", created.Name)
	assert.Equal(t, "HI", created.State)
	assert.Nil(t, created.City)
	assert.Equal(t, f.rep.RepresentativeID, created.RepresentativeID)
	assert.True(t, created.DiscountPercent.IsZero())

	detail, err := f.svc.Get(ctx, f.rep, created.ID)
	require.NoError(t, err)
	require.Len(t, detail.Disclaimers, 2)
	assert.Equal(t, "First clause", detail.Disclaimers[0].Description)
	assert.Equal(t, "Second clause", detail.Disclaimers[1].Description)
	assert.Empty(t, detail.Windows)
}

func TestCreateOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	otherID := f.other.RepresentativeID

	_, err := f.svc.Create(ctx, f.rep, CreateCustomerInput{Name: "Someone", RepresentativeID: &otherID})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	created, err := f.svc.Create(ctx, f.admin, CreateCustomerInput{Name: "Assigned", RepresentativeID: &otherID})
	require.NoError(t, err)
	assert.Equal(t, otherID, created.RepresentativeID)
}

func TestCreateValidatesTerms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.rep, CreateCustomerInput{Name: "A", DiscountPercent: dec("100.01")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = f.svc.Create(ctx, f.rep, CreateCustomerInput{Name: "A", DownPaymentAmount: dec("-1")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = f.svc.Create(ctx, f.rep, CreateCustomerInput{Name: " "})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestGetEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, f.rep, CreateCustomerInput{Name: "Mine"})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, f.other, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	_, err = f.svc.Get(ctx, f.admin, created.ID)
	assert.NoError(t, err)

	_, err = f.svc.Get(ctx, f.rep, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = f.svc.Authorize(ctx, f.other, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
}

func TestGetOrdersWindowsWithNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, f.rep, CreateCustomerInput{Name: "Lines"})
	require.NoError(t, err)

	brand := &models.Brand{Name: "Milgard", Factor: decimal.RequireFromString("1.25"), IsActive: true}
	require.NoError(t, f.db.Create(brand).Error)
	price := decimal.RequireFromString("205.80")
	require.NoError(t, f.db.Create(&models.Window{CustomerID: created.ID, Location: "Second", Category: enums.ProductCategoryWindow, Width: 36, Height: 48, SortOrder: 2}).Error)
	require.NoError(t, f.db.Create(&models.Window{CustomerID: created.ID, Location: "First", Category: enums.ProductCategoryWindow, Width: 36, Height: 48, SortOrder: 1, BrandID: &brand.ID, CalculatedPrice: &price}).Error)

	detail, err := f.svc.Get(ctx, f.rep, created.ID)
	require.NoError(t, err)
	require.Len(t, detail.Windows, 2)
	assert.Equal(t, "First", detail.Windows[0].Location)
	require.NotNil(t, detail.Windows[0].BrandName)
	assert.Equal(t, "Milgard", *detail.Windows[0].BrandName)
	assert.True(t, detail.Windows[0].LineAmount.Equal(price))
	assert.Equal(t, "Second", detail.Windows[1].Location)
}

func TestGetIncludesOrderTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, f.rep, CreateCustomerInput{Name: "Totals", DiscountPercent: dec("10")})
	require.NoError(t, err)

	calculated := decimal.RequireFromString("205.80")
	overridden := decimal.RequireFromString("100.00")
	manual := decimal.RequireFromString("150.00")
	require.NoError(t, f.db.Create(&models.Window{CustomerID: created.ID, Location: "Kitchen", Category: enums.ProductCategoryWindow, Width: 36, Height: 48, SortOrder: 1, CalculatedPrice: &calculated}).Error)
	require.NoError(t, f.db.Create(&models.Window{CustomerID: created.ID, Location: "Den", Category: enums.ProductCategoryWindow, Width: 36, Height: 48, SortOrder: 2, CalculatedPrice: &overridden, ManualPrice: &manual}).Error)

	detail, err := f.svc.Get(ctx, f.rep, created.ID)
	require.NoError(t, err)
	totals := detail.Totals
	assert.Equal(t, "355.80", totals.WindowsTotal.StringFixed(2))
	assert.Equal(t, "10.00", totals.DiscountPercent.StringFixed(2))
	assert.Equal(t, "35.58", totals.DiscountAmount.StringFixed(2))
	assert.Equal(t, "320.22", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "15.09", totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "335.31", totals.Total.StringFixed(2))
	assert.Equal(t, "167.66", totals.DownPayment.StringFixed(2))
	assert.Equal(t, "167.65", totals.Balance.StringFixed(2))
}

func TestListScopesSearchesAndPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	rows := []models.Customer{
		{RepresentativeID: f.rep.RepresentativeID, Name: "Akana", City: str("Hilo"), State: "HI", CreatedAt: base},
		{RepresentativeID: f.rep.RepresentativeID, Name: "Baker", City: str("Kona"), State: "HI", CreatedAt: base.Add(time.Hour)},
		{RepresentativeID: f.rep.RepresentativeID, Name: "Cruz", Zip: str("96720"), State: "HI", CreatedAt: base.Add(2 * time.Hour)},
		{RepresentativeID: f.other.RepresentativeID, Name: "Other Hilo", City: str("Hilo"), State: "HI", CreatedAt: base.Add(3 * time.Hour)},
	}
	for i := range rows {
		require.NoError(t, f.db.Create(&rows[i]).Error)
	}

	mine, err := f.svc.List(ctx, f.rep, ListParams{})
	require.NoError(t, err)
	require.Len(t, mine.Items, 3)
	assert.Equal(t, "Cruz", mine.Items[0].Name, "newest first")
	assert.Empty(t, mine.Cursor)

	all, err := f.svc.List(ctx, f.admin, ListParams{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 4)

	hilo, err := f.svc.List(ctx, f.rep, ListParams{Search: "hilo"})
	require.NoError(t, err)
	require.Len(t, hilo.Items, 1)
	assert.Equal(t, "Akana", hilo.Items[0].Name)

	byZip, err := f.svc.List(ctx, f.rep, ListParams{Search: "9672"})
	require.NoError(t, err)
	require.Len(t, byZip.Items, 1)
	assert.Equal(t, "Cruz", byZip.Items[0].Name)

	page1, err := f.svc.List(ctx, f.rep, ListParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	require.NotEmpty(t, page1.Cursor)
	page2, err := f.svc.List(ctx, f.rep, ListParams{Limit: 2, Cursor: page1.Cursor})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, "Akana", page2.Items[0].Name)

	_, err = f.svc.List(ctx, f.rep, ListParams{Cursor: "%%%"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateTermsPatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, f.rep, CreateCustomerInput{
		Name:              "Terms",
		Address:           str("1 Main"),
		DownPaymentAmount: dec("500"),
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateTerms(ctx, f.rep, created.ID, UpdateTermsInput{
		DiscountPercent:   dec("12.5"),
		Address:           str(""),
		State:             str("ca"),
		EstimateStartDate: str("2025-04-01"),
	})
	require.NoError(t, err)
	assert.True(t, updated.DiscountPercent.Equal(decimal.RequireFromString("12.5")))
	assert.Nil(t, updated.Address)
	assert.Equal(t, "CA", updated.State)
	require.NotNil(t, updated.DownPaymentAmount)
	assert.Equal(t, "Terms", updated.Name)

	cleared, err := f.svc.UpdateTerms(ctx, f.rep, created.ID, UpdateTermsInput{ClearDownPayment: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.DownPaymentAmount)

	_, err = f.svc.UpdateTerms(ctx, f.other, created.ID, UpdateTermsInput{DiscountPercent: dec("5")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	_, err = f.svc.UpdateTerms(ctx, f.rep, created.ID, UpdateTermsInput{DiscountPercent: dec("-5")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestReplaceDisclaimers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, f.rep, CreateCustomerInput{Name: "Clauses"})
	require.NoError(t, err)

	out, err := f.svc.ReplaceDisclaimers(ctx, f.rep, created.ID, []string{"Custom one", " ", "Custom two"})
	require.NoError(t, err)
	require.Len(t, out, 2)

	detail, err := f.svc.Get(ctx, f.rep, created.ID)
	require.NoError(t, err)
	require.Len(t, detail.Disclaimers, 2)
	assert.Equal(t, "Custom one", detail.Disclaimers[0].Description)
	assert.Equal(t, 2, detail.Disclaimers[1].SortOrder)
}

func TestDeleteRemovesLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, f.rep, CreateCustomerInput{Name: "Gone"})
	require.NoError(t, err)
	require.NoError(t, f.db.Create(&models.Window{CustomerID: created.ID, Location: "Window 1", Category: enums.ProductCategoryWindow, Width: 36, Height: 48}).Error)

	err = f.svc.Delete(ctx, f.other, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	require.NoError(t, f.svc.Delete(ctx, f.rep, created.ID))

	var windows int64
	require.NoError(t, f.db.Model(&models.Window{}).Where("customer_id = ?", created.ID).Count(&windows).Error)
	assert.Zero(t, windows)
	var clauses int64
	require.NoError(t, f.db.Model(&models.ContractDisclaimer{}).Where("customer_id = ?", created.ID).Count(&clauses).Error)
	assert.Zero(t, clauses)

	err = f.svc.Delete(ctx, f.rep, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
}
