package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	created time.Time
	id      uuid.UUID
}

func keyOf(r row) Cursor { return Cursor{CreatedAt: r.created, ID: r.id} }

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, 7, NormalizeLimit(7))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+50))
	assert.Equal(t, 8, FetchLimit(7))
}

func TestTrimKeepsLastReturnedRowAsCursor(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := make([]row, 4)
	for i := range rows {
		rows[i] = row{created: base.Add(-time.Duration(i) * time.Minute), id: uuid.New()}
	}

	page, next := Trim(rows, 3, keyOf)
	require.Len(t, page, 3)
	require.NotNil(t, next)
	assert.Equal(t, rows[2].id, next.ID, "cursor must point at the last row on the page, not the look-ahead row")

	page, next = Trim(rows[:3], 3, keyOf)
	assert.Len(t, page, 3)
	assert.Nil(t, next)
}

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{CreatedAt: time.Date(2025, 3, 1, 9, 30, 0, 123, time.FixedZone("HST", -10*3600)), ID: uuid.New()}

	token := c.Encode()
	assert.NotContains(t, token, "=")
	assert.NotContains(t, token, "+")

	parsed, err := ParseCursor(token)
	require.NoError(t, err)
	assert.True(t, c.CreatedAt.Equal(parsed.CreatedAt))
	assert.Equal(t, c.ID, parsed.ID)
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	got, err := ParseCursor("  ")
	assert.NoError(t, err)
	assert.Nil(t, got)

	for _, bad := range []string{
		"%%%",
		base64.RawURLEncoding.EncodeToString([]byte("not json")),
		base64.RawURLEncoding.EncodeToString([]byte(`{"t":"2025-03-01T00:00:00Z"}`)),
	} {
		_, err := ParseCursor(bad)
		assert.Error(t, err, bad)
	}
}
