package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
)

type termsBody struct {
	Name          string           `json:"name" validate:"required,max=10"`
	Discount      *decimal.Decimal `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	OperationType *string          `json:"operation_type" validate:"omitempty,operation"`
	Clauses       []string         `json:"clauses" validate:"dive,max=5"`
}

func jsonRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func detailsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok, "details %T", typed.Details())
	return details
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	var body termsBody
	err := DecodeJSONBody(jsonRequest(`{"name":"Kahale","discount_percent":"12.5","operation_type":"XOX"}`), &body)
	require.NoError(t, err)
	assert.Equal(t, "Kahale", body.Name)
	assert.Equal(t, "12.5", body.Discount.String())
}

func TestDecodeJSONBodyReportsFieldProblems(t *testing.T) {
	var body termsBody
	err := DecodeJSONBody(jsonRequest(`{"discount_percent":"120","operation_type":"ZZ","clauses":["ok","too long"]}`), &body)

	details := detailsOf(t, err)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be less than or equal to 100", details["discount_percent"])
	assert.Equal(t, "must be a known operation type", details["operation_type"])
	assert.Equal(t, "must be at most 5", details["clauses[1]"])
}

func TestDecodeJSONBodyRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"unknown field": `{"name":"a","extra":1}`,
		"trailing data": `{"name":"a"}{"name":"b"}`,
		"empty":         ``,
		"not json":      `name=a`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var body termsBody
			err := DecodeJSONBody(jsonRequest(raw), &body)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
		})
	}
}

func TestDecodeJSONBodyTypeMismatch(t *testing.T) {
	var body termsBody
	err := DecodeJSONBody(jsonRequest(`{"name":42}`), &body)
	assert.Equal(t, "must be string", detailsOf(t, err)["name"])
}

func TestDecodeJSONBodyTooLarge(t *testing.T) {
	var body termsBody
	raw := `{"name":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	err := DecodeJSONBody(jsonRequest(raw), &body)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "request body too large", typed.Message())
}

func TestSanitizeSearch(t *testing.T) {
	assert.Equal(t, "Kailua Kona", SanitizeSearch("  Kailua \t\n Kona  ", 0))
	assert.Equal(t, "abc", SanitizeSearch("a\x00b\x07c", 0))
	assert.Equal(t, "Hāle", SanitizeSearch("Hāleakalā", 4))
	assert.Equal(t, "", SanitizeSearch("   ", 10))
}

func TestBearerToken(t *testing.T) {
	tok, err := BearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	tok, err = BearerToken("  abc.def ")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	for _, raw := range []string{"", "bearer   ", "Basic dXNlcjpwYXNz", "Bearer a b"} {
		_, err = BearerToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestAccessTokenPrefersAuthorization(t *testing.T) {
	h := http.Header{}
	h.Set(TokenHeader, "from-header")

	tok, err := AccessToken(h)
	require.NoError(t, err)
	assert.Equal(t, "from-header", tok)

	h.Set("Authorization", "Bearer from-auth")
	tok, err = AccessToken(h)
	require.NoError(t, err)
	assert.Equal(t, "from-auth", tok)

	_, err = AccessToken(http.Header{})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=30&representative_id=nope", nil)

	limit, err := ParseQueryInt(req, "limit", 25, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 30, limit)

	_, err = ParseQueryInt(req, "limit", 25, 1, 10)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	missing, err := ParseQueryUUID(req, "customer_id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = ParseQueryUUID(req, "representative_id")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseUUIDParam(t *testing.T) {
	id := uuid.New()
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("customerID", id.String())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	got, err := ParseUUIDParam(req, "customerID")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseUUIDParam(req, "windowID")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
