package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

type sampleBody struct {
	Name    string `json:"name" validate:"required,max=5"`
	Confirm string `json:"confirm" validate:"eqfield=Name"`
}

func TestDecodeJSONBodyKeysErrorsByJSONName(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"demasiado","confirm":"x"}`))
	var body sampleBody
	err := DecodeJSONBody(req, &body)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details := typed.Details().(map[string]string)
	require.Equal(t, "must be at most 5", details["name"])
	require.Equal(t, "must match Name", details["confirm"])
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok","confirm":"ok","extra":1}`))
	var body sampleBody
	require.True(t, pkgerrors.IsCode(DecodeJSONBody(req, &body), pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyRejectsEmptyAndTrailingInput(t *testing.T) {
	var body sampleBody
	err := DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &body)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	require.Equal(t, "request body required", pkgerrors.As(err).Message())

	err = DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","confirm":"a"} {"name":"b"}`)), &body)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyCapsSize(t *testing.T) {
	huge := `{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	var body sampleBody
	err := DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(huge)), &body)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestQueryParsers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?min_price=100.50&category_id=nope&limit=7", nil)

	price, err := ParseQueryDecimal(req, "min_price")
	require.NoError(t, err)
	require.Equal(t, "100.5", price.String())

	missing, err := ParseQueryDecimal(req, "max_price")
	require.NoError(t, err)
	require.Nil(t, missing)

	_, err = ParseQueryUUID(req, "category_id")
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	limit, err := ParseQueryInt(req, "limit", 5, 1, 50)
	require.NoError(t, err)
	require.Equal(t, 7, limit)
}

func TestSanitizeStringCountsRunes(t *testing.T) {
	require.Equal(t, "Poes", SanitizeString("  Poesía ", 4))
	require.Equal(t, "año", SanitizeString("año", 10))
}
