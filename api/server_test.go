package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-engine/core/engine"
	"quote-engine/core/quote"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(engine.Default(), "test", []string{"*"})
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *strings.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	} else {
		rdr = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestQuoteEndpoint(t *testing.T) {
	s := testServer(t)
	body := `{
		"property_type": "commercial",
		"commercial_type": "Restaurant",
		"dumpster_count": 2,
		"has_dumpster_pad": true,
		"frequency": "Weekly"
	}`

	rec := doRequest(t, s, http.MethodPost, "/v1/quote", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)

	assert.Equal(t, int64(255), resp.Result.FinalPrice)
	assert.False(t, resp.Result.RequiresManualReview)
	assert.Equal(t, quote.BundlePremiumPropertyProtection, resp.Result.RecommendedBundle)
	assert.Equal(t, int64(230), resp.Result.LowEstimate)
	assert.Equal(t, int64(281), resp.Result.HighEstimate)

	assert.Equal(t, "test", resp.EngineVersion)
	assert.NotEmpty(t, resp.InputHash)
}

func TestQuoteEndpointIsDeterministic(t *testing.T) {
	s := testServer(t)
	body := `{"property_type": "residential", "residential_bins": 2, "frequency": "Monthly"}`

	var first, second QuoteResponse
	rec := doRequest(t, s, http.MethodPost, "/v1/quote", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = doRequest(t, s, http.MethodPost, "/v1/quote", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	assert.Equal(t, first.Result, second.Result)
	assert.Equal(t, first.InputHash, second.InputHash)
}

func TestQuoteValidationFailure(t *testing.T) {
	s := testServer(t)
	// Commercial with no commercial type and no dumpsters
	body := `{"property_type": "commercial", "frequency": "Monthly"}`

	rec := doRequest(t, s, http.MethodPost, "/v1/quote", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Message)
}

// Frequency casing is part of the wire contract: the form sends the enum
// spelling, and anything else is a validation failure, not a silent default.
func TestQuoteFrequencyCasingIsStrict(t *testing.T) {
	s := testServer(t)
	body := `{"property_type": "residential", "residential_bins": 2, "frequency": "monthly"}`

	rec := doRequest(t, s, http.MethodPost, "/v1/quote", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "frequency")
}

func TestQuoteMalformedJSON(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodPost, "/v1/quote", `{"property_type": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_JSON", resp.Error.Code)
}

func TestRatesEndpoint(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/v1/rates", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Table)
	assert.Equal(t, int64(500), resp.Policy.ReviewCeiling.RoundDollars())
	assert.Equal(t, 3, resp.Policy.MaxAutoApproveDumpsters)
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "test", resp["version"])
}

func TestVersionEndpoint(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "v1", resp["api_version"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t)

	// Price one quote so the counters carry data
	rec := doRequest(t, s, http.MethodPost, "/v1/quote",
		`{"property_type": "residential", "residential_bins": 1, "frequency": "Weekly"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "quote_quotes_priced_total")
}
