package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteworks/wte-api/internal/httpapi"
	"github.com/wasteworks/wte-api/internal/observability"
	"github.com/wasteworks/wte-api/internal/pathway"
	"github.com/wasteworks/wte-api/internal/refdata"
)

type calcBody struct {
	Result    pathway.Result `json:"result"`
	RequestID string         `json:"request_id"`
}

type countyBody struct {
	Record    map[string]any `json:"record"`
	Result    pathway.Result `json:"result"`
	RequestID string         `json:"request_id"`
}

type errBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

func newTestServer(t *testing.T) (*httpapi.Server, *clockwork.FakeClock) {
	t.Helper()

	store, err := refdata.NewStore(zerolog.Nop())
	require.NoError(t, err)

	htl, err := pathway.NewHTLConverter(store.SludgeBlend())
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))
	srv := httpapi.NewServer(":0", httpapi.CORSConfig{}, store, httpapi.Converters{
		Fermentation: pathway.NewFermentationConverter(),
		HTL:          htl,
		Combustion:   pathway.NewCombustionConverter(),
		Digestion:    pathway.NewDigestionConverter(),
	}, observability.NewMetricsForTesting(), clock, zerolog.Nop())

	return srv, clock
}

func doRequest(t *testing.T, srv *httpapi.Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestCalcEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		wantMethod pathway.Method
		wantScale  string
		figure     string
		wantValue  float64
	}{
		{
			name:       "fermentation pilot",
			target:     "/api/v1/fermentation/mass?mass=1000",
			wantMethod: pathway.Fermentation,
			wantScale:  "pilot",
			figure:     "ethanol",
			wantValue:  0.763,
		},
		{
			name:       "fermentation annual tons",
			target:     "/api/v1/fermentation/mass?mass=100&unit=tons",
			wantMethod: pathway.Fermentation,
			wantScale:  "pilot",
			figure:     "ethanol",
			wantValue:  0.0079,
		},
		{
			name:       "htl commercial via mgd",
			target:     "/api/v1/htl/sludge?sludge=1&unit=mgd",
			wantMethod: pathway.HTL,
			wantScale:  "commercial",
			figure:     "price",
			wantValue:  2.9017,
		},
		{
			name:       "combustion explicit type",
			target:     "/api/v1/combustion/mass?mass=1000&type=food",
			wantMethod: pathway.Combustion,
			wantScale:  "",
			figure:     "electricity",
			wantValue:  326.3889,
		},
		{
			name:       "digestion pilot",
			target:     "/api/v1/digestion/mass?mass=1000",
			wantMethod: pathway.Digestion,
			wantScale:  "pilot",
			figure:     "methane",
			wantValue:  0.6307,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, tt.target)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body calcBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMethod, body.Result.Method)
			assert.Equal(t, tt.wantScale, body.Result.Scale)
			assert.NotEmpty(t, body.RequestID)

			found := false
			for _, fig := range body.Result.Derived {
				if fig.Name == tt.figure {
					assert.InDelta(t, tt.wantValue, fig.Value, 1e-4)
					found = true
				}
			}
			assert.True(t, found, "derived figure %q missing", tt.figure)
		})
	}
}

func TestCalcEndpoint_DefaultsCombustionType(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/combustion/mass?mass=50")

	require.Equal(t, http.StatusOK, rec.Code)
	var body calcBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "food", body.Result.WasteType)
}

func TestCalcEndpoint_InvalidInput(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		target string
	}{
		{"missing quantity", "/api/v1/fermentation/mass"},
		{"non-numeric quantity", "/api/v1/fermentation/mass?mass=abc"},
		{"negative quantity", "/api/v1/digestion/mass?mass=-4"},
		{"unknown unit", "/api/v1/htl/sludge?sludge=10&unit=firkins"},
		{"unit outside method set", "/api/v1/fermentation/mass?mass=10&unit=mgd"},
		{"rate unit on a mass method", "/api/v1/combustion/mass?mass=10&unit=kghr"},
		{"unknown waste type", "/api/v1/combustion/mass?mass=10&type=plastic"},
		{"missing htl quantity field", "/api/v1/htl/sludge?mass=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, tt.target)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			var body errBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "invalid_input", body.Code)
			assert.NotEmpty(t, body.Error)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestCountyEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name       string
		target     string
		wantMethod pathway.Method
		wantCounty string
	}{
		{"fermentation", "/api/v1/fermentation/county/Atlantic", pathway.Fermentation, "Atlantic"},
		{"htl", "/api/v1/htl/county/Bergen", pathway.HTL, "Bergen"},
		{"combustion", "/api/v1/combustion/county/Salem", pathway.Combustion, "Salem"},
		{"digestion", "/api/v1/digestion/county/Middlesex", pathway.Digestion, "Middlesex"},
		{"lowercase lookup", "/api/v1/fermentation/county/cape%20may", pathway.Fermentation, "Cape May"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, tt.target)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var body countyBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCounty, body.Record["county"])
			assert.Equal(t, tt.wantMethod, body.Result.Method)
			assert.NotEmpty(t, body.Result.Derived)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestCountyEndpoint_RunsConverterOnStoredRate(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/fermentation/county/Atlantic")

	require.Equal(t, http.StatusOK, rec.Code)
	var body countyBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// 118400 dry tons/yr converts to 12261.4959 kg/hr, demonstration scale.
	assert.EqualValues(t, 118400, body.Record["lignocellulose_dry_tons"])
	assert.InDelta(t, 12261.4959, body.Result.Feed.Value, 1e-3)
	assert.Equal(t, "demonstration", body.Result.Scale)
}

func TestCountyEndpoint_CombustionUsesDominantType(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/combustion/county/Salem")

	require.Equal(t, http.StatusOK, rec.Code)
	var body countyBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "manure", body.Record["dominant_type"])
	assert.Equal(t, "manure", body.Result.WasteType)
	assert.Equal(t, "kg", body.Result.Feed.Unit)
}

func TestCountyEndpoint_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, target := range []string{
		"/api/v1/fermentation/county/Nonexistent%20County",
		"/api/v1/htl/county/Nonexistent%20County",
		"/api/v1/combustion/county/Nonexistent%20County",
		"/api/v1/digestion/county/Nonexistent%20County",
	} {
		rec := doRequest(t, srv, http.MethodGet, target)

		require.Equal(t, http.StatusNotFound, rec.Code)
		var body errBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_found", body.Code)
		assert.Contains(t, body.Error, "Nonexistent County")
	}

	// The process keeps serving afterwards.
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/fermentation/county/Atlantic")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCountiesEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, method := range []string{"fermentation", "htl", "combustion", "digestion"} {
		t.Run(method, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, "/api/v1/"+method+"/counties")

			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Dataset  string   `json:"dataset"`
				Counties []string `json:"counties"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, method, body.Dataset)
			assert.Len(t, body.Counties, 21)
			assert.Contains(t, body.Counties, "Cape May")
		})
	}
}

func TestMethodsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/methods")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Methods []struct {
			Method        string   `json:"method"`
			Route         string   `json:"route"`
			QuantityField string   `json:"quantity_field"`
			Units         []string `json:"units"`
			WasteTypes    []string `json:"waste_types"`
		} `json:"methods"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Methods, 4)

	byMethod := map[string]int{}
	for i, m := range body.Methods {
		byMethod[m.Method] = i
	}
	htl := body.Methods[byMethod["htl"]]
	assert.Equal(t, "sludge", htl.QuantityField)
	assert.Contains(t, htl.Units, "mgd")

	combustion := body.Methods[byMethod["combustion"]]
	assert.Equal(t, []string{"sludge", "food", "fog", "green", "manure"}, combustion.WasteTypes)
	assert.Empty(t, body.Methods[byMethod["fermentation"]].WasteTypes)
}

func TestHealthzReportsUptime(t *testing.T) {
	srv, clock := newTestServer(t)
	clock.Advance(90 * time.Minute)

	rec := doRequest(t, srv, http.MethodGet, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1h30m0s", body["uptime"])
}

func TestReadyzReportsDatasets(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/readyz")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status   string                `json:"status"`
		Datasets []refdata.DatasetInfo `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	assert.Len(t, body.Datasets, 5)
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	srv, _ := newTestServer(t)
	doRequest(t, srv, http.MethodGet, "/api/v1/digestion/mass?mass=10")

	rec := doRequest(t, srv, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wte_http_requests_total")
	assert.Contains(t, rec.Body.String(), "wte_conversions_total")
}

func TestRequestIDEchoed(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/digestion/mass?mass=10", nil)
	req.Header.Set("X-Request-ID", "trace-me-42")
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "trace-me-42", rec.Header().Get("X-Request-ID"))
	var body calcBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "trace-me-42", body.RequestID)
}

func TestRequestIDGenerated(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/healthz")

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/fermentation/mass?mass=10")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
