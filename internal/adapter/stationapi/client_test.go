package stationapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/wind-station-map/internal/domain"
	"github.com/couchcryptid/wind-station-map/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stationsPath      = "/api/all-stations"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
	tallinnBody       = `[{"name":"Tallinn","latitude":59.4,"longitude":24.7,"wind_speed":7,"wind_gust":0,"wind_direction":270,"observation_time":"2024-01-01T00:00Z"}]`
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(baseURL string) *Client {
	return NewClient(baseURL+stationsPath, 5*time.Second, observability.NewUnregisteredMetrics(), discardLogger())
}

func TestClient_FetchStations_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, stationsPath, r.URL.Path)
		assert.Equal(t, contentTypeJSON, r.Header.Get("Accept"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(tallinnBody))
	}))
	defer srv.Close()

	stations, err := testClient(srv.URL).FetchStations(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 1)

	rec := stations[0]
	assert.Equal(t, "Tallinn", rec.Name)
	require.NotNil(t, rec.Latitude)
	assert.Equal(t, 59.4, *rec.Latitude)
	require.NotNil(t, rec.WindGust)
	assert.Equal(t, 0.0, *rec.WindGust)
	require.NotNil(t, rec.WindDirection)
	assert.Equal(t, 270.0, *rec.WindDirection)
}

func TestClient_FetchStations_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	stations, err := testClient(srv.URL).FetchStations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stations)
}

func TestClient_FetchStations_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"upstream down"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchStations(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.NotErrorIs(t, err, domain.ErrParse)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestClient_FetchStations_MalformedBody(t *testing.T) {
	bodies := map[string]string{
		"not json":         `<html>oops</html>`,
		"object not array": `{"name":"Tallinn"}`,
		"null":             `null`,
		"wrong field type": `[{"name":"Tallinn","latitude":"north"}]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set(headerContentType, contentTypeJSON)
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := testClient(srv.URL).FetchStations(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrParse)
		})
	}
}

func TestClient_FetchStations_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50*time.Millisecond, observability.NewUnregisteredMetrics(), discardLogger())

	_, err := c.FetchStations(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetch)
}

func TestClient_FetchStations_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, observability.NewUnregisteredMetrics(), discardLogger())

	_, err := c.FetchStations(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetch)
}
