package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/database"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*database.RedisClient, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}, mr
}

func newGeocoder(url string, cache *database.RedisClient) *GeocoderGW {
	return NewGeocoderGateway(models.GeocoderConfig{BaseURL: url, Timeout: time.Second, CacheTTL: time.Hour}, cache)
}

func TestGeocoderGW_Geocode_CachesResult(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v1/geocode", r.URL.Path)
		assert.Equal(t, "Jl. Sudirman  1", r.URL.Query().Get("address"))
		w.Write([]byte(`{"results":[{"latitude":-6.2,"longitude":106.8,"formatted_address":"Jl. Jend. Sudirman No.1, Jakarta"}]}`))
	}))
	defer server.Close()

	cache, mr := newTestCache(t)
	gw := newGeocoder(server.URL, cache)

	got, err := gw.Geocode(context.Background(), "Jl. Sudirman  1")
	require.NoError(t, err)
	assert.Equal(t, -6.2, got.Coordinates.Latitude)
	assert.Equal(t, "Jl. Jend. Sudirman No.1, Jakarta", got.NormalizedAddress)
	assert.True(t, mr.Exists("geocode:jl. sudirman 1"))
	assert.Equal(t, time.Hour, mr.TTL("geocode:jl. sudirman 1"))

	again, err := gw.Geocode(context.Background(), "jl. sudirman 1")
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGeocoderGW_Geocode_NoMatch(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "empty results", status: http.StatusOK, body: `{"results":[]}`},
		{name: "not found", status: http.StatusNotFound, body: `{"error":"no match"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newGeocoder(server.URL, nil).Geocode(context.Background(), "nowhere")
			assert.True(t, apperror.IsNotFound(err))
		})
	}
}

func TestGeocoderGW_Geocode_ClientErrorIsDependency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newGeocoder(server.URL, nil).Geocode(context.Background(), "Jl. Sudirman 1")
	assert.True(t, apperror.IsDependency(err))
}

func TestGeocoderGW_Geocode_EmptyAddress(t *testing.T) {
	_, err := newGeocoder("http://127.0.0.1:0", nil).Geocode(context.Background(), "   ")
	assert.True(t, apperror.IsValidation(err))
}

func TestGeocoderGW_Geocode_IgnoresCorruptCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"latitude":-6.24,"longitude":107.0,"formatted_address":"Bekasi"}]}`))
	}))
	defer server.Close()

	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set("geocode:bekasi", "{not json"))

	got, err := newGeocoder(server.URL, cache).Geocode(context.Background(), "Bekasi")
	require.NoError(t, err)
	assert.Equal(t, "Bekasi", got.NormalizedAddress)
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "jl. ahmad yani 9", normalizeAddress("  Jl.  Ahmad\tYani 9 "))
	assert.Equal(t, "", normalizeAddress(" \n "))
}
