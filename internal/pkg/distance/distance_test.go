package distance

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jakarta = models.Coordinates{Latitude: -6.175392, Longitude: 106.827153}
	bandung = models.Coordinates{Latitude: -6.914744, Longitude: 107.609810}
)

type stubEstimator struct {
	est Estimate
	err error
}

func (s stubEstimator) Estimate(context.Context, models.Coordinates, models.Coordinates) (Estimate, error) {
	return s.est, s.err
}

func TestHaversine_Estimate(t *testing.T) {
	h := NewHaversine(60)

	est, err := h.Estimate(context.Background(), jakarta, bandung)

	require.NoError(t, err)
	assert.InDelta(t, 120, est.DistanceKm, 10)
	assert.InDelta(t, 2*time.Hour, est.Duration, float64(10*time.Minute))
}

func TestHaversine_RejectsMissingPoint(t *testing.T) {
	_, err := NewHaversine(0).Estimate(context.Background(), models.Coordinates{}, bandung)
	assert.Error(t, err)
}

func TestFallback(t *testing.T) {
	primary := stubEstimator{err: errors.New("routing down")}
	secondary := stubEstimator{est: Estimate{DistanceKm: 12}}

	est, err := WithFallback(primary, secondary).Estimate(context.Background(), jakarta, bandung)
	require.NoError(t, err)
	assert.Equal(t, 12.0, est.DistanceKm)

	est, err = WithFallback(stubEstimator{est: Estimate{DistanceKm: 7}}, secondary).Estimate(context.Background(), jakarta, bandung)
	require.NoError(t, err)
	assert.Equal(t, 7.0, est.DistanceKm)
}

func TestRouting_Estimate(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/route/v1/driving/106.827153,-6.175392;107.609810,-6.914744"))
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":151300,"duration":10800}]}`))
	}))
	defer server.Close()

	r := NewRouting(models.RoutingConfig{BaseURL: server.URL, Timeout: time.Second})

	est, err := r.Estimate(context.Background(), jakarta, bandung)

	require.NoError(t, err)
	assert.InDelta(t, 151.3, est.DistanceKm, 0.001)
	assert.Equal(t, 3*time.Hour, est.Duration)
}

func TestRouting_NoRoute(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer server.Close()

	_, err := NewRouting(models.RoutingConfig{BaseURL: server.URL}).Estimate(context.Background(), jakarta, bandung)
	assert.Error(t, err)
}
