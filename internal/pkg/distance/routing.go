package distance

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/angkut/internal/pkg/circuitbreaker"
	"github.com/piresc/angkut/internal/pkg/http"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/internal/pkg/retry"
)

// Routing asks an OSRM-compatible road-routing service for driving distance
type Routing struct {
	client  *http.Client
	profile string
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
}

// NewRouting creates a road-routing estimator
func NewRouting(cfg models.RoutingConfig) *Routing {
	profile := cfg.ProfileRoute
	if profile == "" {
		profile = "driving"
	}
	rc := retry.DefaultConfig()
	rc.MaxRetries = 1
	return &Routing{
		client: http.NewClient(http.Config{
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			ServiceName: "routing",
			Retry:       &rc,
			Breaker: &circuitbreaker.Config{
				FailureThreshold: 5,
				Timeout:          30 * time.Second,
			},
		}),
		profile: profile,
	}
}

// Estimate implements Estimator
func (r *Routing) Estimate(ctx context.Context, origin, destination models.Coordinates) (Estimate, error) {
	if !origin.Valid() || !destination.Valid() {
		return Estimate{}, fmt.Errorf("invalid coordinates")
	}

	endpoint := fmt.Sprintf("/route/v1/%s/%f,%f;%f,%f?overview=false",
		r.profile,
		origin.Longitude, origin.Latitude,
		destination.Longitude, destination.Latitude)

	var resp routeResponse
	if err := r.client.GetJSON(ctx, endpoint, &resp); err != nil {
		return Estimate{}, fmt.Errorf("routing request failed: %w", err)
	}
	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return Estimate{}, fmt.Errorf("routing returned no route (code %q)", resp.Code)
	}

	route := resp.Routes[0]
	return Estimate{
		DistanceKm: route.Distance / 1000,
		Duration:   time.Duration(route.Duration * float64(time.Second)),
	}, nil
}
