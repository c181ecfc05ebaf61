package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/constants"
	"github.com/piresc/angkut/internal/pkg/database"
	"github.com/piresc/angkut/internal/pkg/http"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/internal/pkg/retry"
)

const defaultGeocodeCacheTTL = 24 * time.Hour

// GeocoderGW resolves addresses through the geocoding service. Results are
// cached in Redis by normalized address.
type GeocoderGW struct {
	client   *http.Client
	cache    *database.RedisClient
	cacheTTL time.Duration
}

type geocodeResponse struct {
	Results []struct {
		Latitude         float64 `json:"latitude"`
		Longitude        float64 `json:"longitude"`
		FormattedAddress string  `json:"formatted_address"`
	} `json:"results"`
}

// NewGeocoderGateway creates the geocoder adapter. cache may be nil.
func NewGeocoderGateway(cfg models.GeocoderConfig, cache *database.RedisClient) *GeocoderGW {
	rc := retry.DefaultConfig()
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultGeocodeCacheTTL
	}
	return &GeocoderGW{
		client: http.NewClient(http.Config{
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			ServiceName: "geocoder",
			Retry:       &rc,
		}),
		cache:    cache,
		cacheTTL: ttl,
	}
}

// Geocode returns the best match for address. An address the service cannot
// resolve is a NotFoundError.
func (g *GeocoderGW) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	normalized := normalizeAddress(address)
	if normalized == "" {
		return nil, apperror.ValidationError{Field: "address", Msg: "is empty"}
	}
	key := fmt.Sprintf(constants.KeyGeocodeCache, normalized)

	if cached, ok := g.fromCache(ctx, key); ok {
		return cached, nil
	}

	var resp geocodeResponse
	if err := g.client.GetJSON(ctx, "/v1/geocode?address="+url.QueryEscape(address), &resp); err != nil {
		var se *http.StatusError
		if errors.As(err, &se) && se.StatusCode == 404 {
			return nil, apperror.NotFoundError{Resource: "address", ID: address}
		}
		return nil, apperror.DependencyError{Dependency: "geocoder", Err: err}
	}
	if len(resp.Results) == 0 {
		return nil, apperror.NotFoundError{Resource: "address", ID: address}
	}

	best := resp.Results[0]
	result := &models.GeocodeResult{
		Coordinates:       models.Coordinates{Latitude: best.Latitude, Longitude: best.Longitude},
		NormalizedAddress: best.FormattedAddress,
	}
	g.toCache(ctx, key, result)
	return result, nil
}

func (g *GeocoderGW) fromCache(ctx context.Context, key string) (*models.GeocodeResult, bool) {
	if g.cache == nil {
		return nil, false
	}
	var result models.GeocodeResult
	found, err := g.cache.GetJSON(ctx, key, &result)
	if err != nil {
		logger.WarnCtx(ctx, "Ignoring geocode cache entry", logger.String("key", key), logger.Err(err))
		return nil, false
	}
	return &result, found
}

func (g *GeocoderGW) toCache(ctx context.Context, key string, result *models.GeocodeResult) {
	if g.cache == nil {
		return
	}
	if err := g.cache.SetJSON(ctx, key, result, g.cacheTTL); err != nil {
		logger.WarnCtx(ctx, "Geocode cache write failed", logger.String("key", key), logger.Err(err))
	}
}

// normalizeAddress lowercases and collapses whitespace so trivially different
// spellings share a cache entry
func normalizeAddress(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}
