package distance

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/internal/utils"
)

// DefaultAverageSpeedKmh is used to turn straight-line distance into time
const DefaultAverageSpeedKmh = 40.0

// Estimate is a travel estimate between two points
type Estimate struct {
	DistanceKm float64
	Duration   time.Duration
}

// Estimator turns two coordinates into a travel estimate
type Estimator interface {
	Estimate(ctx context.Context, origin, destination models.Coordinates) (Estimate, error)
}

// Haversine estimates straight-line distance at a constant average speed
type Haversine struct {
	AverageSpeedKmh float64
}

// NewHaversine creates a straight-line estimator
func NewHaversine(avgSpeedKmh float64) *Haversine {
	if avgSpeedKmh <= 0 {
		avgSpeedKmh = DefaultAverageSpeedKmh
	}
	return &Haversine{AverageSpeedKmh: avgSpeedKmh}
}

// Estimate implements Estimator
func (h *Haversine) Estimate(_ context.Context, origin, destination models.Coordinates) (Estimate, error) {
	if !origin.Valid() || !destination.Valid() {
		return Estimate{}, fmt.Errorf("invalid coordinates")
	}
	km := utils.CalculateDistance(origin, destination)
	hours := km / h.AverageSpeedKmh
	return Estimate{
		DistanceKm: km,
		Duration:   time.Duration(hours * float64(time.Hour)),
	}, nil
}

// Fallback asks the primary estimator first and the secondary when it fails
type Fallback struct {
	primary   Estimator
	secondary Estimator
}

// WithFallback chains two estimators
func WithFallback(primary, secondary Estimator) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

// Estimate implements Estimator
func (f *Fallback) Estimate(ctx context.Context, origin, destination models.Coordinates) (Estimate, error) {
	est, err := f.primary.Estimate(ctx, origin, destination)
	if err == nil {
		return est, nil
	}

	logger.WarnCtx(ctx, "Primary distance estimator failed, falling back",
		logger.Err(err))

	return f.secondary.Estimate(ctx, origin, destination)
}
