package pricing

import (
	"fmt"
	"math"

	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/models"
)

// RateCard is a truck's complete tariff
type RateCard struct {
	RatePerKm     float64
	MinimumCharge float64
}

// RateCardFor extracts the tariff of a truck. A truck missing either part
// cannot be priced and is reported as a conflict on the truck record.
func RateCardFor(truck *models.Truck) (RateCard, error) {
	if truck.RatePerKm == nil || truck.MinimumCharge == nil {
		return RateCard{}, apperror.ConflictError{
			Resource: "truck",
			Msg:      fmt.Sprintf("truck %s has no complete rate card", truck.ID),
			Err:      apperror.ErrRateCardIncomplete,
		}
	}
	card := RateCard{RatePerKm: *truck.RatePerKm, MinimumCharge: *truck.MinimumCharge}
	if invalidAmount(card.RatePerKm) || invalidAmount(card.MinimumCharge) {
		return RateCard{}, apperror.ConflictError{
			Resource: "truck",
			Msg:      fmt.Sprintf("truck %s has a negative or non-finite rate", truck.ID),
			Err:      apperror.ErrRateCardIncomplete,
		}
	}
	return card, nil
}

// Quote prices a trip: max(distance * rate, minimum charge)
func Quote(distanceKm float64, card RateCard) (models.Pricing, error) {
	if invalidAmount(distanceKm) {
		return models.Pricing{}, apperror.ValidationError{Field: "distance_km", Msg: "must be a finite non-negative number"}
	}

	amount := math.Max(distanceKm*card.RatePerKm, card.MinimumCharge)

	return models.Pricing{
		DistanceKm:      distanceKm,
		RatePerKm:       card.RatePerKm,
		MinimumCharge:   card.MinimumCharge,
		EstimatedAmount: amount,
	}, nil
}

// RoundToMinorUnits converts an amount to the provider's smallest unit,
// where digits is the number of decimal places that unit represents.
func RoundToMinorUnits(amount float64, digits int) (int64, error) {
	if invalidAmount(amount) {
		return 0, apperror.ValidationError{Field: "amount", Msg: "must be a finite non-negative number"}
	}
	if digits < 0 {
		digits = 0
	}
	return int64(math.Round(amount * math.Pow10(digits))), nil
}

func invalidAmount(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}
