package logger

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Field is a structured log field. Callers build fields through this package
// and never import zap themselves.
type Field = zap.Field

func String(key, val string) Field           { return zap.String(key, val) }
func Strings(key string, val []string) Field { return zap.Strings(key, val) }
func Int(key string, val int) Field          { return zap.Int(key, val) }
func Int64(key string, val int64) Field      { return zap.Int64(key, val) }
func Uint32(key string, val uint32) Field    { return zap.Uint32(key, val) }
func Float64(key string, val float64) Field  { return zap.Float64(key, val) }
func Bool(key string, val bool) Field        { return zap.Bool(key, val) }
func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}
func Any(key string, val interface{}) Field { return zap.Any(key, val) }

// Err attaches err under the "error" key
func Err(err error) Field { return zap.Error(err) }

// Ids that appear on most booking and payment log lines, so they can be
// searched under one stable key

func BookingID(id uuid.UUID) Field { return zap.Stringer("booking_id", id) }
func PaymentID(id uuid.UUID) Field { return zap.Stringer("payment_id", id) }
func TruckID(id uuid.UUID) Field   { return zap.Stringer("truck_id", id) }
