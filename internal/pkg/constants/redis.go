package constants

// Redis key formats
const (
	KeyBookingLock  = "lock:booking:%s" // Format: lock:booking:{booking_id}
	KeyGeocodeCache = "geocode:%s"      // Format: geocode:{normalized_address}
)

// Rate limiting
const (
	KeyRateLimit = "rate:limit:%s:%s" // Format: rate:limit:{resource}:{identifier}
)
