package models

// RoomRef identifies a concrete bookable room unit as listed by the property.
type RoomRef struct {
	ID            string  `bson:"id" json:"id"`
	Name          string  `bson:"name" json:"name"`
	Category      string  `bson:"category" json:"category"`
	PricePerNight float64 `bson:"pricePerNight" json:"pricePerNight"`
	Capacity      int     `bson:"capacity" json:"capacity"` // guests per room
}

// DateRange is a date-only stay window in "2006-01-02" format.
type DateRange struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// ProbeResult is the outcome of a single availability check against one room.
type ProbeResult int

const (
	ProbeAvailable ProbeResult = iota
	ProbeUnavailable
	ProbeUnknown // probe failed; availability could not be verified
)

// Warning codes surfaced by the availability resolver.
const (
	WarnCategoryFallback = "categoryFallback"
	WarnAllBooked        = "allBooked"
	WarnProbeFailure     = "probeFailure"
)

// AvailabilityWarning is a non-blocking advisory attached to a resolved room.
// The resolver always returns a room; warnings render as banners, never errors.
type AvailabilityWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
