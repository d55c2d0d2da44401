package booking

import (
	"fmt"
	"math"
	"time"

	"harborview/models"
)

const dateLayout = "2006-01-02"

// Nights returns the number of nights between two date-only values.
// The stay must end after it starts.
func Nights(checkIn, checkOut string) (int, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return 0, fmt.Errorf("invalid check-in date %q: %w", checkIn, err)
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return 0, fmt.Errorf("invalid check-out date %q: %w", checkOut, err)
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights <= 0 {
		return 0, fmt.Errorf("check-out %s must be after check-in %s", checkOut, checkIn)
	}
	return nights, nil
}

// RoomQuantityFor derives how many rooms the party needs from the guest
// count and the per-room capacity (ceiling division, never below one).
func RoomQuantityFor(adults, children, capacity int) int {
	if capacity <= 0 {
		return 1
	}
	guests := adults + children
	if guests <= 0 {
		return 1
	}
	return int(math.Ceil(float64(guests) / float64(capacity)))
}

// TotalPrice computes pricePerNight * quantity * nights.
func TotalPrice(pricePerNight float64, quantity, nights int) float64 {
	return pricePerNight * float64(quantity) * float64(nights)
}

// Reprice recomputes the draft's derived pricing fields. Drafts with an
// incomplete or invalid date range keep zeroed derived fields; validation
// of the range itself happens at the update boundary.
func Reprice(d *models.BookingDraft) {
	d.RoomQuantity = RoomQuantityFor(d.Adults, d.Children, d.RoomCapacity)
	nights, err := Nights(d.CheckIn, d.CheckOut)
	if err != nil {
		d.Nights = 0
		d.TotalPrice = 0
		return
	}
	d.Nights = nights
	d.TotalPrice = TotalPrice(d.RoomPricePerNight, d.RoomQuantity, nights)
}
