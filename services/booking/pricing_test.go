package booking

import (
	"testing"

	"harborview/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNights(t *testing.T) {
	nights, err := Nights("2025-06-01", "2025-06-03")
	require.NoError(t, err)
	assert.Equal(t, 2, nights)

	_, err = Nights("2025-06-03", "2025-06-01")
	assert.Error(t, err)

	_, err = Nights("2025-06-01", "2025-06-01")
	assert.Error(t, err, "check-out must be strictly after check-in")

	_, err = Nights("junk", "2025-06-01")
	assert.Error(t, err)
}

func TestRoomQuantityCeiling(t *testing.T) {
	assert.Equal(t, 1, RoomQuantityFor(2, 0, 2))
	assert.Equal(t, 2, RoomQuantityFor(2, 1, 2))
	assert.Equal(t, 3, RoomQuantityFor(4, 2, 2))
	assert.Equal(t, 1, RoomQuantityFor(1, 0, 4))
	// Degenerate capacity never divides by zero.
	assert.Equal(t, 1, RoomQuantityFor(2, 0, 0))
}

func TestRepriceDerivesTotal(t *testing.T) {
	draft := &models.BookingDraft{
		RoomCapacity:      2,
		RoomPricePerNight: 100,
		CheckIn:           "2025-06-01",
		CheckOut:          "2025-06-03",
		Adults:            3,
	}
	Reprice(draft)

	assert.Equal(t, 2, draft.RoomQuantity)
	assert.Equal(t, 2, draft.Nights)
	assert.Equal(t, 400.0, draft.TotalPrice)
}

func TestRepriceZeroesInvalidRange(t *testing.T) {
	draft := &models.BookingDraft{
		RoomCapacity:      2,
		RoomPricePerNight: 100,
		CheckIn:           "2025-06-03",
		CheckOut:          "2025-06-01",
		Adults:            2,
	}
	Reprice(draft)

	assert.Zero(t, draft.Nights)
	assert.Zero(t, draft.TotalPrice)
}
