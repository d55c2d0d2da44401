package booking

import (
	"context"
	"errors"
	"strings"

	"harborview/models"

	"go.uber.org/zap"
)

// ErrNoCandidates is returned only when the candidate list is empty;
// in every other case the resolver returns a room.
var ErrNoCandidates = errors.New("no candidate rooms to resolve")

// ResolveResult is a resolved room plus an optional non-blocking warning.
type ResolveResult struct {
	Room    models.RoomRef              `json:"room"`
	Warning *models.AvailabilityWarning `json:"warning,omitempty"`
}

// AvailabilityResolver finds a concrete bookable unit for a desired room
// category and date range. Probing is best-effort and never blocks
// checkout: the resolver always returns a room, degrading to warnings when
// availability cannot be confirmed. The downstream booking creation is the
// authoritative check.
type AvailabilityResolver struct {
	Prober AvailabilityProber
	Logger *zap.Logger
}

func NewAvailabilityResolver(prober AvailabilityProber, logger *zap.Logger) *AvailabilityResolver {
	return &AvailabilityResolver{Prober: prober, Logger: logger}
}

// probeOutcome accumulates the sequential probe loop so the three-way
// exhaustion outcome (all booked / all probes failed / nothing probed) is
// an explicit result rather than implicit fall-through.
type probeOutcome struct {
	probed      int
	unavailable int
	unknown     int
}

// Resolve filters candidates to the target category, then probes them in
// list order, one probe in flight at a time, returning the first available
// room. Probe failures count as unknown and never abort the loop.
func (r *AvailabilityResolver) Resolve(ctx context.Context, candidates []models.RoomRef, category string, dr models.DateRange) (ResolveResult, error) {
	if len(candidates) == 0 {
		return ResolveResult{}, ErrNoCandidates
	}

	matched := filterByCategory(candidates, category)
	if len(matched) == 0 {
		// Preserved fallback: no candidate matches the category, so the
		// first room of the unfiltered list is used. It may be an
		// incompatible room type; the warning makes that visible.
		r.Logger.Warn("no rooms match requested category, falling back to first room",
			zap.String("category", category), zap.String("roomId", candidates[0].ID))
		return ResolveResult{
			Room: candidates[0],
			Warning: &models.AvailabilityWarning{
				Code:    models.WarnCategoryFallback,
				Message: "No rooms matched the requested category; showing the first available listing instead.",
			},
		}, nil
	}

	var outcome probeOutcome
	for _, room := range matched {
		result, err := r.Prober.Probe(ctx, room, dr)
		if err != nil {
			r.Logger.Warn("availability probe failed",
				zap.String("roomId", room.ID), zap.Error(err))
			result = models.ProbeUnknown
		}
		outcome.probed++

		switch result {
		case models.ProbeAvailable:
			// First available wins. Remaining candidates are never probed.
			return ResolveResult{Room: room}, nil
		case models.ProbeUnavailable:
			outcome.unavailable++
		default:
			outcome.unknown++
		}
	}

	return ResolveResult{
		Room:    matched[0],
		Warning: exhaustionWarning(outcome),
	}, nil
}

// exhaustionWarning classifies an exhausted candidate list.
func exhaustionWarning(o probeOutcome) *models.AvailabilityWarning {
	switch {
	case o.probed > 0 && o.unknown == o.probed:
		return &models.AvailabilityWarning{
			Code:    models.WarnProbeFailure,
			Message: "Availability could not be verified, proceed with caution.",
		}
	case o.unavailable > 0:
		return &models.AvailabilityWarning{
			Code:    models.WarnAllBooked,
			Message: "All rooms of this type appear to be booked for the selected dates.",
		}
	default:
		return nil
	}
}

func filterByCategory(rooms []models.RoomRef, category string) []models.RoomRef {
	if category == "" {
		return rooms
	}
	var matched []models.RoomRef
	for _, room := range rooms {
		if strings.EqualFold(room.Category, category) || strings.EqualFold(room.Name, category) {
			matched = append(matched, room)
		}
	}
	return matched
}
