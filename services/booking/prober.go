package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"harborview/models"
)

// AvailabilityProber issues a single availability check for one room and
// one date range. A non-nil error means the check could not be completed
// and the result must be treated as unknown.
type AvailabilityProber interface {
	Probe(ctx context.Context, room models.RoomRef, dr models.DateRange) (models.ProbeResult, error)
}

// HTTPProber checks availability against the external availability service.
type HTTPProber struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPProber returns a prober with a per-probe timeout.
func NewHTTPProber(baseURL string, timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProber) Probe(ctx context.Context, room models.RoomRef, dr models.DateRange) (models.ProbeResult, error) {
	q := url.Values{}
	q.Set("checkIn", dr.CheckIn)
	q.Set("checkOut", dr.CheckOut)
	endpoint := fmt.Sprintf("%s/rooms/%s/availability?%s", p.BaseURL, url.PathEscape(room.ID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.ProbeUnknown, fmt.Errorf("failed to build availability request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return models.ProbeUnknown, fmt.Errorf("availability probe failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ProbeUnknown, fmt.Errorf("availability service returned status %d", resp.StatusCode)
	}

	var body struct {
		IsAvailable bool `json:"isAvailable"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.ProbeUnknown, fmt.Errorf("failed to decode availability response: %w", err)
	}

	if body.IsAvailable {
		return models.ProbeAvailable, nil
	}
	return models.ProbeUnavailable, nil
}
