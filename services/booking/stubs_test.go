package booking

import (
	"context"
	"encoding/json"
	"sync"

	roomRepo "harborview/database/repository/room"
	"harborview/models"

	"go.uber.org/zap"
)

// memoryDraftStore is an in-memory DraftStore for tests. Values are kept
// as JSON so every Get returns an independent copy, like the real store.
type memoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string][]byte
}

func newMemoryDraftStore() *memoryDraftStore {
	return &memoryDraftStore{drafts: make(map[string][]byte)}
}

func (s *memoryDraftStore) Save(_ context.Context, draft *models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.ID] = data
	return nil
}

func (s *memoryDraftStore) Get(_ context.Context, id string) (*models.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	var draft models.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *memoryDraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

// scriptedProber returns pre-scripted results per room and records the
// probe order.
type scriptedProber struct {
	results map[string]models.ProbeResult
	errs    map[string]error
	probed  []string
}

func (p *scriptedProber) Probe(_ context.Context, room models.RoomRef, _ models.DateRange) (models.ProbeResult, error) {
	p.probed = append(p.probed, room.ID)
	if err := p.errs[room.ID]; err != nil {
		return models.ProbeUnknown, err
	}
	return p.results[room.ID], nil
}

// stubGateway scripts the two gateway phases.
type stubGateway struct {
	createErr     error
	confirmErr    error
	confirmStatus string

	createCalls  int
	confirmCalls int
	lastIntent   models.IntentRequest
}

func (g *stubGateway) CreateIntent(_ context.Context, req models.IntentRequest) (*models.PaymentIntent, error) {
	g.createCalls++
	g.lastIntent = req
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &models.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret_abc",
		Status:       "requires_confirmation",
	}, nil
}

func (g *stubGateway) ConfirmIntent(_ context.Context, _ string, _ models.CardDetails) (*models.PaymentIntent, error) {
	g.confirmCalls++
	if g.confirmErr != nil {
		return nil, g.confirmErr
	}
	status := g.confirmStatus
	if status == "" {
		status = models.IntentStatusSucceeded
	}
	return &models.PaymentIntent{ID: "pi_test", Status: status}, nil
}

// stubBookingRepo counts finalization calls. When block is non-nil,
// CreateCash and CreateCard wait on it so in-flight overlap can be
// exercised deterministically.
type stubBookingRepo struct {
	mu        sync.Mutex
	cardCalls int
	cashCalls int
	failCard  error
	failCash  error
	reference string
	block     chan struct{}
	started   chan struct{}

	lastIntentID string
	lastAmount   float64
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{reference: "HV-TEST1234"}
}

func (r *stubBookingRepo) record(draft *models.BookingDraft, method models.PaymentMethod) *models.BookingRecord {
	return &models.BookingRecord{
		ID:          "bk-1",
		Reference:   r.reference,
		RoomID:      draft.RoomID,
		TotalAmount: draft.TotalPrice,
		Method:      method,
		Guest:       draft.Guest,
		Status:      "confirmed",
	}
}

func (r *stubBookingRepo) wait() {
	r.mu.Lock()
	started := r.started
	r.started = nil
	block := r.block
	r.mu.Unlock()
	if started != nil {
		close(started)
	}
	if block != nil {
		<-block
	}
}

func (r *stubBookingRepo) CreateCard(_ context.Context, paymentIntentID string, draft *models.BookingDraft) (*models.BookingRecord, error) {
	r.mu.Lock()
	r.cardCalls++
	r.lastIntentID = paymentIntentID
	r.lastAmount = draft.TotalPrice
	r.mu.Unlock()
	r.wait()
	if r.failCard != nil {
		return nil, r.failCard
	}
	return r.record(draft, models.PaymentMethodCard), nil
}

func (r *stubBookingRepo) CreateCash(_ context.Context, draft *models.BookingDraft) (*models.BookingRecord, error) {
	r.mu.Lock()
	r.cashCalls++
	r.lastAmount = draft.TotalPrice
	r.mu.Unlock()
	r.wait()
	if r.failCash != nil {
		return nil, r.failCash
	}
	return r.record(draft, models.PaymentMethodCash), nil
}

func (r *stubBookingRepo) GetByReference(_ context.Context, _ string) (*models.BookingRecord, error) {
	return nil, nil
}

// stubReconRepo records reconciliation entries.
type stubReconRepo struct {
	mu      sync.Mutex
	created []models.ReconciliationRecord
}

func (r *stubReconRepo) Create(_ context.Context, record models.ReconciliationRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = "recon-1"
	r.created = append(r.created, record)
	return record.ID, nil
}

func (r *stubReconRepo) ListUnresolved(_ context.Context) ([]models.ReconciliationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ReconciliationRecord(nil), r.created...), nil
}

func (r *stubReconRepo) MarkResolved(_ context.Context, _ string) error {
	return nil
}

// stubRoomRepo serves a fixed catalog.
type stubRoomRepo struct {
	rooms []models.RoomRef
}

func (r *stubRoomRepo) List(_ context.Context) ([]models.RoomRef, error) {
	return r.rooms, nil
}

func (r *stubRoomRepo) GetByID(_ context.Context, id string) (*models.RoomRef, error) {
	for _, room := range r.rooms {
		if room.ID == id {
			found := room
			return &found, nil
		}
	}
	return nil, roomRepo.ErrRoomNotFound
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
