/*
store.go - The authoritative leave-request store

PURPOSE:
  Owns the ordered collection of Request entities and mediates all
  mutations. Replaces the ambient mutable array of the original product
  with an explicit store object and an injected persistence collaborator.

LIFECYCLE:
  submit   -> validate, snapshot requester, insert at head as Pending
  approve  -> Pending -> Approved, refresh UpdatedAt
  reject   -> Pending -> Rejected, refresh UpdatedAt
  Approved and Rejected are terminal; requests are never deleted
  (retained indefinitely for history and analytics).

ORDERING CONTRACT:
  The collection is newest-first. Submit inserts at the head, and every
  listing returns most-recent-first. Callers display newest first; this
  is an exposed contract, not an implementation accident.

CONCURRENCY:
  All mutations are serialized with a mutex so the Pending -> terminal
  transition is atomic and exactly-once: of two concurrent approve/reject
  calls on the same id, the loser fails with ErrInvalidTransition. Reads
  copy the slice under a read lock and observe a consistent snapshot.

PERSISTENCE:
  The collaborator's Save runs synchronously after every mutation. A save
  failure is reported to the caller as *SaveError but does not roll back
  the in-memory mutation; durability is best-effort in this scope.

SEE ALSO:
  - validate.go:  Re-validation on submit
  - analytics.go: Read-only aggregates over Snapshot
*/
package leave

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// =============================================================================
// PERSISTENCE COLLABORATOR
// =============================================================================

// Persistence is the durability collaborator. Load restores the ordered
// collection at startup; Save is invoked after every mutation with the
// full newest-first snapshot.
type Persistence interface {
	Load(ctx context.Context) ([]Request, error)
	Save(ctx context.Context, requests []Request) error
}

// =============================================================================
// STORE
// =============================================================================

type Store struct {
	mu          sync.RWMutex
	requests    []Request // newest-first
	persistence Persistence

	now    func() time.Time
	newID  func() RequestID
	logger zerolog.Logger
}

type StoreOption func(*Store)

// WithClock overrides the store's time source. Used by tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides request id assignment. Used by tests and seeds.
func WithIDGenerator(gen func() RequestID) StoreOption {
	return func(s *Store) { s.newID = gen }
}

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger.With().Str("component", "leave.store").Logger() }
}

// NewStore creates an empty store backed by the given persistence
// collaborator. Call Load to restore previously saved requests.
func NewStore(persistence Persistence, opts ...StoreOption) *Store {
	s := &Store{
		persistence: persistence,
		now:         time.Now,
		newID:       func() RequestID { return RequestID(uuid.NewString()) },
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the persisted snapshot. Called once
// at startup before the store is shared.
func (s *Store) Load(ctx context.Context) error {
	requests, err := s.persistence.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = requests
	s.logger.Info().Int("count", len(requests)).Msg("request store loaded")
	return nil
}

// Replace swaps the entire collection, newest-first. Used by seed loading.
func (s *Store) Replace(ctx context.Context, requests []Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append([]Request(nil), requests...)
	return s.saveLocked(ctx)
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Submit validates the draft as of now, snapshots the requester, and
// inserts the new Pending request at the head of the collection.
// Validation failure returns *ValidationFailedError and leaves the store
// untouched. A persistence failure returns the created request together
// with a *SaveError; the in-memory insert stands.
func (s *Store) Submit(ctx context.Context, draft Draft, requester User) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if violations := Validate(draft, DateOf(now)); len(violations) > 0 {
		s.logger.Warn().
			Str("requester_id", requester.ID).
			Str("leave_type", string(draft.Type)).
			Int("violations", len(violations)).
			Msg("submission rejected by validation")
		return nil, &ValidationFailedError{Violations: violations}
	}

	req := Request{
		ID:                  s.newID(),
		RequesterID:         requester.ID,
		RequesterName:       requester.Name,
		RequesterDepartment: requester.Department,
		Type:                draft.Type,
		StartDate:           draft.StartDate,
		EndDate:             draft.EndDate,
		Duration:            ResolveDuration(draft),
		Reason:              draft.Reason,
		Attachment:          draft.Attachment,
		Status:              StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	// Insert at head: newest-first iteration order is part of the contract.
	s.requests = append([]Request{req}, s.requests...)

	s.logger.Info().
		Str("request_id", string(req.ID)).
		Str("requester_id", req.RequesterID).
		Str("leave_type", string(req.Type)).
		Str("duration", req.Duration.String()).
		Msg("leave request submitted")

	if err := s.saveLocked(ctx); err != nil {
		return &req, &SaveError{Err: err}
	}
	return &req, nil
}

// Approve transitions a Pending request to Approved.
func (s *Store) Approve(ctx context.Context, id RequestID) (*Request, error) {
	return s.transition(ctx, id, StatusApproved)
}

// Reject transitions a Pending request to Rejected.
func (s *Store) Reject(ctx context.Context, id RequestID) (*Request, error) {
	return s.transition(ctx, id, StatusRejected)
}

func (s *Store) transition(ctx context.Context, id RequestID, target Status) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.requests {
		if s.requests[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &NotFoundError{ID: id}
	}

	req := &s.requests[idx]
	if req.Status != StatusPending {
		s.logger.Warn().
			Str("request_id", string(id)).
			Str("status", string(req.Status)).
			Str("target", string(target)).
			Msg("stale transition attempt")
		return nil, &InvalidTransitionError{ID: id, Status: req.Status, Target: target}
	}

	req.Status = target
	req.UpdatedAt = s.now()

	s.logger.Info().
		Str("request_id", string(id)).
		Str("status", string(target)).
		Msg("leave request transitioned")

	updated := *req
	if err := s.saveLocked(ctx); err != nil {
		return &updated, &SaveError{Err: err}
	}
	return &updated, nil
}

func (s *Store) saveLocked(ctx context.Context) error {
	snapshot := make([]Request, len(s.requests))
	copy(snapshot, s.requests)
	if err := s.persistence.Save(ctx, snapshot); err != nil {
		s.logger.Error().Err(err).Msg("persistence save failed")
		return err
	}
	return nil
}

// =============================================================================
// READS
// =============================================================================

// Get returns a single request by id.
func (s *Store) Get(id RequestID) (*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.requests {
		if s.requests[i].ID == id {
			req := s.requests[i]
			return &req, nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

// ListAll returns every request, newest-first.
func (s *Store) ListAll() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// ListByRequester returns one requester's requests, newest-first.
func (s *Store) ListByRequester(requesterID string) []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Request
	for _, req := range s.requests {
		if req.RequesterID == requesterID {
			out = append(out, req)
		}
	}
	return out
}

// ListPending returns requests awaiting a decision, newest-first.
func (s *Store) ListPending() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Request
	for _, req := range s.requests {
		if req.Status == StatusPending {
			out = append(out, req)
		}
	}
	return out
}

// Snapshot is an alias of ListAll used by analytics for clarity: the
// returned slice is an isolated copy, never a live view.
func (s *Store) Snapshot() []Request {
	return s.ListAll()
}
