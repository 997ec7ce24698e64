// Package memory is an in-process Store that enforces the same constraints as the
// PostgreSQL schema. It backs service and handler tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/app/repositories"
)

type sequences struct {
	admin, hostel, room, allocation, swap, complaint int64
}

type state struct {
	students    map[string]models.Student
	admins      map[string]models.AdminUser
	hostels     map[int64]models.Hostel
	rooms       map[int64]models.Room
	allocations map[int64]models.Allocation
	swaps       map[int64]models.SwapRequest
	complaints  map[int64]models.Complaint
	seq         sequences
}

func newState() *state {
	return &state{
		students:    map[string]models.Student{},
		admins:      map[string]models.AdminUser{},
		hostels:     map[int64]models.Hostel{},
		rooms:       map[int64]models.Room{},
		allocations: map[int64]models.Allocation{},
		swaps:       map[int64]models.SwapRequest{},
		complaints:  map[int64]models.Complaint{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copies the state. Stored values are never mutated in place, only replaced,
// so a shallow copy of each map is a full snapshot.
func (s *state) clone() *state {
	return &state{
		students:    cloneMap(s.students),
		admins:      cloneMap(s.admins),
		hostels:     cloneMap(s.hostels),
		rooms:       cloneMap(s.rooms),
		allocations: cloneMap(s.allocations),
		swaps:       cloneMap(s.swaps),
		complaints:  cloneMap(s.complaints),
		seq:         s.seq,
	}
}

// Store is an in-memory repositories.Store
type Store struct {
	mu    sync.Mutex
	st    *state
	now   func() time.Time
	repos *repositories.Repositories
}

// NewStore creates an empty Store
func NewStore() *Store {
	s := &Store{st: newState(), now: time.Now}
	s.repos = s.bind(false)
	return s
}

// SetClock replaces the time source used for timestamps
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Repos returns repositories that take the store lock per call
func (s *Store) Repos() *repositories.Repositories {
	return s.repos
}

// WithTx runs fn with exclusive access to the store. If fn fails the store is
// restored to its state before the call.
func (s *Store) WithTx(ctx context.Context, fn repositories.TxFn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(ctx, s.bind(true)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) bind(inTx bool) *repositories.Repositories {
	v := &view{store: s, inTx: inTx}
	return &repositories.Repositories{
		Students:     &studentRepo{v},
		Admins:       &adminRepo{v},
		Hostels:      &hostelRepo{v},
		Allocations:  &allocationRepo{v},
		SwapRequests: &swapRepo{v},
		Complaints:   &complaintRepo{v},
		Stats:        &statsRepo{v},
	}
}

// view gives repositories access to the state, locking unless a transaction
// already holds the lock.
type view struct {
	store *Store
	inTx  bool
}

func (v *view) do(fn func(st *state, now time.Time) error) error {
	if !v.inTx {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
	}
	return fn(v.store.st, v.store.now())
}

// Snapshot helpers for assertions in tests.

// Room returns a copy of a room
func (s *Store) Room(id int64) (models.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.st.rooms[id]
	return r, ok
}

// Allocations returns copies of every allocation
func (s *Store) Allocations() []models.Allocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Allocation, 0, len(s.st.allocations))
	for _, a := range s.st.allocations {
		out = append(out, a)
	}
	return out
}

// SwapRequest returns a copy of a swap request
func (s *Store) SwapRequest(id int64) (models.SwapRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sr, ok := s.st.swaps[id]
	return sr, ok
}

// Complaint returns a copy of a complaint
func (s *Store) Complaint(id int64) (models.Complaint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.st.complaints[id]
	return c, ok
}

var _ repositories.Store = (*Store)(nil)
