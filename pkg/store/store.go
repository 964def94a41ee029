// Package store keeps generated networks in memory so the API can isolate
// them by id.
package store

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dd0wney/cluso-isolate/pkg/logging"
	"github.com/dd0wney/cluso-isolate/pkg/metrics"
	"github.com/dd0wney/cluso-isolate/pkg/network"
	"github.com/dd0wney/cluso-isolate/pkg/validation"
	"github.com/google/uuid"
)

// ErrNotFound is returned for an unknown network id
var ErrNotFound = errors.New("network not found")

// DefaultCapacity is used when New is given a non-positive capacity
const DefaultCapacity = 100

// Summary describes a stored network without its entities
type Summary struct {
	ID        string         `json:"id"`
	Seed      uint64         `json:"seed"`
	Counts    network.Counts `json:"counts"`
	CreatedAt time.Time      `json:"createdAt"`
}

type entry struct {
	net     *network.Network
	created time.Time
}

// Store is a bounded, concurrency-safe map of networks. When full, the
// oldest network is evicted.
type Store struct {
	mu       sync.RWMutex
	networks map[string]entry
	order    []string // insertion order, oldest first
	capacity int

	logger  logging.Logger
	metrics *metrics.Registry
}

// New creates a store. logger and registry may be nil.
func New(capacity int, logger logging.Logger, registry *metrics.Registry) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	capacity = validation.ClampInt(capacity, 1, validation.MaxStoredNetworks)
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Store{
		networks: make(map[string]entry),
		order:    make([]string, 0, capacity),
		capacity: capacity,
		logger:   logger.With(logging.Component("store")),
		metrics:  registry,
	}
}

// Put stores n and returns its id. A network without an id is given one.
// Storing an id again replaces the earlier network and refreshes its age.
func (s *Store) Put(n *network.Network) (string, error) {
	if n == nil {
		return "", network.ErrNilNetwork
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.networks[n.ID]; exists {
		s.removeLocked(n.ID)
	}
	for len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.removeLocked(oldest)
		s.logger.Info("evicted network", logging.NetworkID(oldest))
		if s.metrics != nil {
			s.metrics.RecordEviction()
		}
	}

	s.networks[n.ID] = entry{net: n, created: time.Now().UTC()}
	s.order = append(s.order, n.ID)
	s.updateGauge()
	return n.ID, nil
}

// Get returns the network stored under id
func (s *Store) Get(id string) (*network.Network, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.networks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e.net, nil
}

// Delete removes the network stored under id
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.networks[id]; !ok {
		return ErrNotFound
	}
	s.removeLocked(id)
	s.updateGauge()
	return nil
}

// List summarises stored networks, oldest first
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.order))
	for _, id := range s.order {
		e := s.networks[id]
		out = append(out, Summary{
			ID:        id,
			Seed:      e.net.Seed,
			Counts:    e.net.Counts(),
			CreatedAt: e.created,
		})
	}
	return out
}

// Len returns the number of stored networks
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.networks)
}

// Capacity returns the maximum number of stored networks
func (s *Store) Capacity() int {
	return s.capacity
}

func (s *Store) removeLocked(id string) {
	delete(s.networks, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *Store) updateGauge() {
	if s.metrics != nil {
		s.metrics.SetStoredNetworks(len(s.networks))
	}
}
