// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// implementation of the nodestore.Store interface.
//
// # Concurrency Model
//
// The store uses sync.Map: the key space (one key per model path) is small
// and stable once the registry is populated, while values change as nodes are
// realized. Each node's state is independent, so there is no need for a
// global lock.
package inmemorystore

import (
	"context"
	"sync"

	"github.com/vk/modelgrid/internal/modelpath"
	"github.com/vk/modelgrid/internal/nodestore"
)

// Store is an in-memory implementation of nodestore.Store.
//
// It maintains two independent maps keyed by the canonical path string:
//   - states: node path → nodestore.Status
//   - errors: node path → error for failed nodes
type Store struct {
	states sync.Map
	errors sync.Map
}

// New creates a new, empty in-memory node state store.
func New() nodestore.Store {
	return &Store{}
}

// SetStatus updates the realization status of a node.
func (s *Store) SetStatus(ctx context.Context, path modelpath.Path, status nodestore.Status) error {
	s.states.Store(path.String(), status)
	return nil
}

// GetStatus retrieves the realization status of a node.
// If a status has not been set, it returns StatusPending.
func (s *Store) GetStatus(ctx context.Context, path modelpath.Path) (nodestore.Status, error) {
	status, ok := s.states.Load(path.String())
	if !ok {
		return nodestore.StatusPending, nil
	}
	return status.(nodestore.Status), nil
}

// SetError records the failure of a node.
func (s *Store) SetError(ctx context.Context, path modelpath.Path, nodeErr error) error {
	s.errors.Store(path.String(), nodeErr)
	return nil
}

// GetError retrieves the recorded failure of a node.
func (s *Store) GetError(ctx context.Context, path modelpath.Path) (error, error) {
	err, ok := s.errors.Load(path.String())
	if !ok {
		return nil, nil
	}
	return err.(error), nil
}
