// Package nodestore defines the interface for tracking the realization state
// of model graph nodes.
//
// # Why Node Store Exists
//
// The registry keeps the immutable parts of a node (its path, creator and
// registered rules) separate from the mutable realization state (status and
// failure). Keeping the state behind an interface lets callers inspect it
// without touching registry internals, and keeps the registry's own lock
// scope small.
//
// # State Transitions
//
// Nodes follow this lifecycle:
//
//	Pending → Realizing → Realized OR Failed (with error)
//
// A node in Realized or Failed state never transitions again.
package nodestore

import (
	"context"

	"github.com/vk/modelgrid/internal/modelpath"
)

// Status is the realization status of a node.
type Status int

const (
	// StatusPending means the node is known but has not been realized.
	StatusPending Status = iota
	// StatusRealizing means the node's inputs are being resolved or its rules
	// are being applied.
	StatusRealizing
	// StatusRealized means every rule for the node has been applied.
	StatusRealized
	// StatusFailed means creating the node or applying one of its rules failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRealizing:
		return "realizing"
	case StatusRealized:
		return "realized"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the status can no longer change.
func (s Status) IsTerminal() bool {
	return s == StatusRealized || s == StatusFailed
}

// Store is the interface for managing the mutable realization state of nodes.
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for concurrent reads and writes.
//
// # Typical Implementation
//
// See internal/inmemorystore for the in-memory implementation.
type Store interface {
	// SetStatus updates the realization status of a node.
	SetStatus(ctx context.Context, path modelpath.Path, status Status) error

	// GetStatus returns StatusPending if no status has been set yet.
	GetStatus(ctx context.Context, path modelpath.Path) (Status, error)

	// SetError records why a node failed.
	SetError(ctx context.Context, path modelpath.Path, nodeErr error) error

	// GetError returns nil if the node has not failed.
	GetError(ctx context.Context, path modelpath.Path) (error, error)
}
