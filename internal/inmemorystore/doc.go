// Package inmemorystore provides a thread-safe, in-memory implementation
// of the nodestore.Store interface. It is suitable for a single
// configuration pass where node state does not need to be persisted.
package inmemorystore
