// Package project holds the state shared by every plugin applied during one
// configuration pass: the model registry, the producer-capability table and
// the registered component and binary types.
package project

import (
	"github.com/vk/modelgrid/internal/capability"
	"github.com/vk/modelgrid/internal/registry"
)

// Project is the target plugins are applied to.
type Project struct {
	Registry     *registry.Registry
	Capabilities *capability.Table
	Types        *Types
}

// New creates a project around reg. A nil reg selects a fresh registry with
// the in-memory node store.
func New(reg *registry.Registry) *Project {
	if reg == nil {
		reg = registry.New(nil)
	}
	return &Project{
		Registry:     reg,
		Capabilities: capability.NewTable(),
		Types:        NewTypes(),
	}
}
