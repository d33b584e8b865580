package plugin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/modelgrid/internal/ctxlog"
	"github.com/vk/modelgrid/internal/project"
)

// ErrUnknownPlugin is returned when a required plugin is not available.
var ErrUnknownPlugin = errors.New("plugin not available")

// Applier applies available plugins to one project, each at most once.
type Applier struct {
	project   *project.Project
	available map[Token]Plugin
	applied   []Token
	applying  map[Token]bool
}

// NewApplier makes plugins available for p. Offering two plugins with the
// same token panics.
func NewApplier(p *project.Project, plugins ...Plugin) *Applier {
	a := &Applier{
		project:   p,
		available: make(map[Token]Plugin, len(plugins)),
		applying:  make(map[Token]bool),
	}
	for _, pl := range plugins {
		if _, exists := a.available[pl.Token()]; exists {
			panic(fmt.Sprintf("plugin %q offered twice", pl.Token()))
		}
		a.available[pl.Token()] = pl
	}
	return a
}

// Apply applies each token's plugin, after the plugins it requires, in the
// given order. Already applied plugins are skipped.
func (a *Applier) Apply(ctx context.Context, tokens ...Token) error {
	for _, token := range tokens {
		if err := a.apply(ctx, token, nil); err != nil {
			return err
		}
	}
	return nil
}

// Applied lists applied plugins in application order.
func (a *Applier) Applied() []Token {
	return append([]Token(nil), a.applied...)
}

// IsApplied reports whether token's plugin has been applied.
func (a *Applier) IsApplied(token Token) bool {
	for _, t := range a.applied {
		if t == token {
			return true
		}
	}
	return false
}

func (a *Applier) apply(ctx context.Context, token Token, chain []string) error {
	if a.IsApplied(token) {
		return nil
	}
	chain = append(chain, string(token))
	if a.applying[token] {
		return fmt.Errorf("plugin requirement cycle: %s", strings.Join(chain, " -> "))
	}

	pl, ok := a.available[token]
	if !ok {
		return fmt.Errorf("%q: %w", token, ErrUnknownPlugin)
	}

	a.applying[token] = true
	defer delete(a.applying, token)

	if req, ok := pl.(Requirer); ok {
		for _, dep := range req.Requires() {
			if err := a.apply(ctx, dep, chain); err != nil {
				return fmt.Errorf("plugin %q requires %q: %w", token, dep, err)
			}
		}
	}

	ctxlog.FromContext(ctx).Debug("Applying plugin.", "plugin", string(token))
	if err := pl.Apply(ctx, a.project); err != nil {
		return fmt.Errorf("applying plugin %q: %w", token, err)
	}
	a.applied = append(a.applied, token)
	return nil
}
