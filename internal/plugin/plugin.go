// Package plugin lets rule registration declare the plugins it depends on,
// and applies those plugins to a project exactly once each.
package plugin

import (
	"context"

	"github.com/vk/modelgrid/internal/project"
)

// Token identifies a plugin.
type Token string

// ComponentModelBase is the plugin that creates the `components` and
// `binaries` nodes every component rule relies on.
const ComponentModelBase Token = "component-model-base"

// Plugin contributes types, nodes and rules to a project.
type Plugin interface {
	Token() Token
	Apply(ctx context.Context, p *project.Project) error
}

// Requirer is implemented by plugins that need other plugins applied first.
type Requirer interface {
	Requires() []Token
}

// Dependencies is the declarer rule registration uses to ask for plugins.
type Dependencies interface {
	Require(token Token)
}

// DependencySet collects required plugin tokens in first-required order.
// The zero value is ready to use.
type DependencySet struct {
	tokens []Token
}

// Require records token; repeated requirements are ignored.
func (s *DependencySet) Require(token Token) {
	for _, t := range s.tokens {
		if t == token {
			return
		}
	}
	s.tokens = append(s.tokens, token)
}

// Tokens returns the required tokens in first-required order.
func (s *DependencySet) Tokens() []Token {
	return append([]Token(nil), s.tokens...)
}
