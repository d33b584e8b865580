package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vk/modelgrid/internal/ctxlog"
	"github.com/vk/modelgrid/internal/dag"
	"github.com/vk/modelgrid/internal/inmemorystore"
	"github.com/vk/modelgrid/internal/modelpath"
	"github.com/vk/modelgrid/internal/nodestore"
)

// Creator builds the instance of a node when it is first realized.
type Creator func(ctx context.Context) (any, error)

type node struct {
	path       modelpath.Path
	descriptor string
	creator    Creator
	instance   any
}

// Registry holds every node of one model graph and the rules that target
// them.
type Registry struct {
	// mu guards nodes, order and rules.
	mu    sync.Mutex
	nodes map[string]*node
	order []string
	rules map[string][]MutationRule

	// realizeMu serializes realization, so rules for one subject never run
	// concurrently.
	realizeMu sync.Mutex
	store     nodestore.Store
}

// New creates an empty registry. A nil store selects the in-memory store.
func New(store nodestore.Store) *Registry {
	if store == nil {
		store = inmemorystore.New()
	}
	return &Registry{
		nodes: make(map[string]*node),
		rules: make(map[string][]MutationRule),
		store: store,
	}
}

// Create declares the node at path. descriptor names the code that created
// it in diagnostics.
func (r *Registry) Create(path modelpath.Path, descriptor string, creator Creator) error {
	if creator == nil {
		panic(fmt.Sprintf("registry: nil creator for %s", path))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := path.String()
	if existing, ok := r.nodes[key]; ok {
		return fmt.Errorf("cannot create %s using %s, already created by %s: %w", path, descriptor, existing.descriptor, ErrDuplicateNode)
	}
	r.nodes[key] = &node{path: path, descriptor: descriptor, creator: creator}
	r.order = append(r.order, key)
	return nil
}

// Mutate registers rule against its subject. The subject does not need to
// exist yet; it only has to exist by the time it is realized. Rules added
// while the subject is being realized are applied in the same pass.
func (r *Registry) Mutate(rule MutationRule) error {
	subject := rule.Subject().Path
	status, err := r.store.GetStatus(context.Background(), subject)
	if err != nil {
		return fmt.Errorf("reading status of %s: %w", subject, err)
	}
	if status.IsTerminal() {
		return fmt.Errorf("cannot register rule %s against %s (%s): %w", rule.Descriptor(), subject, status, ErrRealized)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := subject.String()
	r.rules[key] = append(r.rules[key], rule)
	return nil
}

// Paths returns the declared node paths in creation order.
func (r *Registry) Paths() []modelpath.Path {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]modelpath.Path, len(r.order))
	for i, key := range r.order {
		out[i] = r.nodes[key].path
	}
	return out
}

// Rules returns the rules registered against path in registration order.
func (r *Registry) Rules(path modelpath.Path) []MutationRule {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]MutationRule(nil), r.rules[path.String()]...)
}

// Status reports the realization status of path.
func (r *Registry) Status(ctx context.Context, path modelpath.Path) (nodestore.Status, error) {
	return r.store.GetStatus(ctx, path)
}

// Validate checks that every rule subject and input is bound to a node and
// that rule inputs are acyclic. All problems are reported together.
func (r *Registry) Validate() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var problems []error
	g := dag.New()
	for _, key := range r.order {
		g.AddNode(key)
	}

	for _, key := range r.ruleKeys() {
		for _, rule := range r.rules[key] {
			if _, ok := r.nodes[key]; !ok {
				problems = append(problems, fmt.Errorf("rule %s: subject %s: %w", rule.Descriptor(), rule.Subject(), ErrUnbound))
				continue
			}
			for _, in := range rule.Inputs() {
				inKey := in.Path.String()
				if _, ok := r.nodes[inKey]; !ok {
					problems = append(problems, fmt.Errorf("rule %s: input %s: %w", rule.Descriptor(), in, ErrUnbound))
					continue
				}
				if inKey == key {
					problems = append(problems, fmt.Errorf("rule %s: %s is both subject and input: %w", rule.Descriptor(), key, ErrCycle))
					continue
				}
				if err := g.AddEdge(inKey, key); err != nil {
					problems = append(problems, fmt.Errorf("rule %s: %w", rule.Descriptor(), err))
				}
			}
		}
	}

	if err := g.DetectCycles(); err != nil {
		problems = append(problems, fmt.Errorf("%w: %w", ErrCycle, err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("model validation failed:\n%w", errors.Join(problems...))
	}
	return nil
}

// ruleKeys lists subject keys with rules: declared nodes first in creation
// order, then dangling subjects in first-registration order.
func (r *Registry) ruleKeys() []string {
	keys := make([]string, 0, len(r.rules))
	seen := make(map[string]bool, len(r.rules))
	for _, key := range r.order {
		if _, ok := r.rules[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var dangling []string
	for key := range r.rules {
		if !seen[key] {
			dangling = append(dangling, key)
		}
	}
	// Map iteration is unordered; sort the leftovers for stable reports.
	slices.Sort(dangling)
	return append(keys, dangling...)
}

// Realize returns the fully mutated instance at path, realizing it and its
// inputs if needed. A node that failed keeps failing with the same error.
func (r *Registry) Realize(ctx context.Context, path modelpath.Path) (any, error) {
	r.realizeMu.Lock()
	defer r.realizeMu.Unlock()
	return r.realize(ctx, path, nil)
}

// Get is the typed form of Realize.
func Get[T any](ctx context.Context, r *Registry, path modelpath.Path) (T, error) {
	var zero T
	v, err := r.Realize(ctx, path)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%s is %T: %w", path, v, ErrTypeMismatch)
	}
	return t, nil
}

func (r *Registry) realize(ctx context.Context, path modelpath.Path, visiting []string) (any, error) {
	logger := ctxlog.FromContext(ctx).With("path", path.String())
	key := path.String()

	r.mu.Lock()
	n, ok := r.nodes[key]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnbound)
	}

	status, err := r.store.GetStatus(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading status of %s: %w", path, err)
	}
	switch status {
	case nodestore.StatusRealized:
		return n.instance, nil
	case nodestore.StatusFailed:
		nodeErr, _ := r.store.GetError(ctx, path)
		return nil, nodeErr
	case nodestore.StatusRealizing:
		return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(append(visiting, key), " -> "))
	}

	visiting = append(visiting, key)
	if err := r.store.SetStatus(ctx, path, nodestore.StatusRealizing); err != nil {
		return nil, err
	}
	logger.Debug("Realizing model node.", "created_by", n.descriptor)

	instance, err := n.creator(ctx)
	if err != nil {
		return nil, r.fail(ctx, path, fmt.Errorf("creating %s using %s: %w", path, n.descriptor, err))
	}
	n.instance = instance

	// Rules may register further rules for this node while it is being
	// realized, so the slice is re-read on every iteration.
	for i := 0; ; i++ {
		r.mu.Lock()
		rules := r.rules[key]
		r.mu.Unlock()
		if i >= len(rules) {
			break
		}
		rule := rules[i]

		if err := r.apply(ctx, n, rule, visiting); err != nil {
			return nil, r.fail(ctx, path, err)
		}
	}

	if err := r.store.SetStatus(ctx, path, nodestore.StatusRealized); err != nil {
		return nil, err
	}
	logger.Debug("Model node realized.")
	return instance, nil
}

func (r *Registry) apply(ctx context.Context, n *node, rule MutationRule, visiting []string) error {
	logger := ctxlog.FromContext(ctx)

	if !rule.Subject().accepts(n.instance) {
		return fmt.Errorf("rule %s expects %s but %s is %T: %w", rule.Descriptor(), rule.Subject(), n.path, n.instance, ErrTypeMismatch)
	}

	if obs, ok := rule.(InputObserver); ok {
		obs.ResolvingInputs()
	}
	refs := rule.Inputs()
	values := make([]any, len(refs))
	for i, ref := range refs {
		v, err := r.realize(ctx, ref.Path, visiting)
		if err != nil {
			return fmt.Errorf("resolving input %s of rule %s: %w", ref, rule.Descriptor(), err)
		}
		if !ref.accepts(v) {
			return fmt.Errorf("input %s of rule %s is %T: %w", ref, rule.Descriptor(), v, ErrTypeMismatch)
		}
		values[i] = v
	}

	logger.Debug("Applying model rule.", "rule", rule.Descriptor(), "subject", n.path.String(), "inputs", len(refs))
	if err := rule.Mutate(ctx, n.instance, Inputs{refs: refs, values: values}); err != nil {
		return &RuleExecutionError{Descriptor: rule.Descriptor(), Path: n.path, Err: err}
	}
	return nil
}

func (r *Registry) fail(ctx context.Context, path modelpath.Path, err error) error {
	ctxlog.FromContext(ctx).Error("Model node realization failed.", "path", path.String(), "error", err)
	_ = r.store.SetError(ctx, path, err)
	_ = r.store.SetStatus(ctx, path, nodestore.StatusFailed)
	return err
}
