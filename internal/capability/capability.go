// Package capability records which binary types each component type is able
// to produce. Declarations are explicit and made once, when a plugin is
// applied, so rule validation never needs to inspect generic signatures.
package capability

import (
	"fmt"
	"sync"

	"github.com/vk/modelgrid/internal/model"
	"github.com/vk/modelgrid/internal/modeltype"
)

// Declaration states that components of Owner produce binaries of Produces.
// Owner may be an interface, in which case it applies to every component
// type implementing it.
type Declaration struct {
	Owner    modeltype.Type
	Produces []modeltype.Type
}

// Table is an append-only, ordered set of producer-capability declarations.
type Table struct {
	mu    sync.RWMutex
	decls []Declaration
}

// NewTable creates an empty capability table.
func NewTable() *Table {
	return &Table{}
}

var (
	componentType = modeltype.TypeOf[model.Component]()
	binaryType    = modeltype.TypeOf[model.Binary]()
)

// Declare records that owner produces items. Declaring a non-component owner,
// a non-binary item or an empty item list is a programming error and panics.
func (t *Table) Declare(owner modeltype.Type, items ...modeltype.Type) {
	if !owner.AssignableTo(componentType) {
		panic(fmt.Sprintf("capability owner %s does not implement Component", owner))
	}
	if len(items) == 0 {
		panic(fmt.Sprintf("capability for %s declares no binary types", owner))
	}
	for _, it := range items {
		if !it.AssignableTo(binaryType) {
			panic(fmt.Sprintf("capability item %s of %s does not implement Binary", it, owner))
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.decls = append(t.decls, Declaration{Owner: owner, Produces: append([]modeltype.Type(nil), items...)})
}

// Declare is the typed form of Table.Declare.
func Declare[C model.Component](t *Table, items ...modeltype.Type) {
	t.Declare(modeltype.TypeOf[C](), items...)
}

// Produced lists every binary type owner is declared to produce, following
// declaration order. Declarations made against interfaces the owner
// implements are included.
func (t *Table) Produced(owner modeltype.Type) []modeltype.Type {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []modeltype.Type
	for _, d := range t.decls {
		if owner.AssignableTo(d.Owner) {
			out = append(out, d.Produces...)
		}
	}
	return out
}

// Supports reports whether owner declares a binary type compatible with item.
// A declared type is compatible when item is that type, one of its subtypes,
// or an interface the declared type satisfies.
func (t *Table) Supports(owner, item modeltype.Type) bool {
	for _, produced := range t.Produced(owner) {
		if item.AssignableTo(produced) || produced.AssignableTo(item) {
			return true
		}
	}
	return false
}

// Declarations returns a snapshot of the table in declaration order.
func (t *Table) Declarations() []Declaration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Declaration, len(t.decls))
	copy(out, t.decls)
	return out
}
