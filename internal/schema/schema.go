// Package schema holds the gohcl decoding targets of model files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// ComponentBlockType is the block type declaring a component.
const ComponentBlockType = "component"

// File is the top-level structure of a model file.
var File = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: ComponentBlockType, LabelNames: []string{"type", "name"}},
	},
}

// Component is the body of a `component "<type>" "<name>"` block. Every
// attribute other than the well-known ones ends up in Remain and is handed to
// the component type's factory.
type Component struct {
	Description string   `hcl:"description,optional"`
	Targets     []string `hcl:"targets,optional"`
	Remain      hcl.Body `hcl:",remain"`
}
