package app

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vk/modelgrid/internal/container"
	"github.com/vk/modelgrid/internal/modeltype"
)

// Report is the realized model written at the end of a run.
type Report struct {
	Components []ComponentReport `yaml:"components" json:"components"`
	Binaries   []BinaryReport    `yaml:"binaries" json:"binaries"`
}

type ComponentReport struct {
	Name        string   `yaml:"name" json:"name"`
	Type        string   `yaml:"type" json:"type"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Binaries    []string `yaml:"binaries" json:"binaries"`
}

type BinaryReport struct {
	Name   string `yaml:"name" json:"name"`
	Type   string `yaml:"type" json:"type"`
	Owner  string `yaml:"owner,omitempty" json:"owner,omitempty"`
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
}

func newReport(components *container.Components, binaries *container.Binaries) *Report {
	r := &Report{
		Components: make([]ComponentReport, 0, components.Len()),
		Binaries:   make([]BinaryReport, 0, binaries.Len()),
	}

	owners := make(map[string]string)
	for _, c := range components.All() {
		cr := ComponentReport{
			Name:     c.Name(),
			Type:     modeltype.OfValue(c).Name(),
			Binaries: c.Binaries().Names(),
		}
		if d, ok := c.(interface{ Description() string }); ok {
			cr.Description = d.Description()
		}
		for _, name := range cr.Binaries {
			owners[name] = c.Name()
		}
		r.Components = append(r.Components, cr)
	}

	for _, b := range binaries.All() {
		br := BinaryReport{
			Name:  b.Name(),
			Type:  modeltype.OfValue(b).Name(),
			Owner: owners[b.Name()],
		}
		if t, ok := b.(interface{ Target() string }); ok {
			br.Target = t.Target()
		}
		r.Binaries = append(r.Binaries, br)
	}
	return r
}

func writeReport(w io.Writer, format string, r *Report) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case OutputYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
