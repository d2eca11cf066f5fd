// Package catalog provides the static field catalog and the deterministic
// mock data source the query pipeline draws from.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"dash-demo/internal/domain"
)

//go:embed datasets.yaml
var datasetsYAML []byte

type fieldSpec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type datasetSpec struct {
	Name   string      `yaml:"name"`
	Fields []fieldSpec `yaml:"fields"`
}

type catalogSpec struct {
	Datasets []datasetSpec `yaml:"datasets"`
}

// Catalog is an in-memory field catalog keyed by dataset name. Field order
// follows the catalog file.
type Catalog struct {
	names  []string
	fields map[string][]domain.Field
}

// Load parses the embedded dataset catalog.
func Load() (*Catalog, error) {
	return parse(datasetsYAML)
}

func parse(raw []byte) (*Catalog, error) {
	var spec catalogSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("parse dataset catalog: %w", err)
	}
	if len(spec.Datasets) == 0 {
		return nil, domain.ErrValidation("dataset catalog is empty")
	}

	c := &Catalog{fields: make(map[string][]domain.Field, len(spec.Datasets))}
	for _, ds := range spec.Datasets {
		if ds.Name == "" {
			return nil, domain.ErrValidation("dataset with empty name in catalog")
		}
		if _, dup := c.fields[ds.Name]; dup {
			return nil, domain.ErrConflict("duplicate dataset %q in catalog", ds.Name)
		}
		fields := make([]domain.Field, 0, len(ds.Fields))
		for _, f := range ds.Fields {
			if f.Kind != domain.FieldKindDimension && f.Kind != domain.FieldKindMeasure {
				return nil, domain.ErrValidation("field %q in dataset %q has unknown kind %q", f.Name, ds.Name, f.Kind)
			}
			fields = append(fields, domain.Field{ID: f.ID, Name: f.Name, Kind: f.Kind})
		}
		c.names = append(c.names, ds.Name)
		c.fields[ds.Name] = fields
	}
	return c, nil
}

// DatasetNames returns the dataset names in catalog order.
func (c *Catalog) DatasetNames() []string {
	return append([]string(nil), c.names...)
}

// Fields returns the ordered field list for a dataset, or nil for an unknown
// dataset.
func (c *Catalog) Fields(dataset string) []domain.Field {
	return append([]domain.Field(nil), c.fields[dataset]...)
}

// FieldByID resolves a field by id within a dataset, or nil.
func (c *Catalog) FieldByID(dataset, id string) *domain.Field {
	for _, f := range c.fields[dataset] {
		if f.ID == id {
			f := f
			return &f
		}
	}
	return nil
}

// FieldByName resolves a field by name within a dataset, or nil. Names are
// the persisted contract, so loading a saved dashboard resolves through here.
func (c *Catalog) FieldByName(dataset, name string) *domain.Field {
	for _, f := range c.fields[dataset] {
		if f.Name == name {
			f := f
			return &f
		}
	}
	return nil
}

// DimensionNames returns the names of a dataset's dimension fields, in order.
func (c *Catalog) DimensionNames(dataset string) []string {
	var names []string
	for _, f := range c.fields[dataset] {
		if f.IsDimension() {
			names = append(names, f.Name)
		}
	}
	return names
}
