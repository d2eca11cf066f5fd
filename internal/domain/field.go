package domain

const (
	FieldKindDimension = "dimension"
	FieldKindMeasure   = "measure"
)

// Field is one column of a dataset, usable as a grouping axis (dimension)
// or an aggregated value (measure). Fields are immutable and sourced from
// the field catalog; two fields are the same entity iff their IDs match
// within a dataset.
type Field struct {
	ID   string
	Name string
	Kind string
}

// IsDimension reports whether the field can serve as a grouping axis or filter key.
func (f Field) IsDimension() bool { return f.Kind == FieldKindDimension }

// IsMeasure reports whether the field can serve as an aggregated value.
func (f Field) IsMeasure() bool { return f.Kind == FieldKindMeasure }
