package mesh

import "github.com/pkg/errors"

// Attribute is a named array of fixed-size tuples, one per point or cell.
type Attribute struct {
	Name          string
	NumComponents int
	Values        []float64
}

func NewAttribute(name string, components int) *Attribute {
	if components < 1 {
		components = 1
	}
	return &Attribute{Name: name, NumComponents: components}
}

func (a *Attribute) Len() int {
	if a.NumComponents < 1 {
		return 0
	}
	return len(a.Values) / a.NumComponents
}

func (a *Attribute) Tuple(i int) []float64 {
	n := a.NumComponents
	return a.Values[i*n : (i+1)*n]
}

// Append adds one tuple. Missing components are zero, extra ones dropped.
func (a *Attribute) Append(t ...float64) {
	for c := 0; c < a.NumComponents; c++ {
		v := 0.0
		if c < len(t) {
			v = t[c]
		}
		a.Values = append(a.Values, v)
	}
}

// Attributes is the set of arrays attached to the points or cells of a mesh.
type Attributes []*Attribute

func (as Attributes) Get(name string) *Attribute {
	for _, a := range as {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Clone deep-copies every array.
func (as Attributes) Clone() Attributes {
	out := make(Attributes, 0, len(as))
	for _, a := range as {
		vals := make([]float64, len(a.Values))
		copy(vals, a.Values)
		out = append(out, &Attribute{Name: a.Name, NumComponents: a.NumComponents, Values: vals})
	}
	return out
}

// EmptyLike returns arrays with the same names and widths and no tuples.
func (as Attributes) EmptyLike() Attributes {
	out := make(Attributes, 0, len(as))
	for _, a := range as {
		out = append(out, NewAttribute(a.Name, a.NumComponents))
	}
	return out
}

// AppendFrom appends tuple i of every array in src to the array at the same
// position. as must have been built from src with Clone or EmptyLike.
func (as Attributes) AppendFrom(src Attributes, i int) {
	for k, a := range as {
		a.Append(src[k].Tuple(i)...)
	}
}

func (as Attributes) check(n int) error {
	for _, a := range as {
		if a.NumComponents < 1 || len(a.Values)%a.NumComponents != 0 {
			return errors.Wrapf(ErrAttributeShape, "%q", a.Name)
		}
		if a.Len() != n {
			return errors.Wrapf(ErrAttributeLength, "%q has %d tuples, want %d", a.Name, a.Len(), n)
		}
	}
	return nil
}
