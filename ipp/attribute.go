package ipp

import (
	"strings"
)

// TagValue pairs a value with the tag it travels under on the wire.
type TagValue struct {
	T Tag
	V Value
}

// Values is the ordered value list of one attribute.
type Values []TagValue

// Add appends a value.
func (vs *Values) Add(t Tag, v Value) {
	*vs = append(*vs, TagValue{T: t, V: v})
}

// Attribute is one logical, possibly multi-valued, IPP attribute. On the wire
// the first value carries the name and each further value is a continuation
// entry with an empty name.
type Attribute struct {
	Name   string
	Values Values
}

// MakeAttribute builds an attribute whose values all share one tag.
func MakeAttribute(name string, tag Tag, values ...Value) Attribute {
	a := Attribute{Name: name}
	for _, v := range values {
		a.Values.Add(tag, v)
	}
	return a
}

// Tag returns the tag of the first value, or TagZero for an empty attribute.
func (a Attribute) Tag() Tag {
	if len(a.Values) == 0 {
		return TagZero
	}
	return a.Values[0].T
}

// Value returns the first value, or nil.
func (a Attribute) Value() Value {
	if len(a.Values) == 0 {
		return nil
	}
	return a.Values[0].V
}

// Strings returns the string form of every value.
func (a Attribute) Strings() []string {
	out := make([]string, 0, len(a.Values))
	for _, v := range a.Values {
		out = append(out, v.V.String())
	}
	return out
}

func (a Attribute) String() string {
	return a.Name + "=" + strings.Join(a.Strings(), ",")
}

// Group is an ordered set of attributes under one group delimiter tag.
type Group struct {
	Tag   Tag
	Attrs []Attribute
}

// Add appends an attribute to the group.
func (g *Group) Add(a Attribute) {
	g.Attrs = append(g.Attrs, a)
}

// Get looks an attribute up by name.
func (g Group) Get(name string) (Attribute, bool) {
	for _, a := range g.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}
