// Package modeltype provides the type tokens used to describe model elements
// without passing reflect.Type values through every API.
package modeltype

import (
	"reflect"
)

// Type is a comparable token identifying a Go type in the model.
// The zero Type is invalid and reports "<invalid>" as its name.
type Type struct {
	rt reflect.Type
}

// TypeOf returns the token for T. Interface types are supported.
func TypeOf[T any]() Type {
	return Type{rt: reflect.TypeFor[T]()}
}

// Of wraps an existing reflect.Type.
func Of(rt reflect.Type) Type {
	return Type{rt: rt}
}

// OfValue returns the dynamic type of v.
func OfValue(v any) Type {
	return Type{rt: reflect.TypeOf(v)}
}

// Reflect exposes the underlying reflect.Type.
func (t Type) Reflect() reflect.Type {
	return t.rt
}

// IsValid reports whether the token refers to a type.
func (t Type) IsValid() bool {
	return t.rt != nil
}

// IsInterface reports whether the token is an interface type.
func (t Type) IsInterface() bool {
	return t.rt != nil && t.rt.Kind() == reflect.Interface
}

// AssignableTo reports whether a value of type t can be used where u is
// expected: identical types, or u is an interface t implements.
func (t Type) AssignableTo(u Type) bool {
	if t.rt == nil || u.rt == nil {
		return false
	}
	return t.rt.AssignableTo(u.rt)
}

// Implements reports whether t implements the interface iface.
func (t Type) Implements(iface Type) bool {
	if t.rt == nil || !iface.IsInterface() {
		return false
	}
	return t.rt.Implements(iface.rt)
}

// Name is the short, human-readable name used in diagnostics, e.g.
// "SharedLibrary" for *native.SharedLibrary.
func (t Type) Name() string {
	if t.rt == nil {
		return "<invalid>"
	}
	rt := t.rt
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Name() == "" {
		return rt.String()
	}
	return rt.Name()
}

// String is the fully qualified type name, e.g. "*native.SharedLibrary".
func (t Type) String() string {
	if t.rt == nil {
		return "<invalid>"
	}
	return t.rt.String()
}

// Names renders the short names of ts in order.
func Names(ts []Type) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name()
	}
	return out
}
