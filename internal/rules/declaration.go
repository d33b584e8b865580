package rules

import (
	"reflect"
	"runtime"

	"github.com/vk/modelgrid/internal/model"
	"github.com/vk/modelgrid/internal/modeltype"
)

// Declaration is a rule function and the descriptor naming it in
// diagnostics. Its signature is only checked when it is registered.
type Declaration struct {
	descriptor string
	fn         reflect.Value
}

// Func declares fn as a rule. An empty descriptor is replaced by the
// function's qualified name.
func Func(descriptor string, fn any) *Declaration {
	v := reflect.ValueOf(fn)
	if descriptor == "" {
		descriptor = funcName(v)
	}
	return &Declaration{descriptor: descriptor, fn: v}
}

// Typed declares a rule whose parameters are checked by the compiler. Only
// producer capability is left to check at registration.
func Typed[B model.Binary, C model.Component](descriptor string, fn func(*Builder[B], C) error) *Declaration {
	return Func(descriptor, fn)
}

// Descriptor names the rule in diagnostics.
func (d *Declaration) Descriptor() string {
	return d.descriptor
}

// Params lists the parameter types; nil if the declaration is not a function.
func (d *Declaration) Params() []modeltype.Type {
	if !d.isFunc() {
		return nil
	}
	ft := d.fn.Type()
	out := make([]modeltype.Type, ft.NumIn())
	for i := range out {
		out[i] = modeltype.Of(ft.In(i))
	}
	return out
}

// Results lists the result types; nil if the declaration is not a function.
func (d *Declaration) Results() []modeltype.Type {
	if !d.isFunc() {
		return nil
	}
	ft := d.fn.Type()
	out := make([]modeltype.Type, ft.NumOut())
	for i := range out {
		out[i] = modeltype.Of(ft.Out(i))
	}
	return out
}

func (d *Declaration) isFunc() bool {
	return d.fn.IsValid() && d.fn.Kind() == reflect.Func && !d.fn.IsNil()
}

// invoke calls the function. The signature must already be validated.
func (d *Declaration) invoke(args []reflect.Value) error {
	out := d.fn.Call(args)
	if len(out) == 0 || out[0].IsNil() {
		return nil
	}
	return out[0].Interface().(error)
}

func funcName(v reflect.Value) string {
	if !v.IsValid() {
		return "<nil>"
	}
	if v.Kind() == reflect.Func && !v.IsNil() {
		if f := runtime.FuncForPC(v.Pointer()); f != nil {
			return f.Name()
		}
	}
	return v.Type().String()
}
