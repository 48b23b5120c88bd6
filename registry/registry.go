// Package registry defines the pluggable property-validation collaborator
// the declaration builder consults, and a small default implementation
// covering a representative set of properties rather than the full CSS
// property table.
package registry

import (
	"strings"

	"github.com/solheim/cssdom/value"
)

// Outcome is the result of validating a declaration's value against its
// property name.
type Outcome int

const (
	// Unknown means the registry has no opinion on this property (it is
	// not one it recognizes); lenient callers keep the declaration anyway.
	Unknown Outcome = iota
	Valid
	Invalid
)

// PropertyRegistry validates a property/value pair. Validate never mutates
// its inputs; it only classifies them.
type PropertyRegistry interface {
	Validate(property string, v value.Value) Outcome
}

// validatorFunc checks a single value against one property's grammar.
type validatorFunc func(value.Value) bool

// Default is a minimal PropertyRegistry covering a representative handful
// of properties — a name-keyed map of small grammar checks — rather than
// the full CSS property table, which is out of scope here.
type Default struct {
	validators map[string]validatorFunc
}

// NewDefault builds the built-in registry.
func NewDefault() *Default {
	return &Default{validators: map[string]validatorFunc{
		"color":            isColorOrIdent,
		"background-color": isColorOrIdent,
		"display":          isIdentValue,
		"width":            isLengthPercentageOrIdent,
		"height":           isLengthPercentageOrIdent,
		"margin":           isLengthPercentageListOrIdent,
		"padding":          isLengthPercentageListOrIdent,
		"font-family":      isIdentOrStringList,
		"opacity":          isNumberOrPercentage,
	}}
}

// Register installs or replaces the validator for property, letting a
// caller extend the default set without implementing PropertyRegistry from
// scratch.
func (d *Default) Register(property string, fn func(value.Value) bool) {
	if d.validators == nil {
		d.validators = map[string]validatorFunc{}
	}
	d.validators[strings.ToLower(property)] = fn
}

func (d *Default) Validate(property string, v value.Value) Outcome {
	fn, ok := d.validators[strings.ToLower(property)]
	if !ok {
		return Unknown
	}
	if fn(v) {
		return Valid
	}
	return Invalid
}

func isColorOrIdent(v value.Value) bool {
	p, ok := v.(value.Primitive)
	return ok && (p.PrimitiveUnit == value.UnitColor || p.PrimitiveUnit == value.UnitIdent)
}

func isIdentValue(v value.Value) bool {
	p, ok := v.(value.Primitive)
	return ok && p.PrimitiveUnit == value.UnitIdent
}

func isLengthPercentageOrIdent(v value.Value) bool {
	p, ok := v.(value.Primitive)
	if !ok {
		return false
	}
	switch p.PrimitiveUnit {
	case value.UnitLength, value.UnitPercentage, value.UnitIdent, value.UnitNumber:
		return true
	}
	return false
}

func isLengthPercentageListOrIdent(v value.Value) bool {
	if isLengthPercentageOrIdent(v) {
		return true
	}
	list, ok := v.(value.List)
	if !ok {
		return false
	}
	for _, item := range list.Items {
		if !isLengthPercentageOrIdent(item) {
			return false
		}
	}
	return true
}

func isIdentOrStringList(v value.Value) bool {
	switch t := v.(type) {
	case value.Primitive:
		return t.PrimitiveUnit == value.UnitIdent || t.PrimitiveUnit == value.UnitString
	case value.List:
		for _, item := range t.Items {
			if !isIdentOrStringList(item) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isNumberOrPercentage(v value.Value) bool {
	p, ok := v.(value.Primitive)
	return ok && (p.PrimitiveUnit == value.UnitNumber || p.PrimitiveUnit == value.UnitPercentage)
}
