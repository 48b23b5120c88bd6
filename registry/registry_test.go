package registry_test

import (
	"testing"

	"github.com/solheim/cssdom/registry"
	"github.com/solheim/cssdom/value"
	"github.com/stretchr/testify/assert"
)

func TestDefaultValidatesKnownProperty(t *testing.T) {
	r := registry.NewDefault()
	outcome := r.Validate("color", value.Primitive{PrimitiveUnit: value.UnitColor, Text: "#fff"})
	assert.Equal(t, registry.Valid, outcome)
}

func TestDefaultRejectsMismatchedValue(t *testing.T) {
	r := registry.NewDefault()
	outcome := r.Validate("opacity", value.Primitive{PrimitiveUnit: value.UnitIdent, Text: "red"})
	assert.Equal(t, registry.Invalid, outcome)
}

func TestDefaultUnknownPropertyReturnsUnknown(t *testing.T) {
	r := registry.NewDefault()
	outcome := r.Validate("not-a-real-property", value.Primitive{PrimitiveUnit: value.UnitIdent, Text: "x"})
	assert.Equal(t, registry.Unknown, outcome)
}

func TestDefaultRegisterAddsValidator(t *testing.T) {
	r := registry.NewDefault()
	r.Register("custom-flag", func(v value.Value) bool {
		p, ok := v.(value.Primitive)
		return ok && p.Text == "yes"
	})
	assert.Equal(t, registry.Valid, r.Validate("custom-flag", value.Primitive{PrimitiveUnit: value.UnitIdent, Text: "yes"}))
	assert.Equal(t, registry.Invalid, r.Validate("custom-flag", value.Primitive{PrimitiveUnit: value.UnitIdent, Text: "no"}))
}

func TestDefaultMarginAcceptsLengthList(t *testing.T) {
	r := registry.NewDefault()
	list := value.List{Items: []value.Value{
		value.Primitive{PrimitiveUnit: value.UnitLength, DimensionUnit: "px", Number: 1},
		value.Primitive{PrimitiveUnit: value.UnitLength, DimensionUnit: "px", Number: 2},
	}}
	assert.Equal(t, registry.Valid, r.Validate("margin", list))
}
