// Package value converts a token range into a [Value] tree: the primitive/
// function/list mini-language shared by every CSS property, independent of
// what any specific property's grammar further restricts it to.
package value

import (
	"github.com/solheim/cssdom/token"
	"github.com/solheim/cssdom/utils"
)

// Value is a CSS value node. Primitive, Function, List, Inherit and Initial
// are the closed set of variants; do not add new implementations.
type Value interface {
	Pos() token.Position
	isValue()
}

// Unit classifies a [Primitive]'s payload.
type Unit string

const (
	UnitString     Unit = "string"
	UnitUri        Unit = "uri"
	UnitIdent      Unit = "ident"
	UnitNumber     Unit = "number"
	UnitPercentage Unit = "percentage"
	UnitLength     Unit = "length"
	UnitAngle      Unit = "angle"
	UnitTime       Unit = "time"
	UnitFrequency  Unit = "frequency"
	UnitColor      Unit = "hex-color"
	UnitUnknown    Unit = "unknown"
)

// lengthUnits, angleUnits, timeUnits and frequencyUnits classify a
// [token.Dimension]'s unit into the Primitive unit families the value
// grammar distinguishes, scoped to the common CSS unit set.
var (
	lengthUnits = utils.NewSet(
		"em", "rem", "ex", "ch", "vw", "vh", "vmin", "vmax",
		"px", "cm", "mm", "in", "pt", "pc", "q",
	)
	angleUnits     = utils.NewSet("deg", "grad", "rad", "turn")
	timeUnits      = utils.NewSet("s", "ms")
	frequencyUnits = utils.NewSet("hz", "khz")
)

func unitFor(name string) Unit {
	switch {
	case lengthUnits.Has(name):
		return UnitLength
	case angleUnits.Has(name):
		return UnitAngle
	case timeUnits.Has(name):
		return UnitTime
	case frequencyUnits.Has(name):
		return UnitFrequency
	default:
		return UnitUnknown
	}
}

type base struct {
	P token.Position
}

func (b base) Pos() token.Position { return b.P }

// Primitive is a single, non-composite value: a string, identifier,
// number, percentage, typed dimension, hex color, or a textual blob the
// grammar could not classify further (e.g. ratio syntax).
type Primitive struct {
	base
	PrimitiveUnit Unit
	Text          string  // original/reconstructed textual form
	Number        float32 // meaningful when PrimitiveUnit is Number/Percentage/Length/Angle/Time/Frequency
	DimensionUnit string  // e.g. "px", "deg"; empty unless the value was read from a dimension token (an unrecognized unit gives UnitUnknown with DimensionUnit set)
}

func (Primitive) isValue() {}

// Function is a CSS function call, e.g. rgb(1, 2, 3) or calc(1px + 2px).
type Function struct {
	base
	Name string
	Args []Value
}

func (Function) isValue() {}

// List is a sequence of values, either whitespace-separated
// (CommaSeparated == false, as produced by [ValueList]) or comma-separated
// (as produced by [MultiValues] when more than one group is present).
type List struct {
	base
	Items          []Value
	CommaSeparated bool
}

func (List) isValue() {}

// Inherit is the "inherit" CSS-wide keyword, recognized directly as its
// own Value variant rather than as Primitive(Ident, "inherit").
type Inherit struct{ base }

func (Inherit) isValue() {}

// Initial is the "initial" CSS-wide keyword.
type Initial struct{ base }

func (Initial) isValue() {}
