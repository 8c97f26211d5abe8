package entities

// UnitOfMeasure identifies how a variant's quantity is counted or measured
type UnitOfMeasure string

// Units recognized by the catalog. Layered units are packed in discrete
// layers stacked into pallets; everything else is a plain count.
const (
	UnitSquareFeet UnitOfMeasure = "Square Feet"
	UnitLinearFeet UnitOfMeasure = "Linear Feet"
	UnitEach       UnitOfMeasure = "Each"
	UnitBox        UnitOfMeasure = "Box"
	UnitRoll       UnitOfMeasure = "Roll"
)

// IsLayered reports whether quantities in this unit decompose into a
// pallet/layer breakdown. Only the exact labels "Square Feet" and
// "Linear Feet" qualify; any other value is a simple countable unit.
func (u UnitOfMeasure) IsLayered() bool {
	return u == UnitSquareFeet || u == UnitLinearFeet
}
