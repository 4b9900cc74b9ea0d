package entity

// Category categoría de commodity (conjunto cerrado).
type Category string

const (
	CategoryAgriculture Category = "agriculture"
	CategoryEnergy      Category = "energy"
	CategoryMetals      Category = "metals"
	CategoryLivestock   Category = "livestock"
	CategoryOther       Category = "other"
)

// Valid indica si c es una categoría conocida.
func (c Category) Valid() bool {
	switch c {
	case CategoryAgriculture, CategoryEnergy, CategoryMetals, CategoryLivestock, CategoryOther:
		return true
	}
	return false
}

// Unit unidad de medida del inventario (conjunto cerrado).
type Unit string

const (
	UnitKg     Unit = "kg"
	UnitTon    Unit = "ton"
	UnitLiter  Unit = "liter"
	UnitBarrel Unit = "barrel"
	UnitEach   Unit = "unit"
)

// Valid indica si u es una unidad conocida.
func (u Unit) Valid() bool {
	switch u {
	case UnitKg, UnitTon, UnitLiter, UnitBarrel, UnitEach:
		return true
	}
	return false
}
