package materials

import "strings"

// unitAliases maps free-form unit labels (Polish and English, singular/plural,
// symbol forms) to canonical units. Units finer or coarser than the enum
// collapse to the nearest one: grams and tons -> kilograms, mm/cm/km -> meters,
// ml -> liters.
var unitAliases = map[string]Unit{
	// meters
	"m":           UnitMeters,
	"mb":          UnitMeters,
	"metr":        UnitMeters,
	"metry":       UnitMeters,
	"metrów":      UnitMeters,
	"metrow":      UnitMeters,
	"meter":       UnitMeters,
	"meters":      UnitMeters,
	"metre":       UnitMeters,
	"metres":      UnitMeters,
	"mm":          UnitMeters,
	"milimetr":    UnitMeters,
	"milimetry":   UnitMeters,
	"milimetrów":  UnitMeters,
	"millimeter":  UnitMeters,
	"millimeters": UnitMeters,
	"cm":          UnitMeters,
	"centymetr":   UnitMeters,
	"centymetry":  UnitMeters,
	"centymetrów": UnitMeters,
	"centimeter":  UnitMeters,
	"centimeters": UnitMeters,
	"km":          UnitMeters,
	"kilometr":    UnitMeters,
	"kilometry":   UnitMeters,
	"kilometrów":  UnitMeters,
	"kilometer":   UnitMeters,
	"kilometers":  UnitMeters,

	// kilograms
	"kg":          UnitKilograms,
	"kilogram":    UnitKilograms,
	"kilogramy":   UnitKilograms,
	"kilogramów":  UnitKilograms,
	"kilogramow":  UnitKilograms,
	"kgs":         UnitKilograms,
	"g":           UnitKilograms,
	"gram":        UnitKilograms,
	"gramy":       UnitKilograms,
	"gramów":      UnitKilograms,
	"grams":       UnitKilograms,
	"t":           UnitKilograms,
	"tona":        UnitKilograms,
	"tony":        UnitKilograms,
	"ton":         UnitKilograms,
	"tons":        UnitKilograms,
	"tonne":       UnitKilograms,
	"tonnes":      UnitKilograms,

	// cubic meters
	"m3":               UnitCubicMeters,
	"m³":               UnitCubicMeters,
	"metr sześcienny":  UnitCubicMeters,
	"metry sześcienne": UnitCubicMeters,
	"cubic meter":      UnitCubicMeters,
	"cubic meters":     UnitCubicMeters,

	// cubic centimeters
	"cm3":                   UnitCubicCentimeters,
	"cm³":                   UnitCubicCentimeters,
	"ccm":                   UnitCubicCentimeters,
	"centymetr sześcienny":  UnitCubicCentimeters,
	"centymetry sześcienne": UnitCubicCentimeters,
	"cubic centimeter":      UnitCubicCentimeters,
	"cubic centimeters":     UnitCubicCentimeters,

	// cubic millimeters
	"mm3":                   UnitCubicMillimeters,
	"mm³":                   UnitCubicMillimeters,
	"milimetr sześcienny":   UnitCubicMillimeters,
	"milimetry sześcienne":  UnitCubicMillimeters,
	"cubic millimeter":      UnitCubicMillimeters,
	"cubic millimeters":     UnitCubicMillimeters,

	// liters
	"l":           UnitLiters,
	"litr":        UnitLiters,
	"litry":       UnitLiters,
	"litrów":      UnitLiters,
	"litrow":      UnitLiters,
	"liter":       UnitLiters,
	"liters":      UnitLiters,
	"litre":       UnitLiters,
	"litres":      UnitLiters,
	"ml":          UnitLiters,
	"mililitr":    UnitLiters,
	"mililitry":   UnitLiters,
	"mililitrów":  UnitLiters,
	"milliliter":  UnitLiters,
	"milliliters": UnitLiters,

	// pieces
	"szt":     UnitPieces,
	"szt.":    UnitPieces,
	"sztuka":  UnitPieces,
	"sztuki":  UnitPieces,
	"sztuk":   UnitPieces,
	"pc":      UnitPieces,
	"pcs":     UnitPieces,
	"piece":   UnitPieces,
	"pieces":  UnitPieces,
	"items":   UnitPieces,
}

// NormalizeUnit maps a raw unit label to a canonical Unit. It is total:
// unrecognized or empty input degrades to UnitOther, it never fails.
func NormalizeUnit(raw string) Unit {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return UnitOther
	}
	if u, ok := unitAliases[s]; ok {
		return u
	}
	// The label may already be a canonical value.
	switch Unit(s) {
	case UnitMeters, UnitKilograms, UnitCubicMeters, UnitCubicCentimeters,
		UnitCubicMillimeters, UnitLiters, UnitPieces, UnitOther:
		return Unit(s)
	}
	return UnitOther
}
