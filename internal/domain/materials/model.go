package materials

import (
	"time"

	"github.com/google/uuid"
)

type Unit string

const (
	UnitMeters           Unit = "meters"
	UnitKilograms        Unit = "kilograms"
	UnitCubicMeters      Unit = "cubic_meters"
	UnitCubicCentimeters Unit = "cubic_centimeters"
	UnitCubicMillimeters Unit = "cubic_millimeters"
	UnitLiters           Unit = "liters"
	UnitPieces           Unit = "pieces"
	UnitOther            Unit = "other"
)

type Material struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description string
	Unit        Unit
	CreatedAt   time.Time
}
