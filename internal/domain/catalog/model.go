package catalog

import (
	"time"

	"github.com/google/uuid"
)

type ConstructionStatus string

const (
	StatusActive     ConstructionStatus = "active"
	StatusInProgress ConstructionStatus = "in_progress"
	StatusInactive   ConstructionStatus = "inactive"
	StatusArchived   ConstructionStatus = "archived"
	StatusDeleted    ConstructionStatus = "deleted"
	StatusCompleted  ConstructionStatus = "completed"
	StatusPlanned    ConstructionStatus = "planned"
)

// ValidStatus reports whether s is one of the known construction statuses.
func ValidStatus(s ConstructionStatus) bool {
	switch s {
	case StatusActive, StatusInProgress, StatusInactive, StatusArchived,
		StatusDeleted, StatusCompleted, StatusPlanned:
		return true
	}
	return false
}

type Construction struct {
	ID          uuid.UUID
	Name        string
	Description string
	Address     string
	StartDate   *time.Time
	Status      ConstructionStatus
	ImgURL      *string
	CreatedAt   time.Time
}

// Storage is a named sub-location of a construction. Storage items attach to
// the construction directly; storages carry location metadata only.
type Storage struct {
	ID             uuid.UUID
	ConstructionID uuid.UUID
	Name           string
	CreatedAt      time.Time
}

type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
