package models

import (
	"fmt"
	"time"
)

// Organization unit types. Faculty units carry divisions and use the three-step
// approval chain; office units have no divisions and are approved directly by
// a university admin.
const (
	UnitTypeFaculty = "faculty"
	UnitTypeOffice  = "office"
)

type OrganizationUnit struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Code        *string   `json:"code,omitempty"`
	UnitType    string    `json:"unit_type"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RequiresDivision reports whether members of this unit must belong to a division.
func (u *OrganizationUnit) RequiresDivision() bool {
	return u.UnitType == UnitTypeFaculty
}

type Division struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Code               *string   `json:"code,omitempty"`
	OrganizationUnitID int64     `json:"organization_unit_id"`
	Description        *string   `json:"description,omitempty"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ValidateDivisionUnit rejects attaching a division to an office-type unit.
// This is a configuration bug, not a user mistake, so it fails loudly.
func ValidateDivisionUnit(unit *OrganizationUnit) error {
	if unit == nil {
		return fmt.Errorf("division requires a parent organization unit")
	}
	if unit.UnitType != UnitTypeFaculty {
		return fmt.Errorf("unit %q is %s-type and cannot have divisions", unit.Name, unit.UnitType)
	}
	return nil
}
