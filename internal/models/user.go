package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID                 int64     `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	FullName           string    `json:"full_name"`
	EmployeeID         *string   `json:"employee_id,omitempty"`
	OrganizationUnitID *int64    `json:"organization_unit_id,omitempty"`
	DivisionID         *int64    `json:"division_id,omitempty"`
	// Persisted act-as state: which role grant the user currently works under,
	// and whether they switched to plain-user mode. Read once per request and
	// passed into the scope resolver, never consulted mid-computation.
	ActiveRoleID  *int64    `json:"active_role_id,omitempty"`
	PlainUserMode bool      `json:"plain_user_mode"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SetPassword hashes plain with the given bcrypt cost. Costs below the bcrypt
// minimum fall back to the library default.
func (u *User) SetPassword(plain string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// UserWithUnit embeds User and adds unit info to avoid N+1 queries on list screens.
type UserWithUnit struct {
	User
	UnitName     *string `json:"unit_name,omitempty"`
	UnitType     *string `json:"unit_type,omitempty"`
	DivisionName *string `json:"division_name,omitempty"`
}

// OfficeMember reports whether the owner belongs to an office-type unit,
// whose items take the single-step university approval path.
func (u *UserWithUnit) OfficeMember() bool {
	return u.UnitType != nil && *u.UnitType == UnitTypeOffice
}
