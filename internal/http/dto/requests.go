package dto

type RegisterRequest struct {
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	FullName           string  `json:"full_name"`
	EmployeeID         *string `json:"employee_id,omitempty"`
	OrganizationUnitID *int64  `json:"organization_unit_id,omitempty"`
	DivisionID         *int64  `json:"division_id,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UpdateProfileRequest struct {
	FullName           string  `json:"full_name"`
	EmployeeID         *string `json:"employee_id,omitempty"`
	OrganizationUnitID *int64  `json:"organization_unit_id,omitempty"`
	DivisionID         *int64  `json:"division_id,omitempty"`
}

// SwitchContextRequest selects the working context for a multi-role admin.
// RoleID nil with PlainUserMode false returns to the default pick.
type SwitchContextRequest struct {
	RoleID        *int64 `json:"role_id,omitempty"`
	PlainUserMode bool   `json:"plain_user_mode"`
}

// Items. Submit true files the item into the approval chain immediately,
// false keeps it as a draft.

type PublicationRequest struct {
	Year            int      `json:"year"`
	Title           string   `json:"title"`
	Type            string   `json:"type"`
	Quartile        *string  `json:"quartile,omitempty"`
	DomesticPoints  *float64 `json:"domestic_points,omitempty"`
	PatentStage     *string  `json:"patent_stage,omitempty"`
	Republished     bool     `json:"is_republished"`
	TotalAuthors    int      `json:"total_authors"`
	AuthorRole      string   `json:"author_role"`
	ContributionPct *float64 `json:"contribution_percentage,omitempty"`
	Journal         *string  `json:"journal,omitempty"`
	DOI             *string  `json:"doi,omitempty"`
	Submit          bool     `json:"submit"`
}

type ProjectRequest struct {
	Title         string   `json:"title"`
	Level         string   `json:"project_level"`
	Role          string   `json:"role"`
	Status        string   `json:"status"`
	StartYear     int      `json:"start_year"`
	EndYear       int      `json:"end_year"`
	FundingAmount *float64 `json:"funding_amount,omitempty"`
	DurationYears *int     `json:"duration_years,omitempty"`
	TotalMembers  int      `json:"total_members"`
	Code          *string  `json:"code,omitempty"`
	Submit        bool     `json:"submit"`
}

type ActivityRequest struct {
	Year        int     `json:"year"`
	Type        string  `json:"activity_type"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Venue       *string `json:"venue,omitempty"`
	Submit      bool    `json:"submit"`
}

// Approval actions.

type ReturnRequest struct {
	Reason string `json:"reason"`
}

// Admin.

type GrantRoleRequest struct {
	UserID             int64   `json:"user_id"`
	RoleLevel          string  `json:"role_level"`
	OrganizationUnitID *int64  `json:"organization_unit_id,omitempty"`
	DivisionID         *int64  `json:"division_id,omitempty"`
	Notes              *string `json:"notes,omitempty"`
}

type UnitRequest struct {
	Name        string  `json:"name"`
	Code        *string `json:"code,omitempty"`
	UnitType    string  `json:"unit_type"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type DivisionRequest struct {
	Name               string  `json:"name"`
	Code               *string `json:"code,omitempty"`
	OrganizationUnitID int64   `json:"organization_unit_id"`
	Description        *string `json:"description,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
}

// Catalog import.

type CatalogImportRequest struct {
	URL     string `json:"url"`
	Index   string `json:"index,omitempty"`   // indexed journals: wos / scopus
	Council string `json:"council,omitempty"` // domestic journals: council code
}
