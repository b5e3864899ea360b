package models

// Approval statuses shared by publications, projects and other activities.
const (
	StatusDraft              = "draft"
	StatusPending            = "pending"
	StatusDepartmentApproved = "department_approved"
	StatusFacultyApproved    = "faculty_approved"
	StatusApproved           = "approved"
	StatusReturned           = "returned"
)

// Admin levels, lowest to highest.
const (
	LevelNone       = "none"
	LevelDepartment = "department"
	LevelFaculty    = "faculty"
	LevelUniversity = "university"
)

// LevelRank orders admin levels; university outranks faculty outranks department.
var LevelRank = map[string]int{
	LevelNone:       0,
	LevelDepartment: 1,
	LevelFaculty:    2,
	LevelUniversity: 3,
}

// Item kinds used in approval logs and batch operations.
const (
	KindPublication = "publication"
	KindProject     = "project"
	KindActivity    = "activity"
)

// Statuses an admin of a given level treats as "already approved" in list filters.
// A department admin considers anything past its own step approved, and so on up.
var ApprovedStatusesByLevel = map[string][]string{
	LevelDepartment: {StatusDepartmentApproved, StatusFacultyApproved, StatusApproved},
	LevelFaculty:    {StatusFacultyApproved, StatusApproved},
	LevelUniversity: {StatusApproved},
}

// Editable reports whether the owner may still modify or delete an item.
func Editable(status string) bool {
	return status == StatusDraft || status == StatusReturned
}
