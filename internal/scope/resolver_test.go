package scope

import (
	"testing"

	"github.com/research-hours/backend/internal/models"
)

func i64p(v int64) *int64 { return &v }

func role(id int64, level string, unitID, divisionID *int64) models.AdminRole {
	return models.AdminRole{
		ID:                 id,
		RoleLevel:          level,
		OrganizationUnitID: unitID,
		DivisionID:         divisionID,
		IsActive:           true,
	}
}

func TestResolveActAs(t *testing.T) {
	roles := []models.AdminRole{
		role(1, models.LevelUniversity, nil, nil),
		role(2, models.LevelFaculty, i64p(10), nil),
		role(3, models.LevelDepartment, i64p(10), i64p(100)),
	}

	t.Run("explicit selection wins", func(t *testing.T) {
		a := Resolve(&models.User{ActiveRoleID: i64p(1)}, roles)
		if a.ActAs == nil || a.ActAs.ID != 1 {
			t.Fatalf("ActAs = %+v, want role 1", a.ActAs)
		}
		if got := a.EffectiveLevel(); got != models.LevelUniversity {
			t.Errorf("EffectiveLevel = %q, want university", got)
		}
	})

	t.Run("stale selection falls back to default", func(t *testing.T) {
		a := Resolve(&models.User{ActiveRoleID: i64p(99)}, roles)
		if a.ActAs == nil || a.ActAs.RoleLevel != models.LevelFaculty {
			t.Fatalf("ActAs = %+v, want default faculty grant", a.ActAs)
		}
	})

	t.Run("multi-role default prefers faculty", func(t *testing.T) {
		a := Resolve(&models.User{}, roles)
		if a.ActAs == nil || a.ActAs.ID != 2 {
			t.Fatalf("ActAs = %+v, want faculty role 2", a.ActAs)
		}
	})

	t.Run("single role needs no act-as", func(t *testing.T) {
		a := Resolve(&models.User{}, roles[:1])
		if a.ActAs != nil {
			t.Fatalf("ActAs = %+v, want nil", a.ActAs)
		}
		if got := a.EffectiveLevel(); got != models.LevelUniversity {
			t.Errorf("EffectiveLevel = %q, want university", got)
		}
	})

	t.Run("plain user mode drops everything", func(t *testing.T) {
		a := Resolve(&models.User{PlainUserMode: true, ActiveRoleID: i64p(1)}, roles)
		if a.EffectiveLevel() != models.LevelNone {
			t.Errorf("EffectiveLevel = %q, want none", a.EffectiveLevel())
		}
		if a.HasUniversityAccess() {
			t.Error("plain user mode must not keep university access")
		}
		if ids := a.ScopeIDs(models.LevelFaculty); ids != nil {
			t.Errorf("ScopeIDs = %v, want nil", ids)
		}
	})

	t.Run("inactive grants are ignored", func(t *testing.T) {
		inactive := role(4, models.LevelUniversity, nil, nil)
		inactive.IsActive = false
		a := Resolve(&models.User{}, []models.AdminRole{inactive})
		if got := a.EffectiveLevel(); got != models.LevelNone {
			t.Errorf("EffectiveLevel = %q, want none", got)
		}
	})
}

func TestDefaultActAsOrder(t *testing.T) {
	uni := role(1, models.LevelUniversity, nil, nil)
	dept := role(2, models.LevelDepartment, i64p(10), i64p(100))
	fac := role(3, models.LevelFaculty, i64p(10), nil)

	if got := DefaultActAs([]models.AdminRole{uni, dept, fac}); got.ID != 3 {
		t.Errorf("default = role %d, want faculty role 3", got.ID)
	}
	if got := DefaultActAs([]models.AdminRole{uni, dept}); got.ID != 2 {
		t.Errorf("default = role %d, want department role 2", got.ID)
	}
	if got := DefaultActAs([]models.AdminRole{uni}); got.ID != 1 {
		t.Errorf("default = role %d, want university role 1", got.ID)
	}
	if got := DefaultActAs(nil); got != nil {
		t.Errorf("default of no roles = %+v, want nil", got)
	}
}

func TestScopeIDs(t *testing.T) {
	roles := []models.AdminRole{
		role(1, models.LevelFaculty, i64p(20), nil),
		role(2, models.LevelFaculty, i64p(10), nil),
		role(3, models.LevelFaculty, i64p(10), nil), // duplicate unit
		role(4, models.LevelDepartment, i64p(10), i64p(100)),
	}

	a := Actor{User: &models.User{}, Roles: roles}
	gotFaculty := a.ScopeIDs(models.LevelFaculty)
	if len(gotFaculty) != 2 || gotFaculty[0] != 10 || gotFaculty[1] != 20 {
		t.Errorf("faculty ScopeIDs = %v, want [10 20]", gotFaculty)
	}
	gotDept := a.ScopeIDs(models.LevelDepartment)
	if len(gotDept) != 1 || gotDept[0] != 100 {
		t.Errorf("department ScopeIDs = %v, want [100]", gotDept)
	}

	// Act-as restricts to the single chosen grant.
	a.ActAs = &roles[3]
	if ids := a.ScopeIDs(models.LevelFaculty); ids != nil {
		t.Errorf("act-as department leaks faculty scope %v", ids)
	}
	if ids := a.ScopeIDs(models.LevelDepartment); len(ids) != 1 || ids[0] != 100 {
		t.Errorf("act-as department ScopeIDs = %v, want [100]", ids)
	}
}

func TestPermissions(t *testing.T) {
	owner := &models.User{OrganizationUnitID: i64p(10), DivisionID: i64p(100)}
	otherOwner := &models.User{OrganizationUnitID: i64p(20), DivisionID: i64p(200)}

	t.Run("act-as university grants whole chain", func(t *testing.T) {
		uni := role(1, models.LevelUniversity, nil, nil)
		a := Actor{User: &models.User{}, Roles: []models.AdminRole{uni}, ActAs: &uni}
		u, f, d := a.Permissions(owner)
		if !u || !f || !d {
			t.Errorf("Permissions = %v %v %v, want all true", u, f, d)
		}
	})

	t.Run("act-as faculty locked to its unit", func(t *testing.T) {
		fac := role(2, models.LevelFaculty, i64p(10), nil)
		a := Actor{User: &models.User{}, Roles: []models.AdminRole{fac}, ActAs: &fac}
		u, f, d := a.Permissions(owner)
		if u || !f || d {
			t.Errorf("Permissions = %v %v %v, want only faculty", u, f, d)
		}
		if _, f, _ := a.Permissions(otherOwner); f {
			t.Error("faculty permission leaked outside grant's unit")
		}
	})

	t.Run("act-as department locked to its division", func(t *testing.T) {
		dept := role(3, models.LevelDepartment, i64p(10), i64p(100))
		a := Actor{User: &models.User{}, Roles: []models.AdminRole{dept}, ActAs: &dept}
		u, f, d := a.Permissions(owner)
		if u || f || !d {
			t.Errorf("Permissions = %v %v %v, want only department", u, f, d)
		}
		if _, _, d := a.Permissions(otherOwner); d {
			t.Error("department permission leaked outside grant's division")
		}
	})

	t.Run("union of grants without act-as", func(t *testing.T) {
		a := Actor{User: &models.User{}, Roles: []models.AdminRole{
			role(1, models.LevelFaculty, i64p(10), nil),
			role(2, models.LevelFaculty, i64p(20), nil),
		}}
		if _, f, _ := a.Permissions(owner); !f {
			t.Error("owner in first granted unit should be covered")
		}
		if _, f, _ := a.Permissions(otherOwner); !f {
			t.Error("owner in second granted unit should be covered")
		}
	})

	t.Run("scope-less grant falls back to own placement", func(t *testing.T) {
		a := Actor{
			User:  &models.User{OrganizationUnitID: i64p(10)},
			Roles: []models.AdminRole{role(1, models.LevelFaculty, nil, nil)},
		}
		if _, f, _ := a.Permissions(owner); !f {
			t.Error("legacy scope-less faculty grant should cover own unit")
		}
		if _, f, _ := a.Permissions(otherOwner); f {
			t.Error("legacy fallback leaked outside own unit")
		}
	})

	t.Run("no roles no permissions", func(t *testing.T) {
		a := Actor{User: &models.User{}}
		u, f, d := a.Permissions(owner)
		if u || f || d {
			t.Errorf("Permissions = %v %v %v, want none", u, f, d)
		}
	})
}

func TestCanModerate(t *testing.T) {
	owner := &models.User{OrganizationUnitID: i64p(10), DivisionID: i64p(100)}
	foreign := &models.User{OrganizationUnitID: i64p(20), DivisionID: i64p(200)}

	dept := role(1, models.LevelDepartment, i64p(10), i64p(100))
	a := Actor{User: &models.User{}, Roles: []models.AdminRole{dept}, ActAs: &dept}
	if !a.CanModerate(owner) {
		t.Error("department admin should moderate owners in their division")
	}
	if a.CanModerate(foreign) {
		t.Error("department admin must not moderate owners outside their division")
	}

	plain := Actor{User: &models.User{}}
	if plain.CanModerate(owner) {
		t.Error("an actor without grants must not moderate anyone")
	}

	uni := role(2, models.LevelUniversity, nil, nil)
	b := Actor{User: &models.User{}, Roles: []models.AdminRole{uni}, ActAs: &uni}
	if !b.CanModerate(foreign) {
		t.Error("university admin should moderate any owner")
	}
}
