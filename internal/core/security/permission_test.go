package security

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in         string
		wantScope  string
		wantAccess Access
		wantErr    bool
	}{
		{"inventory:session:rw", "inventory:session", AccessReadWrite, false},
		{"production:batch:r", "production:batch", AccessRead, false},
		{"inventory:session", "", "", true},
		{"inventory:session:w", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		p, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if p.Scope != tt.wantScope || p.Access != tt.wantAccess {
			t.Errorf("Parse(%q) = %v/%v, want %v/%v", tt.in, p.Scope, p.Access, tt.wantScope, tt.wantAccess)
		}
	}
}

func TestImplies(t *testing.T) {
	rw := Of("inventory:session", AccessReadWrite)
	r := Of("inventory:session", AccessRead)
	other := Of("production:batch", AccessRead)

	if !rw.Implies(r) {
		t.Error("rw should imply r on same scope")
	}
	if !rw.Implies(rw) {
		t.Error("rw should imply rw on same scope")
	}
	if r.Implies(rw) {
		t.Error("r should not imply rw")
	}
	if rw.Implies(other) {
		t.Error("permissions should never cross scopes")
	}
}

func TestDefaultPermissions_EveryRoleCanReadItems(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleProductionLead, RoleShiftLead, RoleTeamMember} {
		granted := DefaultPermissions(role)
		if len(granted) == 0 {
			t.Fatalf("role %s has no default permissions", role)
		}
		if !HasPermission(granted, "inventory:item", AccessRead) {
			t.Errorf("role %s cannot read inventory items", role)
		}
	}
}

func TestHasPermission(t *testing.T) {
	granted := DefaultPermissions(RoleTeamMember)

	if HasPermission(granted, "inventory:session", AccessReadWrite) {
		t.Error("team member must not mutate sessions")
	}
	if !HasPermission(granted, "inventory:session", AccessRead) {
		t.Error("team member should read sessions")
	}
	// Malformed grants are skipped, not fatal.
	if HasPermission([]string{"garbage", "inventory:item"}, "inventory:item", AccessRead) {
		t.Error("malformed grants must not satisfy a requirement")
	}
}
