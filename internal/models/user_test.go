package models

import "testing"

// TestRoleIsModerator verifies which roles carry moderation rights.
func TestRoleIsModerator(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleEditor, true},
		{RoleReader, false},
		{Role(""), false},
		{Role("ADMIN"), false}, // roles are stored lowercase
	}

	for _, tt := range tests {
		if got := tt.role.IsModerator(); got != tt.want {
			t.Errorf("Role(%q).IsModerator() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleEditor, RoleReader} {
		if !r.Valid() {
			t.Errorf("Role(%q).Valid() = false, want true", r)
		}
	}
	if Role("superuser").Valid() {
		t.Error(`Role("superuser").Valid() = true, want false`)
	}
}

// TestNeeds2FASetup verifies that only panel users are pushed through 2FA
// enrollment.
func TestNeeds2FASetup(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		enabled bool
		want    bool
	}{
		{name: "new admin", role: RoleAdmin, enabled: false, want: true},
		{name: "enrolled admin", role: RoleAdmin, enabled: true, want: false},
		{name: "new editor", role: RoleEditor, enabled: false, want: true},
		{name: "reader never", role: RoleReader, enabled: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role, TOTPEnabled: tt.enabled}
			if got := u.Needs2FASetup(); got != tt.want {
				t.Errorf("Needs2FASetup() = %v, want %v", got, tt.want)
			}
		})
	}
}
