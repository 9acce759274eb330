package access

import "testing"

func TestParseRole_FailsClosed(t *testing.T) {
	cases := map[string]Role{
		"ADMIN":      RoleAdmin,
		"admin":      RoleAdmin,
		" moderator": RoleModerator,
		"STUDENT":    RoleStudent,
		"":           RoleStudent,
		"root":       RoleStudent, // unknown roles collapse to least privilege
		"superuser":  RoleStudent,
	}
	for in, want := range cases {
		if got := ParseRole(in); got != want {
			t.Errorf("ParseRole(%q): got %v, want %v", in, got, want)
		}
	}
}

func TestEvaluate_NoIdentityRedirects(t *testing.T) {
	for _, req := range []Requirement{Authenticated(), Roles(RoleAdmin), Roles(RoleModerator, RoleAdmin)} {
		if got := Evaluate(Anonymous(), req); got != RedirectToLogin {
			t.Errorf("anonymous: got %v, want redirect-to-login", got)
		}
	}
}

func TestEvaluate_StudentNeverReachesAdminView(t *testing.T) {
	req := Roles(RoleAdmin)

	// resolved student is denied outright
	if got := Evaluate(Resolved("s@example.com", RoleStudent), req); got != Deny {
		t.Errorf("resolved student: got %v, want deny", got)
	}

	// an unresolved role must not flash the protected view: the outcome
	// is Pending, never Allow and never a premature Deny
	unresolved := Session{Authenticated: true, Email: "s@example.com"}
	if got := Evaluate(unresolved, req); got != Pending {
		t.Errorf("unresolved role: got %v, want pending", got)
	}
}

func TestEvaluate_AuthOnlyIgnoresRole(t *testing.T) {
	req := Authenticated()
	// even an unresolved role satisfies a requirement that only wants an identity
	unresolved := Session{Authenticated: true, Email: "s@example.com"}
	if got := Evaluate(unresolved, req); got != Allow {
		t.Errorf("auth-only with unresolved role: got %v, want allow", got)
	}
	if got := Evaluate(Resolved("s@example.com", RoleStudent), req); got != Allow {
		t.Errorf("auth-only student: got %v, want allow", got)
	}
}

func TestEvaluate_RoleSets(t *testing.T) {
	modOrAdmin := Roles(RoleModerator, RoleAdmin)
	cases := []struct {
		role Role
		want Decision
	}{
		{RoleStudent, Deny},
		{RoleModerator, Allow},
		{RoleAdmin, Allow},
	}
	for _, tc := range cases {
		if got := Evaluate(Resolved("u@example.com", tc.role), modOrAdmin); got != tc.want {
			t.Errorf("%v against moderator|admin: got %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestCanModerate(t *testing.T) {
	if RoleStudent.CanModerate() {
		t.Error("student can moderate")
	}
	if !RoleModerator.CanModerate() || !RoleAdmin.CanModerate() {
		t.Error("moderator/admin cannot moderate")
	}
}

func TestDecisionString(t *testing.T) {
	if Allow.String() != "allow" || Pending.String() != "pending" {
		t.Error("decision names drifted")
	}
}
