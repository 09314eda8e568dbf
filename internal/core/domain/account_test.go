package domain

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
	}{
		{"Pending", StatusPending},
		{"PENDING_ACTIVATION", StatusPending},
		{"  pending activation  ", StatusPending},
		{"Active", StatusActive},
		{"ACTIVE", StatusActive},
		{"Inactive", StatusInactive},
		{"deactivated", StatusInactive},
		{"Deactivated by admin", StatusInactive},
		{"", StatusPending},
	}

	for _, tc := range cases {
		got, err := ParseStatus(tc.raw)
		if err != nil {
			t.Fatalf("ParseStatus(%q) returned error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseStatus(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestParseStatus_InactiveBeatsActiveSubstring(t *testing.T) {
	// "inactive" contains "active"; the inactive branch must win.
	got, err := ParseStatus("INACTIVE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != StatusInactive {
		t.Fatalf("expected INACTIVE, got %s", got)
	}
}

func TestParseStatus_Unknown(t *testing.T) {
	if _, err := ParseStatus("suspended"); err != ErrUnknownStatus {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	for raw, want := range map[string]Role{
		"admin":     RoleAdmin,
		"STAFF":     RoleStaff,
		" Reception ": RoleReception,
	} {
		got, err := ParseRole(raw)
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q) = %s, want %s", raw, got, want)
		}
	}

	if _, err := ParseRole("client"); err != ErrUnknownRole {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}
