package token

import "testing"

// Requirement: the allow-list is comma-separated, trimmed, and compared
// case-insensitively.
func TestParseAdminList(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		email string
		want  string
	}{
		{
			name:  "member gets admin",
			raw:   "a@x.com",
			email: "a@x.com",
			want:  RoleAdmin,
		},
		{
			name:  "membership is case-insensitive",
			raw:   "a@x.com",
			email: "A@X.com",
			want:  RoleAdmin,
		},
		{
			name:  "list entries are trimmed and lowered",
			raw:   "  First@X.com , second@x.com ",
			email: "first@x.com",
			want:  RoleAdmin,
		},
		{
			name:  "non-member gets user",
			raw:   "a@x.com",
			email: "b@x.com",
			want:  RoleUser,
		},
		{
			name:  "empty list yields user for everyone",
			raw:   "",
			email: "a@x.com",
			want:  RoleUser,
		},
		{
			name:  "stray commas are ignored",
			raw:   ",,a@x.com,,",
			email: "a@x.com",
			want:  RoleAdmin,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			admins := ParseAdminList(test.raw)

			if got := admins.RoleFor(test.email); got != test.want {
				t.Errorf("RoleFor(%q) = %q, want %q", test.email, got, test.want)
			}
		})
	}
}

// Requirement: SessionData is a pure projection of the claims.
func TestClaims_SessionData(t *testing.T) {
	claims := &Claims{Email: "a@x.com", Role: RoleAdmin}

	data := claims.SessionData()

	if data.Email != "a@x.com" || data.Role != RoleAdmin {
		t.Errorf("SessionData() = %+v", data)
	}
}
