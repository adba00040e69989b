package authorize

import "testing"

func TestIsValidDomain(t *testing.T) {
	tests := []struct {
		name     string
		domain   Domain
		expected bool
	}{
		{"sys domain", DomainSys, true},
		{"wildcard domain", WildcardDomain, true},
		{"valid user domain", Domain("user:665f1c2ab3e4d5f6a7b8c9d0"), true},

		{"empty domain", Domain(""), false},
		{"random string", Domain("random"), false},
		{"user without id", Domain("user:"), false},
		{"user with uuid", Domain("user:550e8400-e29b-41d4-a716-446655440000"), false},
		{"user with short id", Domain("user:665f1c2a"), false},
		{"unknown prefix", Domain("clinic:665f1c2ab3e4d5f6a7b8c9d0"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDomain(tt.domain); got != tt.expected {
				t.Errorf("IsValidDomain(%q) = %v, want %v", tt.domain, got, tt.expected)
			}
		})
	}
}

func TestUserDomain(t *testing.T) {
	if got := UserDomain("665f1c2ab3e4d5f6a7b8c9d0"); got != "user:665f1c2ab3e4d5f6a7b8c9d0" {
		t.Errorf("UserDomain() = %q", got)
	}
}

func TestDefaultPoliciesUseKnownValues(t *testing.T) {
	for _, p := range DefaultPolicies {
		if _, ok := KnownRoles[p.Subject]; !ok {
			t.Errorf("policy %+v: unknown role", p)
		}
		if _, ok := KnownResources[p.Object]; !ok && p.Object != WildcardResource {
			t.Errorf("policy %+v: unknown resource", p)
		}
		if _, ok := KnownActions[p.Action]; !ok && p.Action != WildcardAction {
			t.Errorf("policy %+v: unknown action", p)
		}
		if !IsValidDomain(p.Domain) {
			t.Errorf("policy %+v: invalid domain", p)
		}
	}
}
