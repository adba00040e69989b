package pasetotoken

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestManager(t *testing.T, keys Keys) *Manager {
	t.Helper()
	m, err := New(Config{
		Mode:      keys.Mode,
		Issuer:    "carepulse",
		Audience:  "carepulse-admin",
		AccessTTL: 10 * time.Minute,
	}, keys)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestIssueAndVerify(t *testing.T) {
	for _, tc := range []struct {
		name string
		keys Keys
	}{
		{"local", NewLocalKeys()},
		{"public", NewPublicKeys()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestManager(t, tc.keys)
			sid := uuid.New()

			tok, err := m.IssueAccess("admin", "role:sys:admin", &sid)
			if err != nil {
				t.Fatalf("IssueAccess() error = %v", err)
			}

			claims, err := m.Verify(tok)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if claims.Subject != "admin" {
				t.Errorf("Subject = %q, want admin", claims.Subject)
			}
			if claims.Role != "role:sys:admin" {
				t.Errorf("Role = %q", claims.Role)
			}
			if claims.Type != TokenTypeAccess {
				t.Errorf("Type = %q, want access", claims.Type)
			}
			if claims.SessionID == nil || *claims.SessionID != sid {
				t.Errorf("SessionID = %v, want %v", claims.SessionID, sid)
			}
			if claims.IsExpired() {
				t.Error("fresh token reported expired")
			}
		})
	}
}

func TestVerify_RejectsForeignKey(t *testing.T) {
	issuer := newTestManager(t, NewLocalKeys())
	other := newTestManager(t, NewLocalKeys())

	tok, err := issuer.IssueAccess("admin", "", nil)
	if err != nil {
		t.Fatalf("IssueAccess() error = %v", err)
	}

	_, err = other.Verify(tok)
	var invalid ErrInvalidToken
	if !errors.As(err, &invalid) {
		t.Fatalf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestIssueAccess_RequiresSubject(t *testing.T) {
	m := newTestManager(t, NewLocalKeys())
	if _, err := m.IssueAccess("", "", nil); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func TestNew_Validation(t *testing.T) {
	keys := NewLocalKeys()
	tests := []struct {
		name string
		cfg  Config
	}{
		{"mode mismatch", Config{Mode: ModePublic, Issuer: "i", Audience: "a"}},
		{"missing issuer", Config{Mode: ModeLocal, Audience: "a"}},
		{"missing audience", Config{Mode: ModeLocal, Issuer: "i"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg, keys); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadKeys(t *testing.T) {
	if _, err := LoadKeys(KeyStrings{Mode: ModeLocal}); err == nil {
		t.Error("local mode without key should fail")
	}
	if _, err := LoadKeys(KeyStrings{Mode: "bogus"}); err == nil {
		t.Error("unknown mode should fail")
	}

	k := NewLocalKeys()
	loaded, err := LoadKeys(KeyStrings{Mode: ModeLocal, SymmetricHex: k.Symmetric.ExportHex()})
	if err != nil {
		t.Fatalf("LoadKeys() error = %v", err)
	}
	if loaded.Symmetric == nil {
		t.Fatal("symmetric key not loaded")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeLocal, false},
		{"LOCAL", ModeLocal, false},
		{" public ", ModePublic, false},
		{"v2", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExportRoundTripsPublicKeys(t *testing.T) {
	ks := NewPublicKeys().Export()
	loaded, err := LoadKeys(ks)
	if err != nil {
		t.Fatalf("LoadKeys() error = %v", err)
	}

	m := newTestManager(t, loaded)
	tok, err := m.IssueAccess("admin", "sysadmin", nil)
	if err != nil {
		t.Fatalf("IssueAccess() error = %v", err)
	}

	verifier := newTestManager(t, mustLoad(t, KeyStrings{Mode: ModePublic, PublicHex: ks.PublicHex}))
	if _, err := verifier.Verify(tok); err != nil {
		t.Errorf("public-only verifier rejected token: %v", err)
	}
	if !IsInvalidToken(func() error { _, err := verifier.Verify(tok + "x"); return err }()) {
		t.Error("tampered token should be an invalid token error")
	}
}

func mustLoad(t *testing.T, ks KeyStrings) Keys {
	t.Helper()
	k, err := LoadKeys(ks)
	if err != nil {
		t.Fatalf("LoadKeys() error = %v", err)
	}
	return k
}
