package authorize

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Alijeyrad/carepulse_backend/pkg/reqctx"
)

type stubClaims struct{ sub string }

func (s stubClaims) GetSubject() string       { return s.sub }
func (s stubClaims) GetRole() string          { return "" }
func (s stubClaims) GetSessionID() *uuid.UUID { return nil }
func (s stubClaims) GetTokenType() string     { return "access" }
func (s stubClaims) IsExpired() bool          { return false }

func TestSubjectFromContext(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		want    GroupSubject
		wantErr bool
	}{
		{"admin claims", reqctx.WithClaims(context.Background(), stubClaims{sub: "admin"}), AdminSubject, false},
		{"no claims", context.Background(), "", true},
		{"empty subject", reqctx.WithClaims(context.Background(), stubClaims{}), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SubjectFromContext(tt.ctx)
			if tt.wantErr {
				if !errors.Is(err, ErrNoSubjectInContext) {
					t.Errorf("err = %v, want ErrNoSubjectInContext", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SubjectFromContext() = %q, want %q", got, tt.want)
			}
		})
	}
}
