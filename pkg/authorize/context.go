package authorize

import (
	"context"
	"errors"

	"github.com/Alijeyrad/carepulse_backend/pkg/reqctx"
)

var ErrNoSubjectInContext = errors.New("no subject found in context")

// SubjectFromContext extracts the authenticated principal from the request
// claims.
func SubjectFromContext(ctx context.Context) (GroupSubject, error) {
	claims := reqctx.ClaimsFromContext(ctx)
	if claims == nil || claims.GetSubject() == "" {
		return "", ErrNoSubjectInContext
	}
	return GroupSubject(claims.GetSubject()), nil
}
