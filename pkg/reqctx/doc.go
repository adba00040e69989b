// Package reqctx provides centralized request context management.
//
// Context keys are private unexported types; access goes through the typed
// getters and setters.
//
// Setting values (typically in middleware):
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{
//	    RequestID:   "abc-123",
//	    ClientIP:    "192.168.1.1",
//	    RequestedAt: time.Now(),
//	})
//
//	ctx = reqctx.WithClaims(ctx, claims)
//
// Reading them in services:
//
//	reqctx.Logger(ctx).Warn("sms failed", "err", err)
//
// RequestMeta is set by HTTP middleware for all requests. Claims are set only
// on routes behind the admin session check.
package reqctx
