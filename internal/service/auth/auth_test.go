package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/carepulse_backend/pkg/authorize"
	pasetotoken "github.com/Alijeyrad/carepulse_backend/pkg/paseto"
	"github.com/Alijeyrad/carepulse_backend/pkg/util/passkey"
)

func newTestService(t *testing.T) (Service, *pasetotoken.Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	keys := pasetotoken.NewLocalKeys()
	tokens, err := pasetotoken.New(pasetotoken.Config{
		Mode:      keys.Mode,
		Issuer:    "carepulse",
		Audience:  "carepulse-admin",
		AccessTTL: 10 * time.Minute,
	}, keys)
	require.NoError(t, err)

	svc := New(rdb, tokens, Config{Passkey: "111111", MaxFailures: 3, Lockout: time.Minute})
	return svc, tokens, mr
}

func TestAdminLogin_Success(t *testing.T) {
	svc, tokens, mr := newTestService(t)
	ctx := context.Background()

	sess, err := svc.AdminLogin(ctx, "111111", "10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, int64(600), sess.ExpiresIn)

	claims, err := tokens.Verify(sess.AccessToken)
	require.NoError(t, err)
	require.Equal(t, string(authorize.AdminSubject), claims.Subject)
	require.Equal(t, string(authorize.RoleSysAdmin), claims.Role)
	require.NotNil(t, claims.SessionID)
	require.Equal(t, sess.SessionID, *claims.SessionID)

	require.True(t, mr.Exists("session:"+sess.SessionID.String()))
	require.NoError(t, svc.CheckSession(ctx, sess.SessionID))
}

func TestAdminLogin_WrongPasskeyLocksOut(t *testing.T) {
	svc, _, mr := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.AdminLogin(ctx, "000000", "10.0.0.2")
		require.ErrorIs(t, err, ErrInvalidPasskey)
	}

	_, err := svc.AdminLogin(ctx, "111111", "10.0.0.2")
	require.ErrorIs(t, err, ErrLockedOut)

	// other clients are unaffected
	_, err = svc.AdminLogin(ctx, "111111", "10.0.0.3")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = svc.AdminLogin(ctx, "111111", "10.0.0.2")
	require.NoError(t, err)
}

func TestAdminLogin_SuccessClearsFailures(t *testing.T) {
	svc, _, mr := newTestService(t)
	ctx := context.Background()

	_, err := svc.AdminLogin(ctx, "bad", "10.0.0.4")
	require.ErrorIs(t, err, ErrInvalidPasskey)
	require.True(t, mr.Exists("admin:failed:10.0.0.4"))

	_, err = svc.AdminLogin(ctx, "111111", "10.0.0.4")
	require.NoError(t, err)
	require.False(t, mr.Exists("admin:failed:10.0.0.4"))
}

func TestLogout(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.AdminLogin(ctx, "111111", "10.0.0.5")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.SessionID))
	require.ErrorIs(t, svc.CheckSession(ctx, sess.SessionID), ErrSessionNotFound)

	// second logout is a no-op
	require.NoError(t, svc.Logout(ctx, sess.SessionID))
}

func TestAdminLogin_NotConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	_, err := New(rdb, nil, Config{}).AdminLogin(context.Background(), "", "1.1.1.1")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestAdminLogin_HashedPasskey(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	keys := pasetotoken.NewLocalKeys()
	tokens, err := pasetotoken.New(pasetotoken.Config{
		Mode: keys.Mode, Issuer: "carepulse", Audience: "carepulse-admin",
	}, keys)
	require.NoError(t, err)

	hash, err := passkey.Hash("424242")
	require.NoError(t, err)
	svc := New(rdb, tokens, Config{Passkey: hash})

	_, err = svc.AdminLogin(context.Background(), hash, "10.0.0.9")
	require.ErrorIs(t, err, ErrInvalidPasskey)

	_, err = svc.AdminLogin(context.Background(), "424242", "10.0.0.9")
	require.NoError(t, err)
}
