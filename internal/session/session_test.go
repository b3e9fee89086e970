package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/kvstore"
)

func newTestService(t *testing.T) (*Service, kvstore.Store) {
	t.Helper()
	kv, err := kvstore.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	svc, err := NewService(context.Background(), kv, nil)
	require.NoError(t, err)
	return svc, kv
}

func TestLoginShortPasswordStaysAnonymous(t *testing.T) {
	svc, kv := newTestService(t)
	ctx := context.Background()

	_, errs, err := svc.Login(ctx, "a@b.com", "short")
	assert.ErrorIs(t, err, ErrInvalid)
	assert.NotEmpty(t, errs["password"])

	_, ok := svc.Current()
	assert.False(t, ok, "failed login must not establish a session")

	var stored models.SessionUser
	found, err := kv.Load(ctx, kvstore.KeyCurrentUser, &stored)
	require.NoError(t, err)
	assert.False(t, found, "failed login must not write storage")
}

func TestLoginEstablishesAndPersistsSession(t *testing.T) {
	svc, kv := newTestService(t)
	ctx := context.Background()

	user, errs, err := svc.Login(ctx, "a@b.com", "longenough")
	require.NoError(t, err)
	assert.True(t, errs.OK())
	assert.Equal(t, "a@b.com", user.Email)

	current, ok := svc.Current()
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", current.Email)

	var stored models.SessionUser
	found, err := kv.Load(ctx, kvstore.KeyCurrentUser, &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.SessionUser{Email: "a@b.com", Password: "longenough"}, stored)
}

func TestLoginRejectsMalformedEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, errs, err := svc.Login(context.Background(), "not-an-email", "longenough")
	assert.ErrorIs(t, err, ErrInvalid)
	assert.NotEmpty(t, errs["email"])
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, errs, err := svc.Signup(context.Background(), SignupRequest{
		FirstName:       "",
		LastName:        "Deshmukh",
		Email:           "a@b.com",
		Password:        "longenough",
		ConfirmPassword: "different",
		AcceptedTerms:   false,
	})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.NotEmpty(t, errs["firstName"])
	assert.NotEmpty(t, errs["confirmPassword"])
	assert.NotEmpty(t, errs["terms"])
	assert.Empty(t, errs["email"])
}

func TestSignupBehavesLikeLogin(t *testing.T) {
	svc, kv := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, SignupRequest{
		FirstName:       "Asha",
		LastName:        "Deshmukh",
		Email:           "asha@b.com",
		Password:        "longenough",
		ConfirmPassword: "longenough",
		AcceptedTerms:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.FirstName)

	var stored models.SessionUser
	found, err := kv.Load(ctx, kvstore.KeyCurrentUser, &stored)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestLogoutClearsSessionAndRunsHooks(t *testing.T) {
	svc, kv := newTestService(t)
	ctx := context.Background()

	cleared := false
	svc.OnLogout(func() { cleared = true })

	_, _, err := svc.Login(ctx, "a@b.com", "longenough")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))

	_, ok := svc.Current()
	assert.False(t, ok)
	assert.True(t, cleared, "logout must clear session-scoped state")

	var stored models.SessionUser
	found, err := kv.Load(ctx, kvstore.KeyCurrentUser, &stored)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRehydrateOnConstruction(t *testing.T) {
	kv, err := kvstore.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, kv.Save(ctx, kvstore.KeyCurrentUser, models.SessionUser{Email: "kept@b.com"}))

	svc, err := NewService(ctx, kv, nil)
	require.NoError(t, err)

	current, ok := svc.Current()
	assert.True(t, ok)
	assert.Equal(t, "kept@b.com", current.Email)
}

func TestAdoptBroadcastIsOneShot(t *testing.T) {
	kv, err := kvstore.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	// Another instance logged in and left the broadcast key behind.
	require.NoError(t, kv.Save(ctx, kvstore.KeyLoginBroadcast, models.SessionUser{Email: "other@b.com"}))

	svc, err := NewService(ctx, kv, nil)
	require.NoError(t, err)

	adopted, err := svc.AdoptBroadcast(ctx)
	require.NoError(t, err)
	assert.True(t, adopted)

	current, ok := svc.Current()
	assert.True(t, ok)
	assert.Equal(t, "other@b.com", current.Email)

	// The broadcast key is consumed; a second sync adopts nothing.
	adopted, err = svc.AdoptBroadcast(ctx)
	require.NoError(t, err)
	assert.False(t, adopted)
}

func TestForgotPassword(t *testing.T) {
	svc, _ := newTestService(t)

	errs, err := svc.ForgotPassword("a@b.com")
	require.NoError(t, err)
	assert.True(t, errs.OK())

	errs, err = svc.ForgotPassword("nope")
	assert.ErrorIs(t, err, ErrInvalid)
	assert.NotEmpty(t, errs["email"])
}
