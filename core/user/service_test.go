package user_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
	emailsvc "github.com/Sagar-Ghorade/SmartEdu/services/email"
	inmemdb "github.com/Sagar-Ghorade/SmartEdu/storage/database/inmem"
)

func setup(t *testing.T) (*user.Service, user.Repository) {
	t.Helper()

	db, err := inmemdb.Open()
	require.NoError(t, err)
	repo := inmemdb.NewUserRepository(db)
	return user.NewService(repo, emailsvc.NewConsoleServiceMock(), core.Conf), repo
}

func TestService_Register(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, user.NewUser{
		Name:     "Aman Gupta",
		Email:    "aman@test.cm",
		Password: "LePass123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, user.RoleStudent, usr.Role)
	assert.NotEqual(t, "LePass123", usr.PasswordHash)
	assert.NoError(t, usr.CheckPassword("LePass123"))
	assert.False(t, usr.CreatedAt.IsZero())

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, user.NewUser{
			Name:     "Another Aman",
			Email:    "aman@test.cm",
			Password: "Wh4tever",
		})
		assert.Equal(t, user.ErrEmailExists, errors.Cause(err))
	})
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, user.NewUser{Name: "Aman Gupta", Email: "aman@test.cm", Password: "LePass123"})
	require.NoError(t, err)
	require.True(t, usr.LastLogin.IsZero())

	t.Run("ok", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, "Aman@Test.cm", "LePass123")
		require.NoError(t, err)
		assert.Equal(t, usr.ID, got.ID)
		assert.False(t, got.LastLogin.IsZero())
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ghost@test.cm", "LePass123")
		assert.Equal(t, user.ErrNotFound, errors.Cause(err))
	})

	t.Run("bad password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "aman@test.cm", "NotLePass")
		assert.Equal(t, user.ErrInvalidPassword, errors.Cause(err))
	})
}

func TestService_PasswordReset(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, user.NewUser{Name: "Aman Gupta", Email: "aman@test.cm", Password: "LePass123"})
	require.NoError(t, err)

	emailsvc.SentMessages = nil // reset
	require.NoError(t, svc.RequestPasswordReset(ctx, "aman@test.cm"))
	require.Len(t, emailsvc.SentMessages, 1)

	msg := emailsvc.SentMessages[0]
	assert.Equal(t, usr.Email, msg.To[0].Address)
	assert.Contains(t, msg.Subject, "Password Reset")

	// pull "<uid>/<token>" off the reset link
	idx := strings.Index(msg.BodyStr, "/password-reset/")
	require.True(t, idx >= 0, "no reset link in %q", msg.BodyStr)
	parts := strings.SplitN(strings.Fields(msg.BodyStr[idx+len("/password-reset/"):])[0], "/", 2)
	require.Len(t, parts, 2)
	uid, token := parts[0], parts[1]

	t.Run("unknown email", func(t *testing.T) {
		err := svc.RequestPasswordReset(ctx, "ghost@test.cm")
		assert.Equal(t, user.ErrNotFound, errors.Cause(err))
	})

	t.Run("bad uid", func(t *testing.T) {
		err := svc.ResetPassword(ctx, user.ResetUserPassword{UID: "!!!", Token: token, Password: "NewPass123"})
		var vErr *core.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("bad token", func(t *testing.T) {
		err := svc.ResetPassword(ctx, user.ResetUserPassword{UID: uid, Token: "00-deadbeef", Password: "NewPass123"})
		var vErr *core.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("ok", func(t *testing.T) {
		err := svc.ResetPassword(ctx, user.ResetUserPassword{UID: uid, Token: token, Password: "NewPass123"})
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "aman@test.cm", "NewPass123")
		assert.NoError(t, err)
	})

	t.Run("token no longer valid", func(t *testing.T) {
		err := svc.ResetPassword(ctx, user.ResetUserPassword{UID: uid, Token: token, Password: "YetAnother1"})
		var vErr *core.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})
}
