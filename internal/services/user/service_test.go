package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/interfaces"
	"github.com/pshvarts/stockfolio/internal/models"
	"github.com/pshvarts/stockfolio/internal/storage/badger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := common.NewSilentLogger()
	manager, err := badger.NewManager(logger, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })
	return NewService(manager.UserStore(), logger)
}

func TestSeededTestUser(t *testing.T) {
	svc := newTestService(t)

	found, err := svc.Authenticate(context.Background(), "test")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "test@example.com", found.Email)
	assert.Empty(t, found.Password)
}

func TestAuthenticateUnknown(t *testing.T) {
	svc := newTestService(t)

	found, err := svc.Authenticate(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCreateRedactsPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.User{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Password)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.GetByName(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Password)
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), &models.User{Email: "x@example.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, interfaces.ErrValidation)
}

func TestGetAllRedacted(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.User{Name: "bob", Password: "pw"})
	require.NoError(t, err)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2) // seeded test user plus bob
	for _, u := range all {
		assert.Empty(t, u.Password)
	}
}
