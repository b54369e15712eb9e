package usecase

import (
	"context"
	"testing"

	"github.com/RoketV/share-it-project/internal/apperr"
	"github.com/RoketV/share-it-project/internal/data/repository"
	"github.com/RoketV/share-it-project/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserFixture() (UserService, *repository.Repository) {
	repo := newFakeRepository()
	service := NewUserService(repo, fixedClock{now: testNow}, zap.NewNop())
	return service, repo
}

func TestAddUser(t *testing.T) {
	service, _ := newUserFixture()

	user, err := service.AddUser(context.Background(), &request.CreateUserRequest{
		Name:  "alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.NotEmpty(t, user.ID)
}

func TestAddUserDuplicateEmail(t *testing.T) {
	service, _ := newUserFixture()

	_, err := service.AddUser(context.Background(), &request.CreateUserRequest{
		Name:  "alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)

	_, err = service.AddUser(context.Background(), &request.CreateUserRequest{
		Name:  "alice again",
		Email: "alice@example.com",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestAddUserValidation(t *testing.T) {
	service, _ := newUserFixture()

	for _, req := range []*request.CreateUserRequest{
		{Name: "", Email: "alice@example.com"},
		{Name: "alice", Email: ""},
		{Name: "alice", Email: "not-an-email"},
	} {
		_, err := service.AddUser(context.Background(), req)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument), "req %+v", req)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	service, repo := newUserFixture()
	user := seedUser(t, repo, "alice")

	name := "alicia"
	updated, err := service.UpdateUser(context.Background(), user.ID, &request.UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Name)
	assert.Equal(t, user.Email, updated.Email)
}

func TestUpdateUserEmailTaken(t *testing.T) {
	service, repo := newUserFixture()
	alice := seedUser(t, repo, "alice")
	bob := seedUser(t, repo, "bob")

	email := alice.Email
	_, err := service.UpdateUser(context.Background(), bob.ID, &request.UpdateUserRequest{Email: &email})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestGetUserNotFound(t *testing.T) {
	service, _ := newUserFixture()

	_, err := service.GetUser(context.Background(), uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGetUsers(t *testing.T) {
	service, repo := newUserFixture()
	seedUser(t, repo, "alice")
	seedUser(t, repo, "bob")

	users, err := service.GetUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestDeleteUser(t *testing.T) {
	service, repo := newUserFixture()
	user := seedUser(t, repo, "alice")

	require.NoError(t, service.DeleteUser(context.Background(), user.ID))

	err := service.DeleteUser(context.Background(), user.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
