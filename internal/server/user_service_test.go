package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/plumber-matcher/internal/config"
	"github.com/jonathan/plumber-matcher/internal/db"
	"github.com/jonathan/plumber-matcher/internal/types"
)

// fakeStore is an in-memory UserStore for unit tests.
type fakeStore struct {
	users    map[uuid.UUID]*db.User
	byEmail  map[string]uuid.UUID
	profiles map[uuid.UUID]*db.PlumberProfile // keyed by user ID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*db.User),
		byEmail:  make(map[string]uuid.UUID),
		profiles: make(map[uuid.UUID]*db.PlumberProfile),
	}
}

func (f *fakeStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeStore) CreateUser(_ context.Context, name, email, passwordHash, role string) (uuid.UUID, error) {
	id := uuid.New()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash, Role: role}
	f.byEmail[email] = id
	return id, nil
}

func (f *fakeStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	return f.users[userID], nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	return f.users[id], nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	f.users[userID].PasswordHash = passwordHash
	return nil
}

func (f *fakeStore) CreatePlumberProfile(_ context.Context, p *db.PlumberProfile) (uuid.UUID, error) {
	id := uuid.New()
	p.ID = id
	f.profiles[p.UserID] = p
	return id, nil
}

func newTestUserService(store UserStore) *UserService {
	return NewUserService(store, &config.PasswordConfig{BcryptCost: 10})
}

func TestUserService_RegisterCustomer(t *testing.T) {
	store := newFakeStore()
	service := newTestUserService(store)

	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Asha Desai",
		Email:    "asha@example.com",
		Password: "secret-password",
		Role:     types.RoleCustomer,
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Desai", user.Name)
	assert.Equal(t, types.RoleCustomer, user.Role)
	assert.Empty(t, store.profiles, "customers get no plumber profile")

	// password is stored hashed
	stored := store.users[user.ID]
	assert.NotEqual(t, "secret-password", stored.PasswordHash)
}

func TestUserService_RegisterPlumberCreatesProfile(t *testing.T) {
	store := newFakeStore()
	service := newTestUserService(store)

	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Ramesh Patel",
		Email:    "ramesh@example.com",
		Password: "secret-password",
		Role:     types.RolePlumber,
	})
	require.NoError(t, err)

	profile, ok := store.profiles[user.ID]
	require.True(t, ok, "plumber registration should create a profile")
	assert.Equal(t, user.ID, profile.UserID)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	service := newTestUserService(store)

	req := &types.CreateUserRequest{
		Name: "Asha Desai", Email: "asha@example.com", Password: "secret-password", Role: types.RoleCustomer,
	}
	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	require.Error(t, err)
	assert.IsType(t, &ErrEmailAlreadyExists{}, err)
}

func TestUserService_Login(t *testing.T) {
	store := newFakeStore()
	service := newTestUserService(store)

	registered, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "Asha Desai", Email: "asha@example.com", Password: "secret-password", Role: types.RoleCustomer,
	})
	require.NoError(t, err)

	user, err := service.Login(context.Background(), &types.LoginRequest{
		Email: "asha@example.com", Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	store := newFakeStore()
	service := newTestUserService(store)

	_, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "Asha Desai", Email: "asha@example.com", Password: "secret-password", Role: types.RoleCustomer,
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &types.LoginRequest{
		Email: "asha@example.com", Password: "wrong-password",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestUserService_LoginUnknownEmail(t *testing.T) {
	service := newTestUserService(newFakeStore())

	_, err := service.Login(context.Background(), &types.LoginRequest{
		Email: "nobody@example.com", Password: "whatever-password",
	})
	require.Error(t, err)
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestUserService_UpdatePassword(t *testing.T) {
	store := newFakeStore()
	service := newTestUserService(store)

	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "Asha Desai", Email: "asha@example.com", Password: "old-password-123", Role: types.RoleCustomer,
	})
	require.NoError(t, err)

	require.NoError(t, service.UpdatePassword(context.Background(), user.ID, "old-password-123", "new-password-456"))

	_, err = service.Login(context.Background(), &types.LoginRequest{Email: "asha@example.com", Password: "old-password-123"})
	assert.Error(t, err, "old password should no longer work")

	_, err = service.Login(context.Background(), &types.LoginRequest{Email: "asha@example.com", Password: "new-password-456"})
	assert.NoError(t, err)
}

func TestUserService_UpdatePasswordMismatch(t *testing.T) {
	store := newFakeStore()
	service := newTestUserService(store)

	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "Asha Desai", Email: "asha@example.com", Password: "old-password-123", Role: types.RoleCustomer,
	})
	require.NoError(t, err)

	err = service.UpdatePassword(context.Background(), user.ID, "wrong-password", "new-password-456")
	require.Error(t, err)
	assert.IsType(t, &ErrPasswordMismatch{}, err)
}

func TestUserService_UpdatePasswordUnknownUser(t *testing.T) {
	service := newTestUserService(newFakeStore())

	err := service.UpdatePassword(context.Background(), uuid.New(), "old-password-123", "new-password-456")
	require.Error(t, err)
	assert.IsType(t, &ErrUserNotFound{}, err)
}
