package server

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dileep2896/visapath/internal/config"
	"github.com/Dileep2896/visapath/internal/db"
	"github.com/Dileep2896/visapath/internal/types"
)

// mockDB is an in-memory DBClient for service tests.
type mockDB struct {
	users  map[uuid.UUID]*db.User
	failOn string
}

func newMockDB() *mockDB {
	return &mockDB{users: map[uuid.UUID]*db.User{}}
}

func (m *mockDB) fail(op string) error {
	if m.failOn == op {
		return errors.New("mock failure")
	}
	return nil
}

func (m *mockDB) CheckEmailExists(_ context.Context, email string) (bool, error) {
	if err := m.fail("check"); err != nil {
		return false, err
	}
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockDB) CreateUser(_ context.Context, email, passwordHash string) (uuid.UUID, error) {
	if err := m.fail("create"); err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	m.users[id] = &db.User{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	return id, nil
}

func (m *mockDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	if err := m.fail("get"); err != nil {
		return nil, err
	}
	return m.users[id], nil
}

func (m *mockDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	if err := m.fail("getByEmail"); err != nil {
		return nil, err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockDB) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	if err := m.fail("updatePassword"); err != nil {
		return err
	}
	u, ok := m.users[id]
	if !ok {
		return errors.New("no such user")
	}
	u.PasswordHash = passwordHash
	return nil
}

func newTestUserService(t *testing.T) (*UserService, *mockDB) {
	t.Helper()
	t.Setenv("BCRYPT_COST", "10")
	pc, err := config.NewPasswordConfig()
	require.NoError(t, err)
	mock := newMockDB()
	return NewUserServiceWithClient(mock, pc), mock
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.RegisterRequest{
		Email:    "student@example.edu",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "student@example.edu", user.Email)
	assert.NotEqual(t, uuid.Nil, user.ID)

	loggedIn, err := svc.Login(ctx, &types.LoginRequest{
		Email:    "student@example.edu",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	req := &types.RegisterRequest{Email: "dup@example.edu", Password: "password123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	var dup *ErrEmailAlreadyExists
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "dup@example.edu", dup.Email)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.RegisterRequest{Email: "a@example.edu", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "a@example.edu", Password: "wrong"})
	var invalid *ErrInvalidCredentials
	assert.True(t, errors.As(err, &invalid))
}

func TestUserService_LoginUnknownEmail(t *testing.T) {
	svc, _ := newTestUserService(t)

	// Unknown accounts look the same as wrong passwords.
	_, err := svc.Login(context.Background(), &types.LoginRequest{Email: "nobody@example.edu", Password: "whatever1"})
	var invalid *ErrInvalidCredentials
	assert.True(t, errors.As(err, &invalid))
}

func TestUserService_MeDecodesProfile(t *testing.T) {
	svc, mock := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.RegisterRequest{Email: "me@example.edu", Password: "password123"})
	require.NoError(t, err)

	profile := types.UserProfile{VisaType: types.VisaF1, Country: "India", ExpectedGraduation: "2026-05-15"}
	raw, err := json.Marshal(profile)
	require.NoError(t, err)
	mock.users[user.ID].Profile = raw

	me, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, me.Profile)
	assert.Equal(t, types.VisaF1, me.Profile.VisaType)
	assert.Equal(t, "India", me.Profile.Country)
}

func TestUserService_MeUnknownUser(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Me(context.Background(), uuid.New())
	var notFound *ErrUserNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestUserService_UpdatePassword(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.RegisterRequest{Email: "pw@example.edu", Password: "oldpassword"})
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, user.ID, "nope", "newpassword")
	var mismatch *ErrPasswordMismatch
	require.True(t, errors.As(err, &mismatch))

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "oldpassword", "newpassword"))

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "pw@example.edu", Password: "newpassword"})
	assert.NoError(t, err)
}

func TestUserService_NilStore(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	pc, err := config.NewPasswordConfig()
	require.NoError(t, err)
	svc := NewUserService(nil, pc)

	_, err = svc.Login(context.Background(), &types.LoginRequest{Email: "x@example.edu", Password: "password"})
	assert.ErrorContains(t, err, "user store unavailable")
}
