package service

import (
	"errors"
	"testing"

	"fleamarket/model"
	"fleamarket/utils"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	createErr error
	created   *model.User
	byName    map[string]*model.User
}

func (f *fakeUserStore) CreateUser(user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = 1
	f.created = user
	return nil
}

func (f *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	if u, ok := f.byName[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestSignupHashesPassword(t *testing.T) {
	store := &fakeUserStore{}
	svc := NewAuthService(store, nil)

	err := svc.Signup("alice", "pw1", "Al")
	require.NoError(t, err)
	require.NotNil(t, store.created)
	require.Equal(t, "alice", store.created.Username)
	require.Equal(t, "Al", store.created.Nickname)
	require.NotEqual(t, "pw1", store.created.PasswordHash)
	require.True(t, utils.CheckPasswordHash("pw1", store.created.PasswordHash))
}

func TestSignupDuplicateUsername(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'username'"}
	svc := NewAuthService(&fakeUserStore{createErr: dup}, nil)
	require.ErrorIs(t, svc.Signup("alice", "pw1", "Al"), ErrUserExists)

	svc = NewAuthService(&fakeUserStore{createErr: gorm.ErrDuplicatedKey}, nil)
	require.ErrorIs(t, svc.Signup("alice", "pw1", "Al"), ErrUserExists)
}

func TestSignupPropagatesOtherErrors(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewAuthService(&fakeUserStore{createErr: boom}, nil)
	require.ErrorIs(t, svc.Signup("alice", "pw1", "Al"), boom)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{byName: map[string]*model.User{}}, nil)
	_, err := svc.Login("ghost", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPasswordIsIndistinguishable(t *testing.T) {
	hash, err := utils.HashPassword("correct")
	require.NoError(t, err)
	store := &fakeUserStore{byName: map[string]*model.User{
		"alice": {ID: 1, Username: "alice", PasswordHash: hash, Nickname: "Al"},
	}}
	svc := NewAuthService(store, nil)

	_, wrongPass := svc.Login("alice", "incorrect")
	_, wrongUser := svc.Login("nobody", "incorrect")
	require.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	require.ErrorIs(t, wrongUser, ErrInvalidCredentials)
	// the caller cannot tell which field was wrong
	require.Equal(t, wrongUser.Error(), wrongPass.Error())
}
