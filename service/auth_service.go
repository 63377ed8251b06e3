package service

import (
	"errors"
	"time"

	"fleamarket/config"
	"fleamarket/internal/auth"
	"fleamarket/model"
	"fleamarket/utils"

	"github.com/go-redis/redis/v8"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrUserExists = errors.New("username already taken")
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserStore is the slice of the user DAO the auth flows need.
type UserStore interface {
	CreateUser(user *model.User) error
	GetByUsername(username string) (*model.User, error)
}

// AuthService bundles the user store, session storage and password helpers.
type AuthService struct {
	dao     UserStore
	Session *auth.SessionManager
}

// NewAuthService 创建一个新的 AuthService 实例
func NewAuthService(userDAO UserStore, rdb *redis.Client) *AuthService {
	return &AuthService{
		dao:     userDAO,
		Session: auth.NewSessionManager(rdb),
	}
}

// Signup persists a freshly created user after hashing the password.
func (s *AuthService) Signup(username, password, nickname string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	user := &model.User{
		Username:     username,
		PasswordHash: hashed,
		Nickname:     nickname,
	}
	if err := s.dao.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return ErrUserExists
		}
		return err
	}
	return nil
}

// Login authenticates username/password and issues a session token.
// The token is mirrored in Redis so logout can revoke it. Failures are
// collapsed into ErrInvalidCredentials regardless of which field was
// wrong.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.dao.GetByUsername(username)
	if err != nil || user.ID == 0 {
		return "", ErrInvalidCredentials
	}

	// 校验密码
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateSessionToken(user.ID, user.Username, user.Nickname)
	if err != nil {
		return "", err
	}

	ttl := time.Duration(config.GlobalConfig.Session.Expire) * time.Second
	if err := s.Session.SaveSession(user.ID, token, ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Logout revokes the presented session: the token goes on the
// blacklist for the rest of its lifetime and the stored session is
// dropped.
func (s *AuthService) Logout(userID uint64, token string) error {
	ttl := time.Duration(config.GlobalConfig.Session.Expire) * time.Second
	if err := s.Session.AddBlackList(token, ttl); err != nil {
		return err
	}
	return s.Session.DeleteSession(userID)
}
