package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/desichan/desichan/shared/domain"
	"github.com/desichan/desichan/shared/errors"
	"github.com/desichan/desichan/shared/logger"
)

type AuthService interface {
	Register(ctx context.Context, creds domain.Credentials) (*domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	User(ctx context.Context, id domain.UserId) (*domain.User, error)
	SetAdmin(ctx context.Context, username domain.Username, admin bool) error
}

type Auth struct {
	storage   AuthStorage
	validator CredentialsValidator
	jwt       Jwt
}

type AuthStorage interface {
	// SaveUser returns a Conflict error when the username is taken.
	SaveUser(ctx context.Context, user domain.User) (domain.UserId, error)
	User(ctx context.Context, id domain.UserId) (*domain.User, error)
	UserByName(ctx context.Context, username domain.Username) (*domain.User, error)
	SetAdmin(ctx context.Context, username domain.Username, admin bool) error
}

type CredentialsValidator interface {
	Username(username string) error
	Password(password string) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, validator CredentialsValidator, jwt Jwt) *Auth {
	return &Auth{
		storage:   storage,
		validator: validator,
		jwt:       jwt,
	}
}

// Register creates a regular (non-admin) account.
func (a *Auth) Register(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if err := a.validator.Username(creds.Username); err != nil {
		return nil, err
	}
	if err := a.validator.Password(creds.Password); err != nil {
		return nil, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return nil, err
	}

	user := domain.User{Username: creds.Username, PassHash: string(passHash)}
	id, err := a.storage.SaveUser(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("user registered", "user_id", id, "username", user.Username)
	return a.storage.User(ctx, id)
}

// Login checks the credentials and returns an access token.
// Unknown usernames and wrong passwords produce the same error.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	user, err := a.storage.UserByName(ctx, creds.Username)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.Unauthenticated("Invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Debug("password verification failed", "user_id", user.Id)
		return "", errors.Unauthenticated("Invalid credentials")
	}

	token, err := a.jwt.NewToken(*user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", err
	}
	return token, nil
}

// User is the user directory lookup used by the middleware and the other services.
func (a *Auth) User(ctx context.Context, id domain.UserId) (*domain.User, error) {
	return a.storage.User(ctx, id)
}

func (a *Auth) SetAdmin(ctx context.Context, username domain.Username, admin bool) error {
	if err := a.storage.SetAdmin(ctx, username, admin); err != nil {
		return err
	}
	logger.Log.Info("admin flag changed", "username", username, "admin", admin)
	return nil
}
