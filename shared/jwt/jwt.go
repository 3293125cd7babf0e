package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/desichan/desichan/shared/domain"
	internal_errors "github.com/desichan/desichan/shared/errors"
	"github.com/desichan/desichan/shared/logger"
)

type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (*jwt.Token, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey, ttl}
}

// NewToken signs a token carrying the user id. username and admin are informational only;
// services re-resolve the user on every privileged action.
func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{}
	claims["uid"] = user.Id
	claims["username"] = user.Username
	claims["admin"] = user.Admin
	claims["exp"] = time.Now().Add(j.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", fmt.Errorf("can't create token: %w", err)
	}

	return tokenString, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (*jwt.Token, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal_errors.Unauthenticated(fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]))
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		logger.Log.Debug("token rejected", "error", err)
		return nil, internal_errors.Unauthenticated("Invalid token signature")
	}

	if !token.Valid {
		return nil, internal_errors.Unauthenticated("Invalid access token")
	}

	return token, nil
}

// UserId extracts the uid claim. JSON numbers decode as float64.
func UserId(token *jwt.Token) (domain.UserId, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, internal_errors.Unauthenticated("Invalid token claims")
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, internal_errors.Unauthenticated("Invalid token claims")
	}
	return domain.UserId(uid), nil
}
