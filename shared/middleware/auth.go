package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/desichan/desichan/shared/domain"
	internal_errors "github.com/desichan/desichan/shared/errors"
	jwt_internal "github.com/desichan/desichan/shared/jwt"
	"github.com/desichan/desichan/shared/logger"
	"github.com/desichan/desichan/shared/utils"
)

const AccessTokenCookie = "accessToken"

// UserDirectory resolves the account behind a token so the admin flag is current
// and deleted accounts are rejected.
type UserDirectory interface {
	User(ctx context.Context, id domain.UserId) (*domain.User, error)
}

// Key to store the user in the request context
type key int

const UserClaimsKey key = 0

type Auth struct {
	jwtService    jwt_internal.JwtService
	users         UserDirectory
	secureCookies bool
}

func NewAuth(jwtService jwt_internal.JwtService, users UserDirectory, secureCookies bool) *Auth {
	return &Auth{
		jwtService:    jwtService,
		users:         users,
		secureCookies: secureCookies,
	}
}

// NeedAuth returns middleware that requires authentication
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that requires admin authentication
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

// OptionalAuth populates the user if the token is valid but lets anonymous requests through.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, _ := a.extractUser(r); user != nil {
				r = r.WithContext(context.WithValue(r.Context(), UserClaimsKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	// cookie for browser clients, bearer header for everything else
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return c.Value
	}
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return token
	}
	return ""
}

func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	tokenString := tokenFromRequest(r)
	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}
	uid, err := jwt_internal.UserId(token)
	if err != nil {
		return nil, errInvalidClaims
	}

	if a.users == nil {
		return &domain.User{Id: uid}, nil
	}
	user, err := a.users.User(r.Context(), uid)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return nil, errUnknownUser
		}
		return nil, err
	}
	return user, nil
}

// Sentinel errors for extractUser
var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
	errUnknownUser   = errorString("unknown user")
)

type errorString string

func (e errorString) Error() string { return string(e) }

func (a *Auth) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     AccessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				switch err {
				case errNoToken:
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
				case errUnknownUser:
					a.ClearCookie(w)
					http.Error(w, "Account no longer exists", http.StatusUnauthorized)
				case errInvalidClaims:
					logger.Log.Warn("invalid jwt claims")
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				default:
					// decode error or directory failure
					utils.WriteErrorAndStatusCode(w, err)
				}
				return
			}

			if adminOnly && !user.Admin {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns nil for anonymous requests.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
