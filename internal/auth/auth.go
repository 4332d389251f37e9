package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ChangePassword(userID string, dto ChangePasswordDTO) error
	Reauthenticate(userID, password string) error
}

type RepositoryAPI interface {
	GetPasswordForEmail(email string) (passwordHash string, userID string, err error)
	GetPasswordForID(userID string) (passwordHash string, active bool, err error)
	CreateAccount(id, email, passwordHash string) error
	UpdatePassword(userID, passwordHash string) error
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID string, email string) (token string, err error)
	GenerateRefreshToken(userID string, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrEmailTaken         = errors.New("email already registered")
)

type ctxKey string

const ContextProfileKey ctxKey = "access_profile"

// ProfileFromContext returns the resolved access profile injected by the
// auth middleware. A nil profile with ok==true means the caller is
// authenticated but has no company membership.
func ProfileFromContext(ctx context.Context) (*AccessProfile, bool) {
	profile, ok := ctx.Value(ContextProfileKey).(*AccessProfile)
	return profile, ok
}

func ContextWithProfile(ctx context.Context, profile *AccessProfile) context.Context {
	return context.WithValue(ctx, ContextProfileKey, profile)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
