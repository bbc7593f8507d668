package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const (
	RoleBurrower = "burrower"
	RoleAdmin    = "admin"

	TokenTTL = 24 * time.Hour
)

// JWTKey signs and verifies access tokens. Overridden from config at startup.
var JWTKey = []byte("library-service-secret")

func SetKey(secret string) {
	if secret != "" {
		JWTKey = []byte(secret)
	}
}

type Claims struct {
	Profile struct {
		UserUID string `json:"userUid"`
		Role    string `json:"role"`
	} `json:"profile"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token carrying the user uid and role, expiring
// after TokenTTL.
func IssueToken(userUID, role, email string) (string, error) {
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	claims.Profile.UserUID = userUID
	claims.Profile.Role = role

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTKey)
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return JWTKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

type ctxKey int

const authKey ctxKey = iota + 1

type Identity struct {
	UserUID string
	Role    string
}

func SetAuthContext(ctx context.Context, userUID, role string) context.Context {
	return context.WithValue(ctx, authKey, Identity{UserUID: userUID, Role: role})
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(authKey).(Identity)
	return id, ok
}
