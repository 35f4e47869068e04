package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/andrianpratama/member-auth-service/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/andrianpratama/member-auth-service/pkg/constant"
	"github.com/golang-jwt/jwt/v5"
)

type TokenGenerator interface {
	Generate(recordID, memberNo string) (string, time.Time, error)
	GetTokenExpiry() time.Duration
	VerifyToken(tokenString string) (*JWTCustomClaims, error)
}

type TokenService struct {
	Secret      string
	TokenExpiry time.Duration
}

// JWTCustomClaims carries the record ID in sub and the member number in pl.
// The pl claim is the only trusted source of identity for authenticated
// flows.
type JWTCustomClaims struct {
	jwt.RegisteredClaims
	MemberNo string `json:"pl"`
}

func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{
		Secret:      secret,
		TokenExpiry: expiry,
	}
}

func (ts *TokenService) Generate(recordID, memberNo string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.TokenExpiry)

	claims := JWTCustomClaims{
		MemberNo: memberNo,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constant.TokenIssuer,
			Subject:   recordID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

func (ts *TokenService) GetTokenExpiry() time.Duration {
	return ts.TokenExpiry
}

// VerifyToken parses and validates the given session token string, checking
// signature, expiry, and issuer.
func (ts *TokenService) VerifyToken(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Issuer != constant.TokenIssuer {
		return nil, fmt.Errorf("unexpected issuer")
	}

	return claims, nil
}
