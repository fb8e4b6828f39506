// File: internal/service/token.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL 存取令牌預設有效期
const DefaultTokenTTL = 24 * time.Hour

var (
	// ErrInvalidToken 簽章錯誤、過期或內容不完整
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSecret 未設定簽章金鑰
	ErrMissingSecret = errors.New("token secret not set")
)

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// Claims 定義 JWT 負載內容
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// Tokens 簽發與驗證存取令牌，handler 與 middleware 依賴此介面
type Tokens interface {
	Issue(userID string) (string, time.Time, error)
	Verify(token string) (*Claims, error)
}

// TokenService 以 HS256 簽發 JWT
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService ttl <= 0 時使用 DefaultTokenTTL
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL 令牌有效期
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue 產生 {id} 令牌並回傳到期時間
func (s *TokenService) Issue(userID string) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrMissingSecret
	}

	now := timeNow()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify 驗證並解析 JWT 令牌
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSecret
	}

	token, err := parseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(timeNow), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
