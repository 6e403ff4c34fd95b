package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultSessionTokenExpireHours = 24

// SessionTokenService 会话 token 签发与校验
type SessionTokenService struct {
	secret      []byte
	expireHours int
	clock       func() time.Time
}

// NewSessionTokenService 创建会话 token 服务
func NewSessionTokenService(secret string, expireHours int) *SessionTokenService {
	if expireHours <= 0 {
		expireHours = defaultSessionTokenExpireHours
	}
	return &SessionTokenService{
		secret:      []byte(secret),
		expireHours: expireHours,
		clock:       time.Now,
	}
}

// SessionClaims 会话 JWT 声明
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Generate 为会话签发 token
func (s *SessionTokenService) Generate(sessionID string) (string, time.Time, error) {
	now := s.clock()
	expiresAt := now.Add(time.Duration(s.expireHours) * time.Hour)
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse 解析会话 token
func (s *SessionTokenService) Parse(tokenString string) (*SessionClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrSessionTokenInvalid
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock),
	)
	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrSessionTokenInvalid, err)
	}
	if !token.Valid || strings.TrimSpace(claims.SessionID) == "" {
		return nil, ErrSessionTokenInvalid
	}
	return claims, nil
}
