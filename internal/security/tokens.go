package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Escopos dos tokens de uso restrito. O verificador exige o escopo
// exato: um token de reset nunca serve para ativação e vice-versa.
const (
	ScopePasswordReset     = "password_reset"
	ScopeAccountActivation = "account_activation"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongScope   = errors.New("token issued for another scope")
)

type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
}

// NewTokenManager aceita qualquer algoritmo da família HMAC
// (JWT_ALGORITHM); valor desconhecido cai em HS256.
func NewTokenManager(secret, algorithm string) *TokenManager {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		method = jwt.SigningMethodHS256
	}
	return &TokenManager{
		secret: []byte(secret),
		method: method,
	}
}

// CreateAccessToken emite o JWT de sessão com o e-mail no subject.
func (m *TokenManager) CreateAccessToken(email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(m.method, claims)
	return token.SignedString(m.secret)
}

// CreateScopedToken emite um token de uso único por finalidade
// (reset de senha, ativação de conta).
func (m *TokenManager) CreateScopedToken(email, scope string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   email,
		"scope": scope,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(m.method, claims)
	return token.SignedString(m.secret)
}

// VerifyAccessToken devolve o e-mail do subject de um token de sessão.
// Tokens com escopo não valem como sessão.
func (m *TokenManager) VerifyAccessToken(tokenString string) (string, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return "", err
	}
	if scope, _ := claims["scope"].(string); scope != "" {
		return "", ErrWrongScope
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}

// VerifyScopedToken devolve o e-mail do subject se o token carregar
// exatamente o escopo esperado.
func (m *TokenManager) VerifyScopedToken(tokenString, wantScope string) (string, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return "", err
	}
	scope, _ := claims["scope"].(string)
	if scope != wantScope {
		return "", ErrWrongScope
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}

func (m *TokenManager) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
