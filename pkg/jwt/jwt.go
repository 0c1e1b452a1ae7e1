package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"hotel-frontdesk/config"
)

type Claims struct {
	OperatorID uuid.UUID `json:"operator_id"`
	Email      string    `json:"email"`
	TokenID    string    `json:"token_id"`
	jwt.RegisteredClaims
}

type SessionTokenService struct {
	config config.SessionConfig
}

func NewSessionTokenService(cfg config.SessionConfig) *SessionTokenService {
	return &SessionTokenService{config: cfg}
}

func (s *SessionTokenService) GenerateToken(operatorID uuid.UUID, email string) (string, string, error) {
	tokenID := uuid.New().String()
	claims := Claims{
		OperatorID: operatorID,
		Email:      email,
		TokenID:    tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", err
	}

	return signedToken, tokenID, nil
}

func (s *SessionTokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (s *SessionTokenService) Expiry() time.Duration {
	return s.config.Expiry
}
