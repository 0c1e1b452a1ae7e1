package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"hotel-frontdesk/internal/usecase"
	"hotel-frontdesk/pkg/jwt"
	"hotel-frontdesk/pkg/response"
)

type contextKey string

const (
	OperatorIDKey    contextKey = "operator_id"
	OperatorEmailKey contextKey = "operator_email"
	TokenIDKey       contextKey = "token_id"
)

type AuthMiddleware struct {
	tokenService *jwt.SessionTokenService
	redisClient  *redis.Client
}

func NewAuthMiddleware(tokenService *jwt.SessionTokenService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		redisClient:  redisClient,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.tokenService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// Session must still exist in Redis (not revoked by logout).
		exists, err := m.redisClient.Exists(r.Context(), usecase.SessionKey(claims.OperatorID, claims.TokenID)).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate session")
			return
		}
		if exists == 0 {
			response.Unauthorized(w, "Session has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), OperatorIDKey, claims.OperatorID)
		ctx = context.WithValue(ctx, OperatorEmailKey, claims.Email)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOperatorIDFromContext extracts the operator id from context
func GetOperatorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	operatorID, ok := ctx.Value(OperatorIDKey).(uuid.UUID)
	return operatorID, ok
}

// GetTokenIDFromContext extracts the session token id from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
