package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotel-frontdesk/internal/delivery/dto"
	"hotel-frontdesk/internal/domain/entity"
	"hotel-frontdesk/internal/domain/repository"
	"hotel-frontdesk/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrOperatorNotFound   = errors.New("operator not found")
	ErrOperatorInactive   = errors.New("operator account is inactive")
)

const sessionKeyPrefix = "session:"

// SessionUsecase owns the explicit operator session: issued on login,
// revoked on logout, checked by the auth middleware. Nothing reads
// ambient globals for identity.
type SessionUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Logout(ctx context.Context, operatorID uuid.UUID, tokenID string) error
	CurrentOperator(ctx context.Context, operatorID uuid.UUID) (*dto.OperatorResponse, error)
	SeedOperator(ctx context.Context, fullName, email, password string) error
}

type sessionUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	operatorRepo repository.OperatorRepository
	tokenService *jwt.SessionTokenService
	redisClient  *redis.Client
}

func NewSessionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	operatorRepo repository.OperatorRepository,
	tokenService *jwt.SessionTokenService,
	redisClient *redis.Client,
) SessionUsecase {
	return &sessionUsecase{
		db:           db,
		log:          log,
		operatorRepo: operatorRepo,
		tokenService: tokenService,
		redisClient:  redisClient,
	}
}

func SessionKey(operatorID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, operatorID.String(), tokenID)
}

func (u *sessionUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	operator, err := u.operatorRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		u.log.Warnf("Failed to look up operator %q: %+v", req.Email, err)
		return nil, err
	}

	if operator.IsActive != nil && !*operator.IsActive {
		return nil, ErrOperatorInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, tokenID, err := u.tokenService.GenerateToken(operator.ID, operator.Email)
	if err != nil {
		u.log.Warnf("Failed to sign session token: %+v", err)
		return nil, err
	}

	key := SessionKey(operator.ID, tokenID)
	if err := u.redisClient.Set(ctx, key, 1, u.tokenService.Expiry()).Err(); err != nil {
		u.log.Warnf("Failed to store session %s: %+v", key, err)
		return nil, err
	}

	u.log.Infof("Operator %s logged in", operator.Email)

	return &dto.SessionResponse{
		AccessToken: token,
		ExpiresIn:   int64(u.tokenService.Expiry().Seconds()),
		Operator: &dto.OperatorResponse{
			ID:        operator.ID,
			Email:     operator.Email,
			FullName:  operator.FullName,
			CreatedAt: operator.CreatedAt,
		},
	}, nil
}

func (u *sessionUsecase) Logout(ctx context.Context, operatorID uuid.UUID, tokenID string) error {
	if err := u.redisClient.Del(ctx, SessionKey(operatorID, tokenID)).Err(); err != nil {
		u.log.Warnf("Failed to revoke session for %s: %+v", operatorID, err)
		return err
	}
	u.log.Infof("Operator %s logged out", operatorID)
	return nil
}

func (u *sessionUsecase) CurrentOperator(ctx context.Context, operatorID uuid.UUID) (*dto.OperatorResponse, error) {
	operator, err := u.operatorRepo.FindByID(u.db.WithContext(ctx), operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}

	return &dto.OperatorResponse{
		ID:        operator.ID,
		Email:     operator.Email,
		FullName:  operator.FullName,
		CreatedAt: operator.CreatedAt,
	}, nil
}

// SeedOperator creates the initial account when the operators table is
// empty. A no-op otherwise.
func (u *sessionUsecase) SeedOperator(ctx context.Context, fullName, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := u.operatorRepo.Count(u.db.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("count operators: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	if fullName == "" {
		fullName = "Front Desk"
	}
	operator := &entity.Operator{
		Email:    email,
		Password: string(hashed),
		FullName: fullName,
	}
	if err := u.operatorRepo.Create(u.db.WithContext(ctx), operator); err != nil {
		return fmt.Errorf("create seed operator: %w", err)
	}

	u.log.Infof("Seeded operator account %s", email)
	return nil
}
