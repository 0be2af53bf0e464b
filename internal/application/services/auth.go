package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"filevault-api/internal/application/ports"
	"filevault-api/internal/domain/user"
	"filevault-api/internal/infrastructure/hasher"
	"filevault-api/internal/infrastructure/metrics"
	"filevault-api/internal/infrastructure/mq"
)

const DefaultRole = "ROLE_USER"

type AuthService struct {
	userRepository user.Repository
	hasher         ports.PasswordHasher
	tokens         ports.TokenManager
	events         ports.EventPublisher
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
}

func NewAuthService(
	userRepository user.Repository,
	hasher ports.PasswordHasher,
	tokens ports.TokenManager,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.AuthService {
	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		events:         events,
		mCounter:       mCounter,
		logger:         logger,
	}
}

type registeredPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register creates an account. It does not log the user in.
func (as *AuthService) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	taken, err := as.userRepository.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, user.ErrUsernameTaken
	}

	taken, err = as.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, user.ErrEmailTaken
	}

	hash, err := as.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := as.userRepository.CreateUser(ctx, user.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	as.events.Publish(mq.NewEvent(mq.RoutingUserRegistered, int64(u.ID), registeredPayload{
		Username: u.Username,
		Email:    u.Email,
	}))
	as.mCounter.WithLabelValues(metrics.UserRegisteredTotal).Inc()
	as.logger.Info("user registered", zap.Int64("user_id", int64(u.ID)), zap.String("username", u.Username))

	return u, nil
}

func (as *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	u, err := as.userRepository.FetchUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		as.mCounter.WithLabelValues(metrics.UserLoginFailedTotal).Inc()
		return nil, ErrInvalidCredentials
	}

	if err = as.hasher.Compare(u.PasswordHash, password); err != nil {
		if !errors.Is(err, hasher.ErrMismatch) {
			as.logger.Error("password comparison failed", zap.String("username", username), zap.Error(err))
		}
		as.mCounter.WithLabelValues(metrics.UserLoginFailedTotal).Inc()
		return nil, ErrInvalidCredentials
	}

	token, err := as.tokens.Generate(u.Username, []string{DefaultRole})
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	as.mCounter.WithLabelValues(metrics.UserLoginTotal).Inc()

	return &ports.LoginResult{
		Token:    token,
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
	}, nil
}
