package services

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"

	"filevault-api/internal/application/ports"
	"filevault-api/internal/domain/user"
	"filevault-api/internal/infrastructure/metrics"
)

// UserService resolves authenticated usernames to accounts. Lookups are
// cached since every file request performs one.
type UserService struct {
	userRepository user.Repository
	cache          *expirable.LRU[string, *user.User]
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository user.Repository,
	cacheSize int,
	cacheTTL time.Duration,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		cache:          expirable.NewLRU[string, *user.User](cacheSize, nil, cacheTTL),
		mCounter:       mCounter,
	}
}

// FindByUsername returns (nil, nil) when no such user exists. Misses are not cached.
func (us *UserService) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	if u, ok := us.cache.Get(username); ok {
		us.mCounter.WithLabelValues(metrics.UserCacheHitTotal).Inc()
		return u, nil
	}
	us.mCounter.WithLabelValues(metrics.UserCacheMissTotal).Inc()

	u, err := us.userRepository.FetchUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u != nil {
		us.cache.Add(username, u)
	}

	return u, nil
}
