package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNotObtained means another holder has the lock.
var ErrNotObtained = errors.New("lock not obtained")

// Locker hands out exclusive, expiring leases on keys.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// Lease is a held lock.
type Lease interface {
	Release(ctx context.Context) error
}

// New returns a Redis locker when an address is configured, or an
// in-process locker otherwise.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Locker, error) {
	if cfg.Address == "" {
		logger.Info("Redis address not set, using in-process locks")
		return NewLocal(), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Address, err)
	}
	return NewRedis(rdb, logger), nil
}

// Local is an in-process Locker. A lease is held until it is released,
// whatever its ttl, since it cannot outlive the process that holds it.
type Local struct {
	mu   sync.Mutex
	held map[string]*localLease
}

// NewLocal creates an empty in-process locker.
func NewLocal() *Local {
	return &Local{held: make(map[string]*localLease)}
}

// Acquire takes key until the lease is released.
func (l *Local) Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid lock ttl %s", ttl)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, ErrNotObtained
	}
	lease := &localLease{owner: l, key: key}
	l.held[key] = lease
	return lease, nil
}

type localLease struct {
	owner *Local
	key   string
	once  sync.Once
}

func (l *localLease) Release(ctx context.Context) error {
	l.once.Do(func() {
		l.owner.mu.Lock()
		defer l.owner.mu.Unlock()
		if l.owner.held[l.key] == l {
			delete(l.owner.held, l.key)
		}
	})
	return nil
}

// Redis is a Locker backed by redislock. Leases are refreshed in the
// background at half their ttl until released, so long runs keep the lock.
type Redis struct {
	client *redislock.Client
	logger *zap.Logger
}

// NewRedis wraps a Redis client.
func NewRedis(rdb redislock.RedisClient, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{client: redislock.New(rdb), logger: logger}
}

// Acquire obtains key without retrying.
func (r *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid lock ttl %s", ttl)
	}
	l, err := r.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	lease := &redisLease{lock: l, done: make(chan struct{}), stopped: make(chan struct{})}
	go lease.refresh(key, ttl, r.logger)
	return lease, nil
}

type redisLease struct {
	lock    *redislock.Lock
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func (l *redisLease) refresh(key string, ttl time.Duration, logger *zap.Logger) {
	defer close(l.stopped)
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), ttl/2)
			err := l.lock.Refresh(ctx, ttl, nil)
			cancel()
			if err != nil {
				logger.Warn("Failed to refresh lock", zap.String("key", key), zap.Error(err))
				if errors.Is(err, redislock.ErrNotObtained) {
					return
				}
			}
		}
	}
}

func (l *redisLease) Release(ctx context.Context) error {
	var err error
	l.once.Do(func() {
		close(l.done)
		<-l.stopped
		err = l.lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			err = nil
		}
	})
	return err
}
