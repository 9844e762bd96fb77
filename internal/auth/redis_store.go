package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"marketplace-admin/internal/common/config"
	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/common/logger"
)

const (
	redisTokenKey     = "admin:auth:token"
	redisPhoneKey     = "admin:auth:last_phone"
	redisSignalChan   = "admin:auth:changed"
	redisStoreTimeout = 3 * time.Second
)

// RedisStore keeps the token in Redis and broadcasts changes on a
// pub/sub channel, so consoles on different machines observe each
// other's logins and logouts.
type RedisStore struct {
	client *redis.Client
	pubsub *redis.PubSub
	logger logger.Logger
	notifier
}

func NewRedisStore(cfg config.RedisConfig, log logger.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  redisStoreTimeout,
		WriteTimeout: redisStoreTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, apperrors.NewTokenStoreError(err)
	}

	return NewRedisStoreWithClient(client, log), nil
}

// NewRedisStoreWithClient wires an existing client; tests inject
// miniredis-backed clients through here.
func NewRedisStoreWithClient(client *redis.Client, log logger.Logger) *RedisStore {
	s := &RedisStore{
		client: client,
		logger: log.WithFields(map[string]interface{}{"component": "redis-token-store"}),
	}

	s.pubsub = client.Subscribe(context.Background(), redisSignalChan)
	go s.listen()

	return s
}

func (s *RedisStore) listen() {
	for range s.pubsub.Channel() {
		s.notify()
	}
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	return s.get(ctx, redisTokenKey)
}

func (s *RedisStore) LastPhone(ctx context.Context) (string, error) {
	return s.get(ctx, redisPhoneKey)
}

func (s *RedisStore) get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", apperrors.NewTokenStoreError(err)
	}
	return val, nil
}

func (s *RedisStore) Save(ctx context.Context, token, phone string) error {
	if err := s.client.Set(ctx, redisTokenKey, token, 0).Err(); err != nil {
		return apperrors.NewTokenStoreError(err)
	}
	if err := s.client.Set(ctx, redisPhoneKey, phone, 0).Err(); err != nil {
		return apperrors.NewTokenStoreError(err)
	}
	s.broadcast(ctx)
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, redisTokenKey).Err(); err != nil {
		return apperrors.NewTokenStoreError(err)
	}
	s.broadcast(ctx)
	return nil
}

func (s *RedisStore) broadcast(ctx context.Context) {
	if err := s.client.Publish(ctx, redisSignalChan, "changed").Err(); err != nil {
		s.logger.Warn("token change broadcast failed", map[string]interface{}{"error": err.Error()})
	}
	// Local subscribers hear the same pub/sub message; notifying here as
	// well keeps behavior consistent when the subscription lags.
	s.notify()
}

func (s *RedisStore) Subscribe(fn func()) {
	s.subscribe(fn)
}

func (s *RedisStore) Close() error {
	if err := s.pubsub.Close(); err != nil {
		return err
	}
	return s.client.Close()
}
