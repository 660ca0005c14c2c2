package redis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// IRedis provides the per-budget mutual-exclusion scope used to serialize
// the limit check against concurrent writes on the same budget.
type IRedis interface {
	AcquireLock(ctx context.Context, key string, token string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string, token string) error
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

// NewWithClient wraps an already-configured client. Used by tests that run
// against an in-process server.
func NewWithClient(client *redis.Client) IRedis {
	return &redisClient{client: client}
}

func (r *redisClient) AcquireLock(ctx context.Context, key string, token string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error acquiring lock %s: %v", key, err))
		return false, err
	}
	return ok, nil
}

// releaseScript compares and deletes in one server-side step. Only the
// holder may release; an expired lock re-acquired by another request must
// not be deleted out from under it.
var releaseScript = redis.NewScript(
	`if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`)

func (r *redisClient) ReleaseLock(ctx context.Context, key string, token string) error {
	if err := releaseScript.Run(ctx, r.client, []string{key}, token).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error releasing lock %s: %v", key, err))
		return err
	}

	return nil
}
