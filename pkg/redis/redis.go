package redis

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

type IRedis interface {
	SetSession(ctx context.Context, sessionID string, payload string, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type redisClient struct {
	client *redis.Client
}

func sessionKey(sessionID string) string {
	return "conversation:session:" + sessionID
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

func (r *redisClient) SetSession(ctx context.Context, sessionID string, payload string, expiration time.Duration) error {
	key := sessionKey(sessionID)
	logrus.Debug(fmt.Sprintf("Caching session %s with expiration %v", sessionID, expiration))
	err := r.client.Set(ctx, key, payload, expiration).Err()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error caching session %s: %v", sessionID, err))
		return err
	}
	return nil
}

func (r *redisClient) GetSession(ctx context.Context, sessionID string) (string, error) {
	key := sessionKey(sessionID)
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logrus.Debug(fmt.Sprintf("Session %s not found in cache", sessionID))
		return "", err
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting cached session %s: %v", sessionID, err))
		return "", err
	}
	return val, nil
}

func (r *redisClient) DeleteSession(ctx context.Context, sessionID string) error {
	key := sessionKey(sessionID)
	result, err := r.client.Del(ctx, key).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting cached session %s: %v", sessionID, err))
		return err
	}

	if result == 0 {
		logrus.Debug(fmt.Sprintf("Cached session %s not found for deletion", sessionID))
	}

	return nil
}
