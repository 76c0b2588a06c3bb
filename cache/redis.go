package cache

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheNotAvailable is returned when Redis is down or in mock mode.
var ErrCacheNotAvailable = errors.New("redis not available")

var (
	redisClient *redis.Client
	redisCtx    = context.Background()
	initOnce    sync.Once
	initialized bool

	mockMode  bool
	mockMutex sync.Mutex
	mockData  = make(map[string]mockEntry)

	// Cached election results expire on their own even if an
	// invalidation is missed.
	resultsTTL = 1 * time.Hour
)

type mockEntry struct {
	value     string
	expiresAt time.Time
}

// InitRedis connects to Redis. When the server is unreachable, or when
// REDIS_MOCK=true, the package falls back to an in-process map so the
// rest of the system keeps working without a cache deployment.
func InitRedis() error {
	initOnce.Do(func() {
		if os.Getenv("REDIS_MOCK") == "true" {
			log.Println("redis mock mode forced")
			mockMode = true
			initialized = true
			return
		}

		redisAddr := os.Getenv("REDIS_ADDR")
		redisPassword := os.Getenv("REDIS_PASSWORD")
		redisDb := 0
		if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
			if db, err := strconv.Atoi(dbStr); err == nil {
				redisDb = db
			}
		}
		if redisAddr == "" {
			redisAddr = "localhost:6379"
		}

		client := redis.NewClient(&redis.Options{
			Addr:        redisAddr,
			Password:    redisPassword,
			DB:          redisDb,
			DialTimeout: 3 * time.Second,
			ReadTimeout: 3 * time.Second,
			PoolSize:    10,
		})

		if _, err := client.Ping(redisCtx).Result(); err != nil {
			log.Printf("redis connection failed: %v, falling back to mock mode", err)
			mockMode = true
			initialized = true
			return
		}

		redisClient = client
		initialized = true
		log.Printf("redis connected: %s", redisAddr)
	})

	return nil
}

// GetClient returns the live Redis client, or an error in mock mode.
func GetClient() (*redis.Client, error) {
	if !initialized || mockMode || redisClient == nil {
		return nil, ErrCacheNotAvailable
	}
	return redisClient, nil
}

func get(key string) (string, bool) {
	if !initialized {
		return "", false
	}
	if mockMode {
		mockMutex.Lock()
		defer mockMutex.Unlock()
		entry, ok := mockData[key]
		if !ok || time.Now().After(entry.expiresAt) {
			delete(mockData, key)
			return "", false
		}
		return entry.value, true
	}
	val, err := redisClient.Get(redisCtx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func set(key, value string, ttl time.Duration) {
	if !initialized {
		return
	}
	if mockMode {
		mockMutex.Lock()
		defer mockMutex.Unlock()
		mockData[key] = mockEntry{value: value, expiresAt: time.Now().Add(ttl)}
		return
	}
	if err := redisClient.Set(redisCtx, key, value, ttl).Err(); err != nil {
		log.Printf("failed to cache key %s: %v", key, err)
	}
}

func del(key string) {
	if !initialized {
		return
	}
	if mockMode {
		mockMutex.Lock()
		defer mockMutex.Unlock()
		delete(mockData, key)
		return
	}
	if err := redisClient.Del(redisCtx, key).Err(); err != nil {
		log.Printf("failed to delete cache key %s: %v", key, err)
	}
}

// CloseRedis shuts down the client if a real connection was made.
func CloseRedis() {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("failed to close redis client: %v", err)
		}
	}
}
