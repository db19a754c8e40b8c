package config

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// ConnectRedis wires the optional cache. When REDIS_ADDR is unset the client
// stays nil and callers treat caching as disabled.
func ConnectRedis() error {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		log.Println("REDIS_ADDR not set; report caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: os.Getenv("REDIS_USER"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return err
	}

	RDB = client
	log.Println("Redis connection established")
	return nil
}
