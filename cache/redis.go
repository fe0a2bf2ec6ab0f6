package cache

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"

	"geogrid-service/config"
)

var Rdb *redis.Client

// InitRedis initializes the Redis client from the loaded configuration.
func InitRedis() error {
	cfg := config.Cfg.Redis

	Rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx := context.Background()
	_, err := Rdb.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	log.Println("Connected to Redis successfully.")
	return nil
}

// CellKey is the Redis set holding the entity keys bucketed in a grid cell.
func CellKey(cell string) string {
	return fmt.Sprintf("entities:%s", cell)
}

// AddToCell mirrors an entity key into its cell's Redis set.
func AddToCell(ctx context.Context, cell, key string) error {
	return Rdb.SAdd(ctx, CellKey(cell), key).Err()
}
