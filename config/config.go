package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// StoreCredentials returns the row store endpoint and service key. Either may
// be empty; the store client then fails every call fast instead of the
// process refusing to boot, so the app can surface the misconfiguration.
func StoreCredentials() (baseURL, apiKey string) {
	return os.Getenv("SUPABASE_URL"), os.Getenv("SUPABASE_KEY")
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

func ProductCacheTTL() time.Duration {
	if raw := os.Getenv("PRODUCT_CACHE_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil {
			return ttl
		}
		log.Printf("invalid PRODUCT_CACHE_TTL %q, using default", raw)
	}
	return 15 * time.Minute
}

func ListenAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}
