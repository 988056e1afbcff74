package main

import (
	"log"
	"net/http"
	"time"

	"smartcart/config"
	httpapi "smartcart/internal/api/http"
	"smartcart/internal/service"
	"smartcart/internal/state"
	"smartcart/internal/storage"
)

func main() {
	baseURL, apiKey := config.StoreCredentials()
	if baseURL == "" || apiKey == "" {
		log.Println("Warning: SUPABASE_URL or SUPABASE_KEY not set; remote operations will fail until configured")
	}

	store := storage.NewRowStore(baseURL, apiKey, &http.Client{Timeout: 15 * time.Second})

	redisClient := config.MustInitRedis()
	defer redisClient.Close()
	cache := storage.NewProductCache(redisClient, config.ProductCacheTTL())

	kafkaWriter := config.NewKafkaWriter("checkouts")
	defer kafkaWriter.Close()
	publisher := storage.NewKafkaPublisher(kafkaWriter)

	sessionState := state.New()
	sessions := service.NewSessionService(store, cache, publisher, sessionState)

	handler := httpapi.NewHandler(sessions, service.CartQRGenerator{})
	httpapi.StartServer(config.ListenAddr(), httpapi.NewRouter(handler))
}
