package database

import (
	"log"

	"github.com/hibiken/asynq"
)

// NewAsynqClient creates the task queue client used to schedule form
// lifecycle jobs. Returns nil when Redis is not configured.
func NewAsynqClient(redisURI string) *asynq.Client {
	if redisURI == "" {
		log.Println("⚠️ Redis not configured. Form lifecycle jobs disabled.")
		return nil
	}

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisURI})
	log.Println("✅ Asynq client initialized")
	return client
}
