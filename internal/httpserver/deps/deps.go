package deps

import (
	"time"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/logger"
	"github.com/redis/go-redis/v9"
)

type Deps struct {
	Logger      logger.Logger
	StartTime   time.Time
	Version     string
	Scans       contract.ScanStore // Scan history store backing every API route
	RedisClient *redis.Client      // Optional response cache; nil disables caching
	CacheTTL    time.Duration      // TTL for cached API responses
}
