package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	healthProbeInterval = 60 * time.Second
	healthProbeTimeout  = 5 * time.Second
)

// HealthStatus is the dependency snapshot served by the health endpoint.
// Caches is keyed by cache name (availability, preview).
type HealthStatus struct {
	Mongo     bool            `json:"mongo"`
	Caches    map[string]bool `json:"caches"`
	CheckedAt time.Time       `json:"checked_at"`
}

var (
	healthMu      sync.RWMutex
	currentHealth HealthStatus
)

// GetHealthStatus returns the most recent snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes Mongo and the named Redis caches once at startup
// and then on a fixed interval, refreshing the snapshot the health endpoint
// serves. A nil cache client (cache disabled) reports as unhealthy rather
// than panicking.
func StartHealthMonitor(caches map[string]*redis.Client, mongoClient *mongo.Client) {
	probe := func() {
		ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
		defer cancel()

		cacheHealth := make(map[string]bool, len(caches))
		for name, client := range caches {
			cacheHealth[name] = client != nil && client.Ping(ctx).Err() == nil
		}

		healthMu.Lock()
		currentHealth = HealthStatus{
			Mongo:     mongoClient.Ping(ctx, nil) == nil,
			Caches:    cacheHealth,
			CheckedAt: time.Now(),
		}
		healthMu.Unlock()
	}

	go func() {
		probe()

		ticker := time.NewTicker(healthProbeInterval)
		defer ticker.Stop()
		for range ticker.C {
			probe()
		}
	}()
}
