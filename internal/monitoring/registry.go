package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	instanceKeyPrefix = "triplex:instances:"
	instanceIndexKey  = "triplex:instances:index"

	// Default timeout to mark an instance as offline
	defaultInstanceTTL = 90 * time.Second

	// Keep instance records in Redis before they expire on their own
	redisStorageTTL = 24 * time.Hour
)

// Registry tracks triplexd instances in Redis via periodic heartbeats.
// Monitoring is optional; the service runs fine without it.
type Registry struct {
	client      *redis.Client
	instanceTTL time.Duration
	ctx         context.Context
}

// NewRegistry creates a new instance registry backed by Redis
func NewRegistry(redisURL string, ttl time.Duration) (*Registry, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttl == 0 {
		ttl = defaultInstanceTTL
	}

	return &Registry{
		client:      client,
		instanceTTL: ttl,
		ctx:         ctx,
	}, nil
}

// UpdateInstance updates or creates an instance record
func (r *Registry) UpdateInstance(info InstanceInfo) error {
	info.LastHeartbeat = time.Now()
	info.Status = StatusOnline

	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal instance info: %w", err)
	}

	instanceKey := instanceKeyPrefix + info.InstanceID

	pipe := r.client.Pipeline()
	pipe.Set(r.ctx, instanceKey, data, redisStorageTTL)
	pipe.SAdd(r.ctx, instanceIndexKey, info.InstanceID)
	if _, err := pipe.Exec(r.ctx); err != nil {
		return fmt.Errorf("failed to update instance: %w", err)
	}

	return nil
}

// GetInstance retrieves an instance by ID
func (r *Registry) GetInstance(instanceID string) (*InstanceInfo, error) {
	data, err := r.client.Get(r.ctx, instanceKeyPrefix+instanceID).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("instance not found: %s", instanceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get instance: %w", err)
	}

	var info InstanceInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return nil, fmt.Errorf("failed to unmarshal instance info: %w", err)
	}

	// Mark offline when the heartbeat is stale
	if time.Since(info.LastHeartbeat) > r.instanceTTL {
		info.Status = StatusOffline
	}

	return &info, nil
}

// ListInstances retrieves all known instances
func (r *Registry) ListInstances() ([]*InstanceInfo, error) {
	instanceIDs, err := r.client.SMembers(r.ctx, instanceIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}

	instances := make([]*InstanceInfo, 0, len(instanceIDs))
	for _, id := range instanceIDs {
		info, err := r.GetInstance(id)
		if err != nil {
			// Record expired from Redis, drop it from the index
			r.client.SRem(r.ctx, instanceIndexKey, id)
			continue
		}
		instances = append(instances, info)
	}

	return instances, nil
}

// Close closes the Redis connection
func (r *Registry) Close() error {
	return r.client.Close()
}
