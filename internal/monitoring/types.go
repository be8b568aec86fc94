package monitoring

import "time"

// InstanceStatus represents the current state of a service instance
type InstanceStatus string

const (
	StatusOnline  InstanceStatus = "online"
	StatusOffline InstanceStatus = "offline"
)

// InstanceInfo contains metadata about a running triplexd instance
type InstanceInfo struct {
	InstanceID string `json:"instance_id"` // hostname-based identifier
	Hostname   string `json:"hostname"`
	PID        int    `json:"pid"`

	StartTime     time.Time `json:"start_time"`
	LastHeartbeat time.Time `json:"last_heartbeat"`

	Status InstanceStatus `json:"status"`

	// ActivePipelines counts external-process pairs currently running
	ActivePipelines int `json:"active_pipelines"`
	// MaxPipelines is the configured concurrency cap
	MaxPipelines int64 `json:"max_pipelines"`

	MemoryUsage uint64 `json:"memory_usage"`
	MemoryTotal uint64 `json:"memory_total"`
	DiskUsage   uint64 `json:"disk_usage"`
	DiskTotal   uint64 `json:"disk_total"`

	Version string `json:"version"`
}
