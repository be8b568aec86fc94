package monitoring

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"syscall"
)

// GetMemoryUsage returns the current memory usage in bytes (used, total)
func GetMemoryUsage() (uint64, uint64) {
	file, err := os.Open("/proc/meminfo")
	if err != nil {
		// Fallback to runtime stats
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return m.Alloc, 0
	}
	defer file.Close()

	var memTotal, memAvailable uint64
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		if strings.HasPrefix(line, "MemTotal:") {
			memTotal, _ = strconv.ParseUint(fields[1], 10, 64)
			memTotal *= 1024 // Convert from KB to bytes
		} else if strings.HasPrefix(line, "MemAvailable:") {
			memAvailable, _ = strconv.ParseUint(fields[1], 10, 64)
			memAvailable *= 1024 // Convert from KB to bytes
		}
	}

	if memTotal > 0 && memAvailable > 0 {
		return memTotal - memAvailable, memTotal
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc, memTotal
}

// GetDiskUsage returns the disk usage for a given path in bytes (used, total)
func GetDiskUsage(path string) (uint64, uint64) {
	var stat syscall.Statfs_t
	err := syscall.Statfs(path, &stat)
	if err != nil {
		return 0, 0
	}

	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bfree * uint64(stat.Bsize)

	return total - free, total
}

// SystemMetrics contains memory and disk usage for the workdir volume
type SystemMetrics struct {
	MemoryUsage uint64
	MemoryTotal uint64
	DiskUsage   uint64
	DiskTotal   uint64
}

// CollectMetrics gathers all system metrics
func CollectMetrics(workdir string) SystemMetrics {
	memUsed, memTotal := GetMemoryUsage()
	diskUsed, diskTotal := GetDiskUsage(workdir)

	return SystemMetrics{
		MemoryUsage: memUsed,
		MemoryTotal: memTotal,
		DiskUsage:   diskUsed,
		DiskTotal:   diskTotal,
	}
}

// FormatBytes converts bytes to human-readable format
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// GenerateInstanceID creates a stable identifier for this instance so a
// restart on the same host updates the same record.
func GenerateInstanceID() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return hostname + "-triplexd"
}

// GetHostname returns the system hostname
func GetHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
