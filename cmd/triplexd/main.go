package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"github.com/seqlab/triplex-go/internal/analysis/usecase"
	"github.com/seqlab/triplex-go/internal/config"
	"github.com/seqlab/triplex-go/internal/monitoring"
	"github.com/seqlab/triplex-go/internal/notifier"
	"github.com/seqlab/triplex-go/internal/pipeline"
	"github.com/seqlab/triplex-go/internal/storage"
	"github.com/seqlab/triplex-go/internal/workspace"

	resultEndpoint "github.com/seqlab/triplex-go/internal/result/endpoint"
	resultRepo "github.com/seqlab/triplex-go/internal/result/repo"
	resultService "github.com/seqlab/triplex-go/internal/result/service"
)

var (
	app     *cli.App
	version string

	triplexConfig config.TriplexConfig

	analysisService    *usecase.AnalysisUsecase
	resultHTTPEndpoint *resultEndpoint.ResultHTTPEndpoint
	monitoringRegistry *monitoring.Registry
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var err error
	triplexConfig, err = config.LoadConfig()
	if err != nil {
		log.Fatalln(err)
	}

	// Prepare workdir
	err = os.MkdirAll(triplexConfig.Service.Workdir, 0755)
	if err != nil {
		log.Fatalln(err)
	}
	err = os.MkdirAll(filepath.Join(triplexConfig.Service.Workdir, "logs"), 0755)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println(triplexConfig.Service.Workdir)

	db, err := storage.NewDB(filepath.Join(triplexConfig.Service.Workdir, "triplex.db"))
	if err != nil {
		log.Fatalln(err)
	}
	requestStore := storage.NewRequestStore(db, triplexConfig.Monitoring.MaxRequests)

	// Initialize monitoring registry if enabled
	if triplexConfig.Monitoring.Enabled {
		ttl := time.Duration(triplexConfig.Monitoring.InstanceTimeout) * time.Second
		monitoringRegistry, err = monitoring.NewRegistry(triplexConfig.Redis, ttl)
		if err != nil {
			log.Printf("Failed to initialize monitoring registry: %v\n", err)
			log.Println("Continuing without monitoring...")
			triplexConfig.Monitoring.Enabled = false
		} else {
			log.Println("Monitoring registry initialized successfully")
		}
	}

	analysisService = usecase.NewAnalysisUsecase(
		triplexConfig,
		workspace.NewManager(triplexConfig.Service.Workdir),
		pipeline.New(triplexConfig.Tools, triplexConfig.Service.MaxPipelines),
		notifier.New(triplexConfig.Mail),
		requestStore,
		monitoringRegistry,
		version,
	)

	resultHTTPEndpoint = resultEndpoint.NewResultHTTPEndpoint(
		resultService.NewResultService(
			resultRepo.NewFileRepo(triplexConfig.Service.Workdir)))

	app = cli.NewApp()
	app.Name = "triplexd"
	app.Usage = "triplex primer analysis service"
	app.Version = version

	app.Action = func(c *cli.Context) error {
		serve()
		return nil
	}
	app.Run(os.Args)
}

func serve() {
	// APIs
	http.HandleFunc("/api/v1/submit", SequenceSubmitHandler)
	http.HandleFunc("/api/v1/status", RequestStatusHandler)
	http.HandleFunc("/api/v1/results", resultHTTPEndpoint.GetResultListHandler)
	http.HandleFunc("/api/v1/version", VersionHandler)

	// Index handler (catch-all, must be registered last)
	http.HandleFunc("/", indexHandler)
	// Static file routes
	logFs := http.FileServer(http.Dir(filepath.Join(triplexConfig.Service.Workdir, "logs")))
	http.Handle("/logs/", http.StripPrefix("/logs/", logFs))

	// Start monitoring heartbeat if enabled
	if triplexConfig.Monitoring.Enabled && monitoringRegistry != nil {
		go startMonitoringHeartbeat()
	}

	addr := triplexConfig.Service.Address
	port := os.Getenv("PORT")
	if len(port) > 0 {
		addr = ":" + port
	}
	log.Println("triplexd now live on " + addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}

// startMonitoringHeartbeat sends periodic heartbeats to Redis
func startMonitoringHeartbeat() {
	instanceID := monitoring.GenerateInstanceID()
	startTime := time.Now()

	interval := time.Duration(triplexConfig.Monitoring.HeartbeatInterval) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Monitoring heartbeat started (instance: %s, interval: %v)\n", instanceID, interval)

	// Send initial heartbeat
	sendHeartbeat(instanceID, startTime)

	// Send periodic heartbeats
	for range ticker.C {
		sendHeartbeat(instanceID, startTime)
	}
}

func sendHeartbeat(instanceID string, startTime time.Time) {
	metrics := monitoring.CollectMetrics(triplexConfig.Service.Workdir)

	instance := monitoring.InstanceInfo{
		InstanceID:      instanceID,
		Hostname:        monitoring.GetHostname(),
		PID:             os.Getpid(),
		StartTime:       startTime,
		LastHeartbeat:   time.Now(),
		Status:          monitoring.StatusOnline,
		ActivePipelines: analysisService.ActivePipelines(),
		MaxPipelines:    triplexConfig.Service.MaxPipelines,
		MemoryUsage:     metrics.MemoryUsage,
		MemoryTotal:     metrics.MemoryTotal,
		DiskUsage:       metrics.DiskUsage,
		DiskTotal:       metrics.DiskTotal,
		Version:         version,
	}

	if err := monitoringRegistry.UpdateInstance(instance); err != nil {
		log.Printf("Failed to send heartbeat: %v\n", err)
	}
}
