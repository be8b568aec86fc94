package config

import (
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/ghodss/yaml"
	validator "gopkg.in/go-playground/validator.v9"
)

type TriplexConfig struct {
	Redis      string           `json:"redis"`
	Service    ServiceConfig    `json:"service"`
	Tools      ToolsConfig      `json:"tools"`
	Mail       MailConfig       `json:"mail"`
	Monitoring MonitoringConfig `json:"monitoring"`
	IsTest     bool             `json:"is_test"`
	IsDev      bool             `json:"is_dev"`
}

type ServiceConfig struct {
	Address string `json:"address" validate:"required"`
	Workdir string `json:"workdir" validate:"required"`
	// MaxBodyBytes caps the submit request body. Sequences can be large.
	MaxBodyBytes int64 `json:"max_body_bytes"`
	// MaxPipelines caps concurrently running external-process pairs.
	MaxPipelines int64 `json:"max_pipelines"`
}

type ToolsConfig struct {
	// AnalysisCmd is the scripted BLAST analysis stage executable.
	AnalysisCmd string `json:"analysis_cmd" validate:"required"`
	// NativeCmd is the compiled triplex-primer stage executable.
	NativeCmd string `json:"native_cmd" validate:"required"`
	// AnalysisWorkdir is where the analysis stage runs and drops its
	// result file, named on its stdout relative to this directory.
	AnalysisWorkdir string `json:"analysis_workdir" validate:"required"`
	// StageTimeoutSeconds bounds each external process. BLAST against
	// remote databases is slow, so the default is generous.
	StageTimeoutSeconds int `json:"stage_timeout_seconds"`
}

type MailConfig struct {
	Host     string `json:"host" validate:"required"`
	Port     int    `json:"port" validate:"required"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from" validate:"required"`
}

type MonitoringConfig struct {
	Enabled           bool `json:"enabled"`
	HeartbeatInterval int  `json:"heartbeat_interval"`
	InstanceTimeout   int  `json:"instance_timeout"`
	MaxRequests       int  `json:"max_requests"`
}

// LoadConfig load triplexd config from file
func LoadConfig() (config TriplexConfig, err error) {
	configPaths := []string{
		"/etc/triplex/config.yml",
		"../../utils/config.yml",
		"./utils/config.yml",
	}
	configPath := os.Getenv("TRIPLEX_CONFIG_PATH")
	isDev := os.Getenv("DEV") == "1"
	yamlFile, err := ioutil.ReadFile(configPath)
	if err != nil {
		// load from predefined configPaths when no TRIPLEX_CONFIG_PATH set
		for _, config := range configPaths {
			yamlFile, err = ioutil.ReadFile(config)
			if err == nil {
				log.Println("load config from : ", config)
				break
			}
		}
		if err != nil {
			return
		}
	}

	err = yaml.Unmarshal(yamlFile, &config)
	if err != nil {
		return
	}

	if isDev {
		// Since it's in dev env, let's move some path to ./tmp
		cwd, _ := os.Getwd()
		tmpDir := cwd + "/tmp/"
		if _, err := os.Stat(tmpDir); os.IsNotExist(err) {
			os.Mkdir(tmpDir, 0755)
		}
		config.Service.Workdir = strings.ReplaceAll(config.Service.Workdir, "/var/lib/", tmpDir)
		config.Tools.AnalysisWorkdir = strings.ReplaceAll(config.Tools.AnalysisWorkdir, "/var/lib/", tmpDir)
	}
	config.IsDev = isDev

	if config.Service.MaxBodyBytes == 0 {
		config.Service.MaxBodyBytes = 32 << 20
	}
	if config.Service.MaxPipelines == 0 {
		config.Service.MaxPipelines = 4
	}
	if config.Tools.StageTimeoutSeconds == 0 {
		config.Tools.StageTimeoutSeconds = 1800
	}

	validate := validator.New()
	err = validate.Struct(config)

	return
}
