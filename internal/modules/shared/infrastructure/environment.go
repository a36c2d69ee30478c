package infrastructure

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	ENVIRONMENT_PRODUCTION  = "production"
	ENVIRONMENT_DEVELOPMENT = "development"
)

// EnvironmentSpec holds the configuration for the application environment.
// Loaded once at startup and treated as read-only by every component.
type EnvironmentSpec struct {
	Environment string `split_words:"true" default:"development"` // App environment (development/production)

	// HTTP surface
	WebserverPort int   `split_words:"true" default:"8080"`
	MaxFileSize   int64 `split_words:"true" default:"134217728"` // 128 * 1024 * 1024

	// Concurrency / admission
	MaxConcurrentJobs int `split_words:"true" default:"6"`
	MaxQueuedJobs     int `split_words:"true" default:"128"`
	MaxResourceCount  int `split_words:"true" default:"16"`

	// Restart budget, shared by the office and browser supervisors
	MaxRestarts  int `split_words:"true" default:"3"`
	RestartDelay int `split_words:"true" default:"5000"` // milliseconds

	// Timeouts, all in milliseconds
	PDFRenderTimeout       int `split_words:"true" default:"150000"`
	BrowserLaunchTimeout   int `split_words:"true" default:"30000"`
	BrowserRestartInterval int `split_words:"true" default:"86400000"`
	OfficeLaunchTimeout    int `split_words:"true" default:"30000"`

	// Backend locations
	ChromiumBinaryPath  string `split_words:"true" default:"/usr/bin/chromium-browser"`
	OfficeBackendPath   string `split_words:"true" default:"/usr/bin/soffice"`
	OfficeTransportPath string `split_words:"true" default:"/usr/bin/unoconvert"`
	MarkupConverterPath string `split_words:"true" default:"/usr/bin/pandoc"`
	TempRoot            string `split_words:"true" default:""`
	OfficeBasePort      int    `split_words:"true" default:"2003"`

	// Response cache (optional: disabled unless RedisHost is set)
	ResponseCacheTTLSeconds int    `split_words:"true" default:"3600"`
	RedisHost               string `split_words:"true" default:""`
	RedisPort               string `split_words:"true" default:"6379"`
	RedisPassword           string `split_words:"true" default:""`
	RedisDB                 int    `split_words:"true" default:"0"`

	// Archival sink (optional: disabled unless ArchivalBucket is set)
	ArchivalBucket     string `split_words:"true" default:""`
	AwsS3EndpointURL   string `split_words:"true" default:"https://s3.amazonaws.com"`
	AwsAccessKeyID     string `split_words:"true" default:""`
	AwsSecretAccessKey string `split_words:"true" default:""`
	AwsRegion          string `split_words:"true" default:"us-east-1"`
}

var (
	environment     *EnvironmentSpec
	environmentOnce sync.Once
)

// GetEnvironment returns a singleton instance of the EnvironmentSpec.
func GetEnvironment() *EnvironmentSpec {
	environmentOnce.Do(func() {
		loadFromEnvFile()
		initializeEnvironmentInstance()
	})

	return environment
}

// loadFromEnvFile loads environment variables from a .env file if not in production.
// Missing .env files are tolerated: in containerized deployments configuration
// arrives purely through the process environment.
func loadFromEnvFile() {
	execEnvironment := os.Getenv("ENVIRONMENT")

	if execEnvironment != ENVIRONMENT_PRODUCTION {
		envPath := findEnvFile()
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				log.Fatal("[ERROR] ", err.Error())
			}
		}
	}
}

// findEnvFile searches for .env file starting from current directory and going up to root
func findEnvFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ".env" // fallback to current directory
	}

	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root directory
		}
		dir = parent
	}

	return ".env" // fallback to current directory
}

// initializeEnvironmentInstance initializes the EnvironmentSpec instance with environment variables.
func initializeEnvironmentInstance() {
	environment = &EnvironmentSpec{}

	err := envconfig.Process("", environment)
	if err != nil {
		log.Fatal("[ERROR] ", err.Error())
	}

	if environment.TempRoot == "" {
		environment.TempRoot = os.TempDir()
	}
}
