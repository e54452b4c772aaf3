package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	RedisAddr     string
	RedisPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	StagingBucket string
	VideosBucket  string

	JWTPublicKey string

	// PublicBaseURL is the absolute base the streaming platform downloads
	// source files from. Relative record URLs are resolved against it.
	PublicBaseURL string

	CFAPIBaseURL        string
	CFAccountID         string
	CFAPIToken          string
	CFCustomerSubdomain string

	RequireSignedURLs bool
	CopyDelay         time.Duration
	PollInterval      time.Duration
	TaskMaxRetry      int
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	viper.SetDefault("STAGING_BUCKET", "staging")
	viper.SetDefault("VIDEOS_BUCKET", "videos")
	viper.SetDefault("CF_API_BASE_URL", "https://api.cloudflare.com/client/v4")
	viper.SetDefault("STREAM_COPY_DELAY", 1)
	viper.SetDefault("STREAM_POLL_INTERVAL", 10)
	viper.SetDefault("STREAM_TASK_MAX_RETRY", 5)

	if !viper.IsSet("MARIADB_DSN") {
		return nil, fmt.Errorf("MARIADB_DSN is required")
	}
	if !viper.IsSet("MARIADB_MAX_OPEN_CONN") {
		return nil, fmt.Errorf("MARIADB_MAX_OPEN_CONN is required")
	}
	if !viper.IsSet("MARIADB_MAX_IDLE_CONNS") {
		return nil, fmt.Errorf("MARIADB_MAX_IDLE_CONNS is required")
	}
	if !viper.IsSet("MARIADB_CONN_MAX_LIFETIME") {
		return nil, fmt.Errorf("MARIADB_CONN_MAX_LIFETIME is required")
	}
	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}
	if !viper.IsSet("MINIO_ENDPOINT") {
		return nil, fmt.Errorf("MINIO_ENDPOINT is required")
	}
	if !viper.IsSet("MINIO_ACCESS_KEY") {
		return nil, fmt.Errorf("MINIO_ACCESS_KEY is required")
	}
	if !viper.IsSet("MINIO_SECRET_KEY") {
		return nil, fmt.Errorf("MINIO_SECRET_KEY is required")
	}
	if !viper.IsSet("CF_ACCOUNT_ID") {
		return nil, fmt.Errorf("CF_ACCOUNT_ID is required")
	}
	if !viper.IsSet("CF_API_TOKEN") {
		return nil, fmt.Errorf("CF_API_TOKEN is required")
	}

	serverPort := viper.GetInt("SERVER_PORT")

	publicBaseURL := viper.GetString("PUBLIC_BASE_URL")
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("http://localhost:%d", serverPort)
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      serverPort,

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),

		StagingBucket: viper.GetString("STAGING_BUCKET"),
		VideosBucket:  viper.GetString("VIDEOS_BUCKET"),

		JWTPublicKey: viper.GetString("JWT_PUBLIC_KEY"),

		PublicBaseURL: publicBaseURL,

		CFAPIBaseURL:        viper.GetString("CF_API_BASE_URL"),
		CFAccountID:         viper.GetString("CF_ACCOUNT_ID"),
		CFAPIToken:          viper.GetString("CF_API_TOKEN"),
		CFCustomerSubdomain: viper.GetString("CF_CUSTOMER_SUBDOMAIN"),

		RequireSignedURLs: viper.GetBool("STREAM_REQUIRE_SIGNED_URLS"),
		CopyDelay:         time.Duration(viper.GetInt("STREAM_COPY_DELAY")) * time.Second,
		PollInterval:      time.Duration(viper.GetInt("STREAM_POLL_INTERVAL")) * time.Second,
		TaskMaxRetry:      viper.GetInt("STREAM_TASK_MAX_RETRY"),
	}, nil
}
