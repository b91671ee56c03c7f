package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// Example ENV equivalent:
//
//	SOURCE_DIR=./data/future
//	INSTRUMENT_CLASS=FUTURE
//	ITEM_CODE=TX
//	RESAMPLE_FREQ=D
//	LABEL_EDGE=left
//	SESSION=intraday
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
type Config struct {
	Server   ServerConfig
	Resample ResampleConfig
	Postgres PostgresConfig
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string
}

// ResampleConfig is the batch configuration surface consumed by the core.
//
// Fields:
//   - SourceDir: directory holding the zipped tick archives.
//   - InstrumentClass: FUTURE or OPTION (validated downstream).
//   - ItemCode: underlying symbol for the nearby selection (e.g. "TX").
//   - Freq: resample frequency string ("D", "15T", "1H", ...).
//   - LabelEdge: which bucket boundary labels a bar ("left" or "right").
//   - Session: "intraday" or "afterhours".
type ResampleConfig struct {
	SourceDir       string
	InstrumentClass string
	ItemCode        string
	Freq            string
	LabelEdge       string
	Session         string
}

// PostgresConfig defines connection details for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string // computed DSN used by database/sql to connect
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and read throughout the application
// instead of each package reloading environment variables.
var AppConfig Config

// LoadConfig initializes the global AppConfig.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Missing required values terminate the process via validateConfig():
// configuration mistakes should fail loudly and early.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("SOURCE_DIR", "./data/input")
	viper.SetDefault("INSTRUMENT_CLASS", "FUTURE")
	viper.SetDefault("ITEM_CODE", "TX")
	viper.SetDefault("RESAMPLE_FREQ", "D")
	viper.SetDefault("LABEL_EDGE", "left")
	viper.SetDefault("SESSION", "intraday")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "taifexpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Resample: ResampleConfig{
			SourceDir:       viper.GetString("SOURCE_DIR"),
			InstrumentClass: viper.GetString("INSTRUMENT_CLASS"),
			ItemCode:        viper.GetString("ITEM_CODE"),
			Freq:            viper.GetString("RESAMPLE_FREQ"),
			LabelEdge:       viper.GetString("LABEL_EDGE"),
			Session:         viper.GetString("SESSION"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// validateConfig ensures required variables are present and terminates the
// application if they are missing.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Resample.SourceDir == "" {
		missing = append(missing, "SOURCE_DIR")
	}
	if AppConfig.Resample.InstrumentClass == "" {
		missing = append(missing, "INSTRUMENT_CLASS")
	}
	if AppConfig.Resample.ItemCode == "" {
		missing = append(missing, "ITEM_CODE")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
