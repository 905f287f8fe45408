package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SHOPADMIN"

type Config struct {
	Listen        string        `mapstructure:"listen"`
	APIURL        string        `mapstructure:"api_url"`
	APITimeout    time.Duration `mapstructure:"api_timeout"`
	DBDSN         string        `mapstructure:"db_dsn"`
	SessionSecret string        `mapstructure:"session_secret"`
	LogFile       string        `mapstructure:"log_file"`
	Templates     string        `mapstructure:"templates"`
	UploadMax     int           `mapstructure:"upload_max_files"`
	UploadMaxSize int64         `mapstructure:"upload_max_size"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("listen", ":8080")
	v.SetDefault("api_url", "http://localhost:5000")
	v.SetDefault("api_timeout", 15*time.Second)
	v.SetDefault("db_dsn", "shopadmin.db")
	v.SetDefault("session_secret", "change-me")
	v.SetDefault("log_file", "./shopadmin.log")
	v.SetDefault("templates", "./web/templates")
	v.SetDefault("upload_max_files", 10)
	v.SetDefault("upload_max_size", 10<<20)
}

// Load reads flags from os.Args and exits on a bad config.
func Load() Config {
	cfg, err := Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(2)
	}
	log.Printf("[config] LISTEN=%s API_URL=%s DB_DSN=%s LOG_FILE=%s TEMPLATES=%s",
		cfg.Listen, cfg.APIURL, cfg.DBDSN, cfg.LogFile, cfg.Templates)
	return cfg
}

// Parse resolves defaults, then the config file, then SHOPADMIN_* env vars,
// then flags; later sources win.
func Parse(args []string) (Config, error) {
	v := viper.New()
	defaults(v)

	fs := pflag.NewFlagSet("shopadmin", pflag.ContinueOnError)
	file := fs.String("config", "", "config file (yaml, json or toml)")
	fs.String("listen", "", "dashboard listen address")
	fs.String("api-url", "", "backend API base URL")
	fs.Duration("api-timeout", 0, "per-request backend timeout")
	fs.String("db-dsn", "", "sqlite DSN for sessions")
	fs.String("log-file", "", "append JSON logs to this file too")
	fs.String("templates", "", "templates directory")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	for _, name := range []string{"listen", "api-url", "api-timeout", "db-dsn", "log-file", "templates"} {
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), fs.Lookup(name)); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if *file == "" {
		*file = os.Getenv(envPrefix + "_CONFIG")
	}
	if *file != "" {
		v.SetConfigFile(*file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", *file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("session_secret must not be empty")
	}
	return cfg, nil
}
