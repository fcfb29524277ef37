package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
	Path   string
}

type Mirror struct {
	Endpoint  string
	Namespace string
	Database  string
	User      string
	Pass      string
}

type Redis struct {
	Addr string
	Pass string
	DB   int
}

type Dataset struct {
	Path        string
	PreviewRows int
}

type Config struct {
	HTTP    HTTP
	DB      DB
	Mirror  Mirror
	Redis   Redis
	Dataset Dataset
	JWT     struct {
		Secret string
		Issuer string
		ExpMin int
	}
	Admin struct {
		Username string
		Password string
	}
}

// Load reads the yaml config at path, applying defaults and MEDISYNC_*
// environment overrides. An empty path skips the file and runs on
// defaults plus environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("medisync")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", 9300)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "medisync")
	v.SetDefault("db.path", "medisync.db")
	v.SetDefault("mirror.endpoint", "")
	v.SetDefault("mirror.namespace", "medisync")
	v.SetDefault("mirror.database", "hospital_db")
	v.SetDefault("mirror.user", "")
	v.SetDefault("mirror.pass", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.pass", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("dataset.path", "stroke_data.csv")
	v.SetDefault("dataset.preview_rows", 20)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("http.host"), Port: v.GetInt("http.port")},
		DB: DB{
			Driver: v.GetString("db.driver"),
			Host:   v.GetString("db.host"),
			Port:   v.GetInt("db.port"),
			User:   v.GetString("db.user"),
			Pass:   v.GetString("db.pass"),
			Name:   v.GetString("db.name"),
			Path:   v.GetString("db.path"),
		},
		Mirror: Mirror{
			Endpoint:  v.GetString("mirror.endpoint"),
			Namespace: v.GetString("mirror.namespace"),
			Database:  v.GetString("mirror.database"),
			User:      v.GetString("mirror.user"),
			Pass:      v.GetString("mirror.pass"),
		},
		Redis: Redis{Addr: v.GetString("redis.addr"), Pass: v.GetString("redis.pass"), DB: v.GetInt("redis.db")},
		Dataset: Dataset{
			Path:        v.GetString("dataset.path"),
			PreviewRows: v.GetInt("dataset.preview_rows"),
		},
	}
	cfg.JWT.Secret = v.GetString("jwt.secret")
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
	}
	cfg.JWT.Issuer = v.GetString("jwt.issuer")
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "medisync"
	}
	cfg.JWT.ExpMin = v.GetInt("jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 60
	}
	cfg.Admin.Username = v.GetString("admin.username")
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = "admin"
	}
	cfg.Admin.Password = v.GetString("admin.password")
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = "admin123"
	}
	if cfg.Dataset.PreviewRows <= 0 {
		cfg.Dataset.PreviewRows = 20
	}
	return cfg, nil
}
