package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configはアプリ全体の設定
type Config struct {
	App     AppConfig
	DB      DBConfig
	Archive ArchiveConfig
	Order   OrderConfig
	Log     LogConfig
	HTTP    HTTPConfig
}

type AppConfig struct {
	Env string // dev/prod
}

type DBConfig struct {
	Driver string // sqlite / postgres
	DSN    string
}

type ArchiveConfig struct {
	Driver string // local / s3
	Dir    string // localのルート、s3ならキーのprefix
	S3     S3Config
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // MinIOなど。空ならAWS
	AccessKey string
	SecretKey string
}

type OrderConfig struct {
	// これを超える注文は警告だけ出す
	HighValueThreshold float64
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

type HTTPConfig struct {
	Addr string
}

const envPrefix = "ORDERMGR"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:orders.db?_foreign_keys=on")

	v.SetDefault("archive.driver", "local")
	v.SetDefault("archive.dir", "executed_orders")
	v.SetDefault("archive.s3.bucket", "")
	v.SetDefault("archive.s3.region", "us-east-1")
	v.SetDefault("archive.s3.endpoint", "")
	v.SetDefault("archive.s3.access_key", "")
	v.SetDefault("archive.s3.secret_key", "")

	v.SetDefault("order.high_value_threshold", 10000.0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("http.addr", ":8080")
}

// Loadは デフォルト < config.toml < .env < 環境変数(ORDERMGR_*) の順で読む
func Load() (Config, error) {
	// .env は無くてもよい
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		App: AppConfig{
			Env: v.GetString("app.env"),
		},
		DB: DBConfig{
			Driver: strings.ToLower(v.GetString("db.driver")),
			DSN:    v.GetString("db.dsn"),
		},
		Archive: ArchiveConfig{
			Driver: strings.ToLower(v.GetString("archive.driver")),
			Dir:    v.GetString("archive.dir"),
			S3: S3Config{
				Bucket:    v.GetString("archive.s3.bucket"),
				Region:    v.GetString("archive.s3.region"),
				Endpoint:  v.GetString("archive.s3.endpoint"),
				AccessKey: v.GetString("archive.s3.access_key"),
				SecretKey: v.GetString("archive.s3.secret_key"),
			},
		},
		Order: OrderConfig{
			HighValueThreshold: v.GetFloat64("order.high_value_threshold"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		HTTP: HTTPConfig{
			Addr: v.GetString("http.addr"),
		},
	}
}

// Default は設定ファイルも環境変数も見ないデフォルト値
func Default() Config {
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}

// 必須チェック
func (c Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("db.driver %q is not supported (sqlite, postgres)", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("db.dsn is required")
	}

	switch c.Archive.Driver {
	case "local":
		if c.Archive.Dir == "" {
			return fmt.Errorf("archive.dir is required")
		}
	case "s3":
		if c.Archive.S3.Bucket == "" {
			return fmt.Errorf("archive.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("archive.driver %q is not supported (local, s3)", c.Archive.Driver)
	}

	if c.Order.HighValueThreshold <= 0 {
		return fmt.Errorf("order.high_value_threshold must be > 0")
	}
	return nil
}
