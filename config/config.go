// server/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// --- Sub-structs mirroring the YAML layout ---

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	Mode         string `mapstructure:"mode"`
	MaxBodyBytes int64  `mapstructure:"maxBodyBytes"`
}

type MongoConfig struct {
	URI          string        `mapstructure:"uri"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	Host         string        `mapstructure:"host"`
	DBName       string        `mapstructure:"dbName"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Transactions bool          `mapstructure:"transactions"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secretKey"`
	Currency  string `mapstructure:"currency"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SeedConfig struct {
	UsersFile string `mapstructure:"usersFile"`
}

// --- Main Config struct ---

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Stripe StripeConfig `mapstructure:"stripe"`
	S3     S3Config     `mapstructure:"s3"`
	Log    LogConfig    `mapstructure:"log"`
	Seed   SeedConfig   `mapstructure:"seed"`
}

// ConnectionURI returns the configured URI, or builds an Atlas SRV URI from the credentials.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?appName=Cluster0",
		url.QueryEscape(m.User), url.QueryEscape(m.Password), m.Host)
}

// Enabled reports whether photo storage has been configured.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// LoadConfig reads .env, then <path>/config.yaml, then environment variables, then flags.
// A missing .env or config.yaml is not an error.
func LoadConfig(path string, flags *pflag.FlagSet) (config Config, err error) {
	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.maxBodyBytes", 10<<20)
	v.SetDefault("mongo.host", "cluster0.u9lypro.mongodb.net")
	v.SetDefault("mongo.dbName", "parcelioDB")
	v.SetDefault("mongo.timeout", "10s")
	v.SetDefault("mongo.transactions", true)
	v.SetDefault("stripe.currency", "usd")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.AutomaticEnv()

	// Environment variable names follow the deployment's existing names.
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.mode", "GIN_MODE")
	_ = v.BindEnv("server.maxBodyBytes", "SERVER_MAX_BODY_BYTES")
	_ = v.BindEnv("mongo.uri", "MONGO_URI")
	_ = v.BindEnv("mongo.user", "DB_USER")
	_ = v.BindEnv("mongo.password", "DB_PASS")
	_ = v.BindEnv("mongo.host", "MONGO_HOST")
	_ = v.BindEnv("mongo.dbName", "MONGO_DBNAME")
	_ = v.BindEnv("mongo.timeout", "MONGO_TIMEOUT")
	_ = v.BindEnv("mongo.transactions", "MONGO_TRANSACTIONS")
	_ = v.BindEnv("stripe.secretKey", "PAYMENT_GATEWAY_KEY")
	_ = v.BindEnv("stripe.currency", "STRIPE_CURRENCY")
	_ = v.BindEnv("s3.bucket", "S3_BUCKET")
	_ = v.BindEnv("s3.region", "S3_REGION")
	_ = v.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	_ = v.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	_ = v.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")
	_ = v.BindEnv("seed.usersFile", "SEED_USERS_FILE")

	if flags != nil {
		if f := flags.Lookup("port"); f != nil {
			if err = v.BindPFlag("server.port", f); err != nil {
				return config, err
			}
		}
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}

	if config.Mongo.URI == "" && (config.Mongo.User == "" || config.Mongo.Host == "") {
		return config, errors.New("mongo: set MONGO_URI or DB_USER/DB_PASS")
	}

	return config, nil
}
