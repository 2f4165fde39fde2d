package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Astemirdum/library-ledger/pkg/circuit_breaker"
	"github.com/Astemirdum/library-ledger/pkg/kafka"
	"github.com/Astemirdum/library-ledger/pkg/logger"
	"github.com/Astemirdum/library-ledger/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// FileEnv names the optional YAML config file.
const FileEnv = "LIBRARY_CONFIG_FILE"

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LIBRARY_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"LIBRARY_HTTP_PORT"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Auth struct {
	Secret   string        `yaml:"secret" envconfig:"JWT_SECRET" json:"-"`
	TokenTTL time.Duration `yaml:"tokenTTL" envconfig:"JWT_TTL"`
}

type Config struct {
	Server   HTTPServer             `yaml:"server"`
	Database postgres.DB            `yaml:"db"`
	Kafka    kafka.Config           `yaml:"kafka"`
	Breaker  circuit_breaker.Config `yaml:"breaker"`
	Auth     Auth                   `yaml:"auth"`
	Log      logger.Log             `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig builds the config once: defaults, options, the optional YAML
// file named by LIBRARY_CONFIG_FILE, then the environment. It exits the
// process when the result is not usable.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		config, err := Load(os.Getenv(FileEnv), ops...)
		if err == nil {
			err = config.Validate()
		}
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func Load(path string, ops ...Option) (*Config, error) {
	config := defaultConfig()
	for _, op := range ops {
		op(&config)
	}
	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(buf, &config); err != nil {
			return nil, errors.Wrap(err, "parse config file")
		}
	}
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.Wrap(err, "envconfig")
	}
	return &config, nil
}

// Validate checks what the API server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Server: HTTPServer{
			Host:         "0.0.0.0",
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: postgres.DB{
			Host:   "localhost",
			Port:   5432,
			NameDB: "library",
		},
		Breaker: circuit_breaker.DefaultConfig(),
		Auth: Auth{
			TokenTTL: 24 * time.Hour,
		},
		Log: logger.Log{LogLevel: zapcore.InfoLevel},
	}
}

func printConfig(cfg *Config) {
	safe := *cfg
	safe.Database.Password = ""
	jscfg, _ := json.MarshalIndent(safe, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
