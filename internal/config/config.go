package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Redis       RedisConfig
	Postgres    DBConfig
	S3          S3Config
	Logger      Logger
	Worker      WorkerConfig
	Scratch     ScratchConfig
	Tools       ToolsConfig
	Transcriber TranscriberConfig
	Analyzer    AnalyzerConfig
	Search      SearchConfig
}

type ServerConfig struct {
	AppVersion     string
	Port           string
	Mode           string
	JwtSecretKey   string
	ClientID       string
	ClientSecret   string
	AllowedOrigins []string
}

type WorkerConfig struct {
	MaxConcurrentJobs int
	MaxCPUUsage       float64
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
	Enabled  bool
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	Enabled       bool
}

type S3Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	ArchiveBucket string
	Enabled       bool
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

// ScratchConfig controls where pipeline artifacts live and how long
// terminal jobs stay queryable before purge.
type ScratchConfig struct {
	Dir              string
	RetentionMinutes int
}

type ToolsConfig struct {
	YtDlpPath  string
	FFmpegPath string
}

type TranscriberConfig struct {
	Endpoint       string
	APIKey         string
	Model          string
	Language       string
	TimeoutSeconds int
}

type AnalyzerConfig struct {
	Endpoint       string
	APIKey         string
	Model          string
	VisionModel    string
	TimeoutSeconds int
}

type SearchConfig struct {
	Endpoint       string
	APIKey         string
	MinDurationSec int
	MaxDurationSec int
	MinViews       int
	MaxResults     int
	TimeoutSeconds int
}

func (s ScratchConfig) Retention() time.Duration {
	if s.RetentionMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(s.RetentionMinutes) * time.Minute
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
