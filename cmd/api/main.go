package main

import (
	"log"

	awsSdk "github.com/aws/aws-sdk-go-v2/service/s3"
	goRedis "github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/mamadousow/clipsentry/internal/config"
	"github.com/mamadousow/clipsentry/internal/server"
	"github.com/mamadousow/clipsentry/pkg/db/aws"
	"github.com/mamadousow/clipsentry/pkg/db/postgres"
	"github.com/mamadousow/clipsentry/pkg/db/redis"
	"github.com/mamadousow/clipsentry/pkg/logger"
)

func main() {
	log.Println("Starting analysis server")
	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	var psqlDB *sqlx.DB
	if cfg.Postgres.Enabled {
		psqlDB, err = postgres.NewPsqlDB(cfg)
		if err != nil {
			appLogger.Fatalf("could not connect to db: %s", err)
		}
		appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
		defer psqlDB.Close()
	}

	var redisClient *goRedis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewRedisClient(cfg)
		if err != nil {
			appLogger.Fatalf("could not connect to redis: %s", err)
		}
		appLogger.Infof("redis connected")
		defer redisClient.Close()
	}

	var s3Client *awsSdk.Client
	var presignClient *awsSdk.PresignClient
	if cfg.S3.Enabled {
		s3Client, presignClient, err = aws.NewAWSClient(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
		if err != nil {
			appLogger.Fatalf("could not connect to s3: %s", err)
		}
		appLogger.Infof("s3 connected")
	}

	s := server.NewServer(cfg, psqlDB, redisClient, s3Client, presignClient, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Fatalf("could not start server: %s", err)
	}
}
