package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/StackUnderflow/post-service/internal/config"
	"github.com/StackUnderflow/post-service/internal/handler"
	"github.com/StackUnderflow/post-service/internal/rabbitmq"
	"github.com/StackUnderflow/post-service/internal/repository"
	"github.com/StackUnderflow/post-service/internal/repository/mongodb"
	"github.com/StackUnderflow/post-service/internal/server"
	"github.com/StackUnderflow/post-service/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()

	if err := loadEnv(); err != nil {
		logger.Sugar().Panicf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	mongoConfig := config.MongoConfig{
		URI:      os.Getenv("MONGO_URI"),
		Database: os.Getenv("MONGO_DATABASE"),
	}
	db, err := mongodb.DB(ctx, mongoConfig)
	if err != nil {
		logger.Sugar().Panicf("failed to connect to mongodb: %s", err.Error())
	}
	if err := db.Client().Ping(ctx, nil); err != nil {
		logger.Sugar().Panicf("failed to ping mongodb: %s", err.Error())
	}
	logger.Info("Successfully connected to MongoDB")

	redisOptions := &redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	}
	rdb := redis.NewClient(redisOptions)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
	}
	logger.Info("Successfully connected to Redis")

	mq, err := rabbitmq.Connect(os.Getenv("RABBITMQ_URL"))
	if err != nil {
		logger.Sugar().Panicf("failed to connect to rabbitmq: %s", err.Error())
	}
	logger.Info("Successfully connected to RabbitMQ")

	repo := repository.New(db, rdb)
	services := service.New(logger, repo, mq)
	handlers := handler.New(services)

	srv := new(server.Server)
	go func() {
		if err := srv.Run(viper.GetString("server.port"), handlers.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Panicf("failed to run server: %s", err.Error())
		}
	}()
	logger.Info("Server is running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down server: %s", err.Error())
	}
	if err := mq.Close(); err != nil {
		logger.Sugar().Errorf("failed to close rabbitmq connection: %s", err.Error())
	}
	if err := rdb.Close(); err != nil {
		logger.Sugar().Errorf("failed to close redis connection: %s", err.Error())
	}
	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to disconnect from mongodb: %s", err.Error())
	}
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}
