package main

import (
	"flag"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/openfleet/openfleet/internal/common/config"
	"github.com/openfleet/openfleet/internal/common/db"
	"github.com/openfleet/openfleet/internal/common/logger"
	"github.com/openfleet/openfleet/internal/common/middleware"
	"github.com/openfleet/openfleet/internal/common/server"
	"github.com/openfleet/openfleet/internal/common/tracing"
	"github.com/openfleet/openfleet/internal/fleet"
)

var (
	configPath = flag.String("config", "configs/fleet-service.json", "配置文件路径")
)

func main() {
	flag.Parse()

	config.LoadDotEnv()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.NewLogger(cfg.Log.Driver, logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
		Path:   cfg.Log.Path,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// 初始化链路追踪
	tracer, closer, err := tracing.InitTracer(cfg.Server.Name, cfg.Jaeger)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}
	_ = tracer

	// 初始化数据库
	gormDB, err := db.NewMySQL(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.MaxIdle,
		cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("failed to init mysql: %v", err)
	}
	if err := gormDB.AutoMigrate(&fleet.Record{}); err != nil {
		log.Fatalf("failed to migrate mysql schema: %v", err)
	}

	// Kafka 事件发布器
	events := fleet.NewKafkaPublisher(cfg.Kafka)
	defer events.Close()

	svc := fleet.NewService(fleet.NewRepo(gormDB), events, log)
	handler := fleet.NewHandler(svc, log)

	// gRPC 侧暂时只有 health（供 Consul GRPC check），业务 proto 接入后在这里注册
	go func() {
		if err := server.RunGRPCServer(cfg, log, nil); err != nil {
			log.Errorf("grpc server exited with error: %v", err)
		}
	}()

	// API 限流：令牌桶，容量 200，每秒补 100
	limiter := middleware.NewTokenBucket(200, 100)

	if err := server.RunHTTPServer(cfg, log, func(r *gin.Engine) {
		v1 := r.Group("/v1", server.GinRateLimit(limiter), server.GinJWTAuth(cfg.Auth, log))
		handler.RegisterRoutes(v1)
	}); err != nil {
		log.Fatalf("fleet-service exited with error: %v", err)
	}
}
