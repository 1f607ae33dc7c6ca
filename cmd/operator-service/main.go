package main

import (
	"flag"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/openfleet/openfleet/internal/common/config"
	"github.com/openfleet/openfleet/internal/common/db"
	"github.com/openfleet/openfleet/internal/common/logger"
	"github.com/openfleet/openfleet/internal/common/server"
	"github.com/openfleet/openfleet/internal/common/tracing"
	"github.com/openfleet/openfleet/internal/operator"
)

var (
	configPath = flag.String("config", "configs/operator-service.json", "配置文件路径")
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

	tracer, closer, err := tracing.InitTracer(cfg.Server.Name, cfg.Jaeger)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}
	_ = tracer

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
	if err := gormDB.AutoMigrate(&operator.Operator{}); err != nil {
		log.Fatalf("failed to migrate mysql schema: %v", err)
	}

	svc := operator.NewService(operator.NewRepo(gormDB), cfg.Auth)
	handler := operator.NewHandler(svc, log)

	go func() {
		if err := server.RunGRPCServer(cfg, log, nil); err != nil {
			log.Errorf("grpc server exited with error: %v", err)
		}
	}()

	if err := server.RunHTTPServer(cfg, log, func(r *gin.Engine) {
		v1 := r.Group("/v1", server.GinJWTAuth(cfg.Auth, log))
		handler.RegisterRoutes(v1)
	}); err != nil {
		log.Fatalf("operator-service exited with error: %v", err)
	}
}
