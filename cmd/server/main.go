package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/cobra"

	"github.com/yi-nology/envprofile/biz/dal/model"
	"github.com/yi-nology/envprofile/biz/handler"
	"github.com/yi-nology/envprofile/biz/middleware"
	"github.com/yi-nology/envprofile/biz/router"
	"github.com/yi-nology/envprofile/biz/service"
	"github.com/yi-nology/envprofile/pkg/config"
	"github.com/yi-nology/envprofile/pkg/database"
	"github.com/yi-nology/envprofile/pkg/lock"
	pkgredis "github.com/yi-nology/envprofile/pkg/redis"
	"github.com/yi-nology/envprofile/pkg/storage"
)

// Injected at build time with -ldflags "-X main.version=...".
var (
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

const (
	writeLockTTL     = 30 * time.Second
	writeLockTimeout = 10 * time.Second
)

var (
	configPath     string
	publishOnStart bool
)

var rootCmd = &cobra.Command{
	Use:           "envprofile-server",
	Short:         "Serve the selected environment profile over HTTP",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config.yaml")
	rootCmd.Flags().BoolVar(&publishOnStart, "publish", false, "Publish the selected profile to storage on start")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		hlog.Errorf("envprofile-server: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	handler.AppVersion, handler.AppGitCommit, handler.AppBuildTime = version, gitCommit, buildTime

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The selected profile is resolved once; a bad selection stops startup.
	provider, registry, err := cfg.LoadProfile()
	if err != nil {
		return fmt.Errorf("select profile %q: %w", cfg.Profile.Active, err)
	}
	hlog.Infof("selected profile %q (production=%t)", provider.Name(), provider.Profile().Production)

	db, err := database.Open(cfg.Database, model.All()...)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		_ = database.Close(db)
		return fmt.Errorf("init storage: %w", err)
	}

	redisClient, err := pkgredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		_ = database.Close(db)
		return err
	}
	var locker lock.Locker
	if redisClient != nil {
		locker = lock.New(redisClient, lock.DefaultKey, writeLockTTL, writeLockTimeout)
		hlog.Infof("write lock enabled via redis %s", cfg.Redis.Address)
	}

	svc := service.NewService(db, provider, registry, store)
	if err := svc.CheckConflicts(ctx); err != nil {
		_ = database.Close(db)
		return err
	}
	if publishOnStart {
		if err := svc.PublishSelected(ctx); err != nil {
			hlog.Warnf("publish %s on start: %v", provider.Name(), err)
		}
	}

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithMaxRequestBodySize(handler.MaxBodySize),
		server.WithExitWaitTime(5*time.Second),
	)
	h.Use(middleware.Recovery(), middleware.Logging(), middleware.CORS(&cfg.CORS), middleware.Auth())
	router.RegisterProfileRoutes(h.Engine, cfg.Server.BasePath, handler.NewProfileHandler(svc), locker)

	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				hlog.CtxWarnf(ctx, "close redis: %v", err)
			}
		}
		if err := database.Close(db); err != nil {
			hlog.CtxWarnf(ctx, "close database: %v", err)
		}
	})

	hlog.Infof("envprofile %s listening on %s%s", version, cfg.Server.Address, cfg.Server.BasePath)
	h.Spin()
	return nil
}
