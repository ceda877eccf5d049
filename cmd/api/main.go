package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	cognitopkg "github.com/jaekwang-park/todo-dashboard/internal/cognito"
	"github.com/jaekwang-park/todo-dashboard/internal/config"
	todohttp "github.com/jaekwang-park/todo-dashboard/internal/http"
	"github.com/jaekwang-park/todo-dashboard/internal/middleware"
	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/query"
	"github.com/jaekwang-park/todo-dashboard/internal/repository"
	"github.com/jaekwang-park/todo-dashboard/internal/service"
)

const shutdownTimeout = 10 * time.Second

var envFile string

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Todo dashboard API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(envFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := repository.NewDB(cfg.DB.DSN())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repository.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		logger.Info("migrations applied")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment is read")
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

// userResolverAdapter adapts a user repository to the middleware.UserResolver interface.
type userResolverAdapter struct {
	repo interface {
		GetByCognitoSub(ctx context.Context, cognitoSub string) (model.User, error)
	}
}

func (a *userResolverAdapter) ResolveUserID(ctx context.Context, cognitoSub string) (string, error) {
	user, err := a.repo.GetByCognitoSub(ctx, cognitoSub)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", middleware.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to resolve user: %w", err)
	}
	return user.ID, nil
}

func loadConfig() (config.Config, *slog.Logger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func serve(ctx context.Context) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"auth_dev_mode", cfg.AuthDevMode,
		"log_level", cfg.LogLevel,
		"migrate_on_start", cfg.MigrateOnStart,
	)

	db, err := repository.NewDB(cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connected")

	if cfg.MigrateOnStart {
		if err := repository.Migrate(ctx, db); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	// Repositories
	todoRepo := repository.NewPostgresTodo(db)
	categoryRepo := repository.NewPostgresCategory(db)
	groupRepo := repository.NewPostgresGroup(db)
	tagRepo := repository.NewPostgresTag(db)
	userRepo := repository.NewPostgresUser(db)

	svc := todohttp.Services{
		Todos: service.NewTodoService(todoRepo, categoryRepo, groupRepo,
			service.WithDateFormatter(query.LayoutFormatter(cfg.MetricsDateLayout)),
		),
		Categories: service.NewCategoryService(categoryRepo),
		Groups:     service.NewGroupService(groupRepo),
		Tags:       service.NewTagService(tagRepo),
		Health:     db,
	}

	if cfg.Cognito.AppClientID != "" {
		cognitoClient, err := cognitopkg.NewAWSClient(
			ctx,
			cfg.Cognito.Region,
			cfg.Cognito.AppClientID,
			cfg.Cognito.AppClientSecret,
		)
		if err != nil {
			return err
		}
		svc.Auth = service.NewAuthService(cognitoClient, userRepo)
		logger.Info("cognito client initialized", "region", cfg.Cognito.Region)
	} else {
		logger.Warn("cognito client not initialized: COGNITO_APP_CLIENT_ID not set")
	}

	authCfg := middleware.AuthConfig{
		DevMode: cfg.AuthDevMode,
	}
	if !cfg.AuthDevMode {
		jwksURL := middleware.CognitoJWKSURL(cfg.Cognito.Region, cfg.Cognito.UserPoolID)
		authCfg.Keys = middleware.NewJWKSClient(jwksURL)
		authCfg.Issuer = middleware.CognitoIssuer(cfg.Cognito.Region, cfg.Cognito.UserPoolID)
		authCfg.AppClientID = cfg.Cognito.AppClientID
		authCfg.UserResolver = &userResolverAdapter{repo: userRepo}
	}
	auth, err := middleware.NewAuth(authCfg)
	if err != nil {
		return fmt.Errorf("failed to create auth middleware: %w", err)
	}

	srv := todohttp.NewServer(cfg.ServerPort, logger, auth, svc)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start()
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}
