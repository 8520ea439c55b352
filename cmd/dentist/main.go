package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"dentist/config"
	"dentist/internal/delivery"
	"dentist/internal/delivery/http"
	"dentist/internal/delivery/http/middleware"
	"dentist/internal/delivery/http/router/handler"
	"dentist/internal/domain/repository"
	"dentist/internal/domain/service"
	"dentist/internal/errors"
	"dentist/internal/infra/auth"
	logs "dentist/internal/infra/log"
	"dentist/internal/infra/persistence/dynamodb"
	"dentist/internal/infra/persistence/memory"
	"dentist/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newUserRepository,
		),
	)
}

type userRepositoryParams struct {
	fx.In

	Lc           fx.Lifecycle
	Ctx          context.Context
	Cfg          *config.Config
	TokenService service.TokenService
	Logger       *slog.Logger
}

// newUserRepository picks the credential store named by store.driver.
func newUserRepository(params userRepositoryParams) (repository.UserRepository, error) {
	if params.Cfg.Store.Driver == config.StoreDriverMemory {
		params.Logger.Warn("Using in-memory credential store, data is lost on exit")

		return memory.NewUserRepository(params.TokenService), nil
	}

	client, err := dynamodb.NewClient(params.Ctx, params.Cfg, params.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create DynamoDB client")
	}

	if params.Cfg.DynamoDB.CreateTable {
		params.Lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return dynamodb.EnsureTable(ctx, client, params.Cfg.DynamoDB.TableName(), params.Logger)
			},
		})
	}

	return dynamodb.NewUserRepository(dynamodb.UserRepositoryParams{
		Client:       client,
		Config:       params.Cfg,
		TokenService: params.TokenService,
		Logger:       params.Logger,
	}), nil
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewUserService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewMetrics,
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewBookingHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer launches every delivery once all OnStart hooks, including
// table creation, have run.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, delivery := range params.Deliveries {
				go func() {
					if err := delivery.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
