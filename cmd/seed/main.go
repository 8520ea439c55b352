package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"dentist/config"
	"dentist/internal/domain/entity"
	"dentist/internal/domain/repository"
	"dentist/internal/errors"
	"dentist/internal/infra/auth"
	logs "dentist/internal/infra/log"
	"dentist/internal/infra/persistence/dynamodb"
	"dentist/internal/infra/persistence/memory"
	"dentist/internal/usecase"
	"dentist/internal/usecase/impl"
)

// Supported subcommands:
// - table:    create the DynamoDB table if it does not exist
// - admin:    create an administrator
// - password: reset the password of an existing user

const passwordEnv = "SEED_PASSWORD"

func main() {
	tableCmd := flag.NewFlagSet("table", flag.ExitOnError)

	adminCmd := flag.NewFlagSet("admin", flag.ExitOnError)
	adminUserName := adminCmd.String("username", "admin", "User name of the administrator")
	adminPassword := adminCmd.String("password", "", "Password, defaults to $"+passwordEnv)
	adminName := adminCmd.String("name", "Admin", "Given name")
	adminSurname := adminCmd.String("surname", "Admin", "Surname")
	adminTelephone := adminCmd.String("telephone", "-", "Telephone")
	adminFiscalCode := adminCmd.String("fiscal-code", "-", "Fiscal code")
	adminBornDate := adminCmd.String("born-date", "1970-01-01", "Born date (YYYY-MM-DD)")

	passwordCmd := flag.NewFlagSet("password", flag.ExitOnError)
	passwordUserName := passwordCmd.String("username", "", "User whose password is reset")
	passwordValue := passwordCmd.String("password", "", "New password, defaults to $"+passwordEnv)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var err error
	switch os.Args[1] {
	case "table":
		_ = tableCmd.Parse(os.Args[2:])
		err = withStack(ctx, func(s *stack) error {
			if s.client == nil {
				return errors.New("store.driver is not dynamodb")
			}

			return dynamodb.EnsureTable(ctx, s.client, s.cfg.DynamoDB.TableName(), s.logger)
		})
	case "admin":
		_ = adminCmd.Parse(os.Args[2:])
		if passwordOrEnv(*adminPassword) == "" {
			err = errors.New("-password or $" + passwordEnv + " is required")

			break
		}
		err = withStack(ctx, func(s *stack) error {
			user, err := s.users.CreateUser(ctx, &usecase.CreateUserInput{
				UserName:   *adminUserName,
				Password:   passwordOrEnv(*adminPassword),
				Name:       *adminName,
				Surname:    *adminSurname,
				Telephone:  *adminTelephone,
				FiscalCode: *adminFiscalCode,
				BornDate:   *adminBornDate,
				Role:       entity.RoleAdmin,
			})
			if err != nil {
				return err
			}
			s.logger.Info("Administrator created", slog.String("userName", user.UserName))

			return nil
		})
	case "password":
		_ = passwordCmd.Parse(os.Args[2:])
		if *passwordUserName == "" {
			err = errors.New("-username is required")

			break
		}
		err = withStack(ctx, func(s *stack) error {
			if _, err := s.auth.ResetPassword(ctx, *passwordUserName, passwordOrEnv(*passwordValue)); err != nil {
				return err
			}
			s.logger.Info("Password reset", slog.String("userName", *passwordUserName))

			return nil
		})
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// stack is the subset of the service graph the seed commands need.
type stack struct {
	cfg    *config.Config
	logger *slog.Logger
	client dynamodb.API
	users  usecase.UserUsecase
	auth   usecase.AuthUsecase
}

func withStack(ctx context.Context, fn func(*stack) error) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger, err := logs.NewWithWriter(cfg, os.Stderr)
	if err != nil {
		return err
	}

	tokens, err := auth.NewJWTService(cfg)
	if err != nil {
		return err
	}

	s := &stack{cfg: cfg, logger: logger}

	var repo repository.UserRepository
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		repo = memory.NewUserRepository(tokens)
	default:
		client, err := dynamodb.NewClient(ctx, cfg, logger)
		if err != nil {
			return errors.Wrap(err, "failed to create DynamoDB client")
		}
		s.client = client
		repo = dynamodb.NewUserRepository(dynamodb.UserRepositoryParams{
			Client:       client,
			Config:       cfg,
			TokenService: tokens,
			Logger:       logger,
		})
	}

	hasher := auth.NewBcryptHasher(cfg)
	s.users = impl.NewUserService(impl.UserServiceParams{UserRepo: repo, Hasher: hasher, Logger: logger})
	s.auth = impl.NewAuthService(impl.AuthServiceParams{UserRepo: repo, Hasher: hasher, TokenService: tokens, Logger: logger})

	return fn(s)
}

func passwordOrEnv(password string) string {
	if password != "" {
		return password
	}

	return os.Getenv(passwordEnv)
}

func printUsage() {
	fmt.Println(`Credential store maintenance

Usage:
  seed <command> [options]

Commands:
  table      Create the DynamoDB table if missing
  admin      Create an administrator
  password   Reset a user's password

Examples:
  seed table
  SEED_PASSWORD=secret seed admin -username admin
  seed password -username mario -password new-secret

The password may be given with -password or through $SEED_PASSWORD.`)
}
