package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"athletic-metrics/internal/config"
	"athletic-metrics/internal/db"
	"athletic-metrics/internal/repository"
	"athletic-metrics/internal/service"
)

// useradmin crea o promueve cuentas de administrador. La API nunca lo hace.
func main() {
	var (
		username = flag.String("username", "", "account username")
		password = flag.String("password", "", "password for a new administrator (8 to 72 bytes); ignored when the account already exists")
		promote  = flag.Bool("promote", false, "promote an existing user instead of creating one")
	)
	flag.Parse()

	if strings.TrimSpace(*username) == "" {
		fmt.Fprintln(os.Stderr, "usage: useradmin -username NAME [-password PASS | -promote]")
		os.Exit(2)
	}
	if !*promote && *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required unless -promote is set")
		os.Exit(2)
	}

	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client, err := db.NewClient(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	database := client.Database(cfg.DBName)
	if err := db.EnsureCollections(ctx, database, false, logger); err != nil {
		log.Fatal(err)
	}
	users := service.NewUserService(logger, repository.NewMongoUserRepository(database.Collection(db.UsersCollection)), cfg.BcryptConcurrency)

	if err := run(ctx, users, *username, *password, *promote); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, users *service.UserService, username, password string, promote bool) error {
	if promote {
		if _, err := users.Get(ctx, username); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return fmt.Errorf("user %q does not exist", username)
			}
			return err
		}
	}

	user, created, err := users.EnsureAdmin(ctx, username, password)
	if err != nil {
		return err
	}
	switch {
	case created:
		fmt.Printf("administrator %q created\n", user.Username)
	default:
		fmt.Printf("%q is an administrator\n", user.Username)
	}
	return nil
}
