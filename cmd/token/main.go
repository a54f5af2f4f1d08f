// Command token issues an admin bearer token for operators.
//
//	token -email author@example.com
//	token -email author@example.com -bootstrap -name "Author"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	"blog-backend/internal/domains/user/model"
	"blog-backend/pkg/container"
	"blog-backend/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email of the admin user")
	bootstrap := flag.Bool("bootstrap", false, "create or promote the user to ADMIN before issuing")
	name := flag.String("name", "", "display name used with -bootstrap")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.App.Environment, "warn")

	c, err := container.Build(cfg, container.Options{SkipStorage: true})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize container")
	}
	defer c.Cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *bootstrap {
		displayName := *name
		if displayName == "" {
			displayName = *email
		}
		if _, err := c.UserService.Upsert(ctx, model.UpsertUserRequest{
			Email: *email,
			Name:  displayName,
			Role:  model.RoleAdmin,
		}); err != nil {
			log.Fatal().Err(err).Msg("bootstrap failed")
		}
	}

	token, u, err := c.UserService.IssueToken(ctx, *email)
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("cannot issue token")
	}

	fmt.Fprintf(os.Stderr, "token for %s (%s), valid %s\n", u.Email, u.ID, cfg.Auth.TokenTTL)
	fmt.Println(token)
}
