// grant-admin sets or clears the admin flag of an existing account.
//
//	go run ./backend/cmd/tools/grant-admin -username alice
//	go run ./backend/cmd/tools/grant-admin -username alice -revoke
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/desichan/desichan/backend/internal/service"
	"github.com/desichan/desichan/backend/internal/storage/pg"
	"github.com/desichan/desichan/backend/internal/utils"
	"github.com/desichan/desichan/shared/config"
	"github.com/desichan/desichan/shared/jwt"
	"github.com/desichan/desichan/shared/logger"
	sharedpg "github.com/desichan/desichan/shared/storage/pg"
)

func main() {
	var (
		configFolder string
		username     string
		revoke       bool
	)
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.StringVar(&username, "username", "", "account to change")
	flag.BoolVar(&revoke, "revoke", false, "clear the admin flag instead of setting it")
	flag.Parse()

	if username == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.MustLoad(configFolder)
	logger.Initialize("warn", false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storage, err := pg.NewWithPool(ctx, cfg, sharedpg.LightweightConnectionConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer storage.Cleanup()

	auth := service.NewAuth(storage, utils.CredentialsValidator{}, jwt.New(cfg.JwtKey(), cfg.JwtTTL()))
	if err := auth.SetAdmin(ctx, username, !revoke); err != nil {
		fmt.Fprintf(os.Stderr, "failed to update %s: %v\n", username, err)
		os.Exit(1)
	}

	if revoke {
		fmt.Printf("%s is no longer an admin\n", username)
	} else {
		fmt.Printf("%s is now an admin\n", username)
	}
}
