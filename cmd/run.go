package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/jekabolt/edupath/app"
	"github.com/jekabolt/edupath/config"
	"github.com/jekabolt/edupath/internal/apisrv/auth"
	"github.com/jekabolt/edupath/internal/form"
	"github.com/jekabolt/edupath/internal/store"
	"github.com/jekabolt/edupath/log"
	"github.com/spf13/cobra"
)

func setup() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load a config %v", err.Error())
	}
	slog.SetDefault(log.New(cfg.Logger, os.Stdout))
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	logger := slog.Default()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := app.New(cfg)
	if err := a.Start(ctx); err != nil {
		return fmt.Errorf("cannot start the application %v", err.Error())
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	select {
	case s := <-sigCh:
		logger.With("signal", s.String()).Warn("signal received, exiting")
		a.Stop(ctx)
		logger.Info("application exited")
	case <-a.Done():
		logger.Error("application exited")
	}

	return nil
}

func migrate(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	cfg.DB.Automigrate = true
	db, err := store.New(cmd.Context(), cfg.DB, nil)
	if err != nil {
		return fmt.Errorf("cannot migrate: %w", err)
	}
	db.Close()
	slog.Default().Info("migrations applied", slog.String("driver", cfg.DB.Driver))
	return nil
}

func addUser(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	db, err := store.New(ctx, cfg.DB, nil)
	if err != nil {
		return fmt.Errorf("cannot open the database: %w", err)
	}
	defer db.Close()

	authS, err := auth.New(&cfg.Auth, db)
	if err != nil {
		return err
	}
	defer authS.Close()

	u, err := authS.AddUser(ctx, &form.AddUserRequest{
		Email:    userEmail,
		Password: userPassword,
		Role:     userRole,
	})
	if err != nil {
		return fmt.Errorf("cannot add user: %w", err)
	}
	slog.Default().Info("user added",
		slog.String("id", u.Id),
		slog.String("email", u.Email),
		slog.String("role", string(u.Role)),
	)
	return nil
}
