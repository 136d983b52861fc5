package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	httpadapter "resume-editor/internal/adapter/http"
	repo "resume-editor/internal/adapter/repository"
	"resume-editor/internal/config"
	"resume-editor/internal/logger"
	"resume-editor/internal/usecase"
	infra "resume-editor/pkg/infrastructure"
	"resume-editor/pkg/storeclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log := logger.New("resume-editor", cfg.Level())
	cfg.Log(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// infra setup
	opened, err := repo.Open(ctx, repo.Options{
		Driver:       cfg.StoreDriver,
		DocumentPath: cfg.DocumentPath,
		DatabaseURL:  cfg.DatabaseURL,
		SQLitePath:   cfg.SQLitePath,
		Slot:         cfg.DocumentSlot,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open store")
	}
	defer opened.Close()

	// The editor edits the local slot unless pointed at a remote store.
	editorStore := opened.Backend
	if cfg.StoreURL != "" {
		editorStore = repo.WithMetrics(storeclient.New(storeclient.Options{
			BaseURL: cfg.StoreURL,
			Timeout: cfg.StoreTimeout,
		}))
	}

	editor := usecase.NewEditor(editorStore, log)
	initCtx, cancelInit := context.WithTimeout(ctx, cfg.StoreTimeout)
	_, err = editor.Initialize(initCtx)
	cancelInit()
	switch {
	case errors.Is(err, usecase.ErrCorruptDocument):
		log.Fatal().Err(err).Str("store", editorStore.Name()).Msg("stored resume does not validate; fix or remove it")
	case err != nil:
		log.Warn().Err(err).Str("store", editorStore.Name()).Msg("starting with an empty editor")
	}

	exporter := usecase.NewExporter(infra.NewChromedpRenderer(cfg.ChromePath), log)

	app := fiber.New(fiber.Config{AppName: "resume-editor", DisableStartupMessage: true})
	httpadapter.Register(app, log,
		httpadapter.NewStoreHandler(opened.Backend, opened.History, cfg.StoreTimeout, log),
		httpadapter.NewEditorHandler(editor, exporter, cfg.StoreTimeout, log),
		httpadapter.NewHealthHandler(editorStore),
	)

	addr := fmt.Sprintf(":%d", cfg.Port)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
