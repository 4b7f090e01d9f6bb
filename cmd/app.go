package cmd

import (
	"context"
	"fmt"

	"puzzle-leaderboard/core/config"
	"puzzle-leaderboard/core/database"
	"puzzle-leaderboard/core/discord"
	"puzzle-leaderboard/core/logger"
	"puzzle-leaderboard/core/storage"
	"puzzle-leaderboard/feature/leaderboard"
	"puzzle-leaderboard/feature/leaderboard/reconcile"
	"puzzle-leaderboard/feature/leaderboard/scrape"
	"puzzle-leaderboard/feature/leaderboard/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the components shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	store   *store.Store
	storage storage.Client
	scraper *scrape.Client
}

// bootstrap loads configuration, builds the logger, connects and migrates the database
// and prepares the scraper. Object storage is only connected when enabled.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logg, db: db, store: st}

	var archive *storage.Archive
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		a.storage = client
		archive = storage.NewArchive(client, cfg.Storage)
		logg.Info("Page archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	a.scraper = scrape.NewClient(cfg.Puzzle, archive, logg)
	return a, nil
}

// engine connects to Discord and builds the reconciliation engine with an error reporter
// for the configured error channel.
func (a *app) engine() (*reconcile.Engine, *discord.ErrorReporter, error) {
	if err := a.cfg.ValidateJob(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	session, err := discord.NewSession(a.cfg.Discord.Token)
	if err != nil {
		return nil, nil, err
	}
	transport := discord.NewTransport(session)

	engine := reconcile.NewEngine(reconcile.Config{
		ChannelID: a.cfg.Discord.ChannelID,
		Mention:   a.cfg.Discord.NotifyMention,
		Lookback:  a.cfg.Discord.Lookback(),
	}, a.store, transport, a.scraper, leaderboard.Render, a.logger)

	return engine, discord.NewErrorReporter(transport, a.cfg.Discord.ErrorChannelID), nil
}
