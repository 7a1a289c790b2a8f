package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bodul/xwlevels/internal/catalog"
	"github.com/bodul/xwlevels/internal/play"
	"github.com/bodul/xwlevels/internal/progress"
	"github.com/bodul/xwlevels/internal/puzzle"
)

// config is read from the environment.
type config struct {
	Port        string
	ProjectID   string
	Region      string
	Model       string
	ProgressDB  string
	CatalogFile string
	SettleDelay time.Duration
	LogLevel    logrus.Level
}

func loadConfig() (config, error) {
	cfg := config{
		Port:        os.Getenv("PORT"),
		ProjectID:   os.Getenv("GCP_PROJECT_ID"),
		Region:      os.Getenv("GCP_REGION"),
		Model:       os.Getenv("GEMINI_MODEL"),
		ProgressDB:  os.Getenv("PROGRESS_DB"),
		CatalogFile: os.Getenv("CATALOG_FILE"),
		SettleDelay: play.DefaultSettleDelay,
		LogLevel:    logrus.InfoLevel,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if v := os.Getenv("SETTLE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, err
		}
		cfg.SettleDelay = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := loadConfig()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(cfg.LogLevel)

	ctx := context.Background()

	levels := catalog.Default()
	if cfg.CatalogFile != "" {
		levels, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			log.WithError(err).Fatal("cannot load catalog")
		}
	}
	log.WithField("levels", levels.Len()).Info("catalog loaded")

	var store progress.Store = progress.NewMemory()
	if cfg.ProgressDB != "" {
		db, err := progress.OpenSQLite(ctx, cfg.ProgressDB, log)
		if err != nil {
			log.WithError(err).Fatal("cannot open progress database")
		}
		defer db.Close()
		store = db
		log.WithField("path", cfg.ProgressDB).Info("progress stored in sqlite")
	} else {
		log.Info("PROGRESS_DB not set, progress kept in memory")
	}

	// Hand-made layouts are keyed by built-in level id.
	manual := catalog.ManualLayouts()
	if cfg.CatalogFile != "" {
		manual = nil
	}

	srvCfg := ServerConfig{
		Puzzles:     puzzle.NewCache(levels, manual),
		Tracker:     progress.NewTracker(store, levels.Len(), log),
		SettleDelay: cfg.SettleDelay,
		Log:         log,
	}

	if cfg.ProjectID != "" {
		gemini, err := NewGeminiClient(ctx, cfg.ProjectID, cfg.Region, cfg.Model)
		if err != nil {
			log.WithError(err).Fatal("cannot initialise Gemini")
		}
		srvCfg.Importer = gemini
		log.WithFields(logrus.Fields{"project": cfg.ProjectID, "model": gemini.Model()}).Info("Gemini client ready")
	} else {
		log.Info("GCP_PROJECT_ID not set, level import disabled")
	}

	srv := NewServer(srvCfg)

	log.Infof("server listening on http://localhost:%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv); err != nil {
		log.Fatal(err)
	}
}
