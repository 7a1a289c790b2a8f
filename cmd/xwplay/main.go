// Command xwplay plays the crossword levels in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/bodul/xwlevels/internal/catalog"
	"github.com/bodul/xwlevels/internal/play"
	"github.com/bodul/xwlevels/internal/progress"
	"github.com/bodul/xwlevels/internal/puzzle"
)

func main() {
	var (
		level    = flag.Int("level", 0, "level to start (default: the last unlocked one)")
		dbPath   = flag.String("db", "", "sqlite file for progress (default: in memory)")
		catFile  = flag.String("catalog", "", "JSON level catalog (default: built-in levels)")
		settle   = flag.Duration("settle", play.DefaultSettleDelay, "pause on a solved grid before the next level")
		mute     = flag.Bool("mute", false, "disable the completion chime")
		logFile  = flag.String("log", "", "write logs to this file")
		logLevel = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	if err := run(*level, *dbPath, *catFile, *settle, *mute, *logFile, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "xwplay: %v\n", err)
		os.Exit(1)
	}
}

func run(level int, dbPath, catFile string, settle time.Duration, mute bool, logFile, logLevel string) error {
	// The terminal belongs to the game, so logs only go to a file.
	log := logrus.New()
	log.SetOutput(io.Discard)
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	ctx := context.Background()

	levels := catalog.Default()
	manual := catalog.ManualLayouts()
	if catFile != "" {
		if levels, err = catalog.LoadFile(catFile); err != nil {
			return err
		}
		manual = nil
	}

	var store progress.Store = progress.NewMemory()
	if dbPath != "" {
		db, err := progress.OpenSQLite(ctx, dbPath, log)
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
	}
	tracker := progress.NewTracker(store, levels.Len(), log)
	if level == 0 {
		level = tracker.Snapshot(ctx).Unlocked
	}

	events := make(chan play.Event, 16)
	game := play.New(play.Config{
		Puzzles:     puzzle.NewCache(levels, manual),
		Tracker:     tracker,
		SettleDelay: settle,
		OnEvent:     func(ev play.Event) { events <- ev },
		Log:         log,
	})
	if err := game.Start(ctx, level); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	c, err := newChime(mute)
	if err != nil {
		// Non-fatal, the game runs without sound.
		log.WithError(err).Warn("audio unavailable")
	}

	p := newPlayer(screen, game, levels.Len(), c)
	defer p.close()
	p.run(events)
	return nil
}
