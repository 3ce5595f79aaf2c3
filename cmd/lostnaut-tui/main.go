package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"lostnaut/internal/audio"
	"lostnaut/internal/game"
	"lostnaut/internal/level"
	"lostnaut/internal/observer"
	"lostnaut/internal/physics"
	"lostnaut/internal/records"
	"lostnaut/internal/replay"
	"lostnaut/internal/tui"
)

func main() {
	var (
		levelPath   = flag.String("level", "", "level YAML file (default: built-in crash site)")
		recordPath  = flag.String("record", "", "write an input replay to this path (.jsonl.zst)")
		recordsPath = flag.String("records", "", "sqlite file to log finished runs to")
		observeAddr = flag.String("observe", "", "serve the spectator feed on this loopback address")
		logPath     = flag.String("log", "", "write log output to this file (the terminal is busy)")
		policyName  = flag.String("policy", "compound", "resolver policy: compound or first-hit")
		mute        = flag.Bool("mute", false, "disable sound")
	)
	flag.Parse()

	// The screen owns the terminal, so logs go to a file or nowhere.
	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "log:", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	}
	log.SetOutput(logger.Writer())

	l, err := level.Load(*levelPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "level:", err)
		os.Exit(1)
	}
	policy, ok := physics.ParsePolicy(*policyName)
	if !ok {
		fmt.Fprintln(os.Stderr, "unknown policy:", *policyName)
		os.Exit(2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	if !*mute {
		if err := audio.Init(); err != nil {
			// Non-fatal, game can run without sound
			logger.Printf("Audio initialization failed: %v", err)
		}
	}

	s := game.NewSession(l, game.Options{Policy: policy, Logger: logger})
	game.AttachSound(s)
	app := tui.New(screen, s)
	started := time.Now()

	var rec *replay.Recorder
	if *recordPath != "" {
		h := replay.NewHeader(l)
		h.Policy = policy.String()
		if rec, err = replay.Create(*recordPath, h); err != nil {
			screen.Fini()
			fmt.Fprintln(os.Stderr, "record:", err)
			os.Exit(1)
		}
		app.Recorder = rec
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if *observeAddr != "" {
		obs := observer.NewServer(logger)
		app.Publisher = obs
		go func() {
			if err := obs.ListenAndServe(ctx, *observeAddr); err != nil {
				logger.Printf("Observer: %v", err)
			}
		}()
	}

	app.Run(ctx)
	screen.Fini()
	audio.Close()

	if rec != nil {
		final := s.State()
		if err := rec.Close(&final); err != nil {
			fmt.Fprintln(os.Stderr, "record:", err)
		}
	}
	if *recordsPath != "" {
		store, err := records.Open(*recordsPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "records:", err)
			os.Exit(1)
		}
		defer store.Close()
		if _, err := store.Save(context.Background(), records.FromSession(s, started, *recordPath)); err != nil {
			fmt.Fprintln(os.Stderr, "records:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("%d/4 tasks, %d deaths, %.0fs", s.Tasks.DoneCount(), s.Stats.Deaths, s.Stats.Time)
	if s.Escaped() {
		fmt.Print(" - escaped!")
	}
	fmt.Println()
}
