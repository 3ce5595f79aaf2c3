package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"lostnaut/internal/game"
	"lostnaut/internal/level"
	"lostnaut/internal/observer"
	"lostnaut/internal/physics"
	"lostnaut/internal/records"
	"lostnaut/internal/replay"
)

func main() {
	var (
		levelPath   = flag.String("level", "", "level YAML file (default: built-in crash site)")
		recordPath  = flag.String("record", "", "write an input replay to this path (.jsonl.zst)")
		recordsPath = flag.String("records", "", "sqlite file to log finished runs to")
		observeAddr = flag.String("observe", "", "serve the spectator feed on this loopback address, e.g. 127.0.0.1:8787")
		debug       = flag.Bool("debug", false, "log every resolver contact")
		policyName  = flag.String("policy", "compound", "resolver policy: compound or first-hit")
		best        = flag.Int("best", 0, "print the best N runs from -records and exit")
	)
	flag.Parse()

	if *best > 0 {
		if *recordsPath == "" {
			fmt.Fprintln(os.Stderr, "-best needs -records")
			os.Exit(2)
		}
		if err := printBest(*recordsPath, *best); err != nil {
			fmt.Fprintln(os.Stderr, "records:", err)
			os.Exit(1)
		}
		return
	}

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

	logger := log.Default()
	s := game.NewSession(l, game.Options{Policy: policy, DebugOutput: *debug, Logger: logger})
	g := game.New(s)
	started := time.Now()

	var rec *replay.Recorder
	if *recordPath != "" {
		h := replay.NewHeader(l)
		h.Policy = policy.String()
		rec, err = replay.Create(*recordPath, h)
		if err != nil {
			fmt.Fprintln(os.Stderr, "record:", err)
			os.Exit(1)
		}
		g.Recorder = rec
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *observeAddr != "" {
		obs := observer.NewServer(logger)
		g.Publisher = obs
		go func() {
			if err := obs.ListenAndServe(ctx, *observeAddr); err != nil {
				logger.Printf("Observer: %v", err)
			}
		}()
	}

	g.Run()

	if rec != nil {
		final := s.State()
		if err := rec.Close(&final); err != nil {
			logger.Printf("Replay: close: %v", err)
		} else {
			logger.Printf("Replay: wrote %d frames to %s", rec.Frames(), *recordPath)
		}
	}

	if *recordsPath != "" {
		if err := saveRun(ctx, *recordsPath, records.FromSession(s, started, *recordPath)); err != nil {
			fmt.Fprintln(os.Stderr, "records:", err)
			os.Exit(1)
		}
	}
}

func saveRun(ctx context.Context, path string, run records.Run) error {
	store, err := records.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	id, err := store.Save(ctx, run)
	if err != nil {
		return err
	}
	log.Printf("Records: saved run %d (%d/4 tasks, escaped=%v)", id, run.Tasks, run.Escaped)
	return nil
}

func printBest(path string, n int) error {
	store, err := records.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	runs, err := store.Best(context.Background(), n)
	if err != nil {
		return err
	}
	for i, r := range runs {
		escaped := "stranded"
		if r.Escaped {
			escaped = "escaped"
		}
		fmt.Printf("%2d. %-8s %d/4 tasks %7.1fs deaths=%d stomps=%d %s %s\n",
			i+1, escaped, r.Tasks, r.Duration, r.Deaths, r.Stomps, r.StartedAt.Local().Format(time.DateTime), r.ReplayPath)
	}
	return nil
}
