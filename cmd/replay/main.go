package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"lostnaut/internal/game"
	"lostnaut/internal/level"
	"lostnaut/internal/physics"
	"lostnaut/internal/replay"
)

func main() {
	var (
		levelPath = flag.String("level", "", "level YAML the replay was recorded on (default: built-in)")
		asJSON    = flag.Bool("json", false, "print the final state as JSON")
		debug     = flag.Bool("debug", false, "log every resolver contact while replaying")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: replay [-level file] [-json] run.jsonl.zst")
		os.Exit(2)
	}

	l, err := level.Load(*levelPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "level:", err)
		os.Exit(1)
	}

	r, err := replay.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer r.Close()

	policy, ok := physics.ParsePolicy(r.Header.Policy)
	if !ok {
		fmt.Fprintln(os.Stderr, "unknown policy in header:", r.Header.Policy)
		os.Exit(1)
	}

	logger := log.New(io.Discard, "", 0)
	if *debug {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	res, err := replay.Run(l, r, game.Options{Policy: policy, DebugOutput: *debug, Logger: logger})
	if err != nil {
		fmt.Fprintln(os.Stderr, "replay:", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(res.State)
	} else {
		st := res.State
		fmt.Printf("replay v%d level=%s (%s) started=%s\n", r.Header.Version, r.Header.Level, r.Header.Name, r.Header.Started.Format("2006-01-02 15:04:05"))
		fmt.Printf("frames=%d time=%.1fs pos=(%.2f, %.2f, %.2f) deaths=%d stomps=%d tasks=%v escaped=%v digest=%s\n",
			res.Frames, st.Time, st.Position[0], st.Position[1], st.Position[2], st.Deaths, st.Stomps, st.TasksDone, st.Escaped, st.Digest())
	}

	if res.Match != nil {
		if !*res.Match {
			fmt.Fprintf(os.Stderr, "replay diverged: recorded digest %s, got %s\n", r.Trailer.Digest, res.State.Digest())
			os.Exit(1)
		}
		if !*asJSON {
			fmt.Println("replay ok: final state matches the recording")
		}
	}
}
