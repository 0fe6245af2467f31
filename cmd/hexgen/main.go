// Command hexgen generates a hexagonal terrain map from a seed and radius,
// logs its terrain summary, and optionally records or verifies the run in a
// SQLite ledger.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hex-terrain/internal/config"
	"github.com/talgya/hex-terrain/internal/entropy"
	"github.com/talgya/hex-terrain/internal/persistence"
	"github.com/talgya/hex-terrain/internal/world"
)

func main() {
	var level slog.LevelVar
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: &level,
	}))
	slog.SetDefault(logger)

	var seedFlag, radiusFlag *uint32
	flag.Func("seed", "world seed (default: config, HEXGEN_SEED, or random)", uint32Flag(&seedFlag))
	flag.Func("radius", "hex radius (default: config or 64)", uint32Flag(&radiusFlag))

	var (
		configPath = flag.String("config", "", "path to hexgen.yaml (optional)")
		basisFlag  = flag.String("basis", "", "noise basis: perlin or simplex")
		ledgerFlag = flag.String("ledger", "", "SQLite run ledger path (empty disables)")
		debugFlag  = flag.String("debug", "", "dump raw samples of one channel: continentalness, erosion, peaks, terrain")
		verify     = flag.Bool("verify", false, "regenerate and compare against the latest ledger run instead of recording; without a seed, replays the last recorded run")
		history    = flag.Int("history", 0, "list the N most recent ledger runs and exit")
	)
	flag.Parse()

	// ── Configuration ─────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		slog.Error("bad environment", "error", err)
		os.Exit(1)
	}
	if seedFlag != nil {
		cfg.Seed = seedFlag
	}
	if radiusFlag != nil {
		cfg.Radius = *radiusFlag
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "basis":
			cfg.Noise.Basis = *basisFlag
		case "ledger":
			cfg.Ledger = *ledgerFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	lvl, _ := cfg.Level()
	level.Set(lvl)

	// ── Ledger ────────────────────────────────────────────────────────
	var db *persistence.DB
	if cfg.Ledger != "" {
		db, err = persistence.Open(cfg.Ledger)
		if err != nil {
			slog.Error("failed to open ledger", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("ledger opened", "path", cfg.Ledger)
	}

	if *history > 0 {
		if db == nil {
			slog.Error("-history requires a ledger")
			os.Exit(1)
		}
		printHistory(db, *history)
		return
	}

	// ── Generation ────────────────────────────────────────────────────
	genCfg := cfg.GenConfig(entropy.Seed())
	if *verify && cfg.Seed == nil && db != nil {
		last, err := db.LastRun()
		if err != nil {
			slog.Error("no seed given and no last run to verify", "error", err)
			os.Exit(1)
		}
		genCfg = last.GenConfig()
		slog.Info("verifying last recorded run", "run", last.ID, "seed", genCfg.Seed, "radius", genCfg.Radius)
	}
	gen, err := world.NewWithConfig(genCfg)
	if err != nil {
		slog.Error("failed to build generator", "error", err)
		os.Exit(1)
	}

	if *debugFlag != "" {
		ch, err := world.ParseChannel(*debugFlag)
		if err != nil {
			slog.Error("bad -debug channel", "error", err)
			os.Exit(1)
		}
		dumpChannel(gen, ch)
		return
	}

	slog.Info("generating world...",
		"seed", genCfg.Seed,
		"radius", genCfg.Radius,
		"basis", genCfg.Noise.Basis,
		"tiles", humanize.Comma(int64(world.DiskSize(int(genCfg.Radius)))),
	)
	start := time.Now()
	w := gen.Generate()
	elapsed := time.Since(start)

	logSummary(w, elapsed)

	if db == nil {
		fmt.Printf("\n%s generated from seed %d (digest %s)\n", w, genCfg.Seed, short(w.Digest()))
		return
	}

	if *verify {
		prev, err := db.Verify(genCfg, w)
		switch {
		case errors.Is(err, persistence.ErrNoRun):
			slog.Warn("nothing to verify against", "seed", genCfg.Seed, "radius", genCfg.Radius)
			os.Exit(1)
		case errors.Is(err, persistence.ErrDigestMismatch):
			slog.Error("regenerated world differs from ledger", "error", err)
			os.Exit(1)
		case err != nil:
			slog.Error("verify failed", "error", err)
			os.Exit(1)
		}
		slog.Info("world matches ledger",
			"run", prev.ID,
			"recorded", humanize.Time(prev.Created()),
			"digest", short(prev.Digest),
		)
		return
	}

	run := persistence.NewRun(genCfg, w, time.Now())
	if err := db.RecordRun(run); err != nil {
		slog.Error("failed to record run", "error", err)
		os.Exit(1)
	}
	slog.Info("run recorded", "run", run.ID, "digest", short(run.Digest))
}

// logSummary reports class distribution and slope extremes.
func logSummary(w *world.World, elapsed time.Duration) {
	counts := w.ClassCounts()
	for _, class := range world.AllClasses {
		if class == world.ClassLake {
			continue
		}
		n := counts[class]
		pct := 0.0
		if w.Len() > 0 {
			pct = 100 * float64(n) / float64(w.Len())
		}
		slog.Info("terrain", "class", class.String(), "count", humanize.Comma(int64(n)), "pct", fmt.Sprintf("%.1f", pct))
	}

	var maxDrop, maxRise, minElev, maxElev float64
	first := true
	w.Range(func(_ world.AxialCoord, t world.Tile) bool {
		maxDrop = max(maxDrop, t.MaxDrop())
		maxRise = max(maxRise, t.MaxRise())
		if first {
			minElev, maxElev = t.Elevation, t.Elevation
			first = false
		}
		minElev = min(minElev, t.Elevation)
		maxElev = max(maxElev, t.Elevation)
		return true
	})

	slog.Info("world ready",
		"tiles", humanize.Comma(int64(w.Len())),
		"elevation_min", fmt.Sprintf("%.2f", minElev),
		"elevation_max", fmt.Sprintf("%.2f", maxElev),
		"max_drop", fmt.Sprintf("%.2f", maxDrop),
		"max_rise", fmt.Sprintf("%.2f", maxRise),
		"elapsed", elapsed.Round(time.Microsecond),
	)
}

// dumpChannel prints "q r value" lines for one raw noise channel.
func dumpChannel(gen *world.Generator, ch world.Channel) {
	samples := gen.DebugSample(ch)
	coords := world.DiskCoords(gen.Radius())

	fmt.Printf("# channel=%s scale=%g tiles=%d\n", ch, ch.Scale(), len(coords))
	for _, c := range coords {
		fmt.Printf("%d %d %s\n", c.Q, c.R, strconv.FormatFloat(samples[c], 'f', 6, 64))
	}
}

func printHistory(db *persistence.DB, limit int) {
	runs, err := db.RecentRuns(limit)
	if err != nil {
		slog.Error("failed to read ledger", "error", err)
		os.Exit(1)
	}
	for _, r := range runs {
		fmt.Printf("%s  %-14s seed=%-10d radius=%-4d basis=%-7s tiles=%-8s digest=%s\n",
			r.ID, humanize.Time(r.Created()), r.Seed, r.Radius, r.Basis,
			humanize.Comma(int64(r.Tiles)), short(r.Digest))
	}
}

// uint32Flag parses a flag value the same way HEXGEN_SEED and HEXGEN_RADIUS are parsed.
func uint32Flag(dst **uint32) func(string) error {
	return func(v string) error {
		n, err := config.ParseUint32(v)
		if err != nil {
			return err
		}
		*dst = &n
		return nil
	}
}

func short(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
