package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/Givikap120/flowaim-sr/app/beatmap/difficulty"
	"github.com/Givikap120/flowaim-sr/app/beatmap/loader"
	"github.com/Givikap120/flowaim-sr/app/database/starcache"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/api"
	"github.com/Givikap120/flowaim-sr/app/rulesets/osu/performance/flowaim"
	"github.com/fsnotify/fsnotify"
)

type options struct {
	mapPath    string
	mods       string
	tuningPath string
	cachePath  string
	rate       float64

	fullCombo bool
	step      bool
	peaks     bool
	watch     bool
}

func main() {
	opts := options{}

	flag.StringVar(&opts.mapPath, "map", "", "path to object list (YAML or JSON)")
	flag.StringVar(&opts.mods, "mods", "", "mods to apply, e.g. HDDT. Overrides mods declared in the object list")
	flag.StringVar(&opts.tuningPath, "tuning", "", "path to tuning YAML file, defaults are used when empty or missing")
	flag.StringVar(&opts.cachePath, "cache", "", "path to SQLite star cache")
	flag.Float64Var(&opts.rate, "rate", 0, "custom clock rate, e.g. 1.2. Overrides speed of DT/HT and clock rate declared in the object list")
	flag.BoolVar(&opts.fullCombo, "fc", false, "estimate full combo time")
	flag.BoolVar(&opts.step, "step", false, "print star rating after every object")
	flag.BoolVar(&opts.peaks, "peaks", false, "print strain peaks of every section")
	flag.BoolVar(&opts.watch, "watch", false, "recalculate when object list or tuning file changes")

	flag.Parse()

	if opts.mapPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts, os.Stdout); err != nil {
		log.Println(err)

		if !opts.watch {
			os.Exit(1)
		}
	}

	if opts.watch {
		if err := watch(opts, os.Stdout); err != nil {
			log.Fatal(err)
		}
	}
}

func run(opts options, out io.Writer) error {
	tuning := flowaim.DefaultTuning()

	if opts.tuningPath != "" {
		var err error
		if tuning, err = flowaim.LoadTuning(opts.tuningPath); err != nil {
			return err
		}
	}

	beatmap, err := loader.Load(opts.mapPath)
	if err != nil {
		return err
	}

	mods := beatmap.Mods
	if opts.mods != "" {
		if mods, err = difficulty.ParseMods(opts.mods); err != nil {
			return err
		}
	}

	if opts.rate < 0 {
		return fmt.Errorf("invalid clock rate %v", opts.rate)
	}

	diff := beatmap.Difficulty.Clone()
	diff.SetMods(mods)

	if opts.rate > 0 {
		diff.SetCustomSpeed(opts.rate)
	}

	calc := flowaim.NewDifficultyCalculatorWithTuning(tuning)
	calc.SetFullComboEstimation(opts.fullCombo)

	attr, cachedAt, err := calculate(opts, calc, beatmap, diff)
	if err != nil {
		return err
	}

	printAttributes(out, beatmap, diff, attr, cachedAt)

	if opts.step {
		printSteps(out, beatmap, calc.CalculateStep(beatmap.HitObjects, diff))
	}

	if opts.peaks {
		sectionLength := tuning.Engine.SectionLength

		printPeaks(out, calc.CalculateStrainPeaks(beatmap.HitObjects, diff), firstSectionStart(beatmap, diff, sectionLength), sectionLength)
	}

	return nil
}

// calculate returns attributes from the cache if possible. cachedAt is zero for fresh results.
func calculate(opts options, calc *flowaim.DifficultyCalculator, beatmap *loader.Beatmap, diff *difficulty.Difficulty) (api.Attributes, time.Time, error) {
	if opts.cachePath == "" {
		return calc.CalculateSingle(beatmap.HitObjects, diff), time.Time{}, nil
	}

	ctx := context.Background()

	cache, err := starcache.Open(ctx, opts.cachePath)
	if err != nil {
		return api.Attributes{}, time.Time{}, err
	}
	defer cache.Close()

	key := starcache.Key{
		MapHash:    beatmap.Hash,
		Mods:       difficulty.GetDiffMaskedMods(diff.Mods),
		TuningHash: calc.Tuning().Hash(),
		Version:    calc.GetVersion(),
		FullCombo:  opts.fullCombo,
		ClockRate:  diff.Speed,
	}

	entry, err := cache.Get(ctx, key)
	if err == nil {
		log.Println("Star cache hit for", key.MapHash[:12])
		return entry.Attributes, entry.CreatedAt, nil
	}

	if !errors.Is(err, starcache.ErrNotFound) {
		return api.Attributes{}, time.Time{}, err
	}

	log.Println("Star cache miss for", key.MapHash[:12])

	attr := calc.CalculateSingle(beatmap.HitObjects, diff)

	if err = cache.Put(ctx, key, attr); err != nil {
		log.Println("Failed to store attributes:", err)
	}

	return attr, time.Time{}, nil
}

func watch(opts options, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Directories are watched, editors often replace files instead of writing them
	watched := map[string]bool{}

	for _, path := range []string{opts.mapPath, opts.tuningPath} {
		if path == "" {
			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		watched[abs] = true

		if err = watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	log.Println("Watching for changes, press Ctrl+C to exit")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	// Saves usually come as bursts of events
	var debounce <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !watched[event.Name] || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			log.Println("Detected change in", filepath.Base(event.Name))

			debounce = time.After(100 * time.Millisecond)
		case <-debounce:
			debounce = nil

			if err := run(opts, out); err != nil {
				log.Println(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Println("Watcher error:", err)
		case <-interrupt:
			return nil
		}
	}
}
