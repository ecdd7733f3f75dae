package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wbrown/tilemosaic"
)

func main() {
	configFile := flag.String("config", "",
		"Path to a YAML config file (optional)")
	inputFile := flag.String("input", "",
		"Path to the reference image (required)")
	tilesDir := flag.String("tiles", "",
		"Directory of tile images (required)")
	outputFile := flag.String("output", "",
		"Path to save the mosaic (default: tyled-<input>.png)")
	iterations := flag.Int("niter", tilemosaic.DefaultIterations,
		"Number of improvement iterations")
	interactive := flag.Bool("interactive", false,
		"Pause after every iteration until Enter is pressed")
	seed := flag.Int64("seed", 0,
		"Random seed (default: derived from the clock and logged)")
	tileSize := flag.Int("tilesize", 0,
		"Resample tiles to this size (default: size of the first tile)")
	framesDir := flag.String("frames", "",
		"Directory to write an annotated frame after every iteration")
	workers := flag.Int("workers", tilemosaic.DefaultLoadWorkers,
		"Number of tiles decoded concurrently")
	quality := flag.Int("quality", 95,
		"JPEG quality when the output is a JPEG")
	flag.Parse()

	cfg := tilemosaic.DefaultConfig()
	if *configFile != "" {
		loaded, err := tilemosaic.LoadConfig(*configFile)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = *loaded
	}

	// Flags given explicitly win over the config file
	seedSet := cfg.Seed != 0
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Reference = *inputFile
		case "tiles":
			cfg.Tiles = *tilesDir
		case "output":
			cfg.Output = *outputFile
		case "niter":
			cfg.Iterations = *iterations
		case "interactive":
			cfg.Interactive = *interactive
		case "seed":
			cfg.Seed = *seed
			seedSet = true
		case "tilesize":
			cfg.TileSize = *tileSize
		case "frames":
			cfg.FramesDir = *framesDir
		case "workers":
			cfg.LoadWorkers = *workers
		case "quality":
			cfg.JPEGQuality = *quality
		}
	})
	if !seedSet {
		cfg.Seed = time.Now().UnixNano()
	}

	if cfg.Reference == "" || cfg.Tiles == "" {
		fmt.Println("Please provide the reference image with -input and the tile directory with -tiles")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if err := run(cfg, os.Stdin, os.Stdout, logger); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// run performs one complete mosaic run described by cfg. Interactive
// acknowledgments are read from in; the run summary goes to out.
func run(cfg tilemosaic.Config, in io.Reader, out io.Writer, logger *log.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Output == "" {
		cfg.Output = defaultOutput(cfg.Reference)
	}

	fmt.Fprintf(out, "input filename: %s\n", cfg.Reference)
	fmt.Fprintf(out, "output filename: %s\n", cfg.Output)
	fmt.Fprintf(out, "tiles directory: %s\n", cfg.Tiles)
	fmt.Fprintf(out, "interactive: %v\n", cfg.Interactive)
	fmt.Fprintf(out, "seed: %d\n", cfg.Seed)

	observers := tilemosaic.Observers{tilemosaic.ScoreLogger{Logger: logger}}
	if cfg.FramesDir != "" {
		observers = append(observers, tilemosaic.FrameWriter{Dir: cfg.FramesDir})
	}
	if cfg.Interactive {
		observers = append(observers, tilemosaic.NewStepGate(in, out))
	}

	opts := append(cfg.Options(),
		tilemosaic.WithLogger(logger),
		tilemosaic.WithObserver(observers),
	)

	beginInit := time.Now()
	state, err := tilemosaic.Initialize(cfg.Reference, cfg.Tiles, opts...)
	if err != nil {
		return err
	}
	endInit := time.Now()
	fmt.Fprintf(out, "grid: %d rows x %d cols of %dpx tiles (%d cells, %d tiles)\n",
		state.Grid.Rows, state.Grid.Cols, state.Grid.TileSize, state.Grid.Size(), state.Catalog.Len())
	fmt.Fprintf(out, "initial score: %.4f\n", state.Score())

	if _, err := state.RunIterations(cfg.Iterations); err != nil {
		return err
	}
	endComputation := time.Now()

	if err := state.Save(cfg.Output, cfg.JPEGQuality); err != nil {
		return err
	}

	fmt.Fprintf(out, "final score: %.4f\n", state.Score())
	fmt.Fprintf(out, "Output written to %s\n", cfg.Output)
	fmt.Fprintf(out, "Initialization time: %v\n", endInit.Sub(beginInit))
	fmt.Fprintf(out, "Computation time: %v\n", endComputation.Sub(endInit))
	return nil
}

// defaultOutput names the mosaic after the reference: dir/tyled-name.png.
func defaultOutput(reference string) string {
	dir, base := filepath.Split(reference)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "tyled-"+name+".png")
}
