package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ledgewood/inventory/pkg/config"
	"github.com/ledgewood/inventory/pkg/interfaces/cli/commands"
	"github.com/ledgewood/inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	defaults, err := cfg.Packing.Spec()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "project":
		flags := flag.NewFlagSet("project", flag.ExitOnError)
		var (
			scenarioDir  = flags.String("scenario", "", "Path to scenario directory containing CSV files")
			variantsFile = flags.String("variants", "", "Path to variants CSV file")
			stockFile    = flags.String("stock", "", "Path to stock levels CSV file")
			changesFile  = flags.String("changes", "", "Path to changes CSV file")
			outputDir    = flags.String("output", "", "Output directory for results (optional)")
			format       = flags.String("format", "text", "Output format: text, json, csv, html")
			verbose      = flags.Bool("verbose", false, "Enable verbose output")
			help         = flags.Bool("help", false, "Show help message")
		)
		flags.Parse(os.Args[2:])

		cmd := commands.NewProjectCommand(commands.ProjectConfig{
			ScenarioDir:  *scenarioDir,
			VariantsFile: *variantsFile,
			StockFile:    *stockFile,
			ChangesFile:  *changesFile,
			OutputDir:    *outputDir,
			Format:       *format,
			Verbose:      *verbose,
			Help:         *help,
		}, defaults, log)
		run(ctx, cmd.Execute)

	case "apply":
		flags := flag.NewFlagSet("apply", flag.ExitOnError)
		var (
			scenarioDir  = flags.String("scenario", "", "Path to scenario directory containing CSV files")
			variantsFile = flags.String("variants", "", "Path to variants CSV file")
			stockFile    = flags.String("stock", "", "Path to stock levels CSV file")
			changesFile  = flags.String("changes", "", "Path to changes CSV file")
			outputDir    = flags.String("output", "", "Directory for the updated stock.csv (optional)")
			clamp        = flags.Bool("clamp", false, "Floor stored quantities at zero")
			verbose      = flags.Bool("verbose", false, "Enable verbose output")
			help         = flags.Bool("help", false, "Show help message")
		)
		flags.Parse(os.Args[2:])

		cmd := commands.NewApplyCommand(commands.ApplyConfig{
			ScenarioDir:  *scenarioDir,
			VariantsFile: *variantsFile,
			StockFile:    *stockFile,
			ChangesFile:  *changesFile,
			OutputDir:    *outputDir,
			Clamp:        *clamp,
			Verbose:      *verbose,
			Help:         *help,
		}, defaults, log)
		run(ctx, cmd.Execute)

	case "session":
		flags := flag.NewFlagSet("session", flag.ExitOnError)
		var (
			scenarioDir  = flags.String("scenario", "", "Path to scenario directory containing CSV files")
			variantsFile = flags.String("variants", "", "Path to variants CSV file")
			stockFile    = flags.String("stock", "", "Path to stock levels CSV file")
			clamp        = flags.Bool("clamp", false, "Floor stored quantities at zero")
			verbose      = flags.Bool("verbose", false, "Enable verbose output")
			help         = flags.Bool("help", false, "Show help message")
		)
		flags.Parse(os.Args[2:])

		cmd := commands.NewSessionCommand(commands.SessionConfig{
			ScenarioDir:  *scenarioDir,
			VariantsFile: *variantsFile,
			StockFile:    *stockFile,
			Clamp:        *clamp,
			Verbose:      *verbose,
			Help:         *help,
		}, defaults, log)
		run(ctx, cmd.Execute)

	case "generate":
		flags := flag.NewFlagSet("generate", flag.ExitOnError)
		var (
			variants   = flags.Int("variants", 0, "Number of variants to generate")
			changes    = flags.Int("changes", 0, "Number of change rows to generate")
			stockRatio = flags.Float64("stock-ratio", 0.9, "Fraction of variants with a stock row")
			outputDir  = flags.String("output", "", "Output directory for generated files")
			seed       = flags.Int64("seed", 0, "Random seed for reproducible generation")
			verbose    = flags.Bool("verbose", false, "Enable verbose output")
			help       = flags.Bool("help", false, "Show help message")
		)
		flags.Parse(os.Args[2:])

		cmd := commands.NewGenerateCommand(commands.GenerateConfig{
			Variants:   *variants,
			Changes:    *changes,
			StockRatio: *stockRatio,
			OutputDir:  *outputDir,
			Seed:       *seed,
			Verbose:    *verbose,
			Help:       *help,
		}, defaults, log)
		run(ctx, cmd.Execute)

	case "help", "-help", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(ctx context.Context, execute func(context.Context) error) {
	if err := execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`stockproj - Stock projection and inventory tooling for trade-supply distribution

USAGE:
    stockproj <command> [OPTIONS]

COMMANDS:
    project     Project pending stock changes without committing them
    apply       Commit a change set against the stock snapshot
    session     Interactive inventory session
    generate    Generate a random test scenario

Run 'stockproj <command> -help' for command-specific options.

CONFIGURATION:
    APP_ENV                             development or production (default: development)
    LOG_LEVEL                           trace, debug, info, warn, error (default: info)
    PACKING_DEFAULT_FEET_PER_LAYER      Fallback feet per layer (default: 100)
    PACKING_DEFAULT_LAYERS_PER_PALLET   Fallback layers per pallet (default: 10)

    Variables can also be supplied through a .env file in the working directory.
`)
}
