package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledgewood/inventory/pkg/application/services"
	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/infrastructure/events"
	"github.com/ledgewood/inventory/pkg/infrastructure/repositories/csv"
	"github.com/ledgewood/inventory/pkg/infrastructure/repositories/memory"
	"github.com/ledgewood/inventory/pkg/logger"
)

// ApplyConfig holds configuration for the apply command
type ApplyConfig struct {
	ScenarioDir  string
	VariantsFile string
	StockFile    string
	ChangesFile  string
	OutputDir    string
	Clamp        bool
	Verbose      bool
	Help         bool
}

// ApplyCommand commits a change set against the stock snapshot and writes
// the updated levels back out
type ApplyCommand struct {
	config   ApplyConfig
	defaults entities.PackingSpec
	log      *logger.Logger
}

// NewApplyCommand creates a new apply command with the given configuration
func NewApplyCommand(config ApplyConfig, defaults entities.PackingSpec, log *logger.Logger) *ApplyCommand {
	return &ApplyCommand{
		config:   config,
		defaults: defaults,
		log:      log,
	}
}

// Execute runs the apply command
func (c *ApplyCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	// Resolve file paths
	if err := c.resolveFilePaths(); err != nil {
		return fmt.Errorf("failed to resolve file paths: %w", err)
	}

	// Load data from CSV files
	if c.config.Verbose {
		fmt.Println("📂 Loading data from CSV files...")
	}

	csvLoader := csv.NewLoader()

	variants, err := csvLoader.LoadVariants(c.config.VariantsFile)
	if err != nil {
		return fmt.Errorf("error loading variants: %w", err)
	}

	stocks, err := csvLoader.LoadStockLevels(c.config.StockFile)
	if err != nil {
		return fmt.Errorf("error loading stock levels: %w", err)
	}

	changes, err := csvLoader.LoadChanges(c.config.ChangesFile)
	if err != nil {
		return fmt.Errorf("error loading changes: %w", err)
	}

	// Create repositories
	variantRepo := memory.NewVariantRepository()
	if err := variantRepo.LoadVariants(variants); err != nil {
		return fmt.Errorf("failed to load variants into repository: %w", err)
	}

	stockRepo := memory.NewStockRepository()
	if err := stockRepo.LoadStockLevels(stocks); err != nil {
		return fmt.Errorf("failed to load stock levels into repository: %w", err)
	}

	eventStore := events.NewInMemoryEventStore()
	stockService := services.NewStockService(variantRepo, stockRepo, eventStore, c.defaults)

	// Apply each change. A change that cannot be applied is reported and
	// skipped so the rest of the file still commits.
	reference := filepath.Base(c.config.ChangesFile)
	opts := services.ApplyOptions{
		ClampNegative: c.config.Clamp,
		Reason:        entities.ReasonManualAdjustment,
		Reference:     reference,
	}

	if c.config.Verbose {
		fmt.Printf("🔄 Applying %d changes...\n", len(changes))
	}

	applied := 0
	skipped := 0
	for _, change := range changes {
		committed, err := stockService.ApplyChange(ctx, *change, opts)
		if err != nil {
			fmt.Printf("Warning: Failed to apply change for %s: %v\n", change.SKU, err)
			c.log.Warn().Str("sku", string(change.SKU)).Err(err).Msg("change skipped")
			skipped++
			continue
		}
		applied++

		if c.config.Verbose {
			fmt.Printf("  %s: %s on hand (%d pallets, %d layers)\n",
				committed.SKU, committed.Quantity.String(), committed.Pallets, committed.Layers)
		}
	}

	// Summarize what the run recorded
	allEvents, err := eventStore.ReadAllEvents()
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	eventCounts := make(map[string]int)
	for _, event := range allEvents {
		eventCounts[event.Type()]++
	}

	fmt.Printf("✅ Applied %d of %d changes", applied, len(changes))
	if skipped > 0 {
		fmt.Printf(" (%d skipped)", skipped)
	}
	fmt.Println()

	if oversold := eventCounts[events.StockOversoldEvent]; oversold > 0 {
		fmt.Printf("⚠️  %d changes left a variant oversold\n", oversold)
	}

	if c.config.Verbose && len(eventCounts) > 0 {
		fmt.Printf("\nEvent counts by type:\n")
		for eventType, count := range eventCounts {
			fmt.Printf("  %s: %d\n", eventType, count)
		}
		fmt.Println()
	}

	c.log.Info().
		Int("applied", applied).
		Int("skipped", skipped).
		Int("oversold", eventCounts[events.StockOversoldEvent]).
		Msg("apply complete")

	// Write the updated snapshot
	levels, err := stockRepo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to read updated stock levels: %w", err)
	}

	if c.config.OutputDir != "" {
		if err := c.writeSnapshot(levels); err != nil {
			return fmt.Errorf("failed to write updated stock: %w", err)
		}
	} else {
		c.printSnapshot(levels)
	}

	if c.config.Verbose {
		fmt.Println("🏁 Stock apply complete!")
	}

	return nil
}

func (c *ApplyCommand) resolveFilePaths() error {
	if c.config.ScenarioDir != "" {
		// Use scenario directory
		c.config.VariantsFile = filepath.Join(c.config.ScenarioDir, "variants.csv")
		c.config.StockFile = filepath.Join(c.config.ScenarioDir, "stock.csv")
		c.config.ChangesFile = filepath.Join(c.config.ScenarioDir, "changes.csv")
	}

	// Validate required files exist
	requiredFiles := []string{c.config.VariantsFile, c.config.StockFile, c.config.ChangesFile}
	for _, file := range requiredFiles {
		if file == "" {
			return fmt.Errorf("must specify either -scenario directory or individual CSV files")
		}
		if _, err := os.Stat(file); os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", file)
		}
	}

	return nil
}

// writeSnapshot writes the updated stock levels as a stock.csv in the
// output directory, in the same format the loader reads
func (c *ApplyCommand) writeSnapshot(levels []*entities.StockLevel) error {
	if err := os.MkdirAll(c.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filePath := filepath.Join(c.config.OutputDir, "stock.csv")
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintln(file, "sku,quantity,pallets,layers")
	for _, level := range levels {
		fmt.Fprintf(file, "%s,%s,%d,%d\n",
			level.SKU, level.Quantity.String(), level.Pallets, level.Layers)
	}

	if c.config.Verbose {
		fmt.Printf("💾 Updated stock written to %s\n", filePath)
	}

	return nil
}

// printSnapshot prints the updated stock levels to stdout
func (c *ApplyCommand) printSnapshot(levels []*entities.StockLevel) {
	fmt.Printf("\n📊 Updated Stock Levels\n")
	fmt.Printf("%-15s %14s %8s %7s\n", "SKU", "Quantity", "Pallets", "Layers")
	fmt.Println("------------------------------------------------")
	for _, level := range levels {
		fmt.Printf("%-15s %14s %8d %7d\n",
			level.SKU, level.Quantity.String(), level.Pallets, level.Layers)
	}
}

// showHelp displays the help message
func (c *ApplyCommand) showHelp() {
	fmt.Printf(`stockproj apply - Commit a change set against the stock snapshot

USAGE:
    stockproj apply -scenario <directory>         # Use scenario directory with CSV files
    stockproj apply -variants <file> ...          # Use individual CSV files

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -variants <file>    Path to variants CSV file
    -stock <file>       Path to stock levels CSV file
    -changes <file>     Path to changes CSV file
    -output <dir>       Directory for the updated stock.csv (prints to stdout when omitted)
    -clamp              Floor stored quantities at zero instead of going negative
    -verbose            Enable verbose output
    -help               Show this help message

DESCRIPTION:
    Applies every row of the change set to the stock snapshot through the
    stock service, records a movement per change, and writes the updated
    levels back out. Changes for unknown or transient variants are skipped
    with a warning. Without -clamp, oversold variants keep their negative
    quantities so the shortfall stays visible.

EXAMPLES:
    # Apply a scenario's change set and print the result
    stockproj apply -scenario examples/flooring_basic -verbose

    # Apply with clamping and write the updated snapshot
    stockproj apply -scenario examples/flooring_basic -clamp -output results/
`)
}
