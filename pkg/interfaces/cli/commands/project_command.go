package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ledgewood/inventory/pkg/application/services"
	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/domain/services/catalog_validator"
	"github.com/ledgewood/inventory/pkg/infrastructure/repositories/csv"
	"github.com/ledgewood/inventory/pkg/infrastructure/repositories/memory"
	"github.com/ledgewood/inventory/pkg/interfaces/cli/output"
	"github.com/ledgewood/inventory/pkg/logger"
)

// ProjectConfig holds configuration for the project command
type ProjectConfig struct {
	ScenarioDir  string
	VariantsFile string
	StockFile    string
	ChangesFile  string
	OutputDir    string
	Format       string
	Verbose      bool
	Help         bool
}

// ProjectCommand projects pending stock changes against the current
// snapshot without committing anything
type ProjectCommand struct {
	config   ProjectConfig
	defaults entities.PackingSpec
	log      *logger.Logger
}

// NewProjectCommand creates a new project command with the given configuration
func NewProjectCommand(config ProjectConfig, defaults entities.PackingSpec, log *logger.Logger) *ProjectCommand {
	return &ProjectCommand{
		config:   config,
		defaults: defaults,
		log:      log,
	}
}

// Execute runs the project command
func (c *ProjectCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	// Validate inputs
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Determine input files
	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files)
	}

	// Load data from CSV files
	if c.config.Verbose {
		fmt.Println("📂 Loading data from CSV files...")
	}

	csvLoader := csv.NewLoader()

	variants, err := csvLoader.LoadVariants(files["Variants"])
	if err != nil {
		return fmt.Errorf("error loading variants: %w", err)
	}

	stocks, err := csvLoader.LoadStockLevels(files["Stock"])
	if err != nil {
		return fmt.Errorf("error loading stock levels: %w", err)
	}

	changes, err := csvLoader.LoadChanges(files["Changes"])
	if err != nil {
		return fmt.Errorf("error loading changes: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Data loaded successfully:\n")
		fmt.Printf("  Variants: %d\n", len(variants))
		fmt.Printf("  Stock levels: %d\n", len(stocks))
		fmt.Printf("  Changes: %d\n", len(changes))
		fmt.Println()
	}

	c.log.Debug().
		Int("variants", len(variants)).
		Int("stock_levels", len(stocks)).
		Int("changes", len(changes)).
		Msg("scenario loaded")

	// Validate catalog consistency. Findings are surfaced as warnings;
	// a snapshot with drift is still worth projecting against.
	if c.config.Verbose {
		fmt.Println("🔍 Validating catalog consistency...")
	}

	consistency := catalog_validator.ValidateCatalogConsistency(variants, stocks, c.defaults)
	if consistency.HasFindings() {
		for _, finding := range consistency.Errors {
			fmt.Printf("⚠️  %s\n", finding)
			c.log.Warn().Str("finding", finding).Msg("catalog consistency")
		}
		fmt.Println()
	} else if c.config.Verbose {
		fmt.Println("✅ Catalog consistency check passed")
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

	// Create the impact service
	impactService := services.NewImpactService(variantRepo, stockRepo, c.defaults)

	changeSlice := make([]entities.StockChange, len(changes))
	for i, change := range changes {
		changeSlice[i] = *change
	}

	// Run the projection
	if c.config.Verbose {
		fmt.Println("🔄 Projecting stock changes...")
	}

	startTime := time.Now()
	result, err := impactService.ProjectChanges(ctx, changeSlice)
	projectionTime := time.Since(startTime)

	if err != nil {
		return fmt.Errorf("error projecting stock changes: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Projection completed in %v\n\n", projectionTime)
	}

	c.log.Info().
		Int("projections", len(result.Projections)).
		Int("oversold", len(result.OversoldSKUs())).
		Int("transient", len(result.Transient)).
		Dur("elapsed", projectionTime).
		Msg("projection complete")

	// Generate output
	outputConfig := output.Config{
		Format:         c.config.Format,
		OutputDir:      c.config.OutputDir,
		Verbose:        c.config.Verbose,
		ProjectionTime: projectionTime,
		InputFiles:     files,
	}

	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("🏁 Stock impact analysis complete!")
	}

	return nil
}

// validateInputs validates the command configuration
func (c *ProjectCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.VariantsFile == "" || c.config.StockFile == "" || c.config.ChangesFile == "") {
		return fmt.Errorf("must specify either -scenario directory or individual CSV files")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use
func (c *ProjectCommand) resolveInputFiles() (map[string]string, error) {
	var variantsPath, stockPath, changesPath string

	if c.config.ScenarioDir != "" {
		// Use scenario directory
		variantsPath = filepath.Join(c.config.ScenarioDir, "variants.csv")
		stockPath = filepath.Join(c.config.ScenarioDir, "stock.csv")
		changesPath = filepath.Join(c.config.ScenarioDir, "changes.csv")
	} else {
		// Use individual files
		variantsPath = c.config.VariantsFile
		stockPath = c.config.StockFile
		changesPath = c.config.ChangesFile
	}

	files := map[string]string{
		"Variants": variantsPath,
		"Stock":    stockPath,
		"Changes":  changesPath,
	}

	// Validate files exist
	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// printHeader prints the command header information
func (c *ProjectCommand) printHeader(files map[string]string) {
	fmt.Printf("🚀 Stock Impact CLI\n")
	fmt.Printf("Input files:\n")
	fmt.Printf("  Variants: %s\n", files["Variants"])
	fmt.Printf("  Stock: %s\n", files["Stock"])
	fmt.Printf("  Changes: %s\n", files["Changes"])
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

// showHelp displays the help message
func (c *ProjectCommand) showHelp() {
	fmt.Printf(`stockproj project - Project pending stock changes without committing them

USAGE:
    stockproj project -scenario <directory>       # Use scenario directory with CSV files
    stockproj project -variants <file> ...        # Use individual CSV files

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -variants <file>    Path to variants CSV file
    -stock <file>       Path to stock levels CSV file
    -changes <file>     Path to changes CSV file
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv, html (default: text)
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── variants.csv    # Product variant catalog
    ├── stock.csv       # Current stock snapshot
    └── changes.csv     # Pending stock changes to project

CSV FILE FORMATS:

variants.csv:
    sku,description,manufacturer,unit,feet_per_layer,layers_per_pallet,unit_price
    FLR-OAK-5,Oak Plank 5in,ACME,Square Feet,100,10,4.25
    ADH-TROWEL,Trowel Adhesive 4gal,BONDIT,Each,,,18.50

stock.csv:
    sku,quantity,pallets,layers
    FLR-OAK-5,2300,2,3
    ADH-TROWEL,40,0,0

changes.csv:
    sku,quantity,pallets,layers,pallets_authoritative
    FLR-OAK-5,-300,-3,0,true
    ADH-TROWEL,-10,0,0,false

Variants with empty packing columns fall back to the configured defaults.
A change row with pallets_authoritative=true is applied from its pallet and
layer counts; the quantity column is recomputed from them.

EXAMPLES:
    # Project a scenario directory
    stockproj project -scenario examples/flooring_basic -verbose

    # Project with individual files
    stockproj project -variants data/variants.csv -stock data/stock.csv -changes data/changes.csv

    # Generate JSON output
    stockproj project -scenario examples/flooring_basic -format json -output results/

    # Render an HTML report
    stockproj project -scenario examples/flooring_basic -format html -output results/
`)
}
