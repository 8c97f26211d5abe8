package commands

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/logger"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Variants   int     // Total number of variants to generate
	Changes    int     // Number of change rows to generate
	StockRatio float64 // Fraction of variants with a stock row (e.g., 0.9 = 90% coverage)
	OutputDir  string  // Output directory for generated files
	Seed       int64   // Random seed for reproducible generation
	Help       bool    // Show help
	Verbose    bool    // Verbose output
}

// GenerateCommand produces a random but internally consistent scenario:
// a variant catalog, a stock snapshot whose breakdowns match their
// quantities, and a change set to project or apply against them
type GenerateCommand struct {
	config   GenerateConfig
	defaults entities.PackingSpec
	log      *logger.Logger
	rand     *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig, defaults entities.PackingSpec, log *logger.Logger) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config:   config,
		defaults: defaults,
		log:      log,
		rand:     rand.New(rand.NewSource(seed)),
	}
}

// generatedVariant carries one catalog row while the scenario is built
type generatedVariant struct {
	SKU             string
	Description     string
	Manufacturer    string
	Unit            entities.UnitOfMeasure
	FeetPerLayer    float64 // 0 means the row leaves packing to the defaults
	LayersPerPallet int64
	Layered         bool
	UnitPrice       float64
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}

	if cmd.config.Variants <= 0 || cmd.config.Changes <= 0 || cmd.config.OutputDir == "" {
		return fmt.Errorf("variants, changes and output directory are required")
	}

	if cmd.config.Verbose {
		fmt.Printf("🔧 Generating scenario with %d variants, %d changes, %.0f%% stock coverage\n",
			cmd.config.Variants, cmd.config.Changes, cmd.config.StockRatio*100)
		fmt.Printf("📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Printf("🎲 Random seed: %d\n", cmd.config.Seed)
	}

	// Create output directory
	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	catalog := cmd.generateCatalog()

	// Generate variants.csv
	if cmd.config.Verbose {
		fmt.Println("📦 Generating variants.csv...")
	}
	if err := cmd.generateVariants(catalog); err != nil {
		return fmt.Errorf("failed to generate variants: %w", err)
	}

	// Generate stock.csv
	if cmd.config.Verbose {
		fmt.Println("📊 Generating stock.csv...")
	}
	if err := cmd.generateStock(catalog); err != nil {
		return fmt.Errorf("failed to generate stock: %w", err)
	}

	// Generate changes.csv
	if cmd.config.Verbose {
		fmt.Println("📋 Generating changes.csv...")
	}
	if err := cmd.generateChanges(catalog); err != nil {
		return fmt.Errorf("failed to generate changes: %w", err)
	}

	cmd.log.Info().
		Int("variants", len(catalog)).
		Int("changes", cmd.config.Changes).
		Str("output", cmd.config.OutputDir).
		Msg("scenario generated")

	if cmd.config.Verbose {
		fmt.Printf("✅ Scenario generated successfully in %s\n", cmd.config.OutputDir)
	}

	return nil
}

var (
	flooringWoods  = []string{"Oak", "Maple", "Hickory", "Walnut", "Birch", "Ash", "Pine", "Cherry"}
	flooringWidths = []int{3, 4, 5, 6, 7}

	trimForms = []struct {
		Name string
		Code string
	}{
		{"Quarter Round Trim", "QTR-RND"},
		{"Shoe Molding", "SHOE"},
		{"T-Mold Transition", "TMOLD"},
		{"Flush Reducer", "RDCR"},
		{"Stair Nose", "STAIR"},
	}

	adhesiveProducts = []struct {
		Name string
		Code string
	}{
		{"Trowel Adhesive 4gal", "TROWEL"},
		{"Spray Adhesive 22oz", "SPRAY"},
		{"Seam Sealer 8oz", "SEAM"},
		{"Epoxy Filler Kit", "EPOXY"},
	}

	underlaymentProducts = []struct {
		Name string
		Code string
	}{
		{"Foam Underlayment Roll", "FOAM-RL"},
		{"Cork Underlayment Roll", "CORK-RL"},
		{"Moisture Barrier Roll", "VAPOR-RL"},
	}

	scenarioManufacturers = []string{"ACME", "NORWOOD", "CASCADE", "TRIMCO", "BONDIT"}

	feetPerLayerChoices    = []float64{62.5, 100, 125, 250}
	layersPerPalletChoices = []int64{8, 10, 12}
)

// generateCatalog builds the in-memory catalog the CSV files are written from
func (cmd *GenerateCommand) generateCatalog() []generatedVariant {
	catalog := make([]generatedVariant, 0, cmd.config.Variants)
	seen := make(map[string]bool)

	for i := 0; i < cmd.config.Variants; i++ {
		var v generatedVariant

		roll := cmd.rand.Intn(100)
		switch {
		case roll < 50:
			wood := flooringWoods[cmd.rand.Intn(len(flooringWoods))]
			width := flooringWidths[cmd.rand.Intn(len(flooringWidths))]
			v = generatedVariant{
				SKU:         fmt.Sprintf("FLR-%s-%d", strings.ToUpper(wood[:3]), width),
				Description: fmt.Sprintf("%s Plank %din", wood, width),
				Unit:        entities.UnitSquareFeet,
				Layered:     true,
				UnitPrice:   2.5 + cmd.rand.Float64()*6,
			}
		case roll < 70:
			form := trimForms[cmd.rand.Intn(len(trimForms))]
			v = generatedVariant{
				SKU:         "TRM-" + form.Code,
				Description: form.Name,
				Unit:        entities.UnitLinearFeet,
				Layered:     true,
				UnitPrice:   0.8 + cmd.rand.Float64()*2.4,
			}
		case roll < 85:
			product := adhesiveProducts[cmd.rand.Intn(len(adhesiveProducts))]
			v = generatedVariant{
				SKU:         "ADH-" + product.Code,
				Description: product.Name,
				Unit:        entities.UnitEach,
				UnitPrice:   8 + cmd.rand.Float64()*32,
			}
		default:
			product := underlaymentProducts[cmd.rand.Intn(len(underlaymentProducts))]
			v = generatedVariant{
				SKU:         "UND-" + product.Code,
				Description: product.Name,
				Unit:        entities.UnitRoll,
				UnitPrice:   15 + cmd.rand.Float64()*45,
			}
		}

		if seen[v.SKU] {
			v.SKU = fmt.Sprintf("%s-%d", v.SKU, i)
		}
		seen[v.SKU] = true

		v.Manufacturer = scenarioManufacturers[cmd.rand.Intn(len(scenarioManufacturers))]

		// Most layered variants carry their own packing constants; the
		// rest leave the columns empty and ride on the defaults
		if v.Layered && cmd.rand.Intn(10) > 0 {
			v.FeetPerLayer = feetPerLayerChoices[cmd.rand.Intn(len(feetPerLayerChoices))]
			v.LayersPerPallet = layersPerPalletChoices[cmd.rand.Intn(len(layersPerPalletChoices))]
		}

		catalog = append(catalog, v)
	}

	return catalog
}

// generateVariants creates the variants.csv file
func (cmd *GenerateCommand) generateVariants(catalog []generatedVariant) error {
	filePath := filepath.Join(cmd.config.OutputDir, "variants.csv")
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	// Write header
	fmt.Fprintln(file, "sku,description,manufacturer,unit,feet_per_layer,layers_per_pallet,unit_price")

	for _, v := range catalog {
		feetPerLayer := ""
		layersPerPallet := ""
		if v.FeetPerLayer > 0 {
			feetPerLayer = strconv.FormatFloat(v.FeetPerLayer, 'f', -1, 64)
			layersPerPallet = strconv.FormatInt(v.LayersPerPallet, 10)
		}
		fmt.Fprintf(file, "%s,%s,%s,%s,%s,%s,%.2f\n",
			v.SKU, v.Description, v.Manufacturer, v.Unit, feetPerLayer, layersPerPallet, v.UnitPrice)
	}

	return nil
}

// effectivePacking returns the packing constants a generated variant
// actually projects with, substituting the defaults when its own are unset
func (cmd *GenerateCommand) effectivePacking(v generatedVariant) (float64, int64) {
	if v.FeetPerLayer > 0 {
		return v.FeetPerLayer, v.LayersPerPallet
	}
	feetPerLayer, _ := cmd.defaults.FeetPerLayer.Float64()
	return feetPerLayer, cmd.defaults.LayersPerPallet
}

// generateStock creates the stock.csv file. Layered rows are built from a
// whole layer count so quantity and breakdown agree.
func (cmd *GenerateCommand) generateStock(catalog []generatedVariant) error {
	filePath := filepath.Join(cmd.config.OutputDir, "stock.csv")
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	// Write header
	fmt.Fprintln(file, "sku,quantity,pallets,layers")

	for _, v := range catalog {
		if cmd.rand.Float64() >= cmd.config.StockRatio {
			continue
		}

		if v.Layered {
			feetPerLayer, layersPerPallet := cmd.effectivePacking(v)
			totalLayers := int64(cmd.rand.Intn(int(3*layersPerPallet) + 1))
			quantity := feetPerLayer * float64(totalLayers)
			fmt.Fprintf(file, "%s,%s,%d,%d\n",
				v.SKU,
				strconv.FormatFloat(quantity, 'f', -1, 64),
				totalLayers/layersPerPallet,
				totalLayers%layersPerPallet)
		} else {
			fmt.Fprintf(file, "%s,%d,0,0\n", v.SKU, cmd.rand.Intn(80)+1)
		}
	}

	return nil
}

// generateChanges creates the changes.csv file: mostly draws against the
// catalog, a few receipts, and the odd special-order SKU that is not in
// the catalog at all
func (cmd *GenerateCommand) generateChanges(catalog []generatedVariant) error {
	filePath := filepath.Join(cmd.config.OutputDir, "changes.csv")
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	// Write header
	fmt.Fprintln(file, "sku,quantity,pallets,layers,pallets_authoritative")

	for i := 0; i < cmd.config.Changes; i++ {
		// Special-order line for a SKU the catalog has never seen
		if cmd.rand.Intn(10) == 0 {
			fmt.Fprintf(file, "SPC-%04d,-%d,0,0,false\n",
				cmd.rand.Intn(10000), (cmd.rand.Intn(8)+1)*50)
			continue
		}

		v := catalog[cmd.rand.Intn(len(catalog))]

		sign := int64(-1)
		if cmd.rand.Intn(10) >= 7 {
			sign = 1
		}

		if !v.Layered {
			fmt.Fprintf(file, "%s,%d,0,0,false\n", v.SKU, sign*int64(cmd.rand.Intn(25)+1))
			continue
		}

		feetPerLayer, layersPerPallet := cmd.effectivePacking(v)

		if cmd.rand.Intn(10) < 6 {
			// Quantity-driven change; not necessarily a whole number of
			// layers, so projection rounding gets exercised
			quantity := float64(sign) * float64((cmd.rand.Intn(16)+1)*25)
			fmt.Fprintf(file, "%s,%s,0,0,false\n",
				v.SKU, strconv.FormatFloat(quantity, 'f', -1, 64))
		} else {
			// Pallet-authoritative change
			pallets := sign * int64(cmd.rand.Intn(2)+1)
			layers := sign * int64(cmd.rand.Intn(int(layersPerPallet)))
			totalLayers := pallets*layersPerPallet + layers
			quantity := feetPerLayer * float64(totalLayers)
			fmt.Fprintf(file, "%s,%s,%d,%d,true\n",
				v.SKU, strconv.FormatFloat(quantity, 'f', -1, 64), pallets, layers)
		}
	}

	return nil
}

// printHelp shows usage information
func (cmd *GenerateCommand) printHelp() {
	fmt.Println(`stockproj generate - Scenario generator

USAGE:
    stockproj generate [OPTIONS]

OPTIONS:
    -variants <N>       Number of variants to generate (required)
    -changes <N>        Number of change rows to generate (required)
    -stock-ratio <F>    Fraction of variants with a stock row (default: 0.9)
    -output <DIR>       Output directory for generated files (required)
    -seed <N>           Random seed for reproducible generation (optional)
    -verbose            Enable verbose output
    -help               Show this help message

EXAMPLES:
    # Generate a small test scenario
    stockproj generate -variants 20 -changes 12 -output ./test_scenario

    # Generate a large scenario with thin stock coverage
    stockproj generate -variants 500 -changes 200 -stock-ratio 0.5 -output ./large_scenario -verbose

    # Generate a reproducible scenario
    stockproj generate -variants 50 -changes 30 -output ./repro_scenario -seed 12345`)
}
