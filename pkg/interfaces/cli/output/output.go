package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ledgewood/inventory/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format         string
	OutputDir      string
	Verbose        bool
	ProjectionTime time.Duration
	InputFiles     map[string]string
}

// Generate creates output in the specified format
func Generate(result *dto.ImpactResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "html":
		return generateHTMLOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.ImpactResult, config Config) error {
	fmt.Printf("📊 Stock Impact Summary\n")
	fmt.Printf("=======================\n\n")

	fmt.Printf("Projections: %d\n", len(result.Projections))
	fmt.Printf("Transient Lines: %d\n", len(result.Transient))
	fmt.Printf("Oversold Variants: %d\n", len(result.OversoldSKUs()))
	fmt.Printf("Projection Time: %v\n\n", config.ProjectionTime)

	if len(result.Projections) > 0 {
		fmt.Printf("📦 Projected Stock Levels:\n")
		fmt.Printf("%-15s %-12s %12s %12s %12s %14s\n",
			"SKU", "Unit", "Current", "Change", "Projected", "Pallets/Layers")
		fmt.Printf("%-15s %-12s %12s %12s %12s %14s\n",
			"---------------", "------------", "------------", "------------", "------------", "--------------")

		for _, p := range result.Projections {
			fmt.Printf("%-15s %-12s %12s %12s %12s %11d/%-2d\n",
				p.SKU,
				p.Unit,
				p.Current.Quantity,
				p.Change.Quantity,
				p.Projected.Quantity,
				p.Projected.Pallets,
				p.Projected.Layers)
		}
		fmt.Println()
	}

	if oversold := result.OversoldSKUs(); len(oversold) > 0 {
		fmt.Printf("⚠️  Oversold Variants:\n")
		for _, sku := range oversold {
			p, _ := result.ProjectionFor(sku)
			fmt.Printf("  %s projects to %s (%d pallets + %d layers)\n",
				sku, p.Projected.Quantity, p.Projected.Pallets, p.Projected.Layers)
		}
		fmt.Println()
	}

	if len(result.Transient) > 0 {
		fmt.Printf("📋 Transient Lines (not projected):\n")
		fmt.Printf("%-15s %-12s %12s  %s\n", "SKU", "Unit", "Quantity", "Note")
		fmt.Printf("%-15s %-12s %12s  %s\n", "---------------", "------------", "------------", "----")

		for _, line := range result.Transient {
			fmt.Printf("%-15s %-12s %12s  %s\n", line.SKU, line.Unit, line.Quantity, line.Note)
		}
		fmt.Println()
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("💬 Warnings:\n")
		for _, warning := range result.Warnings {
			fmt.Printf("  %s\n", warning)
		}
		fmt.Println()
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.ImpactResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "impact_results.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 JSON results saved to: %s\n", filename)
	}

	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(result *dto.ImpactResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	projectionsFile := filepath.Join(config.OutputDir, "projections.csv")
	if err := writeProjectionsCSV(result.Projections, projectionsFile); err != nil {
		return fmt.Errorf("failed to write projections CSV: %w", err)
	}

	transientFile := filepath.Join(config.OutputDir, "transient_lines.csv")
	if err := writeTransientCSV(result.Transient, transientFile); err != nil {
		return fmt.Errorf("failed to write transient lines CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 CSV results saved to:\n")
		fmt.Printf("  Projections: %s\n", projectionsFile)
		fmt.Printf("  Transient Lines: %s\n", transientFile)
	}

	return nil
}

// generateHTMLOutput renders the standalone HTML impact report
func generateHTMLOutput(result *dto.ImpactResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for HTML format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	report := NewHTMLReport()
	html, err := report.Render(result, config)
	if err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "impact_report.html")
	if err := os.WriteFile(filename, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 HTML report saved to: %s\n", filename)
	}

	return nil
}

func writeProjectionsCSV(projections []dto.StockProjection, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"sku", "description", "unit",
		"current_quantity", "current_pallets", "current_layers",
		"change_quantity", "change_pallets", "change_layers",
		"projected_quantity", "projected_pallets", "projected_layers",
		"oversold",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, p := range projections {
		record := []string{
			string(p.SKU),
			p.Description,
			string(p.Unit),
			p.Current.Quantity.String(),
			strconv.FormatInt(p.Current.Pallets, 10),
			strconv.FormatInt(p.Current.Layers, 10),
			p.Change.Quantity.String(),
			strconv.FormatInt(p.Change.Pallets, 10),
			strconv.FormatInt(p.Change.Layers, 10),
			p.Projected.Quantity.String(),
			strconv.FormatInt(p.Projected.Pallets, 10),
			strconv.FormatInt(p.Projected.Layers, 10),
			strconv.FormatBool(p.Oversold),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeTransientCSV(lines []dto.TransientLine, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"sku", "unit", "quantity", "note"}); err != nil {
		return err
	}

	for _, line := range lines {
		record := []string{
			string(line.SKU),
			string(line.Unit),
			line.Quantity.String(),
			line.Note,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}
