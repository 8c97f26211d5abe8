package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgewood/inventory/pkg/application/services"
	"github.com/ledgewood/inventory/pkg/domain/entities"
	"github.com/ledgewood/inventory/pkg/infrastructure/events"
	"github.com/ledgewood/inventory/pkg/infrastructure/repositories/csv"
	"github.com/ledgewood/inventory/pkg/infrastructure/repositories/memory"
	"github.com/ledgewood/inventory/pkg/logger"
)

// SessionConfig holds configuration for the interactive session command
type SessionConfig struct {
	ScenarioDir  string
	VariantsFile string
	StockFile    string
	Clamp        bool
	Verbose      bool
	Help         bool
}

// SessionCommand runs an interactive inventory session over a loaded
// catalog and stock snapshot
type SessionCommand struct {
	config   SessionConfig
	defaults entities.PackingSpec
	log      *logger.Logger
	scanner  *bufio.Scanner

	variantRepo      *memory.VariantRepository
	stockRepo        *memory.StockRepository
	orderRepo        *memory.OrderRepository
	poRepo           *memory.PurchaseOrderRepository
	eventStore       events.EventStore
	stockService     *services.StockService
	orderService     *services.OrderService
	receivingService *services.ReceivingService
}

// NewSessionCommand creates a new session command with the given configuration
func NewSessionCommand(config SessionConfig, defaults entities.PackingSpec, log *logger.Logger) *SessionCommand {
	return &SessionCommand{
		config:   config,
		defaults: defaults,
		log:      log,
		scanner:  bufio.NewScanner(os.Stdin),
	}
}

// Execute runs the session command
func (c *SessionCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.printHelp()
		return nil
	}

	// Resolve file paths
	if err := c.resolveFilePaths(); err != nil {
		return fmt.Errorf("failed to resolve file paths: %w", err)
	}

	// Load repositories and wire services
	if err := c.loadRepositories(); err != nil {
		return fmt.Errorf("failed to load repositories: %w", err)
	}

	returnRepo := memory.NewReturnRepository()
	c.eventStore = events.NewInMemoryEventStore()
	c.stockService = services.NewStockService(c.variantRepo, c.stockRepo, c.eventStore, c.defaults)
	c.orderService = services.NewOrderService(c.orderRepo, c.variantRepo, c.stockService, c.eventStore, c.defaults)
	c.receivingService = services.NewReceivingService(c.poRepo, returnRepo, c.stockService, c.eventStore)

	c.log.Info().
		Str("variants_file", c.config.VariantsFile).
		Str("stock_file", c.config.StockFile).
		Bool("clamp", c.config.Clamp).
		Msg("session started")

	// Start interactive session
	return c.runInteractiveSession(ctx)
}

func (c *SessionCommand) resolveFilePaths() error {
	if c.config.ScenarioDir != "" {
		// Use scenario directory
		c.config.VariantsFile = filepath.Join(c.config.ScenarioDir, "variants.csv")
		c.config.StockFile = filepath.Join(c.config.ScenarioDir, "stock.csv")
	}

	// Validate required files exist
	requiredFiles := []string{c.config.VariantsFile, c.config.StockFile}
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

func (c *SessionCommand) loadRepositories() error {
	csvLoader := csv.NewLoader()

	variants, err := csvLoader.LoadVariants(c.config.VariantsFile)
	if err != nil {
		return fmt.Errorf("failed to load variants: %w", err)
	}
	c.variantRepo = memory.NewVariantRepository()
	if err := c.variantRepo.LoadVariants(variants); err != nil {
		return fmt.Errorf("failed to load variants into repository: %w", err)
	}

	stocks, err := csvLoader.LoadStockLevels(c.config.StockFile)
	if err != nil {
		return fmt.Errorf("failed to load stock levels: %w", err)
	}
	c.stockRepo = memory.NewStockRepository()
	if err := c.stockRepo.LoadStockLevels(stocks); err != nil {
		return fmt.Errorf("failed to load stock levels into repository: %w", err)
	}

	c.orderRepo = memory.NewOrderRepository()
	c.poRepo = memory.NewPurchaseOrderRepository()

	if c.config.Verbose {
		fmt.Printf("✅ Loaded %d variants, %d stock levels\n", len(variants), len(stocks))
	}

	return nil
}

func (c *SessionCommand) runInteractiveSession(ctx context.Context) error {
	fmt.Println("=== Inventory Session ===")
	fmt.Println("Type 'help' for available commands")
	fmt.Println()

	for {
		fmt.Print("stock> ")
		if !c.scanner.Scan() {
			break
		}

		line := strings.TrimSpace(c.scanner.Text())
		if line == "" {
			continue
		}

		if err := c.processCommand(ctx, line); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		fmt.Println()
	}

	return nil
}

func (c *SessionCommand) processCommand(ctx context.Context, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	command := parts[0]
	args := parts[1:]

	switch command {
	case "help", "h":
		c.printInteractiveHelp()
	case "adjust", "adj":
		return c.handleAdjust(ctx, args)
	case "order":
		return c.handleOrder(ctx, args)
	case "cancel":
		return c.handleCancel(ctx, args)
	case "receive":
		return c.handleReceive(ctx, args)
	case "status":
		return c.handleStatus()
	case "events":
		return c.handleShowEvents(args)
	case "movements", "moves":
		return c.handleShowMovements(args)
	case "quit", "q", "exit":
		fmt.Println("Goodbye!")
		os.Exit(0)
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", command)
	}

	return nil
}

func (c *SessionCommand) handleAdjust(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: adjust <sku> <quantity>")
	}

	sku := entities.SKU(args[0])

	quantity, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity: %s", args[1])
	}

	change := entities.StockChange{SKU: sku, Quantity: quantity}
	committed, err := c.stockService.ApplyChange(ctx, change, services.ApplyOptions{
		ClampNegative: c.config.Clamp,
		Reason:        entities.ReasonManualAdjustment,
		Reference:     "session",
	})
	if err != nil {
		return fmt.Errorf("failed to apply adjustment: %w", err)
	}

	fmt.Printf("Adjusted %s: %s on hand (%d pallets, %d layers)\n",
		committed.SKU, committed.Quantity.String(), committed.Pallets, committed.Layers)
	if committed.IsOversold() {
		fmt.Printf("⚠️  %s is oversold\n", committed.SKU)
	}
	return nil
}

func (c *SessionCommand) handleOrder(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: order <number> <customer> <sku> <quantity>")
	}

	number := args[0]
	customer := args[1]
	sku := entities.SKU(args[2])

	quantity, err := decimal.NewFromString(args[3])
	if err != nil {
		return fmt.Errorf("invalid quantity: %s", args[3])
	}

	order, err := entities.NewCustomerOrder(number, customer)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	order.AddLine(entities.OrderLine{SKU: sku, Quantity: quantity})

	if err := c.orderService.PlaceOrder(ctx, order, c.config.Clamp); err != nil {
		return fmt.Errorf("failed to place order: %w", err)
	}

	placed, err := c.orderRepo.GetByNumber(number)
	if err != nil {
		return fmt.Errorf("failed to read back order: %w", err)
	}

	line := placed.Lines[0]
	fmt.Printf("Placed order %s for %s: %s %s (%d pallets, %d layers)\n",
		number, customer, line.Quantity.String(), line.SKU, line.Pallets, line.Layers)
	return nil
}

func (c *SessionCommand) handleCancel(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cancel <order-number> [reason]")
	}

	number := args[0]
	reason := "canceled from session"
	if len(args) > 1 {
		reason = strings.Join(args[1:], " ")
	}

	if err := c.orderService.CancelOrder(ctx, number, reason); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	fmt.Printf("Canceled order %s (%s); reserved stock restored\n", number, reason)
	return nil
}

func (c *SessionCommand) handleReceive(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: receive <po-number> <manufacturer> <sku> <quantity> [unit-cost]")
	}

	number := args[0]
	manufacturer := args[1]
	sku := entities.SKU(args[2])

	quantity, err := decimal.NewFromString(args[3])
	if err != nil {
		return fmt.Errorf("invalid quantity: %s", args[3])
	}

	unitCost := decimal.Zero
	if len(args) > 4 {
		unitCost, err = decimal.NewFromString(args[4])
		if err != nil {
			return fmt.Errorf("invalid unit cost: %s", args[4])
		}
	}

	variant, err := c.variantRepo.GetBySKU(sku)
	if err != nil {
		return fmt.Errorf("failed to look up variant: %w", err)
	}

	line, err := entities.NewPurchaseOrderLine(sku, variant.Description, variant.Unit, quantity, unitCost)
	if err != nil {
		return fmt.Errorf("failed to create purchase order line: %w", err)
	}

	po, err := entities.NewPurchaseOrder(number, manufacturer, time.Now())
	if err != nil {
		return fmt.Errorf("failed to create purchase order: %w", err)
	}
	po.AddLine(*line)

	if err := c.poRepo.Save(po); err != nil {
		return fmt.Errorf("failed to save purchase order: %w", err)
	}

	if err := c.receivingService.ReceivePurchaseOrder(ctx, number); err != nil {
		return fmt.Errorf("failed to receive purchase order: %w", err)
	}

	fmt.Printf("Received %s: %s %s from %s\n", number, quantity.String(), sku, manufacturer)
	return nil
}

func (c *SessionCommand) handleStatus() error {
	levels, err := c.stockRepo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to read stock levels: %w", err)
	}

	fmt.Printf("=== Stock Status ===\n")
	fmt.Printf("%-15s %14s %8s %7s\n", "SKU", "Quantity", "Pallets", "Layers")
	for _, level := range levels {
		marker := ""
		if level.IsOversold() {
			marker = "  ⚠️ oversold"
		}
		fmt.Printf("%-15s %14s %8d %7d%s\n",
			level.SKU, level.Quantity.String(), level.Pallets, level.Layers, marker)
	}

	allEvents, err := c.eventStore.ReadAllEvents()
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	fmt.Printf("\nTotal events recorded: %d\n", len(allEvents))

	eventCounts := make(map[string]int)
	for _, event := range allEvents {
		eventCounts[event.Type()]++
	}

	if len(eventCounts) > 0 {
		fmt.Printf("\nEvent counts by type:\n")
		for eventType, count := range eventCounts {
			fmt.Printf("  %s: %d\n", eventType, count)
		}
	}

	return nil
}

func (c *SessionCommand) handleShowEvents(args []string) error {
	limit := 10 // Default limit
	if len(args) > 0 {
		if l, err := strconv.Atoi(args[0]); err == nil {
			limit = l
		}
	}

	allEvents, err := c.eventStore.ReadAllEvents()
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	fmt.Printf("=== Recent Events (last %d) ===\n", limit)
	start := len(allEvents) - limit
	if start < 0 {
		start = 0
	}

	for i := start; i < len(allEvents); i++ {
		event := allEvents[i]
		fmt.Printf("[%s] %s -> %s\n",
			event.Timestamp().Format("15:04:05"),
			event.Type(),
			event.StreamID())
	}

	return nil
}

func (c *SessionCommand) handleShowMovements(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: movements <sku>")
	}

	sku := entities.SKU(args[0])
	movements, err := c.stockRepo.GetMovements(sku)
	if err != nil {
		return fmt.Errorf("failed to read movements: %w", err)
	}

	if len(movements) == 0 {
		fmt.Printf("No movements recorded for %s\n", sku)
		return nil
	}

	fmt.Printf("=== Movements for %s ===\n", sku)
	for _, m := range movements {
		clamped := ""
		if m.Clamped {
			clamped = " (clamped)"
		}
		fmt.Printf("[%s] %s %s: %s -> %s on hand%s\n",
			m.OccurredAt.Format("15:04:05"),
			m.Reason, m.Reference,
			m.Quantity.String(), m.NewQuantity.String(), clamped)
	}

	return nil
}

func (c *SessionCommand) printHelp() {
	fmt.Println(`stockproj session - Interactive inventory session

USAGE:
    stockproj session [OPTIONS]

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -variants <file>    Path to variants CSV file
    -stock <file>       Path to stock levels CSV file
    -clamp              Floor stored quantities at zero instead of going negative
    -verbose            Enable verbose output
    -help               Show this help message

DESCRIPTION:
    Starts an interactive session over the loaded catalog and stock
    snapshot. Adjust stock, place and cancel orders, receive purchase
    orders, and inspect the movement and event trail as you go. Nothing
    is written back to the CSV files.`)
}

func (c *SessionCommand) printInteractiveHelp() {
	fmt.Println(`Available commands:

  adjust <sku> <quantity>
      Apply a signed manual stock adjustment
      Example: adjust FLR-OAK-5 -300

  order <number> <customer> <sku> <quantity>
      Place a single-line customer order and deduct its stock
      Example: order SO-1001 BAYSIDE FLR-OAK-5 250

  cancel <order-number> [reason]
      Cancel a placed order and restore its stock
      Example: cancel SO-1001 customer changed mind

  receive <po-number> <manufacturer> <sku> <quantity> [unit-cost]
      Record a purchase order and receive it into stock
      Example: receive PO-77 ACME FLR-OAK-5 1000 2.80

  status
      Show current stock levels and event counts

  events [limit]
      Show recent events (default: 10)
      Example: events 20

  movements <sku>
      Show the movement trail for a variant
      Example: movements FLR-OAK-5

  help, h
      Show this help message

  quit, q, exit
      Exit the session`)
}
