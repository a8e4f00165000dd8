package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const defaultTimeout = 30 * time.Second

// setupLogger настраивает формат и уровень логирования для CLI.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: storefront [-store memory|postgres] <command> [flags]

commands:
  add-customer     -name <name> [-contact <contact>] [-address <address>]
  update-customer  -id <id> [-name <name>] [-contact <contact>] [-address <address>]
  delete-customer  -id <id>
  add-product      -name <name> -price <price> -stock <stock>
  update-stock     -id <id> -delta <signed delta>
  delete-product   -id <id>
  create-order     -customer <id> -items <product:qty[,product:qty...]>
  update-order     -id <id> -items <product:qty[,product:qty...]>
  delete-order     -id <id>

-store overrides STOREFRONT_STORE; the DSN comes from STOREFRONT_POSTGRES_DSN`)
	os.Exit(2)
}

func main() {
	setupLogger()

	global := flag.NewFlagSet("storefront", flag.ExitOnError)
	store := global.String("store", "", "storage driver: memory|postgres (default: STOREFRONT_STORE)")
	if err := global.Parse(os.Args[1:]); err != nil || global.NArg() < 1 {
		usage()
	}
	command := global.Arg(0)
	args := global.Args()[1:]

	cfg := app.LoadConfigFromEnv()
	if *store != "" {
		cfg.StorageDriver = app.StorageDriver(strings.ToLower(strings.TrimSpace(*store)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	deps, err := app.NewDependencies(ctx, cfg, log.WithField("component", "cli"))
	if err != nil {
		fail("init dependencies: %v", err)
	}
	defer deps.Close()

	switch command {
	case "add-customer":
		runAddCustomer(ctx, deps, args)
	case "update-customer":
		runUpdateCustomer(ctx, deps, args)
	case "delete-customer":
		runDeleteCustomer(ctx, deps, args)
	case "add-product":
		runAddProduct(ctx, deps, args)
	case "update-stock":
		runUpdateStock(ctx, deps, args)
	case "delete-product":
		runDeleteProduct(ctx, deps, args)
	case "create-order":
		runCreateOrder(ctx, deps, args)
	case "update-order":
		runUpdateOrder(ctx, deps, args)
	case "delete-order":
		runDeleteOrder(ctx, deps, args)
	default:
		usage()
	}
}

func runAddCustomer(ctx context.Context, deps *app.Dependencies, args []string) {
	fs := flag.NewFlagSet("add-customer", flag.ExitOnError)
	name := fs.String("name", "", "customer name (required)")
	contact := fs.String("contact", "", "contact info")
	address := fs.String("address", "", "address")
	parse(fs, args)

	id, err := deps.Catalog.AddCustomer(ctx, *name, *contact, *address)
	if err != nil {
		fail("add customer: %v", err)
	}
	fmt.Printf("customer added: id=%d\n", id)
}

func runUpdateCustomer(ctx context.Context, deps *app.Dependencies, args []string) {
	fs := flag.NewFlagSet("update-customer", flag.ExitOnError)
	id := fs.Int64("id", 0, "customer id (required)")
	name := fs.String("name", "", "new name")
	contact := fs.String("contact", "", "new contact")
	address := fs.String("address", "", "new address")
	parse(fs, args)

	// В патч попадают только явно переданные флаги.
	var patch domain.CustomerPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "contact":
			patch.Contact = contact
		case "address":
			patch.Address = address
		}
	})

	if err := deps.Catalog.UpdateCustomer(ctx, *id, patch); err != nil {
		fail("update customer: %v", err)
	}
	fmt.Printf("customer updated: id=%d\n", *id)
}

func runDeleteCustomer(ctx context.Context, deps *app.Dependencies, args []string) {
	fs := flag.NewFlagSet("delete-customer", flag.ExitOnError)
	id := fs.Int64("id", 0, "customer id (required)")
	parse(fs, args)

	if err := deps.Catalog.DeleteCustomer(ctx, *id); err != nil {
		fail("delete customer: %v", err)
	}
	fmt.Printf("customer deleted with related records: id=%d\n", *id)
}

func runAddProduct(ctx context.Context, deps *app.Dependencies, args []string) {
	fs := flag.NewFlagSet("add-product", flag.ExitOnError)
	name := fs.String("name", "", "product name (required)")
	price := fs.Float64("price", 0, "unit price (required)")
	stock := fs.Int("stock", 0, "initial stock (required)")
	parse(fs, args)

	id, err := deps.Catalog.AddProduct(ctx, *name, *price, int32(*stock))
	if err != nil {
		fail("add product: %v", err)
	}
	fmt.Printf("product added: id=%d\n", id)
}

func runUpdateStock(ctx context.Context, deps *app.Dependencies, args []string) {
	fs := flag.NewFlagSet("update-stock", flag.ExitOnError)
	id := fs.Int64("id", 0, "product id (required)")
	delta := fs.Int("delta", 0, "signed stock delta (required)")
	parse(fs, args)

	if err := deps.Catalog.UpdateProductStock(ctx, *id, int32(*delta)); err != nil {
		fail("update product stock: %v", err)
	}
	fmt.Printf("product stock updated: id=%d delta=%+d\n", *id, *delta)
}

func runDeleteProduct(ctx context.Context, deps *app.Dependencies, args []string) {
	fs := flag.NewFlagSet("delete-product", flag.ExitOnError)
	id := fs.Int64("id", 0, "product id (required)")
	parse(fs, args)

	if err := deps.Catalog.DeleteProduct(ctx, *id); err != nil {
		fail("delete product: %v", err)
	}
	fmt.Printf("product deleted with related records: id=%d\n", *id)
}

func runCreateOrder(ctx context.Context, deps *app.Dependencies, args []string) {
	fs := flag.NewFlagSet("create-order", flag.ExitOnError)
	customerID := fs.Int64("customer", 0, "customer id (required)")
	itemsSpec := fs.String("items", "", "line items as product:qty[,product:qty...] (required)")
	parse(fs, args)

	items, err := parseLineItems(*itemsSpec)
	if err != nil {
		fail("parse items: %v", err)
	}

	orderID, err := deps.Orders.CreateOrder(ctx, *customerID, items)
	if err != nil {
		fail("create order: %v", err)
	}
	fmt.Printf("order created with all items processed: id=%d\n", orderID)
}

func runUpdateOrder(ctx context.Context, deps *app.Dependencies, args []string) {
	fs := flag.NewFlagSet("update-order", flag.ExitOnError)
	id := fs.Int64("id", 0, "order id (required)")
	itemsSpec := fs.String("items", "", "line items as product:qty[,product:qty...] (required)")
	parse(fs, args)

	items, err := parseLineItems(*itemsSpec)
	if err != nil {
		fail("parse items: %v", err)
	}

	if err := deps.Orders.UpdateOrderDetails(ctx, *id, items); err != nil {
		fail("update order: %v", err)
	}
	fmt.Printf("order updated: id=%d\n", *id)
}

func runDeleteOrder(ctx context.Context, deps *app.Dependencies, args []string) {
	fs := flag.NewFlagSet("delete-order", flag.ExitOnError)
	id := fs.Int64("id", 0, "order id (required)")
	parse(fs, args)

	if err := deps.Orders.DeleteOrder(ctx, *id); err != nil {
		fail("delete order: %v", err)
	}
	fmt.Printf("order deleted: id=%d\n", *id)
}

// parseLineItems разбирает позиции вида "1:4,2:1" в структурный вид.
func parseLineItems(spec string) ([]domain.LineItem, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("items are required")
	}

	parts := strings.Split(spec, ",")
	items := make([]domain.LineItem, 0, len(parts))
	for _, part := range parts {
		pair := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(pair) != 2 {
			return nil, fmt.Errorf("invalid item %q, expected product:qty", part)
		}
		productID, err := strconv.ParseInt(pair[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid product id in %q: %w", part, err)
		}
		qty, err := strconv.ParseInt(pair[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", part, err)
		}
		items = append(items, domain.LineItem{ProductID: productID, Quantity: int32(qty)})
	}

	return items, nil
}

func parse(fs *flag.FlagSet, args []string) {
	_ = fs.Parse(args)
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
