package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/sbilibin2017/gw-inventory-store/internal/dbtx"
	"github.com/sbilibin2017/gw-inventory-store/internal/logger"
	"github.com/sbilibin2017/gw-inventory-store/internal/repositories"
	"github.com/sbilibin2017/gw-inventory-store/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the tool
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// order is an optional stock move applied before the report is taken.
type order struct {
	refund   bool
	userID   string
	itemID   string
	quantity int
}

func main() {
	printBuildInfo(os.Stderr)
	configPath, o := parseFlags()

	logLevel, pgHost, pgPort, pgUser, pgPassword, pgDB, pgSSLMode,
		pgMaxOpenConns, pgMaxIdleConns, lowStockThreshold,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), os.Stdout,
		logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB, pgSSLMode,
		pgMaxOpenConns, pgMaxIdleConns,
		lowStockThreshold, o,
	); err != nil {
		log.Fatalf("inventory report failed: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo(w io.Writer) {
	fmt.Fprintf(w, "Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path
// and the requested stock move, if any.
func parseFlags() (string, order) {
	c := flag.String("c", "config.env", "Path to configuration file")
	var o order
	flag.StringVar(&o.itemID, "item", "", "Item ID to purchase or refund before reporting")
	flag.StringVar(&o.userID, "user", "", "User ID the move is recorded for")
	flag.IntVar(&o.quantity, "qty", 1, "Units to move")
	flag.BoolVar(&o.refund, "refund", false, "Refund instead of purchase")
	flag.Parse()
	return *c, o
}

// parseConfig loads environment variables from a file and returns
// the logging, database and report configuration.
func parseConfig(path string) (
	logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB, pgSSLMode string,
	pgMaxOpenConns, pgMaxIdleConns int,
	lowStockThreshold int32,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	pgSSLMode = getEnv("POSTGRES_SSLMODE", "disable")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Report config
	threshold, err := strconv.ParseInt(getEnv("LOW_STOCK_THRESHOLD", "5"), 10, 32)
	if err != nil {
		return
	}
	lowStockThreshold = int32(threshold)

	return
}

// postgresDSN builds a pgx connection URL. Credentials are escaped.
func postgresDSN(host string, port int, user, password, db, sslMode string) string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(user), url.QueryEscape(password),
		net.JoinHostPort(host, strconv.Itoa(port)), url.PathEscape(db), url.QueryEscape(sslMode))
}

// parseOrder validates o. It returns nil when no move was requested.
func parseOrder(o order) (*services.OrderRequest, error) {
	if o.itemID == "" {
		if o.userID != "" || o.refund {
			return nil, errors.New("-item is required for a stock move")
		}
		return nil, nil
	}
	if o.quantity < 1 || o.quantity > math.MaxInt32 {
		return nil, fmt.Errorf("quantity %d out of range [1, %d]", o.quantity, math.MaxInt32)
	}
	itemID, err := uuid.Parse(o.itemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item id: %w", err)
	}
	userID, err := uuid.Parse(o.userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	return &services.OrderRequest{UserID: userID, ItemID: itemID, Quantity: int32(o.quantity)}, nil
}

// run initializes the logger and the database, applies the requested stock
// move and writes the JSON report to out.
func run(ctx context.Context, out io.Writer,
	logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB, pgSSLMode string,
	pgMaxOpenConns, pgMaxIdleConns int,
	lowStockThreshold int32, o order,
) error {
	if err := logger.Initialize(logLevel); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	req, err := parseOrder(o)
	if err != nil {
		return err
	}

	logger.Log.Infow("connecting to PostgreSQL", "host", pgHost, "port", pgPort, "db", pgDB)
	db, err := sqlx.ConnectContext(ctx, "pgx", postgresDSN(pgHost, pgPort, pgUser, pgPassword, pgDB, pgSSLMode))
	if err != nil {
		return fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping PostgreSQL: %w", err)
	}

	// Initialize repositories
	itemRepo := repositories.NewItemRepository(db, dbtx.FromContext)
	transactionRepo := repositories.NewTransactionRepository(db, dbtx.FromContext)
	userRepo := repositories.NewUserRepository(db, dbtx.FromContext)

	// Initialize services
	inventory := services.NewInventoryService(itemRepo, transactionRepo, dbtx.NewRunner(db))
	reports := services.NewReportService(itemRepo, transactionRepo, userRepo)

	if req != nil {
		move := inventory.Purchase
		if o.refund {
			move = inventory.Refund
		}
		if _, err := move(ctx, *req); err != nil {
			return err
		}
	}

	report, err := reports.Snapshot(ctx, lowStockThreshold)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
