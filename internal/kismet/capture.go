// Package kismet reads Kismet .kismet capture databases.
package kismet

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers "sqlite"
)

// Driver names a database/sql SQLite driver.
type Driver string

const (
	// DriverCgo is mattn/go-sqlite3.
	DriverCgo Driver = "sqlite3"
	// DriverPure is modernc.org/sqlite, usable in CGO_ENABLED=0 builds.
	DriverPure Driver = "sqlite"

	DefaultDriver = DriverCgo
)

// ParseDriver validates a driver name; empty selects DefaultDriver.
func ParseDriver(raw string) (Driver, error) {
	switch d := Driver(strings.TrimSpace(raw)); d {
	case "":
		return DefaultDriver, nil
	case DriverCgo, DriverPure:
		return d, nil
	default:
		return "", fmt.Errorf("unknown sqlite driver %q (choose from %s, %s)", raw, DriverCgo, DriverPure)
	}
}

// Capture is an open, read-only Kismet capture.
type Capture struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// Open opens the capture at path read-only. Kismet may still be writing to it.
func Open(ctx context.Context, path string, driver Driver, logger *zap.Logger) (*Capture, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if driver == "" {
		driver = DefaultDriver
	}

	dsn := "file:" + uriEscaper.Replace(path) + "?mode=ro"
	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping capture: %w", err)
	}

	logger.Debug("capture opened", zap.String("path", path), zap.String("driver", string(driver)))

	return &Capture{db: db, path: path, logger: logger}, nil
}

func (c *Capture) Path() string {
	return c.path
}

func (c *Capture) Close() error {
	return c.db.Close()
}
