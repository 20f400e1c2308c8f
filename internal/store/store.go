package store

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jekabolt/edupath/internal/dependency"
	"github.com/jekabolt/edupath/internal/entity"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config defines configurations to connect database
type Config struct {
	Driver             string `mapstructure:"driver"`
	DSN                string `mapstructure:"dsn"`
	Automigrate        bool   `mapstructure:"automigrate"`
	MaxOpenConnections int    `mapstructure:"max_open_connections"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections"`
	TLSCAPath          string `mapstructure:"tls_ca_path"`
}

// SQLStore implements the portal data backend over mysql, postgres or sqlite.
type SQLStore struct {
	// db is used for executing queries
	db       dependency.DB
	txDB     txDB
	ts       time.Time
	close    context.CancelFunc
	driver   string
	notifier dependency.ChangeNotifier
	// pending holds change events raised inside a transaction until commit.
	pending *[]entity.ChangeEvent
}

type noopNotifier struct{}

func (noopNotifier) Publish(entity.ChangeEvent) {}

// registerTLSConfig registers a custom TLS configuration with the MySQL driver.
// DB_CA_CERT holds the certificate itself and wins over TLSCAPath.
func registerTLSConfig(cfg Config) error {
	var caCert []byte
	var err error

	if dbCACert := os.Getenv("DB_CA_CERT"); dbCACert != "" {
		caCert = []byte(dbCACert)
		slog.Default().Info("using CA certificate from DB_CA_CERT environment variable")
	} else if cfg.TLSCAPath != "" {
		caCert, err = os.ReadFile(cfg.TLSCAPath)
		if err != nil {
			return fmt.Errorf("failed to read CA certificate from %s: %w", cfg.TLSCAPath, err)
		}
		slog.Default().Info("using CA certificate from file", "path", cfg.TLSCAPath)
	} else {
		return nil
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return fmt.Errorf("failed to parse CA certificate")
	}

	// referenced from the DSN as tls=custom
	return mysql.RegisterTLSConfig("custom", &tls.Config{
		RootCAs: caCertPool,
	})
}

// New connects to the database, applies migrations and returns a new SQLStore object.
// Committed mutations are reported to notifier, which may be nil.
func New(ctx context.Context, cfg Config, notifier dependency.ChangeNotifier) (*SQLStore, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverMySQL
	}
	if _, err := migrationDialect(cfg.Driver); err != nil {
		return nil, err
	}
	if cfg.Driver == DriverMySQL {
		if err := registerTLSConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to register TLS config: %w", err)
		}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}

	d, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("couldn't open database : %v", err)
	}

	if cfg.MaxOpenConnections > 0 {
		d.SetMaxOpenConns(cfg.MaxOpenConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		d.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	if cfg.Driver != DriverSQLite {
		d.SetConnMaxLifetime(2 * time.Minute)
		d.SetConnMaxIdleTime(30 * time.Second)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()
	if err := d.PingContext(pingCtx); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Automigrate {
		slog.Default().InfoContext(ctx, "applying migrations",
			slog.String("driver", cfg.Driver),
		)
		migrateCtx, migrateCancel := context.WithTimeout(ctx, 5*time.Minute)
		defer migrateCancel()
		if err := MigrateWithContext(migrateCtx, d.DB, cfg.Driver); err != nil {
			d.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	ctx, c := context.WithCancel(ctx)
	ss := &SQLStore{
		db:       d,
		close:    c,
		driver:   cfg.Driver,
		notifier: notifier,
	}

	go func() {
		<-ctx.Done()
		d.Close()
	}()

	return ss, nil
}

//go:embed sql
var fs embed.FS

func migrationDialect(driver string) (string, error) {
	switch driver {
	case DriverMySQL:
		return "mysql", nil
	case DriverPostgres:
		return "postgres", nil
	case DriverSQLite:
		return "sqlite3", nil
	}
	return "", fmt.Errorf("unsupported db driver %q", driver)
}

// Migrate applies the embedded migrations of the driver's dialect.
func Migrate(db *sql.DB, driver string) error {
	return MigrateWithContext(context.Background(), db, driver)
}

func MigrateWithContext(ctx context.Context, db *sql.DB, driver string) error {
	dialect, err := migrationDialect(driver)
	if err != nil {
		return err
	}
	m := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: fs,
		Root:       "sql/" + driver,
	}

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := migrate.Exec(db, dialect, m, migrate.Up)
		done <- result{n: n, err: err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("migration timeout: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return fmt.Errorf("db migrations have failed: %w", res.err)
		}
		slog.Default().InfoContext(ctx, "applied migrations",
			slog.Int("count", res.n),
		)
		return nil
	}
}

func (ms *SQLStore) Close() {
	ms.close()
}

// Ping checks database connectivity by executing a simple query
func (ms *SQLStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result int
	err := ms.db.QueryRowxContext(ctx, "SELECT 1").Scan(&result)
	if err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

var errNoRows = sql.ErrNoRows

// Driver returns the sql driver name the store was opened with.
func (ms *SQLStore) Driver() string {
	return ms.driver
}

// emit reports a row change, deferring it to commit when inside a transaction.
func (ms *SQLStore) emit(table string, kind entity.ChangeKind, id string) {
	ev := entity.ChangeEvent{
		Table:    table,
		Kind:     kind,
		RecordId: id,
		At:       ms.Now().UTC(),
	}
	if ms.pending != nil {
		*ms.pending = append(*ms.pending, ev)
		return
	}
	ms.notifier.Publish(ev)
}

// timestamp returns the store clock at the precision every dialect keeps.
func (ms *SQLStore) timestamp() time.Time {
	return ms.Now().UTC().Truncate(timePrecision)
}

// timePrecision is the finest timestamp resolution shared by every dialect.
const timePrecision = time.Microsecond

// emitFrom reports a change through the repository a transaction handed out.
func emitFrom(rep dependency.Repository, table string, kind entity.ChangeKind, id string) {
	if s, ok := rep.(*SQLStore); ok {
		s.emit(table, kind, id)
	}
}
