package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dbc/internal/config"
	"dbc/internal/domain"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// insertBatchSize is the number of rows sent per INSERT statement
const insertBatchSize = 500

var columns = []string{
	"test_id",
	"method_id",
	"method_role",
	"method_modifiers",
	"methods_header",
	"fully_qualified_name",
	"start_line",
	"end_line",
}

// MySQLExporter writes each subject's dataset into its own MySQL table
type MySQLExporter struct {
	config *config.Config
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLExporter validates the DSN, connects and pings the server
func NewMySQLExporter(cfg *config.Config, logger *zap.Logger) (*MySQLExporter, error) {
	if cfg.MySQLDSN == "" {
		return nil, errors.New("mysql export requires mysql_dsn or DBC_MYSQL_DSN")
	}
	dsn, err := mysql.ParseDSN(cfg.MySQLDSN)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	if dsn.DBName == "" {
		return nil, errors.New("mysql dsn must name a database")
	}

	connector, err := mysql.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &MySQLExporter{config: cfg, db: db, logger: logger}, nil
}

// Close closes the database connection
func (e *MySQLExporter) Close() error {
	return e.db.Close()
}

// Export replaces the subject's table with the given records
func (e *MySQLExporter) Export(subject string, records []domain.OutputRecord) error {
	table := e.config.GetTableName(subject)
	if !isValidTableName(table) {
		return fmt.Errorf("invalid table name: %s", table)
	}

	ctx := context.Background()
	// DDL commits implicitly in MySQL, so it runs outside the insert transaction
	if _, err := e.db.ExecContext(ctx, dropTableSQL(table)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}
	if _, err := e.db.ExecContext(ctx, createTableSQL(table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for start := 0; start < len(records); start += insertBatchSize {
		end := min(start+insertBatchSize, len(records))
		batch := records[start:end]
		if _, err := tx.ExecContext(ctx, insertSQL(table, len(batch)), insertArgs(batch)...); err != nil {
			return fmt.Errorf("failed to insert rows %d-%d into %s: %w", start, end, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}

	e.logger.Info("Exported subject", zap.String("subject", subject), zap.String("table", table), zap.Int("rows", len(records)))
	return nil
}

func dropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS `%s`", table)
}

func createTableSQL(table string) string {
	return fmt.Sprintf("CREATE TABLE `%s` ("+
		"`id` INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY, "+
		"`test_id` VARCHAR(255) NOT NULL, "+
		"`method_id` VARCHAR(255) NOT NULL, "+
		"`method_role` VARCHAR(255) NOT NULL, "+
		"`method_modifiers` VARCHAR(255) NOT NULL, "+
		"`methods_header` TEXT NOT NULL, "+
		"`fully_qualified_name` TEXT NOT NULL, "+
		"`start_line` VARCHAR(32) NOT NULL, "+
		"`end_line` VARCHAR(32) NOT NULL, "+
		"KEY `idx_test_id` (`test_id`), "+
		"KEY `idx_method_id` (`method_id`)"+
		") DEFAULT CHARSET=utf8mb4", table)
}

func insertSQL(table string, rows int) string {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	values := make([]string, rows)
	for i := range values {
		values[i] = placeholder
	}
	return fmt.Sprintf("INSERT INTO `%s` (`%s`) VALUES %s",
		table, strings.Join(columns, "`, `"), strings.Join(values, ", "))
}

func insertArgs(records []domain.OutputRecord) []any {
	args := make([]any, 0, len(records)*len(columns))
	for _, record := range records {
		for _, field := range record.Row() {
			args = append(args, field)
		}
	}
	return args
}

// isValidTableName rejects names that cannot be safely backtick-quoted
func isValidTableName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	return !strings.ContainsAny(name, "`'\";/\\\x00")
}
