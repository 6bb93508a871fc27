package paramcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQLDialect selects the placeholder style used by the SQL store.
type SQLDialect string

const (
	SQLDialectPostgres SQLDialect = "postgres"
	SQLDialectMySQL    SQLDialect = "mysql"
	SQLDialectSQLite   SQLDialect = "sqlite"
)

var sqlIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type sqlStore struct {
	db      *sql.DB
	table   string
	dialect SQLDialect
}

func newSQLStore(db *sql.DB, table string, dialect SQLDialect) (Store, error) {
	if db == nil {
		return nil, errors.New("sql parameter store requires a database handle")
	}
	if !sqlIdentifier.MatchString(table) {
		return nil, fmt.Errorf("sql table name %q is not a valid identifier", table)
	}
	switch dialect {
	case SQLDialectPostgres, SQLDialectMySQL, SQLDialectSQLite:
	default:
		return nil, fmt.Errorf("unknown sql dialect %q", dialect)
	}
	return &sqlStore{db: db, table: table, dialect: dialect}, nil
}

// OpenPostgres opens a PostgreSQL handle through the pgx stdlib driver.
func OpenPostgres(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// OpenMySQL opens a MySQL handle.
func OpenMySQL(dsn string) (*sql.DB, error) {
	return sql.Open("mysql", dsn)
}

// OpenSQLite opens a SQLite handle through the cgo-free modernc driver.
func OpenSQLite(dsn string) (*sql.DB, error) {
	return sql.Open("sqlite", dsn)
}

// EnsureSQLSchema creates the parameter table when it does not exist. The
// statement is portable across the supported dialects.
func EnsureSQLSchema(ctx context.Context, db *sql.DB, table string) error {
	if !sqlIdentifier.MatchString(table) {
		return fmt.Errorf("sql table name %q is not a valid identifier", table)
	}
	_, err := db.ExecContext(ctx, fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (name VARCHAR(512) PRIMARY KEY, value TEXT NOT NULL)", table))
	return err
}

func (s *sqlStore) Driver() Driver { return DriverSQL }

func (s *sqlStore) FetchParameters(ctx context.Context, names []string, _ bool) (map[string]string, error) {
	if len(names) == 0 {
		return map[string]string{}, nil
	}
	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		placeholders[i] = s.placeholder(i)
		args[i] = name
	}
	query := fmt.Sprintf("SELECT name, value FROM %s WHERE name IN (%s)",
		s.table, strings.Join(placeholders, ", "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string, len(names))
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		values[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, name := range names {
		if _, ok := values[name]; !ok {
			return nil, fmt.Errorf("parameter %q: %w", name, ErrParameterNotFound)
		}
	}
	return values, nil
}

func (s *sqlStore) placeholder(i int) string {
	if s.dialect == SQLDialectPostgres {
		return fmt.Sprintf("$%d", i+1)
	}
	return "?"
}
