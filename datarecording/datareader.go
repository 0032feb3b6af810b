package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"sort"
	"strings"
)

// QueryParams selects and pages the rows of a table.
type QueryParams struct {
	// Where is a condition without the WHERE keyword, with ? placeholders.
	Where string
	Args  []any

	// Limit caps the number of rows. Zero returns every row.
	Limit  int
	Offset int

	// OrderBy is a column list without the ORDER BY keywords.
	OrderBy string
}

// DataReader reads back tables written by a DataRecorder.
type DataReader interface {
	// MapTable declares the struct type the rows of a table are scanned
	// into. Columns are matched to fields by name.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns the names of all mapped tables, sorted.
	ListTables() []string

	// StoredTables returns the names of the tables present in the database,
	// sorted.
	StoredTables(ctx context.Context) ([]string, error)

	// Query returns the selected rows of a mapped table as pointers to its
	// struct type, and the number of rows matching params.Where.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	// Close closes the database.
	Close() error
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type sqliteReader struct {
	*sql.DB

	types map[string]reflect.Type
}

// NewReader opens the database file at path read-only.
func NewReader(path string) (DataReader, error) {
	_, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("datarecording: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("datarecording: open %s: %w", path, err)
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a DataReader on an open database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		DB:    db,
		types: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(name string, sampleEntry any) {
	if !tableName.MatchString(name) {
		panic(fmt.Sprintf("invalid table name %q", name))
	}

	r.types[name] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	tables := make([]string, 0, len(r.types))
	for table := range r.types {
		tables = append(tables, table)
	}

	sort.Strings(tables)

	return tables
}

func (r *sqliteReader) StoredTables(ctx context.Context) ([]string, error) {
	rows, err := r.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string

	for rows.Next() {
		var name string

		err = rows.Scan(&name)
		if err != nil {
			return nil, err
		}

		tables = append(tables, name)
	}

	return tables, rows.Err()
}

func (r *sqliteReader) Query(
	ctx context.Context,
	name string,
	params QueryParams,
) ([]any, int, error) {
	structType, ok := r.types[name]
	if !ok {
		return nil, 0, fmt.Errorf("no mapping found for table: %s", name)
	}

	var total int

	err := r.QueryRowContext(ctx, selectStatement("COUNT(*)", name, params, false),
		params.Args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.QueryContext(ctx, selectStatement("*", name, params, true),
		params.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	results, err := scanRows(rows, structType)
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

func selectStatement(what, table string, params QueryParams, paged bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "SELECT %s FROM %s", what, table)

	if params.Where != "" {
		sb.WriteString(" WHERE " + params.Where)
	}

	if !paged {
		return sb.String()
	}

	if params.OrderBy != "" {
		sb.WriteString(" ORDER BY " + params.OrderBy)
	}

	if params.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d OFFSET %d", params.Limit, params.Offset)
	}

	return sb.String()
}

// scanRows fills one new struct per row. Columns without a matching field are
// discarded.
func scanRows(rows *sql.Rows, structType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []any

	for rows.Next() {
		ptr := reflect.New(structType)
		targets := make([]any, len(columns))

		for i, col := range columns {
			field := ptr.Elem().FieldByName(col)
			if field.IsValid() && field.CanSet() {
				targets[i] = field.Addr().Interface()
				continue
			}

			var discard any
			targets[i] = &discard
		}

		err = rows.Scan(targets...)
		if err != nil {
			return nil, err
		}

		results = append(results, ptr.Interface())
	}

	return results, rows.Err()
}

func (r *sqliteReader) Close() error {
	return r.DB.Close()
}
