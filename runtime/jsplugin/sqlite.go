package jsplugin

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// sqliteRow is the shape handed back to plugin scripts by
// sqliteQuery: one JS object per result row, column name to value.
type sqliteRow = map[string]interface{}

// hostSqliteQuery is exposed to plugin scripts as
// `sqliteQuery(dsn, query, ...params)`, grounded on the teacher's
// pdo.SQLiteConn connection pattern (database/sql over
// modernc.org/sqlite) but simplified to a one-shot open/query/close
// since plugin calls are stateless.
func hostSqliteQuery(dsn, query string, params ...interface{}) ([]sqliteRow, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqliteQuery: open: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("sqliteQuery: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []sqliteRow
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(sqliteRow, len(cols))
		for i, c := range cols {
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// hostSqliteExec is exposed as `sqliteExec(dsn, statement, ...params)`
// for INSERT/UPDATE/DELETE/DDL, returning the number of rows affected.
func hostSqliteExec(dsn, statement string, params ...interface{}) (int64, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return 0, fmt.Errorf("sqliteExec: open: %w", err)
	}
	defer db.Close()

	res, err := db.Exec(statement, params...)
	if err != nil {
		return 0, fmt.Errorf("sqliteExec: %w", err)
	}
	return res.RowsAffected()
}
