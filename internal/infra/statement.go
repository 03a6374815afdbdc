package infra

// statement.go — raw statement routing.
// Repositories tag every raw SQL operation with an explicit Kind instead of
// letting the storage layer sniff the statement text. Reads come back as a
// row sequence; writes come back as a normalized WriteResult, so no caller
// ever touches the driver's native result shapes.

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Kind tags a statement as a read or a write. The tag decides the execution
// path and the result shape — it is never inferred from the SQL text.
type Kind int

const (
	KindRead Kind = iota
	KindWrite
)

// Statement is a query template plus positional parameters.
type Statement struct {
	Kind Kind
	SQL  string
	Args []any
}

func Read(sql string, args ...any) Statement {
	return Statement{Kind: KindRead, SQL: sql, Args: args}
}

func Write(sql string, args ...any) Statement {
	return Statement{Kind: KindWrite, SQL: sql, Args: args}
}

// WriteResult is the normalized outcome of every write statement.
// InsertID is 0 when not applicable (updates, deletes).
type WriteResult struct {
	AffectedRows int64
	InsertID     int64
}

// Runner executes tagged statements against the shared storage handle.
type Runner struct {
	db *gorm.DB
}

func NewRunner(db *gorm.DB) *Runner { return &Runner{db: db} }

// Query runs a read statement and returns the rows as column→value maps.
// Calling Query with a write-tagged statement is a programming error.
func (r *Runner) Query(ctx context.Context, stmt Statement) ([]map[string]any, error) {
	if stmt.Kind != KindRead {
		return nil, fmt.Errorf("statement %q is not tagged as a read", stmt.SQL)
	}
	var rows []map[string]any
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Exec runs a write statement and returns the normalized outcome.
func (r *Runner) Exec(ctx context.Context, stmt Statement) (WriteResult, error) {
	if stmt.Kind != KindWrite {
		return WriteResult{}, fmt.Errorf("statement %q is not tagged as a write", stmt.SQL)
	}
	tx := r.db.WithContext(ctx).Exec(stmt.SQL, stmt.Args...)
	if tx.Error != nil {
		return WriteResult{}, tx.Error
	}
	res := WriteResult{AffectedRows: tx.RowsAffected}
	// last_insert_rowid() is connection-local; with a single shared
	// connection it refers to the insert that just ran.
	if isInsert(stmt.SQL) {
		var id int64
		if err := r.db.WithContext(ctx).Raw("SELECT last_insert_rowid()").Scan(&id).Error; err == nil {
			res.InsertID = id
		}
	}
	return res, nil
}

// isInsert only decides whether fetching last_insert_rowid() is meaningful;
// it never influences read/write routing (that is the caller's Kind tag).
func isInsert(sql string) bool {
	s := strings.TrimSpace(sql)
	return len(s) >= 6 && strings.EqualFold(s[:6], "INSERT")
}
