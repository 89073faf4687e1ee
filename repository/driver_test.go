package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
)

// stubDriver backs repository tests: its statements either fail with a fixed
// error or record the arguments they were executed with.
type stubDriver struct {
	err error
	rec *execRecorder
}

type execRecorder struct {
	execs [][]driver.Value
}

func (d *stubDriver) Open(string) (driver.Conn, error) {
	return &stubConn{d: d}, nil
}

type stubConn struct{ d *stubDriver }

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	if c.d.err != nil {
		return nil, c.d.err
	}
	return &stubStmt{d: c.d}, nil
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	if c.d.err != nil {
		return nil, c.d.err
	}
	return stubTx{}, nil
}

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubStmt struct{ d *stubDriver }

func (s *stubStmt) Close() error  { return nil }
func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec(args []driver.Value) (driver.Result, error) {
	if s.d.rec != nil {
		cp := make([]driver.Value, len(args))
		copy(cp, args)
		s.d.rec.execs = append(s.d.rec.execs, cp)
	}
	return driver.RowsAffected(1), nil
}

func (s *stubStmt) Query([]driver.Value) (driver.Rows, error) {
	return nil, errors.New("stub driver has no rows")
}

var (
	quotaDriverErr = errors.New("ERROR: could not extend file (SQLSTATE 53100)")
	recordedExecs  = &execRecorder{}
)

func init() {
	sql.Register("repo-quota-fail", &stubDriver{err: quotaDriverErr})
	sql.Register("repo-record", &stubDriver{rec: recordedExecs})
}

func openStubDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open(name, "")
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
