package mocks

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
)

// NewDB returns a *sql.DB backed by a no-op driver. Transactions begin,
// commit and roll back successfully without touching any real database,
// so services that wrap their store calls in a transaction can run
// against the in-memory mock stores.
func NewDB() *sql.DB {
	return sql.OpenDB(noopConnector{})
}

type noopConnector struct{}

func (noopConnector) Connect(context.Context) (driver.Conn, error) { return &noopConn{}, nil }
func (noopConnector) Driver() driver.Driver                        { return noopDriver{} }

type noopDriver struct{}

func (noopDriver) Open(string) (driver.Conn, error) { return &noopConn{}, nil }

type noopConn struct{}

func (*noopConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("mocks: statements not supported")
}
func (*noopConn) Close() error              { return nil }
func (*noopConn) Begin() (driver.Tx, error) { return noopTx{}, nil }

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }
