package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Session pins one pooled connection and at most one transaction.
// A Session must not be used from several goroutines at once.
type Session struct {
	conn *sql.Conn
	tx   *sql.Tx
}

// InTransaction reports whether a transaction is open on the session.
func (s *Session) InTransaction() bool {
	return s != nil && s.tx != nil
}

// GetConnection reserves a connection from the pool.
func (d *DB) GetConnection(ctx context.Context) (*Session, error) {
	if d.db == nil {
		return nil, ErrNotConnected
	}
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}
	return &Session{conn: conn}, nil
}

// InitTransaction begins a transaction on s.
func (d *DB) InitTransaction(ctx context.Context, s *Session) error {
	if s == nil || s.conn == nil {
		return ErrSessionClosed
	}
	if s.tx != nil {
		return ErrTransactionActive
	}
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	s.tx = tx
	d.logger.Debug("transaction started")
	return nil
}

// Commit commits the open transaction of s.
func (d *DB) Commit(s *Session) error {
	if !s.InTransaction() {
		return ErrNoTransaction
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	d.logger.Debug("transaction committed")
	return nil
}

// Rollback aborts the open transaction of s.
func (d *DB) Rollback(s *Session) error {
	if !s.InTransaction() {
		return ErrNoTransaction
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	d.logger.Debug("transaction rolled back")
	return nil
}

// Close returns the connection of s to the pool, rolling back any open
// transaction first. Closing a closed session is a no-op.
func (d *DB) Close(s *Session) error {
	if s == nil || s.conn == nil {
		return nil
	}
	if s.tx != nil {
		if err := d.Rollback(s); err != nil {
			d.logger.Warn("rollback on close failed", slog.Any("error", err))
		}
	}
	conn := s.conn
	s.conn = nil
	return conn.Close()
}

// executor is implemented by *sql.DB, *sql.Conn and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// executor picks the transaction, the pinned connection, or the pool.
func (d *DB) executor(s *Session) (executor, error) {
	switch {
	case s == nil:
		if d.db == nil {
			return nil, ErrNotConnected
		}
		return d.db, nil
	case s.tx != nil:
		return s.tx, nil
	case s.conn != nil:
		return s.conn, nil
	default:
		return nil, ErrSessionClosed
	}
}
