package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"journal_bot/internal/models"
)

// DefaultRecentLimit bounds /view output.
const DefaultRecentLimit = 10

// Store owns the persistent trade ledger. A single long-lived connection is
// shared by the one writer path; busy_timeout covers stray readers.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite ledger at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// AddTrade inserts a new open trade. Entry price and size must be strictly
// positive.
func (s *Store) AddTrade(ctx context.Context, symbol string, entry, size decimal.Decimal, strategy string) (*models.Trade, error) {
	if !entry.IsPositive() {
		return nil, &ValidationError{Field: "entry price", Reason: "must be positive"}
	}
	if !size.IsPositive() {
		return nil, &ValidationError{Field: "size", Reason: "must be positive"}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO trades (symbol, entry_price, size, strategy, status) VALUES (?, ?, ?, ?, ?)`,
		symbol, entry.InexactFloat64(), size.InexactFloat64(), strategy, string(models.StatusOpen))
	if err != nil {
		return nil, fmt.Errorf("insert trade: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("trade id: %w", err)
	}

	return &models.Trade{
		ID:         id,
		Symbol:     symbol,
		EntryPrice: entry,
		Size:       size,
		Strategy:   strategy,
		Status:     models.StatusOpen,
	}, nil
}

// ListRecent returns up to limit trades, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]*models.Trade, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, symbol, entry_price, size, strategy, status, exit_price, pnl
		 FROM trades ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	defer rows.Close()

	var trades []*models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("list trades: %w", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return trades, nil
}

// FindLatestOpen returns the most recently opened trade for symbol that is
// still open (highest id wins: last in, first closed).
func (s *Store) FindLatestOpen(ctx context.Context, symbol string) (*models.Trade, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, symbol, entry_price, size, strategy, status, exit_price, pnl
		 FROM trades WHERE symbol = ? AND status = ? ORDER BY id DESC LIMIT 1`,
		symbol, string(models.StatusOpen))
	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find open trade: %w", err)
	}
	return t, nil
}

// CloseTrade transitions an open trade to closed, recording the exit price
// and PnL. The status guard in the UPDATE makes the transition atomic: a
// second close finds no open row and reports ErrNotFound.
func (s *Store) CloseTrade(ctx context.Context, id int64, exit decimal.Decimal) (*models.Trade, error) {
	t, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsOpen() {
		return nil, ErrNotFound
	}

	pnl := exit.Sub(t.EntryPrice).Mul(t.Size)

	res, err := s.db.ExecContext(ctx,
		`UPDATE trades SET status = ?, exit_price = ?, pnl = ? WHERE id = ? AND status = ?`,
		string(models.StatusClosed), exit.InexactFloat64(), pnl.InexactFloat64(), id, string(models.StatusOpen))
	if err != nil {
		return nil, fmt.Errorf("close trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("close trade: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	t.Status = models.StatusClosed
	t.ExitPrice = exit
	t.PnL = pnl
	return t, nil
}

// AggregateStats summarizes closed trades. A win is strictly positive PnL.
func (s *Store) AggregateStats(ctx context.Context) (*models.Stats, error) {
	var (
		total, wins int
		totalPnL    float64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(pnl), 0), COALESCE(SUM(pnl > 0), 0)
		 FROM trades WHERE status = ?`, string(models.StatusClosed)).
		Scan(&total, &totalPnL, &wins)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}
	return &models.Stats{
		TotalClosed: total,
		TotalPnL:    decimal.NewFromFloat(totalPnL),
		WinCount:    wins,
	}, nil
}

func (s *Store) findByID(ctx context.Context, id int64) (*models.Trade, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, symbol, entry_price, size, strategy, status, exit_price, pnl
		 FROM trades WHERE id = ?`, id)
	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find trade: %w", err)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var (
		t           models.Trade
		entry, size float64
		status      string
		exit, pnl   sql.NullFloat64
	)
	if err := row.Scan(&t.ID, &t.Symbol, &entry, &size, &t.Strategy, &status, &exit, &pnl); err != nil {
		return nil, err
	}
	t.EntryPrice = decimal.NewFromFloat(entry)
	t.Size = decimal.NewFromFloat(size)
	t.Status = models.Status(status)
	if exit.Valid {
		t.ExitPrice = decimal.NewFromFloat(exit.Float64)
	}
	if pnl.Valid {
		t.PnL = decimal.NewFromFloat(pnl.Float64)
	}
	return &t, nil
}
