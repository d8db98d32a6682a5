package models

import "github.com/shopspring/decimal"

// Status is the lifecycle state of a trade. A trade starts open and
// transitions to closed exactly once.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Trade is a single journaled position.
type Trade struct {
	ID         int64
	Symbol     string
	EntryPrice decimal.Decimal
	Size       decimal.Decimal
	Strategy   string
	Status     Status
	ExitPrice  decimal.Decimal // zero until the trade is closed
	PnL        decimal.Decimal // zero until the trade is closed
}

func (t *Trade) IsOpen() bool { return t.Status == StatusOpen }

func (t *Trade) IsClosed() bool { return t.Status == StatusClosed }

// Stats aggregates the closed portion of the ledger.
type Stats struct {
	TotalClosed int
	TotalPnL    decimal.Decimal
	WinCount    int
}

// WinRate returns the percentage of winning closed trades, 0 when nothing
// has been closed yet.
func (s *Stats) WinRate() float64 {
	if s.TotalClosed == 0 {
		return 0
	}
	return float64(s.WinCount) / float64(s.TotalClosed) * 100
}

// AvgPnL returns the mean PnL over closed trades, zero when none exist.
func (s *Stats) AvgPnL() decimal.Decimal {
	if s.TotalClosed == 0 {
		return decimal.Zero
	}
	return s.TotalPnL.Div(decimal.NewFromInt(int64(s.TotalClosed)))
}
