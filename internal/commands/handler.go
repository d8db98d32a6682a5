package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"journal_bot/internal/ledger"
	"journal_bot/internal/models"
)

// Ledger is the slice of the trade store the interpreter needs.
type Ledger interface {
	AddTrade(ctx context.Context, symbol string, entry, size decimal.Decimal, strategy string) (*models.Trade, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Trade, error)
	FindLatestOpen(ctx context.Context, symbol string) (*models.Trade, error)
	CloseTrade(ctx context.Context, id int64, exit decimal.Decimal) (*models.Trade, error)
	AggregateStats(ctx context.Context) (*models.Stats, error)
}

// Handler interprets journal commands against the ledger.
type Handler struct {
	ledger Ledger
	logger *zap.Logger
}

func NewHandler(ledger Ledger, logger *zap.Logger) *Handler {
	return &Handler{ledger: ledger, logger: logger}
}

const helpText = `📗 FREE Trading Journal Bot

Commands:
/add SYMBOL PRICE SIZE STRATEGY
/view - Show recent trades
/close SYMBOL EXIT_PRICE
/stats - Performance stats

Examples:
/add BTC 35000 0.1 swing
/close BTC 36000
/view
/stats`

// Handle interprets one inbound message and always produces exactly one
// reply. Errors never escape: validation, lookup and storage failures all
// collapse into user-facing text.
func (h *Handler) Handle(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)

	switch {
	case text == "/start":
		return helpText
	case strings.HasPrefix(text, "/add"):
		return h.handleAdd(ctx, text)
	case text == "/view":
		return h.handleView(ctx)
	case strings.HasPrefix(text, "/close"):
		return h.handleClose(ctx, text)
	case text == "/stats":
		return h.handleStats(ctx)
	default:
		return "❌ Unknown command. Use /start for help."
	}
}

func (h *Handler) handleAdd(ctx context.Context, text string) string {
	parts := strings.Fields(text)
	if len(parts) != 5 {
		return "❌ Use: /add SYMBOL PRICE SIZE STRATEGY\nExample: /add BTC 35000 0.1 swing"
	}

	symbol := strings.ToUpper(parts[1])
	entry, err := decimal.NewFromString(parts[2])
	if err != nil {
		return fmt.Sprintf("❌ Error: invalid price %q", parts[2])
	}
	size, err := decimal.NewFromString(parts[3])
	if err != nil {
		return fmt.Sprintf("❌ Error: invalid size %q", parts[3])
	}

	trade, err := h.ledger.AddTrade(ctx, symbol, entry, size, parts[4])
	if err != nil {
		return h.errorReply("add trade", err)
	}

	return fmt.Sprintf("✅ Trade added:\n%s @ $%s\nSize: %s\nStrategy: %s",
		trade.Symbol, trade.EntryPrice.String(), trade.Size.String(), trade.Strategy)
}

func (h *Handler) handleView(ctx context.Context) string {
	trades, err := h.ledger.ListRecent(ctx, ledger.DefaultRecentLimit)
	if err != nil {
		return h.errorReply("list trades", err)
	}
	if len(trades) == 0 {
		return "📭 No trades found"
	}

	var sb strings.Builder
	sb.WriteString("📋 Recent Trades:\n\n")
	for _, t := range trades {
		fmt.Fprintf(&sb, "#%d %s: $%s x %s\n", t.ID, t.Symbol, t.EntryPrice.String(), t.Size.String())
		fmt.Fprintf(&sb, "  Strategy: %s - %s\n", t.Strategy, t.Status)
		if t.IsClosed() {
			fmt.Fprintf(&sb, "  Exit: $%s | PnL: $%s\n", t.ExitPrice.String(), t.PnL.StringFixed(2))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (h *Handler) handleClose(ctx context.Context, text string) string {
	parts := strings.Fields(text)
	if len(parts) != 3 {
		return "❌ Use: /close SYMBOL EXIT_PRICE\nExample: /close BTC 36000"
	}

	symbol := strings.ToUpper(parts[1])
	exit, err := decimal.NewFromString(parts[2])
	if err != nil {
		return fmt.Sprintf("❌ Error: invalid exit price %q", parts[2])
	}

	open, err := h.ledger.FindLatestOpen(ctx, symbol)
	if errors.Is(err, ledger.ErrNotFound) {
		return fmt.Sprintf("❌ No open trade found for %s", symbol)
	}
	if err != nil {
		return h.errorReply("find open trade", err)
	}

	closed, err := h.ledger.CloseTrade(ctx, open.ID, exit)
	if errors.Is(err, ledger.ErrNotFound) {
		return fmt.Sprintf("❌ No open trade found for %s", symbol)
	}
	if err != nil {
		return h.errorReply("close trade", err)
	}

	return fmt.Sprintf("✅ Trade closed:\n%s @ $%s\nPnL: $%s",
		closed.Symbol, closed.ExitPrice.String(), closed.PnL.StringFixed(2))
}

func (h *Handler) handleStats(ctx context.Context) string {
	stats, err := h.ledger.AggregateStats(ctx)
	if err != nil {
		return h.errorReply("aggregate stats", err)
	}

	var sb strings.Builder
	sb.WriteString("📊 Trading Stats:\n\n")
	fmt.Fprintf(&sb, "Total Trades: %d\n", stats.TotalClosed)
	fmt.Fprintf(&sb, "Win Rate: %.1f%%\n", stats.WinRate())
	fmt.Fprintf(&sb, "Total PnL: $%s\n", stats.TotalPnL.StringFixed(2))
	if stats.TotalClosed > 0 {
		fmt.Fprintf(&sb, "Avg PnL: $%s", stats.AvgPnL().StringFixed(2))
	}
	return sb.String()
}

func (h *Handler) errorReply(op string, err error) string {
	var vErr *ledger.ValidationError
	switch {
	case errors.As(err, &vErr):
		return fmt.Sprintf("❌ Error: %s", vErr.Error())
	case errors.Is(err, ledger.ErrNotFound):
		return "❌ Error: trade not found"
	default:
		h.logger.Error("ledger operation failed", zap.String("op", op), zap.Error(err))
		return fmt.Sprintf("❌ Error: %s", err)
	}
}
