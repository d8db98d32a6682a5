package telegram

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/jpillora/backoff"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Poller drives getUpdates with an explicit offset cursor. The cursor moves
// past a batch as soon as it is read, before any handler runs, so delivery
// is at most once and a failing handler never causes redelivery.
type Poller struct {
	Timeout time.Duration
	Limit   int

	cursor  int
	backoff *backoff.Backoff
	logger  *zap.Logger
}

func NewPoller(timeout time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		Timeout: timeout,
		Limit:   100,
		backoff: &backoff.Backoff{
			Min:    time.Second,
			Max:    time.Minute,
			Factor: 2,
			Jitter: true,
		},
		logger: logger,
	}
}

// Poll implements tele.Poller. Fetch failures are logged and retried after
// an increasing delay; the loop only exits when stop closes.
func (p *Poller) Poll(b *tele.Bot, dest chan tele.Update, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		updates, err := p.fetch(b)
		if err != nil {
			delay := p.backoff.Duration()
			p.logger.Warn("polling updates failed",
				zap.Error(err),
				zap.Duration("retry_in", delay))
			select {
			case <-stop:
				return
			case <-time.After(delay):
			}
			continue
		}
		p.backoff.Reset()

		p.cursor = nextCursor(p.cursor, updates)
		for _, u := range updates {
			select {
			case <-stop:
				return
			case dest <- u:
			}
		}
	}
}

func (p *Poller) fetch(b *tele.Bot) ([]tele.Update, error) {
	params := map[string]string{
		"offset":  strconv.Itoa(p.cursor + 1),
		"limit":   strconv.Itoa(p.Limit),
		"timeout": strconv.Itoa(int(p.Timeout / time.Second)),
	}

	data, err := b.Raw("getUpdates", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Result []tele.Update `json:"result"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// nextCursor advances past every update in the batch, whether or not its
// handler will succeed.
func nextCursor(cursor int, updates []tele.Update) int {
	for _, u := range updates {
		if u.ID > cursor {
			cursor = u.ID
		}
	}
	return cursor
}
