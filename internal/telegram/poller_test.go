package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func TestNextCursorEmptyBatch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 42, nextCursor(42, nil))
	assert.Equal(t, 42, nextCursor(42, []tele.Update{}))
}

func TestNextCursorAdvancesToHighestID(t *testing.T) {
	t.Parallel()

	updates := []tele.Update{{ID: 101}, {ID: 103}, {ID: 102}}
	assert.Equal(t, 103, nextCursor(100, updates))
}

func TestNextCursorNeverRegresses(t *testing.T) {
	t.Parallel()

	// A stale batch must not move the cursor backwards.
	updates := []tele.Update{{ID: 5}, {ID: 7}}
	assert.Equal(t, 50, nextCursor(50, updates))
}

func TestNewPollerDefaults(t *testing.T) {
	t.Parallel()

	p := NewPoller(30*time.Second, zap.NewNop())
	assert.Equal(t, 30*time.Second, p.Timeout)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 0, p.cursor)
}
