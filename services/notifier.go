package services

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Notice levels
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a transient user-facing message
type Notice struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier publishes user-facing notices
type Notifier interface {
	Success(message string)
	Error(message string, err error)
}

// NoticeBoard buffers notices until the browser drains them and logs each one.
// Only the most recent notices are kept.
type NoticeBoard struct {
	logger  *zap.Logger
	notices []Notice
	limit   int
	mu      sync.Mutex
}

var noticeBoardInstance *NoticeBoard

// NewNoticeBoard creates a board keeping at most limit notices
func NewNoticeBoard(logger *zap.Logger, limit int) *NoticeBoard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = 50
	}
	return &NoticeBoard{logger: logger, limit: limit}
}

// InitNoticeBoard initializes the shared notice board
func InitNoticeBoard(logger *zap.Logger, limit int) *NoticeBoard {
	noticeBoardInstance = NewNoticeBoard(logger, limit)
	return noticeBoardInstance
}

// GetNoticeBoard returns the initialized notice board
func GetNoticeBoard() *NoticeBoard {
	return noticeBoardInstance
}

// SetNoticeBoard sets the notice board instance (primarily for testing)
func SetNoticeBoard(b *NoticeBoard) {
	noticeBoardInstance = b
}

// Success records a success notice
func (b *NoticeBoard) Success(message string) {
	b.logger.Info("notice", zap.String("level", NoticeSuccess), zap.String("message", message))
	b.push(Notice{Level: NoticeSuccess, Message: message, At: time.Now()})
}

// Error records a failure notice; err is logged but not shown
func (b *NoticeBoard) Error(message string, err error) {
	b.logger.Warn("notice", zap.String("level", NoticeError), zap.String("message", message), zap.Error(err))
	b.push(Notice{Level: NoticeError, Message: message, At: time.Now()})
}

// Drain returns and clears the pending notices
func (b *NoticeBoard) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.notices
	b.notices = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}

// Pending returns the pending notices without clearing them
func (b *NoticeBoard) Pending() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Notice, len(b.notices))
	copy(out, b.notices)
	return out
}

func (b *NoticeBoard) push(n Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.notices = append(b.notices, n)
	if len(b.notices) > b.limit {
		b.notices = b.notices[len(b.notices)-b.limit:]
	}
}
