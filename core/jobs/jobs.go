package jobs

import (
	"encoding/json"
	"time"

	"tempus/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task types handled by the background worker.
const (
	TypeFreeBusyInvalidate = "freebusy:invalidate"
	TypeEventChangedNotify = "event:changed:notify"
)

// FreeBusyInvalidatePayload names the users whose cached busy intervals are
// stale after an event mutation.
type FreeBusyInvalidatePayload struct {
	UserIDs []uuid.UUID `json:"user_ids"`
}

// EventChangedNotifyPayload describes an event mutation attendees should be
// told about.
type EventChangedNotifyPayload struct {
	EventID        uuid.UUID   `json:"event_id"`
	Title          string      `json:"title"`
	Change         string      `json:"change"` // created | updated | cancelled
	AttendeeIDs    []uuid.UUID `json:"attendee_ids"`
	OrganizerEmail string      `json:"organizer_email"`
}

// Client wraps the asynq client. A nil *Client drops tasks silently, which
// keeps job enqueueing optional in tests and single-process setups.
type Client struct {
	inner *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{inner: asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})}
}

func (c *Client) enqueue(taskType string, payload any) {
	if c == nil || c.inner == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Jobs:Enqueue:Marshal", "type", taskType, "error", err)
		return
	}
	task := asynq.NewTask(taskType, data)
	if _, err := c.inner.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)); err != nil {
		logger.Error("Jobs:Enqueue", "type", taskType, "error", err)
	}
}

// EnqueueFreeBusyInvalidate schedules cache invalidation for the given users.
func (c *Client) EnqueueFreeBusyInvalidate(userIDs []uuid.UUID) {
	if len(userIDs) == 0 {
		return
	}
	c.enqueue(TypeFreeBusyInvalidate, FreeBusyInvalidatePayload{UserIDs: userIDs})
}

// EnqueueEventChangedNotify schedules attendee notifications for an event
// mutation.
func (c *Client) EnqueueEventChangedNotify(p EventChangedNotifyPayload) {
	if len(p.AttendeeIDs) == 0 {
		return
	}
	c.enqueue(TypeEventChangedNotify, p)
}

func (c *Client) Close() error {
	if c == nil || c.inner == nil {
		return nil
	}
	return c.inner.Close()
}

// NewServer builds the asynq worker. Handlers are registered by core/server
// once the module services exist.
func NewServer(redisAddr, password string, db int) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
		asynq.Config{
			Concurrency: 5,
			Logger:      asynqLogger{},
		},
	)
}

type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug("asynq", "args", args) }
func (asynqLogger) Info(args ...any)  { logger.Info("asynq", "args", args) }
func (asynqLogger) Warn(args ...any)  { logger.Warn("asynq", "args", args) }
func (asynqLogger) Error(args ...any) { logger.Error("asynq", "args", args) }
func (asynqLogger) Fatal(args ...any) { logger.Error("asynq:fatal", "args", args) }
