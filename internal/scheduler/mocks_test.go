package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

var errSendFailed = errors.New("send failed")

// fakeStore is an in-memory ReminderStore.
type fakeStore struct {
	mu        sync.Mutex
	reminders []*models.Reminder
}

func (s *fakeStore) add(r *models.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = append(s.reminders, r)
}

func (s *fakeStore) ListActive(ctx context.Context) ([]*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active []*models.Reminder
	for _, r := range s.reminders {
		if r.Active {
			active = append(active, r)
		}
	}
	return active, nil
}

func (s *fakeStore) SetActive(ctx context.Context, reminderID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reminders {
		if r.ReminderID == reminderID {
			r.Active = active
		}
	}
	return nil
}

func (s *fakeStore) isActive(reminderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reminders {
		if r.ReminderID == reminderID {
			return r.Active
		}
	}
	return false
}

type sentMessage struct {
	Dest string
	Text string
	At   time.Time
}

// fakeChannel records sends and can be told to fail the first N attempts.
type fakeChannel struct {
	mu       sync.Mutex
	clock    *fakeClock
	sent     []sentMessage
	failNext int
}

func (c *fakeChannel) Send(destination, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, sentMessage{Dest: destination, Text: text, At: c.clock.Now()})
	if c.failNext > 0 {
		c.failNext--
		return errSendFailed
	}
	return nil
}

func (c *fakeChannel) sends() []sentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]sentMessage, len(c.sent))
	copy(out, c.sent)
	return out
}
