// Package scheduler owns the reminder scheduling runtime: a registry mapping
// reminder id to its single live job, plus the dispatcher that delivers
// notifications when jobs fire.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Shivakushwah143/SecondBrain/internal/models"
	"github.com/Shivakushwah143/SecondBrain/internal/notify"
	"github.com/Shivakushwah143/SecondBrain/internal/recurrence"
)

// ReminderStore is the persistence surface the scheduler depends on. The
// stored records are the source of truth; the registry is derived state and
// is rebuilt from ListActive on process start.
type ReminderStore interface {
	ListActive(ctx context.Context) ([]*models.Reminder, error)
	SetActive(ctx context.Context, reminderID string, active bool) error
}

type job struct {
	timer     Timer
	cancelled bool
}

// Scheduler keeps at most one live job per active reminder. All methods are
// safe for concurrent use; timer callbacks run on their own goroutines.
type Scheduler struct {
	mu   sync.Mutex
	jobs map[string]*job

	clock Clock
	loc   *time.Location
	disp  *dispatcher
	store ReminderStore
}

// New creates a scheduler delivering through channel in the reference
// timezone loc. defaultDest is the fallback destination for reminders that
// carry none of their own.
func New(channel notify.Channel, store ReminderStore, clock Clock, loc *time.Location, defaultDest string) *Scheduler {
	return &Scheduler{
		jobs:  make(map[string]*job),
		clock: clock,
		loc:   loc,
		store: store,
		disp: &dispatcher{
			channel:     channel,
			store:       store,
			clock:       clock,
			loc:         loc,
			defaultDest: defaultDest,
			retry:       DefaultRetryPolicy,
		},
	}
}

// Schedule registers a job for the reminder's next firing, replacing any
// existing job for the same id. Inactive reminders are ignored. One-shot
// reminders whose fire time has already passed are dropped without error.
func (s *Scheduler) Schedule(reminder *models.Reminder) {
	if !reminder.Active {
		return
	}

	kind := reminder.Recurrence
	if !kind.Valid() {
		log.Printf("Reminder %s has unknown recurrence %q, treating as one-shot", reminder.ReminderID, kind)
		kind = models.RecurrenceOnce
	}

	now := s.clock.Now()

	if kind == models.RecurrenceOnce {
		fireAt := reminder.FireTime.In(s.loc)
		if !fireAt.After(now) {
			log.Printf("Skipping one-shot reminder %s: fire time %s already passed", reminder.ReminderID, fireAt.Format(time.RFC3339))
			return
		}
		s.arm(reminder, fireAt, nil)
		return
	}

	rule, err := recurrence.New(kind, reminder.FireTime, s.loc)
	if err != nil {
		log.Printf("Failed to derive recurrence for reminder %s: %v", reminder.ReminderID, err)
		return
	}

	next := rule.Next(now)
	if next.IsZero() {
		log.Printf("Reminder %s has no future occurrence", reminder.ReminderID)
		return
	}
	s.arm(reminder, next, rule)
}

// Cancel removes and stops the job for reminderID, if any. A job already in
// the middle of firing is not interrupted; cancellation only prevents future
// firings.
func (s *Scheduler) Cancel(reminderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(reminderID)
}

// Reschedule cancels any existing job and schedules anew from the stored
// record. Used on toggle.
func (s *Scheduler) Reschedule(reminder *models.Reminder) {
	s.Cancel(reminder.ReminderID)
	if reminder.Active {
		s.Schedule(reminder)
	}
}

// Restore rebuilds the registry from persisted state. Called once on process
// start; past one-shot reminders are dropped by Schedule as usual.
func (s *Scheduler) Restore(ctx context.Context) error {
	reminders, err := s.store.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active reminders: %w", err)
	}

	for _, reminder := range reminders {
		s.Schedule(reminder)
	}
	log.Printf("Scheduler restored: %d active reminders, %d jobs armed", len(reminders), s.JobCount())
	return nil
}

// JobCount returns the number of live jobs in the registry.
func (s *Scheduler) JobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Scheduled reports whether a job is registered for reminderID.
func (s *Scheduler) Scheduled(reminderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[reminderID]
	return ok
}

func (s *Scheduler) arm(reminder *models.Reminder, fireAt time.Time, rule *recurrence.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(reminder.ReminderID)

	j := &job{}
	delay := fireAt.Sub(s.clock.Now())
	if delay < 0 {
		delay = 0
	}
	j.timer = s.clock.AfterFunc(delay, func() {
		s.onFire(reminder, j, fireAt, rule)
	})
	s.jobs[reminder.ReminderID] = j
}

func (s *Scheduler) cancelLocked(reminderID string) {
	if j, ok := s.jobs[reminderID]; ok {
		j.cancelled = true
		j.timer.Stop()
		delete(s.jobs, reminderID)
	}
}

// onFire runs in the timer goroutine. It re-arms recurring jobs before
// dispatching so a slow delivery cannot delay the next occurrence, then hands
// off to the dispatcher. Panics stop here; one bad reminder must not take the
// runtime down.
func (s *Scheduler) onFire(reminder *models.Reminder, j *job, firedAt time.Time, rule *recurrence.Rule) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Reminder %s dispatch panicked: %v", reminder.ReminderID, r)
		}
	}()

	s.mu.Lock()
	if j.cancelled {
		s.mu.Unlock()
		return
	}

	if rule == nil {
		// One-shot: the registry entry is spent.
		delete(s.jobs, reminder.ReminderID)
		s.mu.Unlock()
	} else {
		next := rule.Next(firedAt)
		if next.IsZero() {
			delete(s.jobs, reminder.ReminderID)
			s.mu.Unlock()
		} else {
			nj := &job{}
			delay := next.Sub(s.clock.Now())
			if delay < 0 {
				delay = 0
			}
			nj.timer = s.clock.AfterFunc(delay, func() {
				s.onFire(reminder, nj, next, rule)
			})
			s.jobs[reminder.ReminderID] = nj
			s.mu.Unlock()
		}
	}

	s.disp.fire(reminder, firedAt)
}
