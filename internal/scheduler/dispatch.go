package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/Shivakushwah143/SecondBrain/internal/models"
	"github.com/Shivakushwah143/SecondBrain/internal/notify"
)

const storeTimeout = 10 * time.Second

// dispatcher formats and delivers a reminder when its job fires, and applies
// the post-fire state transition. It runs inside timer callbacks and never
// propagates an error to the scheduling runtime.
type dispatcher struct {
	channel     notify.Channel
	store       ReminderStore
	clock       Clock
	loc         *time.Location
	defaultDest string
	retry       RetryPolicy
}

func (d *dispatcher) fire(reminder *models.Reminder, firedAt time.Time) {
	if d.channel == nil {
		log.Printf("Reminder %s fired but no delivery channel is configured", reminder.ReminderID)
		d.finish(reminder)
		return
	}

	dest := reminder.Destination
	if dest == "" {
		dest = d.defaultDest
	}
	if dest == "" {
		log.Printf("Reminder %s has no destination and no default channel, dropping", reminder.ReminderID)
		d.finish(reminder)
		return
	}

	d.attempt(reminder, dest, d.compose(reminder, firedAt), 1)
}

func (d *dispatcher) attempt(reminder *models.Reminder, dest, text string, attemptNo int) {
	err := d.channel.Send(dest, text)
	if err == nil {
		if attemptNo > 1 {
			log.Printf("Reminder %s delivered on retry", reminder.ReminderID)
		}
		d.finish(reminder)
		return
	}

	log.Printf("Failed to deliver reminder %s (attempt %d): %v", reminder.ReminderID, attemptNo, err)
	if attemptNo >= d.retry.MaxAttempts {
		d.finish(reminder)
		return
	}

	d.clock.AfterFunc(d.retry.Backoff, func() {
		d.attempt(reminder, dest, text, attemptNo+1)
	})
}

// finish deactivates one-shot reminders once the delivery attempt (and its
// retry, if any) has resolved. Recurring reminders stay active.
func (d *dispatcher) finish(reminder *models.Reminder) {
	if reminder.IsRecurring() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := d.store.SetActive(ctx, reminder.ReminderID, false); err != nil {
		log.Printf("Failed to deactivate one-shot reminder %s: %v", reminder.ReminderID, err)
	}
}

func (d *dispatcher) compose(reminder *models.Reminder, firedAt time.Time) string {
	text := "🔔 Reminder: " + reminder.Title + "\n"
	if reminder.Description != "" {
		text += reminder.Description + "\n"
	}
	text += "\n⏰ Time: " + firedAt.In(d.loc).Format("02 Jan 2006, 3:04 PM")
	text += "\n🔄 Repeat: " + string(reminder.Recurrence)
	return text
}
