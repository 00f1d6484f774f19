package models

import "time"

// Recurrence describes how often a reminder fires.
type Recurrence string

const (
	RecurrenceOnce    Recurrence = "once"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Valid reports whether r is one of the supported recurrence kinds.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceOnce, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Reminder is a scheduled notification. FireTime is the anchor instant,
// stored in UTC; recurring kinds reinterpret its wall-clock values in the
// configured reference timezone each cycle.
type Reminder struct {
	ReminderID  string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	FireTime    time.Time  `json:"reminder_time"`
	Recurrence  Recurrence `json:"repeat"`
	Destination string     `json:"telegram_chat_id"`
	Active      bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsRecurring returns true if this reminder fires more than once.
func (r *Reminder) IsRecurring() bool {
	return r.Recurrence != RecurrenceOnce && r.Recurrence.Valid()
}
