package recurrence

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

var ErrUnknownKind = errors.New("unknown recurrence kind")

// Rule is an RFC 5545 recurrence derived from a reminder anchor. The anchor's
// hour/minute/second are carried on every occurrence; weekly rules pin the
// anchor's day-of-week and monthly rules its day-of-month.
type Rule struct {
	rule *rrule.RRule
}

// New derives the recurrence rule for kind from the anchor instant,
// reinterpreted in the reference timezone loc.
func New(kind models.Recurrence, anchor time.Time, loc *time.Location) (*Rule, error) {
	local := anchor.In(loc)
	opt := rrule.ROption{Dtstart: local}

	switch kind {
	case models.RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case models.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{weekdayOf(local)}
	case models.RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{local.Day()}
	default:
		return nil, ErrUnknownKind
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, err
	}
	return &Rule{rule: rule}, nil
}

// Next returns the first occurrence strictly after the given instant, or the
// zero time if there are no more occurrences.
func (r *Rule) Next(after time.Time) time.Time {
	return r.rule.After(after, false)
}

func weekdayOf(t time.Time) rrule.Weekday {
	switch t.Weekday() {
	case time.Monday:
		return rrule.MO
	case time.Tuesday:
		return rrule.TU
	case time.Wednesday:
		return rrule.WE
	case time.Thursday:
		return rrule.TH
	case time.Friday:
		return rrule.FR
	case time.Saturday:
		return rrule.SA
	default:
		return rrule.SU
	}
}
