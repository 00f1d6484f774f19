package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

var testBase = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func newTestScheduler(t *testing.T) (*Scheduler, *fakeClock, *fakeStore, *fakeChannel) {
	t.Helper()
	clock := newFakeClock(testBase)
	store := &fakeStore{}
	channel := &fakeChannel{clock: clock}
	s := New(channel, store, clock, time.UTC, "default-chat")
	return s, clock, store, channel
}

func makeReminder(id string, fireTime time.Time, recurrence models.Recurrence) *models.Reminder {
	return &models.Reminder{
		ReminderID:  id,
		UserID:      "user-1",
		Title:       "drink water",
		Description: "two glasses",
		FireTime:    fireTime,
		Recurrence:  recurrence,
		Active:      true,
	}
}

func TestScheduleRecurringKeepsReminderActive(t *testing.T) {
	s, _, store, _ := newTestScheduler(t)

	for _, kind := range []models.Recurrence{models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly} {
		rem := makeReminder("rem-"+string(kind), testBase.Add(time.Hour), kind)
		store.add(rem)
		s.Schedule(rem)

		if !s.Scheduled(rem.ReminderID) {
			t.Errorf("%s: expected a registry entry", kind)
		}
		if !store.isActive(rem.ReminderID) {
			t.Errorf("%s: scheduling must not change active", kind)
		}
	}
	if got := s.JobCount(); got != 3 {
		t.Errorf("expected 3 jobs, got %d", got)
	}
}

func TestOneShotFiresOnceThenDeactivates(t *testing.T) {
	s, clock, store, channel := newTestScheduler(t)

	rem := makeReminder("rem-1", testBase.Add(time.Hour), models.RecurrenceOnce)
	store.add(rem)
	s.Schedule(rem)

	if !s.Scheduled("rem-1") {
		t.Fatal("expected a registry entry after schedule")
	}

	clock.Advance(time.Hour)
	if got := len(channel.sends()); got != 1 {
		t.Fatalf("expected 1 delivery, got %d", got)
	}
	if store.isActive("rem-1") {
		t.Error("one-shot reminder should be inactive after firing")
	}
	if s.Scheduled("rem-1") {
		t.Error("registry entry should be removed after one-shot fires")
	}

	clock.Advance(24 * time.Hour)
	if got := len(channel.sends()); got != 1 {
		t.Errorf("one-shot reminder fired again: %d deliveries", got)
	}
}

func TestPastOneShotIsSkipped(t *testing.T) {
	s, clock, store, channel := newTestScheduler(t)

	rem := makeReminder("rem-1", testBase.Add(-time.Hour), models.RecurrenceOnce)
	store.add(rem)
	s.Schedule(rem)

	if s.Scheduled("rem-1") {
		t.Error("past one-shot reminder must not be scheduled")
	}
	if !store.isActive("rem-1") {
		t.Error("skipping must not deactivate the reminder")
	}

	clock.Advance(48 * time.Hour)
	if got := len(channel.sends()); got != 0 {
		t.Errorf("expected no deliveries, got %d", got)
	}
}

func TestDailyFiresConsecutiveDays(t *testing.T) {
	s, clock, store, channel := newTestScheduler(t)

	// Anchored at 09:00, scheduled at 08:00 the same day.
	rem := makeReminder("rem-1", testBase.Add(time.Hour), models.RecurrenceDaily)
	store.add(rem)
	s.Schedule(rem)

	clock.Advance(48 * time.Hour)

	sends := channel.sends()
	if len(sends) != 2 {
		t.Fatalf("expected 2 deliveries over two days, got %d", len(sends))
	}
	for i, send := range sends {
		if send.At.Hour() != 9 || send.At.Minute() != 0 {
			t.Errorf("delivery %d at %s, want 09:00", i, send.At.Format("15:04"))
		}
	}
	if !sends[1].At.Equal(sends[0].At.Add(24 * time.Hour)) {
		t.Errorf("deliveries not 24h apart: %s then %s", sends[0].At, sends[1].At)
	}
	if !s.Scheduled("rem-1") {
		t.Error("daily reminder should remain scheduled")
	}
}

func TestWeeklyPinsDayOfWeek(t *testing.T) {
	s, clock, _, channel := newTestScheduler(t)

	// testBase is a Sunday; anchor Sunday 09:00.
	rem := makeReminder("rem-1", testBase.Add(time.Hour), models.RecurrenceWeekly)
	s.Schedule(rem)

	clock.Advance(14 * 24 * time.Hour)

	sends := channel.sends()
	if len(sends) != 2 {
		t.Fatalf("expected 2 weekly deliveries, got %d", len(sends))
	}
	for i, send := range sends {
		if send.At.Weekday() != time.Sunday {
			t.Errorf("delivery %d on %s, want Sunday", i, send.At.Weekday())
		}
	}
}

func TestCancelRemovesJob(t *testing.T) {
	s, clock, store, channel := newTestScheduler(t)

	rem := makeReminder("rem-1", testBase.Add(time.Hour), models.RecurrenceOnce)
	store.add(rem)
	s.Schedule(rem)
	s.Cancel("rem-1")

	if s.Scheduled("rem-1") {
		t.Error("expected registry entry to be removed")
	}

	clock.Advance(2 * time.Hour)
	if got := len(channel.sends()); got != 0 {
		t.Errorf("cancelled reminder fired: %d deliveries", got)
	}
}

func TestCancelUnknownIDIsNoop(t *testing.T) {
	s, _, _, _ := newTestScheduler(t)
	s.Cancel("no-such-id")
	if got := s.JobCount(); got != 0 {
		t.Errorf("expected empty registry, got %d", got)
	}
}

func TestScheduleTwiceReplacesJob(t *testing.T) {
	s, clock, store, channel := newTestScheduler(t)

	rem := makeReminder("rem-1", testBase.Add(time.Hour), models.RecurrenceOnce)
	store.add(rem)
	s.Schedule(rem)
	s.Schedule(rem)

	if got := s.JobCount(); got != 1 {
		t.Fatalf("expected exactly 1 job, got %d", got)
	}

	clock.Advance(2 * time.Hour)
	if got := len(channel.sends()); got != 1 {
		t.Errorf("expected 1 delivery, got %d", got)
	}
}

func TestDeliveryRetryAfterFailure(t *testing.T) {
	s, clock, store, channel := newTestScheduler(t)
	channel.failNext = 1

	rem := makeReminder("rem-1", testBase.Add(time.Hour), models.RecurrenceOnce)
	store.add(rem)
	s.Schedule(rem)

	clock.Advance(time.Hour)
	if got := len(channel.sends()); got != 1 {
		t.Fatalf("expected 1 attempt so far, got %d", got)
	}
	if !store.isActive("rem-1") {
		t.Error("one-shot must not deactivate before the retry resolves")
	}

	clock.Advance(DefaultRetryPolicy.Backoff)
	sends := channel.sends()
	if len(sends) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(sends))
	}
	if gap := sends[1].At.Sub(sends[0].At); gap != DefaultRetryPolicy.Backoff {
		t.Errorf("retry gap %s, want %s", gap, DefaultRetryPolicy.Backoff)
	}
	if store.isActive("rem-1") {
		t.Error("one-shot should be inactive after the retry resolves")
	}

	clock.Advance(time.Hour)
	if got := len(channel.sends()); got != 2 {
		t.Errorf("no further attempts expected, got %d", got)
	}
}

func TestRetryExhaustionStillDeactivatesOneShot(t *testing.T) {
	s, clock, store, channel := newTestScheduler(t)
	channel.failNext = 2

	rem := makeReminder("rem-1", testBase.Add(time.Hour), models.RecurrenceOnce)
	store.add(rem)
	s.Schedule(rem)

	clock.Advance(time.Hour + DefaultRetryPolicy.Backoff)
	if got := len(channel.sends()); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
	if store.isActive("rem-1") {
		t.Error("one-shot deactivates after the attempt completes, even on failure")
	}
}

func TestUnknownRecurrenceTreatedAsOneShot(t *testing.T) {
	s, clock, store, channel := newTestScheduler(t)

	rem := makeReminder("rem-1", testBase.Add(time.Hour), models.Recurrence("fortnightly"))
	store.add(rem)
	s.Schedule(rem)

	clock.Advance(2 * time.Hour)
	if got := len(channel.sends()); got != 1 {
		t.Fatalf("expected 1 delivery, got %d", got)
	}
	if store.isActive("rem-1") {
		t.Error("unknown recurrence behaves as one-shot: deactivated after firing")
	}
}

func TestDestinationFallback(t *testing.T) {
	s, clock, store, channel := newTestScheduler(t)

	withDest := makeReminder("rem-1", testBase.Add(time.Hour), models.RecurrenceOnce)
	withDest.Destination = "chat-42"
	withoutDest := makeReminder("rem-2", testBase.Add(time.Hour), models.RecurrenceOnce)
	store.add(withDest)
	store.add(withoutDest)
	s.Schedule(withDest)
	s.Schedule(withoutDest)

	clock.Advance(time.Hour)
	sends := channel.sends()
	if len(sends) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(sends))
	}
	dests := map[string]bool{}
	for _, send := range sends {
		dests[send.Dest] = true
	}
	if !dests["chat-42"] || !dests["default-chat"] {
		t.Errorf("unexpected destinations: %v", dests)
	}
}

func TestRestoreSchedulesOnlyActiveReminders(t *testing.T) {
	s, _, store, _ := newTestScheduler(t)

	active := makeReminder("rem-1", testBase.Add(time.Hour), models.RecurrenceDaily)
	inactive := makeReminder("rem-2", testBase.Add(time.Hour), models.RecurrenceOnce)
	inactive.Active = false
	pastOnce := makeReminder("rem-3", testBase.Add(-time.Hour), models.RecurrenceOnce)
	pastDaily := makeReminder("rem-4", testBase.Add(-time.Hour), models.RecurrenceDaily)
	store.add(active)
	store.add(inactive)
	store.add(pastOnce)
	store.add(pastDaily)

	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if s.Scheduled("rem-2") {
		t.Error("inactive reminder must not be restored")
	}
	if s.Scheduled("rem-3") {
		t.Error("past one-shot must be dropped on restore")
	}
	if !s.Scheduled("rem-1") {
		t.Error("active recurring reminder should be restored")
	}
	if !s.Scheduled("rem-4") {
		t.Error("recurring reminder with a past anchor still has future occurrences")
	}
	if got := s.JobCount(); got != 2 {
		t.Errorf("expected 2 jobs after restore, got %d", got)
	}
}

func TestToggleLifecycle(t *testing.T) {
	s, clock, store, channel := newTestScheduler(t)

	rem := makeReminder("rem-1", testBase.Add(time.Hour), models.RecurrenceDaily)
	store.add(rem)
	s.Schedule(rem)

	// Toggle off.
	rem.Active = false
	s.Reschedule(rem)
	if s.Scheduled("rem-1") {
		t.Fatal("toggled-off reminder must have no job")
	}

	clock.Advance(2 * time.Hour)
	if got := len(channel.sends()); got != 0 {
		t.Fatalf("toggled-off reminder fired: %d deliveries", got)
	}

	// Toggle back on: recomputes from the stored anchor.
	rem.Active = true
	s.Reschedule(rem)
	if !s.Scheduled("rem-1") {
		t.Fatal("toggled-on reminder should have a job")
	}

	clock.Advance(24 * time.Hour)
	if got := len(channel.sends()); got != 1 {
		t.Errorf("expected 1 delivery after re-enable, got %d", got)
	}
}
