package repository

import (
	"context"

	"github.com/Shivakushwah143/SecondBrain/internal/database"
	"github.com/Shivakushwah143/SecondBrain/internal/models"
)

type ReminderRepository struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

const reminderColumns = `reminder_id, user_id, title, description, fire_time, recurrence, destination, active, created_at`

func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO reminders (reminder_id, user_id, title, description, fire_time, recurrence, destination, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		reminder.ReminderID, reminder.UserID, reminder.Title, reminder.Description,
		reminder.FireTime, reminder.Recurrence, reminder.Destination, reminder.Active,
	).Scan(&reminder.CreatedAt)
}

func (r *ReminderRepository) GetByID(ctx context.Context, reminderID, userID string) (*models.Reminder, error) {
	reminder := &models.Reminder{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE reminder_id = $1 AND user_id = $2`,
		reminderID, userID,
	).Scan(&reminder.ReminderID, &reminder.UserID, &reminder.Title, &reminder.Description,
		&reminder.FireTime, &reminder.Recurrence, &reminder.Destination, &reminder.Active, &reminder.CreatedAt)
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

func (r *ReminderRepository) GetByUserID(ctx context.Context, userID string) ([]*models.Reminder, error) {
	return r.query(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE user_id = $1 ORDER BY fire_time ASC`,
		userID)
}

// ListActive returns every active reminder across all users. Used on process
// start to rebuild the scheduling registry.
func (r *ReminderRepository) ListActive(ctx context.Context) ([]*models.Reminder, error) {
	return r.query(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE active = true ORDER BY fire_time ASC`)
}

func (r *ReminderRepository) SetActive(ctx context.Context, reminderID string, active bool) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET active = $1 WHERE reminder_id = $2`,
		active, reminderID,
	)
	return err
}

func (r *ReminderRepository) Delete(ctx context.Context, reminderID, userID string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reminders WHERE reminder_id = $1 AND user_id = $2`,
		reminderID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ReminderRepository) query(ctx context.Context, sql string, args ...any) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder := &models.Reminder{}
		if err := rows.Scan(&reminder.ReminderID, &reminder.UserID, &reminder.Title, &reminder.Description,
			&reminder.FireTime, &reminder.Recurrence, &reminder.Destination, &reminder.Active, &reminder.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}
