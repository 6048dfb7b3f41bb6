package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/models"
)

var (
	userColumns    = []string{"id", "birth_date", "salt", "theme", "created_at", "updated_at"}
	periodColumns  = []string{"id", "user_id", "name", "start_date", "end_date", "is_active", "created_at", "updated_at"}
	journalColumns = []string{"id", "user_id", "period_id", "date", "encrypted_payload", "iv", "created_at", "updated_at"}
	goalColumns    = []string{"id", "user_id", "period_id", "encrypted_payload", "iv", "status", "progress", "completed_at", "created_at", "updated_at"}
	habitColumns   = []string{"id", "user_id", "period_id", "encrypted_payload", "iv", "frequency", "current_streak", "longest_streak", "created_at", "updated_at"}
)

func userTable() tableSpec[models.User] {
	return tableSpec[models.User]{
		name:    models.User{}.TableName(),
		columns: userColumns,
		key:     func(u models.User) string { return u.ID },
		values: func(u models.User) []any {
			return []any{u.ID, formatDate(u.BirthDate), u.Salt, u.Theme, u.CreatedAt.UTC(), u.UpdatedAt.UTC()}
		},
		scan: func(row rowScanner) (models.User, error) {
			var (
				u     models.User
				birth string
			)
			if err := row.Scan(&u.ID, &birth, &u.Salt, &u.Theme, &u.CreatedAt, &u.UpdatedAt); err != nil {
				return models.User{}, err
			}
			t, err := parseDate(birth)
			if err != nil {
				return models.User{}, err
			}
			u.BirthDate = t
			return u, nil
		},
		validate: func(u models.User) error {
			if u.Salt == "" {
				return errs.NewValidationError("salt", "is required")
			}
			return nil
		},
	}
}

func periodTable() tableSpec[models.Period] {
	return tableSpec[models.Period]{
		name:    models.Period{}.TableName(),
		columns: periodColumns,
		indexes: map[Index]string{
			IndexUserID:   "user_id",
			IndexIsActive: "is_active",
		},
		key: func(p models.Period) string { return p.ID },
		values: func(p models.Period) []any {
			var end any
			if p.EndDate != nil {
				end = formatDate(*p.EndDate)
			}
			return []any{p.ID, p.UserID, p.Name, formatDate(p.StartDate), end, p.IsActive, p.CreatedAt.UTC(), p.UpdatedAt.UTC()}
		},
		scan: func(row rowScanner) (models.Period, error) {
			var (
				p     models.Period
				start string
				end   sql.NullString
			)
			if err := row.Scan(&p.ID, &p.UserID, &p.Name, &start, &end, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return models.Period{}, err
			}
			t, err := parseDate(start)
			if err != nil {
				return models.Period{}, err
			}
			p.StartDate = t
			if end.Valid && end.String != "" {
				e, err := parseDate(end.String)
				if err != nil {
					return models.Period{}, err
				}
				p.EndDate = &e
			}
			return p, nil
		},
		validate: func(p models.Period) error {
			if p.UserID == "" {
				return errs.NewValidationError("userId", "is required")
			}
			if p.Name == "" {
				return errs.NewValidationError("name", "is required")
			}
			return nil
		},
	}
}

func journalTable() tableSpec[models.JournalRecord] {
	return tableSpec[models.JournalRecord]{
		name:    models.JournalRecord{}.TableName(),
		columns: journalColumns,
		indexes: map[Index]string{
			IndexUserID:   "user_id",
			IndexPeriodID: "period_id",
			IndexDate:     "date",
		},
		key: func(r models.JournalRecord) string { return r.ID },
		values: func(r models.JournalRecord) []any {
			return []any{r.ID, r.UserID, nullString(r.PeriodID), r.Date, r.EncryptedPayload, r.IV, r.CreatedAt.UTC(), r.UpdatedAt.UTC()}
		},
		scan: func(row rowScanner) (models.JournalRecord, error) {
			var (
				r      models.JournalRecord
				period sql.NullString
			)
			if err := row.Scan(&r.ID, &r.UserID, &period, &r.Date, &r.EncryptedPayload, &r.IV, &r.CreatedAt, &r.UpdatedAt); err != nil {
				return models.JournalRecord{}, err
			}
			r.PeriodID = stringPtr(period)
			return r, nil
		},
		validate: func(r models.JournalRecord) error {
			if err := validateEncrypted(r.EncryptedEntity); err != nil {
				return err
			}
			if _, err := time.Parse(models.DateLayout, r.Date); err != nil {
				return errs.NewValidationError("date", fmt.Sprintf("must be %s", models.DateLayout))
			}
			return nil
		},
	}
}

func goalTable() tableSpec[models.GoalRecord] {
	return tableSpec[models.GoalRecord]{
		name:    models.GoalRecord{}.TableName(),
		columns: goalColumns,
		indexes: map[Index]string{
			IndexUserID:   "user_id",
			IndexPeriodID: "period_id",
			IndexStatus:   "status",
		},
		key: func(r models.GoalRecord) string { return r.ID },
		values: func(r models.GoalRecord) []any {
			var completed any
			if r.CompletedAt != nil {
				completed = r.CompletedAt.UTC()
			}
			return []any{
				r.ID, r.UserID, nullString(r.PeriodID), r.EncryptedPayload, r.IV,
				string(r.Status), r.Progress, completed, r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
			}
		},
		scan: func(row rowScanner) (models.GoalRecord, error) {
			var (
				r         models.GoalRecord
				period    sql.NullString
				status    string
				completed sql.NullTime
			)
			if err := row.Scan(&r.ID, &r.UserID, &period, &r.EncryptedPayload, &r.IV,
				&status, &r.Progress, &completed, &r.CreatedAt, &r.UpdatedAt); err != nil {
				return models.GoalRecord{}, err
			}
			r.PeriodID = stringPtr(period)
			r.Status = models.GoalStatus(status)
			if completed.Valid {
				t := completed.Time
				r.CompletedAt = &t
			}
			return r, nil
		},
		validate: func(r models.GoalRecord) error {
			if err := validateEncrypted(r.EncryptedEntity); err != nil {
				return err
			}
			if !r.Status.Valid() {
				return errs.NewValidationError("status", fmt.Sprintf("unknown status %q", r.Status))
			}
			return nil
		},
	}
}

func habitTable() tableSpec[models.HabitRecord] {
	return tableSpec[models.HabitRecord]{
		name:    models.HabitRecord{}.TableName(),
		columns: habitColumns,
		indexes: map[Index]string{
			IndexUserID:    "user_id",
			IndexPeriodID:  "period_id",
			IndexFrequency: "frequency",
		},
		key: func(r models.HabitRecord) string { return r.ID },
		values: func(r models.HabitRecord) []any {
			return []any{
				r.ID, r.UserID, nullString(r.PeriodID), r.EncryptedPayload, r.IV,
				string(r.Frequency), r.CurrentStreak, r.LongestStreak, r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
			}
		},
		scan: func(row rowScanner) (models.HabitRecord, error) {
			var (
				r         models.HabitRecord
				period    sql.NullString
				frequency string
			)
			if err := row.Scan(&r.ID, &r.UserID, &period, &r.EncryptedPayload, &r.IV,
				&frequency, &r.CurrentStreak, &r.LongestStreak, &r.CreatedAt, &r.UpdatedAt); err != nil {
				return models.HabitRecord{}, err
			}
			r.PeriodID = stringPtr(period)
			r.Frequency = models.Frequency(frequency)
			return r, nil
		},
		validate: func(r models.HabitRecord) error {
			if err := validateEncrypted(r.EncryptedEntity); err != nil {
				return err
			}
			if !r.Frequency.Valid() {
				return errs.NewValidationError("frequency", fmt.Sprintf("unknown frequency %q", r.Frequency))
			}
			return nil
		},
	}
}

func validateEncrypted(e models.EncryptedEntity) error {
	switch {
	case e.UserID == "":
		return errs.NewValidationError("userId", "is required")
	case e.EncryptedPayload == "":
		return errs.NewValidationError("encryptedPayload", "is required")
	case e.IV == "":
		return errs.NewValidationError("iv", "is required")
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(models.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date %q: %w", s, err)
	}
	return t, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
