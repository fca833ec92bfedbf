package store

import (
	"database/sql"
	"fmt"
	"time"
)

// HealthDaily is one day of metrics written by the external health sync.
// This application only reads them; there is no validation or transform
// beyond the date-keyed lookup.
type HealthDaily struct {
	Date       time.Time
	Steps      int
	Calories   int
	SleepStart *time.Time
	SleepEnd   *time.Time
	WeightKg   float64
	BodyFatPct float64
}

const healthDay = "2006-01-02"

// HealthRange returns the rows with from <= day <= to, oldest first.
func (s *Store) HealthRange(from, to time.Time) ([]HealthDaily, error) {
	rows, err := s.db.Query(
		`SELECT day, steps, calories, sleep_start, sleep_end, weight_kg, body_fat_pct
		 FROM health_metrics WHERE day >= ? AND day <= ? ORDER BY day`,
		from.Format(healthDay), to.Format(healthDay),
	)
	if err != nil {
		return nil, fmt.Errorf("health range: %w", err)
	}
	defer rows.Close()

	var days []HealthDaily
	for rows.Next() {
		var h HealthDaily
		var day string
		var sleepStart, sleepEnd sql.NullString
		if err := rows.Scan(&day, &h.Steps, &h.Calories, &sleepStart, &sleepEnd,
			&h.WeightKg, &h.BodyFatPct); err != nil {
			return nil, err
		}
		h.Date, _ = time.Parse(healthDay, day)
		if sleepStart.Valid {
			if t, err := time.Parse(time.RFC3339, sleepStart.String); err == nil {
				h.SleepStart = &t
			}
		}
		if sleepEnd.Valid {
			if t, err := time.Parse(time.RFC3339, sleepEnd.String); err == nil {
				h.SleepEnd = &t
			}
		}
		days = append(days, h)
	}
	return days, rows.Err()
}

// UpsertHealth writes one day of metrics. It exists for the sync side and
// for seeding; the planner never calls it.
func (s *Store) UpsertHealth(h HealthDaily) error {
	var sleepStart, sleepEnd any
	if h.SleepStart != nil {
		sleepStart = h.SleepStart.UTC().Format(time.RFC3339)
	}
	if h.SleepEnd != nil {
		sleepEnd = h.SleepEnd.UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(
		`INSERT INTO health_metrics (day, steps, calories, sleep_start, sleep_end, weight_kg, body_fat_pct)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET
		     steps = excluded.steps, calories = excluded.calories,
		     sleep_start = excluded.sleep_start, sleep_end = excluded.sleep_end,
		     weight_kg = excluded.weight_kg, body_fat_pct = excluded.body_fat_pct`,
		h.Date.Format(healthDay), h.Steps, h.Calories, sleepStart, sleepEnd,
		h.WeightKg, h.BodyFatPct,
	)
	if err != nil {
		return fmt.Errorf("upsert health %s: %w", h.Date.Format(healthDay), err)
	}
	return nil
}
