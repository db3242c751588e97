package store

import (
	"fmt"
	"time"
)

// RecordSession stores one finished period for a project.
func (s *Store) RecordSession(projectID int64, period string, start, end time.Time, durationSecs int64, completed bool) (*Session, error) {
	done := 0
	if completed {
		done = 1
	}
	res, err := s.db.Exec(
		`INSERT INTO sessions (project_id, period, started_at, ended_at, duration, completed) VALUES (?, ?, ?, ?, ?, ?)`,
		projectID, period,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339),
		durationSecs, done,
	)
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSession(id)
}

func (s *Store) GetSession(id int64) (*Session, error) {
	sess := &Session{}
	var startedAt, endedAt string
	var completed int
	err := s.db.QueryRow(
		`SELECT id, project_id, period, started_at, ended_at, duration, completed FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.ProjectID, &sess.Period, &startedAt, &endedAt, &sess.Duration, &completed)
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	sess.Completed = completed == 1
	sess.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	sess.EndedAt, _ = time.Parse(time.RFC3339, endedAt)
	return sess, nil
}

// ListSessions returns sessions newest first. A limit of 0 means no limit.
func (s *Store) ListSessions(limit int) ([]Session, error) {
	query := `SELECT id, project_id, period, started_at, ended_at, duration, completed FROM sessions ORDER BY started_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var startedAt, endedAt string
		var completed int
		if err := rows.Scan(&sess.ID, &sess.ProjectID, &sess.Period, &startedAt, &endedAt, &sess.Duration, &completed); err != nil {
			return nil, err
		}
		sess.Completed = completed == 1
		sess.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		sess.EndedAt, _ = time.Parse(time.RFC3339, endedAt)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// GetDailyFocus aggregates focus time per project per day in [from, to).
func (s *Store) GetDailyFocus(from, to time.Time) ([]DailyFocus, error) {
	rows, err := s.db.Query(`
		SELECT date(x.started_at) AS day, x.project_id, p.name,
		       COALESCE(SUM(x.duration), 0), COUNT(*)
		FROM sessions x
		JOIN projects p ON p.id = x.project_id
		WHERE x.period = 'FOCUS'
		  AND x.started_at >= ? AND x.started_at < ?
		GROUP BY day, x.project_id
		ORDER BY day, p.name`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily focus: %w", err)
	}
	defer rows.Close()

	var days []DailyFocus
	for rows.Next() {
		var d DailyFocus
		if err := rows.Scan(&d.Date, &d.ProjectID, &d.ProjectName, &d.TotalSeconds, &d.SessionCount); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
