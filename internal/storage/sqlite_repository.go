package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, in Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, created_at) VALUES (?, ?, ?)`,
		in.ID, in.Name, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, in Category) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, in.Name, in.ID)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var c Category
		var created string
		if err := rows.Scan(&c.ID, &c.Name, &created); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, name, description, category, begin_at, due_at, priority, completed_at, one_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Description, in.Category, mustTime(in.BeginAt), nullTime(in.DueAt),
		in.Priority, nullTime(in.CompletedAt), boolInt(in.OneTime), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, category, begin_at, due_at, priority, completed_at, one_time, created_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET name = ?, description = ?, category = ?, begin_at = ?, due_at = ?, priority = ?, completed_at = ?, one_time = ?
		WHERE id = ?`,
		in.Name, in.Description, in.Category, mustTime(in.BeginAt), nullTime(in.DueAt),
		in.Priority, nullTime(in.CompletedAt), boolInt(in.OneTime), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT id, name, description, category, begin_at, due_at, priority, completed_at, one_time, created_at FROM tasks`
	args := make([]any, 0, 3)
	if filter.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY created_at`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateEvent(ctx context.Context, in Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, name, description, category, start_at, end_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Description, in.Category,
		mustTime(in.StartAt), mustTime(in.EndAt), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) UpdateEvent(ctx context.Context, in Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events SET name = ?, description = ?, category = ?, start_at = ?, end_at = ? WHERE id = ?`,
		in.Name, in.Description, in.Category, mustTime(in.StartAt), mustTime(in.EndAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteEvent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, category, start_at, end_at, created_at
		FROM events ORDER BY start_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		var e Event
		var start, end, created string
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Category, &start, &end, &created); err != nil {
			return nil, err
		}
		if e.StartAt, err = parseTime(start); err != nil {
			return nil, err
		}
		if e.EndAt, err = parseTime(end); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, in Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, name, description, category, begin_at, due_at, target_task_id, target_task_name, period, frequency, progress, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, in.Description, in.Category, mustTime(in.BeginAt), mustTime(in.DueAt),
		in.TargetTaskID, in.TargetTaskName, in.Period, in.Frequency, in.Progress, boolInt(in.Completed), mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, in Goal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals
		SET name = ?, description = ?, category = ?, begin_at = ?, due_at = ?, target_task_id = ?, target_task_name = ?, period = ?, frequency = ?, progress = ?, completed = ?
		WHERE id = ?`,
		in.Name, in.Description, in.Category, mustTime(in.BeginAt), mustTime(in.DueAt),
		in.TargetTaskID, in.TargetTaskName, in.Period, in.Frequency, in.Progress, boolInt(in.Completed), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, filter GoalListFilter) ([]Goal, error) {
	query := `SELECT id, name, description, category, begin_at, due_at, target_task_id, target_task_name, period, frequency, progress, completed, created_at FROM goals`
	args := make([]any, 0, 3)
	if filter.Completed != nil {
		query += ` WHERE completed = ?`
		args = append(args, boolInt(*filter.Completed))
	}
	query += ` ORDER BY created_at`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Goal, 0)
	for rows.Next() {
		var g Goal
		var begin, due, created string
		var completed int
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Category, &begin, &due,
			&g.TargetTaskID, &g.TargetTaskName, &g.Period, &g.Frequency, &g.Progress, &completed, &created); err != nil {
			return nil, err
		}
		if g.BeginAt, err = parseTime(begin); err != nil {
			return nil, err
		}
		if g.DueAt, err = parseTime(due); err != nil {
			return nil, err
		}
		if g.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		g.Completed = completed != 0
		out = append(out, g)
	}
	return out, rows.Err()
}

// UpsertDailyLog replaces the full per-day row set in one transaction so
// a log is never half-written.
func (r *SQLiteRepository) UpsertDailyLog(ctx context.Context, in DailyLog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO daily_logs (date) VALUES (?)`, in.Date); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_log_tasks WHERE date = ?`, in.Date); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM wellness_entries WHERE date = ?`, in.Date); err != nil {
		return err
	}
	for _, t := range in.Tasks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO daily_log_tasks (date, task_id, completed) VALUES (?, ?, ?)`,
			in.Date, t.TaskID, boolInt(t.Completed)); err != nil {
			return err
		}
	}
	for _, e := range in.Entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO wellness_entries (id, date, at, stress, energy, fatigue, mood, note)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, in.Date, mustTime(e.At), e.Stress, e.Energy, e.Fatigue, e.Mood, e.Note); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) GetDailyLog(ctx context.Context, date string) (DailyLog, error) {
	var found string
	err := r.db.QueryRowContext(ctx, `SELECT date FROM daily_logs WHERE date = ?`, date).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DailyLog{}, ErrNotFound
		}
		return DailyLog{}, err
	}
	return r.loadDailyLog(ctx, date)
}

func (r *SQLiteRepository) ListDailyLogs(ctx context.Context, from, to string) ([]DailyLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date FROM daily_logs WHERE date >= ? AND date <= ? ORDER BY date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]DailyLog, 0, len(dates))
	for _, d := range dates {
		log, err := r.loadDailyLog(ctx, d)
		if err != nil {
			return nil, err
		}
		out = append(out, log)
	}
	return out, nil
}

func (r *SQLiteRepository) loadDailyLog(ctx context.Context, date string) (DailyLog, error) {
	out := DailyLog{Date: date}

	taskRows, err := r.db.QueryContext(ctx, `
		SELECT task_id, completed FROM daily_log_tasks WHERE date = ? ORDER BY task_id`, date)
	if err != nil {
		return DailyLog{}, err
	}
	defer taskRows.Close()
	for taskRows.Next() {
		var t DailyLogTask
		var completed int
		if err := taskRows.Scan(&t.TaskID, &completed); err != nil {
			return DailyLog{}, err
		}
		t.Completed = completed != 0
		out.Tasks = append(out.Tasks, t)
	}
	if err := taskRows.Err(); err != nil {
		return DailyLog{}, err
	}

	entryRows, err := r.db.QueryContext(ctx, `
		SELECT id, at, stress, energy, fatigue, mood, note FROM wellness_entries WHERE date = ? ORDER BY at`, date)
	if err != nil {
		return DailyLog{}, err
	}
	defer entryRows.Close()
	for entryRows.Next() {
		var e WellnessEntry
		var at string
		if err := entryRows.Scan(&e.ID, &at, &e.Stress, &e.Energy, &e.Fatigue, &e.Mood, &e.Note); err != nil {
			return DailyLog{}, err
		}
		if e.At, err = parseTime(at); err != nil {
			return DailyLog{}, err
		}
		e.Date = date
		out.Entries = append(out.Entries, e)
	}
	return out, entryRows.Err()
}

func (r *SQLiteRepository) CreateMoodLabel(ctx context.Context, in MoodLabel) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mood_labels (name, kind, created_at) VALUES (?, ?, ?)`,
		in.Name, in.Kind, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) DeleteMoodLabel(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM mood_labels WHERE name = ?`, name)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListMoodLabels(ctx context.Context) ([]MoodLabel, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, kind, created_at FROM mood_labels ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MoodLabel, 0)
	for rows.Next() {
		var m MoodLabel
		var created string
		if err := rows.Scan(&m.Name, &m.Kind, &created); err != nil {
			return nil, err
		}
		if m.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var t Task
	var begin, created string
	var due, completed sql.NullString
	var oneTime int
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Category, &begin, &due,
		&t.Priority, &completed, &oneTime, &created); err != nil {
		return Task{}, err
	}
	var err error
	if t.BeginAt, err = parseTime(begin); err != nil {
		return Task{}, err
	}
	if t.CreatedAt, err = parseTime(created); err != nil {
		return Task{}, err
	}
	if t.DueAt, err = parseNullTime(due); err != nil {
		return Task{}, err
	}
	if t.CompletedAt, err = parseNullTime(completed); err != nil {
		return Task{}, err
	}
	t.OneTime = oneTime != 0
	return t, nil
}

func applyPagination(args *[]any, limit, offset int) string {
	clause := ""
	if limit > 0 {
		clause += " LIMIT ?"
		*args = append(*args, limit)
		if offset > 0 {
			clause += " OFFSET ?"
			*args = append(*args, offset)
		}
	}
	return clause
}

func checkRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func mustTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", value, err)
	}
	return t, nil
}

func parseNullTime(value sql.NullString) (*time.Time, error) {
	if !value.Valid {
		return nil, nil
	}
	t, err := parseTime(value.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
