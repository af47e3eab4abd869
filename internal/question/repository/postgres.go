package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questionboard/questionboard/internal/question"
)

// PostgresRepo stores questions in a single PostgreSQL table.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

const questionColumns = `id, content, status, created_at, updated_at`

// Migrate creates the questions table and its listing index. Safe to run repeatedly.
func (r *PostgresRepo) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			id BIGSERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'answered', 'archived')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_status_created ON questions(status, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_created ON questions(created_at DESC);`,
	}
	for _, q := range queries {
		if _, err := r.pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func scanQuestion(row pgx.Row) (*question.Question, error) {
	var q question.Question
	var status string
	if err := row.Scan(&q.ID, &q.Content, &status, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	q.Status = question.Status(status)
	return &q, nil
}

func (r *PostgresRepo) Create(ctx context.Context, q *question.Question) error {
	query := `
	INSERT INTO questions (content, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + questionColumns + `;`
	out, err := scanQuestion(r.pool.QueryRow(ctx, query, q.Content, string(q.Status), q.CreatedAt, q.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	*q = *out
	return nil
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (*question.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1;`
	q, err := scanQuestion(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, question.ErrNotFound
		}
		return nil, fmt.Errorf("get question %d: %w", id, err)
	}
	return q, nil
}

func (r *PostgresRepo) List(ctx context.Context, f question.Filter) ([]*question.Question, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if f.Status != nil {
		rows, err = r.pool.Query(ctx, `SELECT `+questionColumns+` FROM questions WHERE status = $1 ORDER BY created_at DESC, id DESC;`, string(*f.Status))
	} else {
		rows, err = r.pool.Query(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY created_at DESC, id DESC;`)
	}
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	out := []*question.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

func (r *PostgresRepo) UpdateStatus(ctx context.Context, id int64, status question.Status, updatedAt time.Time) (*question.Question, error) {
	query := `
	UPDATE questions
	SET status = $1, updated_at = $2
	WHERE id = $3
	RETURNING ` + questionColumns + `;`
	q, err := scanQuestion(r.pool.QueryRow(ctx, query, string(status), updatedAt, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, question.ErrNotFound
		}
		return nil, fmt.Errorf("update question %d: %w", id, err)
	}
	return q, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return question.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
