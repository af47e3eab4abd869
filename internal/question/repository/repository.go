package repository

import (
	"context"
	"time"

	"github.com/questionboard/questionboard/internal/question"
)

// Repository is the persistence port for questions. Implementations return
// question.ErrNotFound when a row addressed by id does not exist.
type Repository interface {
	// Create stores q and assigns its ID.
	Create(ctx context.Context, q *question.Question) error
	Get(ctx context.Context, id int64) (*question.Question, error)
	// List returns matching questions, most recently created first.
	List(ctx context.Context, f question.Filter) ([]*question.Question, error)
	UpdateStatus(ctx context.Context, id int64, status question.Status, updatedAt time.Time) (*question.Question, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
