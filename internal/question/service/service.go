package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/questionboard/questionboard/internal/question"
	"github.com/questionboard/questionboard/internal/question/repository"
	"github.com/questionboard/questionboard/pkg/metrics"
)

// Service applies the question lifecycle rules on top of a Repository.
// Timestamps are taken from the service clock, never from the store.
type Service struct {
	repo repository.Repository
	now  func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(repo repository.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService(opts ...Option) *Service {
	return New(repository.NewMemoryRepo(), opts...)
}

// Submit validates raw visitor input and stores it as a pending question.
func (s *Service) Submit(ctx context.Context, raw string) (*question.Question, error) {
	content, err := question.NormalizeContent(raw)
	if err != nil {
		return nil, err
	}
	now := s.now()
	q := &question.Question{
		Content:   content,
		Status:    question.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	metrics.QuestionsSubmitted.Inc()
	return q, nil
}

// List returns questions newest first. An empty rawStatus lists everything.
func (s *Service) List(ctx context.Context, rawStatus string) ([]*question.Question, error) {
	var f question.Filter
	if rawStatus != "" {
		st, err := question.ParseStatus(rawStatus)
		if err != nil {
			return nil, err
		}
		f.Status = &st
	}
	return s.repo.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*question.Question, error) {
	return s.repo.Get(ctx, id)
}

// UpdateStatus moves a question to any of the three states; there is no
// transition graph.
func (s *Service) UpdateStatus(ctx context.Context, id int64, rawStatus string) (*question.Question, error) {
	st, err := question.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	q, err := s.repo.UpdateStatus(ctx, id, st, s.now())
	if err != nil {
		return nil, err
	}
	metrics.QuestionStatusUpdates.WithLabelValues(string(st)).Inc()
	return q, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.QuestionsDeleted.Inc()
	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// ParseID parses a path id. Anything that is not a base-10 integer is rejected.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Join(question.ErrInvalidID, err)
	}
	return id, nil
}
