// Package review provides a pending-review queue fed by moderation
// hooks. Content that the engine routes to pending_review becomes a task
// a human moderator resolves to a final verdict.
package review

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	trust "github.com/ajudaki/trust"
	"github.com/ajudaki/trust/hooks"
)

// ErrTaskNotFound is returned when a task ID is unknown.
var ErrTaskNotFound = errors.New("review: task not found")

// ErrTaskResolved is returned when resolving an already-resolved task.
var ErrTaskResolved = errors.New("review: task already resolved")

// Task is one piece of content awaiting human review.
type Task struct {
	TaskID      string                   `json:"task_id"`
	Fingerprint string                   `json:"fingerprint"` // Content hash, for deduplication
	Input       trust.ModerationInput    `json:"input"`
	AutoResult  trust.ModerationDecision `json:"auto_result"` // The engine's decision
	Reasons     []string                 `json:"reasons"`
	CreatedAt   time.Time                `json:"created_at"`
	Resolution  *Resolution              `json:"resolution,omitempty"`
}

// Resolution is a moderator's final verdict on a task.
type Resolution struct {
	Decision   trust.Decision `json:"decision"` // approved or blocked
	Moderator  string         `json:"moderator"`
	Note       string         `json:"note,omitempty"`
	ResolvedAt time.Time      `json:"resolved_at"`
}

// TaskStore persists review tasks. The in-memory default suits tests and
// single-process deployments; callers provide their own for anything else.
type TaskStore interface {
	SaveTask(ctx context.Context, task Task) error
	GetTask(ctx context.Context, taskID string) (Task, error)
	UpdateTask(ctx context.Context, task Task) error
	ListPending(ctx context.Context, limit int) ([]Task, error)
	FindByFingerprint(ctx context.Context, fingerprint string) (Task, bool, error)
}

// Queue collects pending-review content. It implements hooks.Hooks so it
// can be wired straight into the engine.
type Queue struct {
	store TaskStore

	// OnTask, when set, is called after a task is enqueued, e.g. to
	// notify moderators. Errors propagate to the engine's hook logging.
	OnTask func(ctx context.Context, task Task) error
}

// NewQueue creates a review queue. A nil store means in-memory storage.
func NewQueue(store TaskStore) *Queue {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Queue{store: store}
}

// Enqueue records one pending-review decision as a task. Identical
// content already awaiting review is not enqueued twice; the existing
// task is returned instead.
func (q *Queue) Enqueue(ctx context.Context, input trust.ModerationInput, decision trust.ModerationDecision, reasons []string) (Task, error) {
	fp := Fingerprint(input)

	if existing, ok, err := q.store.FindByFingerprint(ctx, fp); err != nil {
		return Task{}, err
	} else if ok && existing.Resolution == nil {
		return existing, nil
	}

	task := Task{
		TaskID:      uuid.NewString(),
		Fingerprint: fp,
		Input:       input,
		AutoResult:  decision,
		Reasons:     reasons,
		CreatedAt:   time.Now(),
	}
	if err := q.store.SaveTask(ctx, task); err != nil {
		return Task{}, err
	}

	if q.OnTask != nil {
		if err := q.OnTask(ctx, task); err != nil {
			return task, err
		}
	}
	return task, nil
}

// Pending lists unresolved tasks, oldest first.
func (q *Queue) Pending(ctx context.Context, limit int) ([]Task, error) {
	return q.store.ListPending(ctx, limit)
}

// Get returns one task by ID.
func (q *Queue) Get(ctx context.Context, taskID string) (Task, error) {
	return q.store.GetTask(ctx, taskID)
}

// Resolve records a moderator's verdict on a task.
func (q *Queue) Resolve(ctx context.Context, taskID string, res Resolution) (Task, error) {
	task, err := q.store.GetTask(ctx, taskID)
	if err != nil {
		return Task{}, err
	}
	if task.Resolution != nil {
		return task, ErrTaskResolved
	}

	if res.ResolvedAt.IsZero() {
		res.ResolvedAt = time.Now()
	}
	task.Resolution = &res
	if err := q.store.UpdateTask(ctx, task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// OnReviewRequired enqueues the content for human review.
func (q *Queue) OnReviewRequired(ctx context.Context, e hooks.ReviewRequiredEvent) error {
	_, err := q.Enqueue(ctx, e.Input, e.Decision, e.Reasons)
	return err
}

// OnDecision does nothing.
func (q *Queue) OnDecision(ctx context.Context, e hooks.DecisionEvent) error { return nil }

// OnBlocked does nothing.
func (q *Queue) OnBlocked(ctx context.Context, e hooks.BlockedEvent) error { return nil }

// OnSignalSkipped does nothing.
func (q *Queue) OnSignalSkipped(ctx context.Context, e hooks.SignalSkippedEvent) error { return nil }

var _ hooks.Hooks = (*Queue)(nil)

// Fingerprint returns a stable content hash used to deduplicate review
// tasks for identical submissions.
func Fingerprint(input trust.ModerationInput) string {
	h := sha256.New()
	h.Write([]byte(input.Title))
	h.Write([]byte{0})
	h.Write([]byte(input.Body))
	for _, ref := range input.Images {
		h.Write([]byte{0})
		h.Write([]byte(ref))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// MemoryStore is an in-memory TaskStore.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[string]Task)}
}

// SaveTask stores a new task.
func (s *MemoryStore) SaveTask(ctx context.Context, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.TaskID] = task
	return nil
}

// GetTask returns a task by ID.
func (s *MemoryStore) GetTask(ctx context.Context, taskID string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return task, nil
}

// UpdateTask replaces a stored task.
func (s *MemoryStore) UpdateTask(ctx context.Context, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.TaskID]; !ok {
		return ErrTaskNotFound
	}
	s.tasks[task.TaskID] = task
	return nil
}

// ListPending returns unresolved tasks, oldest first. A limit of zero or
// less means no limit.
func (s *MemoryStore) ListPending(ctx context.Context, limit int) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []Task
	for _, task := range s.tasks {
		if task.Resolution == nil {
			pending = append(pending, task)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

// FindByFingerprint returns the task matching a content fingerprint.
func (s *MemoryStore) FindByFingerprint(ctx context.Context, fingerprint string) (Task, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, task := range s.tasks {
		if task.Fingerprint == fingerprint {
			return task, true, nil
		}
	}
	return Task{}, false, nil
}
