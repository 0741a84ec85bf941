package entities_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/core/internal/domain/entities"
)

var testNow = time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC)

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestTaskDraft_ValidateCreate(t *testing.T) {
	t.Parallel()

	valid := entities.TaskDraft{
		Title:    "Buy milk",
		Priority: entities.PriorityMedium,
	}

	tests := []struct {
		name    string
		mutate  func(d *entities.TaskDraft)
		wantErr *entities.DomainError
	}{
		{
			name:   "valid draft",
			mutate: func(d *entities.TaskDraft) {},
		},
		{
			name:    "empty title",
			mutate:  func(d *entities.TaskDraft) { d.Title = "" },
			wantErr: entities.ErrTitleRequired,
		},
		{
			name:    "whitespace only title",
			mutate:  func(d *entities.TaskDraft) { d.Title = "   \t " },
			wantErr: entities.ErrTitleRequired,
		},
		{
			name:    "two trimmed characters",
			mutate:  func(d *entities.TaskDraft) { d.Title = "  ab  " },
			wantErr: entities.ErrTitleTooShort,
		},
		{
			name:   "exactly three trimmed characters",
			mutate: func(d *entities.TaskDraft) { d.Title = " abc " },
		},
		{
			name:    "raw title over 100 characters",
			mutate:  func(d *entities.TaskDraft) { d.Title = strings.Repeat("x", 101) },
			wantErr: entities.ErrTitleTooLong,
		},
		{
			name:   "raw title exactly 100 characters",
			mutate: func(d *entities.TaskDraft) { d.Title = strings.Repeat("x", 100) },
		},
		{
			name:    "description over 1000 characters",
			mutate:  func(d *entities.TaskDraft) { d.Description = strPtr(strings.Repeat("d", 1001)) },
			wantErr: entities.ErrDescriptionTooLong,
		},
		{
			name:   "description exactly 1000 characters",
			mutate: func(d *entities.TaskDraft) { d.Description = strPtr(strings.Repeat("d", 1000)) },
		},
		{
			name:   "nil description",
			mutate: func(d *entities.TaskDraft) { d.Description = nil },
		},
		{
			name:    "due date yesterday",
			mutate:  func(d *entities.TaskDraft) { d.DueDate = timePtr(testNow.AddDate(0, 0, -1)) },
			wantErr: entities.ErrDueDateInPast,
		},
		{
			name: "due date today with earlier time of day",
			mutate: func(d *entities.TaskDraft) {
				d.DueDate = timePtr(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
			},
		},
		{
			name:   "due date tomorrow",
			mutate: func(d *entities.TaskDraft) { d.DueDate = timePtr(testNow.AddDate(0, 0, 1)) },
		},
		{
			name:    "negative priority",
			mutate:  func(d *entities.TaskDraft) { d.Priority = entities.Priority(-1) },
			wantErr: entities.ErrInvalidPriority,
		},
		{
			name:    "priority above range",
			mutate:  func(d *entities.TaskDraft) { d.Priority = entities.Priority(3) },
			wantErr: entities.ErrInvalidPriority,
		},
		{
			name: "invalid status ignored on create",
			mutate: func(d *entities.TaskDraft) {
				d.Status = entities.Status(7)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			draft := valid
			tt.mutate(&draft)

			err := draft.ValidateCreate(testNow)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantErr, err)
			}
		})
	}
}

func TestTaskDraft_ValidateUpdate_StatusRange(t *testing.T) {
	t.Parallel()

	draft := entities.TaskDraft{
		Title:    "Refill stock",
		Priority: entities.PriorityHigh,
		Status:   entities.Status(3),
	}

	assert.Equal(t, entities.ErrInvalidStatus, draft.ValidateUpdate(testNow))

	draft.Status = entities.StatusCompleted
	assert.NoError(t, draft.ValidateUpdate(testNow))
}

// The checks run in a fixed order and the first violation wins: a draft
// breaking every rule at once must still report the title failure.
func TestTaskDraft_Validate_FirstViolationWins(t *testing.T) {
	t.Parallel()

	draft := entities.TaskDraft{
		Title:       "x",
		Description: strPtr(strings.Repeat("d", 2000)),
		DueDate:     timePtr(testNow.AddDate(0, 0, -30)),
		Priority:    entities.Priority(9),
		Status:      entities.Status(9),
	}

	assert.Equal(t, entities.ErrTitleTooShort, draft.ValidateUpdate(testNow))

	// Fixing the title exposes the next rule in order.
	draft.Title = "A proper title"
	assert.Equal(t, entities.ErrDescriptionTooLong, draft.ValidateUpdate(testNow))

	draft.Description = nil
	assert.Equal(t, entities.ErrDueDateInPast, draft.ValidateUpdate(testNow))

	draft.DueDate = nil
	assert.Equal(t, entities.ErrInvalidPriority, draft.ValidateUpdate(testNow))

	draft.Priority = entities.PriorityLow
	assert.Equal(t, entities.ErrInvalidStatus, draft.ValidateUpdate(testNow))
}

func TestTaskDraft_DueDateComparedAsUTCCalendarDate(t *testing.T) {
	t.Parallel()

	// 23:00 in UTC-5 on March 14 is March 15 in UTC, i.e. today.
	loc := time.FixedZone("UTC-5", -5*3600)
	due := time.Date(2026, 3, 14, 23, 0, 0, 0, loc)

	draft := entities.TaskDraft{
		Title:    "Timezone edge",
		Priority: entities.PriorityLow,
		DueDate:  &due,
	}

	require.NoError(t, draft.ValidateCreate(testNow))
}

func TestTaskDraft_NormalizedTitle(t *testing.T) {
	t.Parallel()

	draft := entities.TaskDraft{Title: "  Buy milk  "}
	assert.Equal(t, "Buy milk", draft.NormalizedTitle())
}

func TestPriorityStatus_IsValid(t *testing.T) {
	t.Parallel()

	for v := -2; v <= 4; v++ {
		want := v >= 0 && v <= 2
		assert.Equal(t, want, entities.Priority(v).IsValid(), "priority %d", v)
		assert.Equal(t, want, entities.Status(v).IsValid(), "status %d", v)
	}
}

func TestTask_IsOverdue(t *testing.T) {
	t.Parallel()

	past := testNow.AddDate(0, 0, -2)

	task := entities.Task{DueDate: &past, Status: entities.StatusPending}
	assert.True(t, task.IsOverdue(testNow))

	task.Status = entities.StatusCompleted
	assert.False(t, task.IsOverdue(testNow))

	task = entities.Task{Status: entities.StatusPending}
	assert.False(t, task.IsOverdue(testNow))
}
