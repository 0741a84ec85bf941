package entities

import (
	"strings"
	"time"
)

// Priority levels for a task.
type Priority int

const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2
)

func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// Status tracks the workflow state of a task.
type Status int

const (
	StatusPending    Status = 0
	StatusInProgress Status = 1
	StatusCompleted  Status = 2
)

func (s Status) IsValid() bool {
	return s >= StatusPending && s <= StatusCompleted
}

// Task is the sole persisted entity. Tasks are scoped by (AccountID,
// UserID) and are soft-deleted: a deleted row stays in storage but is
// invisible to every read and write path.
type Task struct {
	ID           int64      `json:"idTask" db:"id_task"`
	AccountID    int64      `json:"idAccount" db:"id_account"`
	UserID       int64      `json:"idUser" db:"id_user"`
	Title        string     `json:"title" db:"title"`
	Description  *string    `json:"description" db:"description"`
	DueDate      *time.Time `json:"dueDate" db:"due_date"`
	Priority     Priority   `json:"priority" db:"priority"`
	Status       Status     `json:"status" db:"status"`
	DateCreated  time.Time  `json:"dateCreated" db:"date_created"`
	DateModified time.Time  `json:"dateModified" db:"date_modified"`
	Deleted      bool       `json:"-" db:"deleted"`

	// Overdue is derived, not stored; the service fills it in before a
	// task leaves the application layer.
	Overdue bool `json:"overdue" db:"-"`
}

// TaskDraft carries the caller-supplied fields of a create or update.
// Status is only validated on update; create forces StatusPending.
type TaskDraft struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Priority    Priority
	Status      Status
}

const (
	titleMinLen       = 3
	titleMaxLen       = 100
	descriptionMaxLen = 1000
)

// ValidateCreate runs the create-time rules in their fixed order and
// returns the first violation. The order is a contract: title presence,
// title length, description length, due date, priority.
func (d *TaskDraft) ValidateCreate(now time.Time) error {
	return d.validate(now, false)
}

// ValidateUpdate runs the update-time rules, which extend the create
// rules with the status range check.
func (d *TaskDraft) ValidateUpdate(now time.Time) error {
	return d.validate(now, true)
}

func (d *TaskDraft) validate(now time.Time, checkStatus bool) error {
	trimmed := strings.TrimSpace(d.Title)
	if trimmed == "" {
		return ErrTitleRequired
	}
	if len([]rune(trimmed)) < titleMinLen {
		return ErrTitleTooShort
	}
	if len([]rune(d.Title)) > titleMaxLen {
		return ErrTitleTooLong
	}
	if d.Description != nil && len([]rune(*d.Description)) > descriptionMaxLen {
		return ErrDescriptionTooLong
	}
	if d.DueDate != nil && calendarDate(*d.DueDate).Before(calendarDate(now)) {
		return ErrDueDateInPast
	}
	if !d.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if checkStatus && !d.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// NormalizedTitle returns the title as it is persisted.
func (d *TaskDraft) NormalizedTitle() string {
	return strings.TrimSpace(d.Title)
}

// calendarDate truncates to the UTC calendar date; due dates compare
// date-to-date, never with time-of-day.
func calendarDate(t time.Time) time.Time {
	y, m, day := t.UTC().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// IsOverdue reports whether a non-completed task's due date has passed.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusCompleted {
		return false
	}
	return calendarDate(*t.DueDate).Before(calendarDate(now))
}
