package models

import "time"

// Task statuses. The lifecycle is open -> assigned -> validated|needs_review;
// the two final states are terminal for this server.
const (
	StatusOpen        = "open"
	StatusAssigned    = "assigned"
	StatusValidated   = "validated"
	StatusNeedsReview = "needs_review"
)

// Task types: with an "offer" the creator performs the task for others,
// with a "request" the creator pays for the task to be performed.
const (
	TaskTypeOffer   = "offer"
	TaskTypeRequest = "request"
)

type Task struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Duration         int               `json:"duration"`
	CreditsOffered   int               `json:"credits_offered"`
	TaskType         string            `json:"task_type"`
	SkillsRequired   []string          `json:"skills_required"`
	Location         string            `json:"location"`
	CreatedBy        string            `json:"created_by"`
	AssignedTo       *string           `json:"assigned_to"`
	Status           string            `json:"status"`
	BeforePhoto      *string           `json:"before_photo"`
	AfterPhoto       *string           `json:"after_photo"`
	ValidationResult *ValidationResult `json:"validation_result"`
	CreatedAt        time.Time         `json:"created_at"`
	CompletedAt      *time.Time        `json:"completed_at"`
}

// TaskCreate is the client payload for creating a task. Duration is in
// minutes and is only validated here, at creation time.
type TaskCreate struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Duration       int      `json:"duration"`
	CreditsOffered int      `json:"credits_offered"`
	TaskType       string   `json:"task_type"`
	SkillsRequired []string `json:"skills_required"`
	Location       string   `json:"location"`
}

// TaskUpdate is a partial update: nil fields are left untouched.
type TaskUpdate struct {
	Status      *string `json:"status"`
	AssignedTo  *string `json:"assigned_to"`
	BeforePhoto *string `json:"before_photo"`
	AfterPhoto  *string `json:"after_photo"`
}

// Empty reports whether the update would touch no fields.
func (u *TaskUpdate) Empty() bool {
	return u.Status == nil && u.AssignedTo == nil && u.BeforePhoto == nil && u.AfterPhoto == nil
}

// TaskFilter narrows the public task listing. Status is matched exactly,
// Location as a case-insensitive substring, TaskType exactly unless empty
// or "all".
type TaskFilter struct {
	Status   string
	Location string
	TaskType string
	Limit    int
}

// ValidationResult is the structured outcome of the evidence check that
// gates the credit transfer.
type ValidationResult struct {
	Valid      bool   `json:"valid"`
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
}
