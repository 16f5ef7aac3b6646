package domain

import "time"

// Goal is a savings goal: a target amount in minor units and the amount
// collected toward it so far.
type Goal struct {
	GoalID    string     `json:"goalID"` // Primary key (UUID)
	UserID    string     `json:"userID"` // FK -> users.user_id
	Name      string     `json:"name"`
	Target    int64      `json:"target"`
	Collected int64      `json:"collected"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	AuditFields
}
