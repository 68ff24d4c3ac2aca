package dbmodels

import (
	"time"

	"github.com/lib/pq"

	"itou-backend/models"
)

// Notification is one outbox row: written in the same transaction as the
// state change that caused it, delivered later by the outbox worker.
type Notification struct {
	BaseModel
	Kind models.NotificationKind `gorm:"type:varchar(50);index"`

	ToEmails pq.StringArray `gorm:"type:text[]"`
	Subject  string         `gorm:"type:varchar(255)"`
	Body     string

	JobApplicationID *string `gorm:"type:varchar(36);index"`

	SentAt    *time.Time `gorm:"index"`
	Attempts  int
	LastError string
}

// AgencyNotification queues a PASS IAE status update for the national
// employment agency. Delivery is fire-and-forget from the workflow's point
// of view; a worker drains the queue.
type AgencyNotification struct {
	BaseModel
	JobApplicationID string `gorm:"type:varchar(36);index"`
	ApprovalNumber   string `gorm:"type:varchar(12)"`

	Status  models.AgencyNotificationStatus `gorm:"type:varchar(10);default:'pending';index"`
	Details string

	SentAt *time.Time
}
