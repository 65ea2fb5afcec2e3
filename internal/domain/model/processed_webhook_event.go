package model

import "time"

// ProcessedWebhookEvent records a provider event id that has been claimed for crediting.
type ProcessedWebhookEvent struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   string    `gorm:"uniqueIndex;not null;size:255" json:"event_id"`
	EventType string    `gorm:"not null;size:100" json:"event_type"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (ProcessedWebhookEvent) TableName() string {
	return "processed_webhook_events"
}
