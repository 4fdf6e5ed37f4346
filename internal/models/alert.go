// internal/models/alert.go
package models

import "time"

// TimestampJustNow is the display marker given to freshly raised alerts.
const TimestampJustNow = "Just now"

type Alert struct {
	ID        string        `json:"id"`
	Type      AlertType     `json:"type"`
	Category  AlertCategory `json:"category"`
	Message   string        `json:"message"`
	Timestamp string        `json:"timestamp"`
	CreatedAt time.Time     `json:"created_at"`
	IsRead    bool          `json:"is_read"`
}
