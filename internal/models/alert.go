package models

import "time"

// ProactiveAlert is a dismissible banner produced by one of the alert detectors.
// Alerts are created fresh on every engine run and never persisted by it.
type ProactiveAlert struct {
	ID          string         `json:"id"`
	Key         string         `json:"key"` // stable type-suffix key, used for dismissal
	Type        AlertType      `json:"type"`
	Priority    AlertPriority  `json:"priority"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ActionLabel string         `json:"action_label,omitempty"`
	ActionPath  string         `json:"action_path,omitempty"`
	Icon        string         `json:"icon"`
	Color       AlertColor     `json:"color"`
	Dismissible bool           `json:"dismissible"`
	CreatedAt   time.Time      `json:"created_at"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
