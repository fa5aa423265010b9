package domain

import "time"

// Score event actions
const (
	ScoreActionSubmit = "submit"
	ScoreActionUpdate = "update"
	ScoreActionDelete = "delete"
)

// ScoreEvent describes a score mutation for the audit stream and for
// websocket broadcasts.
type ScoreEvent struct {
	Game      string    `json:"game"`
	Level     string    `json:"level"`
	Player    string    `json:"player"`
	Value     int64     `json:"value"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
