package events

import (
	"encoding/json"
	"time"
)

// Event types published over /events.
const (
	TypeQueryStarted   = "query_started"
	TypeQueryCompleted = "query_completed"
)

// Event is the envelope every /events message rides in. Data is
// pre-marshaled so the hub never touches subscriber payloads.
type Event struct {
	Type    string          `json:"type"`
	Version int             `json:"v"`
	At      time.Time       `json:"at"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(typ string, v int, data any) Event {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	return Event{
		Type:    typ,
		Version: v,
		At:      time.Now().UTC(),
		Data:    raw,
	}
}
