// Package models defines the payloads for mirrored caption events.
package models

// CaptionPartial represents an interim transcript update for a session.
type CaptionPartial struct {
	EventType string `json:"eventType"`
	SessionID string `json:"sessionId"`
	Timestamp int64  `json:"timestamp"`
	Text      string `json:"text"`
}

// CaptionFinal represents a committed transcript segment.
type CaptionFinal struct {
	EventType    string  `json:"eventType"`
	SessionID    string  `json:"sessionId"`
	Timestamp    int64   `json:"timestamp"`
	Text         string  `json:"text"`
	Confidence   float64 `json:"confidence"`
	SegmentIndex int     `json:"segmentIndex"`
}
