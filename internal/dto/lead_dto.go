package dto

import "time"

// LeadCapturedMessage is the payload published on the in-process LEAD_CAPTURED topic.
type LeadCapturedMessage struct {
	SessionId  string    `json:"session_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Platform   string    `json:"platform"`
	Plan       string    `json:"plan"`
	CapturedAt time.Time `json:"captured_at"`
}

// ExportLeadsRequest filters the export; zero values mean no filter.
type ExportLeadsRequest struct {
	Plan     string
	Platform string
	From     time.Time
	To       time.Time
	Limit    int
	Newest   bool // newest first
}

type ExportLeadsResponse struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}
