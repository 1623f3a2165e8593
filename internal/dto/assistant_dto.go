package dto

import (
	"time"
)

type ChatRequest struct {
	SessionId string `json:"session_id,omitempty" validate:"omitempty,uuid"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type ChatResponse struct {
	SessionId    string   `json:"session_id"`
	Intent       string   `json:"intent"`
	Reply        string   `json:"reply"`
	PlanChoice   string   `json:"plan_choice,omitempty"`
	LeadCaptured bool     `json:"lead_captured"`
	Retrieved    []string `json:"retrieved"`
}

type SessionMessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SessionResponse struct {
	SessionId    string              `json:"session_id"`
	Intent       string              `json:"intent"`
	PlanChoice   string              `json:"plan_choice,omitempty"`
	LeadInfo     map[string]string   `json:"lead_info"`
	LeadCaptured bool                `json:"lead_captured"`
	Messages     []SessionMessageDTO `json:"messages"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
