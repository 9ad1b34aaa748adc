package dto

type ChatRequest struct {
	SessionId string `json:"session_id"`
	Message   string `json:"message" validate:"required"`
}

type ChatResponse struct {
	SessionId string `json:"session_id"`
	Answer    string `json:"answer"`
}

type ChatTurnDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SessionContextResponse struct {
	SessionId   string        `json:"session_id"`
	ActivePart  string        `json:"active_part,omitempty"`
	ActiveModel string        `json:"active_model,omitempty"`
	ActiveOrder string        `json:"active_order,omitempty"`
	LastQuery   string        `json:"last_query,omitempty"`
	History     []ChatTurnDTO `json:"history"`
}
