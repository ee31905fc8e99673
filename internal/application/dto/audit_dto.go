package dto

import (
	"encoding/json"
	"time"
)

// AuditListRequest filtros de la bitácora (query string).
type AuditListRequest struct {
	EntityType string `query:"entity_type"`
	EntityID   string `query:"entity_id"`
	Action     string `query:"action"`
	ActorID    string `query:"actor_id"`
	From       string `query:"from"`
	To         string `query:"to"`
	PageRequest
}

// AuditLogResponse entrada de la bitácora.
type AuditLogResponse struct {
	ID         int64           `json:"id"`
	ActorID    string          `json:"actor_id,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	OldData    json.RawMessage `json:"old_data,omitempty"`
	NewData    json.RawMessage `json:"new_data,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AuditListResponse página de la bitácora.
type AuditListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
