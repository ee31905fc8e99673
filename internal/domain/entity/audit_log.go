package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas por los triggers de auditoría.
const (
	AuditActionInsert = "INSERT"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditLog entrada de la bitácora. Solo la escriben los triggers de la base de datos;
// la aplicación la consulta en modo lectura.
type AuditLog struct {
	ID         int64
	ActorID    string // vacío = rol de servicio
	Action     string
	EntityType string // nombre de la tabla: products, sales, ...
	EntityID   string
	OldData    json.RawMessage
	NewData    json.RawMessage
	CreatedAt  time.Time
}
