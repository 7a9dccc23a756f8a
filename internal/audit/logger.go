package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/groomer-scheduler/internal/models"
)

// Logger grava um AuditLog por evento.
type Logger struct {
	db      *gorm.DB
	timeout time.Duration
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db, timeout: 5 * time.Second}
}

func (l *Logger) Log(ev Event) error {
	meta, err := encodeMetadata(ev.Metadata)
	if err != nil {
		return fmt.Errorf("audit %s: %w", ev.Action, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	row := models.AuditLog{
		ActorID:   ev.ActorID,
		ActorRole: ev.ActorRole,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  meta,
	}
	return l.db.WithContext(ctx).Create(&row).Error
}

func encodeMetadata(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
