package db

import (
	"context"
	"encoding/json"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Append(ctx context.Context, event usecases.Event) (usecases.Event, error) {
	if r.db == nil {
		return usecases.Event{}, errDBUnavailable
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	var payload []byte
	if event.Payload != nil {
		encoded, err := json.Marshal(event.Payload)
		if err != nil {
			return usecases.Event{}, err
		}
		payload = encoded
	}
	model := GovernanceEventModel{
		ID:          event.ID,
		UseCaseID:   event.UseCaseID,
		EventType:   string(event.EventType),
		ActorType:   event.ActorType,
		ActorID:     event.ActorID,
		RequestID:   event.RequestID,
		CreatedAt:   event.CreatedAt,
		PayloadJSON: payload,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return usecases.Event{}, err
	}
	return event, nil
}

func (r *EventRepository) ListByUseCase(ctx context.Context, useCaseID string) ([]usecases.Event, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []GovernanceEventModel
	err := r.db.WithContext(ctx).
		Where("use_case_id = ?", useCaseID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	events := make([]usecases.Event, 0, len(models))
	for _, model := range models {
		event := usecases.Event{
			ID:        model.ID,
			UseCaseID: model.UseCaseID,
			EventType: usecases.EventType(model.EventType),
			ActorType: model.ActorType,
			ActorID:   model.ActorID,
			RequestID: model.RequestID,
			CreatedAt: model.CreatedAt,
		}
		if len(model.PayloadJSON) > 0 {
			if err := json.Unmarshal(model.PayloadJSON, &event.Payload); err != nil {
				return nil, err
			}
		}
		events = append(events, event)
	}
	return events, nil
}
