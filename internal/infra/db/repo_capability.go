package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/capability"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CapabilityRepository struct {
	db *gorm.DB
}

func NewCapabilityRepository(db *gorm.DB) *CapabilityRepository {
	return &CapabilityRepository{db: db}
}

func (r *CapabilityRepository) Get(ctx context.Context, useCaseID string) (*capability.Transition, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model CapabilityTransitionModel
	err := r.db.WithContext(ctx).First(&model, "use_case_id = ?", useCaseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecases.ErrNotFound
		}
		return nil, err
	}
	return decodeTransition(model)
}

func (r *CapabilityRepository) Save(ctx context.Context, transition capability.Transition) error {
	if r.db == nil {
		return errDBUnavailable
	}
	payload, err := json.Marshal(transition)
	if err != nil {
		return err
	}
	model := CapabilityTransitionModel{
		UseCaseID:              transition.UseCaseID,
		IndependencePercentage: transition.IndependencePercentage,
		Derived:                transition.Provenance.Derived,
		DerivedAt:              transition.Provenance.DerivedAt,
		TransitionJSON:         payload,
		UpdatedAt:              time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "use_case_id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
}

// ListTracked joins transitions with their use case's investment
// figure for portfolio weighting.
func (r *CapabilityRepository) ListTracked(ctx context.Context) ([]capability.TrackedUseCase, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []CapabilityTransitionModel
	if err := r.db.WithContext(ctx).Order("use_case_id").Find(&models).Error; err != nil {
		return nil, err
	}
	var useCaseRows []UseCaseModel
	if err := r.db.WithContext(ctx).Select("id", "annual_investment").Find(&useCaseRows).Error; err != nil {
		return nil, err
	}
	investments := make(map[string]*float64, len(useCaseRows))
	for _, row := range useCaseRows {
		investments[row.ID] = row.AnnualInvestment
	}

	tracked := make([]capability.TrackedUseCase, 0, len(models))
	for _, model := range models {
		transition, err := decodeTransition(model)
		if err != nil {
			return nil, err
		}
		tracked = append(tracked, capability.TrackedUseCase{
			UseCaseID:  model.UseCaseID,
			Investment: investments[model.UseCaseID],
			Transition: *transition,
		})
	}
	return tracked, nil
}

func decodeTransition(model CapabilityTransitionModel) (*capability.Transition, error) {
	var transition capability.Transition
	if err := json.Unmarshal(model.TransitionJSON, &transition); err != nil {
		return nil, err
	}
	transition.UseCaseID = model.UseCaseID
	return &transition, nil
}
