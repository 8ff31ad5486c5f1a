package db

import (
	"context"
	"errors"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UseCaseRepository struct {
	db *gorm.DB
}

func NewUseCaseRepository(db *gorm.DB) *UseCaseRepository {
	return &UseCaseRepository{db: db}
}

func (r *UseCaseRepository) Create(ctx context.Context, snapshot usecases.Snapshot) (usecases.Snapshot, error) {
	if r.db == nil {
		return usecases.Snapshot{}, errDBUnavailable
	}
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	model := toUseCaseModel(snapshot)
	model.UpdatedAt = snapshot.CreatedAt
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return usecases.Snapshot{}, err
	}
	return toSnapshot(model), nil
}

func (r *UseCaseRepository) Get(ctx context.Context, useCaseID string) (usecases.Snapshot, error) {
	if r.db == nil {
		return usecases.Snapshot{}, errDBUnavailable
	}
	var model UseCaseModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", useCaseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecases.Snapshot{}, usecases.ErrNotFound
		}
		return usecases.Snapshot{}, err
	}
	return toSnapshot(model), nil
}

func (r *UseCaseRepository) List(ctx context.Context) ([]usecases.Snapshot, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []UseCaseModel
	if err := r.db.WithContext(ctx).Order("created_at").Find(&models).Error; err != nil {
		return nil, err
	}
	snapshots := make([]usecases.Snapshot, 0, len(models))
	for _, model := range models {
		snapshots = append(snapshots, toSnapshot(model))
	}
	return snapshots, nil
}

func (r *UseCaseRepository) ApplyPatch(ctx context.Context, useCaseID string, patch usecases.Patch) (usecases.Snapshot, error) {
	current, err := r.Get(ctx, useCaseID)
	if err != nil {
		return usecases.Snapshot{}, err
	}
	merged := current.Apply(patch)
	model := toUseCaseModel(merged)
	model.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return usecases.Snapshot{}, err
	}
	return toSnapshot(model), nil
}

func (r *UseCaseRepository) SetStatus(ctx context.Context, useCaseID string, status usecases.LifecycleStatus) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&UseCaseModel{}).
		Where("id = ?", useCaseID).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecases.ErrNotFound
	}
	return nil
}

func toUseCaseModel(s usecases.Snapshot) UseCaseModel {
	return UseCaseModel{
		ID:                        s.ID,
		OwnerName:                 s.OwnerName,
		BusinessFunction:          s.BusinessFunction,
		Status:                    string(s.Status),
		BusinessValueScore:        s.BusinessValueScore,
		StrategicAlignmentScore:   s.StrategicAlignmentScore,
		FeasibilityScore:          s.FeasibilityScore,
		DataReadinessScore:        s.DataReadinessScore,
		RiskScore:                 s.RiskScore,
		ImpactScore:               s.ImpactScore,
		EffortScore:               s.EffortScore,
		ExplainabilityRequirement: s.ExplainabilityRequirement,
		CustomerHarmRiskTier:      s.CustomerHarmRiskTier,
		HumanAccountability:       boolToString(s.HumanAccountability),
		CrossBorderData:           boolToString(s.CrossBorderData),
		ThirdPartyModel:           boolToString(s.ThirdPartyModel),
		TOMPhase:                  s.TOMPhase,
		TOMPhaseOverride:          s.TOMPhaseOverride,
		OperatingModel:            s.OperatingModel,
		Quadrant:                  s.Quadrant,
		TShirtSize:                s.TShirtSize,
		DeploymentStatus:          s.DeploymentStatus,
		AnnualInvestment:          s.AnnualInvestment,
		CreatedAt:                 s.CreatedAt,
	}
}

func toSnapshot(m UseCaseModel) usecases.Snapshot {
	return usecases.Snapshot{
		ID:                        m.ID,
		OwnerName:                 m.OwnerName,
		BusinessFunction:          m.BusinessFunction,
		Status:                    usecases.LifecycleStatus(m.Status),
		BusinessValueScore:        m.BusinessValueScore,
		StrategicAlignmentScore:   m.StrategicAlignmentScore,
		FeasibilityScore:          m.FeasibilityScore,
		DataReadinessScore:        m.DataReadinessScore,
		RiskScore:                 m.RiskScore,
		ImpactScore:               m.ImpactScore,
		EffortScore:               m.EffortScore,
		ExplainabilityRequirement: m.ExplainabilityRequirement,
		CustomerHarmRiskTier:      m.CustomerHarmRiskTier,
		HumanAccountability:       stringToBool(m.HumanAccountability),
		CrossBorderData:           stringToBool(m.CrossBorderData),
		ThirdPartyModel:           stringToBool(m.ThirdPartyModel),
		TOMPhase:                  m.TOMPhase,
		TOMPhaseOverride:          m.TOMPhaseOverride,
		OperatingModel:            m.OperatingModel,
		Quadrant:                  m.Quadrant,
		TShirtSize:                m.TShirtSize,
		DeploymentStatus:          m.DeploymentStatus,
		AnnualInvestment:          m.AnnualInvestment,
		CreatedAt:                 m.CreatedAt,
	}
}

// The legacy data model stored flags as "true"/"false" strings with
// empty meaning unanswered. The engine only sees real booleans.
func boolToString(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "true"
	}
	return "false"
}

func stringToBool(v string) *bool {
	switch v {
	case "true":
		t := true
		return &t
	case "false":
		f := false
		return &f
	default:
		return nil
	}
}
