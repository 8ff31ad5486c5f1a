package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/capability"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/governance"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// UseCaseBody is the request shape for create and update. Absent
// fields stay absent; a present field updates the record.
type UseCaseBody struct {
	OwnerName        *string `json:"owner_name"`
	BusinessFunction *string `json:"business_function"`

	BusinessValueScore      *int `json:"business_value_score"`
	StrategicAlignmentScore *int `json:"strategic_alignment_score"`
	FeasibilityScore        *int `json:"feasibility_score"`
	DataReadinessScore      *int `json:"data_readiness_score"`
	RiskScore               *int `json:"risk_score"`

	ImpactScore *float64 `json:"impact_score"`
	EffortScore *float64 `json:"effort_score"`

	ExplainabilityRequirement *string `json:"explainability_requirement"`
	CustomerHarmRiskTier      *string `json:"customer_harm_risk_tier"`
	HumanAccountability       *bool   `json:"human_accountability"`
	CrossBorderData           *bool   `json:"cross_border_data"`
	ThirdPartyModel           *bool   `json:"third_party_model"`

	TOMPhase         *string  `json:"tom_phase"`
	OperatingModel   *string  `json:"operating_model"`
	Quadrant         *string  `json:"quadrant"`
	TShirtSize       *string  `json:"tshirt_size"`
	DeploymentStatus *string  `json:"deployment_status"`
	AnnualInvestment *float64 `json:"annual_investment"`
}

func (b UseCaseBody) toPatch() usecases.Patch {
	return usecases.Patch{
		OwnerName:                 b.OwnerName,
		BusinessFunction:          b.BusinessFunction,
		BusinessValueScore:        b.BusinessValueScore,
		StrategicAlignmentScore:   b.StrategicAlignmentScore,
		FeasibilityScore:          b.FeasibilityScore,
		DataReadinessScore:        b.DataReadinessScore,
		RiskScore:                 b.RiskScore,
		ImpactScore:               b.ImpactScore,
		EffortScore:               b.EffortScore,
		ExplainabilityRequirement: b.ExplainabilityRequirement,
		CustomerHarmRiskTier:      b.CustomerHarmRiskTier,
		HumanAccountability:       b.HumanAccountability,
		CrossBorderData:           b.CrossBorderData,
		ThirdPartyModel:           b.ThirdPartyModel,
		TOMPhase:                  b.TOMPhase,
		OperatingModel:            b.OperatingModel,
		Quadrant:                  b.Quadrant,
		TShirtSize:                b.TShirtSize,
		DeploymentStatus:          b.DeploymentStatus,
		AnnualInvestment:          b.AnnualInvestment,
	}
}

func (b UseCaseBody) toSnapshot() usecases.Snapshot {
	return usecases.Snapshot{}.Apply(b.toPatch())
}

type UseCaseResponse struct {
	ID               string `json:"id"`
	OwnerName        string `json:"owner_name,omitempty"`
	BusinessFunction string `json:"business_function,omitempty"`
	Status           string `json:"status"`

	BusinessValueScore      *int `json:"business_value_score,omitempty"`
	StrategicAlignmentScore *int `json:"strategic_alignment_score,omitempty"`
	FeasibilityScore        *int `json:"feasibility_score,omitempty"`
	DataReadinessScore      *int `json:"data_readiness_score,omitempty"`
	RiskScore               *int `json:"risk_score,omitempty"`

	ImpactScore *float64 `json:"impact_score,omitempty"`
	EffortScore *float64 `json:"effort_score,omitempty"`

	ExplainabilityRequirement string `json:"explainability_requirement,omitempty"`
	CustomerHarmRiskTier      string `json:"customer_harm_risk_tier,omitempty"`
	HumanAccountability       *bool  `json:"human_accountability,omitempty"`
	CrossBorderData           *bool  `json:"cross_border_data,omitempty"`
	ThirdPartyModel           *bool  `json:"third_party_model,omitempty"`

	TOMPhase         string   `json:"tom_phase,omitempty"`
	OperatingModel   string   `json:"operating_model,omitempty"`
	Quadrant         string   `json:"quadrant,omitempty"`
	TShirtSize       string   `json:"tshirt_size,omitempty"`
	DeploymentStatus string   `json:"deployment_status,omitempty"`
	AnnualInvestment *float64 `json:"annual_investment,omitempty"`

	CreatedAt string `json:"created_at"`
}

func toUseCaseResponse(s usecases.Snapshot) UseCaseResponse {
	return UseCaseResponse{
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
		HumanAccountability:       s.HumanAccountability,
		CrossBorderData:           s.CrossBorderData,
		ThirdPartyModel:           s.ThirdPartyModel,
		TOMPhase:                  s.TOMPhase,
		OperatingModel:            s.OperatingModel,
		Quadrant:                  s.Quadrant,
		TShirtSize:                s.TShirtSize,
		DeploymentStatus:          s.DeploymentStatus,
		AnnualInvestment:          s.AnnualInvestment,
		CreatedAt:                 s.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

type GateResultResponse struct {
	GateID        string   `json:"gate_id"`
	Passed        bool     `json:"passed"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

type GovernanceCheckResponse struct {
	Gate1         GateResultResponse `json:"gate1_operating_model"`
	Gate2         GateResultResponse `json:"gate2_intake_prioritization"`
	Gate3         GateResultResponse `json:"gate3_responsible_ai"`
	MissingFields []string           `json:"missing_fields,omitempty"`
	CanActivate   bool               `json:"can_activate"`
}

func toGovernanceCheckResponse(check governance.CheckResult) GovernanceCheckResponse {
	toGate := func(g governance.GateResult) GateResultResponse {
		return GateResultResponse{
			GateID:        string(g.GateID),
			Passed:        g.Passed,
			MissingFields: g.MissingFields,
		}
	}
	return GovernanceCheckResponse{
		Gate1:         toGate(check.Gate1),
		Gate2:         toGate(check.Gate2),
		Gate3:         toGate(check.Gate3),
		MissingFields: check.MissingFields,
		CanActivate:   check.CanActivate,
	}
}

type ProjectionPointResponse struct {
	MonthOffset            int     `json:"month_offset"`
	VendorFte              float64 `json:"vendor_fte"`
	ClientFte              float64 `json:"client_fte"`
	IndependencePercentage int     `json:"independence_percentage"`
}

func toProjectionResponse(points []capability.ProjectionPoint) []ProjectionPointResponse {
	out := make([]ProjectionPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, ProjectionPointResponse{
			MonthOffset:            p.MonthOffset,
			VendorFte:              p.VendorFte,
			ClientFte:              p.ClientFte,
			IndependencePercentage: p.IndependencePercentage,
		})
	}
	return out
}

func parseUUIDParam(c *gin.Context, name string) (string, bool) {
	value := strings.TrimSpace(c.Param(name))
	if value == "" {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", name+" is required")
		return "", false
	}
	if _, err := uuid.Parse(value); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", name+" must be a UUID")
		return "", false
	}
	return value, true
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Code: code, Message: message})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecases.ErrUnauthorized):
		writeErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
	case errors.Is(err, usecases.ErrForbidden):
		writeErrorCode(c, http.StatusForbidden, "FORBIDDEN", "forbidden")
	case errors.Is(err, usecases.ErrNotFound):
		writeErrorCode(c, http.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, usecases.ErrConflict):
		writeErrorCode(c, http.StatusConflict, "CONFLICT", "conflict")
	case errors.Is(err, usecases.ErrInvalidArgument):
		writeErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid argument")
	default:
		writeErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
