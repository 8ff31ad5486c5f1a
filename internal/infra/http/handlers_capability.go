package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/capability"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleRunDerivation(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	var req struct {
		Force  bool `json:"force"`
		DryRun bool `json:"dry_run"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
			return
		}
	}
	report, err := s.derivation.RunBenchmarkDerivation(c.Request.Context(), usecase.BatchOptions{
		ForceRecalculate: req.Force,
		DryRun:           req.DryRun,
		RequestID:        requestID(c),
		Actor:            actorFrom(principal),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	results := make([]gin.H, 0, len(report.Results))
	for _, r := range report.Results {
		item := gin.H{"use_case_id": r.UseCaseID, "outcome": string(r.Outcome)}
		if r.Reason != "" {
			item["reason"] = r.Reason
		}
		results = append(results, item)
	}
	c.JSON(http.StatusOK, gin.H{
		"derived": report.Derived,
		"skipped": report.Skipped,
		"errors":  report.Errors,
		"results": results,
	})
}

func (s *Server) handleDeriveOne(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	useCaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Force bool `json:"force"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
			return
		}
	}
	result, err := s.derivation.DeriveOne(c.Request.Context(), useCaseID, usecase.BatchOptions{
		ForceRecalculate: req.Force,
		RequestID:        requestID(c),
		Actor:            actorFrom(principal),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	payload := gin.H{"use_case_id": result.UseCaseID, "outcome": string(result.Outcome)}
	if result.Reason != "" {
		payload["reason"] = result.Reason
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleGetCapability(c *gin.Context) {
	if _, ok := principalFromContext(c); !ok {
		return
	}
	useCaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	transition, err := s.capabilities.Get(c.Request.Context(), useCaseID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"capability_transition": transition})
}

// handleSetCapabilityOverride replaces derived forecast fields with
// hand-authored values. The record is marked manual so batch runs
// leave it alone until an admin forces a recalculation.
func (s *Server) handleSetCapabilityOverride(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	useCaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		IndependencePercentage *int     `json:"independence_percentage"`
		VendorFte              *float64 `json:"vendor_fte"`
		ClientFte              *float64 `json:"client_fte"`
		TrainingHoursCompleted *float64 `json:"training_hours_completed"`
		TrainingHoursPlanned   *float64 `json:"training_hours_planned"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if req.IndependencePercentage == nil || *req.IndependencePercentage < 0 || *req.IndependencePercentage > 100 {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_INDEPENDENCE", "independence_percentage must be 0..100")
		return
	}
	if _, err := s.governance.Get(c.Request.Context(), useCaseID); err != nil {
		writeError(c, err)
		return
	}

	transition := capability.Transition{UseCaseID: useCaseID}
	if existing, err := s.capabilities.Get(c.Request.Context(), useCaseID); err == nil && existing != nil {
		transition = *existing
	} else if err != nil && !errors.Is(err, usecases.ErrNotFound) {
		writeError(c, err)
		return
	}
	transition.IndependencePercentage = *req.IndependencePercentage
	if req.VendorFte != nil {
		transition.Staffing.Current.Vendor = *req.VendorFte
	}
	if req.ClientFte != nil {
		transition.Staffing.Current.Client = *req.ClientFte
	}
	if req.TrainingHoursCompleted != nil {
		transition.Training.TotalHoursCompleted = *req.TrainingHoursCompleted
	}
	if req.TrainingHoursPlanned != nil {
		transition.Training.TotalHoursPlanned = *req.TrainingHoursPlanned
	}

	if err := s.derivation.SetManualOverride(c.Request.Context(), transition, usecase.BatchOptions{
		RequestID: requestID(c),
		Actor:     actorFrom(principal),
	}); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"capability_transition": transition, "derived": false})
}

func (s *Server) handlePortfolioSummary(c *gin.Context) {
	if _, ok := principalFromContext(c); !ok {
		return
	}
	summary, err := s.portfolio.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	payload := gin.H{
		"tracked_use_cases":        summary.TrackedUseCases,
		"independence_percentage":  summary.IndependencePercentage,
		"total_vendor_fte":         summary.TotalVendorFte,
		"total_client_fte":         summary.TotalClientFte,
		"milestones_completed":     summary.MilestonesCompleted,
		"milestones_in_progress":   summary.MilestonesInProgress,
		"training_hours_completed": summary.TrainingHoursCompleted,
		"training_hours_planned":   summary.TrainingHoursPlanned,
	}
	if summary.ProjectedGoalMonth != nil {
		payload["projected_goal_month"] = summary.ProjectedGoalMonth.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleStaffingProjection(c *gin.Context) {
	if _, ok := principalFromContext(c); !ok {
		return
	}
	points, err := s.portfolio.StaffingProjection(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": toProjectionResponse(points)})
}
