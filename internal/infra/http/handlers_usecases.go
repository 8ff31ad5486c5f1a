package http

import (
	"net/http"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/governance"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
)

func actorFrom(principal usecases.Principal) usecase.Actor {
	return usecase.Actor{Type: "user", ID: principal.Subject}
}

func (s *Server) handleCreateUseCase(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	var body UseCaseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	created, err := s.governance.Create(c.Request.Context(), usecase.CreateInput{
		Snapshot:  body.toSnapshot(),
		RequestID: requestID(c),
		Actor:     actorFrom(principal),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"use_case": toUseCaseResponse(created)})
}

func (s *Server) handleGetUseCase(c *gin.Context) {
	if _, ok := principalFromContext(c); !ok {
		return
	}
	useCaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	snapshot, err := s.governance.Get(c.Request.Context(), useCaseID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"use_case": toUseCaseResponse(snapshot)})
}

func (s *Server) handleListUseCases(c *gin.Context) {
	if _, ok := principalFromContext(c); !ok {
		return
	}
	snapshots, err := s.governance.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]UseCaseResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		items = append(items, toUseCaseResponse(snapshot))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) handleUpdateUseCase(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	useCaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var body UseCaseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	result, err := s.governance.Update(c.Request.Context(), usecase.UpdateInput{
		UseCaseID: useCaseID,
		Patch:     body.toPatch(),
		RequestID: requestID(c),
		Actor:     actorFrom(principal),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	payload := gin.H{"use_case": toUseCaseResponse(result.Snapshot)}
	if result.Deactivated {
		payload["deactivated"] = true
		payload["regressed_gate"] = string(result.Regression.RegressedGate)
	}
	if result.Regression.IsLegacyUseCase {
		payload["legacy_warning"] = result.Regression.Reason
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleChangeStatus(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	useCaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		TargetStatus string `json:"target_status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetStatus == "" {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "target_status is required")
		return
	}
	result, err := s.governance.ChangeStatus(c.Request.Context(), usecase.StatusChangeInput{
		UseCaseID: useCaseID,
		Target:    usecases.LifecycleStatus(req.TargetStatus),
		RequestID: requestID(c),
		Actor:     actorFrom(principal),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if result.Blocked {
		payload := gin.H{"blocked": true}
		if result.Check != nil {
			payload["governance_check"] = toGovernanceCheckResponse(*result.Check)
		}
		if len(result.PolicyReasons) > 0 {
			payload["policy_reasons"] = result.PolicyReasons
		}
		c.JSON(http.StatusConflict, payload)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"blocked":  false,
		"use_case": toUseCaseResponse(result.Snapshot),
	})
}

func (s *Server) handleGovernanceCheck(c *gin.Context) {
	if _, ok := principalFromContext(c); !ok {
		return
	}
	useCaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	check, err := s.governance.CheckGovernance(c.Request.Context(), useCaseID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"governance_check": toGovernanceCheckResponse(check)})
}

func (s *Server) handlePhaseTransition(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	useCaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		FromPhase     string `json:"from_phase"`
		ToPhase       string `json:"to_phase"`
		Justification string `json:"justification"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.FromPhase == "" || req.ToPhase == "" {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "from_phase and to_phase are required")
		return
	}
	check, err := s.governance.ValidatePhaseTransition(c.Request.Context(), usecase.PhaseTransitionInput{
		UseCaseID:     useCaseID,
		FromPhaseID:   req.FromPhase,
		ToPhaseID:     req.ToPhase,
		Justification: req.Justification,
		RequestID:     requestID(c),
		Actor:         actorFrom(principal),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	payload := gin.H{
		"allowed":                check.Allowed,
		"requires_justification": check.RequiresJustification,
		"current_phase":          check.CurrentPhase,
		"target_phase":           check.TargetPhase,
	}
	if len(check.MissingExitFields) > 0 {
		payload["missing_exit_fields"] = check.MissingExitFields
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleListEvents(c *gin.Context) {
	if _, ok := principalFromContext(c); !ok {
		return
	}
	useCaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	events, err := s.events.ListByUseCase(c.Request.Context(), useCaseID)
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]gin.H, 0, len(events))
	for _, ev := range events {
		items = append(items, gin.H{
			"id":         ev.ID,
			"event_type": string(ev.EventType),
			"actor_type": ev.ActorType,
			"actor_id":   ev.ActorID,
			"request_id": ev.RequestID,
			"created_at": ev.CreatedAt,
			"payload":    ev.Payload,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// surfacing the activation set lets clients render which statuses are
// gated without hard-coding them.
func (s *Server) handleActivationStatuses(c *gin.Context) {
	statuses := governance.ActivationStatuses()
	out := make([]string, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, string(status))
	}
	c.JSON(http.StatusOK, gin.H{"activation_statuses": out})
}
