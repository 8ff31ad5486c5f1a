package policyrego

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/governance"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/usecases"
	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/usecase"

	"github.com/open-policy-agent/opa/rego"
)

const defaultQuery = "data.cascade.activation.result"

// Engine evaluates an organization-specific rego bundle as an overlay
// on the built-in activation gates. The bundle can only add deny
// reasons; the gates have already run by the time it is consulted.
type Engine struct {
	query rego.PreparedEvalQuery
}

type activationInput struct {
	UseCaseID        string   `json:"use_case_id"`
	OwnerName        string   `json:"owner_name"`
	BusinessFunction string   `json:"business_function"`
	Status           string   `json:"status"`
	TargetStatus     string   `json:"target_status"`
	HarmRiskTier     string   `json:"customer_harm_risk_tier"`
	ThirdPartyModel  *bool    `json:"third_party_model"`
	CrossBorderData  *bool    `json:"cross_border_data"`
	CanActivate      bool     `json:"can_activate"`
	MissingFields    []string `json:"missing_fields"`
}

type activationResult struct {
	Allow bool `json:"allow"`
	Deny  []struct {
		Code   string `json:"code"`
		Reason string `json:"reason"`
	} `json:"deny"`
}

func NewEngineFromBundlePath(ctx context.Context, bundlePath string) (*Engine, error) {
	r := rego.New(
		rego.Query(defaultQuery),
		rego.StrictBuiltinErrors(true),
		rego.Load([]string{bundlePath}, nil),
	)
	prepared, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, err
	}
	return &Engine{query: prepared}, nil
}

// NewEngineFromModule builds an engine from an inline rego module.
// Used by tests and embedded default policies.
func NewEngineFromModule(ctx context.Context, filename, module string) (*Engine, error) {
	r := rego.New(
		rego.Query(defaultQuery),
		rego.StrictBuiltinErrors(true),
		rego.Module(filename, module),
	)
	prepared, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, err
	}
	return &Engine{query: prepared}, nil
}

func (e *Engine) EvaluateActivation(ctx context.Context, s usecases.Snapshot, target usecases.LifecycleStatus, check governance.CheckResult) (usecase.PolicyDecision, error) {
	if e == nil {
		return usecase.PolicyDecision{Allow: true}, nil
	}
	input := activationInput{
		UseCaseID:        s.ID,
		OwnerName:        s.OwnerName,
		BusinessFunction: s.BusinessFunction,
		Status:           string(s.Status),
		TargetStatus:     string(target),
		HarmRiskTier:     s.CustomerHarmRiskTier,
		ThirdPartyModel:  s.ThirdPartyModel,
		CrossBorderData:  s.CrossBorderData,
		CanActivate:      check.CanActivate,
		MissingFields:    check.MissingFields,
	}
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return usecase.PolicyDecision{}, err
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// No result document means the bundle does not opine on this
		// transition; the built-in gates stand alone.
		return usecase.PolicyDecision{Allow: true}, nil
	}
	result, err := decodeResult(results[0].Expressions[0].Value)
	if err != nil {
		return usecase.PolicyDecision{}, err
	}
	decision := usecase.PolicyDecision{Allow: result.Allow}
	for _, deny := range result.Deny {
		reason := deny.Code
		if reason == "" {
			reason = deny.Reason
		}
		if reason != "" {
			decision.Reasons = append(decision.Reasons, reason)
		}
	}
	if !result.Allow && len(decision.Reasons) == 0 {
		decision.Reasons = []string{"POLICY_DENY"}
	}
	return decision, nil
}

func decodeResult(value any) (activationResult, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return activationResult{}, err
	}
	var result activationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return activationResult{}, errors.New("malformed activation policy result")
	}
	return result, nil
}
