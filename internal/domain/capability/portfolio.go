package capability

import (
	"math"
	"time"
)

const (
	portfolioIndependenceGoal = 85
	// Flat growth assumption for the naive projection, in
	// independence points per month.
	assumedMonthlyGrowth = 5
)

// TrackedUseCase pairs a capability transition with the investment
// figure used to weight it in portfolio rollups.
type TrackedUseCase struct {
	UseCaseID  string
	Investment *float64
	Transition Transition
}

type PortfolioSummary struct {
	TrackedUseCases        int
	IndependencePercentage float64
	TotalVendorFte         float64
	TotalClientFte         float64
	MilestonesCompleted    int
	MilestonesInProgress   int
	TrainingHoursCompleted float64
	TrainingHoursPlanned   float64
	ProjectedGoalMonth     *time.Time
}

type ProjectionPoint struct {
	MonthOffset            int
	VendorFte              float64
	ClientFte              float64
	IndependencePercentage int
}

// AggregatePortfolio rolls tracked use cases into portfolio totals.
// Independence is an investment-weighted average; a use case with no
// investment figure gets weight 1 rather than dropping out. The goal
// month is a naive linear projection to 85% at 5 points/month, nil
// when the portfolio is already there.
func AggregatePortfolio(tracked []TrackedUseCase, now time.Time) PortfolioSummary {
	summary := PortfolioSummary{TrackedUseCases: len(tracked)}
	var weightedSum, weightTotal float64
	for _, uc := range tracked {
		weight := 1.0
		if uc.Investment != nil && *uc.Investment > 0 {
			weight = *uc.Investment
		}
		weightedSum += float64(uc.Transition.IndependencePercentage) * weight
		weightTotal += weight

		summary.TotalVendorFte += uc.Transition.Staffing.Current.Vendor
		summary.TotalClientFte += uc.Transition.Staffing.Current.Client
		summary.MilestonesCompleted += len(uc.Transition.KnowledgeTransfer.CompletedIDs)
		if uc.Transition.KnowledgeTransfer.InProgressID != "" {
			summary.MilestonesInProgress++
		}
		summary.TrainingHoursCompleted += uc.Transition.Training.TotalHoursCompleted
		summary.TrainingHoursPlanned += uc.Transition.Training.TotalHoursPlanned
	}
	if weightTotal > 0 {
		summary.IndependencePercentage = round1(weightedSum / weightTotal)
	}
	summary.TotalVendorFte = round1(summary.TotalVendorFte)
	summary.TotalClientFte = round1(summary.TotalClientFte)

	if summary.TrackedUseCases > 0 && summary.IndependencePercentage < portfolioIndependenceGoal {
		months := int(math.Ceil((portfolioIndependenceGoal - summary.IndependencePercentage) / assumedMonthlyGrowth))
		goal := now.AddDate(0, months, 0)
		summary.ProjectedGoalMonth = &goal
	}
	return summary
}

// AggregateStaffingProjection sums per-use-case staffing into four
// portfolio-wide time points. Independence at each point comes from
// the summed totals, not from averaging per-record percentages, so
// small use cases cannot distort it.
func AggregateStaffingProjection(tracked []TrackedUseCase) []ProjectionPoint {
	points := []ProjectionPoint{
		{MonthOffset: 0},
		{MonthOffset: 6},
		{MonthOffset: 12},
		{MonthOffset: 18},
	}
	for _, uc := range tracked {
		staffing := uc.Transition.Staffing
		points[0].VendorFte += staffing.Current.Vendor
		points[0].ClientFte += staffing.Current.Client
		points[1].VendorFte += staffing.Planned.Month6.Vendor
		points[1].ClientFte += staffing.Planned.Month6.Client
		points[2].VendorFte += staffing.Planned.Month12.Vendor
		points[2].ClientFte += staffing.Planned.Month12.Client
		points[3].VendorFte += staffing.Planned.Month18.Vendor
		points[3].ClientFte += staffing.Planned.Month18.Client
	}
	for i := range points {
		points[i].VendorFte = round1(points[i].VendorFte)
		points[i].ClientFte = round1(points[i].ClientFte)
		total := points[i].VendorFte + points[i].ClientFte
		if total > 0 {
			points[i].IndependencePercentage = int(math.Round(points[i].ClientFte / total * 100))
		}
	}
	return points
}
