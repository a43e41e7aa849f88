// Package analyzer joins revenue plans with cost analyses.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"farm/entities"
	"farm/pkg/report"
)

// Result is the per-acre economics of one revenue plan.
type Result struct {
	PlanID         int     `json:"plan_id"`
	PlanName       string  `json:"plan_name"`
	Crop           string  `json:"crop"`
	Area           float64 `json:"area"`
	CostAnalysisID int     `json:"cost_analysis_id"`
	RevenuePerAcre float64 `json:"revenue_per_acre"`
	CostPerAcre    float64 `json:"cost_per_acre"`
	ProfitPerAcre  float64 `json:"profit_per_acre"`
	ProfitMargin   float64 `json:"profit_margin"` // percent
	TotalProfit    float64 `json:"total_profit"`
}

// UnmatchedError lists revenue plans with no cost analysis for their crop.
type UnmatchedError struct {
	Plans []string
}

func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("no cost analysis for plans: %s", strings.Join(e.Plans, ", "))
}

// Analyze produces one Result per plan that has a cost analysis with the same
// crop label. When a crop has several analyses the one with the latest
// creation stamp wins; on equal stamps the earliest in the list wins. Plans
// without a match are left out. Results are ordered by profit per acre,
// highest first, with input order kept among equals.
func Analyze(plans []entities.RevenuePlan, costs []entities.CostAnalysis) []Result {
	res, _ := analyze(plans, costs)
	return res
}

// AnalyzeStrict is Analyze, but fails with *UnmatchedError if any plan has
// no cost analysis.
func AnalyzeStrict(plans []entities.RevenuePlan, costs []entities.CostAnalysis) ([]Result, error) {
	res, missing := analyze(plans, costs)
	if len(missing) > 0 {
		return nil, &UnmatchedError{Plans: missing}
	}
	return res, nil
}

func analyze(plans []entities.RevenuePlan, costs []entities.CostAnalysis) ([]Result, []string) {
	latest := latestByCrop(costs)
	out := make([]Result, 0, len(plans))
	var missing []string
	for _, p := range plans {
		c, ok := latest[p.CropType]
		if !ok {
			missing = append(missing, p.Name)
			continue
		}
		rpa := report.SafeDivide(p.TotalExpectedRevenue, p.PlannedArea, 0)
		ppa := rpa - c.CostPerAcre
		out = append(out, Result{
			PlanID:         p.ID,
			PlanName:       p.Name,
			Crop:           p.CropType,
			Area:           p.PlannedArea,
			CostAnalysisID: c.ID,
			RevenuePerAcre: rpa,
			CostPerAcre:    c.CostPerAcre,
			ProfitPerAcre:  ppa,
			ProfitMargin:   report.Percentage(ppa, rpa),
			TotalProfit:    ppa * p.PlannedArea,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProfitPerAcre > out[j].ProfitPerAcre })
	return out, missing
}

func latestByCrop(costs []entities.CostAnalysis) map[string]entities.CostAnalysis {
	m := make(map[string]entities.CostAnalysis, len(costs))
	for _, c := range costs {
		cur, ok := m[c.Crop]
		if !ok || c.Created() > cur.Created() {
			m[c.Crop] = c
		}
	}
	return m
}

// Summary totals a set of results.
type Summary struct {
	Count           int     `json:"count"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCost       float64 `json:"total_cost"`
	TotalProfit     float64 `json:"total_profit"`
	OverallMargin   float64 `json:"overall_margin"`
	MostProfitable  *Result `json:"most_profitable,omitempty"`
	LeastProfitable *Result `json:"least_profitable,omitempty"`
	// LeastIsLoss is set when the weakest result loses money.
	LeastIsLoss bool `json:"least_is_loss"`
}

// Summarize expects results in Analyze order.
func Summarize(results []Result) Summary {
	s := Summary{Count: len(results)}
	for _, r := range results {
		s.TotalRevenue += r.RevenuePerAcre * r.Area
		s.TotalCost += r.CostPerAcre * r.Area
	}
	s.TotalProfit = s.TotalRevenue - s.TotalCost
	s.OverallMargin = report.Percentage(s.TotalProfit, s.TotalRevenue)
	if len(results) > 0 {
		most, least := results[0], results[len(results)-1]
		s.MostProfitable, s.LeastProfitable = &most, &least
		s.LeastIsLoss = least.ProfitPerAcre < 0
	}
	return s
}
