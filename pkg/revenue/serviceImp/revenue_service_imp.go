package serviceImp

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"farm/entities"
	"farm/pkg/analyzer"
	"farm/pkg/report"
	"farm/pkg/revenue/importer"
	"farm/pkg/revenue/service"
	"farm/pkg/session"
	storeSvc "farm/pkg/store/service"
	"farm/pkg/validation"
)

type revenueSvc struct {
	st *session.State
	// strict makes Profitability fail when a plan has no cost analysis
	strict bool
}

func New(st *session.State, strict bool) service.RevenueService {
	return &revenueSvc{st: st, strict: strict}
}

func (s *revenueSvc) CreatePlan(in service.RevenuePlanInput) (entities.RevenuePlan, error) {
	validation.Trim(&in)
	if in.YieldUnit == "" {
		in.YieldUnit = entities.YieldUnits[0]
	}
	s.st.Lock()
	defer s.st.Unlock()
	if in.PlanningYear == 0 {
		in.PlanningYear = s.st.Now().Year()
	}
	if err := validation.Check(in, func(ve *validation.ValidationError) {
		ve.OneOf("yield_unit", in.YieldUnit, entities.YieldUnits)
	}); err != nil {
		return entities.RevenuePlan{}, err
	}

	totalYield := in.PlannedArea * in.ExpectedYieldPerAcre
	c := s.st.RevenuePlans
	return c.Insert(entities.RevenuePlan{
		ID:                   c.NextID(),
		Name:                 in.Name,
		CropType:             in.CropType,
		PlannedArea:          in.PlannedArea,
		ExpectedYieldPerAcre: in.ExpectedYieldPerAcre,
		YieldUnit:            in.YieldUnit,
		ExpectedPrice:        in.ExpectedPrice,
		TotalExpectedYield:   totalYield,
		TotalExpectedRevenue: totalYield * in.ExpectedPrice,
		PlanningYear:         in.PlanningYear,
		Notes:                in.Notes,
		Status:               entities.RevenuePlanned,
		CreatedDate:          c.Stamp(),
	})
}

func (s *revenueSvc) UpdatePlanStatus(id int, status string) (entities.RevenuePlan, error) {
	status = strings.TrimSpace(status)
	ve := &validation.ValidationError{}
	ve.OneOf("status", status, entities.RevenuePlanStatuses)
	if err := ve.Err(); err != nil {
		return entities.RevenuePlan{}, err
	}
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.RevenuePlans.Update(id, func(p *entities.RevenuePlan) error {
		p.Status = status
		return nil
	})
}

func (s *revenueSvc) ListPlans() []entities.RevenuePlan {
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.RevenuePlans.List()
}

func (s *revenueSvc) RevenueByCrop() []report.Amount {
	return revenueByCrop(s.ListPlans())
}

func revenueByCrop(plans []entities.RevenuePlan) []report.Amount {
	return report.Ranked(report.SumBy(plans,
		func(p entities.RevenuePlan) string { return p.CropType },
		func(p entities.RevenuePlan) float64 { return p.TotalExpectedRevenue }))
}

func (s *revenueSvc) AddPrice(in service.CropPriceInput) (entities.CropPrice, error) {
	s.st.Lock()
	defer s.st.Unlock()
	return s.addPrice(in)
}

// addPrice expects the state lock to be held.
func (s *revenueSvc) addPrice(in service.CropPriceInput) (entities.CropPrice, error) {
	validation.Trim(&in)
	c := s.st.CropPrices
	if in.PriceDate == "" {
		in.PriceDate = c.Today()
	}
	if in.Unit == "" {
		in.Unit = entities.YieldUnits[0]
	}
	if err := validation.Check(in, func(ve *validation.ValidationError) {
		ve.OneOf("unit", in.Unit, entities.YieldUnits)
	}); err != nil {
		return entities.CropPrice{}, err
	}
	return c.Insert(entities.CropPrice{
		ID:           c.NextID(),
		Crop:         in.Crop,
		PriceDate:    in.PriceDate,
		Price:        in.Price,
		Unit:         in.Unit,
		MarketSource: in.MarketSource,
		Notes:        in.Notes,
		RecordedDate: c.Stamp(),
	})
}

func (s *revenueSvc) ListPrices() []entities.CropPrice {
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.CropPrices.List()
}

func (s *revenueSvc) LatestPrices() []entities.CropPrice {
	latest := map[string]entities.CropPrice{}
	for _, p := range s.ListPrices() {
		// later entries win ties on the same date
		if cur, ok := latest[p.Crop]; !ok || p.PriceDate >= cur.PriceDate {
			latest[p.Crop] = p
		}
	}
	out := make([]entities.CropPrice, 0, len(latest))
	for _, p := range latest {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Crop < out[j].Crop })
	return out
}

func (s *revenueSvc) PriceHistory(crop string) []entities.CropPrice {
	hist := s.pricesFor(crop)
	slices.Reverse(hist)
	return hist
}

// pricesFor returns crop's prices oldest first.
func (s *revenueSvc) pricesFor(crop string) []entities.CropPrice {
	crop = strings.TrimSpace(crop)
	out := report.Filter(s.ListPrices(), func(p entities.CropPrice) bool { return p.Crop == crop })
	sort.SliceStable(out, func(i, j int) bool { return out[i].PriceDate < out[j].PriceDate })
	return out
}

func (s *revenueSvc) PriceTrend(crop string) (service.PriceTrend, error) {
	prices := s.pricesFor(crop)
	if len(prices) == 0 {
		return service.PriceTrend{}, fmt.Errorf("prices for %q: %w", crop, validation.ErrNotFound)
	}
	t := service.PriceTrend{Crop: prices[0].Crop, Min: prices[0].Price, Max: prices[0].Price}
	for _, p := range prices {
		t.Points = append(t.Points, service.PricePoint{Date: p.PriceDate, Price: p.Price})
		t.Min = min(t.Min, p.Price)
		t.Max = max(t.Max, p.Price)
	}
	t.Average = report.Sum(prices, func(p entities.CropPrice) float64 { return p.Price }) / float64(len(prices))
	t.Latest = prices[len(prices)-1].Price
	if len(prices) > 1 {
		prev := prices[len(prices)-2].Price
		t.Change = t.Latest - prev
		t.ChangePercent = report.GrowthRate(prev, t.Latest)
	}
	return t, nil
}

func (s *revenueSvc) ImportPrices(r io.Reader, f importer.Format) (service.ImportResult, error) {
	rows, skipped, err := importer.Parse(r, f)
	if err != nil {
		ve := &validation.ValidationError{}
		ve.Add("file", err.Error())
		return service.ImportResult{}, ve
	}
	res := service.ImportResult{Created: []entities.CropPrice{}, Skipped: skipped}

	s.st.Lock()
	defer s.st.Unlock()
	var unsaved error
	for _, row := range rows {
		p, err := s.addPrice(service.CropPriceInput{
			Crop:         row.Crop,
			PriceDate:    row.Date,
			Price:        row.Price,
			Unit:         row.Unit,
			MarketSource: row.Source,
			Notes:        row.Notes,
		})
		var ve *validation.ValidationError
		switch {
		case errors.As(err, &ve):
			res.Skipped = append(res.Skipped, importer.Skipped{Line: row.Line, Reason: ve.Error()})
			continue
		case errors.Is(err, storeSvc.ErrNotPersisted):
			unsaved = err
		case err != nil:
			return res, err
		}
		res.Created = append(res.Created, p)
	}
	sort.SliceStable(res.Skipped, func(i, j int) bool { return res.Skipped[i].Line < res.Skipped[j].Line })
	return res, unsaved
}

func (s *revenueSvc) AddCostAnalysis(in service.CostAnalysisInput) (entities.CostAnalysis, error) {
	validation.Trim(&in)
	s.st.Lock()
	defer s.st.Unlock()
	if in.Year == 0 {
		in.Year = s.st.Now().Year()
	}
	if err := validation.Check(in, nil); err != nil {
		return entities.CostAnalysis{}, err
	}

	a := entities.CostAnalysis{
		Crop:           in.Crop,
		Area:           in.Area,
		SeedCost:       in.SeedCost,
		FertilizerCost: in.FertilizerCost,
		PesticideCost:  in.PesticideCost,
		FuelCost:       in.FuelCost,
		LaborCost:      in.LaborCost,
		EquipmentCost:  in.EquipmentCost,
		OtherCost:      in.OtherCost,
		Year:           in.Year,
	}
	for _, v := range a.Costs() {
		a.TotalCost += v
	}
	a.CostPerAcre = a.TotalCost / a.Area

	c := s.st.CostAnalyses
	a.ID = c.NextID()
	a.CreatedDate = c.Stamp()
	return c.Insert(a)
}

func (s *revenueSvc) ListCostAnalyses() []entities.CostAnalysis {
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.CostAnalyses.List()
}

func (s *revenueSvc) CostBreakdown(year int) service.CostBreakdown {
	return breakdown(year, s.costsFor(year))
}

func (s *revenueSvc) costsFor(year int) []entities.CostAnalysis {
	return report.Filter(s.ListCostAnalyses(), func(a entities.CostAnalysis) bool { return year == 0 || a.Year == year })
}

func breakdown(year int, costs []entities.CostAnalysis) service.CostBreakdown {
	b := service.CostBreakdown{Year: year, Analyses: len(costs)}
	byCat := map[string]float64{}
	for _, a := range costs {
		for i, v := range a.Costs() {
			byCat[entities.CostCategories[i]] += v
		}
		b.TotalCost += a.TotalCost
		b.TotalArea += a.Area
	}
	b.AvgCostPerAcre = report.SafeDivide(b.TotalCost, b.TotalArea, 0)
	b.Categories = report.Ranked(byCat)
	return b
}

func (s *revenueSvc) Profitability() (service.Profitability, error) {
	s.st.Lock()
	plans := s.st.RevenuePlans.List()
	costs := s.st.CostAnalyses.List()
	s.st.Unlock()

	var (
		results []analyzer.Result
		err     error
	)
	if s.strict {
		results, err = analyzer.AnalyzeStrict(plans, costs)
		if err != nil {
			return service.Profitability{}, err
		}
	} else {
		results = analyzer.Analyze(plans, costs)
	}
	return service.Profitability{Results: results, Summary: analyzer.Summarize(results)}, nil
}

func (s *revenueSvc) RevenueSummary(year int) service.RevenueSummary {
	plans := report.Filter(s.ListPlans(), func(p entities.RevenuePlan) bool { return year == 0 || p.PlanningYear == year })
	return service.RevenueSummary{
		Year:         year,
		Plans:        plans,
		TotalArea:    report.Sum(plans, func(p entities.RevenuePlan) float64 { return p.PlannedArea }),
		TotalRevenue: report.Sum(plans, func(p entities.RevenuePlan) float64 { return p.TotalExpectedRevenue }),
		ByCrop:       revenueByCrop(plans),
	}
}

func (s *revenueSvc) CostReport(year int) service.CostReport {
	costs := s.costsFor(year)
	return service.CostReport{Year: year, Analyses: costs, Breakdown: breakdown(year, costs)}
}

// Years lists the years that have data, newest first.
func (s *revenueSvc) Years() service.Years {
	var rev, cost []int
	for _, p := range s.ListPlans() {
		rev = append(rev, p.PlanningYear)
	}
	for _, a := range s.ListCostAnalyses() {
		cost = append(cost, a.Year)
	}
	return service.Years{Revenue: distinctDesc(rev), Cost: distinctDesc(cost)}
}

func distinctDesc(xs []int) []int {
	slices.Sort(xs)
	xs = slices.Compact(xs)
	slices.Reverse(xs)
	if xs == nil {
		xs = []int{}
	}
	return xs
}
