package serviceImp

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"farm/entities"
	"farm/pkg/analyzer"
	"farm/pkg/revenue/importer"
	"farm/pkg/revenue/service"
	"farm/pkg/session"
	"farm/pkg/store/repositoryImp"
	storeImp "farm/pkg/store/serviceImp"
	"farm/pkg/validation"
)

func newRevenue(t *testing.T, strict bool) service.RevenueService {
	t.Helper()
	tick := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	// every call moves the clock so creation stamps are ordered
	now := func() time.Time { tick = tick.Add(time.Second); return tick }
	st := session.Load(storeImp.New(repositoryImp.NewFile(filepath.Join(t.TempDir(), "data"))), now)
	return New(st, strict)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRevenuePlanDerivation(t *testing.T) {
	r := newRevenue(t, false)
	p, err := r.CreatePlan(service.RevenuePlanInput{
		Name: "Corn 2025", CropType: "Corn", PlannedArea: 10,
		ExpectedYieldPerAcre: 5, ExpectedPrice: 2.0, PlanningYear: 2025,
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.TotalExpectedYield != 50 || p.TotalExpectedRevenue != 100 {
		t.Fatalf("got %+v", p)
	}
	if p.Status != entities.RevenuePlanned || p.YieldUnit != "bushels" {
		t.Fatalf("defaults %+v", p)
	}
}

func TestRevenuePlanValidation(t *testing.T) {
	r := newRevenue(t, false)
	_, err := r.CreatePlan(service.RevenuePlanInput{Name: "x", CropType: "Corn", PlannedArea: 0, PlanningYear: 2040, YieldUnit: "crates"})
	var ve *validation.ValidationError
	if !errors.As(err, &ve) || !ve.Has("planned_area") || !ve.Has("planning_year") || !ve.Has("yield_unit") {
		t.Fatalf("got %v", err)
	}
	if len(r.ListPlans()) != 0 {
		t.Fatal("invalid plan stored")
	}
	if p, _ := r.CreatePlan(service.RevenuePlanInput{Name: "y", CropType: "Oats", PlannedArea: 1}); p.PlanningYear != 2025 {
		t.Fatalf("default year %d", p.PlanningYear)
	}
}

func TestCostAnalysisDerivation(t *testing.T) {
	r := newRevenue(t, false)
	a, err := r.AddCostAnalysis(service.CostAnalysisInput{Crop: "Corn", Area: 5, SeedCost: 100, FertilizerCost: 50, Year: 2025})
	if err != nil {
		t.Fatal(err)
	}
	if a.TotalCost != 150 || a.CostPerAcre != 30 {
		t.Fatalf("got %+v", a)
	}
	if _, err := r.AddCostAnalysis(service.CostAnalysisInput{Crop: "Corn", Area: 0, Year: 2025}); err == nil {
		t.Fatal("zero area accepted")
	}
	if _, err := r.AddCostAnalysis(service.CostAnalysisInput{Crop: "Corn", Area: 1, FuelCost: -1, Year: 2025}); err == nil {
		t.Fatal("negative cost accepted")
	}
}

func TestProfitabilityJoin(t *testing.T) {
	r := newRevenue(t, false)
	// 10 acres * 10 bu * $10 = 1000 revenue
	r.CreatePlan(service.RevenuePlanInput{Name: "Corn", CropType: "Corn", PlannedArea: 10, ExpectedYieldPerAcre: 10, ExpectedPrice: 10, PlanningYear: 2025})
	r.CreatePlan(service.RevenuePlanInput{Name: "Rice", CropType: "Rice", PlannedArea: 10, ExpectedYieldPerAcre: 1, ExpectedPrice: 1, PlanningYear: 2025})
	r.AddCostAnalysis(service.CostAnalysisInput{Crop: "Corn", Area: 1, SeedCost: 80, Year: 2025})
	r.AddCostAnalysis(service.CostAnalysisInput{Crop: "Corn", Area: 1, SeedCost: 50, Year: 2025})

	prof, err := r.Profitability()
	if err != nil {
		t.Fatal(err)
	}
	if len(prof.Results) != 1 {
		t.Fatalf("unmatched plan not excluded: %+v", prof.Results)
	}
	got := prof.Results[0]
	if !near(got.RevenuePerAcre, 100) || !near(got.ProfitPerAcre, 50) || !near(got.ProfitMargin, 50) || !near(got.TotalProfit, 500) {
		t.Fatalf("got %+v", got)
	}
	if prof.Summary.MostProfitable == nil || prof.Summary.MostProfitable.PlanName != "Corn" {
		t.Fatalf("summary %+v", prof.Summary)
	}

	strict := newRevenue(t, true)
	strict.CreatePlan(service.RevenuePlanInput{Name: "Rice", CropType: "Rice", PlannedArea: 1, PlanningYear: 2025})
	_, err = strict.Profitability()
	var ue *analyzer.UnmatchedError
	if !errors.As(err, &ue) {
		t.Fatalf("strict mode: %v", err)
	}
}

func TestPrices(t *testing.T) {
	r := newRevenue(t, false)
	add := func(crop, date string, price float64) {
		t.Helper()
		if _, err := r.AddPrice(service.CropPriceInput{Crop: crop, PriceDate: date, Price: price}); err != nil {
			t.Fatal(err)
		}
	}
	add("Corn", "2025-01-10", 4)
	add("Corn", "2025-01-20", 5)
	add("Wheat", "2025-01-05", 6)
	add("Corn", "2025-01-01", 3)

	if _, err := r.AddPrice(service.CropPriceInput{Crop: "Corn", Price: 0}); err == nil {
		t.Fatal("zero price accepted")
	}

	latest := r.LatestPrices()
	if len(latest) != 2 || latest[0].Crop != "Corn" || latest[0].Price != 5 {
		t.Fatalf("latest %+v", latest)
	}
	hist := r.PriceHistory("Corn")
	if len(hist) != 3 || hist[0].PriceDate != "2025-01-20" {
		t.Fatalf("history %+v", hist)
	}

	tr, err := r.PriceTrend("Corn")
	if err != nil {
		t.Fatal(err)
	}
	if tr.Min != 3 || tr.Max != 5 || tr.Average != 4 || tr.Change != 1 || tr.ChangePercent != 25 {
		t.Fatalf("trend %+v", tr)
	}
	if tr.Points[0].Date != "2025-01-01" {
		t.Fatalf("points not ascending: %+v", tr.Points)
	}
	if _, err := r.PriceTrend("Barley"); !errors.Is(err, validation.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestImportPrices(t *testing.T) {
	r := newRevenue(t, false)
	csv := "crop,date,price,unit\nCorn,2025-02-01,4.1,bushels\nOats,2025-02-01,2.2,crates\nRice,bad,1,\n"
	res, err := r.ImportPrices(strings.NewReader(csv), importer.CSV)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Created) != 1 || len(res.Skipped) != 2 {
		t.Fatalf("got %+v", res)
	}
	if res.Skipped[0].Line != 2 || res.Skipped[1].Line != 3 {
		t.Fatalf("skipped %+v", res.Skipped)
	}
	if len(r.ListPrices()) != 1 {
		t.Fatal("import did not go through the normal create path")
	}

	_, err = r.ImportPrices(strings.NewReader("a,b\n1,2\n"), importer.CSV)
	var ve *validation.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("sheet without prices: %v", err)
	}
}

func TestReportsAndYears(t *testing.T) {
	r := newRevenue(t, false)
	r.CreatePlan(service.RevenuePlanInput{Name: "a", CropType: "Corn", PlannedArea: 2, ExpectedYieldPerAcre: 1, ExpectedPrice: 10, PlanningYear: 2024})
	r.CreatePlan(service.RevenuePlanInput{Name: "b", CropType: "Corn", PlannedArea: 3, ExpectedYieldPerAcre: 1, ExpectedPrice: 10, PlanningYear: 2025})
	r.CreatePlan(service.RevenuePlanInput{Name: "c", CropType: "Oats", PlannedArea: 1, ExpectedYieldPerAcre: 1, ExpectedPrice: 100, PlanningYear: 2025})
	r.AddCostAnalysis(service.CostAnalysisInput{Crop: "Corn", Area: 2, SeedCost: 30, LaborCost: 10, Year: 2025})

	sum := r.RevenueSummary(2025)
	if len(sum.Plans) != 2 || sum.TotalRevenue != 130 || sum.TotalArea != 4 {
		t.Fatalf("summary %+v", sum)
	}
	if sum.ByCrop[0].Key != "Oats" {
		t.Fatalf("by crop %+v", sum.ByCrop)
	}

	cr := r.CostReport(2025)
	if cr.Breakdown.TotalCost != 40 || cr.Breakdown.AvgCostPerAcre != 20 || cr.Breakdown.Categories[0].Key != "Seeds" {
		t.Fatalf("cost report %+v", cr.Breakdown)
	}
	if len(r.CostReport(2030).Analyses) != 0 {
		t.Fatal("year filter ignored")
	}

	y := r.Years()
	if len(y.Revenue) != 2 || y.Revenue[0] != 2025 || len(y.Cost) != 1 {
		t.Fatalf("years %+v", y)
	}
}
