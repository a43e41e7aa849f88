package serviceImp

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"farm/entities"
	"farm/pkg/session"
	"farm/pkg/store/repository"
	"farm/pkg/store/repositoryImp"
	storeSvc "farm/pkg/store/service"
	storeImp "farm/pkg/store/serviceImp"
	"farm/pkg/tracker/service"
	"farm/pkg/validation"
)

var today = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return today }

func newTracker(t *testing.T) service.TrackerService {
	t.Helper()
	st := session.Load(storeImp.NewWithClock(repositoryImp.NewFile(filepath.Join(t.TempDir(), "data")), clock), clock)
	return New(st)
}

// brokenDisk reads nothing and refuses every write.
type brokenDisk struct{}

func (brokenDisk) Read(string) ([]byte, error)   { return nil, repository.ErrNotExist }
func (brokenDisk) Write(string, []byte) error    { return errors.New("disk full") }
func (brokenDisk) Remove(string) error           { return errors.New("disk full") }
func (brokenDisk) Backup(string) (string, error) { return "", errors.New("disk full") }
func (brokenDisk) Ping() error                   { return errors.New("disk full") }

func op(field string, date string, hours, cost float64) service.OperationInput {
	return service.OperationInput{Date: date, Type: "Irrigation", Field: field, Description: "watering", Hours: hours, Workers: 1, Cost: cost}
}

func TestRecordOperationDefaultsDate(t *testing.T) {
	tr := newTracker(t)
	o, err := tr.RecordOperation(op("North", "", 2, 30))
	if err != nil {
		t.Fatal(err)
	}
	if o.Date != "2025-03-15" || o.RecordedDate != "2025-03-15T10:00:00.000000" {
		t.Fatalf("got %+v", o)
	}
}

func TestRecordOperationValidation(t *testing.T) {
	tr := newTracker(t)
	in := op("", "2025-03-01", -1, -5)
	in.Workers = 0
	in.Type = "Dancing"
	_, err := tr.RecordOperation(in)
	var ve *validation.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v", err)
	}
	for _, f := range []string{"field", "hours", "workers", "cost", "type"} {
		if !ve.Has(f) {
			t.Errorf("no problem for %s: %v", f, ve)
		}
	}
	if len(tr.ListOperations()) != 0 {
		t.Fatal("invalid operation stored")
	}
}

func TestDaySummary(t *testing.T) {
	tr := newTracker(t)
	tr.RecordOperation(op("North", "2025-03-01", 2, 30))
	tr.RecordOperation(op("South", "2025-03-01", 1.5, 20))
	tr.RecordOperation(op("South", "2025-03-02", 8, 100))

	d, err := tr.DaySummary("2025-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if d.Count != 2 || d.TotalHours != 3.5 || d.TotalCost != 50 {
		t.Fatalf("got %+v", d)
	}
	if _, err := tr.DaySummary("March 1"); err == nil {
		t.Fatal("bad date accepted")
	}
}

func TestTasks(t *testing.T) {
	tr := newTracker(t)
	task, err := tr.AddTask(service.TaskInput{Name: "Fix fence", Priority: "High"})
	if err != nil || task.Status != entities.TaskPending {
		t.Fatalf("got %+v %v", task, err)
	}
	if _, err := tr.AddTask(service.TaskInput{Name: "x", Priority: "Urgent"}); err == nil {
		t.Fatal("unknown priority accepted")
	}
	if _, err := tr.UpdateTaskStatus(task.ID, entities.TaskCompleted); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.UpdateTaskStatus(99, entities.TaskCompleted); !errors.Is(err, validation.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	counts := tr.TaskCounts()
	if counts[entities.TaskCompleted] != 1 || counts[entities.TaskPending] != 0 || len(counts) != 3 {
		t.Fatalf("got %v", counts)
	}
}

func expense(date, cat string, amt float64) service.ExpenseInput {
	return service.ExpenseInput{Date: date, Category: cat, Description: "d", Amount: amt, PaymentMethod: "Cash"}
}

func TestExpenses(t *testing.T) {
	tr := newTracker(t)
	if _, err := tr.RecordExpense(expense("2025-03-01", "Fuel", 0)); err == nil {
		t.Fatal("zero amount accepted")
	}
	tr.RecordExpense(expense("2025-03-01", "Fuel", 40))
	tr.RecordExpense(expense("2025-03-09", "Seeds", 60))
	tr.RecordExpense(expense("2025-02-20", "Fuel", 25))

	sum, err := tr.ExpenseSummary(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Month != "2025-03" || sum.MonthTotal != 100 || sum.AllTimeTotal != 125 || sum.MonthCount != 2 {
		t.Fatalf("got %+v", sum)
	}
	if sum.ByCategory[0].Key != "Seeds" || sum.ByCategory[0].Share != 60 {
		t.Fatalf("breakdown %+v", sum.ByCategory)
	}
	if _, err := tr.ExpenseSummary(2025, 0); err == nil {
		t.Fatal("month 0 with a year accepted")
	}

	recent := tr.RecentExpenses(2)
	if len(recent) != 2 || recent[0].Date != "2025-03-09" || recent[1].Date != "2025-03-01" {
		t.Fatalf("recent %+v", recent)
	}
}

func TestEquipmentPatch(t *testing.T) {
	tr := newTracker(t)
	eq, err := tr.AddEquipment(service.EquipmentInput{Name: "Deere", Type: "Tractor", PurchaseCost: 50000, Condition: "Excellent"})
	if err != nil {
		t.Fatal(err)
	}
	if eq.LastMaintenance != nil || eq.TotalHours != 0 {
		t.Fatalf("got %+v", eq)
	}

	hours := 120.5
	got, err := tr.UpdateEquipment(eq.ID, service.EquipmentPatch{TotalHours: &hours})
	if err != nil || got.TotalHours != 120.5 || got.Condition != "Excellent" {
		t.Fatalf("got %+v %v", got, err)
	}
	bad := "Broken"
	if _, err := tr.UpdateEquipment(eq.ID, service.EquipmentPatch{Condition: &bad}); err == nil {
		t.Fatal("unknown condition accepted")
	}
	neg := -1.0
	if _, err := tr.UpdateEquipment(eq.ID, service.EquipmentPatch{TotalHours: &neg}); err == nil {
		t.Fatal("negative hours accepted")
	}
	if _, err := tr.UpdateEquipment(eq.ID, service.EquipmentPatch{}); err == nil {
		t.Fatal("empty patch accepted")
	}

	ov := tr.EquipmentOverview()
	if ov.Count != 1 || ov.TotalValue != 50000 || ov.ByCondition["Excellent"] != 1 {
		t.Fatalf("got %+v", ov)
	}
}

func TestAnalytics(t *testing.T) {
	tr := newTracker(t)
	for _, d := range []string{"2025-01-01", "2025-01-05", "2025-02-01", "2025-03-01"} {
		tr.RecordOperation(op("North", d, 1, 1))
	}
	tr.RecordExpense(expense("2025-01-10", "Fuel", 10))
	tr.RecordExpense(expense("2025-03-02", "Labor", 5))
	task, _ := tr.AddTask(service.TaskInput{Name: "t", Priority: "Low"})
	tr.UpdateTaskStatus(task.ID, entities.TaskCompleted)

	a := tr.Analytics()
	if a.OperationCount != 4 || a.ExpenseTotal != 15 || a.CompletedTasks != 1 {
		t.Fatalf("kpis %+v", a)
	}
	if len(a.MonthlyExpenses) != 2 || a.MonthlyExpenses[0].Key != "2025-01" {
		t.Fatalf("monthly %+v", a.MonthlyExpenses)
	}
	if len(a.RecentActivity) != 5 {
		t.Fatalf("feed %+v", a.RecentActivity)
	}
	if a.RecentActivity[0].Date != "2025-03-02" || a.RecentActivity[0].Description != "Labor - $5.00" {
		t.Fatalf("feed head %+v", a.RecentActivity[0])
	}
}

func TestFailedWriteKeepsRecord(t *testing.T) {
	st := session.Load(storeImp.NewWithClock(brokenDisk{}, clock), clock)
	tr := New(st)
	e, err := tr.RecordExpense(expense("2025-03-01", "Fuel", 40))
	if !errors.Is(err, storeSvc.ErrNotPersisted) {
		t.Fatalf("want ErrNotPersisted, got %v", err)
	}
	if e.ID != 1 || len(tr.ListExpenses()) != 1 {
		t.Fatalf("record lost: %+v", e)
	}
}
