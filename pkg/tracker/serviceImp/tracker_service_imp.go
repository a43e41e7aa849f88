package serviceImp

import (
	"sort"
	"strings"
	"time"

	"farm/entities"
	"farm/pkg/report"
	"farm/pkg/session"
	"farm/pkg/tracker/service"
	"farm/pkg/validation"
)

// recentPerKind is how many operations and expenses feed the activity list.
const recentPerKind = 3

type trackerSvc struct{ st *session.State }

func New(st *session.State) service.TrackerService { return &trackerSvc{st: st} }

func (s *trackerSvc) RecordOperation(in service.OperationInput) (entities.Operation, error) {
	validation.Trim(&in)
	s.st.Lock()
	defer s.st.Unlock()
	c := s.st.Operations
	if in.Date == "" {
		in.Date = c.Today()
	}
	if err := validation.Check(in, func(ve *validation.ValidationError) {
		ve.OneOf("type", in.Type, entities.OperationTypes)
	}); err != nil {
		return entities.Operation{}, err
	}
	return c.Insert(entities.Operation{
		ID:           c.NextID(),
		Date:         in.Date,
		Type:         in.Type,
		Field:        in.Field,
		Description:  in.Description,
		Hours:        in.Hours,
		Workers:      in.Workers,
		Cost:         in.Cost,
		RecordedDate: c.Stamp(),
	})
}

func (s *trackerSvc) ListOperations() []entities.Operation {
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.Operations.List()
}

func (s *trackerSvc) DaySummary(date string) (service.DaySummary, error) {
	date = strings.TrimSpace(date)
	s.st.Lock()
	if date == "" {
		date = s.st.Operations.Today()
	}
	ops := s.st.Operations.List()
	s.st.Unlock()

	if _, ok := report.ParseDate(date); !ok || len(date) != len(entities.DateLayout) {
		ve := &validation.ValidationError{}
		ve.Add("date", "must be a date in YYYY-MM-DD form")
		return service.DaySummary{}, ve
	}
	day := report.Filter(ops, func(o entities.Operation) bool { return o.Date == date })
	return service.DaySummary{
		Date:       date,
		Count:      len(day),
		TotalHours: report.Sum(day, func(o entities.Operation) float64 { return o.Hours }),
		TotalCost:  report.Sum(day, func(o entities.Operation) float64 { return o.Cost }),
		Operations: day,
	}, nil
}

func (s *trackerSvc) AddTask(in service.TaskInput) (entities.Task, error) {
	validation.Trim(&in)
	if in.Status == "" {
		in.Status = entities.TaskPending
	}
	if err := validation.Check(in, func(ve *validation.ValidationError) {
		ve.OneOf("priority", in.Priority, entities.TaskPriorities)
		ve.OneOf("status", in.Status, entities.TaskStatuses)
	}); err != nil {
		return entities.Task{}, err
	}
	s.st.Lock()
	defer s.st.Unlock()
	c := s.st.Tasks
	return c.Insert(entities.Task{
		ID:          c.NextID(),
		Name:        in.Name,
		Priority:    in.Priority,
		Status:      in.Status,
		DueDate:     in.DueDate,
		AssignedTo:  in.AssignedTo,
		Description: in.Description,
		CreatedDate: c.Stamp(),
	})
}

func (s *trackerSvc) UpdateTaskStatus(id int, status string) (entities.Task, error) {
	status = strings.TrimSpace(status)
	ve := &validation.ValidationError{}
	ve.OneOf("status", status, entities.TaskStatuses)
	if err := ve.Err(); err != nil {
		return entities.Task{}, err
	}
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.Tasks.Update(id, func(t *entities.Task) error {
		t.Status = status
		return nil
	})
}

func (s *trackerSvc) ListTasks() []entities.Task {
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.Tasks.List()
}

// TaskCounts always reports every status, including empty ones.
func (s *trackerSvc) TaskCounts() map[string]int {
	tasks := s.ListTasks()
	out := report.CountBy(tasks, func(t entities.Task) string { return t.Status })
	for _, st := range entities.TaskStatuses {
		if _, ok := out[st]; !ok {
			out[st] = 0
		}
	}
	return out
}

func (s *trackerSvc) RecordExpense(in service.ExpenseInput) (entities.Expense, error) {
	validation.Trim(&in)
	s.st.Lock()
	defer s.st.Unlock()
	c := s.st.Expenses
	if in.Date == "" {
		in.Date = c.Today()
	}
	if err := validation.Check(in, func(ve *validation.ValidationError) {
		ve.OneOf("category", in.Category, entities.ExpenseCategories)
		ve.OneOf("payment_method", in.PaymentMethod, entities.PaymentMethods)
	}); err != nil {
		return entities.Expense{}, err
	}
	return c.Insert(entities.Expense{
		ID:            c.NextID(),
		Date:          in.Date,
		Category:      in.Category,
		Description:   in.Description,
		Amount:        in.Amount,
		Vendor:        in.Vendor,
		PaymentMethod: in.PaymentMethod,
		RecordedDate:  c.Stamp(),
	})
}

func (s *trackerSvc) ListExpenses() []entities.Expense {
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.Expenses.List()
}

func (s *trackerSvc) RecentExpenses(n int) []entities.Expense {
	return newest(s.ListExpenses(), func(e entities.Expense) string { return e.Date }, n)
}

func (s *trackerSvc) ExpenseSummary(year, month int) (service.ExpenseSummary, error) {
	s.st.Lock()
	now := s.st.Now()
	expenses := s.st.Expenses.List()
	s.st.Unlock()

	if year == 0 && month == 0 {
		year, month = now.Year(), int(now.Month())
	}
	if month < 1 || month > 12 || year < 1 {
		ve := &validation.ValidationError{}
		ve.Add("month", "year and month must both be given, month between 1 and 12")
		return service.ExpenseSummary{}, ve
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	inMonth := report.FilterByDateRange(expenses, func(e entities.Expense) string { return e.Date }, first, first.AddDate(0, 1, -1))
	amount := func(e entities.Expense) float64 { return e.Amount }
	return service.ExpenseSummary{
		Month:        report.MonthKey(year, time.Month(month)),
		MonthTotal:   report.Sum(inMonth, amount),
		MonthCount:   len(inMonth),
		AllTimeTotal: report.Sum(expenses, amount),
		ByCategory:   report.Ranked(report.SumBy(inMonth, func(e entities.Expense) string { return e.Category }, amount)),
	}, nil
}

func (s *trackerSvc) AddEquipment(in service.EquipmentInput) (entities.Equipment, error) {
	validation.Trim(&in)
	if err := validation.Check(in, func(ve *validation.ValidationError) {
		ve.OneOf("type", in.Type, entities.EquipmentTypes)
		ve.OneOf("condition", in.Condition, entities.EquipmentConditions)
	}); err != nil {
		return entities.Equipment{}, err
	}
	s.st.Lock()
	defer s.st.Unlock()
	c := s.st.Equipment
	return c.Insert(entities.Equipment{
		ID:              c.NextID(),
		Name:            in.Name,
		Type:            in.Type,
		PurchaseDate:    in.PurchaseDate,
		PurchaseCost:    in.PurchaseCost,
		SerialNumber:    in.SerialNumber,
		Manufacturer:    in.Manufacturer,
		Condition:       in.Condition,
		LastMaintenance: nil,
		TotalHours:      0,
		AddedDate:       c.Stamp(),
	})
}

// UpdateEquipment applies only the non-nil patch fields.
func (s *trackerSvc) UpdateEquipment(id int, p service.EquipmentPatch) (entities.Equipment, error) {
	validation.Trim(&p)
	if err := validation.Check(p, func(ve *validation.ValidationError) {
		if p.Condition != nil {
			ve.OneOf("condition", *p.Condition, entities.EquipmentConditions)
		}
		if p.Condition == nil && p.TotalHours == nil {
			ve.Add("body", "nothing to update")
		}
	}); err != nil {
		return entities.Equipment{}, err
	}
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.Equipment.Update(id, func(e *entities.Equipment) error {
		if p.Condition != nil {
			e.Condition = *p.Condition
		}
		if p.TotalHours != nil {
			e.TotalHours = *p.TotalHours
		}
		return nil
	})
}

func (s *trackerSvc) ListEquipment() []entities.Equipment {
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.Equipment.List()
}

func (s *trackerSvc) EquipmentOverview() service.EquipmentOverview {
	eq := s.ListEquipment()
	return service.EquipmentOverview{
		Count:       len(eq),
		TotalValue:  report.Sum(eq, func(e entities.Equipment) float64 { return e.PurchaseCost }),
		TotalHours:  report.Sum(eq, func(e entities.Equipment) float64 { return e.TotalHours }),
		ByCondition: report.CountBy(eq, func(e entities.Equipment) string { return e.Condition }),
	}
}

func (s *trackerSvc) Analytics() service.Analytics {
	s.st.Lock()
	ops := s.st.Operations.List()
	expenses := s.st.Expenses.List()
	tasks := s.st.Tasks.List()
	equipment := s.st.Equipment.Len()
	s.st.Unlock()

	amount := func(e entities.Expense) float64 { return e.Amount }
	a := service.Analytics{
		OperationCount:   len(ops),
		ExpenseTotal:     report.Sum(expenses, amount),
		CompletedTasks:   len(report.Filter(tasks, func(t entities.Task) bool { return t.Status == entities.TaskCompleted })),
		EquipmentCount:   equipment,
		MonthlyExpenses:  report.Chronological(report.SumByBucket(expenses, func(e entities.Expense) string { return e.Date }, amount, report.Month)),
		OperationsByType: report.CountBy(ops, func(o entities.Operation) string { return o.Type }),
	}

	feed := []service.ActivityItem{}
	for _, o := range newest(ops, func(o entities.Operation) string { return o.Date }, recentPerKind) {
		feed = append(feed, service.ActivityItem{Date: o.Date, Kind: "Operation", Description: o.Type + " - " + o.Field})
	}
	for _, e := range newest(expenses, func(e entities.Expense) string { return e.Date }, recentPerKind) {
		feed = append(feed, service.ActivityItem{Date: e.Date, Kind: "Expense", Description: e.Category + " - " + report.Currency(e.Amount)})
	}
	sort.SliceStable(feed, func(i, j int) bool { return feed[i].Date > feed[j].Date })
	a.RecentActivity = feed
	return a
}

// newest returns up to n records ordered by date descending; records on the
// same date keep their stored order reversed, so later inserts come first.
func newest[T any](records []T, date func(T) string, n int) []T {
	out := make([]T, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	sort.SliceStable(out, func(i, j int) bool { return date(out[i]) > date(out[j]) })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
