package service

import (
	"farm/entities"
	"farm/pkg/report"
)

type OperationInput struct {
	Date        string  `json:"date" validate:"omitempty,datetime=2006-01-02"` // defaults to today
	Type        string  `json:"type"`
	Field       string  `json:"field" validate:"notblank"`
	Description string  `json:"description" validate:"notblank"`
	Hours       float64 `json:"hours" validate:"gte=0"`
	Workers     int     `json:"workers" validate:"min=1"`
	Cost        float64 `json:"cost" validate:"gte=0"`
}

type TaskInput struct {
	Name        string `json:"name" validate:"notblank"`
	Priority    string `json:"priority"`
	Status      string `json:"status"` // defaults to Pending
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	AssignedTo  string `json:"assigned_to"`
	Description string `json:"description"`
}

type ExpenseInput struct {
	Date          string  `json:"date" validate:"omitempty,datetime=2006-01-02"` // defaults to today
	Category      string  `json:"category"`
	Description   string  `json:"description" validate:"notblank"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	Vendor        string  `json:"vendor"`
	PaymentMethod string  `json:"payment_method"`
}

type EquipmentInput struct {
	Name         string  `json:"name" validate:"notblank"`
	Type         string  `json:"type"`
	PurchaseDate string  `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	PurchaseCost float64 `json:"purchase_cost" validate:"gte=0"`
	SerialNumber string  `json:"serial_number"`
	Manufacturer string  `json:"manufacturer"`
	Condition    string  `json:"condition"`
}

// EquipmentPatch holds the only equipment fields that change after creation.
type EquipmentPatch struct {
	Condition  *string  `json:"condition"`
	TotalHours *float64 `json:"total_hours" validate:"omitempty,gte=0"`
}

type DaySummary struct {
	Date       string               `json:"date"`
	Count      int                  `json:"count"`
	TotalHours float64              `json:"total_hours"`
	TotalCost  float64              `json:"total_cost"`
	Operations []entities.Operation `json:"operations"`
}

type ExpenseSummary struct {
	Month        string          `json:"month"` // YYYY-MM
	MonthTotal   float64         `json:"month_total"`
	MonthCount   int             `json:"month_count"`
	AllTimeTotal float64         `json:"all_time_total"`
	ByCategory   []report.Amount `json:"by_category"`
}

type EquipmentOverview struct {
	Count       int            `json:"count"`
	TotalValue  float64        `json:"total_value"`
	TotalHours  float64        `json:"total_hours"`
	ByCondition map[string]int `json:"by_condition"`
}

// ActivityItem is one line of the recent activity feed.
type ActivityItem struct {
	Date        string `json:"date"`
	Kind        string `json:"kind"` // Operation|Expense
	Description string `json:"description"`
}

type Analytics struct {
	OperationCount   int             `json:"operation_count"`
	ExpenseTotal     float64         `json:"expense_total"`
	CompletedTasks   int             `json:"completed_tasks"`
	EquipmentCount   int             `json:"equipment_count"`
	MonthlyExpenses  []report.Amount `json:"monthly_expenses"`
	OperationsByType map[string]int  `json:"operations_by_type"`
	RecentActivity   []ActivityItem  `json:"recent_activity"`
}

type TrackerService interface {
	RecordOperation(in OperationInput) (entities.Operation, error)
	ListOperations() []entities.Operation
	DaySummary(date string) (DaySummary, error)

	AddTask(in TaskInput) (entities.Task, error)
	UpdateTaskStatus(id int, status string) (entities.Task, error)
	ListTasks() []entities.Task
	TaskCounts() map[string]int

	RecordExpense(in ExpenseInput) (entities.Expense, error)
	ListExpenses() []entities.Expense
	// RecentExpenses is the newest n expenses by date, newest first.
	RecentExpenses(n int) []entities.Expense
	// ExpenseSummary covers year/month; zero values mean the current month.
	ExpenseSummary(year, month int) (ExpenseSummary, error)

	AddEquipment(in EquipmentInput) (entities.Equipment, error)
	UpdateEquipment(id int, p EquipmentPatch) (entities.Equipment, error)
	ListEquipment() []entities.Equipment
	EquipmentOverview() EquipmentOverview

	Analytics() Analytics
}
