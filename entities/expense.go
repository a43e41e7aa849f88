package entities

type Expense struct {
	ID            int     `json:"id"`
	Date          string  `json:"date"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Vendor        string  `json:"vendor"`
	PaymentMethod string  `json:"payment_method"`
	RecordedDate  string  `json:"recorded_date"`
}

var ExpenseCategories = []string{
	"Seeds", "Fertilizers", "Pesticides", "Equipment", "Fuel",
	"Labor", "Utilities", "Maintenance", "Insurance", "Other",
}

var PaymentMethods = []string{"Cash", "Check", "Credit Card", "Bank Transfer"}

func (e Expense) RecordID() int   { return e.ID }
func (e Expense) Created() string { return e.RecordedDate }
