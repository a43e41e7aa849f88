package entities

// Collection names double as backing file names (<name>.json).
const (
	CollFields       = "fields"
	CollCropPlans    = "farm_plans"
	CollOperations   = "operations"
	CollTasks        = "tasks"
	CollExpenses     = "expenses"
	CollEquipment    = "equipment"
	CollRevenuePlans = "revenue_plans"
	CollCropPrices   = "crop_prices"
	CollCostAnalyses = "profit_analysis"
)

// Collections is every known collection, in dashboard order.
var Collections = []string{
	CollCropPlans,
	CollFields,
	CollExpenses,
	CollEquipment,
	CollTasks,
	CollOperations,
	CollRevenuePlans,
	CollCropPrices,
	CollCostAnalyses,
}

// TimestampLayout is fixed width so creation stamps order correctly as strings.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// DateLayout is used for every calendar date field.
const DateLayout = "2006-01-02"

// Record is implemented by every stored entity.
type Record interface {
	RecordID() int
	Created() string
}
