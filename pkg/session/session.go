// Package session holds the in-memory state of every collection for one
// running process.
package session

import (
	"log"
	"sync"
	"time"

	"farm/entities"
	"farm/pkg/collection"
	"farm/pkg/store/service"
)

// State is shared by the planner, tracker and revenue services. Callers hold
// the embedded mutex around any read or mutation.
type State struct {
	sync.Mutex

	Store service.Store
	Now   func() time.Time

	Fields       *collection.Collection[entities.Field]
	CropPlans    *collection.Collection[entities.CropPlan]
	Operations   *collection.Collection[entities.Operation]
	Tasks        *collection.Collection[entities.Task]
	Expenses     *collection.Collection[entities.Expense]
	Equipment    *collection.Collection[entities.Equipment]
	RevenuePlans *collection.Collection[entities.RevenuePlan]
	CropPrices   *collection.Collection[entities.CropPrice]
	CostAnalyses *collection.Collection[entities.CostAnalysis]
}

// Load opens every collection. Collections that fail to load start empty and
// are logged; see LoadResults.
func Load(st service.Store, now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	s := &State{
		Store:        st,
		Now:          now,
		Fields:       collection.Open[entities.Field](entities.CollFields, st, now),
		CropPlans:    collection.Open[entities.CropPlan](entities.CollCropPlans, st, now),
		Operations:   collection.Open[entities.Operation](entities.CollOperations, st, now),
		Tasks:        collection.Open[entities.Task](entities.CollTasks, st, now),
		Expenses:     collection.Open[entities.Expense](entities.CollExpenses, st, now),
		Equipment:    collection.Open[entities.Equipment](entities.CollEquipment, st, now),
		RevenuePlans: collection.Open[entities.RevenuePlan](entities.CollRevenuePlans, st, now),
		CropPrices:   collection.Open[entities.CropPrice](entities.CollCropPrices, st, now),
		CostAnalyses: collection.Open[entities.CostAnalysis](entities.CollCostAnalyses, st, now),
	}
	for _, r := range s.LoadResults() {
		if r.Failed() {
			log.Printf("[session] %s could not be loaded, starting empty: %v", r.Collection, r.Err)
		}
	}
	return s
}

func (s *State) LoadResults() []service.LoadResult {
	return []service.LoadResult{
		s.CropPlans.LoadResult(),
		s.Fields.LoadResult(),
		s.Expenses.LoadResult(),
		s.Equipment.LoadResult(),
		s.Tasks.LoadResult(),
		s.Operations.LoadResult(),
		s.RevenuePlans.LoadResult(),
		s.CropPrices.LoadResult(),
		s.CostAnalyses.LoadResult(),
	}
}

// Snapshot returns a copy of the named collection's records, or false for an
// unknown name. The result is one of the entity slice types.
func (s *State) Snapshot(name string) (any, bool) {
	switch name {
	case entities.CollFields:
		return s.Fields.List(), true
	case entities.CollCropPlans:
		return s.CropPlans.List(), true
	case entities.CollOperations:
		return s.Operations.List(), true
	case entities.CollTasks:
		return s.Tasks.List(), true
	case entities.CollExpenses:
		return s.Expenses.List(), true
	case entities.CollEquipment:
		return s.Equipment.List(), true
	case entities.CollRevenuePlans:
		return s.RevenuePlans.List(), true
	case entities.CollCropPrices:
		return s.CropPrices.List(), true
	case entities.CollCostAnalyses:
		return s.CostAnalyses.List(), true
	}
	return nil, false
}
