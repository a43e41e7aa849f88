package serviceImp

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"farm/entities"
	"farm/pkg/planner/service"
	"farm/pkg/report"
	"farm/pkg/session"
	"farm/pkg/validation"
)

type plannerSvc struct {
	st *session.State
	// strict requires CropPlan.Field to name an existing field
	strict bool
}

func New(st *session.State, strict bool) service.PlannerService {
	return &plannerSvc{st: st, strict: strict}
}

func (s *plannerSvc) CreateField(in service.FieldInput) (entities.Field, error) {
	validation.Trim(&in)
	if err := validation.Check(in, func(ve *validation.ValidationError) {
		ve.OneOf("soil_type", in.SoilType, entities.SoilTypes)
		ve.OneOf("irrigation", in.Irrigation, entities.IrrigationOptions)
	}); err != nil {
		return entities.Field{}, err
	}

	s.st.Lock()
	defer s.st.Unlock()
	c := s.st.Fields
	return c.Insert(entities.Field{
		ID:          c.NextID(),
		Name:        in.Name,
		Size:        in.Size,
		SoilType:    in.SoilType,
		Irrigation:  in.Irrigation,
		Notes:       in.Notes,
		CreatedDate: c.Stamp(),
	})
}

func (s *plannerSvc) ListFields() []entities.Field {
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.Fields.List()
}

func (s *plannerSvc) RemoveFieldByName(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		ve := &validation.ValidationError{}
		ve.Add("name", "is required")
		return 0, ve
	}
	s.st.Lock()
	defer s.st.Unlock()
	n, err := s.st.Fields.RemoveWhere(func(f entities.Field) bool { return f.Name == name })
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, fmt.Errorf("field %q: %w", name, validation.ErrNotFound)
	}
	return n, nil
}

func (s *plannerSvc) CreateCropPlan(in service.CropPlanInput) (entities.CropPlan, error) {
	validation.Trim(&in)
	if in.Status == "" {
		in.Status = entities.PlanPlanned
	}

	s.st.Lock()
	defer s.st.Unlock()
	if err := validation.Check(in, func(ve *validation.ValidationError) {
		ve.OneOf("status", in.Status, entities.CropPlanStatuses)
		if !ve.Has("plant_date") && !ve.Has("harvest_date") && in.HarvestDate < in.PlantDate {
			ve.Add("harvest_date", "must not be before plant_date")
		}
		if s.strict && in.Field != "" && !s.fieldExists(in.Field) {
			ve.Add("field", "does not name an existing field")
		}
	}); err != nil {
		return entities.CropPlan{}, err
	}

	c := s.st.CropPlans
	return c.Insert(entities.CropPlan{
		ID:          c.NextID(),
		Name:        in.Name,
		Field:       in.Field,
		CropType:    in.CropType,
		PlantDate:   in.PlantDate,
		HarvestDate: in.HarvestDate,
		AreaPlanned: in.AreaPlanned,
		Status:      in.Status,
		CreatedDate: c.Stamp(),
	})
}

func (s *plannerSvc) fieldExists(name string) bool {
	return slices.ContainsFunc(s.st.Fields.List(), func(f entities.Field) bool { return f.Name == name })
}

func (s *plannerSvc) UpdateCropPlanStatus(id int, status string) (entities.CropPlan, error) {
	status = strings.TrimSpace(status)
	ve := &validation.ValidationError{}
	ve.OneOf("status", status, entities.CropPlanStatuses)
	if err := ve.Err(); err != nil {
		return entities.CropPlan{}, err
	}
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.CropPlans.Update(id, func(p *entities.CropPlan) error {
		p.Status = status
		return nil
	})
}

func (s *plannerSvc) ListCropPlans() []entities.CropPlan {
	s.st.Lock()
	defer s.st.Unlock()
	return s.st.CropPlans.List()
}

func (s *plannerSvc) Calendar(year, month int) ([]service.Activity, error) {
	if month < 1 || month > 12 {
		ve := &validation.ValidationError{}
		ve.Add("month", "must be between 1 and 12")
		return nil, ve
	}
	s.st.Lock()
	plans := s.st.CropPlans.List()
	s.st.Unlock()

	out := []service.Activity{}
	add := func(p entities.CropPlan, date, kind string) {
		t, ok := report.ParseDate(date)
		if !ok || int(t.Month()) != month || (year != 0 && t.Year() != year) {
			return
		}
		out = append(out, service.Activity{
			Date:   date,
			Day:    t.Day(),
			Type:   kind,
			Season: report.Season(date),
			PlanID: p.ID,
			Plan:   p.Name,
			Crop:   p.CropType,
			Field:  p.Field,
		})
	}
	for _, p := range plans {
		add(p, p.PlantDate, service.ActivityPlanting)
		add(p, p.HarvestDate, service.ActivityHarvesting)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (s *plannerSvc) Report() service.PlanningReport {
	s.st.Lock()
	fields := s.st.Fields.List()
	plans := s.st.CropPlans.List()
	s.st.Unlock()

	total := report.Sum(fields, func(f entities.Field) float64 { return f.Size })
	planned := report.Sum(plans, func(p entities.CropPlan) float64 { return p.AreaPlanned })

	var days, counted float64
	for _, p := range plans {
		if d, ok := report.DaysBetween(p.PlantDate, p.HarvestDate); ok {
			days += float64(d)
			counted++
		}
	}

	return service.PlanningReport{
		TotalFields:      len(fields),
		TotalPlans:       len(plans),
		TotalArea:        total,
		PlannedArea:      planned,
		Utilization:      report.Percentage(planned, total),
		AvgGrowingDays:   report.SafeDivide(days, counted, 0),
		CropDistribution: report.CountBy(plans, func(p entities.CropPlan) string { return p.CropType }),
		StatusCounts:     report.CountBy(plans, func(p entities.CropPlan) string { return p.Status }),
		PlantingSeasons:  report.CountBy(plans, func(p entities.CropPlan) string { return report.Season(p.PlantDate) }),
	}
}
