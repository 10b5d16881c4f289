package medication

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/domain/medication"
	"github.com/caredomi/homecare-backend-go/internal/pkg/database"
	"github.com/caredomi/homecare-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type medicationServiceImpl struct {
	db             *database.DB
	medicationRepo medication.MedicationRepository
	ruleRepo       medication.ScheduleRuleRepository
}

func NewMedicationService(
	db *database.DB,
	medicationRepo medication.MedicationRepository,
	ruleRepo medication.ScheduleRuleRepository,
) medication.Service {
	return &medicationServiceImpl{
		db:             db,
		medicationRepo: medicationRepo,
		ruleRepo:       ruleRepo,
	}
}

// CreateMedication implements medication.Service.
func (s *medicationServiceImpl) CreateMedication(ctx context.Context, req medication.CreateMedicationRequest) (medication.MedicationResponse, error) {
	if err := req.Validate(); err != nil {
		return medication.MedicationResponse{}, err
	}

	med := &medication.Medication{
		CarePlanID: req.CarePlanID,
		Name:       req.Name,
		Form:       req.Form,
		Notes:      req.Notes,
	}
	if err := s.medicationRepo.Create(ctx, med); err != nil {
		return medication.MedicationResponse{}, fmt.Errorf("failed to create medication: %w", err)
	}
	return medicationToResponse(med), nil
}

// GetMedication implements medication.Service.
func (s *medicationServiceImpl) GetMedication(ctx context.Context, id string) (medication.MedicationResponse, error) {
	med, err := s.medicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return medication.MedicationResponse{}, medication.ErrMedicationNotFound
		}
		return medication.MedicationResponse{}, fmt.Errorf("failed to get medication: %w", err)
	}
	return medicationToResponse(med), nil
}

// ListMedications implements medication.Service.
func (s *medicationServiceImpl) ListMedications(ctx context.Context, carePlanID string) ([]medication.MedicationResponse, error) {
	meds, err := s.medicationRepo.ListByCarePlan(ctx, carePlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	responses := make([]medication.MedicationResponse, 0, len(meds))
	for i := range meds {
		responses = append(responses, medicationToResponse(&meds[i]))
	}
	return responses, nil
}

// UpdateMedication implements medication.Service.
func (s *medicationServiceImpl) UpdateMedication(ctx context.Context, req medication.UpdateMedicationRequest) (medication.MedicationResponse, error) {
	if err := req.Validate(); err != nil {
		return medication.MedicationResponse{}, err
	}

	med, err := s.medicationRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return medication.MedicationResponse{}, medication.ErrMedicationNotFound
		}
		return medication.MedicationResponse{}, fmt.Errorf("failed to get medication: %w", err)
	}

	if req.Name != nil {
		med.Name = *req.Name
	}
	if req.Form != nil {
		med.Form = *req.Form
	}
	if req.Notes != nil {
		med.Notes = req.Notes
	}

	if err := s.medicationRepo.Update(ctx, med); err != nil {
		return medication.MedicationResponse{}, fmt.Errorf("failed to update medication: %w", err)
	}
	return medicationToResponse(med), nil
}

// DeleteMedication implements medication.Service. The delete cascades
// to the medication's schedule rules inside one transaction.
func (s *medicationServiceImpl) DeleteMedication(ctx context.Context, id string) error {
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		if err := s.medicationRepo.SoftDelete(txCtx, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return medication.ErrMedicationNotFound
			}
			return fmt.Errorf("failed to delete medication: %w", err)
		}
		return nil
	})
	return err
}

// CreateScheduleRule implements medication.Service.
func (s *medicationServiceImpl) CreateScheduleRule(ctx context.Context, req medication.ScheduleRuleRequest) (medication.ScheduleRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return medication.ScheduleRuleResponse{}, err
	}

	if _, err := s.medicationRepo.GetByID(ctx, req.MedicationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return medication.ScheduleRuleResponse{}, medication.ErrMedicationNotFound
		}
		return medication.ScheduleRuleResponse{}, fmt.Errorf("failed to get medication: %w", err)
	}

	rule := req.ToRule()
	if err := s.ruleRepo.Create(ctx, &rule); err != nil {
		return medication.ScheduleRuleResponse{}, fmt.Errorf("failed to create schedule rule: %w", err)
	}
	return ruleToResponse(&rule), nil
}

// ListScheduleRules implements medication.Service.
func (s *medicationServiceImpl) ListScheduleRules(ctx context.Context, medicationID string) ([]medication.ScheduleRuleResponse, error) {
	rules, err := s.ruleRepo.ListByMedication(ctx, medicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule rules: %w", err)
	}
	responses := make([]medication.ScheduleRuleResponse, 0, len(rules))
	for i := range rules {
		responses = append(responses, ruleToResponse(&rules[i]))
	}
	return responses, nil
}

// UpdateScheduleRule implements medication.Service.
func (s *medicationServiceImpl) UpdateScheduleRule(ctx context.Context, req medication.ScheduleRuleRequest) (medication.ScheduleRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return medication.ScheduleRuleResponse{}, err
	}

	existing, err := s.ruleRepo.GetByID(ctx, req.RuleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return medication.ScheduleRuleResponse{}, medication.ErrScheduleRuleNotFound
		}
		return medication.ScheduleRuleResponse{}, fmt.Errorf("failed to get schedule rule: %w", err)
	}
	if existing.MedicationID != req.MedicationID {
		return medication.ScheduleRuleResponse{}, medication.ErrScheduleRuleNotFound
	}

	rule := req.ToRule()
	rule.ID = existing.ID
	rule.CreatedAt = existing.CreatedAt

	if err := s.ruleRepo.Update(ctx, &rule); err != nil {
		return medication.ScheduleRuleResponse{}, fmt.Errorf("failed to update schedule rule: %w", err)
	}
	return ruleToResponse(&rule), nil
}

// DeleteScheduleRule implements medication.Service.
func (s *medicationServiceImpl) DeleteScheduleRule(ctx context.Context, ruleID, medicationID string) error {
	existing, err := s.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return medication.ErrScheduleRuleNotFound
		}
		return fmt.Errorf("failed to get schedule rule: %w", err)
	}
	if existing.MedicationID != medicationID {
		return medication.ErrScheduleRuleNotFound
	}

	if err := s.ruleRepo.Delete(ctx, ruleID); err != nil {
		return fmt.Errorf("failed to delete schedule rule: %w", err)
	}
	return nil
}

// GetDoseSchedule implements medication.Service. Evaluates every active
// rule of every medication on the plan against the requested date.
func (s *medicationServiceImpl) GetDoseSchedule(ctx context.Context, carePlanID, date string) ([]medication.ScheduledDoseResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, medication.ErrInvalidRequestData
	}

	meds, err := s.medicationRepo.ListByCarePlan(ctx, carePlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}

	var doses []medication.ScheduledDoseResponse
	for i := range meds {
		med := &meds[i]
		rules, err := s.ruleRepo.ListByMedication(ctx, med.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list schedule rules: %w", err)
		}
		for j := range rules {
			rule := &rules[j]
			if !rule.OccursOn(day) {
				continue
			}

			dose := medication.ScheduledDoseResponse{
				MedicationID:   med.ID,
				MedicationName: med.Name,
				RuleID:         rule.ID,
				ScheduleKind:   string(rule.Kind),
				Dose:           rule.Dose,
				DoseUnit:       rule.DoseUnit,
			}
			for _, c := range rule.DoseTimesOn(day) {
				dose.Times = append(dose.Times, c.String())
			}
			if rule.Kind == medication.KindParts && rule.Parts != nil {
				for _, p := range rule.Parts.PartsOfDay {
					dose.PartsOfDay = append(dose.PartsOfDay, string(p))
				}
			}
			doses = append(doses, dose)
		}
	}
	return doses, nil
}

func medicationToResponse(med *medication.Medication) medication.MedicationResponse {
	resp := medication.MedicationResponse{
		ID:         med.ID,
		CarePlanID: med.CarePlanID,
		Name:       med.Name,
		Form:       med.Form,
		Notes:      med.Notes,
		CreatedAt:  med.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:  med.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	for i := range med.Rules {
		resp.Rules = append(resp.Rules, ruleToResponse(&med.Rules[i]))
	}
	return resp
}

func ruleToResponse(rule *medication.ScheduleRule) medication.ScheduleRuleResponse {
	resp := medication.ScheduleRuleResponse{
		ID:           rule.ID,
		MedicationID: rule.MedicationID,
		ScheduleKind: string(rule.Kind),
		Dose:         rule.Dose,
		DoseUnit:     rule.DoseUnit,
		IsActive:     rule.IsActive,
		RuleOrder:    rule.RuleOrder,
		Notes:        rule.Notes,
		CreatedAt:    rule.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    rule.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if rule.ValidFrom != nil {
		from := rule.ValidFrom.Format("2006-01-02")
		resp.ValidFrom = &from
	}
	if rule.ValidUntil != nil {
		until := rule.ValidUntil.Format("2006-01-02")
		resp.ValidUntil = &until
	}

	switch rule.Kind {
	case medication.KindParts:
		if rule.Parts != nil {
			for _, p := range rule.Parts.PartsOfDay {
				resp.PartsOfDay = append(resp.PartsOfDay, string(p))
			}
		}
	case medication.KindTimes:
		if rule.Times != nil {
			resp.ExactTimes = rule.Times.ExactTimes
		}
	case medication.KindWeekly:
		if rule.Weekly != nil {
			resp.Weekdays = rule.Weekly.Weekdays
			resp.WeeklyTime = rule.Weekly.Time
		}
	case medication.KindMonthly:
		if rule.Monthly != nil {
			resp.DaysOfMonth = rule.Monthly.DaysOfMonth
			resp.MonthlyTime = rule.Monthly.Time
		}
	case medication.KindSpecific:
		if rule.Specific != nil {
			for _, dt := range rule.Specific.Datetimes {
				resp.SpecificDatetimes = append(resp.SpecificDatetimes, dt.Format(time.RFC3339))
			}
		}
	case medication.KindPRN:
		if rule.PRN != nil {
			resp.PRNCondition = rule.PRN.Condition
			resp.PRNMaxDosesPerDay = rule.PRN.MaxDosesPerDay
			resp.PRNMinIntervalHours = rule.PRN.MinIntervalHours
		}
	}

	return resp
}
