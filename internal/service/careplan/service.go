package careplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/domain/careplan"
	"github.com/caredomi/homecare-backend-go/internal/pkg/database"
	"github.com/caredomi/homecare-backend-go/internal/pkg/timeutil"
	"github.com/caredomi/homecare-backend-go/internal/pkg/validator"
	"github.com/caredomi/homecare-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type carePlanServiceImpl struct {
	db         *database.DB
	planRepo   careplan.CarePlanRepository
	itemRepo   careplan.CarePlanItemRepository
	calculator *DurationCalculator
}

func NewCarePlanService(
	db *database.DB,
	planRepo careplan.CarePlanRepository,
	itemRepo careplan.CarePlanItemRepository,
) careplan.Service {
	return &carePlanServiceImpl{
		db:         db,
		planRepo:   planRepo,
		itemRepo:   itemRepo,
		calculator: NewDurationCalculator(),
	}
}

// CreateCarePlan implements careplan.Service.
func (s *carePlanServiceImpl) CreateCarePlan(ctx context.Context, req careplan.CreateCarePlanRequest) (careplan.CarePlanResponse, error) {
	if err := req.Validate(); err != nil {
		return careplan.CarePlanResponse{}, err
	}

	plan := planFromRequest(&req)

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		if err := s.planRepo.Create(txCtx, plan); err != nil {
			return fmt.Errorf("failed to create care plan: %w", err)
		}
		for i := range plan.Items {
			plan.Items[i].CarePlanID = plan.ID
			if err := s.itemRepo.Create(txCtx, &plan.Items[i]); err != nil {
				return fmt.Errorf("failed to create care plan item: %w", err)
			}
			if err := s.itemRepo.ReplaceOccurrences(txCtx, plan.Items[i].ID, plan.Items[i].Occurrences); err != nil {
				return fmt.Errorf("failed to create occurrences: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return careplan.CarePlanResponse{}, err
	}

	return planToResponse(plan), nil
}

// GetCarePlan implements careplan.Service.
func (s *carePlanServiceImpl) GetCarePlan(ctx context.Context, id string) (careplan.CarePlanResponse, error) {
	plan, err := s.planRepo.GetByIDWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return careplan.CarePlanResponse{}, careplan.ErrCarePlanNotFound
		}
		return careplan.CarePlanResponse{}, fmt.Errorf("failed to get care plan: %w", err)
	}
	return planToResponse(plan), nil
}

// ListCarePlans implements careplan.Service.
func (s *carePlanServiceImpl) ListCarePlans(ctx context.Context, patientID string) ([]careplan.CarePlanResponse, error) {
	plans, err := s.planRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list care plans: %w", err)
	}
	responses := make([]careplan.CarePlanResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, planToResponse(&plans[i]))
	}
	return responses, nil
}

// UpdateCarePlan implements careplan.Service.
func (s *carePlanServiceImpl) UpdateCarePlan(ctx context.Context, req careplan.UpdateCarePlanRequest) (careplan.CarePlanResponse, error) {
	if err := req.Validate(); err != nil {
		return careplan.CarePlanResponse{}, err
	}

	existing, err := s.planRepo.GetByIDWithItems(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return careplan.CarePlanResponse{}, careplan.ErrCarePlanNotFound
		}
		return careplan.CarePlanResponse{}, fmt.Errorf("failed to get care plan: %w", err)
	}

	plan := planFromRequest(&req.CreateCarePlanRequest)
	plan.ID = existing.ID
	plan.CreatedAt = existing.CreatedAt

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		if err := s.planRepo.Update(txCtx, plan); err != nil {
			return fmt.Errorf("failed to update care plan: %w", err)
		}

		// Items are replaced as a set: requests carrying an id update the
		// row, the rest are inserted, and rows missing from the request
		// are removed.
		keep := make(map[string]bool, len(plan.Items))
		for i := range plan.Items {
			item := &plan.Items[i]
			item.CarePlanID = plan.ID
			if item.ID != "" {
				keep[item.ID] = true
				if err := s.itemRepo.Update(txCtx, item); err != nil {
					return fmt.Errorf("failed to update care plan item: %w", err)
				}
			} else {
				if err := s.itemRepo.Create(txCtx, item); err != nil {
					return fmt.Errorf("failed to create care plan item: %w", err)
				}
				keep[item.ID] = true
			}
			if err := s.itemRepo.ReplaceOccurrences(txCtx, item.ID, item.Occurrences); err != nil {
				return fmt.Errorf("failed to replace occurrences: %w", err)
			}
		}
		for i := range existing.Items {
			if !keep[existing.Items[i].ID] {
				if err := s.itemRepo.Delete(txCtx, existing.Items[i].ID); err != nil {
					return fmt.Errorf("failed to delete care plan item: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return careplan.CarePlanResponse{}, err
	}

	return planToResponse(plan), nil
}

// DeleteCarePlan implements careplan.Service.
func (s *carePlanServiceImpl) DeleteCarePlan(ctx context.Context, id string) error {
	if err := s.planRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return careplan.ErrCarePlanNotFound
		}
		return fmt.Errorf("failed to delete care plan: %w", err)
	}
	return nil
}

// GetDurationSummary implements careplan.Service.
func (s *carePlanServiceImpl) GetDurationSummary(ctx context.Context, carePlanID string) (careplan.DurationSummaryResponse, error) {
	plan, err := s.planRepo.GetByIDWithItems(ctx, carePlanID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return careplan.DurationSummaryResponse{}, careplan.ErrCarePlanNotFound
		}
		return careplan.DurationSummaryResponse{}, fmt.Errorf("failed to get care plan: %w", err)
	}

	daily := s.calculator.DailyDuration(plan.Items)
	days := s.calculator.ActualDaysPerWeek(planOccurrences(plan))
	weekly := daily * float64(days)

	return careplan.DurationSummaryResponse{
		DailyMinutes:    daily,
		DaysPerWeek:     days,
		WeeklyMinutes:   weekly,
		DailyFormatted:  FormatDuration(daily),
		WeeklyFormatted: FormatDuration(weekly),
	}, nil
}

// CheckSessionDuration implements careplan.Service.
func (s *carePlanServiceImpl) CheckSessionDuration(ctx context.Context, req careplan.SessionCheckRequest) (careplan.SessionCheckResponse, error) {
	if err := req.Validate(); err != nil {
		return careplan.SessionCheckResponse{}, err
	}

	plan, err := s.planRepo.GetByIDWithItems(ctx, req.CarePlanID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return careplan.SessionCheckResponse{}, careplan.ErrCarePlanNotFound
		}
		return careplan.SessionCheckResponse{}, fmt.Errorf("failed to get care plan: %w", err)
	}

	start, _ := timeutil.ParseClock(req.TimeStart)
	end, _ := timeutil.ParseClock(req.TimeEnd)
	result := s.calculator.SessionDurationMatch(start, end, plan.Items)

	resp := careplan.SessionCheckResponse{
		Matches:           result.Matches,
		ActualMinutes:     result.ActualMinutes,
		ExpectedMinutes:   result.ExpectedMinutes,
		DifferenceMinutes: result.DifferenceMinutes,
	}
	if result.SuggestedEnd != nil {
		suggested := result.SuggestedEnd.String()
		resp.SuggestedEnd = &suggested
	}
	return resp, nil
}

func validatorDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, false
	}
	t, ok := validator.IsValidDate(s)
	if !ok {
		return nil, false
	}
	return &t, true
}

func planOccurrences(plan *careplan.CarePlan) []careplan.Occurrence {
	var occurrences []careplan.Occurrence
	for i := range plan.Items {
		occurrences = append(occurrences, plan.Items[i].Occurrences...)
	}
	return occurrences
}

func planFromRequest(req *careplan.CreateCarePlanRequest) *careplan.CarePlan {
	plan := &careplan.CarePlan{
		PatientID: req.PatientID,
		Status:    careplan.PlanStatus(req.Status),
	}
	if plan.Status == "" {
		plan.Status = careplan.StatusDraft
	}
	if req.CNSPlanNumber != "" {
		plan.CNSPlanNumber = &req.CNSPlanNumber
	}
	if req.Notes != "" {
		plan.Notes = &req.Notes
	}
	if t, ok := validatorDate(req.CNSApprovedAt); ok {
		plan.CNSApprovedAt = t
	}
	if t, ok := validatorDate(req.ValidFrom); ok {
		plan.ValidFrom = t
	}
	if t, ok := validatorDate(req.ValidUntil); ok {
		plan.ValidUntil = t
	}

	plan.Items = make([]careplan.CarePlanItem, 0, len(req.Items))
	for _, ir := range req.Items {
		item := careplan.CarePlanItem{
			ID:                   ir.ID,
			PackageCode:          ir.PackageCode,
			Label:                ir.Label,
			WeeklyPackageMinutes: ir.WeeklyPackageMinutes,
			Quantity:             ir.Quantity,
		}
		for _, or := range ir.Occurrences {
			item.Occurrences = append(item.Occurrences, careplan.Occurrence{
				Name:  or.Name,
				Value: or.Value,
			})
		}
		plan.Items = append(plan.Items, item)
	}

	return plan
}

func planToResponse(plan *careplan.CarePlan) careplan.CarePlanResponse {
	resp := careplan.CarePlanResponse{
		ID:            plan.ID,
		PatientID:     plan.PatientID,
		Status:        string(plan.Status),
		CNSPlanNumber: plan.CNSPlanNumber,
		CNSApprovedAt: plan.CNSApprovedAt,
		ValidFrom:     plan.ValidFrom,
		ValidUntil:    plan.ValidUntil,
		Notes:         plan.Notes,
		CreatedAt:     plan.CreatedAt,
		UpdatedAt:     plan.UpdatedAt,
	}
	for i := range plan.Items {
		item := &plan.Items[i]
		ir := careplan.CarePlanItemResponse{
			ID:                   item.ID,
			PackageCode:          item.PackageCode,
			Label:                item.Label,
			WeeklyPackageMinutes: item.WeeklyPackageMinutes,
			Quantity:             item.Quantity,
		}
		for _, occ := range item.Occurrences {
			ir.Occurrences = append(ir.Occurrences, careplan.OccurrenceResponse{
				ID:    occ.ID,
				Name:  occ.Name,
				Value: occ.Value,
			})
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
