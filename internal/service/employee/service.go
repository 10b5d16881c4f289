package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/caredomi/homecare-backend-go/internal/domain/employee"
	"github.com/jackc/pgx/v5"
)

type employeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.Service {
	return &employeeServiceImpl{employeeRepo: employeeRepo}
}

// CreateEmployee implements employee.Service.
func (s *employeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e := &employee.Employee{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Qualification: req.Qualification,
		Phone:         req.Phone,
		Email:         req.Email,
		IsActive:      true,
	}
	if err := s.employeeRepo.Create(ctx, e); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return employeeToResponse(e), nil
}

// GetEmployee implements employee.Service.
func (s *employeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return employeeToResponse(e), nil
}

// ListEmployees implements employee.Service.
func (s *employeeServiceImpl) ListEmployees(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, employeeToResponse(&employees[i]))
	}
	return responses, nil
}

// UpdateEmployee implements employee.Service.
func (s *employeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	e.FirstName = req.FirstName
	e.LastName = req.LastName
	e.Qualification = req.Qualification
	e.Phone = req.Phone
	e.Email = req.Email
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := s.employeeRepo.Update(ctx, e); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return employeeToResponse(e), nil
}

// DeleteEmployee implements employee.Service.
func (s *employeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

func employeeToResponse(e *employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Qualification: e.Qualification,
		Phone:         e.Phone,
		Email:         e.Email,
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
