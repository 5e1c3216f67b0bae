package employees

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
)

type Staff struct {
	log  *slog.Logger
	repo repository.EmployeeRepoIface
}

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface) *Staff {
	return &Staff{log: log, repo: repo}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		sl.Op(opn),
		slog.String("division", "employee"),
	)
}

// List returns all employees.
func (s *Staff) List(ctx context.Context) ([]models.Employee, error) {
	const opn = "Employee.List"
	log := s.initLogger(opn)

	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to list employees", sl.Err(err))
		return nil, err
	}

	log.DebugContext(ctx, "employees listed", "count", len(employees))

	return employees, nil
}

// Get returns a single employee. repository.ErrEmployeeNotFound is returned as is.
func (s *Staff) Get(ctx context.Context, identifier int) (models.Employee, error) {
	const opn = "Employee.Get"
	log := s.initLogger(opn).With("id", identifier)

	employee, err := s.repo.GetEmployeeByID(ctx, identifier)
	if err != nil {
		logFailure(ctx, log, "failed to get employee", err)
		return models.Employee{}, err
	}

	return employee, nil
}

// Create stores a new employee and returns it with the generated identifier.
func (s *Staff) Create(ctx context.Context, employee models.Employee) (models.Employee, error) {
	const opn = "Employee.Create"
	log := s.initLogger(opn)

	if err := s.repo.SaveEmployee(ctx, &employee); err != nil {
		log.ErrorContext(ctx, "failed to create employee", sl.Err(err))
		return models.Employee{}, err
	}

	log.InfoContext(ctx, "employee created", "id", employee.ID)

	return employee, nil
}

// Update overwrites name, position and salary of an existing employee.
func (s *Staff) Update(ctx context.Context, identifier int, changes models.Employee) (models.Employee, error) {
	const opn = "Employee.Update"
	log := s.initLogger(opn).With("id", identifier)

	employee, err := s.repo.UpdateEmployee(ctx, identifier, changes)
	if err != nil {
		logFailure(ctx, log, "failed to update employee", err)
		return models.Employee{}, err
	}

	log.InfoContext(ctx, "employee updated")

	return employee, nil
}

// Delete removes an employee.
func (s *Staff) Delete(ctx context.Context, identifier int) error {
	const opn = "Employee.Delete"
	log := s.initLogger(opn).With("id", identifier)

	if err := s.repo.DeleteEmployee(ctx, identifier); err != nil {
		logFailure(ctx, log, "failed to delete employee", err)
		return err
	}

	log.InfoContext(ctx, "employee deleted")

	return nil
}

// logFailure logs missing employees at debug level and everything else as an error.
func logFailure(ctx context.Context, log *slog.Logger, msg string, err error) {
	if errors.Is(err, repository.ErrEmployeeNotFound) {
		log.DebugContext(ctx, "employee not found")
		return
	}

	log.ErrorContext(ctx, msg, sl.Err(err))
}
