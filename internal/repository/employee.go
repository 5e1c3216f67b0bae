package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/UnknownOlympus/athena/internal/models"
)

// ListEmployees returns every employee ordered by identifier.
func (r *Repository) ListEmployees(ctx context.Context) (employees []models.Employee, err error) {
	defer func(startTime time.Time) { r.observe("list_employees", startTime, err) }(time.Now())

	employees = make([]models.Employee, 0)
	if err = r.db.WithContext(ctx).Order("id").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// GetEmployeeByID retrieves an employee from the database by their ID.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier int) (result models.Employee, err error) {
	defer func(startTime time.Time) { r.observe("get_employee_by_id", startTime, err) }(time.Now())

	err = r.db.WithContext(ctx).First(&result, identifier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return result, nil
}

// SaveEmployee inserts a new employee. The identifier is generated by the database
// and written back into the passed record.
func (r *Repository) SaveEmployee(ctx context.Context, employee *models.Employee) (err error) {
	defer func(startTime time.Time) { r.observe("save_employee", startTime, err) }(time.Now())

	employee.ID = 0
	if err = r.db.WithContext(ctx).Create(employee).Error; err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}

	return nil
}

// UpdateEmployee replaces the name, position and salary of an existing employee
// and returns the stored record.
func (r *Repository) UpdateEmployee(
	ctx context.Context,
	identifier int,
	changes models.Employee,
) (result models.Employee, err error) {
	defer func(startTime time.Time) { r.observe("update_employee", startTime, err) }(time.Now())

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if findErr := tx.First(&result, identifier).Error; findErr != nil {
			return findErr
		}

		result.Name = changes.Name
		result.Position = changes.Position
		result.Salary = changes.Salary

		return tx.Model(&result).Select("name", "position", "salary").Updates(&result).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee data: %w", err)
	}

	return result, nil
}

// DeleteEmployee removes an employee by their ID.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier int) (err error) {
	defer func(startTime time.Time) { r.observe("delete_employee", startTime, err) }(time.Now())

	res := r.db.WithContext(ctx).Delete(&models.Employee{}, identifier)
	if res.Error != nil {
		return fmt.Errorf("failed to delete employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}
