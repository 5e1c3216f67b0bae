package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
)

// ErrEmployeeNotFound is returned when no employee exists with the requested identifier.
var ErrEmployeeNotFound = errors.New("employee not found")

type Repository struct {
	db      *gorm.DB
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error)
	SaveEmployee(ctx context.Context, employee *models.Employee) error
	UpdateEmployee(ctx context.Context, identifier int, changes models.Employee) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier int) error
}

func NewEmployeeRepository(dtb *Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: dtb.Gorm(), metrics: metrics}
}

// observe records the duration of a query and counts it as failed when err is set.
// Not-found results are expected outcomes and do not count as errors.
func (r *Repository) observe(queryType string, startTime time.Time, err error) {
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(startTime).Seconds())
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		r.metrics.DBQueryErrors.WithLabelValues(queryType).Inc()
	}
}
