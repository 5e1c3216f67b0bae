package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
)

const internalErrorMessage = "internal server error"

// EmployeeService is the set of employee operations exposed over HTTP.
type EmployeeService interface {
	List(ctx context.Context) ([]models.Employee, error)
	Get(ctx context.Context, identifier int) (models.Employee, error)
	Create(ctx context.Context, employee models.Employee) (models.Employee, error)
	Update(ctx context.Context, identifier int, changes models.Employee) (models.Employee, error)
	Delete(ctx context.Context, identifier int) error
}

type EmployeeHandler struct {
	staff EmployeeService
}

func NewEmployeeHandler(staff EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{staff: staff}
}

// employeeRequest is the body accepted by create and update. An id in the body is ignored.
type employeeRequest struct {
	Name     string          `json:"name"`
	Position string          `json:"position"`
	Salary   decimal.Decimal `json:"salary"`
}

func (r employeeRequest) toModel() models.Employee {
	return models.Employee{Name: r.Name, Position: r.Position, Salary: r.Salary}
}

func (h *EmployeeHandler) RegisterRoutes(router *gin.RouterGroup) {
	employees := router.Group("/employees")
	{
		employees.GET("", h.ListEmployees)
		employees.GET("/:id", h.GetEmployee)
		employees.POST("", h.CreateEmployee)
		employees.PUT("/:id", h.UpdateEmployee)
		employees.DELETE("/:id", h.DeleteEmployee)
	}
}

// ListEmployees handles GET /api/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.staff.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

// GetEmployee handles GET /api/employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	identifier, ok := parseID(c)
	if !ok {
		return
	}

	employee, err := h.staff.Get(c.Request.Context(), identifier)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// CreateEmployee handles POST /api/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	employee, err := h.staff.Create(c.Request.Context(), req.toModel())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", c.FullPath(), employee.ID))
	c.JSON(http.StatusCreated, employee)
}

// UpdateEmployee handles PUT /api/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	identifier, ok := parseID(c)
	if !ok {
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	employee, err := h.staff.Update(c.Request.Context(), identifier, req.toModel())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles DELETE /api/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	identifier, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.staff.Delete(c.Request.Context(), identifier); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// fail maps a service error to a response. Only a missing employee is distinguished.
func (h *EmployeeHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrEmployeeNotFound) {
		abortWithError(c, http.StatusNotFound, repository.ErrEmployeeNotFound.Error())
		return
	}

	_ = c.Error(err)
	abortWithError(c, http.StatusInternalServerError, internalErrorMessage)
}

func parseID(c *gin.Context) (int, bool) {
	identifier, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid employee id")
		return 0, false
	}

	return identifier, true
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
