package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/domain/employee"
	"github.com/google/uuid"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[string]employee.Employee)}
}

// Seed stores an employee, assigning an ID when missing.
func (r *EmployeeRepository) Seed(emp employee.Employee) employee.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()

	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	r.employees[emp.ID] = emp
	return emp
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *EmployeeRepository) ListByOffice(ctx context.Context, officeID string) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	employees := make([]employee.Employee, 0)
	for _, emp := range r.employees {
		if emp.OfficeID == officeID {
			employees = append(employees, emp)
		}
	}
	// Same stable row order as the SQL implementation.
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].FullName != employees[j].FullName {
			return employees[i].FullName < employees[j].FullName
		}
		return employees[i].ID < employees[j].ID
	})
	return employees, nil
}
