// Package memory provides an in-memory implementation of the persistence
// repositories. It backs tests and the optional storage-free run mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/onboarding-tracker/internal/persistence"
)

// Storage keeps every repository in process memory, guarded by a single
// read-write mutex. Records are cloned on the way in and out so callers can
// never alias internal state.
type Storage struct {
	mu            sync.RWMutex
	checklists    map[string]persistence.ChecklistItem
	instances     map[string]persistence.EmployeeChecklistItem
	employees     map[string]persistence.Employee
	responsables  map[string]persistence.Responsable
	notifications []persistence.Notification
	equipment     map[string]persistence.Equipment
}

// NewStorage returns an empty in-memory storage.
func NewStorage() *Storage {
	return &Storage{
		checklists:   make(map[string]persistence.ChecklistItem),
		instances:    make(map[string]persistence.EmployeeChecklistItem),
		employees:    make(map[string]persistence.Employee),
		responsables: make(map[string]persistence.Responsable),
		equipment:    make(map[string]persistence.Equipment),
	}
}

// --- ChecklistItemRepository ---

func (s *Storage) CreateChecklistItem(ctx context.Context, item persistence.ChecklistItem) (persistence.ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.checklists[item.ID]; ok {
		return persistence.ChecklistItem{}, persistence.ErrDuplicate
	}
	s.checklists[item.ID] = cloneChecklistItem(item)
	return cloneChecklistItem(item), nil
}

func (s *Storage) UpdateChecklistItem(ctx context.Context, item persistence.ChecklistItem) (persistence.ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.checklists[item.ID]; !ok {
		return persistence.ChecklistItem{}, persistence.ErrNotFound
	}
	s.checklists[item.ID] = cloneChecklistItem(item)
	return cloneChecklistItem(item), nil
}

func (s *Storage) GetChecklistItem(ctx context.Context, id string) (persistence.ChecklistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.checklists[id]
	if !ok {
		return persistence.ChecklistItem{}, persistence.ErrNotFound
	}
	return cloneChecklistItem(item), nil
}

// ListChecklistItems returns catalog entries ordered by department, then
// order, then ID.
func (s *Storage) ListChecklistItems(ctx context.Context) ([]persistence.ChecklistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]persistence.ChecklistItem, 0, len(s.checklists))
	for _, item := range s.checklists {
		items = append(items, cloneChecklistItem(item))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Responsible != items[j].Responsible {
			return departmentRank(items[i].Responsible) < departmentRank(items[j].Responsible)
		}
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (s *Storage) DeleteChecklistItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.checklists[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.checklists, id)
	return nil
}

func departmentRank(department string) int {
	switch department {
	case "RH":
		return 0
	case "IT":
		return 1
	case "Sécurité":
		return 2
	}
	return 3
}

// --- EmployeeChecklistRepository ---

func (s *Storage) CreateInstance(ctx context.Context, instance persistence.EmployeeChecklistItem) (persistence.EmployeeChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.instances {
		if existing.EmployeeID == instance.EmployeeID && existing.ChecklistItemID == instance.ChecklistItemID {
			return persistence.EmployeeChecklistItem{}, persistence.ErrDuplicate
		}
	}
	if _, ok := s.instances[instance.ID]; ok {
		return persistence.EmployeeChecklistItem{}, persistence.ErrDuplicate
	}
	s.instances[instance.ID] = cloneInstance(instance)
	return cloneInstance(instance), nil
}

func (s *Storage) UpdateInstance(ctx context.Context, instance persistence.EmployeeChecklistItem) (persistence.EmployeeChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.instances[instance.ID]; !ok {
		return persistence.EmployeeChecklistItem{}, persistence.ErrNotFound
	}
	s.instances[instance.ID] = cloneInstance(instance)
	return cloneInstance(instance), nil
}

func (s *Storage) GetInstance(ctx context.Context, employeeID, checklistItemID string) (persistence.EmployeeChecklistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, instance := range s.instances {
		if instance.EmployeeID == employeeID && instance.ChecklistItemID == checklistItemID {
			return cloneInstance(instance), nil
		}
	}
	return persistence.EmployeeChecklistItem{}, persistence.ErrNotFound
}

// ListInstancesForEmployee returns instances ordered by CreatedAt then ID.
func (s *Storage) ListInstancesForEmployee(ctx context.Context, employeeID string) ([]persistence.EmployeeChecklistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instances := make([]persistence.EmployeeChecklistItem, 0)
	for _, instance := range s.instances {
		if instance.EmployeeID == employeeID {
			instances = append(instances, cloneInstance(instance))
		}
	}
	sort.Slice(instances, func(i, j int) bool {
		if instances[i].CreatedAt.Equal(instances[j].CreatedAt) {
			return instances[i].ID < instances[j].ID
		}
		return instances[i].CreatedAt.Before(instances[j].CreatedAt)
	})
	return instances, nil
}

func (s *Storage) DeleteInstancesForChecklistItem(ctx context.Context, checklistItemID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, instance := range s.instances {
		if instance.ChecklistItemID == checklistItemID {
			delete(s.instances, id)
			deleted++
		}
	}
	return deleted, nil
}

// --- EmployeeRepository ---

func (s *Storage) CreateEmployee(ctx context.Context, employee persistence.Employee) (persistence.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employee.ID]; ok {
		return persistence.Employee{}, persistence.ErrDuplicate
	}
	s.employees[employee.ID] = cloneEmployee(employee)
	return cloneEmployee(employee), nil
}

func (s *Storage) UpdateEmployee(ctx context.Context, employee persistence.Employee) (persistence.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employee.ID]; !ok {
		return persistence.Employee{}, persistence.ErrNotFound
	}
	s.employees[employee.ID] = cloneEmployee(employee)
	return cloneEmployee(employee), nil
}

func (s *Storage) GetEmployee(ctx context.Context, id string) (persistence.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employee, ok := s.employees[id]
	if !ok {
		return persistence.Employee{}, persistence.ErrNotFound
	}
	return cloneEmployee(employee), nil
}

// ListEmployees returns employees ordered by CreatedAt then ID.
func (s *Storage) ListEmployees(ctx context.Context) ([]persistence.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]persistence.Employee, 0, len(s.employees))
	for _, employee := range s.employees {
		employees = append(employees, cloneEmployee(employee))
	}
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].CreatedAt.Equal(employees[j].CreatedAt) {
			return employees[i].ID < employees[j].ID
		}
		return employees[i].CreatedAt.Before(employees[j].CreatedAt)
	})
	return employees, nil
}

func (s *Storage) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.employees, id)

	for instanceID, instance := range s.instances {
		if instance.EmployeeID == id {
			delete(s.instances, instanceID)
		}
	}
	return nil
}

// --- ResponsableRepository ---

func (s *Storage) CreateResponsable(ctx context.Context, responsable persistence.Responsable) (persistence.Responsable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.responsables[responsable.ID]; ok {
		return persistence.Responsable{}, persistence.ErrDuplicate
	}
	s.responsables[responsable.ID] = responsable
	return responsable, nil
}

func (s *Storage) UpdateResponsable(ctx context.Context, responsable persistence.Responsable) (persistence.Responsable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.responsables[responsable.ID]; !ok {
		return persistence.Responsable{}, persistence.ErrNotFound
	}
	s.responsables[responsable.ID] = responsable
	return responsable, nil
}

func (s *Storage) GetResponsable(ctx context.Context, id string) (persistence.Responsable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	responsable, ok := s.responsables[id]
	if !ok {
		return persistence.Responsable{}, persistence.ErrNotFound
	}
	return responsable, nil
}

// ListResponsables returns directory entries ordered by name then ID.
func (s *Storage) ListResponsables(ctx context.Context) ([]persistence.Responsable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	responsables := make([]persistence.Responsable, 0, len(s.responsables))
	for _, responsable := range s.responsables {
		responsables = append(responsables, responsable)
	}
	sort.Slice(responsables, func(i, j int) bool {
		if responsables[i].Name == responsables[j].Name {
			return responsables[i].ID < responsables[j].ID
		}
		return responsables[i].Name < responsables[j].Name
	})
	return responsables, nil
}

func (s *Storage) DeleteResponsable(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.responsables[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.responsables, id)
	return nil
}

// --- NotificationRepository ---

func (s *Storage) AppendNotification(ctx context.Context, notification persistence.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, cloneNotification(notification))
	return nil
}

// ListNotifications returns the log ordered most recent first.
func (s *Storage) ListNotifications(ctx context.Context) ([]persistence.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := make([]persistence.Notification, 0, len(s.notifications))
	for _, notification := range s.notifications {
		notifications = append(notifications, cloneNotification(notification))
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].SentAt.After(notifications[j].SentAt)
	})
	return notifications, nil
}

// --- EquipmentRepository ---

func (s *Storage) CreateEquipment(ctx context.Context, equipment persistence.Equipment) (persistence.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.equipment[equipment.ID]; ok {
		return persistence.Equipment{}, persistence.ErrDuplicate
	}
	s.equipment[equipment.ID] = cloneEquipment(equipment)
	return cloneEquipment(equipment), nil
}

func (s *Storage) UpdateEquipment(ctx context.Context, equipment persistence.Equipment) (persistence.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.equipment[equipment.ID]; !ok {
		return persistence.Equipment{}, persistence.ErrNotFound
	}
	s.equipment[equipment.ID] = cloneEquipment(equipment)
	return cloneEquipment(equipment), nil
}

func (s *Storage) GetEquipment(ctx context.Context, id string) (persistence.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	equipment, ok := s.equipment[id]
	if !ok {
		return persistence.Equipment{}, persistence.ErrNotFound
	}
	return cloneEquipment(equipment), nil
}

// ListEquipment returns register entries ordered by AssignedDate descending
// then ID.
func (s *Storage) ListEquipment(ctx context.Context) ([]persistence.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]persistence.Equipment, 0, len(s.equipment))
	for _, item := range s.equipment {
		items = append(items, cloneEquipment(item))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AssignedDate.Equal(items[j].AssignedDate) {
			return items[i].ID < items[j].ID
		}
		return items[i].AssignedDate.After(items[j].AssignedDate)
	})
	return items, nil
}

func (s *Storage) DeleteEquipment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.equipment[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.equipment, id)
	return nil
}

// --- clone helpers ---

func cloneChecklistItem(item persistence.ChecklistItem) persistence.ChecklistItem {
	return item
}

func cloneInstance(instance persistence.EmployeeChecklistItem) persistence.EmployeeChecklistItem {
	instance.CompletedDate = cloneTime(instance.CompletedDate)
	return instance
}

func cloneEmployee(employee persistence.Employee) persistence.Employee {
	employee.ContractEndDate = cloneTime(employee.ContractEndDate)
	employee.CompletedAt = cloneTime(employee.CompletedAt)
	employee.HRTasks = append([]string(nil), employee.HRTasks...)
	employee.ITTasks = append([]string(nil), employee.ITTasks...)
	employee.SecurityTasks = append([]string(nil), employee.SecurityTasks...)
	return employee
}

func cloneNotification(notification persistence.Notification) persistence.Notification {
	notification.Recipients = append([]string(nil), notification.Recipients...)
	return notification
}

func cloneEquipment(equipment persistence.Equipment) persistence.Equipment {
	equipment.ReturnDate = cloneTime(equipment.ReturnDate)
	equipment.WarrantyEndDate = cloneTime(equipment.WarrantyEndDate)
	return equipment
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
