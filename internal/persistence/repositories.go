package persistence

import "context"

// ChecklistItemRepository stores catalog task definitions.
type ChecklistItemRepository interface {
	CreateChecklistItem(ctx context.Context, item ChecklistItem) (ChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, item ChecklistItem) (ChecklistItem, error)
	GetChecklistItem(ctx context.Context, id string) (ChecklistItem, error)
	ListChecklistItems(ctx context.Context) ([]ChecklistItem, error)
	DeleteChecklistItem(ctx context.Context, id string) error
}

// EmployeeChecklistRepository stores per-employee checklist instances.
type EmployeeChecklistRepository interface {
	CreateInstance(ctx context.Context, instance EmployeeChecklistItem) (EmployeeChecklistItem, error)
	UpdateInstance(ctx context.Context, instance EmployeeChecklistItem) (EmployeeChecklistItem, error)
	GetInstance(ctx context.Context, employeeID, checklistItemID string) (EmployeeChecklistItem, error)
	ListInstancesForEmployee(ctx context.Context, employeeID string) ([]EmployeeChecklistItem, error)
	// DeleteInstancesForChecklistItem removes every instance referencing the
	// catalog entry and reports how many records were deleted.
	DeleteInstancesForChecklistItem(ctx context.Context, checklistItemID string) (int, error)
}

// EmployeeRepository stores employee intake records.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee Employee) (Employee, error)
	UpdateEmployee(ctx context.Context, employee Employee) (Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// ResponsableRepository stores the departmental contact directory.
type ResponsableRepository interface {
	CreateResponsable(ctx context.Context, responsable Responsable) (Responsable, error)
	UpdateResponsable(ctx context.Context, responsable Responsable) (Responsable, error)
	GetResponsable(ctx context.Context, id string) (Responsable, error)
	ListResponsables(ctx context.Context) ([]Responsable, error)
	DeleteResponsable(ctx context.Context, id string) error
}

// NotificationRepository stores the append-only notification log.
type NotificationRepository interface {
	AppendNotification(ctx context.Context, notification Notification) error
	ListNotifications(ctx context.Context) ([]Notification, error)
}

// EquipmentRepository stores the IT equipment register.
type EquipmentRepository interface {
	CreateEquipment(ctx context.Context, equipment Equipment) (Equipment, error)
	UpdateEquipment(ctx context.Context, equipment Equipment) (Equipment, error)
	GetEquipment(ctx context.Context, id string) (Equipment, error)
	ListEquipment(ctx context.Context) ([]Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
}
