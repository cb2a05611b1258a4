package persistence

import "time"

// ChecklistItem is a reusable onboarding task definition from the catalog.
type ChecklistItem struct {
	ID                string
	Title             string
	Description       string
	Responsible       string
	Mandatory         bool
	EstimatedDuration float64
	Order             int
	Category          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EmployeeChecklistItem is the tracked occurrence of a catalog entry for one
// employee. Exactly one instance exists per (EmployeeID, ChecklistItemID)
// pair once instantiated.
type EmployeeChecklistItem struct {
	ID              string
	EmployeeID      string
	ChecklistItemID string
	Status          string
	CompletedDate   *time.Time
	CompletedBy     string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Employee is a new-arrival intake record moving through the onboarding
// pipeline.
type Employee struct {
	ID                  string
	FirstName           string
	LastName            string
	Position            string
	Department          string
	Site                string
	ArrivalDate         time.Time
	ContractStartDate   time.Time
	ContractEndDate     *time.Time
	ContractType        string
	RequiredPPE         string
	PlannedTraining     string
	HRResponsible       string
	ITResponsible       string
	SecurityResponsible string
	HRTasks             []string
	ITTasks             []string
	SecurityTasks       []string
	AdditionalComments  string
	Status              string
	CreatedAt           time.Time
	CompletedAt         *time.Time
}

// Responsable is a directory entry for a departmental point of contact.
// Employees reference responsables by name only, so directory edits never
// propagate.
type Responsable struct {
	ID         string
	Name       string
	Role       string
	Department string
	Email      string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Notification is one entry of the append-only notification log. Records are
// immutable once written.
type Notification struct {
	ID         string
	Subject    string
	Message    string
	Recipients []string
	SentAt     time.Time
	Type       string
	EmployeeID string
	Status     string
}

// Equipment is an IT equipment register entry assigned to an employee.
type Equipment struct {
	ID              string
	EmployeeID      string
	EmployeeName    string
	EquipmentType   string
	Brand           string
	Model           string
	Specifications  string
	ScreenSize      string
	SerialNumber    string
	Condition       string
	AssignedDate    time.Time
	ReturnDate      *time.Time
	Status          string
	WarrantyEndDate *time.Time
	Notes           string
	AssignedBy      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
