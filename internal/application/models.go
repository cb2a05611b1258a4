package application

import (
	"time"

	"github.com/example/onboarding-tracker/internal/onboarding"
)

// ChecklistItemInput captures caller provided catalog entry fields.
type ChecklistItemInput struct {
	Title             string
	Description       string
	Responsible       onboarding.Department
	Mandatory         bool
	EstimatedDuration float64
	Category          string
}

// ChecklistItem represents a catalog task definition exposed by the services.
type ChecklistItem struct {
	ID                string
	Title             string
	Description       string
	Responsible       onboarding.Department
	Mandatory         bool
	EstimatedDuration float64
	Order             int
	Category          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ChecklistInstance represents the tracked occurrence of a catalog entry for
// one employee.
type ChecklistInstance struct {
	ID              string
	EmployeeID      string
	ChecklistItemID string
	Status          onboarding.TaskStatus
	CompletedDate   *time.Time
	CompletedBy     string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SetTaskStatusParams wraps the data required to update one checklist
// instance. A nil Notes pointer leaves existing notes unchanged; a pointer to
// an empty string clears them.
type SetTaskStatusParams struct {
	EmployeeID      string
	ChecklistItemID string
	Status          onboarding.TaskStatus
	CompletedBy     string
	Notes           *string
}

// SetTaskStatusResult reports the updated instance and whether the update
// auto-completed the employee's onboarding.
type SetTaskStatusResult struct {
	Instance          ChecklistInstance
	EmployeeCompleted bool
}

// DepartmentStats aggregates one employee's checklist progress for a single
// department.
type DepartmentStats struct {
	Department onboarding.Department
	Total      int
	Completed  int
	InProgress int
	Mandatory  int
}

// EmployeeInput captures caller provided intake fields.
type EmployeeInput struct {
	FirstName           string
	LastName            string
	Position            string
	Department          string
	Site                string
	ArrivalDate         time.Time
	ContractStartDate   time.Time
	ContractEndDate     *time.Time
	ContractType        onboarding.ContractType
	RequiredPPE         string
	PlannedTraining     string
	HRResponsible       string
	ITResponsible       string
	SecurityResponsible string
	HRTasks             []string
	ITTasks             []string
	SecurityTasks       []string
	AdditionalComments  string
}

// Employee represents an intake record moving through the onboarding
// pipeline. CompletedAt is set if and only if Status is Complété.
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
	ContractType        onboarding.ContractType
	RequiredPPE         string
	PlannedTraining     string
	HRResponsible       string
	ITResponsible       string
	SecurityResponsible string
	HRTasks             []string
	ITTasks             []string
	SecurityTasks       []string
	AdditionalComments  string
	Status              onboarding.EmployeeStatus
	CreatedAt           time.Time
	CompletedAt         *time.Time
}

// FullName renders the display name used in exports and notifications.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// KPIReport summarises onboarding activity for the dashboard.
type KPIReport struct {
	IntegrationsThisWeek  int
	IntegrationsOverdue   int
	IntegrationsCompleted int
	AverageDurationDays   int
}

// ResponsableInput captures caller provided directory entry fields.
type ResponsableInput struct {
	Name       string
	Role       string
	Department onboarding.Department
	Email      string
	Phone      string
}

// Responsable represents a departmental contact directory entry.
type Responsable struct {
	ID         string
	Name       string
	Role       string
	Department onboarding.Department
	Email      string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NotificationMode selects the employee set a notification batch targets.
type NotificationMode string

const (
	// NotificationWeekly targets employees arriving in the current
	// Monday-to-Sunday week.
	NotificationWeekly NotificationMode = "weekly"
	// NotificationTomorrow targets employees arriving on the next calendar day.
	NotificationTomorrow NotificationMode = "tomorrow"
	// NotificationCustom targets every employee not yet Complété.
	NotificationCustom NotificationMode = "custom"
)

// Valid reports whether the mode belongs to the closed value set.
func (m NotificationMode) Valid() bool {
	switch m {
	case NotificationWeekly, NotificationTomorrow, NotificationCustom:
		return true
	}
	return false
}

// EmployeeSelection pairs an employee with the per-department task ids to
// include in their matrix artifact. Inclusion is independent from actual
// completion state.
type EmployeeSelection struct {
	EmployeeID string
	Tasks      map[onboarding.Department][]string
}

// NotificationRequest wraps the data required to compose a notification batch.
// When Departments is empty all three departments are addressed; when a
// selection carries no task map the full catalog of each department is
// included.
type NotificationRequest struct {
	Mode          NotificationMode
	CustomMessage string
	Departments   []onboarding.Department
	Selections    []EmployeeSelection
}

// Artifact is one generated plaintext matrix attachment, named after the
// employee it describes.
type Artifact struct {
	EmployeeID string
	FileName   string
	Content    string
}

// Notification is one record of the append-only notification log.
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

// NotificationBatch is the outcome of composing (and possibly dispatching) a
// notification request.
type NotificationBatch struct {
	Notification Notification
	Artifacts    []Artifact
}

// PlanningParams narrows the synthetic planning derivation. Week uses the
// "2006-W02" ISO form and defaults to the current week; an empty Department
// keeps every catalog task.
type PlanningParams struct {
	Week       string
	Department onboarding.Department
}

// EquipmentInput captures caller provided IT equipment register fields.
type EquipmentInput struct {
	EmployeeID      string
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
}

// Equipment represents an IT equipment register entry.
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
