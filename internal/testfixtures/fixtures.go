package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/onboarding-tracker/internal/application"
	"github.com/example/onboarding-tracker/internal/onboarding"
	"github.com/example/onboarding-tracker/internal/persistence"
)

var (
	employeeCounter    uint64
	itemCounter        uint64
	instanceCounter    uint64
	responsableCounter uint64
	equipmentCounter   uint64
)

var referenceTime = time.Date(2024, time.January, 17, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// --------------------------- Employee fixtures ---------------------------

// EmployeeFixture represents a deterministic intake record that can be
// materialised for application or persistence tests.
type EmployeeFixture struct {
	ID                string
	FirstName         string
	LastName          string
	Position          string
	Department        string
	Site              string
	ArrivalDate       time.Time
	ContractStartDate time.Time
	ContractEndDate   *time.Time
	ContractType      onboarding.ContractType
	HRTasks           []string
	ITTasks           []string
	SecurityTasks     []string
	Status            onboarding.EmployeeStatus
	CreatedAt         time.Time
	CompletedAt       *time.Time
}

// EmployeeOption configures the generated employee fixture.
type EmployeeOption func(*EmployeeFixture)

// NewEmployeeFixture returns a deterministic employee fixture with optional overrides.
func NewEmployeeFixture(opts ...EmployeeOption) EmployeeFixture {
	idx := atomic.AddUint64(&employeeCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := EmployeeFixture{
		ID:                fmt.Sprintf("employee-%03d", idx),
		FirstName:         "Claire",
		LastName:          fmt.Sprintf("Moreau %03d", idx),
		Position:          "Ingénieure procédés",
		Department:        "Production",
		Site:              "Site Nord",
		ArrivalDate:       referenceTime.AddDate(0, 0, 1),
		ContractStartDate: referenceTime.AddDate(0, 0, 1),
		ContractType:      onboarding.ContractCDI,
		Status:            onboarding.EmployeePreparation,
		CreatedAt:         created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEmployeeID overrides the generated employee ID.
func WithEmployeeID(id string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.ID = id
	}
}

// WithEmployeeName overrides the generated first and last name.
func WithEmployeeName(first, last string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.FirstName = first
		f.LastName = last
	}
}

// WithEmployeeArrival sets the arrival and contract start dates.
func WithEmployeeArrival(arrival time.Time) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.ArrivalDate = arrival
		f.ContractStartDate = arrival
	}
}

// WithEmployeeContract sets the contract type and optional end date.
func WithEmployeeContract(contractType onboarding.ContractType, endDate *time.Time) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.ContractType = contractType
		f.ContractEndDate = endDate
	}
}

// WithEmployeeStatus sets the pipeline status on the fixture.
func WithEmployeeStatus(status onboarding.EmployeeStatus) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Status = status
	}
}

// WithEmployeeTasks sets the selected task ids per department.
func WithEmployeeTasks(hr, it, security []string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.HRTasks = hr
		f.ITTasks = it
		f.SecurityTasks = security
	}
}

// WithEmployeeCreatedAt sets the created timestamp on the fixture.
func WithEmployeeCreatedAt(t time.Time) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.CreatedAt = t
	}
}

// WithEmployeeCompletedAt sets the completion timestamp and status together.
func WithEmployeeCompletedAt(t time.Time) EmployeeOption {
	return func(f *EmployeeFixture) {
		completed := t
		f.Status = onboarding.EmployeeCompleted
		f.CompletedAt = &completed
	}
}

// Persistence returns the fixture as a persistence.Employee value.
func (f EmployeeFixture) Persistence() persistence.Employee {
	return persistence.Employee{
		ID:                f.ID,
		FirstName:         f.FirstName,
		LastName:          f.LastName,
		Position:          f.Position,
		Department:        f.Department,
		Site:              f.Site,
		ArrivalDate:       f.ArrivalDate,
		ContractStartDate: f.ContractStartDate,
		ContractEndDate:   cloneTime(f.ContractEndDate),
		ContractType:      string(f.ContractType),
		HRTasks:           append([]string(nil), f.HRTasks...),
		ITTasks:           append([]string(nil), f.ITTasks...),
		SecurityTasks:     append([]string(nil), f.SecurityTasks...),
		Status:            string(f.Status),
		CreatedAt:         f.CreatedAt,
		CompletedAt:       cloneTime(f.CompletedAt),
	}
}

// Input returns the fixture as an application.EmployeeInput.
func (f EmployeeFixture) Input() application.EmployeeInput {
	return application.EmployeeInput{
		FirstName:         f.FirstName,
		LastName:          f.LastName,
		Position:          f.Position,
		Department:        f.Department,
		Site:              f.Site,
		ArrivalDate:       f.ArrivalDate,
		ContractStartDate: f.ContractStartDate,
		ContractEndDate:   cloneTime(f.ContractEndDate),
		ContractType:      f.ContractType,
		HRTasks:           append([]string(nil), f.HRTasks...),
		ITTasks:           append([]string(nil), f.ITTasks...),
		SecurityTasks:     append([]string(nil), f.SecurityTasks...),
	}
}

// ------------------------ Checklist item fixtures ------------------------

// ChecklistItemFixture represents a deterministic catalog entry.
type ChecklistItemFixture struct {
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

// ChecklistItemOption configures the generated catalog entry fixture.
type ChecklistItemOption func(*ChecklistItemFixture)

// NewChecklistItemFixture returns a deterministic catalog entry fixture with
// optional overrides.
func NewChecklistItemFixture(opts ...ChecklistItemOption) ChecklistItemFixture {
	idx := atomic.AddUint64(&itemCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := ChecklistItemFixture{
		ID:                fmt.Sprintf("item-%03d", idx),
		Title:             fmt.Sprintf("Tâche %03d", idx),
		Description:       fmt.Sprintf("Description de la tâche %03d", idx),
		Responsible:       onboarding.DepartmentRH,
		Mandatory:         true,
		EstimatedDuration: 2,
		Order:             int(idx),
		CreatedAt:         created,
		UpdatedAt:         created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithItemID overrides the generated catalog entry ID.
func WithItemID(id string) ChecklistItemOption {
	return func(f *ChecklistItemFixture) {
		f.ID = id
	}
}

// WithItemResponsible sets the owning department.
func WithItemResponsible(department onboarding.Department) ChecklistItemOption {
	return func(f *ChecklistItemFixture) {
		f.Responsible = department
	}
}

// WithItemMandatory sets the mandatory flag.
func WithItemMandatory(mandatory bool) ChecklistItemOption {
	return func(f *ChecklistItemFixture) {
		f.Mandatory = mandatory
	}
}

// WithItemDuration sets the estimated duration in hours.
func WithItemDuration(hours float64) ChecklistItemOption {
	return func(f *ChecklistItemFixture) {
		f.EstimatedDuration = hours
	}
}

// Persistence returns the fixture as a persistence.ChecklistItem value.
func (f ChecklistItemFixture) Persistence() persistence.ChecklistItem {
	return persistence.ChecklistItem{
		ID:                f.ID,
		Title:             f.Title,
		Description:       f.Description,
		Responsible:       string(f.Responsible),
		Mandatory:         f.Mandatory,
		EstimatedDuration: f.EstimatedDuration,
		Order:             f.Order,
		Category:          f.Category,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

// Input returns the fixture as an application.ChecklistItemInput.
func (f ChecklistItemFixture) Input() application.ChecklistItemInput {
	return application.ChecklistItemInput{
		Title:             f.Title,
		Description:       f.Description,
		Responsible:       f.Responsible,
		Mandatory:         f.Mandatory,
		EstimatedDuration: f.EstimatedDuration,
		Category:          f.Category,
	}
}

// --------------------------- Instance fixtures ---------------------------

// InstanceFixture represents a deterministic per-employee checklist instance.
type InstanceFixture struct {
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

// InstanceOption configures the generated instance fixture.
type InstanceOption func(*InstanceFixture)

// NewInstanceFixture returns a deterministic instance fixture linking the
// given employee and catalog entry.
func NewInstanceFixture(employeeID, checklistItemID string, opts ...InstanceOption) InstanceFixture {
	idx := atomic.AddUint64(&instanceCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := InstanceFixture{
		ID:              fmt.Sprintf("instance-%03d", idx),
		EmployeeID:      employeeID,
		ChecklistItemID: checklistItemID,
		Status:          onboarding.TaskNotStarted,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithInstanceStatus sets the task status on the fixture.
func WithInstanceStatus(status onboarding.TaskStatus) InstanceOption {
	return func(f *InstanceFixture) {
		f.Status = status
	}
}

// WithInstanceCompleted marks the instance completed at the given time.
func WithInstanceCompleted(at time.Time, by string) InstanceOption {
	return func(f *InstanceFixture) {
		completed := at
		f.Status = onboarding.TaskCompleted
		f.CompletedDate = &completed
		f.CompletedBy = by
	}
}

// Persistence returns the fixture as a persistence.EmployeeChecklistItem value.
func (f InstanceFixture) Persistence() persistence.EmployeeChecklistItem {
	return persistence.EmployeeChecklistItem{
		ID:              f.ID,
		EmployeeID:      f.EmployeeID,
		ChecklistItemID: f.ChecklistItemID,
		Status:          string(f.Status),
		CompletedDate:   cloneTime(f.CompletedDate),
		CompletedBy:     f.CompletedBy,
		Notes:           f.Notes,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// -------------------------- Responsable fixtures -------------------------

// ResponsableFixture represents a deterministic directory entry.
type ResponsableFixture struct {
	ID         string
	Name       string
	Role       string
	Department onboarding.Department
	Email      string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ResponsableOption configures the generated responsable fixture.
type ResponsableOption func(*ResponsableFixture)

// NewResponsableFixture returns a deterministic responsable fixture with
// optional overrides.
func NewResponsableFixture(opts ...ResponsableOption) ResponsableFixture {
	idx := atomic.AddUint64(&responsableCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := ResponsableFixture{
		ID:         fmt.Sprintf("responsable-%03d", idx),
		Name:       fmt.Sprintf("Contact %03d", idx),
		Role:       "Responsable RH",
		Department: onboarding.DepartmentRH,
		Email:      fmt.Sprintf("contact-%03d@mine.com", idx),
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithResponsableName overrides the generated contact name.
func WithResponsableName(name string) ResponsableOption {
	return func(f *ResponsableFixture) {
		f.Name = name
	}
}

// WithResponsableDepartment sets the department on the fixture.
func WithResponsableDepartment(department onboarding.Department) ResponsableOption {
	return func(f *ResponsableFixture) {
		f.Department = department
	}
}

// Persistence returns the fixture as a persistence.Responsable value.
func (f ResponsableFixture) Persistence() persistence.Responsable {
	return persistence.Responsable{
		ID:         f.ID,
		Name:       f.Name,
		Role:       f.Role,
		Department: string(f.Department),
		Email:      f.Email,
		Phone:      f.Phone,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

// Input returns the fixture as an application.ResponsableInput.
func (f ResponsableFixture) Input() application.ResponsableInput {
	return application.ResponsableInput{
		Name:       f.Name,
		Role:       f.Role,
		Department: f.Department,
		Email:      f.Email,
		Phone:      f.Phone,
	}
}

// --------------------------- Equipment fixtures --------------------------

// EquipmentFixture represents a deterministic IT equipment register entry.
type EquipmentFixture struct {
	ID            string
	EmployeeID    string
	EmployeeName  string
	EquipmentType string
	Brand         string
	SerialNumber  string
	AssignedDate  time.Time
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EquipmentOption configures the generated equipment fixture.
type EquipmentOption func(*EquipmentFixture)

// NewEquipmentFixture returns a deterministic equipment fixture assigned to
// the given employee.
func NewEquipmentFixture(employeeID string, opts ...EquipmentOption) EquipmentFixture {
	idx := atomic.AddUint64(&equipmentCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := EquipmentFixture{
		ID:            fmt.Sprintf("equipment-%03d", idx),
		EmployeeID:    employeeID,
		EmployeeName:  "Claire Moreau",
		EquipmentType: "Ordinateur portable",
		Brand:         "Dell",
		SerialNumber:  fmt.Sprintf("SN-%03d", idx),
		AssignedDate:  referenceTime,
		Status:        "Attribué",
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEquipmentType overrides the generated equipment type.
func WithEquipmentType(equipmentType string) EquipmentOption {
	return func(f *EquipmentFixture) {
		f.EquipmentType = equipmentType
	}
}

// WithEquipmentSerial overrides the generated serial number.
func WithEquipmentSerial(serial string) EquipmentOption {
	return func(f *EquipmentFixture) {
		f.SerialNumber = serial
	}
}

// Persistence returns the fixture as a persistence.Equipment value.
func (f EquipmentFixture) Persistence() persistence.Equipment {
	return persistence.Equipment{
		ID:            f.ID,
		EmployeeID:    f.EmployeeID,
		EmployeeName:  f.EmployeeName,
		EquipmentType: f.EquipmentType,
		Brand:         f.Brand,
		SerialNumber:  f.SerialNumber,
		AssignedDate:  f.AssignedDate,
		Status:        f.Status,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

// Input returns the fixture as an application.EquipmentInput.
func (f EquipmentFixture) Input() application.EquipmentInput {
	return application.EquipmentInput{
		EmployeeID:    f.EmployeeID,
		EquipmentType: f.EquipmentType,
		Brand:         f.Brand,
		SerialNumber:  f.SerialNumber,
		AssignedDate:  f.AssignedDate,
		Status:        f.Status,
	}
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
