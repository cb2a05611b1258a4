package onboarding

// Department identifies the team responsible for a checklist task.
type Department string

const (
	DepartmentRH       Department = "RH"
	DepartmentIT       Department = "IT"
	DepartmentSecurity Department = "Sécurité"
)

// Departments returns every department in display order.
func Departments() []Department {
	return []Department{DepartmentRH, DepartmentIT, DepartmentSecurity}
}

// Valid reports whether the department belongs to the closed value set.
func (d Department) Valid() bool {
	switch d {
	case DepartmentRH, DepartmentIT, DepartmentSecurity:
		return true
	}
	return false
}

// TaskStatus tracks the progress of one employee checklist instance.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "Non commencé"
	TaskInProgress TaskStatus = "En cours"
	TaskCompleted  TaskStatus = "Complété"
	TaskOverdue    TaskStatus = "En retard"
)

// Valid reports whether the task status belongs to the closed value set.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskCompleted, TaskOverdue:
		return true
	}
	return false
}

// EmployeeStatus tracks the onboarding pipeline stage of an employee.
//
// Préparation, Accueil and Prise de service are assigned manually; only the
// transition to Complété is derived from checklist completion. No ordering is
// enforced between stages, and Complété can be manually reverted.
type EmployeeStatus string

const (
	EmployeePreparation EmployeeStatus = "Préparation"
	EmployeeWelcome     EmployeeStatus = "Accueil"
	EmployeeOnDuty      EmployeeStatus = "Prise de service"
	EmployeeCompleted   EmployeeStatus = "Complété"
)

// Valid reports whether the employee status belongs to the closed value set.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeePreparation, EmployeeWelcome, EmployeeOnDuty, EmployeeCompleted:
		return true
	}
	return false
}

// ContractType classifies the employment contract of a new arrival.
type ContractType string

const (
	ContractCDI     ContractType = "CDI"
	ContractCDD     ContractType = "CDD"
	ContractStage   ContractType = "Stage"
	ContractInterim ContractType = "Intérim"
)

// Valid reports whether the contract type belongs to the closed value set.
func (c ContractType) Valid() bool {
	switch c {
	case ContractCDI, ContractCDD, ContractStage, ContractInterim:
		return true
	}
	return false
}
