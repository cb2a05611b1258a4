package onboarding

import (
	"math"
	"sort"
	"time"
)

// PlanningStatus is the synthetic progress label attached to a generated
// planning cell. It is presentation noise, not derived from real checklist
// state.
type PlanningStatus string

const (
	PlanningPlanned    PlanningStatus = "Planifié"
	PlanningInProgress PlanningStatus = "En cours"
	PlanningCompleted  PlanningStatus = "Complété"
	PlanningOverdue    PlanningStatus = "En retard"
)

// Planning priorities, derived from the mandatory flag of the catalog task.
const (
	PriorityHigh   = "Haute"
	PriorityMedium = "Moyenne"
)

// PlanningEmployee is the employee subset the generator needs.
type PlanningEmployee struct {
	ID     string
	Name   string
	Status EmployeeStatus
}

// PlanningEntry is the catalog subset the generator needs. Entries are
// expected in catalog order (department, then order).
type PlanningEntry struct {
	ID                string
	Title             string
	Responsible       Department
	Mandatory         bool
	EstimatedDuration float64
}

// PlanningTask is one synthetic schedule cell produced by GeneratePlanning.
type PlanningTask struct {
	ID                string
	EmployeeID        string
	EmployeeName      string
	TaskTitle         string
	Responsible       Department
	EstimatedDuration float64
	Start             time.Time
	End               time.Time
	Status            PlanningStatus
	Priority          string
	Mandatory         bool
}

// GeneratePlanning spreads the catalog tasks of every non-completed employee
// across calendar days starting at weekStart. Each task occupies the running
// cursor date and advances it by ceil(estimatedDuration/8) days, 8 hours
// counting as one working day.
//
// The status of each cell is sampled from random when the employee's pipeline
// stage implies partial progress, purely for visual variety. Passing a
// deterministic source yields reproducible output. The result is a fresh
// derivation every call; nothing is persisted.
func GeneratePlanning(employees []PlanningEmployee, catalog []PlanningEntry, weekStart time.Time, department Department, random func() float64) []PlanningTask {
	if random == nil {
		random = func() float64 { return 1 }
	}

	entries := catalog
	if department != "" {
		entries = make([]PlanningEntry, 0, len(catalog))
		for _, entry := range catalog {
			if entry.Responsible == department {
				entries = append(entries, entry)
			}
		}
	}

	planning := make([]PlanningTask, 0, len(employees)*len(entries))
	for _, employee := range employees {
		if employee.Status == EmployeeCompleted {
			continue
		}

		cursor := weekStart
		for index, entry := range entries {
			status := samplePlanningStatus(employee.Status, index, random)

			start := cursor
			end := cursor.Add(time.Duration(entry.EstimatedDuration * float64(time.Hour)))
			cursor = cursor.AddDate(0, 0, int(math.Ceil(entry.EstimatedDuration/8)))

			planning = append(planning, PlanningTask{
				ID:                employee.ID + "-" + entry.ID,
				EmployeeID:        employee.ID,
				EmployeeName:      employee.Name,
				TaskTitle:         entry.Title,
				Responsible:       entry.Responsible,
				EstimatedDuration: entry.EstimatedDuration,
				Start:             start,
				End:               end,
				Status:            status,
				Priority:          planningPriority(entry.Mandatory),
				Mandatory:         entry.Mandatory,
			})
		}
	}

	sort.SliceStable(planning, func(i, j int) bool {
		if planning[i].Start.Equal(planning[j].Start) {
			return planning[i].ID < planning[j].ID
		}
		return planning[i].Start.Before(planning[j].Start)
	})

	return planning
}

func samplePlanningStatus(status EmployeeStatus, index int, random func() float64) PlanningStatus {
	switch {
	case status == EmployeeOnDuty && index < 15:
		if random() > 0.7 {
			return PlanningCompleted
		}
		return PlanningInProgress
	case status == EmployeeWelcome && index < 8:
		if random() > 0.5 {
			return PlanningCompleted
		}
		return PlanningInProgress
	}
	return PlanningPlanned
}

func planningPriority(mandatory bool) string {
	if mandatory {
		return PriorityHigh
	}
	return PriorityMedium
}

// PlanningDay groups the cells of one calendar day for display.
type PlanningDay struct {
	Date  string
	Tasks []PlanningTask
}

// GroupPlanningByDay buckets tasks by their start date, ordered by day. Day
// keys use the ISO date form (2006-01-02).
func GroupPlanningByDay(tasks []PlanningTask) []PlanningDay {
	buckets := make(map[string][]PlanningTask)
	for _, task := range tasks {
		key := task.Start.Format("2006-01-02")
		buckets[key] = append(buckets[key], task)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	days := make([]PlanningDay, 0, len(keys))
	for _, key := range keys {
		days = append(days, PlanningDay{Date: key, Tasks: buckets[key]})
	}
	return days
}

// PlanningStats summarises a generated planning for dashboards.
type PlanningStats struct {
	Total      int
	Completed  int
	InProgress int
	Planned    int
	Overdue    int
}

// SummarisePlanning tallies cell statuses.
func SummarisePlanning(tasks []PlanningTask) PlanningStats {
	stats := PlanningStats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case PlanningCompleted:
			stats.Completed++
		case PlanningInProgress:
			stats.InProgress++
		case PlanningOverdue:
			stats.Overdue++
		default:
			stats.Planned++
		}
	}
	return stats
}
