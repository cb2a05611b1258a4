package onboarding

import (
	"testing"
	"time"
)

func sequenceSource(values ...float64) func() float64 {
	index := 0
	return func() float64 {
		value := values[index%len(values)]
		index++
		return value
	}
}

func planningCatalog() []PlanningEntry {
	return []PlanningEntry{
		{ID: "rh-001", Title: "Accueil et présentation", Responsible: DepartmentRH, Mandatory: true, EstimatedDuration: 2},
		{ID: "rh-002", Title: "Induction générale", Responsible: DepartmentRH, Mandatory: true, EstimatedDuration: 8},
		{ID: "it-001", Title: "Création des comptes utilisateur", Responsible: DepartmentIT, Mandatory: true, EstimatedDuration: 12},
		{ID: "sec-001", Title: "Évaluation médicale", Responsible: DepartmentSecurity, Mandatory: false, EstimatedDuration: 2},
	}
}

func TestGeneratePlanning(t *testing.T) {
	weekStart := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	t.Run("advances the cursor by one day per eight estimated hours", func(t *testing.T) {
		employees := []PlanningEmployee{{ID: "emp-1", Name: "Alice Roy", Status: EmployeePreparation}}

		tasks := GeneratePlanning(employees, planningCatalog(), weekStart, "", nil)
		if len(tasks) != 4 {
			t.Fatalf("expected 4 tasks, got %d", len(tasks))
		}

		byID := make(map[string]PlanningTask, len(tasks))
		for _, task := range tasks {
			byID[task.ID] = task
		}

		// 2h task occupies day 1 and advances one day; 8h advances one day;
		// 12h advances two days.
		wantStarts := map[string]time.Time{
			"emp-1-rh-001":  weekStart,
			"emp-1-rh-002":  weekStart.AddDate(0, 0, 1),
			"emp-1-it-001":  weekStart.AddDate(0, 0, 2),
			"emp-1-sec-001": weekStart.AddDate(0, 0, 4),
		}
		for id, want := range wantStarts {
			task, ok := byID[id]
			if !ok {
				t.Fatalf("missing task %s", id)
			}
			if !task.Start.Equal(want) {
				t.Fatalf("task %s starts at %v, want %v", id, task.Start, want)
			}
		}

		if got := byID["emp-1-rh-001"].End; !got.Equal(weekStart.Add(2 * time.Hour)) {
			t.Fatalf("task end = %v, want start + 2h", got)
		}
	})

	t.Run("skips completed employees", func(t *testing.T) {
		employees := []PlanningEmployee{
			{ID: "emp-1", Name: "Alice Roy", Status: EmployeeCompleted},
			{ID: "emp-2", Name: "Benoît Caron", Status: EmployeePreparation},
		}

		tasks := GeneratePlanning(employees, planningCatalog(), weekStart, "", nil)
		for _, task := range tasks {
			if task.EmployeeID == "emp-1" {
				t.Fatalf("completed employee should not be planned: %#v", task)
			}
		}
		if len(tasks) != 4 {
			t.Fatalf("expected 4 tasks for the active employee, got %d", len(tasks))
		}
	})

	t.Run("filters the catalog to a single department", func(t *testing.T) {
		employees := []PlanningEmployee{{ID: "emp-1", Name: "Alice Roy", Status: EmployeePreparation}}

		tasks := GeneratePlanning(employees, planningCatalog(), weekStart, DepartmentRH, nil)
		if len(tasks) != 2 {
			t.Fatalf("expected 2 RH tasks, got %d", len(tasks))
		}
		for _, task := range tasks {
			if task.Responsible != DepartmentRH {
				t.Fatalf("unexpected department %s", task.Responsible)
			}
		}
	})

	t.Run("samples progress statuses deterministically from the source", func(t *testing.T) {
		employees := []PlanningEmployee{{ID: "emp-1", Name: "Alice Roy", Status: EmployeeWelcome}}

		// Accueil samples the first 8 tasks with a 0.5 threshold.
		tasks := GeneratePlanning(employees, planningCatalog(), weekStart, "", sequenceSource(0.9, 0.1, 0.9, 0.1))
		wantStatuses := []PlanningStatus{PlanningCompleted, PlanningInProgress, PlanningCompleted, PlanningInProgress}
		for i, task := range tasks {
			if task.Status != wantStatuses[i] {
				t.Fatalf("task %d status = %s, want %s", i, task.Status, wantStatuses[i])
			}
		}
	})

	t.Run("preparation employees are planned without progress", func(t *testing.T) {
		employees := []PlanningEmployee{{ID: "emp-1", Name: "Alice Roy", Status: EmployeePreparation}}

		tasks := GeneratePlanning(employees, planningCatalog(), weekStart, "", sequenceSource(0.9))
		for _, task := range tasks {
			if task.Status != PlanningPlanned {
				t.Fatalf("expected Planifié, got %s", task.Status)
			}
		}
	})

	t.Run("mandatory tasks carry high priority", func(t *testing.T) {
		employees := []PlanningEmployee{{ID: "emp-1", Name: "Alice Roy", Status: EmployeePreparation}}

		tasks := GeneratePlanning(employees, planningCatalog(), weekStart, "", nil)
		for _, task := range tasks {
			want := PriorityMedium
			if task.Mandatory {
				want = PriorityHigh
			}
			if task.Priority != want {
				t.Fatalf("task %s priority = %s, want %s", task.ID, task.Priority, want)
			}
		}
	})
}

func TestGroupPlanningByDay(t *testing.T) {
	weekStart := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	employees := []PlanningEmployee{{ID: "emp-1", Name: "Alice Roy", Status: EmployeePreparation}}

	days := GroupPlanningByDay(GeneratePlanning(employees, planningCatalog(), weekStart, "", nil))
	if len(days) != 4 {
		t.Fatalf("expected 4 distinct days, got %d", len(days))
	}
	if days[0].Date != "2024-01-15" {
		t.Fatalf("first day = %s, want 2024-01-15", days[0].Date)
	}
	for i := 1; i < len(days); i++ {
		if days[i].Date <= days[i-1].Date {
			t.Fatalf("days not ordered: %s before %s", days[i-1].Date, days[i].Date)
		}
	}
}

func TestSummarisePlanning(t *testing.T) {
	tasks := []PlanningTask{
		{Status: PlanningCompleted},
		{Status: PlanningInProgress},
		{Status: PlanningPlanned},
		{Status: PlanningPlanned},
		{Status: PlanningOverdue},
	}

	stats := SummarisePlanning(tasks)
	if stats.Total != 5 || stats.Completed != 1 || stats.InProgress != 1 || stats.Planned != 2 || stats.Overdue != 1 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
}
