package onboarding

// CatalogTask is the subset of a checklist definition the completion
// predicate needs.
type CatalogTask struct {
	ID        string
	Mandatory bool
}

// TaskProgress is the subset of an employee checklist instance the completion
// predicate needs.
type TaskProgress struct {
	ChecklistItemID string
	Status          TaskStatus
}

// MandatoryTasksComplete reports whether every mandatory catalog task has a
// completed instance for the employee. Optional tasks never gate completion.
//
// When the catalog carries no mandatory task the predicate is trivially true,
// so an employee with an empty catalog auto-completes. Callers depend on
// that: seeding the catalog before creating employees is the caller's job.
func MandatoryTasksComplete(catalog []CatalogTask, instances []TaskProgress) bool {
	mandatory := make(map[string]struct{}, len(catalog))
	for _, task := range catalog {
		if task.Mandatory {
			mandatory[task.ID] = struct{}{}
		}
	}

	completed := make(map[string]struct{}, len(mandatory))
	for _, instance := range instances {
		if instance.Status != TaskCompleted {
			continue
		}
		if _, ok := mandatory[instance.ChecklistItemID]; !ok {
			continue
		}
		completed[instance.ChecklistItemID] = struct{}{}
	}

	return len(completed) == len(mandatory)
}
