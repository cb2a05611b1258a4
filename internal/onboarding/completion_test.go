package onboarding

import "testing"

func TestMandatoryTasksComplete(t *testing.T) {
	catalog := []CatalogTask{
		{ID: "a", Mandatory: true},
		{ID: "b", Mandatory: true},
		{ID: "c", Mandatory: false},
	}

	t.Run("completes when every mandatory task is done", func(t *testing.T) {
		instances := []TaskProgress{
			{ChecklistItemID: "a", Status: TaskCompleted},
			{ChecklistItemID: "b", Status: TaskCompleted},
			{ChecklistItemID: "c", Status: TaskNotStarted},
		}
		if !MandatoryTasksComplete(catalog, instances) {
			t.Fatal("expected completion with both mandatory tasks done")
		}
	})

	t.Run("optional task state never gates completion", func(t *testing.T) {
		instances := []TaskProgress{
			{ChecklistItemID: "a", Status: TaskCompleted},
			{ChecklistItemID: "b", Status: TaskCompleted},
			{ChecklistItemID: "c", Status: TaskOverdue},
		}
		if !MandatoryTasksComplete(catalog, instances) {
			t.Fatal("expected optional task to be ignored")
		}
	})

	t.Run("one missing mandatory task blocks completion", func(t *testing.T) {
		instances := []TaskProgress{
			{ChecklistItemID: "a", Status: TaskCompleted},
			{ChecklistItemID: "b", Status: TaskInProgress},
			{ChecklistItemID: "c", Status: TaskCompleted},
		}
		if MandatoryTasksComplete(catalog, instances) {
			t.Fatal("expected incomplete mandatory task to block completion")
		}
	})

	t.Run("completed optional task does not stand in for a mandatory one", func(t *testing.T) {
		instances := []TaskProgress{
			{ChecklistItemID: "a", Status: TaskCompleted},
			{ChecklistItemID: "c", Status: TaskCompleted},
		}
		if MandatoryTasksComplete(catalog, instances) {
			t.Fatal("expected missing mandatory instance to block completion")
		}
	})

	t.Run("duplicate completed instances count once", func(t *testing.T) {
		instances := []TaskProgress{
			{ChecklistItemID: "a", Status: TaskCompleted},
			{ChecklistItemID: "a", Status: TaskCompleted},
		}
		if MandatoryTasksComplete(catalog, instances) {
			t.Fatal("expected duplicate instances not to satisfy task b")
		}
	})

	// The empty mandatory set is trivially complete. Surprising but faithful
	// to the original tracker; callers document it rather than fix it.
	t.Run("empty catalog is trivially complete", func(t *testing.T) {
		if !MandatoryTasksComplete(nil, nil) {
			t.Fatal("expected empty catalog to be trivially complete")
		}
		if !MandatoryTasksComplete([]CatalogTask{{ID: "c", Mandatory: false}}, nil) {
			t.Fatal("expected catalog without mandatory tasks to be trivially complete")
		}
	})
}
