package application

import (
	"errors"
	"time"

	"github.com/example/onboarding-tracker/internal/onboarding"
	"github.com/example/onboarding-tracker/internal/persistence"
)

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func toChecklistItem(model persistence.ChecklistItem) ChecklistItem {
	return ChecklistItem{
		ID:                model.ID,
		Title:             model.Title,
		Description:       model.Description,
		Responsible:       onboarding.Department(model.Responsible),
		Mandatory:         model.Mandatory,
		EstimatedDuration: model.EstimatedDuration,
		Order:             model.Order,
		Category:          model.Category,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

func toChecklistInstance(model persistence.EmployeeChecklistItem) ChecklistInstance {
	return ChecklistInstance{
		ID:              model.ID,
		EmployeeID:      model.EmployeeID,
		ChecklistItemID: model.ChecklistItemID,
		Status:          onboarding.TaskStatus(model.Status),
		CompletedDate:   cloneTime(model.CompletedDate),
		CompletedBy:     model.CompletedBy,
		Notes:           model.Notes,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func toEmployee(model persistence.Employee) Employee {
	return Employee{
		ID:                  model.ID,
		FirstName:           model.FirstName,
		LastName:            model.LastName,
		Position:            model.Position,
		Department:          model.Department,
		Site:                model.Site,
		ArrivalDate:         model.ArrivalDate,
		ContractStartDate:   model.ContractStartDate,
		ContractEndDate:     cloneTime(model.ContractEndDate),
		ContractType:        onboarding.ContractType(model.ContractType),
		RequiredPPE:         model.RequiredPPE,
		PlannedTraining:     model.PlannedTraining,
		HRResponsible:       model.HRResponsible,
		ITResponsible:       model.ITResponsible,
		SecurityResponsible: model.SecurityResponsible,
		HRTasks:             append([]string(nil), model.HRTasks...),
		ITTasks:             append([]string(nil), model.ITTasks...),
		SecurityTasks:       append([]string(nil), model.SecurityTasks...),
		AdditionalComments:  model.AdditionalComments,
		Status:              onboarding.EmployeeStatus(model.Status),
		CreatedAt:           model.CreatedAt,
		CompletedAt:         cloneTime(model.CompletedAt),
	}
}

func toResponsable(model persistence.Responsable) Responsable {
	return Responsable{
		ID:         model.ID,
		Name:       model.Name,
		Role:       model.Role,
		Department: onboarding.Department(model.Department),
		Email:      model.Email,
		Phone:      model.Phone,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toNotification(model persistence.Notification) Notification {
	return Notification{
		ID:         model.ID,
		Subject:    model.Subject,
		Message:    model.Message,
		Recipients: append([]string(nil), model.Recipients...),
		SentAt:     model.SentAt,
		Type:       model.Type,
		EmployeeID: model.EmployeeID,
		Status:     model.Status,
	}
}

func toPersistenceNotification(notification Notification) persistence.Notification {
	return persistence.Notification{
		ID:         notification.ID,
		Subject:    notification.Subject,
		Message:    notification.Message,
		Recipients: append([]string(nil), notification.Recipients...),
		SentAt:     notification.SentAt,
		Type:       notification.Type,
		EmployeeID: notification.EmployeeID,
		Status:     notification.Status,
	}
}

func toEquipment(model persistence.Equipment) Equipment {
	return Equipment{
		ID:              model.ID,
		EmployeeID:      model.EmployeeID,
		EmployeeName:    model.EmployeeName,
		EquipmentType:   model.EquipmentType,
		Brand:           model.Brand,
		Model:           model.Model,
		Specifications:  model.Specifications,
		ScreenSize:      model.ScreenSize,
		SerialNumber:    model.SerialNumber,
		Condition:       model.Condition,
		AssignedDate:    model.AssignedDate,
		ReturnDate:      cloneTime(model.ReturnDate),
		Status:          model.Status,
		WarrantyEndDate: cloneTime(model.WarrantyEndDate),
		Notes:           model.Notes,
		AssignedBy:      model.AssignedBy,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound)
}
