package http

import (
	"context"
)

type contextKey string

const (
	employeeIDContextKey    contextKey = "employee_id"
	itemIDContextKey        contextKey = "checklist_item_id"
	responsableIDContextKey contextKey = "responsable_id"
	equipmentIDContextKey   contextKey = "equipment_id"
)

// ContextWithEmployeeID injects the employee identifier resolved from the
// request path.
func ContextWithEmployeeID(ctx context.Context, employeeID string) context.Context {
	return context.WithValue(ctx, employeeIDContextKey, employeeID)
}

// EmployeeIDFromContext extracts an employee identifier previously associated
// with the context.
func EmployeeIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(employeeIDContextKey).(string)
	return id, ok
}

// ContextWithItemID injects the catalog entry identifier resolved from the
// request path.
func ContextWithItemID(ctx context.Context, itemID string) context.Context {
	return context.WithValue(ctx, itemIDContextKey, itemID)
}

// ItemIDFromContext extracts a catalog entry identifier previously associated
// with the context.
func ItemIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(itemIDContextKey).(string)
	return id, ok
}

// ContextWithResponsableID injects the responsable identifier resolved from
// the request path.
func ContextWithResponsableID(ctx context.Context, responsableID string) context.Context {
	return context.WithValue(ctx, responsableIDContextKey, responsableID)
}

// ResponsableIDFromContext extracts a responsable identifier previously
// associated with the context.
func ResponsableIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(responsableIDContextKey).(string)
	return id, ok
}

// ContextWithEquipmentID injects the equipment identifier resolved from the
// request path.
func ContextWithEquipmentID(ctx context.Context, equipmentID string) context.Context {
	return context.WithValue(ctx, equipmentIDContextKey, equipmentID)
}

// EquipmentIDFromContext extracts an equipment identifier previously
// associated with the context.
func EquipmentIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(equipmentIDContextKey).(string)
	return id, ok
}
