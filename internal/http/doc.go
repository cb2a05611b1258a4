// Package http provides HTTP handlers and middleware for the onboarding API.
//
// The router exposes the following endpoints:
//   - GET /employees, POST /employees, GET /employees/{id}, PUT /employees/{id},
//     DELETE /employees/{id}: employee intake management exchanging the
//     `employeeDTO` payload defined in employee_handler.go. Creating an
//     employee also provisions their checklist instances.
//   - PUT /employees/{id}/status: manual pipeline transitions. Moving to
//     Complété stamps the completion time, any other status clears it.
//   - GET /employees/upcoming: employees still in Préparation with an arrival
//     date from today onwards.
//   - GET /employees/{id}/checklist, POST /employees/{id}/checklist,
//     PUT /employees/{id}/checklist/{itemID}, GET /employees/{id}/checklist/stats:
//     per-employee task tracking exchanging the `instanceDTO` payload defined
//     in checklist_handler.go.
//   - GET /checklist-items, POST /checklist-items, PUT /checklist-items/{id},
//     DELETE /checklist-items/{id}: catalog management. Deleting an entry
//     cascades over all employee instances.
//   - GET /responsables, POST /responsables, PUT /responsables/{id},
//     DELETE /responsables/{id}: departmental contact directory.
//   - POST /notifications/preview, POST /notifications, GET /notifications:
//     notification composition and the append-only log. Preview composes the
//     same batch as a dispatch without recording it.
//   - GET /planning, GET /planning/export: synthetic week planning and its
//     CSV download. Both accept `week` (2006-W02) and `department` query
//     parameters.
//   - GET /equipment, POST /equipment, PUT /equipment/{id},
//     DELETE /equipment/{id}, GET /equipment/export: IT equipment register
//     and its CSV download.
//   - GET /kpi: dashboard indicators.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth. User-facing error messages are
// French; log lines stay English.
package http
