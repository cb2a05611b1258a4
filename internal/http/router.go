package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Employees     *EmployeeHandler
	Checklists    *ChecklistHandler
	Catalog       *CatalogHandler
	Responsables  *ResponsableHandler
	Notifications *NotificationHandler
	Planning      *PlanningHandler
	Equipment     *EquipmentHandler
	Middleware    []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Employees != nil {
		mux.HandleFunc("/employees", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Employees.List(w, r)
			case http.MethodPost:
				cfg.Employees.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/employees/upcoming", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Employees.Upcoming(w, r)
		})
		mux.HandleFunc("/kpi", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Employees.KPI(w, r)
		})
		mux.HandleFunc("/employees/", func(w http.ResponseWriter, r *http.Request) {
			routeEmployeeSubtree(cfg, w, r)
		})
	}

	if cfg.Catalog != nil {
		mux.HandleFunc("/checklist-items", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Catalog.List(w, r)
			case http.MethodPost:
				cfg.Catalog.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/checklist-items/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/checklist-items/")
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithItemID(r.Context(), id))
			switch r.Method {
			case http.MethodPut:
				cfg.Catalog.Update(w, r)
			case http.MethodDelete:
				cfg.Catalog.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Responsables != nil {
		mux.HandleFunc("/responsables", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Responsables.List(w, r)
			case http.MethodPost:
				cfg.Responsables.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/responsables/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/responsables/")
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithResponsableID(r.Context(), id))
			switch r.Method {
			case http.MethodPut:
				cfg.Responsables.Update(w, r)
			case http.MethodDelete:
				cfg.Responsables.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Notifications != nil {
		mux.HandleFunc("/notifications", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Notifications.List(w, r)
			case http.MethodPost:
				cfg.Notifications.Dispatch(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/notifications/preview", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Notifications.Preview(w, r)
		})
	}

	if cfg.Planning != nil {
		mux.HandleFunc("/planning", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Planning.Get(w, r)
		})
		mux.HandleFunc("/planning/export", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Planning.Export(w, r)
		})
	}

	if cfg.Equipment != nil {
		mux.HandleFunc("/equipment", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Equipment.List(w, r)
			case http.MethodPost:
				cfg.Equipment.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/equipment/export", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Equipment.Export(w, r)
		})
		mux.HandleFunc("/equipment/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/equipment/")
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithEquipmentID(r.Context(), id))
			switch r.Method {
			case http.MethodPut:
				cfg.Equipment.Update(w, r)
			case http.MethodDelete:
				cfg.Equipment.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

// routeEmployeeSubtree dispatches /employees/{id}[...] paths. The checklist
// sub-resources live under the owning employee.
func routeEmployeeSubtree(cfg RouterConfig, w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/employees/")
	segments := strings.Split(rest, "/")
	if len(segments) == 0 || segments[0] == "" {
		http.NotFound(w, r)
		return
	}

	r = r.WithContext(ContextWithEmployeeID(r.Context(), segments[0]))

	switch len(segments) {
	case 1:
		switch r.Method {
		case http.MethodGet:
			cfg.Employees.Get(w, r)
		case http.MethodPut:
			cfg.Employees.Update(w, r)
		case http.MethodDelete:
			cfg.Employees.Delete(w, r)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
		}
	case 2:
		switch segments[1] {
		case "status":
			if r.Method != http.MethodPut {
				methodNotAllowed(w, http.MethodPut)
				return
			}
			cfg.Employees.UpdateStatus(w, r)
		case "checklist":
			if cfg.Checklists == nil {
				http.NotFound(w, r)
				return
			}
			switch r.Method {
			case http.MethodGet:
				cfg.Checklists.List(w, r)
			case http.MethodPost:
				cfg.Checklists.Instantiate(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		default:
			http.NotFound(w, r)
		}
	case 3:
		if segments[1] != "checklist" || cfg.Checklists == nil {
			http.NotFound(w, r)
			return
		}
		if segments[2] == "stats" {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Checklists.Stats(w, r)
			return
		}
		if r.Method != http.MethodPut {
			methodNotAllowed(w, http.MethodPut)
			return
		}
		r = r.WithContext(ContextWithItemID(r.Context(), segments[2]))
		cfg.Checklists.SetStatus(w, r)
	default:
		http.NotFound(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
