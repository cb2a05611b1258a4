package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/onboarding-tracker/internal/application"
	"github.com/example/onboarding-tracker/internal/persistence"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

func (f *ServiceFactory) idGenerator(override func() string) func() string {
	if override != nil {
		return override
	}
	return f.IDGenerator.NextFunc()
}

func (f *ServiceFactory) now(override func() time.Time) func() time.Time {
	if override != nil {
		return override
	}
	return f.Clock.NowFunc()
}

// EmployeeServiceDeps captures dependencies for constructing an employee service.
type EmployeeServiceDeps struct {
	Employees   persistence.EmployeeRepository
	Checklists  application.ChecklistProvisioner
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewEmployeeService builds an employee service using the supplied
// dependencies combined with the factory defaults.
func (f *ServiceFactory) NewEmployeeService(deps EmployeeServiceDeps) *application.EmployeeService {
	return application.NewEmployeeServiceWithLogger(
		deps.Employees,
		deps.Checklists,
		f.idGenerator(deps.IDGenerator),
		f.now(deps.Now),
		deps.Logger,
	)
}

// ChecklistServiceDeps captures dependencies for constructing a checklist service.
type ChecklistServiceDeps struct {
	Items       persistence.ChecklistItemRepository
	Instances   persistence.EmployeeChecklistRepository
	Employees   persistence.EmployeeRepository
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewChecklistService builds a checklist service using the supplied dependencies.
func (f *ServiceFactory) NewChecklistService(deps ChecklistServiceDeps) *application.ChecklistService {
	return application.NewChecklistServiceWithLogger(
		deps.Items,
		deps.Instances,
		deps.Employees,
		f.idGenerator(deps.IDGenerator),
		f.now(deps.Now),
		deps.Logger,
	)
}

// CatalogServiceDeps captures dependencies for constructing a catalog service.
type CatalogServiceDeps struct {
	Items       persistence.ChecklistItemRepository
	Instances   persistence.EmployeeChecklistRepository
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewCatalogService builds a catalog service using the supplied dependencies.
func (f *ServiceFactory) NewCatalogService(deps CatalogServiceDeps) *application.CatalogService {
	return application.NewCatalogServiceWithLogger(
		deps.Items,
		deps.Instances,
		f.idGenerator(deps.IDGenerator),
		f.now(deps.Now),
		deps.Logger,
	)
}

// ResponsableServiceDeps captures dependencies for constructing a responsable service.
type ResponsableServiceDeps struct {
	Responsables persistence.ResponsableRepository
	IDGenerator  func() string
	Now          func() time.Time
	Logger       *slog.Logger
}

// NewResponsableService builds a responsable service using the supplied dependencies.
func (f *ServiceFactory) NewResponsableService(deps ResponsableServiceDeps) *application.ResponsableService {
	return application.NewResponsableServiceWithLogger(
		deps.Responsables,
		f.idGenerator(deps.IDGenerator),
		f.now(deps.Now),
		deps.Logger,
	)
}

// NotificationServiceDeps captures dependencies for constructing a notification service.
type NotificationServiceDeps struct {
	Employees     persistence.EmployeeRepository
	Items         persistence.ChecklistItemRepository
	Notifications persistence.NotificationRepository
	IDGenerator   func() string
	Now           func() time.Time
	Logger        *slog.Logger
}

// NewNotificationService builds a notification service using the supplied dependencies.
func (f *ServiceFactory) NewNotificationService(deps NotificationServiceDeps) *application.NotificationService {
	return application.NewNotificationServiceWithLogger(
		deps.Employees,
		deps.Items,
		deps.Notifications,
		f.idGenerator(deps.IDGenerator),
		f.now(deps.Now),
		deps.Logger,
	)
}

// PlanningServiceDeps captures dependencies for constructing a planning service.
type PlanningServiceDeps struct {
	Employees persistence.EmployeeRepository
	Items     persistence.ChecklistItemRepository
	Random    func() float64
	Now       func() time.Time
	Logger    *slog.Logger
}

// NewPlanningService builds a planning service using the supplied dependencies.
// A nil Random keeps the derivation deterministic.
func (f *ServiceFactory) NewPlanningService(deps PlanningServiceDeps) *application.PlanningService {
	return application.NewPlanningServiceWithLogger(
		deps.Employees,
		deps.Items,
		deps.Random,
		f.now(deps.Now),
		deps.Logger,
	)
}

// EquipmentServiceDeps captures dependencies for constructing an equipment service.
type EquipmentServiceDeps struct {
	Equipment   persistence.EquipmentRepository
	Employees   persistence.EmployeeRepository
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewEquipmentService builds an equipment service using the supplied dependencies.
func (f *ServiceFactory) NewEquipmentService(deps EquipmentServiceDeps) *application.EquipmentService {
	return application.NewEquipmentServiceWithLogger(
		deps.Equipment,
		deps.Employees,
		f.idGenerator(deps.IDGenerator),
		f.now(deps.Now),
		deps.Logger,
	)
}
