// Package postgres provides the GORM-based Unit of Work that scopes the order
// repositories to one database transaction.
//
// Repositories obtained from a GormUnitOfWork after Begin share its transaction.
// Aggregates written through them are tracked; once Commit succeeds their domain
// events are handed to the configured EventPublisher. Publishing never affects the
// outcome of the committed transaction: failures are logged per event.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Add(ctx, placed); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance is used by a single goroutine; concurrent operations
// create their own instances from the factory.
package postgres

import (
	"context"
	"log/slog"

	"optistore/internal/adapters/out/postgres/accountrepo"
	"optistore/internal/adapters/out/postgres/orderrepo"
	"optistore/internal/adapters/out/postgres/outboxrepo"
	"optistore/internal/adapters/out/postgres/prescriptionrepo"
	"optistore/internal/adapters/out/postgres/productrepo"
	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// publisher may be nil, in which case committed events are dropped.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

// Create produces a new UnitOfWork instance with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and tracks the aggregates
// written during it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and then publishes the domain events of the
// tracked aggregates.
//
// Returns error if no active transaction exists or if the commit operation fails.
// Publishing errors are logged and not returned.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil

	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	if err != nil {
		return err
	}

	uow.publishEvents(ctx, tracked)
	return nil
}

// Rollback discards all changes made within the current transaction together
// with the events of the tracked aggregates.
//
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = make([]trackedAggregate, 0)
	return err
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context, tracked []trackedAggregate) {
	for _, t := range tracked {
		recorder, ok := t.Aggregate.(kernel.EventRecorder)
		if !ok {
			continue
		}

		events := recorder.DomainEvents()
		recorder.ClearDomainEvents()

		if uow.publisher == nil {
			continue
		}

		for _, event := range events {
			if err := uow.publisher.Publish(ctx, event); err != nil {
				uow.logger.ErrorContext(ctx, "failed to publish domain event",
					"event", event.EventName(),
					"event_id", event.EventID().String(),
					"aggregate_id", t.ID.String(),
					"error", err,
				)
			}
		}
	}
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository provides order persistence within the unit of work. Orders
// added or updated through it are tracked for event publishing.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProductCatalog() ports.ProductCatalog {
	return productrepo.NewGormProductCatalog(uow.conn())
}

func (uow *GormUnitOfWork) AccountDirectory() ports.AccountDirectory {
	return accountrepo.NewGormAccountDirectory(uow.conn())
}

func (uow *GormUnitOfWork) PrescriptionRegistry() ports.PrescriptionRegistry {
	return prescriptionrepo.NewGormPrescriptionRegistry(uow.conn())
}

func (uow *GormUnitOfWork) NotificationOutbox() ports.NotificationOutbox {
	return outboxrepo.NewGormOutbox(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Repository implementations call it after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// Models lists every table the service reads or writes, in migration order.
func Models() []any {
	models := []any{
		&productrepo.ProductDTO{},
		&accountrepo.AccountDTO{},
		&prescriptionrepo.PrescriptionDTO{},
	}
	models = append(models, orderrepo.Models()...)
	return append(models, &outboxrepo.MessageDTO{})
}
