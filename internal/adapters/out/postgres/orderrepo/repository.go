package orderrepo

import (
	"context"
	"errors"

	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/order"
	"optistore/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
// The gorm.DB must be opened with TranslateError so that unique index violations
// surface as gorm.ErrDuplicatedKey.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its items and billing info.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("order", aggregate.Number(), order.ErrDuplicateOrderNumber)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the status of an existing order and inserts its delivery when one
// was assigned since the order was loaded. Items and billing are immutable and
// never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	id := aggregate.ID().Bytes()

	result := db.Model(&OrderDTO{}).Where("id = ?", id).Updates(map[string]any{
		"status":            string(aggregate.Status()),
		"status_updated_at": aggregate.StatusUpdatedAt(),
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("order", aggregate.Number(), gorm.ErrRecordNotFound)
	}

	if d := aggregate.Delivery(); d != nil {
		if err := r.insertDelivery(ctx, aggregate, d); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) insertDelivery(ctx context.Context, aggregate *order.Order, d *order.Delivery) error {
	db := r.db.WithContext(ctx)
	id := aggregate.ID().Bytes()

	var existing DeliveryDTO
	err := db.Where("order_id = ?", id).Take(&existing).Error
	switch {
	case err == nil:
		if existing.DeliveryPersonID == d.PersonID().Bytes() && existing.AssignedAt.Equal(d.AssignedAt()) {
			return nil
		}
		return errs.NewObjectAlreadyExistsErrorWithCause("delivery", aggregate.Number(), order.ErrDeliveryAlreadyAssigned)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	if err = db.Create(deliveryFromDomain(id, d)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("delivery", aggregate.Number(), order.ErrDeliveryAlreadyAssigned)
		}
		return err
	}
	return nil
}

// GetByNumber retrieves an order by its number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	return r.getByNumber(ctx, number, false)
}

// GetByNumberForUpdate retrieves an order by its number and locks its row with
// SELECT ... FOR UPDATE until the surrounding transaction ends.
func (r *GormOrderRepository) GetByNumberForUpdate(ctx context.Context, number string) (*order.Order, error) {
	return r.getByNumber(ctx, number, true)
}

func (r *GormOrderRepository) getByNumber(ctx context.Context, number string, lock bool) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("order_number")
	}

	db := r.db.WithContext(ctx)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := db.First(&dto, "order_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}

	// Children are read after the row lock is held.
	children := r.db.WithContext(ctx)
	if err := children.Where("order_id = ?", dto.ID).Order("position").Find(&dto.Items).Error; err != nil {
		return nil, err
	}

	var billing BillingInfoDTO
	if err := children.Where("order_id = ?", dto.ID).Take(&billing).Error; err != nil {
		return nil, err
	}
	dto.Billing = &billing

	var delivery DeliveryDTO
	err := children.Where("order_id = ?", dto.ID).Take(&delivery).Error
	switch {
	case err == nil:
		dto.Delivery = &delivery
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return toDomain(dto)
}
