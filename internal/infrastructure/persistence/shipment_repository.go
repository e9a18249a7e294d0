package persistence

import (
	"context"
	"errors"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shipping"
	"github.com/erp/shipping/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// withAssociations preloads the associations a full aggregate needs.
func (r *GormShipmentRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Carrier").
		Preload("MailClass").
		Preload("Moves")
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Shipment, error) {
	var model models.ShipmentModel
	if err := r.withAssociations(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a shipment by its human-readable code
func (r *GormShipmentRepository) FindByCode(ctx context.Context, code string) (*shipping.Shipment, error) {
	var model models.ShipmentModel
	if err := r.withAssociations(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTrackingNumber finds a shipment by its carrier tracking number
func (r *GormShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*shipping.Shipment, error) {
	var model models.ShipmentModel
	if err := r.withAssociations(ctx).First(&model, "tracking_number = ?", trackingNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple shipments by their IDs
func (r *GormShipmentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*shipping.Shipment, error) {
	if len(ids) == 0 {
		return []*shipping.Shipment{}, nil
	}

	var shipmentModels []models.ShipmentModel
	if err := r.withAssociations(ctx).
		Where("id IN ?", ids).
		Find(&shipmentModels).Error; err != nil {
		return nil, err
	}

	shipments := make([]*shipping.Shipment, len(shipmentModels))
	for i := range shipmentModels {
		shipments[i] = shipmentModels[i].ToDomain()
	}
	return shipments, nil
}

// FindAll returns shipments matching the filter along with the total count
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter shipping.ShipmentFilter) ([]*shipping.Shipment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ShipmentModel{})
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := r.applyFilter(r.withAssociations(ctx).Model(&models.ShipmentModel{}), filter).
		Order("created_at DESC")
	if filter.Limit > 0 {
		listQuery = listQuery.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		listQuery = listQuery.Offset(filter.Offset)
	}

	var shipmentModels []models.ShipmentModel
	if err := listQuery.Find(&shipmentModels).Error; err != nil {
		return nil, 0, err
	}

	shipments := make([]*shipping.Shipment, len(shipmentModels))
	for i := range shipmentModels {
		shipments[i] = shipmentModels[i].ToDomain()
	}
	return shipments, total, nil
}

// applyFilter applies filter conditions to the query
func (r *GormShipmentRepository) applyFilter(query *gorm.DB, filter shipping.ShipmentFilter) *gorm.DB {
	if filter.State != "" {
		query = query.Where("shipments.state = ?", filter.State)
	}
	if filter.CarrierCode != "" {
		query = query.
			Joins("JOIN carriers ON carriers.id = shipments.carrier_id").
			Where("carriers.code = ?", filter.CarrierCode)
	}
	if filter.HasTracking != nil {
		if *filter.HasTracking {
			query = query.Where("shipments.tracking_number <> ''")
		} else {
			query = query.Where("shipments.tracking_number = ''")
		}
	}
	return query
}

// Save creates a shipment together with its moves
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *shipping.Shipment) error {
	model := models.ShipmentModelFromDomain(shipment)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to the shipment row. Moves, carriers and
// mail classes are owned elsewhere and are deliberately not touched.
func (r *GormShipmentRepository) Update(ctx context.Context, shipment *shipping.Shipment) error {
	model := models.ShipmentModelFromDomain(shipment)
	result := r.db.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Select("*").
		Omit("Moves", "Carrier", "MailClass", "id", "created_at").
		Where("id = ?", model.ID).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Compile-time interface compliance check
var _ shipping.ShipmentRepository = (*GormShipmentRepository)(nil)
