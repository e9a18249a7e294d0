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

// GormCarrierRepository implements CarrierRepository using GORM
type GormCarrierRepository struct {
	db *gorm.DB
}

// NewGormCarrierRepository creates a new GormCarrierRepository
func NewGormCarrierRepository(db *gorm.DB) *GormCarrierRepository {
	return &GormCarrierRepository{db: db}
}

// FindByID finds a carrier by its ID
func (r *GormCarrierRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Carrier, error) {
	var model models.CarrierModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a carrier by its unique code
func (r *GormCarrierRepository) FindByCode(ctx context.Context, code string) (*shipping.Carrier, error) {
	var model models.CarrierModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all active carriers
func (r *GormCarrierRepository) FindAll(ctx context.Context) ([]*shipping.Carrier, error) {
	var carrierModels []models.CarrierModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&carrierModels).Error; err != nil {
		return nil, err
	}

	carriers := make([]*shipping.Carrier, len(carrierModels))
	for i := range carrierModels {
		carriers[i] = carrierModels[i].ToDomain()
	}
	return carriers, nil
}

// Save creates or updates a carrier
func (r *GormCarrierRepository) Save(ctx context.Context, carrier *shipping.Carrier) error {
	model := models.CarrierModelFromDomain(carrier)
	return r.db.WithContext(ctx).Save(model).Error
}

// GormMailClassRepository implements MailClassRepository using GORM
type GormMailClassRepository struct {
	db *gorm.DB
}

// NewGormMailClassRepository creates a new GormMailClassRepository
func NewGormMailClassRepository(db *gorm.DB) *GormMailClassRepository {
	return &GormMailClassRepository{db: db}
}

// FindByID finds a mail class by its ID
func (r *GormMailClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.MailClass, error) {
	var model models.MailClassModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByValue finds a mail class by its Endicia service value
func (r *GormMailClassRepository) FindByValue(ctx context.Context, value string) (*shipping.MailClass, error) {
	var model models.MailClassModel
	if err := r.db.WithContext(ctx).First(&model, "value = ?", value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns the full mail class catalog
func (r *GormMailClassRepository) FindAll(ctx context.Context) ([]*shipping.MailClass, error) {
	var mailClassModels []models.MailClassModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&mailClassModels).Error; err != nil {
		return nil, err
	}

	mailClasses := make([]*shipping.MailClass, len(mailClassModels))
	for i := range mailClassModels {
		mailClasses[i] = mailClassModels[i].ToDomain()
	}
	return mailClasses, nil
}

// Save creates or updates a mail class
func (r *GormMailClassRepository) Save(ctx context.Context, mailClass *shipping.MailClass) error {
	model := models.MailClassModelFromDomain(mailClass)
	return r.db.WithContext(ctx).Save(model).Error
}

// Compile-time interface compliance checks
var _ shipping.CarrierRepository = (*GormCarrierRepository)(nil)
var _ shipping.MailClassRepository = (*GormMailClassRepository)(nil)
