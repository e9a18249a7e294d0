package persistence

import (
	"context"

	"github.com/erp/shipping/internal/domain/shipping"
	"github.com/erp/shipping/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttachmentRepository implements AttachmentRepository using GORM
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// Save creates or updates attachment metadata
func (r *GormAttachmentRepository) Save(ctx context.Context, attachment *shipping.Attachment) error {
	model := models.AttachmentModelFromDomain(attachment)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByShipmentID returns all attachments recorded for a shipment
func (r *GormAttachmentRepository) FindByShipmentID(ctx context.Context, shipmentID uuid.UUID) ([]*shipping.Attachment, error) {
	var attachmentModels []models.AttachmentModel
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("created_at ASC").
		Find(&attachmentModels).Error; err != nil {
		return nil, err
	}

	attachments := make([]*shipping.Attachment, len(attachmentModels))
	for i := range attachmentModels {
		attachments[i] = attachmentModels[i].ToDomain()
	}
	return attachments, nil
}

// Compile-time interface compliance check
var _ shipping.AttachmentRepository = (*GormAttachmentRepository)(nil)
