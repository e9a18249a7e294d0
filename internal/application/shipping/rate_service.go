package shipping

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/shipping/internal/domain/shared"
	"github.com/erp/shipping/internal/domain/shipping"
)

// DefaultRateCacheTTL is how long a postage quote stays valid in the
// cache. USPS rate tables change rarely; quotes are safe to reuse for
// a short window.
const DefaultRateCacheTTL = 15 * time.Minute

// RateService quotes postage for shipments, with a cache in front of
// the carrier API.
type RateService struct {
	shipmentRepo shipping.ShipmentRepository
	provider     shipping.LabelProvider
	cache        RateCache
	cacheTTL     time.Duration
}

// NewRateService creates a new RateService. The cache is optional;
// pass nil to always hit the carrier.
func NewRateService(
	shipmentRepo shipping.ShipmentRepository,
	provider shipping.LabelProvider,
	cache RateCache,
) *RateService {
	return &RateService{
		shipmentRepo: shipmentRepo,
		provider:     provider,
		cache:        cache,
		cacheTTL:     DefaultRateCacheTTL,
	}
}

// SetCacheTTL overrides the quote cache TTL.
func (s *RateService) SetCacheTTL(ttl time.Duration) {
	s.cacheTTL = ttl
}

// GetShippingCost returns the postage the carrier quotes for the
// shipment, in USD.
func (s *RateService) GetShippingCost(ctx context.Context, shipmentID uuid.UUID) (*RateQuote, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if err := shipment.EnsureRatable(); err != nil {
		return nil, err
	}

	weightOz, err := shipment.WeightOz()
	if err != nil {
		return nil, err
	}

	req := &shipping.PostageRateRequest{
		MailClass:      shipment.MailClass.Value,
		WeightOz:       weightOz,
		FromPostalCode: shipment.WarehouseAddress.Zip5(),
		ToPostalCode:   shipment.DeliveryAddress.Zip5(),
		ToCountryCode:  shipment.DeliveryAddress.CountryCode(),
	}

	key := rateCacheKey(req)
	if s.cache != nil {
		if amount, ok := s.cache.Get(ctx, key); ok {
			return s.quote(shipment.ID, amount, true), nil
		}
	}

	amount, err := s.provider.CalculatePostage(ctx, req)
	if err != nil {
		return nil, shared.NewDomainError(
			"POSTAGE_CALCULATION_FAILED",
			fmt.Sprintf("Error in calculating postage %q", err.Error()),
		)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, amount, s.cacheTTL)
	}

	return s.quote(shipment.ID, amount, false), nil
}

func (s *RateService) quote(shipmentID uuid.UUID, amount decimal.Decimal, cached bool) *RateQuote {
	return &RateQuote{
		ShipmentID: shipmentID,
		Amount:     amount,
		Currency:   "USD",
		Cached:     cached,
		QuotedAt:   time.Now(),
	}
}

// rateCacheKey identifies a quote by everything that determines it.
func rateCacheKey(req *shipping.PostageRateRequest) string {
	return fmt.Sprintf("postage:%s:%d:%s:%s:%s",
		req.MailClass, req.WeightOz, req.FromPostalCode, req.ToPostalCode, req.ToCountryCode)
}
