package service

import (
	"context"
	"errors"

	"github.com/dropdesk/dropdesk-go/internal/model"
	"github.com/dropdesk/dropdesk-go/internal/repository"
)

var (
	ErrStoreNotFound       = errors.New("ebay store not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrEbayOrderIDRequired = errors.New("ebay_order_id is required")
)

const (
	productStatusDraft  = "draft"
	orderStatusDetected = "detected"
)

// CatalogService handles the store/product/order records. Ownership is
// enforced the same way as the vault: every lookup goes through the
// owner relationship.
type CatalogService struct {
	repo *repository.CatalogRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) CreateStore(ctx context.Context, userID int64, req model.CreateStoreRequest) (model.StoreResponse, error) {
	store := &model.EbayStore{
		UserID:       userID,
		StoreName:    req.StoreName,
		EbayUsername: req.EbayUsername,
	}
	if err := s.repo.CreateStore(ctx, store); err != nil {
		return model.StoreResponse{}, err
	}
	return storeToResponse(store), nil
}

func (s *CatalogService) ListStores(ctx context.Context, userID int64) ([]model.StoreResponse, error) {
	stores, err := s.repo.ListStores(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.StoreResponse, len(stores))
	for i := range stores {
		result[i] = storeToResponse(&stores[i])
	}
	return result, nil
}

// CreateProduct creates a listing under one of the user's own stores;
// referencing another user's store reads as store-not-found.
func (s *CatalogService) CreateProduct(ctx context.Context, userID int64, req model.CreateProductRequest) (model.ProductResponse, error) {
	if _, err := s.repo.GetStore(ctx, userID, req.EbayStoreID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return model.ProductResponse{}, ErrStoreNotFound
		}
		return model.ProductResponse{}, err
	}

	product := &model.Product{
		UserID:      userID,
		EbayStoreID: req.EbayStoreID,
		SourceURL:   req.SourceURL,
		SourceSKU:   req.SourceSKU,
		EbayItemID:  req.EbayItemID,
		Title:       req.Title,
		Status:      productStatusDraft,
		SourceCost:  req.SourceCost,
		TargetPrice: req.TargetPrice,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return model.ProductResponse{}, err
	}
	return productToResponse(product), nil
}

func (s *CatalogService) ListProducts(ctx context.Context, userID int64) ([]model.ProductResponse, error) {
	products, err := s.repo.ListProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.ProductResponse, len(products))
	for i := range products {
		result[i] = productToResponse(&products[i])
	}
	return result, nil
}

// CreateOrder records a detected marketplace order against one of the
// user's own products.
func (s *CatalogService) CreateOrder(ctx context.Context, userID int64, req model.CreateOrderRequest) (model.OrderResponse, error) {
	if req.EbayOrderID == "" {
		return model.OrderResponse{}, ErrEbayOrderIDRequired
	}

	if _, err := s.repo.GetProduct(ctx, userID, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return model.OrderResponse{}, ErrProductNotFound
		}
		return model.OrderResponse{}, err
	}

	order := &model.Order{
		UserID:           userID,
		ProductID:        req.ProductID,
		EbayOrderID:      req.EbayOrderID,
		BuyerName:        req.BuyerName,
		Status:           orderStatusDetected,
		TotalPaidByBuyer: req.TotalPaidByBuyer,
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return model.OrderResponse{}, err
	}
	return orderToResponse(order), nil
}

func (s *CatalogService) ListOrders(ctx context.Context, userID int64) ([]model.OrderResponse, error) {
	orders, err := s.repo.ListOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.OrderResponse, len(orders))
	for i := range orders {
		result[i] = orderToResponse(&orders[i])
	}
	return result, nil
}

func storeToResponse(s *model.EbayStore) model.StoreResponse {
	return model.StoreResponse{
		ID:           s.ID,
		StoreName:    s.StoreName,
		EbayUsername: s.EbayUsername,
		CreatedAt:    s.CreatedAt,
	}
}

func productToResponse(p *model.Product) model.ProductResponse {
	return model.ProductResponse{
		ID:          p.ID,
		EbayStoreID: p.EbayStoreID,
		SourceURL:   p.SourceURL,
		SourceSKU:   p.SourceSKU,
		EbayItemID:  p.EbayItemID,
		Title:       p.Title,
		Status:      p.Status,
		SourceCost:  p.SourceCost,
		TargetPrice: p.TargetPrice,
		LastSynced:  p.LastSyncedAt,
	}
}

func orderToResponse(o *model.Order) model.OrderResponse {
	return model.OrderResponse{
		ID:               o.ID,
		ProductID:        o.ProductID,
		EbayOrderID:      o.EbayOrderID,
		BuyerName:        o.BuyerName,
		Status:           o.Status,
		TotalPaidByBuyer: o.TotalPaidByBuyer,
		CreatedAt:        o.CreatedAt,
	}
}
