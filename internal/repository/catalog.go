package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dropdesk/dropdesk-go/internal/model"
)

var (
	ErrStoreNotFound   = errors.New("ebay store not found")
	ErrProductNotFound = errors.New("product not found")
)

// CatalogRepository handles the store/product/order rows. Like the vault,
// every query is owner-scoped.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateStore(ctx context.Context, store *model.EbayStore) error {
	query := `INSERT INTO ebay_stores (user_id, store_name, ebay_username) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		store.UserID, nullString(store.StoreName), nullString(store.EbayUsername),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	store.ID = id
	return nil
}

func (r *CatalogRepository) GetStore(ctx context.Context, userID, id int64) (*model.EbayStore, error) {
	query := `SELECT id, user_id, store_name, ebay_username, created_at
		FROM ebay_stores WHERE user_id = ? AND id = ?`

	store := &model.EbayStore{}
	var name, username sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(
		&store.ID, &store.UserID, &name, &username, &store.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	store.StoreName = name.String
	store.EbayUsername = username.String
	return store, nil
}

func (r *CatalogRepository) ListStores(ctx context.Context, userID int64) ([]model.EbayStore, error) {
	query := `SELECT id, user_id, store_name, ebay_username, created_at
		FROM ebay_stores WHERE user_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []model.EbayStore
	for rows.Next() {
		var s model.EbayStore
		var name, username sql.NullString
		if err := rows.Scan(&s.ID, &s.UserID, &name, &username, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.StoreName = name.String
		s.EbayUsername = username.String
		stores = append(stores, s)
	}

	return stores, rows.Err()
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p *model.Product) error {
	query := `INSERT INTO products
		(user_id, ebay_store_id, source_url, source_sku, ebay_item_id, title, status, source_cost, target_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		p.UserID, p.EbayStoreID,
		nullString(p.SourceURL), nullString(p.SourceSKU), nullString(p.EbayItemID), nullString(p.Title),
		p.Status, p.SourceCost, p.TargetPrice,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, userID, id int64) (*model.Product, error) {
	query := `SELECT id, user_id, ebay_store_id, source_url, source_sku, ebay_item_id, title, status,
		source_cost, target_price, last_synced_at
		FROM products WHERE user_id = ? AND id = ?`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, userID, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context, userID int64) ([]model.Product, error) {
	query := `SELECT id, user_id, ebay_store_id, source_url, source_sku, ebay_item_id, title, status,
		source_cost, target_price, last_synced_at
		FROM products WHERE user_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

func (r *CatalogRepository) CreateOrder(ctx context.Context, o *model.Order) error {
	query := `INSERT INTO orders
		(user_id, product_id, ebay_order_id, buyer_name, status, total_paid_by_buyer)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		o.UserID, o.ProductID, o.EbayOrderID, nullString(o.BuyerName), o.Status, o.TotalPaidByBuyer,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = id
	return nil
}

func (r *CatalogRepository) ListOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT id, user_id, product_id, ebay_order_id, buyer_name, status,
		total_paid_by_buyer, actual_supplier_cost, error_log, created_at
		FROM orders WHERE user_id = ? ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var buyer, errorLog sql.NullString
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.ProductID, &o.EbayOrderID, &buyer, &o.Status,
			&o.TotalPaidByBuyer, &o.ActualSupplierCost, &errorLog, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.BuyerName = buyer.String
		o.ErrorLog = errorLog.String
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func scanProduct(scan func(dest ...any) error) (*model.Product, error) {
	p := &model.Product{}
	var sourceURL, sourceSKU, ebayItemID, title sql.NullString
	var lastSynced sql.NullTime
	err := scan(
		&p.ID, &p.UserID, &p.EbayStoreID, &sourceURL, &sourceSKU, &ebayItemID, &title, &p.Status,
		&p.SourceCost, &p.TargetPrice, &lastSynced,
	)
	if err != nil {
		return nil, err
	}
	p.SourceURL = sourceURL.String
	p.SourceSKU = sourceSKU.String
	p.EbayItemID = ebayItemID.String
	p.Title = title.String
	if lastSynced.Valid {
		p.LastSyncedAt = &lastSynced.Time
	}
	return p, nil
}
