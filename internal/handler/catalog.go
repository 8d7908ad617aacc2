package handler

import (
	"errors"
	"net/http"

	"github.com/dropdesk/dropdesk-go/internal/middleware"
	"github.com/dropdesk/dropdesk-go/internal/model"
	"github.com/dropdesk/dropdesk-go/internal/service"
)

// CatalogHandler handles HTTP requests for stores, products, and orders.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

func (h *CatalogHandler) HandleListStores(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	stores, err := h.service.ListStores(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	if stores == nil {
		stores = []model.StoreResponse{}
	}
	writeJSON(w, http.StatusOK, stores)
}

func (h *CatalogHandler) HandleCreateStore(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateStoreRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.CreateStore(r.Context(), userID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *CatalogHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	products, err := h.service.ListProducts(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	if products == nil {
		products = []model.ProductResponse{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateProductRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.CreateProduct(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *CatalogHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	orders, err := h.service.ListOrders(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	if orders == nil {
		orders = []model.OrderResponse{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *CatalogHandler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateOrderRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.CreateOrder(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEbayOrderIDRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrProductNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
