package productapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/shop-system/internal/httpx"
	"github.com/andreasstove999/shop-system/internal/product"
)

type ProductHandler struct {
	repo product.Repository
}

func NewProductHandler(repo product.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

type createProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Description == "" || req.Price == nil {
		httpx.WriteError(w, http.StatusBadRequest, "name, description, and price are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p := &product.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
	}
	if err := h.repo.Create(ctx, p); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.repo.GetByID(ctx, id)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if p == nil {
		httpx.WriteError(w, http.StatusNotFound, "product not found")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	products, err := h.repo.List(ctx)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, products)
}
