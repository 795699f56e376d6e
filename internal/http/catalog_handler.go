package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/carlosh1016/cloth-inc-storefront/internal/backend"
	"github.com/carlosh1016/cloth-inc-storefront/internal/catalog"
	"github.com/carlosh1016/cloth-inc-storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalog *catalog.Service
	backend *backend.Client
	timeout time.Duration
}

func NewCatalogHandler(catalogSvc *catalog.Service, backendClient *backend.Client, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogSvc,
		backend: backendClient,
		timeout: timeout,
	}
}

type SearchResponseDTO struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// Search applies the filter spec parsed from the query string. List
// parameters accept repetition and comma separation interchangeably.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	spec, err := parseFilterSpec(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}

	products, err := h.catalog.Search(ctx, spec)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, http.StatusOK, SearchResponseDTO{Products: products, Total: len(products)})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	product, err := h.catalog.Product(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.backend.ListCategories(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) ListShops(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	shops, err := h.backend.ListShops(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if shops == nil {
		shops = []domain.Shop{}
	}

	respondJSON(w, http.StatusOK, shops)
}

func (h *CatalogHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "shop_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_shop_id", "shop_id must be a positive integer")
		return
	}

	shop, err := h.backend.GetShop(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, shop)
}

func parseFilterSpec(r *http.Request) (domain.FilterSpec, error) {
	q := r.URL.Query()
	spec := domain.FilterSpec{
		Categories:   listParam(q["category"]),
		Brands:       listParam(q["brand"]),
		StockOnly:    q.Get("in_stock") == "true",
		DiscountOnly: q.Get("discounted") == "true",
		SearchQuery:  q.Get("q"),
	}

	for _, raw := range listParam(q["size"]) {
		size := domain.Size(strings.ToUpper(raw))
		if !size.Valid() {
			return spec, &filterError{"size must be one of XS,S,M,L,XL,XXL"}
		}
		spec.Sizes = append(spec.Sizes, size)
	}

	// Non-numeric bounds are ignored, matching the search view's
	// tolerance for half-typed input
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		spec.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		spec.MaxPrice = &v
	}

	switch by := domain.SortField(q.Get("sort_by")); by {
	case "", domain.SortByName:
		spec.SortBy = domain.SortByName
	case domain.SortByPrice, domain.SortByDiscount:
		spec.SortBy = by
	default:
		return spec, &filterError{"sort_by must be one of name, price, discount"}
	}

	switch order := domain.SortOrder(q.Get("sort_order")); order {
	case "", domain.SortAsc:
		spec.SortOrder = domain.SortAsc
	case domain.SortDesc:
		spec.SortOrder = domain.SortDesc
	default:
		return spec, &filterError{"sort_order must be asc or desc"}
	}

	return spec, nil
}

func listParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

type filterError struct{ msg string }

func (e *filterError) Error() string { return e.msg }
