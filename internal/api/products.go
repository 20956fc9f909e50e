package api

import (
	"net/http"
	"strconv"

	"gcn-backend/internal/database"
	"gcn-backend/pkg/api"
)

func toProduct(p database.Product) api.Product {
	return api.Product{
		Id:        p.Id,
		Title:     p.Title,
		Info:      p.Info,
		Color:     p.Color,
		CreatedAt: p.CreatedAt,
	}
}

func productIdParam(r *http.Request) (uint, error) {
	raw, err := URLParam(r, "product_id")
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, CodedErrorf(http.StatusBadRequest, "invalid product id '%s'", raw)
	}
	return uint(id), nil
}

func (s *BackendService) GetProducts(r *http.Request) (any, error) {
	params, err := ParseRequestQueryParams[userScopedParams](r)
	if err != nil {
		return nil, err
	}
	if params.UserId == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "userId is required")
	}

	rows, err := s.products.List(r.Context(), params.UserId)
	if err != nil {
		return nil, err
	}

	res := api.ProductListResponse{Products: make([]api.Product, 0, len(rows))}
	for _, p := range rows {
		res.Products = append(res.Products, toProduct(p))
	}
	return res, nil
}

func (s *BackendService) CreateProduct(r *http.Request) (any, error) {
	req, err := ParseRequest[api.ProductRequest](r)
	if err != nil {
		return nil, err
	}
	if req.UserId == 0 || req.Title == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "userId and title are required")
	}

	product, err := s.products.Create(r.Context(), req.UserId, req.Title, req.Info)
	if err != nil {
		return nil, err
	}
	return toProduct(*product), nil
}

func (s *BackendService) UpdateProduct(r *http.Request) (any, error) {
	id, err := productIdParam(r)
	if err != nil {
		return nil, err
	}
	req, err := ParseRequest[api.ProductRequest](r)
	if err != nil {
		return nil, err
	}
	if req.UserId == 0 || req.Title == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "userId and title are required")
	}

	product, err := s.products.Update(r.Context(), id, req.UserId, req.Title, req.Info, req.Color)
	if err != nil {
		return nil, storeError(err)
	}
	return toProduct(*product), nil
}

func (s *BackendService) DeleteProduct(r *http.Request) (any, error) {
	id, err := productIdParam(r)
	if err != nil {
		return nil, err
	}
	params, err := ParseRequestQueryParams[userScopedParams](r)
	if err != nil {
		return nil, err
	}
	if params.UserId == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "userId is required")
	}

	if err := s.products.Delete(r.Context(), id, params.UserId); err != nil {
		return nil, storeError(err)
	}
	return map[string]string{"message": "product deleted"}, nil
}
