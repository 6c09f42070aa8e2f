package service

import (
	"context"

	"github.com/pkg/errors"

	"storefront/internal/model"
)

const listProductsQuery = `query getProducts {
  products {
    title
    id
    handle
  }
}`

const getProductQuery = `query getProduct($id: ID!) {
  product(id: $id) {
    title
    id
    handle
  }
}`

// Requester performs a GraphQL request and decodes the data member into out.
type Requester interface {
	Request(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error
}

type ProductService struct {
	client Requester
}

func NewProductService(client Requester) *ProductService {
	return &ProductService{client: client}
}

// ListProducts returns the upstream products in upstream order. A response
// without a products member yields an empty slice.
func (s *ProductService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	var data struct {
		Products []*model.Product `json:"products"`
	}
	if err := s.client.Request(ctx, listProductsQuery, nil, &data); err != nil {
		return nil, errors.Wrap(err, "listing products")
	}
	if data.Products == nil {
		return []*model.Product{}, nil
	}
	return data.Products, nil
}

// GetProduct returns the product with the given id, or nil if upstream has
// none.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var data struct {
		Product *model.Product `json:"product"`
	}
	vars := map[string]interface{}{"id": id}
	if err := s.client.Request(ctx, getProductQuery, vars, &data); err != nil {
		return nil, errors.Wrapf(err, "getting product %q", id)
	}
	return data.Product, nil
}
