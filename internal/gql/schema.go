package gql

import (
	"context"

	"github.com/graphql-go/graphql"

	"storefront/internal/model"
)

// ErrCodeUpstream is reported in extensions.code when the upstream API fails.
const ErrCodeUpstream = "UPSTREAM_FAILURE"

// ProductSource is what the resolvers need from the product service.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}

type resolverError struct {
	code string
	err  error
}

func (e *resolverError) Error() string { return e.err.Error() }

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func upstreamError(err error) error {
	return &resolverError{code: ErrCodeUpstream, err: err}
}

func stringField(get func(*model.Product) *string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		prod, ok := p.Source.(*model.Product)
		if !ok || prod == nil {
			return nil, nil
		}
		if v := get(prod); v != nil {
			return *v, nil
		}
		return nil, nil
	}
}

var productType = graphql.NewObject(
	graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.ID,
				Resolve: stringField(func(p *model.Product) *string { return p.ID }),
			},
			"handle": &graphql.Field{
				Type:    graphql.String,
				Resolve: stringField(func(p *model.Product) *string { return p.Handle }),
			},
			"title": &graphql.Field{
				Type:    graphql.String,
				Resolve: stringField(func(p *model.Product) *string { return p.Title }),
			},
		},
	},
)

func newQueryType(products ProductSource) *graphql.Object {
	return graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"products": &graphql.Field{
					Type: graphql.NewList(productType),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						list, err := products.ListProducts(p.Context)
						if err != nil {
							return nil, upstreamError(err)
						}
						return list, nil
					},
				},
				"product": &graphql.Field{
					Type: productType,
					Args: graphql.FieldConfigArgument{
						"id": &graphql.ArgumentConfig{Type: graphql.ID},
					},
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						id, _ := p.Args["id"].(string)
						if id == "" {
							return nil, nil
						}
						prod, err := products.GetProduct(p.Context, id)
						if err != nil {
							return nil, upstreamError(err)
						}
						if prod == nil {
							return nil, nil
						}
						return prod, nil
					},
				},
			},
		},
	)
}

// NewSchema builds the storefront schema backed by products.
func NewSchema(products ProductSource) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: newQueryType(products),
	})
}
