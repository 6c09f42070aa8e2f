package gql

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
	"storefront/internal/upstream"
)

type fakeProducts struct {
	list   []*model.Product
	byID   map[string]*model.Product
	err    error
	lastID string
}

func (f *fakeProducts) ListProducts(context.Context) ([]*model.Product, error) {
	return f.list, f.err
}

func (f *fakeProducts) GetProduct(_ context.Context, id string) (*model.Product, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func str(s string) *string { return &s }

func run(t *testing.T, src ProductSource, query string, vars map[string]interface{}) *graphql.Result {
	t.Helper()
	schema, err := NewSchema(src)
	require.NoError(t, err)
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        context.Background(),
	})
}

func TestProducts(t *testing.T) {
	src := &fakeProducts{list: []*model.Product{
		{ID: str("1"), Handle: str("mug"), Title: str("Mug")},
		{ID: str("2"), Title: str("Cup")},
	}}

	res := run(t, src, `{ products { id handle title } }`, nil)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{
		"products": []interface{}{
			map[string]interface{}{"id": "1", "handle": "mug", "title": "Mug"},
			map[string]interface{}{"id": "2", "handle": nil, "title": "Cup"},
		},
	}, res.Data)
}

func TestProductsEmpty(t *testing.T) {
	res := run(t, &fakeProducts{list: []*model.Product{}}, `{ products { id } }`, nil)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{"products": []interface{}{}}, res.Data)
}

func TestProductsUpstreamFailureIsReported(t *testing.T) {
	src := &fakeProducts{err: errors.Wrap(&upstream.Error{Messages: []string{"unauthorized"}}, "listing products")}

	res := run(t, src, `{ products { id } }`, nil)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "unauthorized")
	assert.Equal(t, ErrCodeUpstream, res.Errors[0].Extensions["code"])
	assert.Equal(t, map[string]interface{}{"products": nil}, res.Data)
}

func TestProductByID(t *testing.T) {
	src := &fakeProducts{byID: map[string]*model.Product{
		"1": {ID: str("1"), Handle: str("mug"), Title: str("Mug")},
	}}

	res := run(t, src, `query($id: ID) { product(id: $id) { id title } }`, map[string]interface{}{"id": "1"})
	require.Empty(t, res.Errors)
	assert.Equal(t, "1", src.lastID)
	assert.Equal(t, map[string]interface{}{
		"product": map[string]interface{}{"id": "1", "title": "Mug"},
	}, res.Data)
}

func TestProductByIDMissing(t *testing.T) {
	src := &fakeProducts{byID: map[string]*model.Product{}}

	res := run(t, src, `{ product(id: "nope") { id } }`, nil)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{"product": nil}, res.Data)

	res = run(t, src, `{ product { id } }`, nil)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{"product": nil}, res.Data)
}

func TestProductByIDFailure(t *testing.T) {
	res := run(t, &fakeProducts{err: upstream.ErrUpstream}, `{ product(id: "1") { id } }`, nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, ErrCodeUpstream, res.Errors[0].Extensions["code"])
}

func TestNoMutations(t *testing.T) {
	res := run(t, &fakeProducts{}, `mutation { products { id } }`, nil)
	assert.NotEmpty(t, res.Errors)
}
