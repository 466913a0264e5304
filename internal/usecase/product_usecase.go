package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/product-console/internal/models"
	"github.com/nguyentranbao-ct/product-console/internal/query"
	"github.com/nguyentranbao-ct/product-console/internal/repo/productapi"
)

const (
	TagProducts     = "products"
	TagUserProducts = "userProducts"

	MutationCreateProduct = "createProduct"
	MutationUpdateProduct = "updateProduct"
	MutationDeleteProduct = "deleteProduct"
)

// productLists are refetched after any product mutation succeeds.
var productLists = []string{TagProducts, TagUserProducts}

type ProductUsecase interface {
	Products(ctx context.Context, tab *Tab, page int) ([]models.Product, error)
	UserProducts(ctx context.Context, tab *Tab, page int) ([]models.Product, error)
	Create(ctx context.Context, tab *Tab, payload models.ProductPayload) (*models.Product, error)
	Update(ctx context.Context, tab *Tab, id int, payload models.ProductPayload) (*models.Product, error)
	Delete(ctx context.Context, tab *Tab, id int) error
	// Deleting reports whether a delete is in flight for the tab.
	Deleting(tab *Tab) bool
}

type productUsecase struct {
	api productapi.Client
}

func NewProductUsecase(api productapi.Client) ProductUsecase {
	return &productUsecase{api: api}
}

func (uc *productUsecase) Products(ctx context.Context, tab *Tab, page int) ([]models.Product, error) {
	sess, err := tab.Session(ctx)
	if err != nil {
		return nil, err
	}
	return query.Fetch(ctx, tab.cache, query.NewKey(TagProducts, page), func(ctx context.Context) ([]models.Product, error) {
		return uc.api.ListProducts(ctx, sess, page)
	})
}

func (uc *productUsecase) UserProducts(ctx context.Context, tab *Tab, page int) ([]models.Product, error) {
	sess, err := tab.Session(ctx)
	if err != nil {
		return nil, err
	}
	return query.Fetch(ctx, tab.cache, query.NewKey(TagUserProducts, page), func(ctx context.Context) ([]models.Product, error) {
		return uc.api.ListUserProducts(ctx, sess, page)
	})
}

func (uc *productUsecase) Create(ctx context.Context, tab *Tab, payload models.ProductPayload) (*models.Product, error) {
	sess, err := tab.Session(ctx)
	if err != nil {
		return nil, err
	}
	opts := query.MutationOptions{Name: MutationCreateProduct, Invalidates: productLists}
	return query.Mutate(ctx, tab.cache, opts, func(ctx context.Context) (*models.Product, error) {
		return uc.api.CreateProduct(ctx, sess, payload)
	})
}

func (uc *productUsecase) Update(ctx context.Context, tab *Tab, id int, payload models.ProductPayload) (*models.Product, error) {
	sess, err := tab.Session(ctx)
	if err != nil {
		return nil, err
	}
	opts := query.MutationOptions{Name: MutationUpdateProduct, Invalidates: productLists}
	return query.Mutate(ctx, tab.cache, opts, func(ctx context.Context) (*models.Product, error) {
		return uc.api.UpdateProduct(ctx, sess, id, payload)
	})
}

func (uc *productUsecase) Delete(ctx context.Context, tab *Tab, id int) error {
	sess, err := tab.Session(ctx)
	if err != nil {
		return err
	}
	opts := query.MutationOptions{Name: MutationDeleteProduct, Invalidates: productLists}
	_, err = query.Mutate(ctx, tab.cache, opts, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, uc.api.DeleteProduct(ctx, sess, id)
	})
	return err
}

func (uc *productUsecase) Deleting(tab *Tab) bool {
	return tab.cache.IsMutating(MutationDeleteProduct)
}
