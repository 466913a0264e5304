package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/product-console/internal/models"
	"github.com/nguyentranbao-ct/product-console/internal/query"
	"github.com/nguyentranbao-ct/product-console/internal/repo/productapi"
)

const TagUser = "user"

type UserUsecase interface {
	Profile(ctx context.Context, tab *Tab) (*models.User, error)
}

type userUsecase struct {
	api productapi.Client
}

func NewUserUsecase(api productapi.Client) UserUsecase {
	return &userUsecase{api: api}
}

func (uc *userUsecase) Profile(ctx context.Context, tab *Tab) (*models.User, error) {
	sess, err := tab.Session(ctx)
	if err != nil {
		return nil, err
	}
	return query.Fetch(ctx, tab.cache, query.NewKey(TagUser), func(ctx context.Context) (*models.User, error) {
		return uc.api.Profile(ctx, sess)
	})
}
