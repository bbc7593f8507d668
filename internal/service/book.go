package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/libhub/library-service/internal/model"
	"github.com/libhub/library-service/internal/repository"
)

type BookService struct {
	catalog repository.Catalog
	log     *zap.Logger
}

func NewBookService(catalog repository.Catalog, log *zap.Logger) *BookService {
	return &BookService{
		catalog: catalog,
		log:     log.Named("book"),
	}
}

func (s *BookService) Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return s.catalog.Create(ctx, req)
}

func (s *BookService) Get(ctx context.Context, bookUid string) (model.Book, error) {
	return s.catalog.GetByUid(ctx, bookUid)
}

func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	return s.catalog.List(ctx)
}

func (s *BookService) Update(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error) {
	return s.catalog.Update(ctx, bookUid, req)
}

func (s *BookService) Delete(ctx context.Context, bookUid string) error {
	return s.catalog.Delete(ctx, bookUid)
}

func (s *BookService) Count(ctx context.Context) (int, error) {
	return s.catalog.Count(ctx)
}

func (s *BookService) CountByCategory(ctx context.Context) (map[string]int, error) {
	return s.catalog.CountByCategory(ctx)
}
