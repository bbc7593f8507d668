package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/libhub/library-service/internal/model"
	"github.com/libhub/library-service/internal/repository"
)

type StatsService struct {
	catalog  repository.Catalog
	identity repository.Identity
	ledger   repository.Ledger
	log      *zap.Logger
}

func NewStatsService(catalog repository.Catalog, identity repository.Identity, ledger repository.Ledger, log *zap.Logger) *StatsService {
	return &StatsService{
		catalog:  catalog,
		identity: identity,
		ledger:   ledger,
		log:      log.Named("stats"),
	}
}

// Overview fans the dashboard counts out concurrently; any store failure
// fails the whole read.
func (s *StatsService) Overview(ctx context.Context) (model.StatsOverview, error) {
	var overview model.StatsOverview

	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() (err error) {
		overview.TotalBooks, err = s.catalog.Count(ctx)
		return err
	})
	gg.Go(func() (err error) {
		overview.TotalUsers, err = s.identity.Count(ctx)
		return err
	})
	gg.Go(func() (err error) {
		overview.BurrowerCount, err = s.identity.CountByRole(ctx, model.RoleBurrower)
		return err
	})
	gg.Go(func() (err error) {
		overview.BurrowedBooks, err = s.ledger.CountActive(ctx)
		return err
	})
	gg.Go(func() (err error) {
		overview.OverdueBooks, err = s.ledger.CountOverdue(ctx)
		return err
	})
	gg.Go(func() (err error) {
		records, err := s.ledger.ListAll(ctx)
		if err != nil {
			return err
		}
		overview.TotalBorrowing = len(records)
		return nil
	})

	if err := gg.Wait(); err != nil {
		return model.StatsOverview{}, err
	}
	return overview, nil
}
