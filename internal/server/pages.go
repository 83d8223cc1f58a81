package server

import (
	"context"
	"errors"
	"net/http"

	"foodwaste/internal/db"
	"foodwaste/internal/store"
	"foodwaste/pkg/types"
)

type HomePageData struct {
	types.BasePageData
	Counts []types.TableCount
}

type DataPageData struct {
	types.BasePageData
	Tables   []string
	Selected string
	Result   *store.ResultSet
}

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	data := &HomePageData{
		BasePageData: types.BasePageData{Title: "Local Food Wastage Management System"},
	}

	counts, err := s.tableCounts(ctx)
	if err != nil {
		s.requestLogger(r).WithError(err).Error("failed to count table rows")
		s.internalServerError(w)
		return
	}
	data.Counts = counts

	if err := s.renderTemplate(w, r, http.StatusOK, "/", "page.home", data); err != nil {
		s.requestLogger(r).WithError(err).Error("failed to render home page")
		s.internalServerError(w)
	}
}

func (s *Service) tableCounts(ctx context.Context) ([]types.TableCount, error) {
	counters := []struct {
		table string
		count func(context.Context) (int64, error)
	}{
		{db.TableProviders, s.providerRepo.Count},
		{db.TableReceivers, s.receiverRepo.Count},
		{db.TableFoodListings, s.listingRepo.Count},
		{db.TableClaims, s.claimRepo.Count},
	}

	out := make([]types.TableCount, 0, len(counters))
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, types.TableCount{Table: c.table, Rows: n})
	}

	return out, nil
}

func (s *Service) handleData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	table := r.URL.Query().Get("table")
	if table == "" {
		table = db.TableProviders
	}

	data := &DataPageData{
		BasePageData: types.BasePageData{Title: "View Data"},
		Tables:       db.TableNames(),
		Selected:     table,
	}

	status := http.StatusOK
	result, err := s.dataRepo.DumpTable(ctx, table)
	switch {
	case errors.Is(err, types.ErrUnknownTable):
		status = http.StatusBadRequest
		data.Error = "Unknown table. Choose one of the listed tables."
	case err != nil:
		s.requestLogger(r).WithError(err).WithField("table", table).Error("failed to dump table")
		s.internalServerError(w)
		return
	default:
		data.Result = result
	}

	if err := s.renderTemplate(w, r, status, "/data", "page.data", data); err != nil {
		s.requestLogger(r).WithError(err).Error("failed to render data page")
		s.internalServerError(w)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
