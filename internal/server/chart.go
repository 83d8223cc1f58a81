package server

import (
	"bytes"
	"errors"
	"net/http"

	"foodwaste/internal/chart"
	"foodwaste/pkg/types"
)

type ChartPageData struct {
	types.BasePageData
	Totals []*types.FoodTypeTotal
}

func (s *Service) handleChart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	totals, err := s.listingRepo.QuantityByFoodType(ctx)
	if err != nil {
		s.requestLogger(r).WithError(err).Error("failed to aggregate listings for chart")
		s.internalServerError(w)
		return
	}

	data := &ChartPageData{
		BasePageData: types.BasePageData{Title: "Food Wastage by Type"},
		Totals:       totals,
	}

	if err := s.renderTemplate(w, r, http.StatusOK, "/chart", "page.chart", data); err != nil {
		s.requestLogger(r).WithError(err).Error("failed to render chart page")
		s.internalServerError(w)
	}
}

// handleChartImage answers 204 when there is nothing to plot.
func (s *Service) handleChartImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	totals, err := s.listingRepo.QuantityByFoodType(ctx)
	if err != nil {
		s.requestLogger(r).WithError(err).Error("failed to aggregate listings for chart image")
		s.internalServerError(w)
		return
	}

	var buf bytes.Buffer
	err = chart.RenderBarChart(&buf, chart.FoodTypeBars(totals), chart.FoodTypeOptions)
	if errors.Is(err, chart.ErrNoData) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.requestLogger(r).WithError(err).Error("failed to render chart image")
		s.internalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
