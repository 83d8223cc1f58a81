package server

import (
	"errors"
	"net/http"

	"foodwaste/internal/store"
	"foodwaste/pkg/types"
)

type QueryPageData struct {
	types.BasePageData
	Form         types.QueryForm
	Mode         string
	Unrestricted bool
	Executed     bool
	Result       *store.ResultSet
}

func (s *Service) queryMode() store.QueryMode {
	if s.config.AllowUnrestrictedQueries {
		return store.QueryUnrestricted
	}
	return store.QueryReadOnly
}

func (s *Service) newQueryPageData() *QueryPageData {
	mode := s.queryMode()
	return &QueryPageData{
		BasePageData: types.BasePageData{Title: "Run SQL Query"},
		Mode:         mode.String(),
		Unrestricted: mode == store.QueryUnrestricted,
	}
}

func (s *Service) handleGetQuery(w http.ResponseWriter, r *http.Request) {
	data := s.newQueryPageData()

	if err := s.renderTemplate(w, r, http.StatusOK, "/query", "page.query", data); err != nil {
		s.requestLogger(r).WithError(err).Error("failed to render query page")
		s.internalServerError(w)
	}
}

// handlePostQuery runs the submitted statement verbatim. Failures are shown on
// the page rather than treated as server errors.
func (s *Service) handlePostQuery(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		s.requestLogger(r).WithError(err).Warn("failed to parse query form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	data := s.newQueryPageData()
	if err := decoder.Decode(&data.Form, r.Form); err != nil {
		s.requestLogger(r).WithError(err).Warn("failed to decode query form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	mode := s.queryMode()
	result, err := s.dataRepo.RunQuery(ctx, data.Form.Statement, mode)
	switch {
	case errors.Is(err, store.ErrEmptyStatement):
		data.Error = "Enter a SQL statement to run."
	case err != nil:
		s.requestLogger(r).WithError(err).WithField("mode", mode.String()).Info("ad-hoc query failed")
		data.Error = "Error: " + err.Error()
	default:
		data.Executed = true
		data.Result = result
	}

	if err := s.renderTemplate(w, r, http.StatusOK, "/query", "page.query", data); err != nil {
		s.requestLogger(r).WithError(err).Error("failed to render query page")
		s.internalServerError(w)
	}
}
