package server

import (
	"bytes"
	"net/http"

	"foodwaste/pkg/types"
)

var menu = []types.MenuItem{
	{Label: "Home", Path: "/"},
	{Label: "View Data", Path: "/data"},
	{Label: "Add Food Listing", Path: "/listings/new"},
	{Label: "Food Listings", Path: "/listings"},
	{Label: "SQL Queries", Path: "/query"},
	{Label: "Food Wastage Chart", Path: "/chart"},
}

func menuFor(activePath string) []types.MenuItem {
	items := make([]types.MenuItem, len(menu))
	for i, item := range menu {
		item.Active = item.Path == activePath
		items[i] = item
	}
	return items
}

// renderTemplate fills in the menu and any pending flash notice, then writes
// the page with status. Rendering goes through a buffer so a template failure
// never leaves a half-written page behind.
func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, status int, activePath, templateName string, data any) error {
	if setter, ok := data.(types.MenuSetter); ok {
		setter.SetMenu(menuFor(activePath))
	}

	if setter, ok := data.(types.FlashSetter); ok {
		if notice := s.popFlash(w, r); notice != "" {
			setter.SetFlash(notice)
		}
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
