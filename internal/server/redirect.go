package server

import (
	"net/http"
	"time"
)

const flashCookieName = "flash"

// redirectWithNotice stores notice in a signed cookie shown on the next page render.
func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, target, notice string) {
	encoded, err := s.cookie.Encode(flashCookieName, notice)
	if err != nil {
		s.requestLogger(r).WithError(err).Warn("failed to encode flash notice")
	} else {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookieName,
			Value:    encoded,
			Path:     "/",
			MaxAge:   int((5 * time.Minute).Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

// popFlash returns the pending notice, if any, and clears the cookie.
func (s *Service) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	var notice string
	if err := s.cookie.Decode(flashCookieName, cookie.Value, &notice); err != nil {
		s.requestLogger(r).WithError(err).Debug("discarding unreadable flash cookie")
		return ""
	}

	return notice
}
