package session

import (
	"net/http"

	"github.com/ourhour/ourhour-web/internal/services/web/platform/webcookie"
)

// Resolve loads the session named by the request cookie.
func (s *Store) Resolve(r *http.Request) (Record, bool) {
	if s == nil || r == nil {
		return Record{}, false
	}
	id, ok := webcookie.Session.Read(r)
	if !ok {
		return Record{}, false
	}
	rec, err := s.Get(r.Context(), id)
	if err != nil {
		return Record{}, false
	}
	return rec, true
}

// SignedIn reports whether the request carries a live session.
func (s *Store) SignedIn(r *http.Request) bool {
	_, ok := s.Resolve(r)
	return ok
}
