package orgs

import (
	"net/http"
	"strconv"

	"github.com/ourhour/ourhour-web/internal/services/web/routepath"
	webtemplates "github.com/ourhour/ourhour-web/internal/services/web/templates"
)

func (m Module) handleProjects(w http.ResponseWriter, r *http.Request) {
	orgID, err := strconv.ParseInt(r.PathValue("orgID"), 10, 64)
	if err != nil || orgID <= 0 {
		m.base.WriteNotFound(w, r)
		return
	}
	rec, ok := m.sessions.Resolve(r)
	if !ok {
		m.base.Redirect(w, r, routepath.LoginWithNext(r.URL.RequestURI()))
		return
	}

	// A resumed session counts as becoming authenticated.
	if m.accepter != nil {
		recorder := m.accepter.Run(r.Context(), m.base.Logger(r), m.base.BrowserScope(w, r), rec.ID)
		if target, _, navigated := recorder.Destination(); navigated {
			recorder.Flush(w, r, m.base)
			if target != r.URL.RequestURI() {
				m.base.Redirect(w, r, target)
				return
			}
		}
	}

	loc := m.base.Localizer(w, r)
	m.base.WritePage(w, r, loc, "orgs.projects.title", http.StatusOK, webtemplates.OrgProjects(loc, orgID))
}
