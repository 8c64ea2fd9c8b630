package web

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"preorder/internal/adapters/http/middleware"
	accountStore "preorder/internal/adapters/storage/account"
	"preorder/internal/application/orchestrators"
	"preorder/internal/application/projections"
	"preorder/internal/domain/export"
	"preorder/internal/domain/preorder"
)

// sessionIdentity resolves the current identity from the request session,
// confirming the account still exists.
type sessionIdentity struct {
	accounts accountStore.Store
}

// CurrentIdentity implements orchestrators.IdentityResolver.
func (si sessionIdentity) CurrentIdentity(ctx context.Context) (orchestrators.Identity, bool, error) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		return orchestrators.Identity{}, false, nil
	}
	acct, err := si.accounts.GetByID(ctx, sess.AccountID)
	if errors.Is(err, accountStore.ErrNotFound) {
		return orchestrators.Identity{}, false, nil
	}
	if err != nil {
		return orchestrators.Identity{}, false, err
	}
	return orchestrators.Identity{AccountID: acct.ID, Email: acct.Email}, true, nil
}

func (s *Server) authorize(ctx context.Context) orchestrators.Authorization {
	return orchestrators.ExecuteAuthorizeAdmin(ctx, orchestrators.AuthorizeAdminDeps{
		Identity:   sessionIdentity{accounts: s.stores.AccountStore},
		AdminStore: s.stores.AdminStore,
	})
}

type accessDeniedPage struct {
	basePage
	Reason orchestrators.UnauthorizedReason
}

func (s *Server) renderAccessDenied(w http.ResponseWriter, r *http.Request, denied orchestrators.Unauthorized) {
	slog.Info("admin_access_denied", "path", r.URL.Path, "reason", string(denied.Reason))
	s.render(w, http.StatusForbidden, "access_denied.html", accessDeniedPage{
		basePage: newBasePage(r, "Access Denied"),
		Reason:   denied.Reason,
	})
}

// csvDownload is the export link for the record set shown on the page.
type csvDownload struct {
	Filename string
	Href     template.URL
}

// newCSVDownload encodes records as a data URL so the file holds exactly the
// rows that were rendered.
func newCSVDownload(records []preorder.Preorder, loc export.Locale, now time.Time) csvDownload {
	body := export.PreordersCSV(records, loc)
	return csvDownload{
		Filename: export.Filename(now),
		Href:     template.URL("data:" + export.ContentType + ";charset=utf-8," + url.PathEscape(body)),
	}
}

type adminPage struct {
	basePage
	projections.AdminDashboardResult
	Locale export.Locale
	Export csvDownload
}

// handleAdmin serves GET /admin: the dashboard for admins, access denied for everyone else.
// The CSV export is built from the same loaded records, so a failed read shows
// the load notice rather than an error page.
func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, "GET, HEAD")
		return
	}
	switch auth := s.authorize(r.Context()).(type) {
	case orchestrators.Unauthorized:
		s.renderAccessDenied(w, r, auth)
	case orchestrators.Authorized:
		now := s.now()
		result := projections.QueryGetAdminDashboard(r.Context(), projections.GetAdminDashboardDeps{
			PreorderStore: s.stores.PreorderStore,
		}, now)
		loc := export.ResolveLocale(r.Header.Get("Accept-Language"))
		s.render(w, http.StatusOK, "admin.html", adminPage{
			basePage:             newBasePage(r, "Admin Dashboard"),
			AdminDashboardResult: result,
			Locale:               loc,
			Export:               newCSVDownload(result.Preorders, loc, now),
		})
	}
}

type apiError struct {
	Error  string                           `json:"error"`
	Reason orchestrators.UnauthorizedReason `json:"reason,omitempty"`
}

// handleAPIAdminDashboard serves GET /api/admin/dashboard as JSON.
func (s *Server) handleAPIAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	if denied, ok := s.authorize(r.Context()).(orchestrators.Unauthorized); ok {
		writeJSON(w, http.StatusForbidden, apiError{Error: "forbidden", Reason: denied.Reason})
		return
	}
	result := projections.QueryGetAdminDashboard(r.Context(), projections.GetAdminDashboardDeps{
		PreorderStore: s.stores.PreorderStore,
	}, s.now())
	writeJSON(w, http.StatusOK, result)
}
