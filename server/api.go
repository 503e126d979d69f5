package server

import (
	"net/http"
	"os"
	"time"

	"github.com/cyclopcam/staticfiles"
	"github.com/cyclopcam/www"
	"github.com/go-chi/httprate"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/backend"
	"github.com/uright/uright/server/gate"
	"github.com/uright/uright/server/userdb"
)

type authenticatedHandler func(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials)

func (s *Server) setupHttpRoutes(staticRoot string) error {
	router := httprouter.New()

	// protected creates a route that requires a session, and optionally a
	// permission on top of that. Permission "" means "any authenticated user".
	protected := func(method, route string, perm userdb.Permission, handle authenticatedHandler) {
		www.Handle(s.Log, router, method, route, func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
			cred := s.authenticate(w, r)
			if cred == nil {
				return
			}
			if perm != "" && !cred.HasPermission(perm) {
				www.PanicForbidden()
			}
			handle(w, r, params, cred)
		})
	}

	// unprotected creates a route that is accessible without authentication
	unprotected := func(method, route string, handle httprouter.Handle) {
		www.Handle(s.Log, router, method, route, handle)
	}

	// ratelimited is unprotected plus an IP rate limit, for the endpoints
	// that take credential guesses or generate emails.
	ratelimited := func(method, route string, handle httprouter.Handle, requestLimit int, windowLength time.Duration) {
		limited := httprate.Limit(requestLimit, windowLength, httprate.WithKeyFuncs(httprate.KeyByIP))
		www.Handle(s.Log, router, method, route, func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
			limited(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handle(w, r, params)
			})).ServeHTTP(w, r)
		})
	}

	unprotected("GET", "/api/ping", s.httpPing)
	protected("GET", "/api/constants", "", s.httpConstants)

	ratelimited("POST", "/api/auth/login", s.httpAuthLogin, 10, time.Minute)
	ratelimited("POST", "/api/auth/register", s.httpAuthRegister, 5, time.Minute)
	ratelimited("POST", "/api/auth/verify-email", s.httpAuthVerifyEmail, 10, time.Minute)
	ratelimited("POST", "/api/auth/forgot-password", s.httpAuthForgotPassword, 5, time.Minute)
	ratelimited("POST", "/api/auth/reset-password", s.httpAuthResetPassword, 5, time.Minute)
	unprotected("GET", "/api/auth/oauth/:provider", s.httpAuthOAuthRedirect)
	protected("POST", "/api/auth/logout", "", s.httpAuthLogout)
	protected("GET", "/api/auth/me", "", s.httpAuthWhoAmI)

	protected("POST", "/api/onboarding/complete", "", s.httpOnboardingComplete)
	protected("POST", "/api/associations/request-access", "", s.httpAssociationRequestAccess)

	protected("GET", "/api/dashboard/stats", userdb.PermViewDashboard, s.httpDashboardStats)

	protected("GET", "/api/associations", userdb.PermViewDashboard, s.httpAssociationsList)
	protected("GET", "/api/associations/:id", userdb.PermViewDashboard, s.httpAssociationsGet)
	protected("POST", "/api/associations", userdb.PermManageAssociations, s.httpAssociationsCreate)
	protected("PUT", "/api/associations/:id", userdb.PermManageAssociations, s.httpAssociationsUpdate)
	protected("DELETE", "/api/associations/:id", userdb.PermManageAssociations, s.httpAssociationsDelete)

	protected("GET", "/api/members", userdb.PermViewDashboard, s.httpMembersList)
	protected("GET", "/api/members/:id", userdb.PermViewDashboard, s.httpMembersGet)
	protected("POST", "/api/members", userdb.PermManageMembers, s.httpMembersCreate)
	protected("PUT", "/api/members/:id", userdb.PermManageMembers, s.httpMembersUpdate)
	protected("DELETE", "/api/members/:id", userdb.PermManageMembers, s.httpMembersDelete)

	protected("GET", "/api/payments", userdb.PermManagePayments, s.httpPaymentsList)
	protected("GET", "/api/payments/:id", userdb.PermManagePayments, s.httpPaymentsGet)
	protected("GET", "/api/payments/association/:id", userdb.PermManagePayments, s.httpPaymentsByAssociation)
	protected("POST", "/api/payments", userdb.PermManagePayments, s.httpPaymentsCreate)
	protected("PUT", "/api/payments/:id", userdb.PermManagePayments, s.httpPaymentsUpdate)
	protected("DELETE", "/api/payments/:id", userdb.PermManagePayments, s.httpPaymentsDelete)

	protected("GET", "/api/events", userdb.PermViewDashboard, s.httpEventsList)
	protected("GET", "/api/events/:id", userdb.PermViewDashboard, s.httpEventsGet)
	protected("POST", "/api/events", userdb.PermManageEvents, s.httpEventsCreate)
	protected("PUT", "/api/events/:id", userdb.PermManageEvents, s.httpEventsUpdate)
	protected("DELETE", "/api/events/:id", userdb.PermManageEvents, s.httpEventsDelete)

	protected("GET", "/api/communications", userdb.PermViewDashboard, s.httpCommunicationsList)
	protected("GET", "/api/communications/:id", userdb.PermViewDashboard, s.httpCommunicationsGet)
	protected("POST", "/api/communications", userdb.PermManageSettings, s.httpCommunicationsCreate)
	protected("DELETE", "/api/communications/:id", userdb.PermManageSettings, s.httpCommunicationsDelete)

	protected("GET", "/api/users", userdb.PermManageUsers, s.httpUsersList)
	protected("GET", "/api/users/:id", userdb.PermManageUsers, s.httpUsersGet)
	protected("POST", "/api/users", userdb.PermManageUsers, s.httpUsersCreate)
	protected("PUT", "/api/users/:id", userdb.PermManageUsers, s.httpUsersUpdate)
	protected("DELETE", "/api/users/:id", userdb.PermManageUsers, s.httpUsersDelete)

	protected("GET", "/api/reports/general", userdb.PermViewReports, s.httpReportsGeneral)
	protected("GET", "/api/reports/financial", userdb.PermViewReports, s.httpReportsFinancial)
	protected("GET", "/api/reports/association/:id", userdb.PermViewReports, s.httpReportsByAssociation)

	protected("GET", "/api/finance/summary", userdb.PermManagePayments, s.httpFinanceSummary)
	protected("GET", "/api/finance/association/:id", userdb.PermManagePayments, s.httpFinanceByAssociation)
	protected("POST", "/api/finance/export", userdb.PermManagePayments, s.httpFinanceExport)

	protected("GET", "/api/notifications", "", s.httpNotificationsList)
	protected("GET", "/api/notifications/state", "", s.httpNotificationsState)
	protected("PUT", "/api/notifications/:id/read", "", s.httpNotificationsMarkRead)
	protected("DELETE", "/api/notifications", "", s.httpNotificationsClear)
	protected("GET", "/api/ws/notifications", "", s.httpNotificationsWebSocket)

	if staticRoot != "" {
		static, err := staticfiles.NewCachedStaticFileServer(os.DirFS(staticRoot), "", []string{"/api/"}, s.Log, false, nil)
		if err != nil {
			return err
		}
		router.NotFound = s.pageGate(static)
	} else {
		router.NotFound = s.pageGate(http.NotFoundHandler())
	}

	s.httpRouter = router
	return nil
}

// authenticate resolves the session on the request.
// On failure it sends a 401 and returns nil (the handler must bail out).
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) *userdb.Credentials {
	cred := s.userDB.PeekCredentials(r)
	if cred == nil {
		www.SendError(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}
	return cred
}

// pageGate applies the page-navigation policy in front of the static file
// server: login/role redirects happen here, before any page is served.
func (s *Server) pageGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var visitor *gate.Visitor
		if cred := s.userDB.PeekCredentials(r); cred != nil {
			visitor = &gate.Visitor{
				Role:               cred.User.Role,
				OnboardingComplete: cred.User.OnboardingComplete,
			}
		}
		switch gate.Decide(r.URL.Path, visitor) {
		case gate.RedirectLogin:
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case gate.RedirectDashboard:
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		case gate.RedirectOnboarding:
			http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// relay sends a normalized backend response to the caller: raw JSON on
// success, the backend's message as an HTTP error otherwise.
func (s *Server) relay(w http.ResponseWriter, resp *backend.Response) {
	if !resp.Ok() {
		status := resp.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		www.Panic(status, resp.Error)
	}
	www.SendJSONRaw(w, string(resp.Data))
}
