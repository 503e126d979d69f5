package server

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/userdb"
)

func (s *Server) httpDashboardStats(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/relatorios/geral"))
}

func (s *Server) httpReportsGeneral(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/relatorios/geral"))
}

func (s *Server) httpReportsFinancial(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/relatorios/financeiro"))
}

func (s *Server) httpReportsByAssociation(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/relatorios/associacao/"+params.ByName("id")))
}
