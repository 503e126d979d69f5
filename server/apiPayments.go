package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/model"
	"github.com/uright/uright/server/userdb"
)

// Payments are "contribuições" upstream.

func (s *Server) httpPaymentsList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/contribuicoes"))
}

func (s *Server) httpPaymentsGet(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/contribuicoes/"+params.ByName("id")))
}

func (s *Server) httpPaymentsByAssociation(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/contribuicoes/associacao/"+params.ByName("id")))
}

func (s *Server) httpPaymentsCreate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	payment := model.Contribution{}
	www.ReadJSON(w, r, &payment, maxCrudBodyBytes)
	www.CheckClient(s.validate.Struct(&payment))
	s.relay(w, s.backend.Post(r.Context(), "/contribuicoes", &payment))
}

func (s *Server) httpPaymentsUpdate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	payment := model.Contribution{}
	www.ReadJSON(w, r, &payment, maxCrudBodyBytes)
	www.CheckClient(s.validate.Struct(&payment))
	s.relay(w, s.backend.Put(r.Context(), "/contribuicoes/"+params.ByName("id"), &payment))
}

func (s *Server) httpPaymentsDelete(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Delete(r.Context(), "/contribuicoes/"+params.ByName("id")))
}
