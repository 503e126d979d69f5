package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/model"
	"github.com/uright/uright/server/userdb"
)

func (s *Server) httpCommunicationsList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/comunicacoes"))
}

func (s *Server) httpCommunicationsGet(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/comunicacoes/"+params.ByName("id")))
}

func (s *Server) httpCommunicationsCreate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	comm := model.Communication{}
	www.ReadJSON(w, r, &comm, maxCrudBodyBytes)
	www.CheckClient(s.validate.Struct(&comm))
	s.relay(w, s.backend.Post(r.Context(), "/comunicacoes", &comm))
}

func (s *Server) httpCommunicationsDelete(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Delete(r.Context(), "/comunicacoes/"+params.ByName("id")))
}
