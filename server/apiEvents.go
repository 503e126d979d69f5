package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/model"
	"github.com/uright/uright/server/userdb"
)

func (s *Server) httpEventsList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/eventos"))
}

func (s *Server) httpEventsGet(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/eventos/"+params.ByName("id")))
}

func (s *Server) httpEventsCreate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	event := model.Event{}
	www.ReadJSON(w, r, &event, maxCrudBodyBytes)
	www.CheckClient(s.validate.Struct(&event))
	s.relay(w, s.backend.Post(r.Context(), "/eventos", &event))
}

func (s *Server) httpEventsUpdate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	event := model.Event{}
	www.ReadJSON(w, r, &event, maxCrudBodyBytes)
	www.CheckClient(s.validate.Struct(&event))
	s.relay(w, s.backend.Put(r.Context(), "/eventos/"+params.ByName("id"), &event))
}

func (s *Server) httpEventsDelete(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Delete(r.Context(), "/eventos/"+params.ByName("id")))
}
