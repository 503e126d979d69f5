package server

import (
	"encoding/json"
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/userdb"
)

// The user directory lives upstream like the other entities; the accounts in
// our own DB exist purely for login and gating. The two are reconciled by the
// backend, not here.

func (s *Server) httpUsersList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/users"))
}

func (s *Server) httpUsersGet(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/users/"+params.ByName("id")))
}

// readUserBody validates the fields we model before a mutation is forwarded.
// The raw body goes upstream, so fields we don't model still pass through.
func (s *Server) readUserBody(w http.ResponseWriter, r *http.Request) json.RawMessage {
	body := struct {
		Name  string      `json:"name" validate:"required"`
		Email string      `json:"email" validate:"required,email"`
		Role  userdb.Role `json:"role" validate:"required"`
	}{}
	raw := www.ReadLimited(w, r, maxCrudBodyBytes)
	www.CheckClient(json.Unmarshal(raw, &body))
	www.CheckClient(s.validate.Struct(&body))
	if !body.Role.IsValid() {
		www.PanicBadRequestf("Unknown role %v", body.Role)
	}
	return json.RawMessage(raw)
}

func (s *Server) httpUsersCreate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	raw := s.readUserBody(w, r)
	s.relay(w, s.backend.Post(r.Context(), "/users", raw))
}

func (s *Server) httpUsersUpdate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	raw := s.readUserBody(w, r)
	s.relay(w, s.backend.Put(r.Context(), "/users/"+params.ByName("id"), raw))
}

func (s *Server) httpUsersDelete(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Delete(r.Context(), "/users/"+params.ByName("id")))
}
