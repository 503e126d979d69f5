package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/model"
	"github.com/uright/uright/server/userdb"
)

const maxCrudBodyBytes = 1024 * 1024

func (s *Server) httpAssociationsList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/associacoes"))
}

func (s *Server) httpAssociationsGet(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/associacoes/"+params.ByName("id")))
}

func (s *Server) httpAssociationsCreate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	assoc := model.Association{}
	www.ReadJSON(w, r, &assoc, maxCrudBodyBytes)
	www.CheckClient(s.validate.Struct(&assoc))
	s.relay(w, s.backend.Post(r.Context(), "/associacoes", &assoc))
}

func (s *Server) httpAssociationsUpdate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	assoc := model.Association{}
	www.ReadJSON(w, r, &assoc, maxCrudBodyBytes)
	www.CheckClient(s.validate.Struct(&assoc))
	s.relay(w, s.backend.Put(r.Context(), "/associacoes/"+params.ByName("id"), &assoc))
}

func (s *Server) httpAssociationsDelete(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Delete(r.Context(), "/associacoes/"+params.ByName("id")))
}

// httpAssociationRequestAccess is the onboarding "join an existing
// association" path: the backend records a pending request, and we flag the
// account so the UI can show the waiting state.
func (s *Server) httpAssociationRequestAccess(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	body := struct {
		AssociationID string `json:"associationId" validate:"required"`
	}{}
	www.ReadJSON(w, r, &body, maxAuthBodyBytes)
	www.CheckClient(s.validate.Struct(&body))

	resp := s.backend.Post(r.Context(), "/associacoes/request-access", &body)
	if !resp.Ok() {
		status := resp.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		www.Panic(status, resp.Error)
	}
	www.Check(s.userDB.SetOnboardingComplete(cred.User.ID, true))
	www.SendOK(w)
}
