package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/model"
	"github.com/uright/uright/server/userdb"
)

// The member list is the one place where the gateway looks inside a backend
// response: the list page's search box and facet dropdowns are served here.
func (s *Server) httpMembersList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	resp := s.backend.Get(r.Context(), "/membros")
	if !resp.Ok() {
		s.relay(w, resp)
		return
	}
	members := []model.Member{}
	www.Check(resp.Decode(&members))

	filter := model.MemberFilter{
		Search:         www.QueryValue(r, "search"),
		Status:         www.QueryValue(r, "status"),
		MembershipType: www.QueryValue(r, "type"),
	}
	www.SendJSON(w, model.FilterMembers(members, filter))
}

func (s *Server) httpMembersGet(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/membros/"+params.ByName("id")))
}

func (s *Server) httpMembersCreate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	member := model.Member{}
	www.ReadJSON(w, r, &member, maxCrudBodyBytes)
	www.CheckClient(s.validate.Struct(&member))
	s.relay(w, s.backend.Post(r.Context(), "/membros", &member))
}

func (s *Server) httpMembersUpdate(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	member := model.Member{}
	www.ReadJSON(w, r, &member, maxCrudBodyBytes)
	www.CheckClient(s.validate.Struct(&member))
	s.relay(w, s.backend.Put(r.Context(), "/membros/"+params.ByName("id"), &member))
}

func (s *Server) httpMembersDelete(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Delete(r.Context(), "/membros/"+params.ByName("id")))
}
