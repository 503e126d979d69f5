package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/userdb"
)

func (s *Server) httpFinanceSummary(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/finance/summary"))
}

func (s *Server) httpFinanceByAssociation(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.relay(w, s.backend.Get(r.Context(), "/finance/association/"+params.ByName("id")))
}

// The export response is a file (CSV or JSON download), so it is streamed
// through with whatever content type the backend declares, not parsed.
func (s *Server) httpFinanceExport(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	body := struct {
		Format string `json:"format" validate:"required,oneof=CSV JSON"`
	}{}
	raw := www.ReadLimited(w, r, maxAuthBodyBytes)
	www.CheckClient(json.Unmarshal(raw, &body))
	www.CheckClient(s.validate.Struct(&body))
	s.backend.Forward(w, r.Context(), "POST", "/finance/export", bytes.NewReader(raw), "application/json")
}
