package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/userdb"
)

func (s *Server) httpPing(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	www.SendOK(w)
}

type constantsJSON struct {
	Currency        currencyJSON                        `json:"currency"`
	RolePermissions map[userdb.Role][]userdb.Permission `json:"rolePermissions"`
}

type currencyJSON struct {
	Symbol string `json:"symbol"`
	Code   string `json:"code"`
	Name   string `json:"name"`
}

// httpConstants gives the web app the fixed tables it renders from, so they
// live in exactly one place.
func (s *Server) httpConstants(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	www.SendJSON(w, &constantsJSON{
		Currency: currencyJSON{
			Symbol: "KZ",
			Code:   "AOA",
			Name:   "Kwanzas",
		},
		RolePermissions: userdb.RolePermissions,
	})
}
