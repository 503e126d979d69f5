package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/userdb"
)

// httpOnboardingComplete ends the wizard for users who created their own
// association. The "request access" path ends it via
// httpAssociationRequestAccess instead, which leaves the account flagged as
// pending.
func (s *Server) httpOnboardingComplete(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	www.Check(s.userDB.SetOnboardingComplete(cred.User.ID, false))
	www.SendOK(w)
}
