package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/userdb"
)

const maxAuthBodyBytes = 64 * 1024

// userJSON is the user as the web app sees it: the permission set is always
// derived from the role, never stored.
type userJSON struct {
	*userdb.User
	Permissions []userdb.Permission `json:"permissions"`
}

func toUserJSON(u *userdb.User) *userJSON {
	perms := u.Role.Permissions()
	if perms == nil {
		perms = []userdb.Permission{}
	}
	return &userJSON{User: u, Permissions: perms}
}

// SYNC-LOGIN-RESPONSE-JSON
type sessionResponseJSON struct {
	User  *userJSON `json:"user"`
	Token string    `json:"token"`
}

func (s *Server) httpAuthLogin(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	body := struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}{}
	www.ReadJSON(w, r, &body, maxAuthBodyBytes)
	www.CheckClient(s.validate.Struct(&body))

	user, token := s.userDB.Login(w, body.Email, body.Password)
	if user == nil {
		www.Panic(http.StatusUnauthorized, "Credenciais inválidas")
	}
	s.Log.Infof("User %v logged in", user.ID)
	www.SendJSON(w, &sessionResponseJSON{User: toUserJSON(user), Token: token})
}

func (s *Server) httpAuthRegister(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	body := struct {
		Name       string `json:"name" validate:"required"`
		Email      string `json:"email" validate:"required,email"`
		Password   string `json:"password" validate:"required,min=8"`
		EntityType string `json:"entityType" validate:"omitempty,oneof=cooperativa associacao uniao"`
	}{}
	www.ReadJSON(w, r, &body, maxAuthBodyBytes)
	www.CheckClient(s.validate.Struct(&body))

	if existing, err := s.userDB.GetUserByEmail(body.Email); err != nil {
		www.Check(err)
	} else if existing != nil {
		www.Panic(http.StatusConflict, "Este email já está registado")
	}

	user := userdb.User{
		Email:      body.Email,
		Name:       body.Name,
		Role:       userdb.RoleAdmin,
		EntityType: body.EntityType,
	}
	www.Check(s.userDB.CreateUser(&user, body.Password))

	// Mail dispatch is the backend's job; the token is logged so that a dev
	// setup without mail can still verify.
	verifyToken, err := s.userDB.CreateEmailToken(user.ID, userdb.TokenVerifyEmail)
	www.Check(err)
	s.Log.Infof("Created user %v (%v), verification token %v", user.ID, user.Email, verifyToken)

	token := s.userDB.LoginUser(w, user.ID)
	if token == "" {
		www.PanicServerError("Error creating session")
	}
	www.SendJSON(w, &sessionResponseJSON{User: toUserJSON(&user), Token: token})
}

func (s *Server) httpAuthLogout(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.userDB.Logout(w, r)
	www.SendOK(w)
}

func (s *Server) httpAuthWhoAmI(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	www.SendJSON(w, toUserJSON(cred.User))
}

func (s *Server) httpAuthVerifyEmail(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	body := struct {
		Token string `json:"token" validate:"required"`
	}{}
	www.ReadJSON(w, r, &body, maxAuthBodyBytes)
	www.CheckClient(s.validate.Struct(&body))

	userID := s.userDB.ConsumeEmailToken(body.Token, userdb.TokenVerifyEmail)
	if userID == 0 {
		www.Panic(http.StatusBadRequest, "Token inválido ou expirado")
	}
	www.Check(s.userDB.SetEmailVerified(userID))
	www.SendOK(w)
}

func (s *Server) httpAuthForgotPassword(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	body := struct {
		Email string `json:"email" validate:"required,email"`
	}{}
	www.ReadJSON(w, r, &body, maxAuthBodyBytes)
	www.CheckClient(s.validate.Struct(&body))

	// Always answer OK, so this endpoint can't be used to probe for accounts.
	user, err := s.userDB.GetUserByEmail(body.Email)
	www.Check(err)
	if user != nil {
		resetToken, err := s.userDB.CreateEmailToken(user.ID, userdb.TokenPasswordReset)
		www.Check(err)
		s.Log.Infof("Password reset requested for user %v, token %v", user.ID, resetToken)
	}
	www.SendOK(w)
}

func (s *Server) httpAuthResetPassword(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	body := struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}{}
	www.ReadJSON(w, r, &body, maxAuthBodyBytes)
	www.CheckClient(s.validate.Struct(&body))

	userID := s.userDB.ConsumeEmailToken(body.Token, userdb.TokenPasswordReset)
	if userID == 0 {
		www.Panic(http.StatusBadRequest, "Token inválido ou expirado")
	}
	www.Check(s.userDB.SetPassword(userID, body.NewPassword))
	// A password reset invalidates every existing session of the account
	www.Check(s.userDB.EraseAllSessions(userID))
	www.SendOK(w)
}

// The OAuth dance itself is the backend's; we just send the browser there.
func (s *Server) httpAuthOAuthRedirect(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	provider := params.ByName("provider")
	switch provider {
	case "google", "microsoft", "linkedin":
		http.Redirect(w, r, s.backend.BaseURL+"/auth/oauth/"+provider, http.StatusTemporaryRedirect)
	default:
		www.PanicBadRequestf("Unknown OAuth provider %v", provider)
	}
}
