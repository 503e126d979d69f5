package server

import (
	"net/http"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"

	"github.com/uright/uright/server/userdb"
)

type notificationsResponseJSON struct {
	Notifications any `json:"notifications"`
	UnreadCount   int `json:"unreadCount"`
}

func (s *Server) httpNotificationsList(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	www.SendJSON(w, &notificationsResponseJSON{
		Notifications: s.feed.List(cred.User.ID),
		UnreadCount:   s.feed.UnreadCount(cred.User.ID),
	})
}

func (s *Server) httpNotificationsState(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	www.SendJSON(w, map[string]string{"state": s.push.State().String()})
}

func (s *Server) httpNotificationsMarkRead(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.feed.MarkRead(cred.User.ID, params.ByName("id"))
	www.SendOK(w)
}

func (s *Server) httpNotificationsClear(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	s.feed.Clear(cred.User.ID)
	www.SendOK(w)
}

// httpNotificationsWebSocket upgrades and hands the connection to the hub.
// The hub owns the connection from here; this handler returns when it dies.
func (s *Server) httpNotificationsWebSocket(w http.ResponseWriter, r *http.Request, params httprouter.Params, cred *userdb.Credentials) {
	conn, err := s.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Log.Errorf("Notification websocket upgrade failed: %v", err)
		return
	}
	s.hub.Serve(cred.User.ID, conn)
}
