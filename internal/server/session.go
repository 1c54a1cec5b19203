package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/goliatone/go-regform/pkg/form"
)

// SessionCookie carries the visitor's session id.
const SessionCookie = "regform_session"

// session is one visitor's form plus the token their POSTs must echo.
type session struct {
	id   string
	csrf string
	form *form.Form
}

type sessionStore struct {
	cache   *gocache.Cache
	newForm func(id string) *form.Form
	opened  func()
}

func newSessionStore(ttl time.Duration, newForm func(id string) *form.Form, opened, closed func()) *sessionStore {
	cleanup := ttl / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}
	c := gocache.New(ttl, cleanup)
	c.OnEvicted(func(string, interface{}) {
		closed()
	})
	return &sessionStore{cache: c, newForm: newForm, opened: opened}
}

// get returns a live session and slides its expiry.
func (s *sessionStore) get(id string) (*session, bool) {
	if id == "" {
		return nil, false
	}
	value, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	sess, ok := value.(*session)
	if !ok {
		return nil, false
	}
	s.cache.Set(id, sess, gocache.DefaultExpiration)
	return sess, true
}

func (s *sessionStore) create() *session {
	id := uuid.NewString()
	sess := &session{
		id:   id,
		csrf: uuid.NewString(),
		form: s.newForm(id),
	}
	s.cache.Set(id, sess, gocache.DefaultExpiration)
	s.opened()
	return sess
}

func (s *sessionStore) count() int {
	return s.cache.ItemCount()
}

// resolve finds the request's session, starting a new one (and setting the
// cookie) when the cookie is missing or stale.
func (srv *Server) resolve(w http.ResponseWriter, r *http.Request) *session {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if sess, ok := srv.sessions.get(cookie.Value); ok {
			return sess
		}
	}
	sess := srv.sessions.create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		Secure:   srv.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	srv.logger.Debug("session opened", "session", sess.id)
	return sess
}
