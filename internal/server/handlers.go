package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

const (
	// CSRFHeader carries the session token on JSON API writes.
	CSRFHeader = "X-CSRF-Token"

	actionField    = "action"
	actionValidate = "validate"
	maxBodyBytes   = 64 << 10
)

// stateResponse is the JSON API envelope.
type stateResponse struct {
	State     form.Snapshot `json:"state"`
	CanSubmit bool          `json:"canSubmit"`
	CSRFToken string        `json:"csrfToken"`
	Error     string        `json:"error,omitempty"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := s.resolve(w, r)
	s.renderPage(w, r, sess, http.StatusOK)
}

// handlePost applies every submitted control, then either re-renders
// (action=validate) or submits. An unchecked checkbox is absent from the
// body and counts as false.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	sess := s.resolve(w, r)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}
	if r.PostForm.Get(render.DefaultCSRFField) != sess.csrf {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	for _, field := range s.prepared.Model.Fields {
		if err := sess.form.Change(inputFromForm(field, r)); err != nil {
			s.logger.Warn("apply form field", "field", field.Name, "error", err)
		}
	}

	if r.PostForm.Get(actionField) == actionValidate {
		s.renderPage(w, r, sess, http.StatusOK)
		return
	}

	status := http.StatusOK
	if _, err := sess.form.Submit(r.Context()); err != nil {
		status = submitStatus(err)
	}
	s.renderPage(w, r, sess, status)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.resolve(w, r)
	s.writeState(w, sess, http.StatusOK, nil)
}

func (s *Server) handleChange(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.apiSession(w, r)
	if !ok {
		return
	}

	var in form.Input
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		s.writeState(w, sess, http.StatusBadRequest, err)
		return
	}
	if err := sess.form.Change(in); err != nil {
		s.writeState(w, sess, http.StatusBadRequest, err)
		return
	}
	s.writeState(w, sess, http.StatusOK, nil)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.apiSession(w, r)
	if !ok {
		return
	}
	if _, err := sess.form.Submit(r.Context()); err != nil {
		s.writeState(w, sess, submitStatus(err), err)
		return
	}
	s.writeState(w, sess, http.StatusOK, nil)
}

// apiSession requires an existing session and its CSRF header.
func (s *Server) apiSession(w http.ResponseWriter, r *http.Request) (*session, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, stateResponse{Error: "session required"})
		return nil, false
	}
	sess, ok := s.sessions.get(cookie.Value)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, stateResponse{Error: "session expired"})
		return nil, false
	}
	if r.Header.Get(CSRFHeader) != sess.csrf {
		writeJSON(w, http.StatusForbidden, stateResponse{Error: "invalid csrf token"})
		return nil, false
	}
	return sess, true
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, sess *session, status int) {
	opts := render.OptionsFromSnapshot(sess.form.Snapshot())
	opts.Action = "/"
	opts.Hidden = render.MergeHiddenFields(nil, render.CSRFToken("", sess.csrf))

	out, contentType, err := s.registry.Render(r.Context(), s.rendererName, s.prepared.Model, opts)
	if err != nil {
		s.logger.Error("render form", "error", err)
		http.Error(w, "could not render form", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func (s *Server) writeState(w http.ResponseWriter, sess *session, status int, err error) {
	snap := sess.form.Snapshot()
	resp := stateResponse{
		State:     snap,
		CanSubmit: snap.CanSubmit(),
		CSRFToken: sess.csrf,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// submitStatus maps a refused submit onto a status code. Remote failures are
// not errors here: they settle into the snapshot's failure message.
func submitStatus(err error) int {
	switch {
	case errors.Is(err, form.ErrInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, form.ErrSubmitInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func inputFromForm(field model.Field, r *http.Request) form.Input {
	raw := r.PostForm.Get(field.Name)
	switch field.Widget {
	case model.WidgetCheckbox:
		checked, err := strconv.ParseBool(raw)
		if err != nil {
			checked = strings.EqualFold(raw, "on")
		}
		return form.Checkbox(field.Name, checked)
	case model.WidgetRadio:
		return form.Input{Name: field.Name, Type: form.InputRadio, Value: raw}
	case model.WidgetSelect:
		return form.Input{Name: field.Name, Type: form.InputSelect, Value: raw}
	default:
		return form.Text(field.Name, raw)
	}
}
