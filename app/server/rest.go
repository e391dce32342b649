package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"walletapp/app/auth"
	"walletapp/app/confirmation"
	"walletapp/app/models"
	"walletapp/app/notifier"
	"walletapp/pkg/web"
)

const (
	apiPrefix       = "/api/v1"
	signatureHeader = "x-signature"
)

// Rest is a gateway for incoming HTTP requests
type Rest struct {
	Router       chi.Router
	Auth         auth.Service
	Notifier     notifier.Service
	Confirmation confirmation.Service
}

func (s *Rest) Route() {
	s.Router.Route(apiPrefix, func(r chi.Router) {
		// semi-public routes (signature required)
		r.Post("/session", s.createSession)
		r.Post("/waitflag/clear", s.clearWaitFlag)

		// private routes
		r.Group(func(r chi.Router) {
			r.Use(s.Auth.GetJWTVerifier(), s.Auth.GetJWTAuthenticator())

			r.Get("/subscribe", s.subscribe)

			r.Post("/confirmations", s.openConfirmation)
			r.Get("/confirmations/{id}", s.confirmationRows)
			r.Post("/confirmations/{id}/perform", s.performConfirmation)
			r.Post("/confirmations/{id}/localize", s.localizeConfirmation)
			r.Delete("/confirmations/{id}", s.closeConfirmation)

			r.Get("/attempts", s.attemptHistory)
		})
	})
}

func (s *Rest) createSession(w http.ResponseWriter, r *http.Request) {
	in := new(models.NewSession)
	if err := render.DecodeJSON(r.Body, in); err != nil {
		web.RenderError(w, r, err)
		return
	}
	in.Signature = r.Header.Get(signatureHeader)

	out, err := s.Auth.CreateSession(r.Context(), in)
	if err != nil {
		web.RenderError(w, r, err)
		return
	}

	web.RenderResult(w, r, out)
}

func (s *Rest) clearWaitFlag(w http.ResponseWriter, r *http.Request) {
	in := new(models.ClearWaitFlag)
	if err := render.DecodeJSON(r.Body, in); err != nil {
		web.RenderError(w, r, err)
		return
	}
	in.Signature = r.Header.Get(signatureHeader)

	if err := s.Confirmation.ClearWaitFlag(r.Context(), in); err != nil {
		web.RenderError(w, r, err)
		return
	}

	web.RenderResult(w, r, struct{}{})
}

func (s *Rest) subscribe(w http.ResponseWriter, r *http.Request) {
	accessToken, err := models.AccessTokenFromContext(r.Context())
	if err != nil {
		web.RenderError(w, r, err)
		return
	}

	if err := s.Notifier.Subscribe(r.Context(), &models.NewSubscription{
		ClientID:       accessToken.ClientID,
		ResponseWriter: w,
		Request:        r,
	}); err != nil {
		web.RenderError(w, r, err)
		return
	}
}

func (s *Rest) openConfirmation(w http.ResponseWriter, r *http.Request) {
	accessToken, err := models.AccessTokenFromContext(r.Context())
	if err != nil {
		web.RenderError(w, r, err)
		return
	}

	in := new(models.NewConfirmation)
	if err := render.DecodeJSON(r.Body, in); err != nil {
		web.RenderError(w, r, err)
		return
	}
	in.ClientID = accessToken.ClientID

	out, err := s.Confirmation.Open(r.Context(), in)
	if err != nil {
		web.RenderError(w, r, err)
		return
	}

	web.RenderResult(w, r, out)
}

func (s *Rest) confirmationRows(w http.ResponseWriter, r *http.Request) {
	accessToken, err := models.AccessTokenFromContext(r.Context())
	if err != nil {
		web.RenderError(w, r, err)
		return
	}

	in := &models.ConfirmationFilter{
		ClientID: accessToken.ClientID,
		ID:       chi.URLParam(r, "id"),
	}

	out, err := s.Confirmation.Rows(r.Context(), in)
	if err != nil {
		web.RenderError(w, r, err)
		return
	}

	web.RenderResult(w, r, out)
}

func (s *Rest) performConfirmation(w http.ResponseWriter, r *http.Request) {
	accessToken, err := models.AccessTokenFromContext(r.Context())
	if err != nil {
		web.RenderError(w, r, err)
		return
	}

	in := &models.ConfirmationFilter{
		ClientID: accessToken.ClientID,
		ID:       chi.URLParam(r, "id"),
	}

	if err := s.Confirmation.Perform(r.Context(), in); err != nil {
		web.RenderError(w, r, err)
		return
	}

	web.RenderResult(w, r, struct{}{})
}

func (s *Rest) localizeConfirmation(w http.ResponseWriter, r *http.Request) {
	accessToken, err := models.AccessTokenFromContext(r.Context())
	if err != nil {
		web.RenderError(w, r, err)
		return
	}

	in := new(models.Localization)
	if err := render.DecodeJSON(r.Body, in); err != nil {
		web.RenderError(w, r, err)
		return
	}
	in.ClientID = accessToken.ClientID
	in.ID = chi.URLParam(r, "id")

	out, err := s.Confirmation.Localize(r.Context(), in)
	if err != nil {
		web.RenderError(w, r, err)
		return
	}

	web.RenderResult(w, r, out)
}

func (s *Rest) closeConfirmation(w http.ResponseWriter, r *http.Request) {
	accessToken, err := models.AccessTokenFromContext(r.Context())
	if err != nil {
		web.RenderError(w, r, err)
		return
	}

	in := &models.ConfirmationFilter{
		ClientID: accessToken.ClientID,
		ID:       chi.URLParam(r, "id"),
	}

	if err := s.Confirmation.Close(r.Context(), in); err != nil {
		web.RenderError(w, r, err)
		return
	}

	web.RenderResult(w, r, struct{}{})
}

func (s *Rest) attemptHistory(w http.ResponseWriter, r *http.Request) {
	accessToken, err := models.AccessTokenFromContext(r.Context())
	if err != nil {
		web.RenderError(w, r, err)
		return
	}

	var skip uint64
	qskip, ok := r.URL.Query()["skip"]
	if ok && len(qskip) > 0 {
		skip, _ = strconv.ParseUint(qskip[0], 10, 64)
	}

	var limit *uint64
	qlimit, ok := r.URL.Query()["limit"]
	if ok && len(qlimit) > 0 {
		tmpLimit, _ := strconv.ParseUint(qlimit[0], 10, 64)
		limit = &tmpLimit
	}

	in := &models.AttemptHistoryFilter{
		ClientID: accessToken.ClientID,
		Skip:     skip,
		Limit:    limit,
	}

	out, err := s.Confirmation.AttemptHistory(r.Context(), in)
	if err != nil {
		web.RenderError(w, r, err)
		return
	}

	web.RenderResult(w, r, out)
}
