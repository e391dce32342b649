package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth"

	"walletapp/app/config"
	"walletapp/app/models"
	"walletapp/pkg/log"
	"walletapp/pkg/response"
	"walletapp/pkg/web"
)

type Manager struct {
	JWTAuth *jwtauth.JWTAuth
	Secrets config.Secrets
}

func (m *Manager) GetJWTVerifier() func(http.Handler) http.Handler {
	return jwtauth.Verifier(m.JWTAuth)
}

func (m *Manager) GetJWTAuthenticator() func(http.Handler) http.Handler {
	return Authenticator
}

// CreateSession exchanges a signed client id for an access token.
func (m *Manager) CreateSession(ctx context.Context, session *models.NewSession) (*models.AuthorizedSession, error) {
	log.AddFields(ctx, "session for", session.ClientID)

	if err := session.Validate(m.Secrets.API); err != nil {
		return nil, err
	}

	accessToken := models.NewAccessToken(session.ClientID)
	token, err := accessToken.Encode(m.JWTAuth)
	if err != nil {
		return nil, err
	}

	return &models.AuthorizedSession{
		ClientID:    session.ClientID,
		AccessToken: token,
	}, nil
}

func Authenticator(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())

		if err != nil {
			web.RenderError(w, r, response.NewError(response.CodeUnauthorized, err.Error()))
			return
		}

		if token == nil || !token.Valid {
			web.RenderError(
				w, r, response.NewError(response.CodeUnauthorized, http.StatusText(http.StatusUnauthorized)),
			)
			return
		}

		// token is authenticated, pass it through
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}
