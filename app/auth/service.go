package auth

import (
	"context"
	"net/http"

	"walletapp/app/models"
)

type Service interface {
	GetJWTVerifier() func(http.Handler) http.Handler
	GetJWTAuthenticator() func(http.Handler) http.Handler
	CreateSession(ctx context.Context, session *models.NewSession) (*models.AuthorizedSession, error)
}
