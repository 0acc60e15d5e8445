package httpapi

import (
	"net/http"

	"github.com/jackwardell/partypeople/internal/usecase"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sweepstake", handler.GetSweepstake)
	mux.HandleFunc("GET /v1/dates/{date}", handler.GetDate)
	mux.HandleFunc("GET /v1/users/{userID}", handler.GetUser)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}", handler.GetFixture)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	for _, job := range []usecase.JobName{usecase.JobIngest, usecase.JobMorningDigest, usecase.JobEveningDigest} {
		mux.Handle("POST /v1/internal/jobs/"+string(job), RequireInternalJobToken(internalJobToken, handler.RunJob(job)))
	}
}
