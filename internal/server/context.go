package server

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
