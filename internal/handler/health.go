package handler

import (
	"net/http"

	"github.com/izzy358/wrap-careers/internal/server"
)

func HealthCheckHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svr.Conn.Ping(); err != nil {
			svr.Log(err, "health check unable to ping database")
			svr.TEXT(w, http.StatusInternalServerError, "KO")
			return
		}
		svr.TEXT(w, http.StatusOK, "OK")
	}
}
