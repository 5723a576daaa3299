package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the id assigned to each request so settlement
// systems can correlate gateway calls with contract log lines.
const RequestIDHeader = "X-Request-Id"

func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, reqID)
		next.ServeHTTP(w, r)
		logrus.Infof("%s %s %s %s", reqID, r.Method, r.RequestURI, time.Since(start))
	})
}
