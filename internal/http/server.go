// Package http serves the assembled chart bundles as JSON. The dashboard is
// computed once at startup and read-only afterwards, so handlers share it
// across requests without synchronization.
package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sharptoken/internal/charts"
	"sharptoken/internal/services"
)

type Server struct {
	http.Server
	dashboard *charts.Dashboard
	reports   *services.ReportService
	index     *template.Template
}

const indexTemplate = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Sharp Token Dashboard</title></head>
<body>
<h1>Sharp Token Dashboard</h1>
<p>Generated at {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>
<ul>
{{range .Charts}}<li><a href="/api/charts/{{.Name}}">{{.Title}}</a> &mdash; {{.Summary}}</li>
{{end}}</ul>
<p><a href="/api/charts">all charts</a> &middot; <a href="/api/snapshots">snapshot history</a></p>
</body>
</html>
`

// NewServer builds the HTTP server over an assembled dashboard. The report
// service is only consulted for snapshot history; chart data never touches
// the workbook after startup.
func NewServer(addr string, dashboard *charts.Dashboard, reports *services.ReportService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		dashboard: dashboard,
		reports:   reports,
		index:     template.Must(template.New("index").Parse(indexTemplate)),
	}

	mux.HandleFunc("/", s.withRequestLog(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/charts", s.withRequestLog(s.handleCharts))
	mux.HandleFunc("/api/charts/", s.withRequestLog(s.handleChart))
	mux.HandleFunc("/api/snapshots", s.withRequestLog(s.handleSnapshots))

	return s
}

// withRequestLog adds security headers and request logging to a handler.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}
		if i := strings.Index(clientIP, ","); i != -1 {
			clientIP = strings.TrimSpace(clientIP[:i])
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		slog.InfoContext(r.Context(), "Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", rec.status,
			"client_ip", clientIP,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
