package http

import (
	"encoding/json"
	"net/http"
	"time"
)

const (
	StatusOK       = "ok"
	StatusNotReady = "not ready"
)

// Report тело ответа health endpoint
type Report struct {
	Status     string            `json:"status"`
	Uptime     string            `json:"uptime,omitempty"`
	Components map[string]string `json:"components,omitempty"`
}

// Option настраивает Handler
type Option func(*options)

type options struct {
	startedAt  time.Time
	components map[string]string
}

// WithStartTime добавляет в ответ uptime с момента t
func WithStartTime(t time.Time) Option {
	return func(o *options) { o.startedAt = t }
}

// WithComponent добавляет статичное описание компонента (например, режим телеметрии)
func WithComponent(name, state string) Option {
	return func(o *options) {
		if o.components == nil {
			o.components = map[string]string{}
		}
		o.components[name] = state
	}
}

// Handler возвращает HTTP handler для health check endpoint.
// 200 {"status":"ok"}, если readiness не указана или вернула true,
// иначе 503 {"status":"not ready"}.
func Handler(readiness func() bool, opts ...Option) http.HandlerFunc {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		report := Report{Status: StatusOK, Components: o.components}
		if !o.startedAt.IsZero() {
			report.Uptime = time.Since(o.startedAt).Truncate(time.Second).String()
		}

		status := http.StatusOK
		if readiness != nil && !readiness() {
			report.Status = StatusNotReady
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	}
}
