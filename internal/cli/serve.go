package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	wqerrors "github.com/matzehuels/wifiqr/pkg/errors"
	"github.com/matzehuels/wifiqr/pkg/observability"
	"github.com/matzehuels/wifiqr/pkg/pipeline"
	"github.com/matzehuels/wifiqr/pkg/qr"
	"github.com/matzehuels/wifiqr/pkg/wifi"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	maxBodyBytes    = 64 << 10
	shutdownTimeout = 5 * time.Second
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJPEG: "image/jpeg",
	pipeline.FormatJPG:  "image/jpeg",
	pipeline.FormatBMP:  "image/bmp",
	pipeline.FormatText: "text/plain; charset=utf-8",
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve QR generation over HTTP",
		Long: `Start a small HTTP API for generating Wi-Fi QR codes.

Endpoints:
  GET  /healthz
  POST /api/v1/payload
  POST /api/v1/qr?format=svg|png|jpeg|bmp|txt&level=low|medium|quartile|high

Optional /api/v1/qr parameters: scale, border, minversion, maxversion,
and for svg width, fg and bg.

Both POST endpoints take a JSON body:
  {"ssid": "MyNet", "password": "secret", "auth": "wpa2", "hidden": false, "quote": false}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return wqerrors.Wrap(wqerrors.ErrCodeInvalidInput, err, "listen on %s", addr)
	}

	srv := &http.Server{
		Handler:           newRouter(c.newRunner(), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	printInfo("Listening on http://%s", ln.Addr())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newRouter builds the HTTP handler.
func newRouter(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	h := &handler{runner: runner}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", h.healthz)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/payload", h.payload)
		r.Post("/qr", h.qr)
	})
	return r
}

// requestLogger logs each request and reports it to the HTTP hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hooks := observability.HTTP()
			ctx := r.Context()
			hooks.OnRequest(ctx, r.Method, r.URL.Path)

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			dur := time.Since(start)
			hooks.OnResponse(ctx, r.Method, r.URL.Path, status, dur)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", dur.Round(time.Microsecond),
				"id", middleware.GetReqID(ctx))
		})
	}
}

type handler struct {
	runner *pipeline.Runner
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) payload(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	payload, err := h.runner.Payload(r.Context(), creds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"payload": payload})
}

func (h *handler) qr(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	creds, err := decodeCredentials(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	opts := pipeline.NewOptions(creds, format)
	if s := q.Get("level"); s != "" {
		if opts.Level, err = qr.ParseLevel(s); err != nil {
			writeError(w, err)
			return
		}
	}
	if opts.Scale, err = queryInt(q.Get("scale"), opts.Scale); err != nil {
		writeError(w, err)
		return
	}
	if opts.Border, err = queryInt(q.Get("border"), opts.Border); err != nil {
		writeError(w, err)
		return
	}
	if opts.MinVersion, err = queryInt(q.Get("minversion"), 0); err != nil {
		writeError(w, err)
		return
	}
	if opts.MaxVersion, err = queryInt(q.Get("maxversion"), 0); err != nil {
		writeError(w, err)
		return
	}
	if opts.Width, err = queryInt(q.Get("width"), 0); err != nil {
		writeError(w, err)
		return
	}
	opts.Foreground = q.Get("fg")
	opts.Background = q.Get("bg")

	result, err := h.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (wifi.Credentials, error) {
	var creds wifi.Credentials
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&creds); err != nil {
		return wifi.Credentials{}, wqerrors.Wrap(wqerrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return creds, nil
}

func queryInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, wqerrors.New(wqerrors.ErrCodeInvalidInput, "invalid integer %q", s)
	}
	return n, nil
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case wqerrors.IsValidation(err):
		return http.StatusUnprocessableEntity
	case wqerrors.Is(err, wqerrors.ErrCodeDataTooLong):
		return http.StatusRequestEntityTooLarge
	case wqerrors.Is(err, wqerrors.ErrCodeInvalidInput),
		wqerrors.Is(err, wqerrors.ErrCodeInvalidFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := wqerrors.GetCode(err)
	if code == "" {
		code = wqerrors.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), map[string]string{
		"code":  string(code),
		"error": wqerrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
