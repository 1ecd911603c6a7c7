// Package relay implements the HTTP relay between the chat client and the
// upstream model API.
package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"

	"github.com/diogo/barbchat/internal/api"
	"github.com/diogo/barbchat/internal/metrics"
	"github.com/diogo/barbchat/internal/models"
)

const (
	// MaxBodyBytes caps the chat request body
	MaxBodyBytes = 10 << 20

	// pipeBufferSize is the read size used while piping the upstream stream
	pipeBufferSize = 32 * 1024
)

// Options configures a Handler
type Options struct {
	Upstream     api.Doer
	UpstreamURL  string
	APIKey       string
	SystemPrompt string
	Logger       zerolog.Logger
}

// Handler serves the relay endpoints. It holds no per-request state.
type Handler struct {
	upstream     api.Doer
	upstreamURL  string
	apiKey       string
	systemPrompt string
	logger       zerolog.Logger
}

// NewHandler creates a new Handler
func NewHandler(opts Options) *Handler {
	upstreamURL := opts.UpstreamURL
	if upstreamURL == "" {
		upstreamURL = models.EndpointMessages
	}
	return &Handler{
		upstream:     opts.Upstream,
		upstreamURL:  upstreamURL,
		apiKey:       opts.APIKey,
		systemPrompt: opts.SystemPrompt,
		logger:       opts.Logger,
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// Health reports that the relay is up
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ForwardChat relays a chat request upstream with the persona and streaming
// enabled, then pipes the upstream response back unchanged.
func (h *Handler) ForwardChat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.ChatRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
			h.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		h.Error(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	patched, err := PatchBody(body, h.systemPrompt)
	if err != nil {
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		h.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := fhttp.NewRequestWithContext(r.Context(), fhttp.MethodPost, h.upstreamURL, bytes.NewReader(patched))
	if err != nil {
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeUpstreamError).Inc()
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	for key, value := range models.UpstreamHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("x-api-key", h.apiKey)

	start := time.Now()
	resp, err := h.upstream.Do(req)
	if err != nil {
		h.logger.Error().Err(err).Str("upstream", h.upstreamURL).Msg("upstream request failed")
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeUpstreamError).Inc()
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer resp.Body.Close()

	metrics.UpstreamLatency.Observe(time.Since(start).Seconds())
	metrics.UpstreamResponses.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		h.passError(w, resp)
		return
	}

	for key, value := range models.StreamHeaders() {
		w.Header().Set(key, value)
	}
	w.WriteHeader(http.StatusOK)

	metrics.ActiveStreams.Inc()
	defer metrics.ActiveStreams.Dec()

	n, err := pipe(w, resp.Body)
	metrics.StreamedBytes.Add(float64(n))
	if err != nil {
		// Headers are already sent; the caller just sees the stream end.
		h.logger.Warn().
			Err(err).
			Int64("bytes", n).
			Msg("stream interrupted")
		metrics.ChatRequests.WithLabelValues(metrics.OutcomeInterrupted).Inc()
		return
	}

	h.logger.Debug().Int64("bytes", n).Msg("stream complete")
	metrics.ChatRequests.WithLabelValues(metrics.OutcomeStreamed).Inc()
}

// passError returns an upstream rejection to the caller with the same status
// and body.
func (h *Handler) passError(w http.ResponseWriter, resp *fhttp.Response) {
	errBody, err := io.ReadAll(resp.Body)
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to read upstream error body")
	}

	h.logger.Warn().
		Int("status", resp.StatusCode).
		Int("body_bytes", len(errBody)).
		Msg("upstream rejected request")
	metrics.ChatRequests.WithLabelValues(metrics.OutcomeRejected).Inc()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	w.Write(errBody)
}

// pipe copies src to w, flushing after every write so each upstream chunk
// reaches the caller as soon as it arrives.
func pipe(w http.ResponseWriter, src io.Reader) (int64, error) {
	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return 0, err
	}

	buf := make([]byte, pipeBufferSize)
	var total int64
	for {
		n, err := src.Read(buf)
		if n > 0 {
			written, werr := w.Write(buf[:n])
			total += int64(written)
			if werr != nil {
				return total, werr
			}
			if ferr := rc.Flush(); ferr != nil && !errors.Is(ferr, http.ErrNotSupported) {
				return total, ferr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, err
		}
	}
}
