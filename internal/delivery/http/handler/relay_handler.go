package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"hotel-frontdesk/internal/service"
)

// RelayHandler exposes the single stable endpoint all booking reads and
// writes go through.
type RelayHandler struct {
	relay *service.RelayService
	log   *logrus.Logger
}

func NewRelayHandler(relay *service.RelayService, log *logrus.Logger) *RelayHandler {
	return &RelayHandler{relay: relay, log: log}
}

// errorEnvelope is the normalized failure shape: a debugging aid that
// keeps enough of the original request to reproduce it.
type errorEnvelope struct {
	Error   string         `json:"error"`
	Details envelopeDetail `json:"details"`
}

type envelopeDetail struct {
	Message  string         `json:"message"`
	Response interface{}    `json:"response"`
	Status   interface{}    `json:"status"`
	Config   envelopeConfig `json:"config"`
}

type envelopeConfig struct {
	Method string            `json:"method"`
	URL    string            `json:"url"`
	Params map[string]string `json:"params"`
	Body   interface{}       `json:"body"`
}

// Relay forwards the inbound method, query parameters and body to the
// upstream. Upstream responses of any status pass through unchanged;
// only transport failures are replaced with the error envelope.
func (h *RelayHandler) Relay(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeEnvelope(w, r, nil, "failed to read request body: "+err.Error())
		return
	}

	result, err := h.relay.Forward(r.Context(), r.Method, r.URL.Query(), body, r.Header.Get("Content-Type"))
	if err != nil {
		h.writeEnvelope(w, r, body, relayMessage(err))
		return
	}

	contentType := result.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(result.StatusCode)
	w.Write(result.Body)
}

// Health reports process liveness independent of upstream health.
func (h *RelayHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

func relayMessage(err error) string {
	var relayErr *service.RelayError
	if errors.As(err, &relayErr) {
		return relayErr.Message
	}
	return err.Error()
}

func (h *RelayHandler) writeEnvelope(w http.ResponseWriter, r *http.Request, body []byte, message string) {
	params := make(map[string]string)
	for key, vals := range r.URL.Query() {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}

	var bodyValue interface{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &bodyValue); err != nil {
			bodyValue = string(body)
		}
	}

	envelope := errorEnvelope{
		Error: message,
		Details: envelopeDetail{
			Message:  message,
			Response: nil,
			Status:   nil,
			Config: envelopeConfig{
				Method: r.Method,
				URL:    h.relay.UpstreamURL(),
				Params: params,
				Body:   bodyValue,
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(envelope)
}
