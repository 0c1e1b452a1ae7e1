package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// RelayService forwards one inbound request to the single configured
// upstream endpoint. Exactly one upstream call per inbound call: no
// retry, no backoff, no circuit-breaking.
type RelayService struct {
	upstreamURL string
	client      *http.Client
	log         *logrus.Logger
}

// RelayResult is an upstream HTTP response of any status; the caller
// passes status and body through unchanged.
type RelayResult struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// RelayError is a transport-level failure: the upstream never produced
// an HTTP response. It keeps enough of the original request to
// reproduce the call.
type RelayError struct {
	Message string
	Method  string
	URL     string
	Params  url.Values
	Body    []byte
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("upstream %s %s failed: %s", e.Method, e.URL, e.Message)
}

func NewRelayService(upstreamURL string, log *logrus.Logger) *RelayService {
	return &RelayService{
		upstreamURL: upstreamURL,
		client:      &http.Client{Timeout: 30 * time.Second},
		log:         log,
	}
}

func (s *RelayService) UpstreamURL() string {
	return s.upstreamURL
}

// Forward relays method, query parameters and (for non-read methods)
// body to the upstream. A non-nil RelayResult is returned for every
// upstream HTTP response regardless of status code; a *RelayError is
// returned when no response was received at all.
func (s *RelayService) Forward(ctx context.Context, method string, params url.Values, body []byte, contentType string) (*RelayResult, error) {
	target := s.upstreamURL
	if encoded := params.Encode(); encoded != "" {
		target = target + "?" + encoded
	}

	s.log.Infof("Relay: %s %s (%d query params, %d body bytes)", method, s.upstreamURL, len(params), len(body))

	var reqBody io.Reader
	if len(body) > 0 && method != http.MethodGet && method != http.MethodHead {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		s.log.Warnf("Relay: failed to build upstream request: %+v", err)
		return nil, &RelayError{Message: err.Error(), Method: method, URL: s.upstreamURL, Params: params, Body: body}
	}
	if reqBody != nil {
		if contentType == "" {
			contentType = "application/json"
		}
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warnf("Relay: upstream unreachable: %+v", err)
		return nil, &RelayError{Message: err.Error(), Method: method, URL: s.upstreamURL, Params: params, Body: body}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		s.log.Warnf("Relay: failed reading upstream response: %+v", err)
		return nil, &RelayError{Message: err.Error(), Method: method, URL: s.upstreamURL, Params: params, Body: body}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		s.log.Infof("Relay: upstream replied %d (%d bytes)", resp.StatusCode, len(respBody))
	} else {
		s.log.Warnf("Relay: upstream rejected with %d: %s", resp.StatusCode, truncate(respBody, 256))
	}

	return &RelayResult{
		StatusCode:  resp.StatusCode,
		Body:        respBody,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
