// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/worldcoin/idkit-go/cryptokit"
	"github.com/worldcoin/idkit-go/internal/metrics"
	"github.com/worldcoin/idkit-go/response"
	"github.com/worldcoin/idkit-go/storage"
)

// Version is the library version reported in the User-Agent header.
const Version = "0.1.0"

var userAgent = "idkit-core/" + Version

// Status is a session's position in its state machine.
type Status int

const (
	StatusWaitingForConnection Status = iota
	StatusAwaitingConfirmation
	StatusConfirmed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusWaitingForConnection:
		return "waiting_for_connection"
	case StatusAwaitingConfirmation:
		return "awaiting_confirmation"
	case StatusConfirmed:
		return "confirmed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is Confirmed or Failed.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusFailed
}

// FailureReason classifies why a session landed in StatusFailed.
type FailureReason string

const (
	ReasonNone               FailureReason = ""
	ReasonConnectionFailed   FailureReason = "connection_failed"
	ReasonUnexpectedResponse FailureReason = "unexpected_response"
	ReasonCrypto             FailureReason = "crypto"
	ReasonAppError           FailureReason = "app_error"
	ReasonTimeout            FailureReason = "timeout"
)

// Session is a single end-to-end encrypted channel between a relying party
// and one authenticator, relayed through an untrusted bridge. A session
// owns its symmetric key, its request ID and its HTTP client; it shares no
// mutable state with any other session, and its operations are not safe
// for concurrent use from multiple goroutines.
type Session struct {
	httpClient *http.Client
	baseURL    string
	key        []byte
	requestID  string

	status       Status
	reason       FailureReason
	appErrorKind string
	result       *response.Result

	audit       storage.AuditStore
	auditAppID  string
	auditAction string
}

type createRequestBody struct {
	IV      string `json:"iv"`
	Payload string `json:"payload"`
}

type createResponseBody struct {
	RequestID string `json:"request_id"`
}

type encryptedPayload struct {
	IV      string `json:"iv"`
	Payload string `json:"payload"`
}

type pollResponseBody struct {
	Status   string            `json:"status"`
	Response *encryptedPayload `json:"response,omitempty"`
}

// Create generates a fresh symmetric key, encrypts envelope, and posts it
// to the bridge's /request endpoint. httpClient may be nil, in which case
// a client with a 10 second timeout is used.
func Create(ctx context.Context, httpClient *http.Client, baseURL, appID string, envelope any, opts ...Option) (sess *Session, err error) {
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		metrics.SessionsCreated.WithLabelValues(outcome).Inc()
	}()

	canonical, err := ValidateBaseURL(baseURL, appID)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	key, err := cryptokit.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("%w: generating session key: %v", ErrCrypto, err)
	}
	nonce, err := cryptokit.GenerateNonce()
	if err != nil {
		return nil, fmt.Errorf("%w: generating session nonce: %v", ErrCrypto, err)
	}

	plaintext, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("bridge: encoding envelope: %w", err)
	}
	ciphertext, err := cryptokit.Encrypt(key, nonce, plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: encrypting envelope: %v", ErrCrypto, err)
	}

	body, err := json.Marshal(createRequestBody{
		IV:      cryptokit.Base64Encode(nonce),
		Payload: cryptokit.Base64Encode(ciphertext),
	})
	if err != nil {
		return nil, fmt.Errorf("bridge: encoding create request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, canonical+"/request", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("bridge: building create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bridge: posting create request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bridge: reading create response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: POST /request returned status %d", ErrBridge, resp.StatusCode)
	}

	var created createResponseBody
	if err := json.Unmarshal(respBytes, &created); err != nil || created.RequestID == "" {
		return nil, fmt.Errorf("%w: malformed create response", ErrBridge)
	}

	sess = &Session{
		httpClient: httpClient,
		baseURL:    canonical,
		key:        key,
		requestID:  created.RequestID,
		status:     StatusWaitingForConnection,
	}
	for _, opt := range opts {
		opt(sess)
	}
	sess.recordCreated(ctx)
	return sess, nil
}

// RequestID returns the bridge-assigned request identifier.
func (s *Session) RequestID() string { return s.requestID }

// Status returns the session's current state-machine position.
func (s *Session) Status() Status { return s.status }

// FailureReason classifies a Failed status; it is ReasonNone otherwise.
func (s *Session) FailureReason() FailureReason { return s.reason }

// AppErrorKind returns the authenticator-reported error kind when
// FailureReason is ReasonAppError.
func (s *Session) AppErrorKind() string { return s.appErrorKind }

// Result returns the normalized response once Status is Confirmed.
func (s *Session) Result() *response.Result { return s.result }

// ConnectURL builds the deep link the RP hands to the authenticator. The
// symmetric key is base64url-encoded into the k query parameter -- the
// only place it ever leaves this process.
func (s *Session) ConnectURL() string {
	q := fmt.Sprintf("t=wld&i=%s&k=%s",
		url.QueryEscape(s.requestID),
		url.QueryEscape(cryptokit.Base64URLEncode(s.key)),
	)
	if s.baseURL != DefaultBaseURL {
		q += "&b=" + url.QueryEscape(s.baseURL)
	}
	return "https://world.org/verify?" + q
}

// Poll performs a single GET against the bridge's /response/<id> endpoint
// and advances the state machine accordingly. Once the session is
// terminal, Poll is a no-op that returns the stored status without
// touching the network.
func (s *Session) Poll(ctx context.Context) (Status, error) {
	if s.status.Terminal() {
		return s.status, nil
	}

	started := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/response/"+s.requestID, nil)
	if err != nil {
		return s.status, fmt.Errorf("bridge: building poll request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// Transient transport failure: state is unchanged, caller may retry.
		return s.status, fmt.Errorf("bridge: polling: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return s.status, fmt.Errorf("bridge: reading poll response: %w", err)
	}
	metrics.PollDuration.Observe(time.Since(started).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.PollsIssued.WithLabelValues("error").Inc()
		s.fail(ctx, ReasonConnectionFailed)
		return s.status, nil
	}

	var body pollResponseBody
	if err := json.Unmarshal(respBytes, &body); err != nil {
		metrics.PollsIssued.WithLabelValues("error").Inc()
		s.fail(ctx, ReasonUnexpectedResponse)
		return s.status, fmt.Errorf("%w: decoding poll body: %v", ErrUnexpectedResponse, err)
	}
	metrics.PollsIssued.WithLabelValues(body.Status).Inc()

	switch body.Status {
	case "initialized":
		return s.status, nil
	case "retrieved":
		s.status = StatusAwaitingConfirmation
		s.recordStatus(ctx)
		return s.status, nil
	case "completed":
		if body.Response == nil {
			s.fail(ctx, ReasonUnexpectedResponse)
			return s.status, fmt.Errorf("%w: completed status without a response body", ErrUnexpectedResponse)
		}
		return s.decrypt(ctx, *body.Response)
	default:
		s.fail(ctx, ReasonUnexpectedResponse)
		return s.status, fmt.Errorf("%w: unrecognized status %q", ErrUnexpectedResponse, body.Status)
	}
}

func (s *Session) fail(ctx context.Context, reason FailureReason) {
	s.status = StatusFailed
	s.reason = reason
	metrics.SessionsTerminal.WithLabelValues("failed", string(reason)).Inc()
	s.recordStatus(ctx)
}

func (s *Session) decrypt(ctx context.Context, payload encryptedPayload) (Status, error) {
	iv, err := cryptokit.Base64Decode(payload.IV)
	if err != nil {
		s.fail(ctx, ReasonUnexpectedResponse)
		return s.status, fmt.Errorf("bridge: decoding response iv: %w", err)
	}
	ciphertext, err := cryptokit.Base64Decode(payload.Payload)
	if err != nil {
		s.fail(ctx, ReasonUnexpectedResponse)
		return s.status, fmt.Errorf("bridge: decoding response payload: %w", err)
	}

	plaintext, err := cryptokit.Decrypt(s.key, iv, ciphertext)
	if err != nil {
		s.fail(ctx, ReasonCrypto)
		return s.status, fmt.Errorf("%w: decrypting response: %v", ErrCrypto, err)
	}

	result, appErr, err := response.Normalize(plaintext)
	if err != nil {
		s.fail(ctx, ReasonUnexpectedResponse)
		return s.status, fmt.Errorf("bridge: normalizing response: %w", err)
	}
	if appErr != nil {
		s.fail(ctx, ReasonAppError)
		s.appErrorKind = appErr.Kind
		return s.status, nil
	}

	s.status = StatusConfirmed
	s.result = result
	metrics.SessionsTerminal.WithLabelValues("confirmed", "").Inc()
	s.recordStatus(ctx)
	return s.status, nil
}
