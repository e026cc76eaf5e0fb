package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldcoin/idkit-go/cryptokit"
)

type testEnvelope struct {
	AppID string `json:"app_id"`
}

func TestCreatePostsEncryptedEnvelopeAndStoresRequestID(t *testing.T) {
	var captured createRequestBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/request", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(createResponseBody{RequestID: "9c3example"})
	}))
	defer srv.Close()

	sess, err := Create(context.Background(), srv.Client(), srv.URL, "app_123", testEnvelope{AppID: "app_123"})
	require.NoError(t, err)
	assert.Equal(t, "9c3example", sess.RequestID())
	assert.Equal(t, StatusWaitingForConnection, sess.Status())
	assert.NotEmpty(t, captured.IV)
	assert.NotEmpty(t, captured.Payload)

	url := sess.ConnectURL()
	assert.Contains(t, url, "https://world.org/verify?t=wld&i=9c3example&k=")
}

func TestCreateFailsOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Create(context.Background(), srv.Client(), srv.URL, "app_123", testEnvelope{})
	assert.ErrorIs(t, err, ErrBridge)
}

func newConfirmedSession(t *testing.T, statusSequence []string, legacyPayload []byte) (*Session, *httptest.Server) {
	t.Helper()
	var sess *Session
	call := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/request", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(createResponseBody{RequestID: "req-1"})
	})
	mux.HandleFunc("/response/req-1", func(w http.ResponseWriter, r *http.Request) {
		status := statusSequence[call]
		if call < len(statusSequence)-1 {
			call++
		}
		body := pollResponseBody{Status: status}
		if status == "completed" {
			nonce, err := cryptokit.GenerateNonce()
			require.NoError(t, err)
			ciphertext, err := cryptokit.Encrypt(sess.key, nonce, legacyPayload)
			require.NoError(t, err)
			body.Response = &encryptedPayload{
				IV:      cryptokit.Base64Encode(nonce),
				Payload: cryptokit.Base64Encode(ciphertext),
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
	srv := httptest.NewServer(mux)

	var err error
	sess, err = Create(context.Background(), srv.Client(), srv.URL, "app_123", testEnvelope{})
	require.NoError(t, err)
	return sess, srv
}

func TestPollWalksStateMachineToConfirmed(t *testing.T) {
	legacy := []byte(`{"proof":"p","merkle_root":"m","nullifier_hash":"n","verification_level":"orb"}`)
	sess, srv := newConfirmedSession(t, []string{"initialized", "retrieved", "completed"}, legacy)
	defer srv.Close()

	status, err := sess.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusWaitingForConnection, status)

	status, err = sess.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusAwaitingConfirmation, status)

	status, err = sess.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)
	require.NotNil(t, sess.Result())
	assert.Equal(t, "orb", sess.Result().Items[0].Identifier)
}

func TestPollMapsAppErrorToFailed(t *testing.T) {
	errPayload := []byte(`{"error_code":"user_rejected"}`)
	sess, srv := newConfirmedSession(t, []string{"completed"}, errPayload)
	defer srv.Close()

	status, err := sess.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, status)
	assert.Equal(t, ReasonAppError, sess.FailureReason())
	assert.Equal(t, "user_rejected", sess.AppErrorKind())
}

func TestPollMapsNon2xxToConnectionFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/request" {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(createResponseBody{RequestID: "req-1"})
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	sess, err := Create(context.Background(), srv.Client(), srv.URL, "app_123", testEnvelope{})
	require.NoError(t, err)

	status, err := sess.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, status)
	assert.Equal(t, ReasonConnectionFailed, sess.FailureReason())
}

func TestPollIsNoopOnceTerminal(t *testing.T) {
	errPayload := []byte(`{"error_code":"user_rejected"}`)
	sess, srv := newConfirmedSession(t, []string{"completed"}, errPayload)
	defer srv.Close()

	_, err := sess.Poll(context.Background())
	require.NoError(t, err)
	require.True(t, sess.Status().Terminal())

	status, err := sess.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, status)
}
