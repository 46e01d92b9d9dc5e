package portal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, zap.NewNop())
}

func TestClient_SendsAuthHeaders(t *testing.T) {
	var gotAuth, gotRequestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.MyGroups(context.Background(), "secret-token")

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_UnauthorizedMapsToErrAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.MyGroups(context.Background(), "expired")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestClient_ErrorStatusCarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "Неверный ключ группы"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	passkey := "wrong"
	_, err := client.Join(context.Background(), "token", 42, &passkey)

	require.Error(t, err)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusForbidden, reqErr.Status)
	assert.Equal(t, "Неверный ключ группы", reqErr.Message)
	assert.True(t, reqErr.IsForbidden())
}

func TestClient_ErrorStatusWithNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.AllGroups(context.Background(), "token")

	require.Error(t, err)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.Status)
	assert.Empty(t, reqErr.Message)
}

func TestClient_TransportFailureMapsToNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // соединение гарантированно не установится

	client := newTestClient(server.URL)
	_, err := client.Courses(context.Background(), "token")

	require.Error(t, err)
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestClient_JoinSendsNullPasskeyForPublicGroups(t *testing.T) {
	var gotBody map[string]*string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/groups/join/7", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"message": "Вы вступили в группу"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	message, err := client.Join(context.Background(), "token", 7, nil)

	require.NoError(t, err)
	assert.Equal(t, "Вы вступили в группу", message)
	require.Contains(t, gotBody, "passkey")
	assert.Nil(t, gotBody["passkey"])
}

func TestClient_JoinRequestsUnwrapsPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/groups/9/requests", r.URL.Path)
		_, _ = w.Write([]byte(`{"requests": [{"id": 1, "user": {"id": 100, "name": "Иван"}, "status": "PENDING"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	requests, err := client.JoinRequests(context.Background(), "token", 9)

	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, int64(1), requests[0].ID)
	assert.Equal(t, "Иван", requests[0].User.Name)
	assert.True(t, requests[0].IsPending())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "сообщение сервера", UserMessage(&RequestError{Status: 409, Message: "сообщение сервера"}, "fallback"))
	assert.Equal(t, "fallback", UserMessage(&RequestError{Status: 500}, "fallback"))
	assert.Equal(t, "fallback", UserMessage(errors.New("boom"), "fallback"))
}
