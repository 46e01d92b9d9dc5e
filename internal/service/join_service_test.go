package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name  string
		group model.Group
		want  JoinMode
	}{
		{"публичная группа", model.Group{Privacy: model.PrivacyPublic}, JoinDirect},
		{"публичная с ключом в данных", model.Group{Privacy: model.PrivacyPublic, HasPasskey: true}, JoinDirect},
		{"приватная с ключом", model.Group{Privacy: model.PrivacyPrivate, HasPasskey: true}, JoinWithPasskey},
		{"приватная без ключа", model.Group{Privacy: model.PrivacyPrivate}, JoinByRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(&tt.group))
		})
	}
}

// joinTestServer считает join-запросы и отдаёт валидный срез каталога
func joinTestServer(t *testing.T, joinCount *atomic.Int64, onJoin http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/groups/join/"):
			joinCount.Add(1)
			onJoin(w, r)
		case r.URL.Path == "/groups/my-groups", r.URL.Path == "/groups/all":
			_, _ = w.Write([]byte(`[]`))
		case r.URL.Path == "/courses":
			_, _ = w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newJoinService(serverURL string) *JoinService {
	client := portal.NewClient(serverURL, zap.NewNop())
	directory := NewDirectoryService(client, zap.NewNop())
	return NewJoinService(client, directory, zap.NewNop())
}

func TestJoinService_SubmitPublicGroup(t *testing.T) {
	var joinCount atomic.Int64
	var gotBody map[string]*string

	server := joinTestServer(t, &joinCount, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"message": "Вы вступили в группу"}`))
	})
	defer server.Close()

	svc := newJoinService(server.URL)
	group := &model.Group{GroupID: 7, Privacy: model.PrivacyPublic}

	outcome, err := svc.Submit(context.Background(), "token", group, nil)

	require.NoError(t, err)
	assert.False(t, outcome.Requested)
	assert.Equal(t, "Вы вступили в группу", outcome.Message)
	require.NotNil(t, outcome.Snapshot)
	assert.Equal(t, int64(1), joinCount.Load())
	require.Contains(t, gotBody, "passkey")
	assert.Nil(t, gotBody["passkey"])
}

func TestJoinService_SubmitRequestModeMarksRequested(t *testing.T) {
	var joinCount atomic.Int64

	server := joinTestServer(t, &joinCount, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": "Заявка отправлена"}`))
	})
	defer server.Close()

	svc := newJoinService(server.URL)
	group := &model.Group{GroupID: 7, Privacy: model.PrivacyPrivate}

	outcome, err := svc.Submit(context.Background(), "token", group, nil)

	require.NoError(t, err)
	assert.True(t, outcome.Requested)
	assert.Equal(t, "Заявка отправлена", outcome.Message)
}

func TestJoinService_EmptyPasskeyRejectedWithoutNetworkCall(t *testing.T) {
	var joinCount atomic.Int64

	server := joinTestServer(t, &joinCount, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": "ok"}`))
	})
	defer server.Close()

	svc := newJoinService(server.URL)
	group := &model.Group{GroupID: 7, Privacy: model.PrivacyPrivate, HasPasskey: true}

	for _, passkey := range []*string{nil, strPtr(""), strPtr("   ")} {
		outcome, err := svc.Submit(context.Background(), "token", group, passkey)

		require.Error(t, err)
		assert.Nil(t, outcome)
		var valErr *ValidationError
		assert.ErrorAs(t, err, &valErr)
	}
	assert.Equal(t, int64(0), joinCount.Load())
}

func TestJoinService_WrongPasskeySurfacesServerMessage(t *testing.T) {
	var joinCount atomic.Int64

	server := joinTestServer(t, &joinCount, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "Неверный ключ группы"}`))
	})
	defer server.Close()

	svc := newJoinService(server.URL)
	group := &model.Group{GroupID: 7, Privacy: model.PrivacyPrivate, HasPasskey: true}

	outcome, err := svc.Submit(context.Background(), "token", group, strPtr("wrong"))

	require.Error(t, err)
	assert.Nil(t, outcome)
	var reqErr *portal.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "Неверный ключ группы", reqErr.Message)
}

func TestJoinService_EmptyTokenRejectedBeforeIO(t *testing.T) {
	var joinCount atomic.Int64

	server := joinTestServer(t, &joinCount, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": "ok"}`))
	})
	defer server.Close()

	svc := newJoinService(server.URL)
	group := &model.Group{GroupID: 7, Privacy: model.PrivacyPublic}

	outcome, err := svc.Submit(context.Background(), "", group, nil)

	require.Error(t, err)
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, portal.ErrAuth)
	assert.Equal(t, int64(0), joinCount.Load())
}

func TestJoinService_InFlightGuardBlocksSameGroup(t *testing.T) {
	var joinCount atomic.Int64
	release := make(chan struct{})

	server := joinTestServer(t, &joinCount, func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"message": "ok"}`))
	})
	defer server.Close()

	svc := newJoinService(server.URL)
	group := &model.Group{GroupID: 7, Privacy: model.PrivacyPublic}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), "token", group, nil)
		done <- err
	}()

	// ждём, пока первый Submit повиснет на сервере
	require.Eventually(t, func() bool { return svc.InFlight(7) }, 2*time.Second, 10*time.Millisecond)

	_, err := svc.Submit(context.Background(), "token", group, nil)
	require.Error(t, err)
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, svc.InFlight(7))
	assert.Equal(t, int64(1), joinCount.Load())
}

func strPtr(s string) *string {
	return &s
}
