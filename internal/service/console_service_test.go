package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newConsoleService(serverURL string) *ConsoleService {
	return NewConsoleService(portal.NewClient(serverURL, zap.NewNop()), zap.NewNop())
}

func adminGroupView() *GroupView {
	return &GroupView{
		Group: model.Group{
			GroupID:   5,
			Name:      "Матанализ",
			CreatedBy: &model.GroupCreator{UserID: 100, Name: "Создатель"},
		},
		Members: []model.Member{
			{UserID: 100, Name: "Создатель", Role: model.RoleAdmin},
			{UserID: 200, Name: "Админ", Role: model.RoleAdmin},
			{UserID: 300, Name: "Участник", Role: model.RoleMember},
		},
		ViewerRole: model.RoleAdmin,
	}
}

func TestConsoleService_LoadGroupToleratesForbiddenRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/groups/5":
			_, _ = w.Write([]byte(`{"groupId": 5, "name": "Матанализ", "privacy": "private"}`))
		case "/groups/5/members":
			_, _ = w.Write([]byte(`[{"userId": 300, "name": "Участник", "role": "MEMBER"}]`))
		case "/groups/5/requests":
			// не-админу портал отказывает в просмотре заявок
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message": "Недостаточно прав"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	svc := newConsoleService(server.URL)
	view, err := svc.LoadGroup(context.Background(), "token", 5, 300)

	require.NoError(t, err)
	assert.Equal(t, "Матанализ", view.Group.Name)
	assert.Nil(t, view.Requests)
	assert.Equal(t, model.RoleMember, view.ViewerRole)
	assert.False(t, view.IsViewerAdmin())
}

func TestConsoleService_LoadGroupSetsViewerRole(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/groups/5":
			_, _ = w.Write([]byte(`{"groupId": 5, "name": "Матанализ"}`))
		case "/groups/5/members":
			_, _ = w.Write([]byte(`[{"userId": 200, "name": "Админ", "role": "ADMIN"}]`))
		case "/groups/5/requests":
			_, _ = w.Write([]byte(`{"requests": [{"id": 1, "user": {"id": 300, "name": "Кандидат"}, "status": "PENDING"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	svc := newConsoleService(server.URL)
	view, err := svc.LoadGroup(context.Background(), "token", 5, 200)

	require.NoError(t, err)
	assert.True(t, view.IsViewerAdmin())
	require.Len(t, view.Requests, 1)
	require.NotNil(t, view.FindRequest(1))
	assert.Nil(t, view.FindRequest(2))
}

func TestConsoleService_ChangeRoleGuards(t *testing.T) {
	var requestCount atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
	}))
	defer server.Close()

	svc := newConsoleService(server.URL)
	view := adminGroupView()
	ctx := context.Background()

	// роль создателя защищена
	err := svc.ChangeRole(ctx, "token", view, 100, 200, model.RoleMember)
	assert.ErrorIs(t, err, ErrCreatorRole)

	// собственная роль защищена
	err = svc.ChangeRole(ctx, "token", view, 200, 200, model.RoleMember)
	assert.ErrorIs(t, err, ErrSelfRole)

	// роль вне белого списка
	err = svc.ChangeRole(ctx, "token", view, 300, 200, "SUPERUSER")
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)

	// ни одна из проверок не дошла до сети
	assert.Equal(t, int64(0), requestCount.Load())
}

func TestConsoleService_ChangeRoleSendsRequest(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPut, r.Method)
	}))
	defer server.Close()

	svc := newConsoleService(server.URL)
	err := svc.ChangeRole(context.Background(), "token", adminGroupView(), 300, 200, model.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, "/groups/5/members/300/role", gotPath)
}

func TestConsoleService_RemoveMemberGuardsCreator(t *testing.T) {
	var requestCount atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
	}))
	defer server.Close()

	svc := newConsoleService(server.URL)
	_, err := svc.RemoveMember(context.Background(), "token", adminGroupView(), 100, 200)

	assert.ErrorIs(t, err, ErrCreatorRemove)
	assert.Equal(t, int64(0), requestCount.Load())
}

func TestConsoleService_RemoveSelfUsesLeaveEndpoint(t *testing.T) {
	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{"message": "Вы покинули группу"}`))
	}))
	defer server.Close()

	svc := newConsoleService(server.URL)
	message, err := svc.RemoveMember(context.Background(), "token", adminGroupView(), 200, 200)

	require.NoError(t, err)
	assert.Equal(t, "Вы покинули группу", message)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/groups/leave/5", gotPath)
}

func TestConsoleService_UpdateDetailsRejectsEmptyFieldsWithoutNetworkCall(t *testing.T) {
	var requestCount atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
	}))
	defer server.Close()

	svc := newConsoleService(server.URL)
	ctx := context.Background()

	var valErr *ValidationError
	assert.ErrorAs(t, svc.UpdateDetails(ctx, "token", 5, "", "описание"), &valErr)
	assert.ErrorAs(t, svc.UpdateDetails(ctx, "token", 5, "название", "   "), &valErr)
	assert.Equal(t, int64(0), requestCount.Load())
}

func TestConsoleService_CreateGroupValidation(t *testing.T) {
	var requestCount atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
	}))
	defer server.Close()

	svc := newConsoleService(server.URL)
	ctx := context.Background()

	valid := portal.CreateGroupRequest{
		Name:        "Матанализ",
		Description: "Готовимся к экзамену",
		Privacy:     model.PrivacyPublic,
		CourseID:    "math",
	}

	tests := []struct {
		name   string
		mutate func(*portal.CreateGroupRequest)
	}{
		{"пустое название", func(r *portal.CreateGroupRequest) { r.Name = "   " }},
		{"пустое описание", func(r *portal.CreateGroupRequest) { r.Description = "" }},
		{"недопустимая приватность", func(r *portal.CreateGroupRequest) { r.Privacy = "secret" }},
		{"пустой ключ у приватной", func(r *portal.CreateGroupRequest) {
			r.Privacy = model.PrivacyPrivate
			empty := "  "
			r.Passkey = &empty
		}},
		{"отрицательный лимит", func(r *portal.CreateGroupRequest) { r.MemberLimit = -1 }},
		{"без курса", func(r *portal.CreateGroupRequest) { r.CourseID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := svc.CreateGroup(ctx, "token", req)
			var valErr *ValidationError
			assert.ErrorAs(t, err, &valErr)
		})
	}
	assert.Equal(t, int64(0), requestCount.Load())
}

func TestConsoleService_CreateGroupDropsPasskeyForPublic(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer server.Close()

	svc := newConsoleService(server.URL)
	passkey := "secret"
	err := svc.CreateGroup(context.Background(), "token", portal.CreateGroupRequest{
		Name:        "Матанализ",
		Description: "Готовимся к экзамену",
		Privacy:     model.PrivacyPublic,
		Passkey:     &passkey,
		CourseID:    "math",
	})

	require.NoError(t, err)
	assert.NotContains(t, string(gotBody), "passkey")
}

func TestConsoleService_ResolveRequestRejectsUnknownAction(t *testing.T) {
	var requestCount atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
	}))
	defer server.Close()

	svc := newConsoleService(server.URL)
	err := svc.ResolveRequest(context.Background(), "token", 5, 1, "MAYBE")

	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Equal(t, int64(0), requestCount.Load())
}

func TestConsoleService_ResolveRequestInFlightGuard(t *testing.T) {
	var requestCount atomic.Int64
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		<-release
	}))
	defer server.Close()

	svc := newConsoleService(server.URL)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- svc.ResolveRequest(ctx, "token", 5, 1, model.RequestStatusApproved)
	}()

	require.Eventually(t, func() bool { return requestCount.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// повторное нажатие по той же заявке блокируется локально
	err := svc.ResolveRequest(ctx, "token", 5, 1, model.RequestStatusDenied)
	require.Error(t, err)
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int64(1), requestCount.Load())
}
