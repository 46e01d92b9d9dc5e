package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/state"
	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memorySessionStore - хранилище сессий в памяти для тестов
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*model.Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[int64]*model.Session)}
}

func (s *memorySessionStore) Upsert(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.TelegramID] = &copied
	return nil
}

func (s *memorySessionStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[telegramID]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *memorySessionStore) Delete(_ context.Context, telegramID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[telegramID]
	delete(s.sessions, telegramID)
	return ok, nil
}

func (s *memorySessionStore) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

// newFakeTelegram поднимает сервер, отвечающий "ok" на любые методы Bot API
func newFakeTelegram(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		switch method {
		case "answerCallbackQuery", "deleteMessage":
			fmt.Fprint(w, `{"ok":true,"result":true}`)
		default:
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"chat":{"id":1}}}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type wizardEnv struct {
	handlers     *Handlers
	callbacks    *callbacks.Handler
	stateManager *state.Manager
	createBodies *[][]byte
}

func newWizardEnv(t *testing.T) *wizardEnv {
	t.Helper()

	var (
		mu           sync.Mutex
		createBodies [][]byte
	)
	portalSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/groups/create":
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			mu.Lock()
			createBodies = append(createBodies, body)
			mu.Unlock()
			fmt.Fprint(w, `{}`)
		case r.URL.Path == "/groups/my-groups", r.URL.Path == "/groups/all":
			fmt.Fprint(w, `[]`)
		case r.URL.Path == "/courses":
			fmt.Fprint(w, `[{"courseId":"math","courseName":"Математика"},{"courseId":"phys","courseName":"Физика"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"not found"}`)
		}
	}))
	t.Cleanup(portalSrv.Close)

	logger := zap.NewNop()
	portalClient := portal.NewClient(portalSrv.URL, logger)

	store := newMemorySessionStore()
	require.NoError(t, store.Upsert(context.Background(), &model.Session{
		TelegramID: 1,
		Token:      "test-token",
		UserID:     10,
		Name:       "Иван",
		Email:      "ivan@example.com",
		ExpiresAt:  time.Now().Add(time.Hour),
	}))

	sessionService := service.NewSessionService(store, portalClient, logger)
	directoryService := service.NewDirectoryService(portalClient, logger)
	joinService := service.NewJoinService(portalClient, directoryService, logger)
	consoleService := service.NewConsoleService(portalClient, logger)

	stateManager := state.NewManager()
	filters := state.NewFilterStore()

	cmdHandlers := NewHandlers(
		sessionService,
		directoryService,
		joinService,
		consoleService,
		stateManager,
		filters,
		logger,
	)
	callbackHandler := callbacks.NewHandler(
		sessionService,
		directoryService,
		joinService,
		consoleService,
		state.NewAdapter(stateManager),
		filters,
		logger,
	)

	return &wizardEnv{
		handlers:     cmdHandlers,
		callbacks:    callbackHandler,
		stateManager: stateManager,
		createBodies: &createBodies,
	}
}

func newTestBot(t *testing.T) *bot.Bot {
	t.Helper()
	tg := newFakeTelegram(t)
	b, err := bot.New("123456:test-token",
		bot.WithServerURL(tg.URL),
		bot.WithSkipGetMe(),
	)
	require.NoError(t, err)
	return b
}

func textUpdate(id int, text string) *models.Update {
	return &models.Update{
		ID: int64(id),
		Message: &models.Message{
			ID:   id,
			From: &models.User{ID: 1, FirstName: "Иван"},
			Chat: models.Chat{ID: 1},
			Text: text,
		},
	}
}

func callbackUpdate(data string) *models.Update {
	return &models.Update{
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			From: models.User{ID: 1, FirstName: "Иван"},
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{
					ID:   7,
					Chat: models.Chat{ID: 1},
				},
			},
			Data: data,
		},
	}
}

// Полный проход мастера создания группы: текстовые шаги перемежаются
// кнопками, и собранный черновик должен дойти до портала целиком.
func TestCreateGroupWizard_FullFlow(t *testing.T) {
	env := newWizardEnv(t)
	b := newTestBot(t)
	ctx := context.Background()

	env.handlers.HandleCreateGroup(ctx, b, textUpdate(100, "/creategroup"))
	require.Equal(t, state.StateCreateGroupName, env.stateManager.GetState(1))

	env.handlers.HandleTextMessage(ctx, b, textUpdate(101, "Матанализ"))
	require.Equal(t, state.StateCreateGroupDescription, env.stateManager.GetState(1))

	env.handlers.HandleTextMessage(ctx, b, textUpdate(102, "Готовимся к экзамену по матанализу"))
	require.Equal(t, state.StateCreateGroupButtons, env.stateManager.GetState(1))

	env.callbacks.HandleCallbackQuery(ctx, b, callbackUpdate("cg_privacy:public"))
	require.Equal(t, state.StateCreateGroupLimit, env.stateManager.GetState(1))

	env.handlers.HandleTextMessage(ctx, b, textUpdate(103, "25"))
	require.Equal(t, state.StateCreateGroupButtons, env.stateManager.GetState(1))

	// Название и описание из текстовых шагов не потерялись за кнопками
	env.callbacks.HandleCallbackQuery(ctx, b, callbackUpdate("cg_course:math"))
	env.callbacks.HandleCallbackQuery(ctx, b, callbackUpdate("cg_confirm"))

	require.Len(t, *env.createBodies, 1)
	var req portal.CreateGroupRequest
	require.NoError(t, json.Unmarshal((*env.createBodies)[0], &req))
	assert.Equal(t, "Матанализ", req.Name)
	assert.Equal(t, "Готовимся к экзамену по матанализу", req.Description)
	assert.Equal(t, model.PrivacyPublic, req.Privacy)
	assert.Nil(t, req.Passkey)
	assert.Equal(t, 25, req.MemberLimit)
	assert.Equal(t, "math", req.CourseID)

	// После подтверждения состояние мастера сброшено
	assert.Equal(t, state.StateNone, env.stateManager.GetState(1))
}

// Приватная группа без лимита: пароль и privacy выставляются кнопками,
// "без лимита" тоже кнопка - данные предыдущих шагов должны сохраниться
func TestCreateGroupWizard_PrivateNoLimit(t *testing.T) {
	env := newWizardEnv(t)
	b := newTestBot(t)
	ctx := context.Background()

	env.handlers.HandleCreateGroup(ctx, b, textUpdate(100, "/creategroup"))
	env.handlers.HandleTextMessage(ctx, b, textUpdate(101, "Физика"))
	env.handlers.HandleTextMessage(ctx, b, textUpdate(102, "Лабораторные по пятницам"))

	env.callbacks.HandleCallbackQuery(ctx, b, callbackUpdate("cg_privacy:private"))
	require.Equal(t, state.StateCreateGroupPasskey, env.stateManager.GetState(1))

	env.handlers.HandleTextMessage(ctx, b, textUpdate(103, "secret42"))
	require.Equal(t, state.StateCreateGroupLimit, env.stateManager.GetState(1))

	env.callbacks.HandleCallbackQuery(ctx, b, callbackUpdate("cg_no_limit"))
	require.Equal(t, state.StateCreateGroupButtons, env.stateManager.GetState(1))

	env.callbacks.HandleCallbackQuery(ctx, b, callbackUpdate("cg_course:phys"))
	env.callbacks.HandleCallbackQuery(ctx, b, callbackUpdate("cg_confirm"))

	require.Len(t, *env.createBodies, 1)
	var req portal.CreateGroupRequest
	require.NoError(t, json.Unmarshal((*env.createBodies)[0], &req))
	assert.Equal(t, "Физика", req.Name)
	assert.Equal(t, "Лабораторные по пятницам", req.Description)
	assert.Equal(t, model.PrivacyPrivate, req.Privacy)
	require.NotNil(t, req.Passkey)
	assert.Equal(t, "secret42", *req.Passkey)
	assert.Equal(t, 0, req.MemberLimit)
}

// /cancel обрывает мастер на любом шаге и чистит накопленные данные
func TestCreateGroupWizard_Cancel(t *testing.T) {
	env := newWizardEnv(t)
	b := newTestBot(t)
	ctx := context.Background()

	env.handlers.HandleCreateGroup(ctx, b, textUpdate(100, "/creategroup"))
	env.handlers.HandleTextMessage(ctx, b, textUpdate(101, "Матанализ"))
	env.handlers.HandleTextMessage(ctx, b, textUpdate(102, "Готовимся к экзамену"))

	env.handlers.HandleCancel(ctx, b, textUpdate(103, "/cancel"))
	assert.Equal(t, state.StateNone, env.stateManager.GetState(1))
	_, ok := env.stateManager.GetData(1, "cg_name")
	assert.False(t, ok)
	assert.Empty(t, *env.createBodies)
}
