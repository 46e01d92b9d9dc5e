package state

import (
	"testing"

	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_StateLifecycle(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateLoginEmail)
	assert.Equal(t, StateLoginEmail, sm.GetState(1))

	// состояния пользователей независимы
	assert.Equal(t, StateNone, sm.GetState(2))

	sm.ClearState(1)
	assert.Equal(t, StateNone, sm.GetState(1))
}

func TestManager_SetStateNoneDropsRecord(t *testing.T) {
	sm := NewManager()

	sm.SetState(1, StateLoginEmail)
	sm.SetData(1, "login_email", "user@example.com")

	sm.SetState(1, StateNone)

	_, ok := sm.GetData(1, "login_email")
	assert.False(t, ok)
}

func TestManager_DataLifecycle(t *testing.T) {
	sm := NewManager()

	_, ok := sm.GetData(1, "missing")
	assert.False(t, ok)

	sm.SetData(1, "join_group_id", int64(42))
	value, ok := sm.GetData(1, "join_group_id")
	require.True(t, ok)
	assert.Equal(t, int64(42), value)

	// смена состояния не трогает данные
	sm.SetState(1, StateAwaitingPasskey)
	value, ok = sm.GetData(1, "join_group_id")
	require.True(t, ok)
	assert.Equal(t, int64(42), value)

	sm.ClearState(1)
	_, ok = sm.GetData(1, "join_group_id")
	assert.False(t, ok)
}

func TestFilterStore(t *testing.T) {
	fs := NewFilterStore()

	// отсутствующий фильтр — нулевое значение
	assert.Equal(t, service.DiscoverFilter{}, fs.Get(1))

	f := service.DiscoverFilter{Search: "матанализ", MinRating: 4}
	fs.Set(1, f)
	assert.Equal(t, f, fs.Get(1))
	assert.Equal(t, service.DiscoverFilter{}, fs.Get(2))

	// сброс фильтра
	fs.Set(1, service.DiscoverFilter{})
	assert.Equal(t, service.DiscoverFilter{}, fs.Get(1))
}
