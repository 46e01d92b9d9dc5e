package state

import (
	"sync"

	"github.com/Freeeeeet/studygroup_bot/internal/service"
)

// FilterStore потокобезопасное хранилище фильтров каталога по telegram ID.
// Фильтры живут до перезапуска бота и не сбрасываются отменой диалога.
type FilterStore struct {
	mu      sync.RWMutex
	filters map[int64]service.DiscoverFilter
}

// NewFilterStore создаёт новое хранилище фильтров
func NewFilterStore() *FilterStore {
	return &FilterStore{
		filters: make(map[int64]service.DiscoverFilter),
	}
}

// Get возвращает фильтр пользователя (нулевой фильтр, если не задан)
func (s *FilterStore) Get(telegramID int64) service.DiscoverFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters[telegramID]
}

// Set сохраняет фильтр пользователя
func (s *FilterStore) Set(telegramID int64, f service.DiscoverFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters[telegramID] = f
}
