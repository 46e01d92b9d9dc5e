package service

import (
	"context"
	"strings"
	"sync"

	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JoinMode способ вступления в группу
type JoinMode int

const (
	// JoinDirect публичная группа, вступление без ключа и подтверждений
	JoinDirect JoinMode = iota
	// JoinWithPasskey приватная группа с ключом, нужен ввод passkey
	JoinWithPasskey
	// JoinByRequest приватная группа без ключа, создаётся заявка админам
	JoinByRequest
)

// Decide выбирает способ вступления по privacy и hasPasskey
func Decide(g *model.Group) JoinMode {
	if g.IsPublic() {
		return JoinDirect
	}
	if g.HasPasskey {
		return JoinWithPasskey
	}
	return JoinByRequest
}

// JoinOutcome результат успешного вступления/заявки
type JoinOutcome struct {
	// Requested true, если создана заявка, а не членство
	Requested bool
	// Message сообщение сервера
	Message string
	// Snapshot свежий срез каталога после операции
	Snapshot *Snapshot
}

// JoinService контроллер вступления в группы. Отслеживает незавершённые
// отправки по ID группы: повторная отправка по той же группе блокируется,
// по разным группам отправки идут параллельно.
type JoinService struct {
	portal    *portal.Client
	directory *DirectoryService
	logger    *zap.Logger

	mu       sync.Mutex
	inFlight map[int64]bool
}

func NewJoinService(portalClient *portal.Client, directory *DirectoryService, logger *zap.Logger) *JoinService {
	return &JoinService{
		portal:    portalClient,
		directory: directory,
		logger:    logger,
		inFlight:  make(map[int64]bool),
	}
}

// InFlight проверяет, идёт ли сейчас отправка по этой группе
func (s *JoinService) InFlight(groupID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[groupID]
}

// begin помечает группу как "в работе". false — отправка уже идёт.
func (s *JoinService) begin(groupID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[groupID] {
		return false
	}
	s.inFlight[groupID] = true
	return true
}

func (s *JoinService) finish(groupID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, groupID)
}

// Submit отправляет вступление/заявку и перечитывает срез каталога.
// Для JoinWithPasskey пустой ключ отклоняется локально, без сетевого вызова.
// Без токена отправка прерывается до любого сетевого вызова.
func (s *JoinService) Submit(ctx context.Context, token string, group *model.Group, passkey *string) (*JoinOutcome, error) {
	if token == "" {
		return nil, portal.ErrAuth
	}

	mode := Decide(group)

	if mode == JoinWithPasskey {
		if passkey == nil || strings.TrimSpace(*passkey) == "" {
			return nil, newValidationError("Ключ группы не может быть пустым")
		}
	}
	if mode != JoinWithPasskey {
		// Публичные группы и заявки идут без ключа
		passkey = nil
	}

	if !s.begin(group.GroupID) {
		return nil, newValidationError("Запрос по этой группе уже обрабатывается")
	}
	defer s.finish(group.GroupID)

	attemptID := uuid.New()
	s.logger.Info("Submitting join",
		zap.String("attempt_id", attemptID.String()),
		zap.Int64("group_id", group.GroupID),
		zap.Int("mode", int(mode)))

	message, err := s.portal.Join(ctx, token, group.GroupID, passkey)
	if err != nil {
		s.logger.Warn("Join failed",
			zap.String("attempt_id", attemptID.String()),
			zap.Int64("group_id", group.GroupID),
			zap.Error(err))
		return nil, err
	}

	// Свежий срез вместо локального патча: только он отличает
	// членство от pending-заявки после successful join
	snapshot, err := s.directory.Fetch(ctx, token)
	if err != nil {
		s.logger.Warn("Join succeeded but snapshot refresh failed",
			zap.String("attempt_id", attemptID.String()),
			zap.Int64("group_id", group.GroupID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Join completed",
		zap.String("attempt_id", attemptID.String()),
		zap.Int64("group_id", group.GroupID),
		zap.Bool("requested", mode == JoinByRequest))

	return &JoinOutcome{
		Requested: mode == JoinByRequest,
		Message:   message,
		Snapshot:  snapshot,
	}, nil
}
