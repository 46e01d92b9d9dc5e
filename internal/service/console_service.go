package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"go.uber.org/zap"
)

// Ошибки локальных проверок консоли управления
var (
	ErrCreatorRole   = errors.New("creator role cannot be changed")
	ErrSelfRole      = errors.New("cannot change own role")
	ErrCreatorRemove = errors.New("creator cannot be removed")
)

// GroupView срез одной группы: детали, участники и (для админов) заявки
type GroupView struct {
	Group    model.Group
	Members  []model.Member
	Requests []model.JoinRequest
	// ViewerRole роль смотрящего: ADMIN, MEMBER или пустая строка для не-участника
	ViewerRole string
}

// IsViewerAdmin проверяет, открыта ли консоль управления для смотрящего
func (v *GroupView) IsViewerAdmin() bool {
	return model.IsAdminRole(v.ViewerRole)
}

// FindMember ищет участника по ID
func (v *GroupView) FindMember(userID int64) *model.Member {
	for i := range v.Members {
		if v.Members[i].UserID == userID {
			return &v.Members[i]
		}
	}
	return nil
}

// FindRequest ищет заявку по ID
func (v *GroupView) FindRequest(requestID int64) *model.JoinRequest {
	for i := range v.Requests {
		if v.Requests[i].ID == requestID {
			return &v.Requests[i]
		}
	}
	return nil
}

// ConsoleService админская консоль группы. Каждая операция независимо
// фальсифицируема и сопровождается полным перечитыванием среза группы.
type ConsoleService struct {
	portal *portal.Client
	logger *zap.Logger

	mu       sync.Mutex
	inFlight map[int64]bool // requestID -> обработка заявки идёт
}

func NewConsoleService(portalClient *portal.Client, logger *zap.Logger) *ConsoleService {
	return &ConsoleService{
		portal:   portalClient,
		logger:   logger,
		inFlight: make(map[int64]bool),
	}
}

// LoadGroup запрашивает детали, участников и заявки группы параллельно.
// Отказ в заявках (403) не роняет срез: не-админ просто не видит вкладку.
func (s *ConsoleService) LoadGroup(ctx context.Context, token string, groupID, viewerID int64) (*GroupView, error) {
	view := &GroupView{}

	var wg sync.WaitGroup
	var groupErr, membersErr, requestsErr error
	var group *model.Group

	wg.Add(3)
	go func() {
		defer wg.Done()
		group, groupErr = s.portal.Group(ctx, token, groupID)
	}()
	go func() {
		defer wg.Done()
		view.Members, membersErr = s.portal.Members(ctx, token, groupID)
	}()
	go func() {
		defer wg.Done()
		view.Requests, requestsErr = s.portal.JoinRequests(ctx, token, groupID)
	}()
	wg.Wait()

	if groupErr != nil {
		return nil, groupErr
	}
	if membersErr != nil {
		return nil, membersErr
	}
	view.Group = *group

	if requestsErr != nil {
		var reqErr *portal.RequestError
		if errors.As(requestsErr, &reqErr) && reqErr.IsForbidden() {
			view.Requests = nil
		} else {
			return nil, requestsErr
		}
	}

	if member := view.FindMember(viewerID); member != nil {
		view.ViewerRole = member.Role
	}

	return view, nil
}

// CreateGroup создаёт новую группу. Создатель становится её админом на
// стороне портала и увидит группу в своём списке после обновления среза.
func (s *ConsoleService) CreateGroup(ctx context.Context, token string, req portal.CreateGroupRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	if req.Name == "" || req.Description == "" {
		return newValidationError("Название и описание группы не могут быть пустыми")
	}
	if req.Privacy != model.PrivacyPublic && req.Privacy != model.PrivacyPrivate {
		return newValidationError("Недопустимый тип приватности")
	}
	if req.Privacy == model.PrivacyPublic {
		req.Passkey = nil
	}
	if req.Passkey != nil && strings.TrimSpace(*req.Passkey) == "" {
		return newValidationError("Пароль группы не может быть пустым")
	}
	if req.MemberLimit < 0 {
		return newValidationError("Лимит участников не может быть отрицательным")
	}
	if req.CourseID == "" {
		return newValidationError("Группа должна быть привязана к курсу")
	}

	if err := s.portal.CreateGroup(ctx, token, req); err != nil {
		return err
	}

	s.logger.Info("Group created",
		zap.String("name", req.Name),
		zap.String("privacy", req.Privacy))
	return nil
}

// UpdateDetails обновляет название и описание группы.
// Пустые поля отклоняются локально, PUT не отправляется.
func (s *ConsoleService) UpdateDetails(ctx context.Context, token string, groupID int64, name, description string) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if name == "" || description == "" {
		return newValidationError("Название и описание группы не могут быть пустыми")
	}

	if err := s.portal.UpdateGroup(ctx, token, groupID, name, description); err != nil {
		return err
	}

	s.logger.Info("Group details updated", zap.Int64("group_id", groupID))
	return nil
}

// ChangeRole меняет роль участника. Роль создателя и собственная роль
// защищены локально: такие попытки не доходят до сети (для себя есть
// путь leave/remove).
func (s *ConsoleService) ChangeRole(ctx context.Context, token string, view *GroupView, memberID, viewerID int64, newRole string) error {
	if newRole != model.RoleAdmin && newRole != model.RoleMember {
		return newValidationError("Недопустимая роль")
	}
	if memberID == view.Group.CreatorID() {
		return ErrCreatorRole
	}
	if memberID == viewerID {
		return ErrSelfRole
	}

	if err := s.portal.ChangeMemberRole(ctx, token, view.Group.GroupID, memberID, newRole); err != nil {
		return err
	}

	s.logger.Info("Member role changed",
		zap.Int64("group_id", view.Group.GroupID),
		zap.Int64("member_id", memberID),
		zap.String("role", newRole))
	return nil
}

// RemoveMember удаляет участника или выводит самого себя из группы.
// Для себя используется leave-эндпоинт: если уходит создатель, сервер сам
// выбирает преемника или удаляет группу, клиент лишь показывает его ответ.
func (s *ConsoleService) RemoveMember(ctx context.Context, token string, view *GroupView, memberID, viewerID int64) (string, error) {
	if memberID == viewerID {
		message, err := s.portal.Leave(ctx, token, view.Group.GroupID)
		if err != nil {
			return "", err
		}
		s.logger.Info("Left group",
			zap.Int64("group_id", view.Group.GroupID),
			zap.Int64("user_id", viewerID))
		return message, nil
	}

	if memberID == view.Group.CreatorID() {
		return "", ErrCreatorRemove
	}

	message, err := s.portal.RemoveMember(ctx, token, view.Group.GroupID, memberID)
	if err != nil {
		return "", err
	}

	s.logger.Info("Member removed",
		zap.Int64("group_id", view.Group.GroupID),
		zap.Int64("member_id", memberID))
	return message, nil
}

// Leave выводит пользователя из группы. Если уходит создатель, сервер сам
// выбирает преемника или удаляет группу, клиент лишь показывает его ответ.
func (s *ConsoleService) Leave(ctx context.Context, token string, groupID int64) (string, error) {
	message, err := s.portal.Leave(ctx, token, groupID)
	if err != nil {
		return "", err
	}
	s.logger.Info("Left group", zap.Int64("group_id", groupID))
	return message, nil
}

// ResolveRequest одобряет или отклоняет заявку. Повторное нажатие по той же
// заявке блокируется, пока первый запрос не завершился; ответ сервера на
// уже решённую заявку показывается как есть.
func (s *ConsoleService) ResolveRequest(ctx context.Context, token string, groupID, requestID int64, action string) error {
	if action != model.RequestStatusApproved && action != model.RequestStatusDenied {
		return newValidationError("Недопустимое действие по заявке")
	}

	s.mu.Lock()
	if s.inFlight[requestID] {
		s.mu.Unlock()
		return newValidationError("Заявка уже обрабатывается")
	}
	s.inFlight[requestID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, requestID)
		s.mu.Unlock()
	}()

	if err := s.portal.ResolveJoinRequest(ctx, token, groupID, requestID, action); err != nil {
		return err
	}

	s.logger.Info("Join request resolved",
		zap.Int64("group_id", groupID),
		zap.Int64("request_id", requestID),
		zap.String("action", action))
	return nil
}
