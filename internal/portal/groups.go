package portal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/studygroup_bot/internal/model"
)

// MyGroups получает группы пользователя (с его ролью в каждой)
func (c *Client) MyGroups(ctx context.Context, token string) ([]model.Group, error) {
	var groups []model.Group
	if err := c.get(ctx, "/groups/my-groups", token, &groups); err != nil {
		return nil, fmt.Errorf("get my groups: %w", err)
	}
	return groups, nil
}

// AllGroups получает все видимые группы для каталога
func (c *Client) AllGroups(ctx context.Context, token string) ([]model.Group, error) {
	var groups []model.Group
	if err := c.get(ctx, "/groups/all", token, &groups); err != nil {
		return nil, fmt.Errorf("get all groups: %w", err)
	}
	return groups, nil
}

// Courses получает справочник курсов
func (c *Client) Courses(ctx context.Context, token string) ([]model.Course, error) {
	var courses []model.Course
	if err := c.get(ctx, "/courses", token, &courses); err != nil {
		return nil, fmt.Errorf("get courses: %w", err)
	}
	return courses, nil
}

// Group получает детали одной группы
func (c *Client) Group(ctx context.Context, token string, groupID int64) (*model.Group, error) {
	var group model.Group
	if err := c.get(ctx, fmt.Sprintf("/groups/%d", groupID), token, &group); err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &group, nil
}

// Members получает список участников группы
func (c *Client) Members(ctx context.Context, token string, groupID int64) ([]model.Member, error) {
	var members []model.Member
	if err := c.get(ctx, fmt.Sprintf("/groups/%d/members", groupID), token, &members); err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}
	return members, nil
}

// joinRequestsPayload портал заворачивает заявки в объект: {"requests": [...]}
type joinRequestsPayload struct {
	Requests []model.JoinRequest `json:"requests"`
}

// JoinRequests получает заявки на вступление (доступно только админам группы)
func (c *Client) JoinRequests(ctx context.Context, token string, groupID int64) ([]model.JoinRequest, error) {
	var payload joinRequestsPayload
	if err := c.get(ctx, fmt.Sprintf("/groups/%d/requests", groupID), token, &payload); err != nil {
		return nil, fmt.Errorf("get join requests: %w", err)
	}
	return payload.Requests, nil
}

// messagePayload успешные мутации возвращают {"message": "..."}
type messagePayload struct {
	Message string `json:"message"`
}

// Join отправляет запрос на вступление в группу.
// passkey == nil для публичных групп и для приватных без ключа (тогда
// сервер создаёт заявку вместо членства). Возвращает сообщение сервера.
func (c *Client) Join(ctx context.Context, token string, groupID int64, passkey *string) (string, error) {
	body := map[string]*string{"passkey": passkey}

	var payload messagePayload
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/groups/join/%d", groupID), token, body, &payload)
	if err != nil {
		return "", fmt.Errorf("join group: %w", err)
	}
	return payload.Message, nil
}

// CreateGroupRequest параметры создания группы
type CreateGroupRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Privacy     string  `json:"privacy"`
	Passkey     *string `json:"passkey,omitempty"`
	MemberLimit int     `json:"memberLimit"`
	CourseID    string  `json:"courseId"`
}

// CreateGroup создаёт новую группу, создатель становится её админом
func (c *Client) CreateGroup(ctx context.Context, token string, req CreateGroupRequest) error {
	if err := c.do(ctx, http.MethodPost, "/groups/create", token, req, nil); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// UpdateGroup обновляет название и описание группы
func (c *Client) UpdateGroup(ctx context.Context, token string, groupID int64, name, description string) error {
	body := map[string]string{
		"name":        name,
		"description": description,
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/groups/%d", groupID), token, body, nil); err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

// RemoveMember удаляет участника из группы (админская операция)
func (c *Client) RemoveMember(ctx context.Context, token string, groupID, memberID int64) (string, error) {
	var payload messagePayload
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/groups/%d/members/%d", groupID, memberID), token, nil, &payload)
	if err != nil {
		return "", fmt.Errorf("remove member: %w", err)
	}
	return payload.Message, nil
}

// Leave выход из группы. Если уходит создатель, сервер сам решает судьбу
// группы (передача владения или удаление) и описывает исход в сообщении.
func (c *Client) Leave(ctx context.Context, token string, groupID int64) (string, error) {
	var payload messagePayload
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/groups/leave/%d", groupID), token, nil, &payload)
	if err != nil {
		return "", fmt.Errorf("leave group: %w", err)
	}
	return payload.Message, nil
}

// ChangeMemberRole меняет роль участника группы
func (c *Client) ChangeMemberRole(ctx context.Context, token string, groupID, memberID int64, role string) error {
	body := map[string]string{"role": role}
	path := fmt.Sprintf("/groups/%d/members/%d/role", groupID, memberID)
	if err := c.do(ctx, http.MethodPut, path, token, body, nil); err != nil {
		return fmt.Errorf("change member role: %w", err)
	}
	return nil
}

// ResolveJoinRequest одобряет или отклоняет заявку на вступление
func (c *Client) ResolveJoinRequest(ctx context.Context, token string, groupID, requestID int64, action string) error {
	body := map[string]string{"action": action}
	path := fmt.Sprintf("/groups/%d/requests/%d", groupID, requestID)
	if err := c.do(ctx, http.MethodPut, path, token, body, nil); err != nil {
		return fmt.Errorf("resolve join request: %w", err)
	}
	return nil
}
