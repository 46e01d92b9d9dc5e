package model

import "strings"

// Видимость группы
const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// Роли участников группы
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
	RoleOwner  = "OWNER"
)

// GroupCreator ссылка на создателя группы
type GroupCreator struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
}

// Group represents a study group as returned by the portal API
type Group struct {
	GroupID          int64         `json:"groupId"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Privacy          string        `json:"privacy"` // 'public', 'private'
	HasPasskey       bool          `json:"hasPasskey"`
	MemberCount      int           `json:"memberCount"`
	MemberLimit      int           `json:"memberLimit"`
	Rating           float64       `json:"rating"` // 0..5
	AssociatedCourse Course        `json:"associatedCourse"`
	CreatedBy        *GroupCreator `json:"createdBy,omitempty"`
	UserRole         string        `json:"userRole,omitempty"` // только в my-groups
}

// IsPublic checks if the group is publicly joinable
func (g *Group) IsPublic() bool {
	return strings.EqualFold(g.Privacy, PrivacyPublic)
}

// IsPrivate checks if the group is private
func (g *Group) IsPrivate() bool {
	return strings.EqualFold(g.Privacy, PrivacyPrivate)
}

// IsFull checks if the group reached its member limit
func (g *Group) IsFull() bool {
	return g.MemberLimit > 0 && g.MemberCount >= g.MemberLimit
}

// CreatorID возвращает ID создателя группы (0 если неизвестен)
func (g *Group) CreatorID() int64 {
	if g.CreatedBy == nil {
		return 0
	}
	return g.CreatedBy.UserID
}

// IsAdminRole проверяет, даёт ли роль права управления группой
func IsAdminRole(role string) bool {
	return strings.EqualFold(role, RoleAdmin) || strings.EqualFold(role, RoleOwner)
}
