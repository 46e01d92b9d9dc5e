package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/studygroup_bot/internal/model"
)

// RatingStars форматирует рейтинг группы звёздами
// Например: 4.5 -> "★★★★½ (4.5)"
func RatingStars(rating float64) string {
	if rating <= 0 {
		return "нет оценок"
	}

	full := int(rating)
	if full > 5 {
		full = 5
	}

	var sb strings.Builder
	for i := 0; i < full; i++ {
		sb.WriteString("★")
	}
	if rating-float64(full) >= 0.5 && full < 5 {
		sb.WriteString("½")
	}

	return fmt.Sprintf("%s (%.1f)", sb.String(), rating)
}

// FormatCapacity форматирует заполненность группы
func FormatCapacity(g *model.Group) string {
	if g.MemberLimit <= 0 {
		return fmt.Sprintf("%d %s", g.MemberCount, PluralizeMembers(g.MemberCount))
	}
	text := fmt.Sprintf("%d/%d %s", g.MemberCount, g.MemberLimit, PluralizeMembers(g.MemberLimit))
	if g.IsFull() {
		text += " (мест нет)"
	}
	return text
}

// FormatGroupInfo форматирует карточку группы
func FormatGroupInfo(g *model.Group) string {
	privacy := GetPrivacyDisplay(g.Privacy)

	text := fmt.Sprintf(
		"%s <b>%s</b>\n\n"+
			"📚 Курс: %s\n"+
			"👥 Состав: %s\n"+
			"⭐️ Рейтинг: %s\n"+
			"🔑 Доступ: %s",
		privacy.Emoji,
		g.Name,
		g.AssociatedCourse.CourseName,
		FormatCapacity(g),
		RatingStars(g.Rating),
		privacy.Text,
	)

	if g.IsPrivate() {
		if g.HasPasskey {
			text += " (вход по паролю)"
		} else {
			text += " (вход по заявке)"
		}
	}

	if g.Description != "" {
		text += fmt.Sprintf("\n\n📝 %s", g.Description)
	}

	if g.CreatedBy != nil {
		text += fmt.Sprintf("\n\n👤 Создатель: %s", g.CreatedBy.Name)
	}

	if g.UserRole != "" {
		role := GetRoleDisplay(g.UserRole)
		text += fmt.Sprintf("\n%s Ваша роль: %s", role.Emoji, role.Text)
	}

	return text
}

// FormatGroupShort форматирует краткую строку группы для списков
func FormatGroupShort(g *model.Group, index int) string {
	privacy := GetPrivacyDisplay(g.Privacy)

	return fmt.Sprintf(
		"%d. %s %s\n"+
			"   📚 %s | 👥 %s | ⭐️ %s",
		index,
		privacy.Emoji,
		g.Name,
		g.AssociatedCourse.CourseName,
		FormatCapacity(g),
		RatingStars(g.Rating),
	)
}

// FormatMemberLine форматирует строку участника группы
func FormatMemberLine(m *model.Member) string {
	role := GetRoleDisplay(m.Role)
	return fmt.Sprintf("%s %s (%s)", role.Emoji, m.Name, role.Text)
}

// FormatRequestLine форматирует строку заявки на вступление
func FormatRequestLine(r *model.JoinRequest) string {
	status := GetRequestStatusDisplay(r.Status)
	return fmt.Sprintf("%s %s", status.Emoji, r.User.Name)
}

// FormatRequesterProfile форматирует профиль подавшего заявку
func FormatRequesterProfile(r *model.JoinRequest) string {
	status := GetRequestStatusDisplay(r.Status)

	text := fmt.Sprintf(
		"👤 <b>%s</b>\n\n"+
			"✉️ Email: %s\n"+
			"📊 Статус заявки: %s %s",
		r.User.Name,
		r.User.Email,
		status.Emoji,
		status.Text,
	)

	if r.User.AboutMe != "" {
		text += fmt.Sprintf("\n\n📝 О себе: %s", r.User.AboutMe)
	}

	return text
}
