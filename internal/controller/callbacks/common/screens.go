package common

import (
	"fmt"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

// GroupsPerPage количество групп на странице каталога
const GroupsPerPage = 5

// BuildMainMenuScreen формирует главное меню
func BuildMainMenuScreen(session *model.Session) (string, *models.InlineKeyboardMarkup) {
	text := "📋 <b>Главное меню</b>\n\n" +
		"Доступные команды:\n" +
		"/mygroups - Мои группы\n" +
		"/discover - Найти группу\n" +
		"/creategroup - Создать группу\n" +
		"/help - Справка\n"

	if session == nil {
		text += "\n🔒 Вы не вошли в портал. Используйте /login"
		return text, keyboard.NewBuilder().Build()
	}

	text += fmt.Sprintf("\n👤 Вы вошли как <b>%s</b>", session.Name)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("👥 Мои группы", "my_groups")).
		Row(keyboard.Button("🔍 Найти группу", "discover")).
		Row(keyboard.Button("➕ Создать группу", "create_group")).
		Build()

	return text, kb
}

// BuildMyGroupsScreen формирует экран списка групп пользователя.
// Группы разбиты на две секции: созданные/управляемые и те, где он участник.
func BuildMyGroupsScreen(owned, joined []model.Group) (string, *models.InlineKeyboardMarkup) {
	total := len(owned) + len(joined)
	if total == 0 {
		text := "👥 У вас пока нет групп.\n\nНайдите подходящую через /discover или создайте свою!"
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("🔍 Найти группу", "discover")).
			Row(keyboard.Button("➕ Создать группу", "create_group")).
			Build()
		return text, kb
	}

	text := fmt.Sprintf("👥 <b>Мои группы</b> (всего: %d)\n", total)
	builder := keyboard.NewBuilder()

	if len(owned) > 0 {
		text += fmt.Sprintf("\n⚙️ <b>Вы управляете</b> (%d):\n", len(owned))
		for i := range owned {
			g := &owned[i]
			text += formatting.FormatGroupShort(g, i+1) + "\n"
			builder.Row(keyboard.ViewGroupButton("⚙️ "+g.Name, g.GroupID))
		}
	}

	if len(joined) > 0 {
		text += fmt.Sprintf("\n👤 <b>Вы участник</b> (%d):\n", len(joined))
		for i := range joined {
			g := &joined[i]
			text += formatting.FormatGroupShort(g, i+1) + "\n"
			builder.Row(keyboard.ViewGroupButton("👥 "+g.Name, g.GroupID))
		}
	}

	builder.Row(keyboard.Button("🔍 Найти группу", "discover"))
	builder.AddBackToMainButton()

	return text, builder.Build()
}

// FilterSummary формирует текстовую сводку активного фильтра каталога
func FilterSummary(f service.DiscoverFilter, courseName string) string {
	summary := ""
	if f.Search != "" {
		summary += fmt.Sprintf("🔎 Поиск: %q\n", f.Search)
	}
	if f.CourseID != "" && f.CourseID != service.CourseAll {
		summary += fmt.Sprintf("📚 Курс: %s\n", courseName)
	}
	if f.SizeBucket != "" && f.SizeBucket != "any" {
		summary += fmt.Sprintf("👥 Размер: %s\n", service.SizeBucketByKey(f.SizeBucket).Label)
	}
	if f.MinRating > 0 {
		summary += fmt.Sprintf("⭐️ Рейтинг: от %.1f\n", f.MinRating)
	}
	if summary == "" {
		return "Фильтры не заданы\n"
	}
	return summary
}

// BuildDiscoverScreen формирует экран каталога групп с фильтрами и пагинацией
func BuildDiscoverScreen(groups []model.Group, f service.DiscoverFilter, courseName string, page int) (string, *models.InlineKeyboardMarkup) {
	totalPages := keyboard.TotalPages(len(groups), GroupsPerPage)
	if page >= totalPages {
		page = 0
	}
	start, end := keyboard.PageBounds(len(groups), GroupsPerPage, page)

	text := fmt.Sprintf("🔍 <b>Каталог групп</b>\n\n%s\n", FilterSummary(f, courseName))

	builder := keyboard.NewBuilder()

	if len(groups) == 0 {
		text += "По заданным условиям ничего не найдено. Попробуйте ослабить фильтры."
	} else {
		text += fmt.Sprintf("Найдено: %d %s\n\n", len(groups), formatting.PluralizeGroups(len(groups)))
		for i := start; i < end; i++ {
			g := &groups[i]
			text += formatting.FormatGroupShort(g, i+1) + "\n\n"
			builder.Row(keyboard.ViewGroupButton(fmt.Sprintf("%d. %s", i+1, g.Name), g.GroupID))
		}
	}

	builder.AddPagination("discover_page:", page, totalPages)
	builder.Row(
		keyboard.Button("🔎 Поиск", "disc_search"),
		keyboard.Button("📚 Курс", "disc_course"),
	)
	builder.Row(
		keyboard.Button("👥 Размер", "disc_size"),
		keyboard.Button("⭐️ Рейтинг", "disc_rating"),
	)
	if f != (service.DiscoverFilter{}) {
		builder.Row(keyboard.Button("♻️ Сбросить фильтры", "disc_reset"))
	}
	builder.AddBackToMainButton()

	return text, builder.Build()
}

// BuildGroupDetailsScreen формирует карточку группы с действиями.
// backData определяет, куда ведёт кнопка "Назад".
func BuildGroupDetailsScreen(g *model.Group, isMember bool, backData string) (string, *models.InlineKeyboardMarkup) {
	text := formatting.FormatGroupInfo(g)
	builder := keyboard.NewBuilder()

	switch {
	case isMember && model.IsAdminRole(g.UserRole):
		builder.Row(keyboard.ManageGroupButton(g.GroupID))
		builder.Row(keyboard.Button("🚪 Покинуть группу", fmt.Sprintf("leave_group:%d", g.GroupID)))
	case isMember:
		builder.Row(keyboard.Button("🚪 Покинуть группу", fmt.Sprintf("leave_group:%d", g.GroupID)))
	case g.IsFull():
		text += "\n\n⛔️ В группе нет свободных мест"
	default:
		switch service.Decide(g) {
		case service.JoinDirect:
			builder.Row(keyboard.Button("✅ Вступить", fmt.Sprintf("join_group:%d", g.GroupID)))
		case service.JoinWithPasskey:
			builder.Row(keyboard.Button("🔑 Ввести пароль группы", fmt.Sprintf("join_group:%d", g.GroupID)))
		case service.JoinByRequest:
			builder.Row(keyboard.Button("📨 Подать заявку", fmt.Sprintf("join_group:%d", g.GroupID)))
		}
	}

	builder.Row(keyboard.Button("🖼 Карточка группы", fmt.Sprintf("view_group_card:%d", g.GroupID)))
	builder.AddBackButton(backData)
	return text, builder.Build()
}

// BuildJoinRequestConfirmScreen формирует экран подтверждения отправки заявки
func BuildJoinRequestConfirmScreen(g *model.Group) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"📨 Группа <b>%s</b> приватная.\n\n"+
			"Вступление происходит по заявке: админы группы увидят ваш профиль "+
			"и примут решение. Отправить заявку?",
		g.Name,
	)

	kb := keyboard.NewBuilder().
		AddRows(keyboard.ConfirmCancelButtons(
			fmt.Sprintf("join_request_confirm:%d", g.GroupID),
			fmt.Sprintf("view_group:%d", g.GroupID),
		)).
		Build()

	return text, kb
}

// BuildManageGroupScreen формирует главный экран управления группой
func BuildManageGroupScreen(view *service.GroupView) (string, *models.InlineKeyboardMarkup) {
	g := view.Group

	text := fmt.Sprintf(
		"⚙️ <b>Управление группой</b>\n\n%s\n\n"+
			"👥 Участников: %d\n",
		formatting.FormatGroupInfo(&g),
		len(view.Members),
	)

	pending := 0
	for i := range view.Requests {
		if view.Requests[i].IsPending() {
			pending++
		}
	}
	if pending > 0 {
		text += fmt.Sprintf("📨 Новых заявок: %d\n", pending)
	}

	builder := keyboard.NewBuilder().
		Row(keyboard.Button("👥 Участники", fmt.Sprintf("manage_members:%d", g.GroupID)))

	if g.IsPrivate() && !g.HasPasskey {
		requestsText := "📨 Заявки"
		if pending > 0 {
			requestsText = fmt.Sprintf("📨 Заявки (%d)", pending)
		}
		builder.Row(keyboard.Button(requestsText, fmt.Sprintf("manage_requests:%d", g.GroupID)))
	}

	builder.Row(keyboard.EditButton(fmt.Sprintf("edit_details:%d", g.GroupID)))
	builder.Row(keyboard.Button("🚪 Покинуть группу", fmt.Sprintf("leave_group:%d", g.GroupID)))
	builder.AddBackButton(fmt.Sprintf("view_group:%d", g.GroupID))

	return text, builder.Build()
}

// BuildMembersScreen формирует экран списка участников группы
func BuildMembersScreen(view *service.GroupView) (string, *models.InlineKeyboardMarkup) {
	g := view.Group

	text := fmt.Sprintf(
		"👥 <b>Участники группы %s</b> (%d)\n\n",
		g.Name,
		len(view.Members),
	)

	builder := keyboard.NewBuilder()
	for i := range view.Members {
		m := &view.Members[i]
		text += formatting.FormatMemberLine(m) + "\n"
		builder.Row(keyboard.Button(
			formatting.FormatMemberLine(m),
			fmt.Sprintf("member_actions:%d:%d", g.GroupID, m.UserID),
		))
	}

	builder.AddBackButton(fmt.Sprintf("manage_group:%d", g.GroupID))
	return text, builder.Build()
}

// BuildMemberActionsScreen формирует экран действий над участником.
// Кнопки смены роли и исключения скрыты для создателя группы и для самого
// зрителя: эти операции запрещены и не должны порождать сетевые вызовы.
func BuildMemberActionsScreen(view *service.GroupView, m *model.Member, viewerID int64) (string, *models.InlineKeyboardMarkup) {
	g := view.Group
	role := formatting.GetRoleDisplay(m.Role)

	text := fmt.Sprintf(
		"%s <b>%s</b>\n\n"+
			"✉️ Email: %s\n"+
			"📊 Роль: %s",
		role.Emoji,
		m.Name,
		m.Email,
		role.Text,
	)

	builder := keyboard.NewBuilder()

	isCreator := g.CreatorID() == m.UserID
	isSelf := m.UserID == viewerID

	if isCreator {
		text += "\n\n👑 Создатель группы: роль изменить нельзя"
	}
	if isSelf {
		text += "\n\nЭто вы. Чтобы выйти из группы, используйте кнопку выхода"
	}

	if !isCreator && !isSelf {
		if m.IsAdmin() {
			builder.Row(keyboard.Button(
				"⬇️ Снять права админа",
				fmt.Sprintf("set_role:%d:%d:%s", g.GroupID, m.UserID, model.RoleMember),
			))
		} else {
			builder.Row(keyboard.Button(
				"⬆️ Назначить админом",
				fmt.Sprintf("set_role:%d:%d:%s", g.GroupID, m.UserID, model.RoleAdmin),
			))
		}
		builder.Row(keyboard.Button(
			"🚫 Исключить из группы",
			fmt.Sprintf("remove_member:%d:%d", g.GroupID, m.UserID),
		))
	}

	builder.AddBackButton(fmt.Sprintf("manage_members:%d", g.GroupID))
	return text, builder.Build()
}

// BuildRemoveMemberConfirmScreen формирует экран подтверждения исключения
func BuildRemoveMemberConfirmScreen(view *service.GroupView, m *model.Member) (string, *models.InlineKeyboardMarkup) {
	g := view.Group

	text := fmt.Sprintf(
		"❓ Исключить <b>%s</b> из группы <b>%s</b>?",
		m.Name,
		g.Name,
	)

	kb := keyboard.NewBuilder().
		AddRows(keyboard.ConfirmCancelButtons(
			fmt.Sprintf("confirm_remove:%d:%d", g.GroupID, m.UserID),
			fmt.Sprintf("member_actions:%d:%d", g.GroupID, m.UserID),
		)).
		Build()

	return text, kb
}

// BuildLeaveGroupConfirmScreen формирует экран подтверждения выхода из группы.
// viewerID - портальный ID уходящего: предупреждение о передаче группы
// показываем только её создателю.
func BuildLeaveGroupConfirmScreen(g *model.Group, viewerID int64) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("❓ Вы уверены, что хотите покинуть группу <b>%s</b>?", g.Name)

	if creatorID := g.CreatorID(); creatorID != 0 && creatorID == viewerID {
		text += "\n\n⚠️ Вы владелец: портал передаст группу другому участнику " +
			"или закроет её, когда вы уходите последним."
	}

	kb := keyboard.NewBuilder().
		AddRows(keyboard.ConfirmCancelButtons(
			fmt.Sprintf("confirm_leave:%d", g.GroupID),
			fmt.Sprintf("view_group:%d", g.GroupID),
		)).
		Build()

	return text, kb
}

// BuildRequestsScreen формирует экран заявок на вступление
func BuildRequestsScreen(view *service.GroupView) (string, *models.InlineKeyboardMarkup) {
	g := view.Group

	pending := 0
	for i := range view.Requests {
		if view.Requests[i].IsPending() {
			pending++
		}
	}

	text := fmt.Sprintf(
		"📨 <b>Заявки в группу %s</b>\n\n"+
			"Всего: %d, ожидают решения: %d\n\n",
		g.Name,
		len(view.Requests),
		pending,
	)

	builder := keyboard.NewBuilder()

	if len(view.Requests) == 0 {
		text += "Заявок пока нет."
	}

	for i := range view.Requests {
		r := &view.Requests[i]
		text += formatting.FormatRequestLine(r) + "\n"
		if r.IsPending() {
			builder.Row(keyboard.Button(
				"👤 "+r.User.Name,
				fmt.Sprintf("view_requester:%d:%d", g.GroupID, r.ID),
			))
		}
	}

	builder.AddBackButton(fmt.Sprintf("manage_group:%d", g.GroupID))
	return text, builder.Build()
}

// BuildRequesterScreen формирует экран профиля подавшего заявку
func BuildRequesterScreen(view *service.GroupView, r *model.JoinRequest) (string, *models.InlineKeyboardMarkup) {
	g := view.Group
	text := formatting.FormatRequesterProfile(r)

	builder := keyboard.NewBuilder()
	if r.IsPending() {
		builder.Row(
			keyboard.Button("✅ Принять", fmt.Sprintf("request_decide:%d:%d:%s", g.GroupID, r.ID, model.RequestStatusApproved)),
			keyboard.Button("🚫 Отклонить", fmt.Sprintf("request_decide:%d:%d:%s", g.GroupID, r.ID, model.RequestStatusDenied)),
		)
	}
	builder.AddBackButton(fmt.Sprintf("manage_requests:%d", g.GroupID))

	return text, builder.Build()
}
