package member

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Состояния мастера создания группы (значения совпадают с пакетом state)
const (
	stateCreateGroupName    callbacktypes.UserState = "create_group_name"
	stateCreateGroupPasskey callbacktypes.UserState = "create_group_passkey"
	stateCreateGroupLimit   callbacktypes.UserState = "create_group_limit"
	stateCreateGroupButtons callbacktypes.UserState = "create_group_buttons"
)

// Ключи state data мастера создания группы
const (
	CreateNameKey        = "cg_name"
	CreateDescriptionKey = "cg_description"
	CreatePrivacyKey     = "cg_privacy"
	CreatePasskeyKey     = "cg_passkey"
	CreateLimitKey       = "cg_limit"
	CreateCourseIDKey    = "cg_course_id"
	CreateCourseNameKey  = "cg_course_name"
)

// ========================
// Member: Create Group Wizard
// ========================

// HandleCreateGroup запускает мастер создания группы
func HandleCreateGroup(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		// Сбрасываем остатки предыдущего незавершённого мастера
		hc.ClearState()
		hc.SetState(stateCreateGroupName)

		kb := keyboard.NewBuilder().
			Row(keyboard.CancelButton("cg_cancel")).
			Build()
		text := "➕ <b>Создание группы</b>\n\nШаг 1/6. Введите название группы:"
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "create_group")
			return
		}
		hc.Answer("")
	})
}

// BuildCreatePrivacyScreen формирует шаг выбора приватности
func BuildCreatePrivacyScreen() (string, *models.InlineKeyboardMarkup) {
	text := "Шаг 3/6. Выберите тип группы:\n\n" +
		"🌐 <b>Открытая</b> - вступить может любой\n" +
		"🔒 <b>Приватная</b> - вход по паролю или по заявке"

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🌐 Открытая", "cg_privacy:"+model.PrivacyPublic)).
		Row(keyboard.Button("🔒 Приватная", "cg_privacy:"+model.PrivacyPrivate)).
		Row(keyboard.CancelButton("cg_cancel")).
		Build()

	return text, kb
}

// BuildCreatePasskeyScreen формирует шаг ввода пароля группы
func BuildCreatePasskeyScreen() (string, *models.InlineKeyboardMarkup) {
	text := "Шаг 4/6. Введите пароль для вступления в группу.\n\n" +
		"Если пропустить этот шаг, вступление будет по заявке с одобрением админами."

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("⏭ Без пароля (по заявке)", "cg_passkey_skip")).
		Row(keyboard.CancelButton("cg_cancel")).
		Build()

	return text, kb
}

// BuildCreateLimitScreen формирует шаг ввода лимита участников
func BuildCreateLimitScreen() (string, *models.InlineKeyboardMarkup) {
	text := "Шаг 5/6. Введите максимальное число участников (целое число):"

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("♾ Без лимита", "cg_no_limit")).
		Row(keyboard.CancelButton("cg_cancel")).
		Build()

	return text, kb
}

// BuildCreateCourseScreen формирует шаг выбора курса
func BuildCreateCourseScreen(courses []model.Course) (string, *models.InlineKeyboardMarkup) {
	text := "Шаг 6/6. Выберите курс, к которому относится группа:"

	builder := keyboard.NewBuilder()
	for _, course := range courses {
		builder.Row(keyboard.Button("📚 "+course.CourseName, "cg_course:"+course.CourseID))
	}
	builder.Row(keyboard.CancelButton("cg_cancel"))

	return text, builder.Build()
}

// CreateDraft собранные данные мастера создания группы
type CreateDraft struct {
	Name        string
	Description string
	Privacy     string
	Passkey     string
	HasPasskey  bool
	MemberLimit int
	CourseID    string
	CourseName  string
}

// ReadCreateDraft восстанавливает черновик группы из state data
func ReadCreateDraft(sm callbacktypes.StateManager, telegramID int64) CreateDraft {
	draft := CreateDraft{Privacy: model.PrivacyPublic}

	if v, ok := sm.GetData(telegramID, CreateNameKey); ok {
		draft.Name, _ = v.(string)
	}
	if v, ok := sm.GetData(telegramID, CreateDescriptionKey); ok {
		draft.Description, _ = v.(string)
	}
	if v, ok := sm.GetData(telegramID, CreatePrivacyKey); ok {
		if privacy, isString := v.(string); isString && privacy != "" {
			draft.Privacy = privacy
		}
	}
	if v, ok := sm.GetData(telegramID, CreatePasskeyKey); ok {
		if passkey, isString := v.(string); isString && passkey != "" {
			draft.Passkey = passkey
			draft.HasPasskey = true
		}
	}
	if v, ok := sm.GetData(telegramID, CreateLimitKey); ok {
		draft.MemberLimit, _ = v.(int)
	}
	if v, ok := sm.GetData(telegramID, CreateCourseIDKey); ok {
		draft.CourseID, _ = v.(string)
	}
	if v, ok := sm.GetData(telegramID, CreateCourseNameKey); ok {
		draft.CourseName, _ = v.(string)
	}

	return draft
}

// BuildCreateConfirmScreen формирует финальный экран подтверждения
func BuildCreateConfirmScreen(draft CreateDraft) (string, *models.InlineKeyboardMarkup) {
	privacyText := "🌐 Открытая"
	if draft.Privacy == model.PrivacyPrivate {
		if draft.HasPasskey {
			privacyText = "🔒 Приватная, вход по паролю"
		} else {
			privacyText = "🔒 Приватная, вход по заявке"
		}
	}

	limitText := "без лимита"
	if draft.MemberLimit > 0 {
		limitText = fmt.Sprintf("%d", draft.MemberLimit)
	}

	text := fmt.Sprintf(
		"❓ <b>Создать группу?</b>\n\n"+
			"📝 Название: %s\n"+
			"📄 Описание: %s\n"+
			"🔑 Доступ: %s\n"+
			"👥 Лимит участников: %s\n"+
			"📚 Курс: %s",
		draft.Name,
		draft.Description,
		privacyText,
		limitText,
		draft.CourseName,
	)

	kb := keyboard.NewBuilder().
		AddRows(keyboard.ConfirmCancelButtons("cg_confirm", "cg_cancel")).
		Build()

	return text, kb
}

// HandleCreatePrivacy обрабатывает выбор приватности
func HandleCreatePrivacy(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	privacy := parseCallbackSuffix(callback.Data, "cg_privacy:")
	if privacy != model.PrivacyPublic && privacy != model.PrivacyPrivate {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.SetData(CreatePrivacyKey, privacy)

		if privacy == model.PrivacyPrivate {
			hc.SetState(stateCreateGroupPasskey)
			text, kb := BuildCreatePasskeyScreen()
			if err := hc.EditMessage(text, kb); err != nil {
				common.HandleError(hc, err, "create_privacy")
				return
			}
			hc.Answer("")
			return
		}

		hc.SetState(stateCreateGroupLimit)
		text, kb := BuildCreateLimitScreen()
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "create_privacy")
			return
		}
		hc.Answer("")
	})
}

// HandleCreatePasskeySkip пропускает пароль: группа будет принимать по заявке
func HandleCreatePasskeySkip(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.SetData(CreatePasskeyKey, "")
		hc.SetState(stateCreateGroupLimit)

		text, kb := BuildCreateLimitScreen()
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "create_passkey_skip")
			return
		}
		hc.Answer("")
	})
}

// HandleCreateNoLimit пропускает лимит и переходит к выбору курса
func HandleCreateNoLimit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.SetData(CreateLimitKey, 0)
		hc.SetState(stateCreateGroupButtons)

		showCreateCourseStep(hc)
	})
}

// showCreateCourseStep показывает шаг выбора курса
func showCreateCourseStep(hc *common.HandlerContext) {
	snapshot, err := hc.Handler.DirectoryService.Fetch(hc.Ctx, hc.Token())
	if err != nil {
		common.HandleError(hc, err, "create_course_step")
		return
	}

	text, kb := BuildCreateCourseScreen(snapshot.Courses)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "create_course_step")
		return
	}
	hc.Answer("")
}

// HandleCreateCourse обрабатывает выбор курса и показывает подтверждение
func HandleCreateCourse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	courseID := parseCallbackSuffix(callback.Data, "cg_course:")

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		snapshot, err := h.DirectoryService.Fetch(hc.Ctx, hc.Token())
		if err != nil {
			common.HandleError(hc, err, "create_course")
			return
		}

		course := snapshot.FindCourse(courseID)
		if course == nil {
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Курс не найден")
			return
		}

		hc.SetData(CreateCourseIDKey, course.CourseID)
		hc.SetData(CreateCourseNameKey, course.CourseName)

		draft := ReadCreateDraft(h.StateManager, hc.TelegramID)
		text, kb := BuildCreateConfirmScreen(draft)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "create_course")
			return
		}
		hc.Answer("")
	})
}

// HandleCreateConfirm создаёт группу и показывает обновлённый список групп
func HandleCreateConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		draft := ReadCreateDraft(h.StateManager, hc.TelegramID)

		req := portal.CreateGroupRequest{
			Name:        draft.Name,
			Description: draft.Description,
			Privacy:     draft.Privacy,
			MemberLimit: draft.MemberLimit,
			CourseID:    draft.CourseID,
		}
		if draft.HasPasskey {
			passkey := draft.Passkey
			req.Passkey = &passkey
		}

		if err := h.ConsoleService.CreateGroup(hc.Ctx, hc.Token(), req); err != nil {
			common.HandleError(hc, err, "create_confirm")
			return
		}

		hc.ClearState()
		hc.AnswerAlert("✅ Группа создана!")

		RenderMyGroups(hc)
	})
}

// HandleCreateCancel отменяет мастер создания группы
func HandleCreateCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.Answer("Создание группы отменено")
		RenderMyGroups(hc)
	})
}
