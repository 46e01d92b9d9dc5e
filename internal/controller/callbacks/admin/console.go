package admin

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Состояния диалогов консоли (значения совпадают с пакетом state)
const stateEditGroupName callbacktypes.UserState = "edit_group_name"

// EditGroupIDKey ключ state data с ID редактируемой группы
const EditGroupIDKey = "edit_group_id"

// ========================
// Admin: Group Console
// ========================

// loadAdminView загружает срез группы и проверяет права смотрящего.
// При любой ошибке пользователю уже отвечено, возвращается nil.
func loadAdminView(hc *common.HandlerContext, groupID int64, operation string) *service.GroupView {
	view, err := hc.Handler.ConsoleService.LoadGroup(hc.Ctx, hc.Token(), groupID, hc.Session.UserID)
	if err != nil {
		common.HandleError(hc, err, operation)
		return nil
	}
	if !view.IsViewerAdmin() {
		common.HandleError(hc, common.ErrNotAdmin, operation)
		return nil
	}
	return view
}

// HandleManageGroup показывает консоль управления группой
func HandleManageGroup(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()

		view := loadAdminView(hc, groupID, "manage_group")
		if view == nil {
			return
		}

		text, kb := common.BuildManageGroupScreen(view)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "manage_group")
			return
		}
		hc.Answer("")
	})
}

// HandleManageMembers показывает список участников группы
func HandleManageMembers(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view := loadAdminView(hc, groupID, "manage_members")
		if view == nil {
			return
		}

		text, kb := common.BuildMembersScreen(view)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "manage_members")
			return
		}
		hc.Answer("")
	})
}

// HandleManageRequests показывает заявки на вступление
func HandleManageRequests(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view := loadAdminView(hc, groupID, "manage_requests")
		if view == nil {
			return
		}

		text, kb := common.BuildRequestsScreen(view)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "manage_requests")
			return
		}
		hc.Answer("")
	})
}

// HandleEditDetails запускает диалог редактирования названия и описания
func HandleEditDetails(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view := loadAdminView(hc, groupID, "edit_details")
		if view == nil {
			return
		}

		hc.SetState(stateEditGroupName)
		hc.SetData(EditGroupIDKey, groupID)

		kb := keyboard.NewBuilder().
			Row(keyboard.CancelButton(fmt.Sprintf("manage_group:%d", groupID))).
			Build()
		text := fmt.Sprintf(
			"✏️ <b>Редактирование группы %s</b>\n\n"+
				"Текущее название: %s\n"+
				"Текущее описание: %s\n\n"+
				"Введите новое название:",
			view.Group.Name,
			view.Group.Name,
			view.Group.Description,
		)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "edit_details")
			return
		}
		hc.Answer("")
	})
}
