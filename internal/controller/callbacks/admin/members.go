package admin

import (
	"context"
	"strconv"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Admin: Member Management
// ========================

// HandleMemberActions показывает действия над участником
func HandleMemberActions(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, memberID, err := common.ParseTwoIDsFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view := loadAdminView(hc, groupID, "member_actions")
		if view == nil {
			return
		}

		member := view.FindMember(memberID)
		if member == nil {
			common.HandleError(hc, common.ErrMemberNotFound, "member_actions")
			return
		}

		text, kb := common.BuildMemberActionsScreen(view, member, hc.Session.UserID)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "member_actions")
			return
		}
		hc.Answer("")
	})
}

// HandleSetRole меняет роль участника и перерисовывает список по свежему срезу
func HandleSetRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.ParseArgsFromCallback(callback.Data, 3)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	groupID, err1 := strconv.ParseInt(args[0], 10, 64)
	memberID, err2 := strconv.ParseInt(args[1], 10, 64)
	if err1 != nil || err2 != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	newRole := args[2]

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view := loadAdminView(hc, groupID, "set_role")
		if view == nil {
			return
		}

		if err := h.ConsoleService.ChangeRole(hc.Ctx, hc.Token(), view, memberID, hc.Session.UserID, newRole); err != nil {
			common.HandleError(hc, err, "set_role")
			return
		}

		hc.AnswerAlert("✅ Роль обновлена")
		renderMembers(hc, groupID)
	})
}

// HandleRemoveMember показывает подтверждение исключения участника
func HandleRemoveMember(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, memberID, err := common.ParseTwoIDsFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view := loadAdminView(hc, groupID, "remove_member")
		if view == nil {
			return
		}

		member := view.FindMember(memberID)
		if member == nil {
			common.HandleError(hc, common.ErrMemberNotFound, "remove_member")
			return
		}

		text, kb := common.BuildRemoveMemberConfirmScreen(view, member)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "remove_member")
			return
		}
		hc.Answer("")
	})
}

// HandleConfirmRemove исключает участника и перерисовывает список
func HandleConfirmRemove(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, memberID, err := common.ParseTwoIDsFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view := loadAdminView(hc, groupID, "confirm_remove")
		if view == nil {
			return
		}

		message, err := h.ConsoleService.RemoveMember(hc.Ctx, hc.Token(), view, memberID, hc.Session.UserID)
		if err != nil {
			common.HandleError(hc, err, "confirm_remove")
			return
		}

		if message == "" {
			message = "🚫 Участник исключён из группы"
		}
		hc.AnswerAlert(message)
		renderMembers(hc, groupID)
	})
}

// renderMembers перечитывает срез группы и рисует список участников
func renderMembers(hc *common.HandlerContext, groupID int64) {
	view := loadAdminView(hc, groupID, "members_refresh")
	if view == nil {
		return
	}

	text, kb := common.BuildMembersScreen(view)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "members_refresh")
	}
}
