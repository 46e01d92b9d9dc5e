package admin

import (
	"context"
	"strconv"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Admin: Join Requests
// ========================

// HandleViewRequester показывает профиль подавшего заявку
func HandleViewRequester(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, requestID, err := common.ParseTwoIDsFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view := loadAdminView(hc, groupID, "view_requester")
		if view == nil {
			return
		}

		request := view.FindRequest(requestID)
		if request == nil {
			common.HandleError(hc, common.ErrRequestNotFound, "view_requester")
			return
		}

		text, kb := common.BuildRequesterScreen(view, request)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "view_requester")
			return
		}
		hc.Answer("")
	})
}

// HandleRequestDecide одобряет или отклоняет заявку.
// Ответ сервера на уже решённую заявку показывается как есть: чужое решение,
// проскочившее первым, не маскируется.
func HandleRequestDecide(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	args, err := common.ParseArgsFromCallback(callback.Data, 3)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	groupID, err1 := strconv.ParseInt(args[0], 10, 64)
	requestID, err2 := strconv.ParseInt(args[1], 10, 64)
	if err1 != nil || err2 != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrInvalidFormat))
		return
	}
	action := args[2]

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view := loadAdminView(hc, groupID, "request_decide")
		if view == nil {
			return
		}

		if err := h.ConsoleService.ResolveRequest(hc.Ctx, hc.Token(), groupID, requestID, action); err != nil {
			common.HandleError(hc, err, "request_decide")
			return
		}

		if action == model.RequestStatusApproved {
			hc.AnswerAlert("✅ Заявка одобрена")
		} else {
			hc.AnswerAlert("🚫 Заявка отклонена")
		}

		renderRequests(hc, groupID)
	})
}

// renderRequests перечитывает срез группы и рисует список заявок
func renderRequests(hc *common.HandlerContext, groupID int64) {
	view := loadAdminView(hc, groupID, "requests_refresh")
	if view == nil {
		return
	}

	text, kb := common.BuildRequestsScreen(view)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "requests_refresh")
	}
}
