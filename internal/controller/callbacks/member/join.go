package member

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const stateAwaitingPasskey callbacktypes.UserState = "awaiting_passkey"

// JoinGroupIDKey ключ state data с ID группы, в которую пользователь вступает
const JoinGroupIDKey = "join_group_id"

// ========================
// Member: Join Workflow
// ========================

// HandleJoinGroup запускает вступление в группу. Дальнейший путь зависит от
// приватности группы: сразу, через ввод пароля или через заявку админам.
func HandleJoinGroup(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		snapshot, err := h.DirectoryService.Fetch(hc.Ctx, hc.Token())
		if err != nil {
			common.HandleError(hc, err, "join_group")
			return
		}

		group := snapshot.FindGroup(groupID)
		if group == nil {
			common.HandleError(hc, common.ErrGroupNotFound, "join_group")
			return
		}
		if snapshot.IsMember(groupID) {
			hc.AnswerAlert("✅ Вы уже состоите в этой группе")
			return
		}
		if group.IsFull() {
			hc.AnswerAlert("⛔️ В группе нет свободных мест")
			return
		}

		switch service.Decide(group) {
		case service.JoinDirect:
			submitJoin(hc, group, nil, "✅ Вы вступили в группу!")

		case service.JoinWithPasskey:
			hc.SetState(stateAwaitingPasskey)
			hc.SetData(JoinGroupIDKey, groupID)

			kb := keyboard.NewBuilder().
				Row(keyboard.CancelButton(fmt.Sprintf("view_group:%d", groupID))).
				Build()
			text := "🔑 Группа <b>" + group.Name + "</b> защищена паролем.\n\nВведите пароль группы:"
			if err := hc.EditMessage(text, kb); err != nil {
				common.HandleError(hc, err, "join_group")
				return
			}
			hc.Answer("")

		case service.JoinByRequest:
			text, kb := common.BuildJoinRequestConfirmScreen(group)
			if err := hc.EditMessage(text, kb); err != nil {
				common.HandleError(hc, err, "join_group")
				return
			}
			hc.Answer("")
		}
	})
}

// HandleJoinRequestConfirm отправляет заявку на вступление после подтверждения
func HandleJoinRequestConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		snapshot, err := h.DirectoryService.Fetch(hc.Ctx, hc.Token())
		if err != nil {
			common.HandleError(hc, err, "join_request")
			return
		}

		group := snapshot.FindGroup(groupID)
		if group == nil {
			common.HandleError(hc, common.ErrGroupNotFound, "join_request")
			return
		}

		submitJoin(hc, group, nil, "📨 Заявка отправлена! Админы группы рассмотрят её.")
	})
}

// submitJoin выполняет сетевой вызов вступления и перерисовывает карточку
// группы по свежему срезу. successFallback показывается, если сервер не
// вернул собственного сообщения.
func submitJoin(hc *common.HandlerContext, group *model.Group, passkey *string, successFallback string) {
	outcome, err := hc.Handler.JoinService.Submit(hc.Ctx, hc.Token(), group, passkey)
	if err != nil {
		common.HandleError(hc, err, "join_submit")
		return
	}

	message := outcome.Message
	if message == "" {
		message = successFallback
	}
	hc.AnswerAlert(message)

	if outcome.Snapshot != nil {
		RenderGroupDetailsFromSnapshot(hc, outcome.Snapshot, group.GroupID)
	}
}

// ========================
// Member: Leaving a Group
// ========================

// HandleLeaveGroup показывает подтверждение выхода из группы
func HandleLeaveGroup(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		snapshot, err := h.DirectoryService.Fetch(hc.Ctx, hc.Token())
		if err != nil {
			common.HandleError(hc, err, "leave_group")
			return
		}

		group := snapshot.FindGroup(groupID)
		if group == nil {
			common.HandleError(hc, common.ErrGroupNotFound, "leave_group")
			return
		}
		if mine := findInMyGroups(snapshot, groupID); mine != nil {
			group = mine
		}

		text, kb := common.BuildLeaveGroupConfirmScreen(group, hc.Session.UserID)
		if err := hc.EditMessage(text, kb); err != nil {
			common.HandleError(hc, err, "leave_group")
			return
		}
		hc.Answer("")
	})
}

// HandleConfirmLeave выполняет выход из группы и возвращает к списку групп
func HandleConfirmLeave(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		message, err := h.ConsoleService.Leave(hc.Ctx, hc.Token(), groupID)
		if err != nil {
			common.HandleError(hc, err, "confirm_leave")
			return
		}

		if message == "" {
			message = "🚪 Вы покинули группу"
		}
		hc.AnswerAlert(message)

		RenderMyGroups(hc)
	})
}
