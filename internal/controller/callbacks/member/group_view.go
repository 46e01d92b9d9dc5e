package member

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Member: Group Details
// ========================

// HandleViewGroup показывает карточку группы с доступными действиями
func HandleViewGroup(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		RenderGroupDetails(hc, groupID)
	})
}

// RenderGroupDetails перечитывает срез и рисует карточку группы
func RenderGroupDetails(hc *common.HandlerContext, groupID int64) {
	snapshot, err := hc.Handler.DirectoryService.Fetch(hc.Ctx, hc.Token())
	if err != nil {
		common.HandleError(hc, err, "view_group")
		return
	}

	RenderGroupDetailsFromSnapshot(hc, snapshot, groupID)
}

// RenderGroupDetailsFromSnapshot рисует карточку группы по готовому срезу.
// Используется после мутаций, когда сервис уже вернул свежий срез.
func RenderGroupDetailsFromSnapshot(hc *common.HandlerContext, snapshot *service.Snapshot, groupID int64) {
	group := snapshot.FindGroup(groupID)
	if group == nil {
		common.HandleError(hc, common.ErrGroupNotFound, "view_group")
		return
	}

	isMember := snapshot.IsMember(groupID)
	backData := "discover"
	if isMember {
		backData = "my_groups"
		// В общем каталоге роль не возвращается, берём её из my-groups
		if mine := findInMyGroups(snapshot, groupID); mine != nil {
			group = mine
		}
	}

	text, kb := common.BuildGroupDetailsScreen(group, isMember, backData)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "view_group")
		return
	}
	hc.Answer("")
}

// findInMyGroups ищет группу в списке групп пользователя (там есть userRole)
func findInMyGroups(snapshot *service.Snapshot, groupID int64) *model.Group {
	for i := range snapshot.MyGroups {
		if snapshot.MyGroups[i].GroupID == groupID {
			return &snapshot.MyGroups[i]
		}
	}
	return nil
}

// HandleViewGroupCard отправляет PNG-карточку группы отдельным сообщением
func HandleViewGroupCard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	groupID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		snapshot, err := h.DirectoryService.Fetch(hc.Ctx, hc.Token())
		if err != nil {
			common.HandleError(hc, err, "view_group_card")
			return
		}

		group := snapshot.FindGroup(groupID)
		if group == nil {
			common.HandleError(hc, common.ErrGroupNotFound, "view_group_card")
			return
		}

		png, err := common.GenerateGroupCard(group)
		if err != nil {
			h.Logger.Error("Failed to render group card",
				zap.Int64("group_id", groupID),
				zap.Error(err))
			hc.AnswerAlert("❌ Не удалось нарисовать карточку группы")
			return
		}

		photo := &models.InputFileUpload{
			Filename: fmt.Sprintf("group_%d.png", groupID),
			Data:     bytes.NewReader(png),
		}
		if err := hc.SendPhoto(photo, group.Name, nil); err != nil {
			common.HandleError(hc, err, "view_group_card")
			return
		}
		hc.Answer("")
	})
}
