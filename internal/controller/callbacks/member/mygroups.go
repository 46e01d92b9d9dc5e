package member

import (
	"context"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Member: My Groups
// ========================

// HandleMyGroups показывает список групп пользователя
func HandleMyGroups(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		RenderMyGroups(hc)
	})
}

// RenderMyGroups перечитывает срез каталога и рисует экран "Мои группы"
func RenderMyGroups(hc *common.HandlerContext) {
	snapshot, err := hc.Handler.DirectoryService.Fetch(hc.Ctx, hc.Token())
	if err != nil {
		common.HandleError(hc, err, "my_groups")
		return
	}

	text, kb := common.BuildMyGroupsScreen(snapshot.OwnedGroups(), snapshot.JoinedGroups())
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "my_groups")
		return
	}
	hc.Answer("")
}
