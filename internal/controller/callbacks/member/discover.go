package member

import (
	"context"
	"strings"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Member: Discover Catalog
// ========================

// HandleDiscover показывает каталог групп с текущим фильтром
func HandleDiscover(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		// Возврат в каталог обрывает начатый ввод (поиск, пароль группы)
		hc.ClearState()
		RenderDiscover(hc, 0)
	})
}

// HandleDiscoverPage листает страницы каталога
func HandleDiscoverPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	page64, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		RenderDiscover(hc, int(page64))
	})
}

// RenderDiscover перечитывает полный каталог, применяет фильтр и рисует страницу.
// Фильтрация всегда считается заново по свежему срезу.
func RenderDiscover(hc *common.HandlerContext, page int) {
	snapshot, err := hc.Handler.DirectoryService.Fetch(hc.Ctx, hc.Token())
	if err != nil {
		common.HandleError(hc, err, "discover")
		return
	}

	filter := hc.Handler.Filters.Get(hc.TelegramID)
	groups := snapshot.Discover(filter)

	courseName := ""
	if course := snapshot.FindCourse(filter.CourseID); course != nil {
		courseName = course.CourseName
	}

	text, kb := common.BuildDiscoverScreen(groups, filter, courseName, page)
	if err := hc.EditMessage(text, kb); err != nil {
		common.HandleError(hc, err, "discover")
		return
	}
	hc.Answer("")
}

// parseCallbackSuffix возвращает часть callback data после префикса
func parseCallbackSuffix(data, prefix string) string {
	return strings.TrimPrefix(data, prefix)
}
