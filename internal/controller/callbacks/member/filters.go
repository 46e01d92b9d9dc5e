package member

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studygroup_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studygroup_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Состояния диалогов каталога (значения совпадают с пакетом state)
const stateSearchTerm callbacktypes.UserState = "search_term"

// ========================
// Member: Discover Filters
// ========================

// HandleFilterSearch запрашивает поисковую строку
func HandleFilterSearch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.SetState(stateSearchTerm)

		filter := h.Filters.Get(hc.TelegramID)
		text := "🔎 Введите часть названия группы:"
		builder := keyboard.NewBuilder()
		if filter.Search != "" {
			text = fmt.Sprintf("🔎 Текущий поиск: %q\n\nВведите новую строку поиска:", filter.Search)
			builder.Row(keyboard.Button("♻️ Очистить поиск", "disc_search_clear"))
		}
		builder.Row(keyboard.CancelButton("discover"))

		if err := hc.EditMessage(text, builder.Build()); err != nil {
			common.HandleError(hc, err, "filter_search")
			return
		}
		hc.Answer("")
	})
}

// HandleFilterSearchClear сбрасывает поисковую строку
func HandleFilterSearchClear(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		filter := h.Filters.Get(hc.TelegramID)
		filter.Search = ""
		h.Filters.Set(hc.TelegramID, filter)
		RenderDiscover(hc, 0)
	})
}

// HandleFilterCourse показывает выбор курса
func HandleFilterCourse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		snapshot, err := h.DirectoryService.Fetch(hc.Ctx, hc.Token())
		if err != nil {
			common.HandleError(hc, err, "filter_course")
			return
		}

		builder := keyboard.NewBuilder().
			Row(keyboard.Button("📚 Все курсы", "disc_course_set:"+service.CourseAll))
		for _, course := range snapshot.Courses {
			builder.Row(keyboard.Button(course.CourseName, "disc_course_set:"+course.CourseID))
		}
		builder.Row(keyboard.CancelButton("discover"))

		if err := hc.EditMessage("📚 Выберите курс:", builder.Build()); err != nil {
			common.HandleError(hc, err, "filter_course")
			return
		}
		hc.Answer("")
	})
}

// HandleFilterCourseSet применяет выбранный курс
func HandleFilterCourseSet(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	courseID := parseCallbackSuffix(callback.Data, "disc_course_set:")

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		filter := h.Filters.Get(hc.TelegramID)
		if courseID == service.CourseAll {
			filter.CourseID = ""
		} else {
			filter.CourseID = courseID
		}
		h.Filters.Set(hc.TelegramID, filter)
		RenderDiscover(hc, 0)
	})
}

// HandleFilterSize показывает выбор размера группы
func HandleFilterSize(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		builder := keyboard.NewBuilder()
		for _, bucket := range service.SizeBuckets {
			builder.Row(keyboard.Button("👥 "+bucket.Label, "disc_size_set:"+bucket.Key))
		}
		builder.Row(keyboard.CancelButton("discover"))

		if err := hc.EditMessage("👥 Выберите размер группы:", builder.Build()); err != nil {
			common.HandleError(hc, err, "filter_size")
			return
		}
		hc.Answer("")
	})
}

// HandleFilterSizeSet применяет выбранный размер
func HandleFilterSizeSet(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	key := parseCallbackSuffix(callback.Data, "disc_size_set:")

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		filter := h.Filters.Get(hc.TelegramID)
		if key == "any" {
			filter.SizeBucket = ""
		} else {
			filter.SizeBucket = service.SizeBucketByKey(key).Key
		}
		h.Filters.Set(hc.TelegramID, filter)
		RenderDiscover(hc, 0)
	})
}

// HandleFilterRating показывает выбор минимального рейтинга
func HandleFilterRating(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		builder := keyboard.NewBuilder()
		for _, threshold := range service.RatingThresholds {
			if threshold == 0 {
				builder.Row(keyboard.Button("⭐️ Любой рейтинг", "disc_rating_set:any"))
				continue
			}
			builder.Row(keyboard.Button(
				fmt.Sprintf("⭐️ От %.1f", threshold),
				fmt.Sprintf("disc_rating_set:%g", threshold),
			))
		}
		builder.Row(keyboard.CancelButton("discover"))

		if err := hc.EditMessage("⭐️ Выберите минимальный рейтинг:", builder.Build()); err != nil {
			common.HandleError(hc, err, "filter_rating")
			return
		}
		hc.Answer("")
	})
}

// HandleFilterRatingSet применяет выбранный порог рейтинга
func HandleFilterRatingSet(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	arg := parseCallbackSuffix(callback.Data, "disc_rating_set:")

	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		filter := h.Filters.Get(hc.TelegramID)
		if arg == "any" {
			filter.MinRating = 0
		} else if rating, err := strconv.ParseFloat(arg, 64); err == nil && rating > 0 {
			filter.MinRating = rating
		}
		h.Filters.Set(hc.TelegramID, filter)
		RenderDiscover(hc, 0)
	})
}

// HandleFilterReset сбрасывает все фильтры каталога
func HandleFilterReset(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		h.Filters.Set(hc.TelegramID, service.DiscoverFilter{})
		RenderDiscover(hc, 0)
	})
}
