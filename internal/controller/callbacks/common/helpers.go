package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIDFromCallback извлекает ID из callback data
// Например: "view_group:123" -> 123
func ParseIDFromCallback(data string) (int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidFormat
	}
	return strconv.ParseInt(parts[1], 10, 64)
}

// ParseArgsFromCallback извлекает аргументы после префикса.
// Например: "set_role:12:7:ADMIN" при n=3 -> ["12", "7", "ADMIN"]
func ParseArgsFromCallback(data string, n int) ([]string, error) {
	parts := strings.Split(data, ":")
	if len(parts) != n+1 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return parts[1:], nil
}

// ParseTwoIDsFromCallback извлекает два ID из callback data.
// Например: "member_actions:12:7" -> 12, 7
func ParseTwoIDsFromCallback(data string) (int64, int64, error) {
	args, err := ParseArgsFromCallback(data, 2)
	if err != nil {
		return 0, 0, err
	}
	first, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	second, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return first, second, nil
}
