package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс для callback (например "discover_page:")
// currentPage - текущая страница (0-based)
// totalPages - всего страниц
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	// Кнопка "Предыдущая"
	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	// Индикатор страницы
	buttons = append(buttons, Button(
		fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages),
		"noop",
	))

	// Кнопка "Следующая"
	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	buttons := PaginationButtons(prefix, currentPage, totalPages)
	if len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}

// TotalPages считает количество страниц для списка из n элементов
func TotalPages(n, perPage int) int {
	if n <= 0 || perPage <= 0 {
		return 1
	}
	pages := (n + perPage - 1) / perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// PageBounds возвращает границы среза для страницы page (0-based)
func PageBounds(n, perPage, page int) (int, int) {
	start := page * perPage
	if start >= n {
		start = 0
	}
	end := start + perPage
	if end > n {
		end = n
	}
	return start, end
}
