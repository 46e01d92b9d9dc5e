package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationButtons(t *testing.T) {
	// одна страница не требует пагинации
	assert.Nil(t, PaginationButtons("p:", 0, 1))

	// первая страница: индикатор и "вперёд"
	buttons := PaginationButtons("p:", 0, 3)
	require.Len(t, buttons, 2)
	assert.Equal(t, "noop", buttons[0].CallbackData)
	assert.Equal(t, "p:1", buttons[1].CallbackData)

	// середина: обе стрелки
	buttons = PaginationButtons("p:", 1, 3)
	require.Len(t, buttons, 3)
	assert.Equal(t, "p:0", buttons[0].CallbackData)
	assert.Equal(t, "📄 2/3", buttons[1].Text)
	assert.Equal(t, "p:2", buttons[2].CallbackData)

	// последняя страница: только "назад" и индикатор
	buttons = PaginationButtons("p:", 2, 3)
	require.Len(t, buttons, 2)
	assert.Equal(t, "p:1", buttons[0].CallbackData)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 2, TotalPages(6, 5))
	assert.Equal(t, 3, TotalPages(11, 5))
	assert.Equal(t, 1, TotalPages(10, 0))
}

func TestPageBounds(t *testing.T) {
	start, end := PageBounds(12, 5, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	start, end = PageBounds(12, 5, 2)
	assert.Equal(t, 10, start)
	assert.Equal(t, 12, end)

	// страница за пределами списка откатывается к началу
	start, end = PageBounds(12, 5, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)
}
