package common

import (
	"bytes"
	"image/png"
	"sync"
	"testing"

	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardGroup() *model.Group {
	return &model.Group{
		GroupID:          5,
		Name:             "Матанализ",
		Description:      "Готовимся к экзамену",
		Privacy:          model.PrivacyPublic,
		MemberCount:      3,
		MemberLimit:      25,
		Rating:           4.5,
		AssociatedCourse: model.Course{CourseID: "math", CourseName: "Математика"},
	}
}

func TestGenerateGroupCard(t *testing.T) {
	data, err := GenerateGroupCard(cardGroup())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, cardWidth, img.Bounds().Dx())
	assert.Equal(t, cardHeight, img.Bounds().Dy())
}

// Карточки рисуются из конкурентных callback-горутин,
// кеш шрифтов не должен ломаться под гонкой.
func TestGenerateGroupCard_Concurrent(t *testing.T) {
	g := cardGroup()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := GenerateGroupCard(g)
			assert.NoError(t, err)
			assert.NotEmpty(t, data)
		}()
	}
	wg.Wait()
}
