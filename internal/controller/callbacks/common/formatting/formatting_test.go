package formatting

import (
	"testing"

	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPluralizeMembers(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "участник"},
		{2, "участника"},
		{4, "участника"},
		{5, "участников"},
		{11, "участников"},
		{12, "участников"},
		{21, "участник"},
		{22, "участника"},
		{100, "участников"},
		{101, "участник"},
		{111, "участников"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizeMembers(tt.count), "count=%d", tt.count)
	}
}

func TestPluralizeGroupsAndRequests(t *testing.T) {
	assert.Equal(t, "группа", PluralizeGroups(1))
	assert.Equal(t, "группы", PluralizeGroups(3))
	assert.Equal(t, "групп", PluralizeGroups(7))
	assert.Equal(t, "заявка", PluralizeRequests(21))
	assert.Equal(t, "заявки", PluralizeRequests(2))
	assert.Equal(t, "заявок", PluralizeRequests(15))
}

func TestRatingStars(t *testing.T) {
	assert.Equal(t, "нет оценок", RatingStars(0))
	assert.Equal(t, "нет оценок", RatingStars(-1))
	assert.Equal(t, "★★★ (3.0)", RatingStars(3))
	assert.Equal(t, "★★★★½ (4.5)", RatingStars(4.5))
	assert.Equal(t, "★★★★★ (5.0)", RatingStars(5))
}

func TestFormatCapacity(t *testing.T) {
	unlimited := &model.Group{MemberCount: 3}
	assert.Equal(t, "3 участника", FormatCapacity(unlimited))

	limited := &model.Group{MemberCount: 3, MemberLimit: 25}
	assert.Equal(t, "3/25 участников", FormatCapacity(limited))

	full := &model.Group{MemberCount: 25, MemberLimit: 25}
	assert.Equal(t, "25/25 участников (мест нет)", FormatCapacity(full))
}

func TestGetPrivacyDisplay(t *testing.T) {
	public := GetPrivacyDisplay(model.PrivacyPublic)
	assert.Equal(t, "🌐", public.Emoji)

	private := GetPrivacyDisplay(model.PrivacyPrivate)
	assert.Equal(t, "🔒", private.Emoji)
}

func TestGetRequestStatusDisplay(t *testing.T) {
	pending := GetRequestStatusDisplay(model.RequestStatusPending)
	assert.NotEmpty(t, pending.Emoji)
	assert.NotEmpty(t, pending.Text)
}
