package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/Freeeeeet/studygroup_bot/internal/portal"
	"go.uber.org/zap"
)

// Snapshot полный срез данных каталога. После любой мутации срез считается
// устаревшим и перезапрашивается целиком, локально он никогда не патчится.
type Snapshot struct {
	MyGroups  []model.Group
	AllGroups []model.Group
	Courses   []model.Course
	FetchedAt time.Time
}

type DirectoryService struct {
	portal *portal.Client
	logger *zap.Logger
}

func NewDirectoryService(portalClient *portal.Client, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		portal: portalClient,
		logger: logger,
	}
}

// Fetch запрашивает my-groups, all-groups и courses параллельно.
// Любая из трёх ошибок роняет весь срез: половинчатое состояние хуже пустого.
func (s *DirectoryService) Fetch(ctx context.Context, token string) (*Snapshot, error) {
	snapshot := &Snapshot{}

	var wg sync.WaitGroup
	errs := make([]error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		snapshot.MyGroups, errs[0] = s.portal.MyGroups(ctx, token)
	}()
	go func() {
		defer wg.Done()
		snapshot.AllGroups, errs[1] = s.portal.AllGroups(ctx, token)
	}()
	go func() {
		defer wg.Done()
		snapshot.Courses, errs[2] = s.portal.Courses(ctx, token)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	snapshot.FetchedAt = time.Now()

	s.logger.Debug("Directory snapshot fetched",
		zap.Int("my_groups", len(snapshot.MyGroups)),
		zap.Int("all_groups", len(snapshot.AllGroups)),
		zap.Int("courses", len(snapshot.Courses)))

	return snapshot, nil
}

// OwnedGroups группы, где пользователь владелец или админ
func (s *Snapshot) OwnedGroups() []model.Group {
	var owned []model.Group
	for _, g := range s.MyGroups {
		if model.IsAdminRole(g.UserRole) {
			owned = append(owned, g)
		}
	}
	return owned
}

// JoinedGroups группы, где пользователь обычный участник.
// Вместе с OwnedGroups это разбиение MyGroups без пересечений.
func (s *Snapshot) JoinedGroups() []model.Group {
	var joined []model.Group
	for _, g := range s.MyGroups {
		if !model.IsAdminRole(g.UserRole) {
			joined = append(joined, g)
		}
	}
	return joined
}

// IsMember проверяет членство по срезу my-groups
func (s *Snapshot) IsMember(groupID int64) bool {
	for _, g := range s.MyGroups {
		if g.GroupID == groupID {
			return true
		}
	}
	return false
}

// FindGroup ищет группу в каталоге, потом среди своих
func (s *Snapshot) FindGroup(groupID int64) *model.Group {
	for i := range s.AllGroups {
		if s.AllGroups[i].GroupID == groupID {
			return &s.AllGroups[i]
		}
	}
	for i := range s.MyGroups {
		if s.MyGroups[i].GroupID == groupID {
			return &s.MyGroups[i]
		}
	}
	return nil
}

// FindCourse ищет курс по ID
func (s *Snapshot) FindCourse(courseID string) *model.Course {
	for i := range s.Courses {
		if s.Courses[i].CourseID == courseID {
			return &s.Courses[i]
		}
	}
	return nil
}

// CourseAll значение фильтра "все курсы"
const CourseAll = "All"

// SizeBucket диапазон численности группы. Max == 0 означает открытый
// сверху диапазон ("101+").
type SizeBucket struct {
	Key   string
	Label string
	Min   int
	Max   int
}

// Contains проверяет попадание численности в диапазон
func (b SizeBucket) Contains(count int) bool {
	if count < b.Min {
		return false
	}
	if b.Max == 0 {
		return true
	}
	return count <= b.Max
}

// SizeBuckets доступные диапазоны численности, "any" первым
var SizeBuckets = []SizeBucket{
	{Key: "any", Label: "Любой размер", Min: 0, Max: 0},
	{Key: "1_10", Label: "1–10", Min: 1, Max: 10},
	{Key: "11_25", Label: "11–25", Min: 11, Max: 25},
	{Key: "26_50", Label: "26–50", Min: 26, Max: 50},
	{Key: "51_100", Label: "51–100", Min: 51, Max: 100},
	{Key: "101_plus", Label: "101+", Min: 101, Max: 0},
}

// SizeBucketByKey находит диапазон по ключу, дефолт — "any"
func SizeBucketByKey(key string) SizeBucket {
	for _, b := range SizeBuckets {
		if b.Key == key {
			return b
		}
	}
	return SizeBuckets[0]
}

// RatingThresholds доступные пороги рейтинга, 0 == "any"
var RatingThresholds = []float64{0, 3, 4, 4.5}

// DiscoverFilter параметры фильтрации каталога групп.
// Нулевое значение — фильтр выключен полностью.
type DiscoverFilter struct {
	Search     string
	CourseID   string  // CourseAll или пустая строка — без фильтра по курсу
	SizeBucket string  // ключ из SizeBuckets
	MinRating  float64 // 0 — без фильтра по рейтингу
}

// Matches проверяет одну группу против всех условий фильтра.
// Все условия соединены конъюнкцией.
func (f DiscoverFilter) Matches(g *model.Group) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.CourseID != "" && f.CourseID != CourseAll && g.AssociatedCourse.CourseID != f.CourseID {
		return false
	}
	if f.SizeBucket != "" && f.SizeBucket != "any" && !SizeBucketByKey(f.SizeBucket).Contains(g.MemberCount) {
		return false
	}
	if f.MinRating > 0 && g.Rating < f.MinRating {
		return false
	}
	return true
}

// Discover фильтрует каталог групп. Чистая функция над полным срезом:
// пересчитывается при каждом изменении фильтра, без инкрементальных индексов.
func (s *Snapshot) Discover(f DiscoverFilter) []model.Group {
	var result []model.Group
	for i := range s.AllGroups {
		if f.Matches(&s.AllGroups[i]) {
			result = append(result, s.AllGroups[i])
		}
	}
	return result
}
