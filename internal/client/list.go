package client

import (
	"slices"

	"nationwide/internal/models"
)

// List is a local copy of server records, updated in place after each successful call
// so the screen does not need to reload.
type List[T any] struct {
	items   []T
	id      func(T) string
	compare func(a, b T) int
}

// NewVideoList keeps videos in display order.
func NewVideoList(videos []*models.Video) *List[*models.Video] {
	l := &List[*models.Video]{id: videoID, compare: compareVideos}
	l.Replace(videos)
	return l
}

// NewAchievementList keeps achievements newest first.
func NewAchievementList(items []*models.Achievement) *List[*models.Achievement] {
	l := &List[*models.Achievement]{id: achievementID, compare: newestFirst}
	l.Replace(items)
	return l
}

func videoID(v *models.Video) string { return v.ID }

func achievementID(a *models.Achievement) string { return a.ID }

func compareVideos(a, b *models.Video) int {
	if a.Order != b.Order {
		return a.Order - b.Order
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}

func newestFirst(a, b *models.Achievement) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}

func (l *List[T]) Replace(items []T) {
	l.items = slices.Clone(items)
	l.sort()
}

func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

func (l *List[T]) Len() int {
	return len(l.items)
}

// Upsert replaces the record with the same id or adds it.
func (l *List[T]) Upsert(item T) {
	id := l.id(item)
	if i := l.index(id); i >= 0 {
		l.items[i] = item
	} else {
		l.items = append(l.items, item)
	}
	l.sort()
}

// Remove drops the record with the given id. It reports whether one was found.
func (l *List[T]) Remove(id string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

func (l *List[T]) index(id string) int {
	return slices.IndexFunc(l.items, func(item T) bool { return l.id(item) == id })
}

func (l *List[T]) sort() {
	if l.compare != nil {
		slices.SortStableFunc(l.items, l.compare)
	}
}
