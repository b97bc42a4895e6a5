package layouts

import "time"

//go:generate mockgen -destination=mock/mock_time_provider.go -package=mocklayouts github.com/KirkDiggler/dungeon-builder/internal/repositories/layouts TimeProvider

type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
