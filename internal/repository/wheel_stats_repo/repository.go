package wheel_stats_repo

import (
	"sync"

	"fortune_wheel/internal/model"
	repoModel "fortune_wheel/internal/repository/wheel_stats_repo/model"
)

const defaultWindowSize = 500

// StatsRepo статистика колеса в памяти процесса
type StatsRepo struct {
	mtx           sync.RWMutex
	state         repoModel.WheelState
	expectedValue float64
}

// NewWheelStatsRepository ожидаемая награда считается по сегментам колеса,
// все сегменты равновероятны
func NewWheelStatsRepository(segments []model.Segment, windowSize int) *StatsRepo {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}

	var ev float64
	if len(segments) > 0 {
		total := 0
		for _, s := range segments {
			total += s.RewardAmount
		}
		ev = float64(total) / float64(len(segments))
	}

	return &StatsRepo{
		state: repoModel.WheelState{
			SegmentHits: make(map[string]int, len(segments)),
			Window:      make([]int, 0, windowSize),
			WindowSize:  windowSize,
		},
		expectedValue: ev,
	}
}

// UpdateStats учитывает раскрытое вращение. credited - реально начисленная сумма с учетом бустов
func (r *StatsRepo) UpdateStats(segmentID string, credited int) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.TotalSpins++
	r.state.TotalRewards += credited
	r.state.SegmentHits[segmentID]++

	r.state.Window = append(r.state.Window, credited)
	// Поддерживаем размер окна
	if len(r.state.Window) > r.state.WindowSize {
		r.state.Window = r.state.Window[1:]
	}
}

// Stats копия текущей статистики
func (r *StatsRepo) Stats() model.WheelStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	hits := make(map[string]int, len(r.state.SegmentHits))
	for id, n := range r.state.SegmentHits {
		hits[id] = n
	}

	var windowSum int
	for _, reward := range r.state.Window {
		windowSum += reward
	}
	var windowAvg float64
	if len(r.state.Window) > 0 {
		windowAvg = float64(windowSum) / float64(len(r.state.Window))
	}

	return model.WheelStats{
		TotalSpins:    r.state.TotalSpins,
		TotalRewards:  r.state.TotalRewards,
		SegmentHits:   hits,
		WindowSize:    r.state.WindowSize,
		WindowSpins:   len(r.state.Window),
		WindowAverage: windowAvg,
		ExpectedValue: r.expectedValue,
	}
}
