package model

import "time"

type Segment struct {
	ID           string
	Label        string
	Prize        string
	Color        string
	RewardAmount int
}

// SpinOutcome результат одного вращения колеса
type SpinOutcome struct {
	TotalRotationDegrees float64
	WinningSegment       Segment
}

type SpinStatus string

const (
	SpinPending   SpinStatus = "pending"
	SpinRevealed  SpinStatus = "revealed"
	SpinCancelled SpinStatus = "cancelled"
)

// Spin запись о вращении игрока.
// TotalRotation последнего вращения является накопителем поворота колеса
type Spin struct {
	ID            string
	PlayerID      string
	Nonce         uint64
	TotalRotation float64
	Segment       Segment
	Credited      int // Сколько монет реально начислено (с учетом бустов)
	Status        SpinStatus
	CreatedAt     time.Time
	RevealAt      time.Time
}

type WheelInfo struct {
	Segments     []Segment
	SpinDuration time.Duration
}

// WheelStats статистика колеса по всем игрокам
type WheelStats struct {
	TotalSpins    int
	TotalRewards  int // Реально начислено игрокам, с бустами
	SegmentHits   map[string]int
	WindowSize    int
	WindowSpins   int
	WindowAverage float64 // Среднее начисление в окне последних вращений
	ExpectedValue float64 // Теоретическая средняя награда сектора без бустов
}
