package wheel

import "time"

type Segment struct {
	ID           string `json:"id"`
	Label        string `json:"label"`         // Подпись на колесе
	Prize        string `json:"prize"`         // Описание приза
	Color        string `json:"color"`         // Цвет сектора
	RewardAmount int    `json:"reward_amount"` // Награда в монетах
}

type WheelResponse struct {
	Segments       []Segment `json:"segments"`
	SpinDurationMs int64     `json:"spin_duration_ms"` // Длительность анимации, после нее доступен результат
}

// SpinResponse сегмент и начисление отдаются только после раскрытия
type SpinResponse struct {
	SpinID        string    `json:"spin_id"`
	Nonce         uint64    `json:"nonce"`          // Номер вращения игрока, вход генератора
	TotalRotation float64   `json:"total_rotation"` // Накопленный поворот колеса в градусах
	Status        string    `json:"status"`         // pending, revealed, cancelled
	RevealAt      time.Time `json:"reveal_at"`
	Segment       *Segment  `json:"segment,omitempty"`
	Credited      *int      `json:"credited,omitempty"` // Начислено с учетом бустов
}

type StatsResponse struct {
	TotalSpins    int            `json:"total_spins"`
	TotalRewards  int            `json:"total_rewards"`
	SegmentHits   map[string]int `json:"segment_hits"`
	WindowSize    int            `json:"window_size"`
	WindowSpins   int            `json:"window_spins"`
	WindowAverage float64        `json:"window_average"` // Средняя награда за последние вращения
	ExpectedValue float64        `json:"expected_value"` // Теоретическая средняя награда
}

type FairnessResponse struct {
	ServerSeedHash string `json:"server_seed_hash"`
	Algorithm      string `json:"algorithm"`
}
