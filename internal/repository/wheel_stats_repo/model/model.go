package model

// WheelState накопленная статистика колеса
type WheelState struct {
	TotalSpins   int            // Сколько всего вращений раскрыто
	TotalRewards int            // Сумма реально начисленных наград
	SegmentHits  map[string]int // Попадания по сегментам

	Window     []int // Окно начислений последних вращений
	WindowSize int   // Размер окна
}
