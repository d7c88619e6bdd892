package wheel

import (
	"errors"
	"math"

	"fortune_wheel/internal/model"
)

const (
	fullCircle = 360.0
	// Минимальное количество полных оборотов за вращение
	minFullSpins = 3
	// Сколько оборотов может добавиться сверху (итого 3..6)
	extraFullSpins = 3
)

// ErrInvalidConfiguration колесо без сегментов
var ErrInvalidConfiguration = errors.New("wheel: invalid configuration: no segments")

// RandomSource возвращает равномерно распределенные числа в [0,1)
type RandomSource func() float64

// ComputeSpin вычисляет новый накопленный поворот колеса и выигрышный сегмент.
// Накопитель никогда не сбрасывается, поэтому колесо всегда крутится вперед
func ComputeSpin(currentRotation float64, segments []model.Segment, rnd RandomSource) (model.SpinOutcome, error) {
	if len(segments) == 0 {
		return model.SpinOutcome{}, ErrInvalidConfiguration
	}

	spinCount := minFullSpins + rnd()*extraFullSpins
	extraDegrees := rnd() * fullCircle

	newRotation := currentRotation + spinCount*fullCircle + extraDegrees

	return model.SpinOutcome{
		TotalRotationDegrees: newRotation,
		WinningSegment:       segments[WinningIndex(newRotation, len(segments))],
	}, nil
}

// WinningIndex индекс сегмента под указателем для заданного поворота.
// Колесо крутится по часовой стрелке, а сегменты отсчитываются от указателя,
// поэтому угол разворачивается в обратную сторону
func WinningIndex(rotation float64, segmentCount int) int {
	if segmentCount <= 0 {
		return 0
	}

	sliceAngle := fullCircle / float64(segmentCount)
	normalized := math.Mod(fullCircle-math.Mod(rotation, fullCircle), fullCircle)

	idx := int(math.Floor(normalized / sliceAngle))
	if idx < 0 {
		idx = 0
	}
	if idx > segmentCount-1 {
		idx = segmentCount - 1
	}
	return idx
}
