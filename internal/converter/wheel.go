package converter

import (
	"fortune_wheel/internal/api/dto/wheel"
	"fortune_wheel/internal/model"
)

func ToWheelResponse(info model.WheelInfo) wheel.WheelResponse {
	segments := make([]wheel.Segment, len(info.Segments))
	for i, s := range info.Segments {
		segments[i] = toSegment(s)
	}

	return wheel.WheelResponse{
		Segments:       segments,
		SpinDurationMs: info.SpinDuration.Milliseconds(),
	}
}

// ToSpinResponse пока вращение не раскрыто, сегмент и начисление не отдаются
func ToSpinResponse(spin model.Spin) wheel.SpinResponse {
	res := wheel.SpinResponse{
		SpinID:        spin.ID,
		Nonce:         spin.Nonce,
		TotalRotation: spin.TotalRotation,
		Status:        string(spin.Status),
		RevealAt:      spin.RevealAt,
	}

	if spin.Status == model.SpinRevealed {
		segment := toSegment(spin.Segment)
		credited := spin.Credited
		res.Segment = &segment
		res.Credited = &credited
	}

	return res
}

func ToStatsResponse(stats model.WheelStats) wheel.StatsResponse {
	return wheel.StatsResponse{
		TotalSpins:    stats.TotalSpins,
		TotalRewards:  stats.TotalRewards,
		SegmentHits:   stats.SegmentHits,
		WindowSize:    stats.WindowSize,
		WindowSpins:   stats.WindowSpins,
		WindowAverage: stats.WindowAverage,
		ExpectedValue: stats.ExpectedValue,
	}
}

func toSegment(s model.Segment) wheel.Segment {
	return wheel.Segment{
		ID:           s.ID,
		Label:        s.Label,
		Prize:        s.Prize,
		Color:        s.Color,
		RewardAmount: s.RewardAmount,
	}
}
