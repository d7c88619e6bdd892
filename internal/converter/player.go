package converter

import (
	"fortune_wheel/internal/api/dto/player"
	"fortune_wheel/internal/model"
)

func ToRegisterResponse(data model.AuthData) player.RegisterResponse {
	return player.RegisterResponse{
		PlayerID:    data.PlayerID,
		AccessToken: data.AccessToken,
	}
}

func ToProfileResponse(profile model.Profile) player.ProfileResponse {
	p := profile.Player

	boosts := make([]player.Boost, len(p.Boosts))
	for i, b := range p.Boosts {
		boosts[i] = player.Boost{
			ItemID:     b.ItemID,
			Multiplier: b.Multiplier,
			MinReward:  b.MinReward,
			SpinsLeft:  b.SpinsLeft,
			ExpiresAt:  timePtr(b.ExpiresAt),
		}
	}

	bonuses := make([]player.DailyBonus, len(profile.DailyBonuses))
	for i, b := range profile.DailyBonuses {
		bonuses[i] = player.DailyBonus{
			Day:     b.Day,
			Reward:  b.Reward,
			Claimed: b.Claimed,
			Current: b.Current,
		}
	}

	return player.ProfileResponse{
		ID:                p.ID,
		Name:              p.Name,
		Coins:             p.Coins,
		Level:             p.Level,
		Experience:        p.Experience,
		MaxExperience:     p.MaxExperience,
		ExperiencePercent: profile.ExperiencePercent,
		DailyStreak:       p.DailyStreak,
		TotalSpins:        p.TotalSpins,
		LastLogin:         p.LastLogin,
		Boosts:            boosts,
		DailyBonuses:      bonuses,
	}
}

func ToBonusClaimResponse(claim model.BonusClaim) player.BonusClaimResponse {
	return player.BonusClaimResponse{
		Day:     claim.Day,
		Reward:  claim.Reward,
		Streak:  claim.Streak,
		Balance: claim.Balance,
	}
}
