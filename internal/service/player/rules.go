package player

import (
	"time"

	"fortune_wheel/internal/model"
	"fortune_wheel/internal/service"
)

func newPlayer(id, name string, startingCoins, experiencePerLevel int, now time.Time) model.Player {
	return model.Player{
		ID:            id,
		Name:          name,
		Coins:         startingCoins,
		Level:         1,
		MaxExperience: experiencePerLevel,
		LastLogin:     now,
		CreatedAt:     now,
	}
}

// applyReward начисляет награду вращения с учетом бустов и опыт.
// Гарантированный минимум поднимает только зачисляемую награду, amount == 0 не трогает.
// Возвращает реально начисленную сумму
func applyReward(p *model.Player, amount, experiencePerSpin, experiencePerLevel int, now time.Time) int {
	p.Boosts = activeBoosts(p.Boosts, now)

	if amount > 0 {
		amount = max(amount, minReward(p.Boosts))
	}
	credited := amount * multiplier(p.Boosts)

	// Каждое вращение съедает одно вращение у бустов с ограничением
	kept := p.Boosts[:0]
	for _, b := range p.Boosts {
		if b.SpinsLeft > 0 {
			b.SpinsLeft--
			if b.SpinsLeft == 0 {
				continue
			}
		}
		kept = append(kept, b)
	}
	p.Boosts = kept

	p.Coins += credited
	p.TotalSpins++
	addExperience(p, experiencePerSpin, experiencePerLevel)

	return credited
}

func addExperience(p *model.Player, xp, experiencePerLevel int) {
	p.Experience += xp
	for p.MaxExperience > 0 && p.Experience >= p.MaxExperience {
		p.Experience -= p.MaxExperience
		p.Level++
		p.MaxExperience = p.Level * experiencePerLevel
	}
}

// activeBoosts отбрасывает истекшие по времени бусты
func activeBoosts(boosts []model.Boost, now time.Time) []model.Boost {
	res := make([]model.Boost, 0, len(boosts))
	for _, b := range boosts {
		if !b.ExpiresAt.IsZero() && !now.Before(b.ExpiresAt) {
			continue
		}
		res = append(res, b)
	}
	return res
}

// multiplier бусты не складываются, действует наибольший
func multiplier(boosts []model.Boost) int {
	m := 1
	for _, b := range boosts {
		if b.Multiplier > m {
			m = b.Multiplier
		}
	}
	return m
}

func minReward(boosts []model.Boost) int {
	var floor int
	for _, b := range boosts {
		floor = max(floor, b.MinReward)
	}
	return floor
}

// claimBonus забирает ежедневный бонус. День считается по UTC
func claimBonus(p *model.Player, rewards []int, now time.Time) (model.BonusClaim, error) {
	if sameDay(p.LastBonusClaim, now) {
		return model.BonusClaim{}, service.ErrBonusClaimed
	}

	if sameDay(p.LastBonusClaim, now.AddDate(0, 0, -1)) {
		p.DailyStreak++
	} else {
		p.DailyStreak = 1
	}

	day := (p.DailyStreak-1)%len(rewards) + 1
	reward := rewards[day-1]

	p.Coins += reward
	p.LastBonusClaim = now

	return model.BonusClaim{
		Day:     day,
		Reward:  reward,
		Streak:  p.DailyStreak,
		Balance: p.Coins,
	}, nil
}

// dailyBonuses неделя бонусов с отметками забранных дней и текущего
func dailyBonuses(p model.Player, rewards []int, now time.Time) []model.DailyBonus {
	n := len(rewards)

	var current, claimedUpTo int
	switch {
	case sameDay(p.LastBonusClaim, now):
		current = (p.DailyStreak-1)%n + 1
		claimedUpTo = current
	case sameDay(p.LastBonusClaim, now.AddDate(0, 0, -1)):
		current = p.DailyStreak%n + 1
		claimedUpTo = current - 1
	default:
		current = 1
	}

	res := make([]model.DailyBonus, 0, n)
	for i, reward := range rewards {
		day := i + 1
		res = append(res, model.DailyBonus{
			Day:     day,
			Reward:  reward,
			Claimed: day <= claimedUpTo,
			Current: day == current,
		})
	}
	return res
}

func experiencePercent(p model.Player) float64 {
	if p.MaxExperience <= 0 {
		return 0
	}
	return float64(p.Experience) / float64(p.MaxExperience) * 100
}

// buyItem списывает цену и активирует эффект предмета
func buyItem(p *model.Player, item model.ShopItem, now time.Time) (*model.Boost, error) {
	if p.Coins < item.Price {
		return nil, service.ErrInsufficientCoins
	}
	p.Coins -= item.Price

	if item.Effect == nil {
		return nil, nil
	}

	boost := model.Boost{
		ItemID:     item.ID,
		Multiplier: max(item.Effect.Multiplier, 1),
		MinReward:  item.Effect.MinReward,
		SpinsLeft:  item.Effect.Spins,
	}
	if item.Effect.Duration > 0 {
		boost.ExpiresAt = now.Add(item.Effect.Duration)
	}
	p.Boosts = append(activeBoosts(p.Boosts, now), boost)

	return &boost, nil
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
