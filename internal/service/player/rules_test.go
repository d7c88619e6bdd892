package player

import (
	"errors"
	"testing"
	"time"

	"fortune_wheel/internal/model"
	"fortune_wheel/internal/service"
)

var rewards = []int{50, 75, 100, 150, 200, 250, 500}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
}

func TestApplyReward(t *testing.T) {
	now := day(10)

	cases := []struct {
		name         string
		boosts       []model.Boost
		amount       int
		wantCredited int
		wantBoosts   []model.Boost
	}{
		{
			name:         "no boosts",
			amount:       100,
			wantCredited: 100,
			wantBoosts:   []model.Boost{},
		},
		{
			name:         "spin limited boost is consumed",
			boosts:       []model.Boost{{ItemID: "1", Multiplier: 2, SpinsLeft: 2}},
			amount:       100,
			wantCredited: 200,
			wantBoosts:   []model.Boost{{ItemID: "1", Multiplier: 2, SpinsLeft: 1}},
		},
		{
			name:         "last spin removes boost",
			boosts:       []model.Boost{{ItemID: "1", Multiplier: 2, SpinsLeft: 1}},
			amount:       25,
			wantCredited: 50,
			wantBoosts:   []model.Boost{},
		},
		{
			name: "highest multiplier wins",
			boosts: []model.Boost{
				{ItemID: "1", Multiplier: 2, SpinsLeft: 3},
				{ItemID: "4", Multiplier: 3, ExpiresAt: now.Add(time.Hour)},
			},
			amount:       100,
			wantCredited: 300,
			wantBoosts: []model.Boost{
				{ItemID: "1", Multiplier: 2, SpinsLeft: 2},
				{ItemID: "4", Multiplier: 3, ExpiresAt: now.Add(time.Hour)},
			},
		},
		{
			name:         "expired boost is dropped",
			boosts:       []model.Boost{{ItemID: "4", Multiplier: 3, ExpiresAt: now}},
			amount:       100,
			wantCredited: 100,
			wantBoosts:   []model.Boost{},
		},
		{
			name:         "guaranteed minimum raises reward",
			boosts:       []model.Boost{{ItemID: "2", Multiplier: 1, MinReward: 200, SpinsLeft: 1}},
			amount:       50,
			wantCredited: 200,
			wantBoosts:   []model.Boost{},
		},
		{
			name:         "reward above minimum is kept",
			boosts:       []model.Boost{{ItemID: "2", Multiplier: 1, MinReward: 200, SpinsLeft: 1}},
			amount:       300,
			wantCredited: 300,
			wantBoosts:   []model.Boost{},
		},
		{
			name: "minimum then multiplier",
			boosts: []model.Boost{
				{ItemID: "2", Multiplier: 1, MinReward: 200, SpinsLeft: 1},
				{ItemID: "1", Multiplier: 2, SpinsLeft: 3},
			},
			amount:       50,
			wantCredited: 400,
			wantBoosts:   []model.Boost{{ItemID: "1", Multiplier: 2, SpinsLeft: 2}},
		},
		{
			name:         "zero reward still consumes spin",
			boosts:       []model.Boost{{ItemID: "1", Multiplier: 2, SpinsLeft: 2}},
			amount:       0,
			wantCredited: 0,
			wantBoosts:   []model.Boost{{ItemID: "1", Multiplier: 2, SpinsLeft: 1}},
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := newPlayer("p1", "guest", 1000, 200, now)
			p.Boosts = tc.boosts

			credited := applyReward(&p, tc.amount, 50, 200, now)
			if credited != tc.wantCredited {
				t.Errorf("credited: want %d, got %d", tc.wantCredited, credited)
			}
			if p.Coins != 1000+tc.wantCredited {
				t.Errorf("coins: want %d, got %d", 1000+tc.wantCredited, p.Coins)
			}
			if p.TotalSpins != 1 {
				t.Errorf("total spins: want 1, got %d", p.TotalSpins)
			}
			if len(p.Boosts) != len(tc.wantBoosts) {
				t.Fatalf("boosts: want %v, got %v", tc.wantBoosts, p.Boosts)
			}
			for i := range tc.wantBoosts {
				if !p.Boosts[i].ExpiresAt.Equal(tc.wantBoosts[i].ExpiresAt) ||
					p.Boosts[i].SpinsLeft != tc.wantBoosts[i].SpinsLeft ||
					p.Boosts[i].ItemID != tc.wantBoosts[i].ItemID {
					t.Errorf("boost %d: want %+v, got %+v", i, tc.wantBoosts[i], p.Boosts[i])
				}
			}
		})
	}
}

func TestAddExperience(t *testing.T) {
	cases := []struct {
		name      string
		level     int
		xp        int
		add       int
		wantLevel int
		wantXP    int
		wantMax   int
	}{
		{name: "no level up", level: 1, xp: 0, add: 50, wantLevel: 1, wantXP: 50, wantMax: 200},
		{name: "exact level up", level: 1, xp: 150, add: 50, wantLevel: 2, wantXP: 0, wantMax: 400},
		{name: "carry over", level: 1, xp: 180, add: 50, wantLevel: 2, wantXP: 30, wantMax: 400},
		{name: "two levels", level: 1, xp: 0, add: 650, wantLevel: 3, wantXP: 50, wantMax: 600},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := model.Player{Level: tc.level, Experience: tc.xp, MaxExperience: tc.level * 200}
			addExperience(&p, tc.add, 200)

			if p.Level != tc.wantLevel || p.Experience != tc.wantXP || p.MaxExperience != tc.wantMax {
				t.Errorf("want level %d xp %d/%d, got level %d xp %d/%d",
					tc.wantLevel, tc.wantXP, tc.wantMax, p.Level, p.Experience, p.MaxExperience)
			}
		})
	}
}

func TestClaimBonus(t *testing.T) {
	cases := []struct {
		name       string
		lastClaim  time.Time
		streak     int
		now        time.Time
		wantErr    error
		wantStreak int
		wantReward int
	}{
		{name: "first claim", now: day(10), wantStreak: 1, wantReward: 50},
		{name: "streak continues", lastClaim: day(9), streak: 2, now: day(10), wantStreak: 3, wantReward: 100},
		{name: "streak resets after a gap", lastClaim: day(7), streak: 5, now: day(10), wantStreak: 1, wantReward: 50},
		{name: "week wraps around", lastClaim: day(9), streak: 7, now: day(10), wantStreak: 8, wantReward: 50},
		{name: "already claimed today", lastClaim: day(10).Add(-10 * time.Hour), streak: 2, now: day(10), wantErr: service.ErrBonusClaimed},
		{
			name:       "day boundary is utc",
			lastClaim:  time.Date(2026, time.March, 9, 23, 59, 0, 0, time.UTC),
			streak:     1,
			now:        time.Date(2026, time.March, 10, 0, 1, 0, 0, time.UTC),
			wantStreak: 2,
			wantReward: 75,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := model.Player{Coins: 100, LastBonusClaim: tc.lastClaim, DailyStreak: tc.streak}

			claim, err := claimBonus(&p, rewards, tc.now)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				if p.Coins != 100 {
					t.Errorf("coins changed on error: %d", p.Coins)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if claim.Streak != tc.wantStreak || claim.Reward != tc.wantReward {
				t.Errorf("want streak %d reward %d, got %+v", tc.wantStreak, tc.wantReward, claim)
			}
			if p.Coins != 100+tc.wantReward || claim.Balance != p.Coins {
				t.Errorf("balance: got coins %d, claim %d", p.Coins, claim.Balance)
			}
			if !p.LastBonusClaim.Equal(tc.now) {
				t.Errorf("last claim not updated: %v", p.LastBonusClaim)
			}
		})
	}
}

func TestDailyBonuses(t *testing.T) {
	cases := []struct {
		name        string
		lastClaim   time.Time
		streak      int
		wantCurrent int
		wantClaimed int
	}{
		{name: "never claimed", wantCurrent: 1, wantClaimed: 0},
		{name: "claimed today", lastClaim: day(10), streak: 3, wantCurrent: 3, wantClaimed: 3},
		{name: "claimed yesterday", lastClaim: day(9), streak: 3, wantCurrent: 4, wantClaimed: 3},
		{name: "streak lost", lastClaim: day(5), streak: 3, wantCurrent: 1, wantClaimed: 0},
		{name: "full week today", lastClaim: day(10), streak: 7, wantCurrent: 7, wantClaimed: 7},
		{name: "new week tomorrow", lastClaim: day(9), streak: 7, wantCurrent: 1, wantClaimed: 0},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := model.Player{LastBonusClaim: tc.lastClaim, DailyStreak: tc.streak}
			bonuses := dailyBonuses(p, rewards, day(10))

			if len(bonuses) != len(rewards) {
				t.Fatalf("want %d days, got %d", len(rewards), len(bonuses))
			}

			var claimed int
			for i, b := range bonuses {
				if b.Day != i+1 || b.Reward != rewards[i] {
					t.Errorf("day %d: unexpected %+v", i+1, b)
				}
				if b.Claimed {
					claimed++
				}
				if b.Current != (b.Day == tc.wantCurrent) {
					t.Errorf("day %d: current=%v, want current day %d", b.Day, b.Current, tc.wantCurrent)
				}
			}
			if claimed != tc.wantClaimed {
				t.Errorf("claimed: want %d, got %d", tc.wantClaimed, claimed)
			}
		})
	}
}

func TestBuyItem(t *testing.T) {
	now := day(10)

	t.Run("insufficient coins", func(t *testing.T) {
		p := model.Player{Coins: 100}
		_, err := buyItem(&p, model.ShopItem{ID: "2", Price: 300}, now)
		if !errors.Is(err, service.ErrInsufficientCoins) {
			t.Fatalf("want ErrInsufficientCoins, got %v", err)
		}
		if p.Coins != 100 {
			t.Errorf("coins changed: %d", p.Coins)
		}
	})

	t.Run("cosmetic item has no boost", func(t *testing.T) {
		p := model.Player{Coins: 500}
		boost, err := buyItem(&p, model.ShopItem{ID: "2", Price: 300}, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if boost != nil || len(p.Boosts) != 0 {
			t.Errorf("unexpected boost: %+v", boost)
		}
		if p.Coins != 200 {
			t.Errorf("want 200 coins, got %d", p.Coins)
		}
	})

	t.Run("guaranteed minimum", func(t *testing.T) {
		p := model.Player{Coins: 1000}
		item := model.ShopItem{ID: "2", Price: 800, Effect: &model.ItemEffect{MinReward: 200, Spins: 1}}

		boost, err := buyItem(&p, item, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if boost == nil || boost.Multiplier != 1 || boost.MinReward != 200 || boost.SpinsLeft != 1 {
			t.Fatalf("unexpected boost: %+v", boost)
		}

		// Следующее вращение получает минимум, после него эффект снят
		if credited := applyReward(&p, 25, 0, 200, now); credited != 200 {
			t.Errorf("want 200 credited, got %d", credited)
		}
		if credited := applyReward(&p, 25, 0, 200, now); credited != 25 {
			t.Errorf("boost outlived its spin: credited %d", credited)
		}
		if p.Coins != 200+200+25 {
			t.Errorf("want 425 coins, got %d", p.Coins)
		}
	})

	t.Run("timed boost", func(t *testing.T) {
		p := model.Player{Coins: 1000}
		item := model.ShopItem{ID: "4", Price: 800, Effect: &model.ItemEffect{Multiplier: 3, Duration: time.Hour}}

		boost, err := buyItem(&p, item, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if boost == nil || boost.Multiplier != 3 || !boost.ExpiresAt.Equal(now.Add(time.Hour)) {
			t.Fatalf("unexpected boost: %+v", boost)
		}
		if len(p.Boosts) != 1 {
			t.Errorf("boost not activated: %+v", p.Boosts)
		}
	})
}

func TestExperiencePercent(t *testing.T) {
	p := model.Player{Experience: 50, MaxExperience: 200}
	if got := experiencePercent(p); got != 25 {
		t.Errorf("want 25, got %v", got)
	}
	if got := experiencePercent(model.Player{}); got != 0 {
		t.Errorf("want 0 for empty player, got %v", got)
	}
}
