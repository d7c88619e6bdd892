package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"fortune_wheel/internal/lib/logger/sl"
	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository/memory"
	"fortune_wheel/internal/service"
)

type profileConfig struct {
	credit bool
}

func (profileConfig) StartingCoins() int        { return 1250 }
func (profileConfig) ExperiencePerSpin() int    { return 50 }
func (profileConfig) ExperiencePerLevel() int   { return 200 }
func (c profileConfig) CreditSpinRewards() bool { return c.credit }
func (profileConfig) DailyRewards() []int       { return rewards }

type jwtConfig struct{}

func (jwtConfig) AccessTokenSecretKey() []byte       { return []byte("secret") }
func (jwtConfig) AccessTokenDuration() time.Duration { return time.Hour }

func newTestService(t *testing.T) (*serv, *memory.Storage) {
	t.Helper()

	st := memory.NewStorage()
	s := NewPlayerService(profileConfig{credit: true}, jwtConfig{}, st, st, memory.NewTxManager(st), sl.Discard()).(*serv)
	s.now = func() time.Time { return day(10) }

	return s, st
}

func register(t *testing.T, s *serv) (context.Context, string) {
	t.Helper()

	auth, err := s.Register(context.Background(), "guest")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return middleware.WithPlayerID(context.Background(), auth.PlayerID), auth.PlayerID
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s, st := newTestService(t)

	auth, err := s.Register(context.Background(), "  Lucky  ")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	id, err := s.Authenticate(auth.AccessToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if id != auth.PlayerID {
		t.Errorf("want %s, got %s", auth.PlayerID, id)
	}

	p, err := st.GetPlayer(context.Background(), id)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.Name != "Lucky" || p.Coins != 1250 || p.Level != 1 || p.MaxExperience != 200 {
		t.Errorf("unexpected new player: %+v", p)
	}

	if _, err := s.Authenticate("garbage"); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("want ErrUnauthorized, got %v", err)
	}
}

func TestRegisterRejectsInvalidName(t *testing.T) {
	s, _ := newTestService(t)

	for _, name := range []string{"", "   ", "abcdefghijklmnopqrstuvwxyz0123456789"} {
		if _, err := s.Register(context.Background(), name); !errors.Is(err, service.ErrInvalidName) {
			t.Errorf("name %q: want ErrInvalidName, got %v", name, err)
		}
	}
}

func TestProfile(t *testing.T) {
	s, _ := newTestService(t)
	ctx, _ := register(t, s)

	if _, err := s.Profile(context.Background()); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("want ErrUnauthorized, got %v", err)
	}
	if _, err := s.Profile(middleware.WithPlayerID(context.Background(), "missing")); !errors.Is(err, service.ErrPlayerNotFound) {
		t.Errorf("want ErrPlayerNotFound, got %v", err)
	}

	later := day(11)
	s.now = func() time.Time { return later }

	profile, err := s.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !profile.Player.LastLogin.Equal(later) {
		t.Errorf("last login not updated: %v", profile.Player.LastLogin)
	}
	if profile.ExperiencePercent != 0 {
		t.Errorf("unexpected xp percent: %v", profile.ExperiencePercent)
	}
	if len(profile.DailyBonuses) != 7 || !profile.DailyBonuses[0].Current {
		t.Errorf("unexpected bonuses: %+v", profile.DailyBonuses)
	}
}

func TestClaimDailyBonus(t *testing.T) {
	s, _ := newTestService(t)
	ctx, _ := register(t, s)

	claim, err := s.ClaimDailyBonus(ctx)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claim.Day != 1 || claim.Reward != 50 || claim.Balance != 1300 {
		t.Errorf("unexpected claim: %+v", claim)
	}

	if _, err := s.ClaimDailyBonus(ctx); !errors.Is(err, service.ErrBonusClaimed) {
		t.Fatalf("want ErrBonusClaimed, got %v", err)
	}

	s.now = func() time.Time { return day(11) }
	claim, err = s.ClaimDailyBonus(ctx)
	if err != nil {
		t.Fatalf("claim next day: %v", err)
	}
	if claim.Day != 2 || claim.Streak != 2 || claim.Balance != 1375 {
		t.Errorf("unexpected claim: %+v", claim)
	}

	profile, err := s.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !profile.DailyBonuses[1].Claimed || !profile.DailyBonuses[1].Current || profile.DailyBonuses[2].Claimed {
		t.Errorf("unexpected bonuses: %+v", profile.DailyBonuses)
	}
}

func TestApplySpinReward(t *testing.T) {
	s, st := newTestService(t)
	_, id := register(t, s)

	if _, err := s.ApplySpinReward(context.Background(), id, -1); !errors.Is(err, service.ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount, got %v", err)
	}
	if _, err := s.ApplySpinReward(context.Background(), "missing", 10); !errors.Is(err, service.ErrPlayerNotFound) {
		t.Fatalf("want ErrPlayerNotFound, got %v", err)
	}

	for i := 0; i < 4; i++ {
		credited, err := s.ApplySpinReward(context.Background(), id, 100)
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if credited != 100 {
			t.Errorf("want 100 credited, got %d", credited)
		}
	}

	p, err := st.GetPlayer(context.Background(), id)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.Coins != 1650 || p.TotalSpins != 4 || p.Level != 2 || p.Experience != 0 || p.MaxExperience != 400 {
		t.Errorf("unexpected player after spins: %+v", p)
	}
}

func TestPurchaseItem(t *testing.T) {
	s, st := newTestService(t)
	_, id := register(t, s)

	item := model.ShopItem{ID: "1", Price: 500, Effect: &model.ItemEffect{Multiplier: 2, Spins: 5}}

	res, err := s.PurchaseItem(context.Background(), id, item)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if res.Balance != 750 || res.Boost == nil || res.Boost.SpinsLeft != 5 {
		t.Errorf("unexpected result: %+v", res)
	}

	if _, err := s.PurchaseItem(context.Background(), id, item); !errors.Is(err, service.ErrItemOwned) {
		t.Fatalf("want ErrItemOwned, got %v", err)
	}

	expensive := model.ShopItem{ID: "3", Price: 1000}
	if _, err := s.PurchaseItem(context.Background(), id, expensive); !errors.Is(err, service.ErrInsufficientCoins) {
		t.Fatalf("want ErrInsufficientCoins, got %v", err)
	}

	// Неудачная покупка не оставляет следов
	owned, err := st.HasPurchase(context.Background(), id, "3")
	if err != nil || owned {
		t.Errorf("failed purchase recorded: %v %v", owned, err)
	}

	credited, err := s.ApplySpinReward(context.Background(), id, 100)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if credited != 200 {
		t.Errorf("boost not applied: %d", credited)
	}
}
