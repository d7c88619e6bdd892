package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fortune_wheel/internal/model"
)

const validGame = `
wheel:
  spin_duration: 4s
  segments:
    - { id: "1", label: "100", prize: "100 coins", color: "#FF6B35", reward: 100 }
    - { id: "2", label: "50", prize: "50 coins", color: "#F7931E", reward: 50 }
profile:
  starting_coins: 1250
  experience_per_spin: 50
  experience_per_level: 200
  daily_rewards: [50, 75, 100]
shop:
  items:
    - id: "1"
      name: "Double coins"
      price: 500
      category: powerup
      available: true
      effect: { multiplier: 2, spins: 5 }
    - id: "3"
      name: "Guaranteed win"
      price: 800
      category: powerup
      available: true
      effect: { min_reward: 200, spins: 1 }
    - id: "2"
      name: "Golden wheel"
      price: 1500
      category: cosmetic
      available: false
`

func writeGame(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestGameConfigFromYAML(t *testing.T) {
	path := writeGame(t, validGame)

	wheelCfg, err := NewWheelConfigFromYAML(path)
	if err != nil {
		t.Fatalf("wheel config: %v", err)
	}
	if wheelCfg.SpinDuration() != 4*time.Second {
		t.Errorf("unexpected spin duration: %s", wheelCfg.SpinDuration())
	}
	wantSegment := model.Segment{ID: "1", Label: "100", Prize: "100 coins", Color: "#FF6B35", RewardAmount: 100}
	if segs := wheelCfg.Segments(); len(segs) != 2 || segs[0] != wantSegment {
		t.Errorf("unexpected segments: %+v", segs)
	}

	profileCfg, err := NewProfileConfigFromYAML(path)
	if err != nil {
		t.Fatalf("profile config: %v", err)
	}
	if profileCfg.StartingCoins() != 1250 || profileCfg.ExperiencePerLevel() != 200 {
		t.Errorf("unexpected profile config: %+v", profileCfg)
	}
	if !profileCfg.CreditSpinRewards() {
		t.Error("spin rewards must be credited by default")
	}
	if len(profileCfg.DailyRewards()) != 3 {
		t.Errorf("unexpected daily rewards: %v", profileCfg.DailyRewards())
	}

	shopCfg, err := NewShopConfigFromYAML(path)
	if err != nil {
		t.Fatalf("shop config: %v", err)
	}
	items := shopCfg.Items()
	if len(items) != 3 {
		t.Fatalf("want 3 items, got %d", len(items))
	}
	if items[0].Effect == nil || items[0].Effect.Multiplier != 2 || items[0].Effect.Spins != 5 {
		t.Errorf("unexpected effect: %+v", items[0].Effect)
	}
	wantEffect := model.ItemEffect{Multiplier: 1, MinReward: 200, Spins: 1}
	if items[1].Effect == nil || *items[1].Effect != wantEffect {
		t.Errorf("unexpected effect: %+v", items[1].Effect)
	}
	if items[2].Available || items[2].Category != model.CategoryCosmetic {
		t.Errorf("unexpected item: %+v", items[2])
	}
}

func TestGameConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		old     string
		new     string
		wantErr string
	}{
		{
			name:    "no segments",
			old:     "  segments:\n    - { id: \"1\", label: \"100\", prize: \"100 coins\", color: \"#FF6B35\", reward: 100 }\n    - { id: \"2\", label: \"50\", prize: \"50 coins\", color: \"#F7931E\", reward: 50 }\n",
			new:     "  segments: []\n",
			wantErr: "no segments",
		},
		{
			name:    "duplicate segment",
			old:     `id: "2", label: "50"`,
			new:     `id: "1", label: "50"`,
			wantErr: "duplicate segment",
		},
		{
			name:    "zero duration",
			old:     "spin_duration: 4s",
			new:     "spin_duration: 0s",
			wantErr: "spin_duration",
		},
		{
			name:    "unknown category",
			old:     "category: cosmetic",
			new:     "category: weapons",
			wantErr: "unknown category",
		},
		{
			name:    "negative price",
			old:     "price: 1500",
			new:     "price: -1",
			wantErr: "negative price",
		},
		{
			name:    "empty effect",
			old:     "effect: { min_reward: 200, spins: 1 }",
			new:     "effect: { spins: 1 }",
			wantErr: "changes nothing",
		},
		{
			name:    "negative min reward",
			old:     "min_reward: 200",
			new:     "min_reward: -200",
			wantErr: "negative effect",
		},
		{
			name:    "no daily rewards",
			old:     "daily_rewards: [50, 75, 100]",
			new:     "daily_rewards: []",
			wantErr: "no daily rewards",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			content := strings.Replace(validGame, tc.old, tc.new, 1)
			if content == validGame {
				t.Fatalf("replacement %q not found", tc.old)
			}

			_, err := NewWheelConfigFromYAML(writeGame(t, content))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("want error containing %q, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestProfileCreditSpinRewardsOverride(t *testing.T) {
	content := strings.Replace(validGame, "  starting_coins: 1250\n", "  starting_coins: 1250\n  credit_spin_rewards: false\n", 1)

	cfg, err := NewProfileConfigFromYAML(writeGame(t, content))
	if err != nil {
		t.Fatalf("profile config: %v", err)
	}
	if cfg.CreditSpinRewards() {
		t.Error("credit_spin_rewards: false was ignored")
	}
}
