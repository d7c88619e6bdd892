package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"fortune_wheel/internal/config"
	"fortune_wheel/internal/model"

	"gopkg.in/yaml.v3"
)

type segmentYAML struct {
	ID     string `yaml:"id"`
	Label  string `yaml:"label"`
	Prize  string `yaml:"prize"`
	Color  string `yaml:"color"`
	Reward int    `yaml:"reward"`
}

type effectYAML struct {
	Multiplier int           `yaml:"multiplier"`
	MinReward  int           `yaml:"min_reward"`
	Spins      int           `yaml:"spins"`
	Duration   time.Duration `yaml:"duration"`
}

type itemYAML struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Price       int         `yaml:"price"`
	Category    string      `yaml:"category"`
	Icon        string      `yaml:"icon"`
	Available   bool        `yaml:"available"`
	Limited     bool        `yaml:"limited"`
	Effect      *effectYAML `yaml:"effect"`
}

type gameFile struct {
	Wheel struct {
		SpinDuration time.Duration `yaml:"spin_duration"`
		Segments     []segmentYAML `yaml:"segments"`
	} `yaml:"wheel"`
	Profile struct {
		StartingCoins      int   `yaml:"starting_coins"`
		ExperiencePerSpin  int   `yaml:"experience_per_spin"`
		ExperiencePerLevel int   `yaml:"experience_per_level"`
		CreditSpinRewards  *bool `yaml:"credit_spin_rewards"`
		DailyRewards       []int `yaml:"daily_rewards"`
	} `yaml:"profile"`
	Shop struct {
		Items []itemYAML `yaml:"items"`
	} `yaml:"shop"`
}

type wheelConfig struct {
	segments     []model.Segment
	spinDuration time.Duration
}

type profileConfig struct {
	startingCoins      int
	experiencePerSpin  int
	experiencePerLevel int
	creditSpinRewards  bool
	dailyRewards       []int
}

type shopConfig struct {
	items []model.ShopItem
}

// NewWheelConfigFromYAML читает секцию wheel из игрового конфига
func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	f, err := loadGameFile(path)
	if err != nil {
		return nil, err
	}

	segments := make([]model.Segment, len(f.Wheel.Segments))
	for i, s := range f.Wheel.Segments {
		segments[i] = model.Segment{
			ID:           s.ID,
			Label:        s.Label,
			Prize:        s.Prize,
			Color:        s.Color,
			RewardAmount: s.Reward,
		}
	}

	return &wheelConfig{
		segments:     segments,
		spinDuration: f.Wheel.SpinDuration,
	}, nil
}

// NewProfileConfigFromYAML читает секцию profile из игрового конфига
func NewProfileConfigFromYAML(path string) (config.ProfileConfig, error) {
	f, err := loadGameFile(path)
	if err != nil {
		return nil, err
	}

	// По умолчанию выигрыш с колеса зачисляется на баланс
	credit := true
	if f.Profile.CreditSpinRewards != nil {
		credit = *f.Profile.CreditSpinRewards
	}

	return &profileConfig{
		startingCoins:      f.Profile.StartingCoins,
		experiencePerSpin:  f.Profile.ExperiencePerSpin,
		experiencePerLevel: f.Profile.ExperiencePerLevel,
		creditSpinRewards:  credit,
		dailyRewards:       append([]int(nil), f.Profile.DailyRewards...),
	}, nil
}

// NewShopConfigFromYAML читает секцию shop из игрового конфига
func NewShopConfigFromYAML(path string) (config.ShopConfig, error) {
	f, err := loadGameFile(path)
	if err != nil {
		return nil, err
	}

	items := make([]model.ShopItem, len(f.Shop.Items))
	for i, it := range f.Shop.Items {
		items[i] = model.ShopItem{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Category:    model.Category(it.Category),
			Icon:        it.Icon,
			Available:   it.Available,
			Limited:     it.Limited,
		}
		if it.Effect != nil {
			items[i].Effect = &model.ItemEffect{
				Multiplier: max(it.Effect.Multiplier, 1),
				MinReward:  it.Effect.MinReward,
				Spins:      it.Effect.Spins,
				Duration:   it.Effect.Duration,
			}
		}
	}

	return &shopConfig{items: items}, nil
}

func loadGameFile(path string) (*gameFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game config: %w", err)
	}

	var f gameFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse game config: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return &f, nil
}

func (f *gameFile) validate() error {
	if len(f.Wheel.Segments) == 0 {
		return errors.New("wheel: no segments")
	}
	if f.Wheel.SpinDuration <= 0 {
		return errors.New("wheel: spin_duration must be positive")
	}

	ids := make(map[string]struct{}, len(f.Wheel.Segments))
	for _, s := range f.Wheel.Segments {
		if s.ID == "" {
			return errors.New("wheel: segment without id")
		}
		if _, ok := ids[s.ID]; ok {
			return fmt.Errorf("wheel: duplicate segment id %q", s.ID)
		}
		if s.Reward < 0 {
			return fmt.Errorf("wheel: negative reward in segment %q", s.ID)
		}
		ids[s.ID] = struct{}{}
	}

	if f.Profile.StartingCoins < 0 || f.Profile.ExperiencePerSpin < 0 {
		return errors.New("profile: negative starting coins or experience")
	}
	if f.Profile.ExperiencePerLevel <= 0 {
		return errors.New("profile: experience_per_level must be positive")
	}
	if len(f.Profile.DailyRewards) == 0 {
		return errors.New("profile: no daily rewards")
	}
	for day, r := range f.Profile.DailyRewards {
		if r < 0 {
			return fmt.Errorf("profile: negative reward for day %d", day+1)
		}
	}

	items := make(map[string]struct{}, len(f.Shop.Items))
	for _, it := range f.Shop.Items {
		if it.ID == "" {
			return errors.New("shop: item without id")
		}
		if _, ok := items[it.ID]; ok {
			return fmt.Errorf("shop: duplicate item id %q", it.ID)
		}
		items[it.ID] = struct{}{}

		if it.Price < 0 {
			return fmt.Errorf("shop: negative price for %q", it.ID)
		}
		switch model.Category(it.Category) {
		case model.CategoryPowerUp, model.CategoryCosmetic, model.CategoryPremium:
		default:
			return fmt.Errorf("shop: unknown category %q for %q", it.Category, it.ID)
		}
		if it.Effect != nil {
			if err := it.Effect.validate(it.ID); err != nil {
				return err
			}
		}
	}

	return nil
}

// validate множитель можно не указывать, тогда он равен 1
func (e *effectYAML) validate(itemID string) error {
	if e.Multiplier < 0 || e.MinReward < 0 || e.Spins < 0 || e.Duration < 0 {
		return fmt.Errorf("shop: negative effect value for %q", itemID)
	}
	if e.Multiplier <= 1 && e.MinReward == 0 {
		return fmt.Errorf("shop: effect of %q changes nothing", itemID)
	}
	return nil
}

func (c *wheelConfig) Segments() []model.Segment {
	return append([]model.Segment(nil), c.segments...)
}

func (c *wheelConfig) SpinDuration() time.Duration {
	return c.spinDuration
}

func (c *profileConfig) StartingCoins() int {
	return c.startingCoins
}

func (c *profileConfig) ExperiencePerSpin() int {
	return c.experiencePerSpin
}

func (c *profileConfig) ExperiencePerLevel() int {
	return c.experiencePerLevel
}

func (c *profileConfig) CreditSpinRewards() bool {
	return c.creditSpinRewards
}

func (c *profileConfig) DailyRewards() []int {
	return append([]int(nil), c.dailyRewards...)
}

func (c *shopConfig) Items() []model.ShopItem {
	return append([]model.ShopItem(nil), c.items...)
}
