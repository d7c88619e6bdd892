package player

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"fortune_wheel/internal/config"
	"fortune_wheel/internal/lib/logger/sl"
	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/service"
	"fortune_wheel/pkg/token"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const maxNameLength = 32

type serv struct {
	cfg          config.ProfileConfig
	jwtCfg       config.JWTConfig
	playerRepo   repository.PlayerRepository
	purchaseRepo repository.PurchaseRepository
	txManager    trm.Manager
	log          *slog.Logger
	now          func() time.Time
}

// NewPlayerService сервис профиля игрока. Только он меняет монеты, опыт и бонусы
func NewPlayerService(
	cfg config.ProfileConfig,
	jwtCfg config.JWTConfig,
	playerRepo repository.PlayerRepository,
	purchaseRepo repository.PurchaseRepository,
	txManager trm.Manager,
	log *slog.Logger,
) service.PlayerService {
	return &serv{
		cfg:          cfg,
		jwtCfg:       jwtCfg,
		playerRepo:   playerRepo,
		purchaseRepo: purchaseRepo,
		txManager:    txManager,
		log:          log,
		now:          time.Now,
	}
}

// Register создает гостевого игрока и выдает ему access token
func (s *serv) Register(ctx context.Context, name string) (*model.AuthData, error) {
	const op = "player.Register"

	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return nil, service.ErrInvalidName
	}

	p := newPlayer(uuid.NewString(), name, s.cfg.StartingCoins(), s.cfg.ExperiencePerLevel(), s.now())

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.playerRepo.CreatePlayer(txCtx, &p)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	accessToken, err := token.GenerateAccessToken(p.ID, s.jwtCfg.AccessTokenSecretKey(), s.jwtCfg.AccessTokenDuration())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("player registered", sl.PlayerID(p.ID))

	return &model.AuthData{
		PlayerID:    p.ID,
		AccessToken: accessToken,
	}, nil
}

// Authenticate проверяет access token и возвращает ID игрока
func (s *serv) Authenticate(accessToken string) (string, error) {
	claims, err := token.VerifyToken(accessToken, s.jwtCfg.AccessTokenSecretKey())
	if err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrUnauthorized, err)
	}
	return claims.Subject, nil
}

// Profile профиль игрока с неделей бонусов. Отмечает время входа
func (s *serv) Profile(ctx context.Context) (*model.Profile, error) {
	const op = "player.Profile"

	playerID, ok := middleware.PlayerIDFromContext(ctx)
	if !ok {
		return nil, service.ErrUnauthorized
	}

	var p *model.Player
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		p, err = s.getPlayer(txCtx, playerID)
		if err != nil {
			return err
		}

		now := s.now()
		p.LastLogin = now
		p.Boosts = activeBoosts(p.Boosts, now)

		return s.playerRepo.UpdatePlayer(txCtx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &model.Profile{
		Player:            *p,
		ExperiencePercent: experiencePercent(*p),
		DailyBonuses:      dailyBonuses(*p, s.cfg.DailyRewards(), p.LastLogin),
	}, nil
}

func (s *serv) ClaimDailyBonus(ctx context.Context) (*model.BonusClaim, error) {
	const op = "player.ClaimDailyBonus"

	playerID, ok := middleware.PlayerIDFromContext(ctx)
	if !ok {
		return nil, service.ErrUnauthorized
	}

	var claim model.BonusClaim
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		p, err := s.getPlayer(txCtx, playerID)
		if err != nil {
			return err
		}

		claim, err = claimBonus(p, s.cfg.DailyRewards(), s.now())
		if err != nil {
			return err
		}

		return s.playerRepo.UpdatePlayer(txCtx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("daily bonus claimed",
		sl.PlayerID(playerID),
		slog.Int("day", claim.Day),
		slog.Int("reward", claim.Reward),
	)

	return &claim, nil
}

// ApplySpinReward применяет результат вращения к профилю
func (s *serv) ApplySpinReward(ctx context.Context, playerID string, amount int) (int, error) {
	const op = "player.ApplySpinReward"

	if amount < 0 {
		return 0, service.ErrInvalidAmount
	}

	var credited int
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		p, err := s.getPlayer(txCtx, playerID)
		if err != nil {
			return err
		}

		credited = applyReward(p, amount, s.cfg.ExperiencePerSpin(), s.cfg.ExperiencePerLevel(), s.now())

		return s.playerRepo.UpdatePlayer(txCtx, p)
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return credited, nil
}

// PurchaseItem списывает цену, записывает покупку и активирует буст предмета
func (s *serv) PurchaseItem(ctx context.Context, playerID string, item model.ShopItem) (*model.PurchaseResult, error) {
	const op = "player.PurchaseItem"

	var res model.PurchaseResult
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		p, err := s.getPlayer(txCtx, playerID)
		if err != nil {
			return err
		}

		owned, err := s.purchaseRepo.HasPurchase(txCtx, playerID, item.ID)
		if err != nil {
			return err
		}
		if owned {
			return service.ErrItemOwned
		}

		now := s.now()
		boost, err := buyItem(p, item, now)
		if err != nil {
			return err
		}

		purchase := model.Purchase{
			ID:          uuid.NewString(),
			PlayerID:    playerID,
			ItemID:      item.ID,
			Price:       item.Price,
			PurchasedAt: now,
		}
		if err := s.purchaseRepo.CreatePurchase(txCtx, &purchase); err != nil {
			if errors.Is(err, repository.ErrAlreadyExists) {
				return service.ErrItemOwned
			}
			return err
		}

		res = model.PurchaseResult{
			Purchase: purchase,
			Balance:  p.Coins,
			Boost:    boost,
		}

		return s.playerRepo.UpdatePlayer(txCtx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("item purchased",
		sl.PlayerID(playerID),
		slog.String("item_id", item.ID),
		slog.Int("price", item.Price),
	)

	return &res, nil
}

func (s *serv) getPlayer(ctx context.Context, playerID string) (*model.Player, error) {
	p, err := s.playerRepo.GetPlayer(ctx, playerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, service.ErrPlayerNotFound
	}
	return p, err
}
