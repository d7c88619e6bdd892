package wheel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fortune_wheel/internal/config"
	"fortune_wheel/internal/lib/logger/sl"
	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/service"
	"fortune_wheel/pkg/rng"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// RandomFactory источник случайности для конкретного вращения игрока
type RandomFactory func(playerID string, nonce uint64) RandomSource

// FairRandom доказуемо честный источник: клиентский сид это ID игрока
func FairRandom(serverSeed string) RandomFactory {
	return func(playerID string, nonce uint64) RandomSource {
		return rng.NewFair(serverSeed, playerID, nonce).Float64
	}
}

type serv struct {
	cfg        config.WheelConfig
	profileCfg config.ProfileConfig
	spinRepo   repository.SpinRepository
	statsRepo  repository.WheelStatsRepository
	players    service.PlayerService
	txManager  trm.Manager
	random     RandomFactory
	gate       *Gate
	log        *slog.Logger
	now        func() time.Time
}

func NewWheelService(
	cfg config.WheelConfig,
	profileCfg config.ProfileConfig,
	spinRepo repository.SpinRepository,
	statsRepo repository.WheelStatsRepository,
	players service.PlayerService,
	txManager trm.Manager,
	random RandomFactory,
	log *slog.Logger,
) service.WheelService {
	return &serv{
		cfg:        cfg,
		profileCfg: profileCfg,
		spinRepo:   spinRepo,
		statsRepo:  statsRepo,
		players:    players,
		txManager:  txManager,
		random:     random,
		gate:       NewGate(),
		log:        log,
		now:        time.Now,
	}
}

func (s *serv) Config() model.WheelInfo {
	return model.WheelInfo{
		Segments:     s.cfg.Segments(),
		SpinDuration: s.cfg.SpinDuration(),
	}
}

// Spin запускает вращение. Результат раскрывается через SpinDuration,
// до этого игрок получает только поворот колеса
func (s *serv) Spin(ctx context.Context) (*model.Spin, error) {
	const op = "wheel.Spin"

	playerID, ok := middleware.PlayerIDFromContext(ctx)
	if !ok {
		return nil, service.ErrUnauthorized
	}

	if err := s.gate.Acquire(playerID); err != nil {
		return nil, err
	}

	delay := s.cfg.SpinDuration()

	var (
		spin      model.Spin
		recovered *model.Spin
	)
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		last, err := s.spinRepo.GetLastSpin(txCtx, playerID)
		if err != nil {
			return err
		}

		// Вращение могло остаться нераскрытым после перезапуска сервера
		if last != nil && last.Status == model.SpinPending {
			if err := s.settle(txCtx, last); err != nil {
				return err
			}
			recovered = last
		}

		var (
			current float64
			nonce   uint64 = 1
		)
		if last != nil {
			current = last.TotalRotation
			nonce = last.Nonce + 1
		}

		outcome, err := ComputeSpin(current, s.cfg.Segments(), s.random(playerID, nonce))
		if err != nil {
			return err
		}

		now := s.now()
		spin = model.Spin{
			ID:            uuid.NewString(),
			PlayerID:      playerID,
			Nonce:         nonce,
			TotalRotation: outcome.TotalRotationDegrees,
			Segment:       outcome.WinningSegment,
			Status:        model.SpinPending,
			CreatedAt:     now,
			RevealAt:      now.Add(delay),
		}

		return s.spinRepo.CreateSpin(txCtx, &spin)
	})
	if err != nil {
		s.gate.Cancel(playerID)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if recovered != nil {
		s.statsRepo.UpdateStats(recovered.Segment.ID, recovered.Credited)
	}

	pending := spin
	if err := s.gate.Schedule(playerID, spin.ID, delay, func(ctx context.Context) { s.reveal(ctx, pending) }); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("spin started",
		sl.PlayerID(playerID),
		slog.Uint64("nonce", spin.Nonce),
		slog.Float64("rotation", spin.TotalRotation),
	)

	return &spin, nil
}

// reveal применяет результат вращения, если его не отменили
func (s *serv) reveal(ctx context.Context, spin model.Spin) {
	var settled *model.Spin
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		last, err := s.spinRepo.GetLastSpin(txCtx, spin.PlayerID)
		if err != nil {
			return err
		}
		if last == nil || last.ID != spin.ID || last.Status != model.SpinPending {
			return nil
		}

		if err := s.settle(txCtx, last); err != nil {
			return err
		}
		settled = last
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.log.Error("failed to reveal spin", sl.PlayerID(spin.PlayerID), sl.Err(err))
		return
	}
	if settled == nil {
		return
	}

	s.statsRepo.UpdateStats(settled.Segment.ID, settled.Credited)

	s.log.Info("spin revealed",
		sl.PlayerID(settled.PlayerID),
		slog.String("segment_id", settled.Segment.ID),
		slog.Int("credited", settled.Credited),
	)
}

// settle отмечает вращение раскрытым и начисляет награду игроку
func (s *serv) settle(ctx context.Context, spin *model.Spin) error {
	amount := spin.Segment.RewardAmount
	if !s.profileCfg.CreditSpinRewards() {
		amount = 0
	}

	credited, err := s.players.ApplySpinReward(ctx, spin.PlayerID, amount)
	if err != nil {
		return err
	}

	spin.Status = model.SpinRevealed
	spin.Credited = credited

	return s.spinRepo.UpdateSpin(ctx, spin)
}

// Result последнее вращение игрока. Пока оно не раскрыто, сегмент не отдается
func (s *serv) Result(ctx context.Context) (*model.Spin, error) {
	const op = "wheel.Result"

	playerID, ok := middleware.PlayerIDFromContext(ctx)
	if !ok {
		return nil, service.ErrUnauthorized
	}

	spin, err := s.spinRepo.GetLastSpin(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if spin == nil {
		return nil, service.ErrNoSpin
	}

	if spin.Status != model.SpinRevealed {
		spin.Segment = model.Segment{}
	}
	return spin, nil
}

// Cancel отменяет ожидающее раскрытие, награда не начисляется.
// Слот игрока держится, пока вращение не отмечено отмененным
func (s *serv) Cancel(ctx context.Context) error {
	const op = "wheel.Cancel"

	playerID, ok := middleware.PlayerIDFromContext(ctx)
	if !ok {
		return service.ErrUnauthorized
	}

	spinID, ok := s.gate.Stop(playerID)
	if !ok {
		return service.ErrNoPendingSpin
	}
	defer s.gate.Release(playerID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		last, err := s.spinRepo.GetLastSpin(txCtx, playerID)
		if err != nil {
			return err
		}
		// Раскрытие успело завершиться раньше отмены
		if last == nil || last.ID != spinID || last.Status != model.SpinPending {
			return service.ErrNoPendingSpin
		}

		last.Status = model.SpinCancelled
		return s.spinRepo.UpdateSpin(txCtx, last)
	})
	if err != nil {
		if errors.Is(err, service.ErrNoPendingSpin) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("spin cancelled", sl.PlayerID(playerID), slog.String("spin_id", spinID))

	return nil
}

func (s *serv) Stats() model.WheelStats {
	return s.statsRepo.Stats()
}

// Close отбрасывает все ожидающие раскрытия
func (s *serv) Close() {
	s.gate.Close()
}
