package memory

import (
	"context"
	"sort"
	"sync"

	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
)

// Storage хранилище состояния игроков в памяти процесса.
// Реализует репозитории игроков, вращений и покупок
type Storage struct {
	mtx       sync.RWMutex
	players   map[string]model.Player
	lastSpins map[string]model.Spin
	purchases map[string][]model.Purchase
}

func NewStorage() *Storage {
	return &Storage{
		players:   make(map[string]model.Player),
		lastSpins: make(map[string]model.Spin),
		purchases: make(map[string][]model.Purchase),
	}
}

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.players[player.ID]; ok {
		return repository.ErrAlreadyExists
	}
	s.touchPlayer(ctx, player.ID)
	s.players[player.ID] = clonePlayer(*player)
	return nil
}

func (s *Storage) GetPlayer(_ context.Context, id string) (*model.Player, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = clonePlayer(p)
	return &p, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.players[player.ID]; !ok {
		return repository.ErrNotFound
	}
	s.touchPlayer(ctx, player.ID)
	s.players[player.ID] = clonePlayer(*player)
	return nil
}

func (s *Storage) GetLastSpin(_ context.Context, playerID string) (*model.Spin, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	spin, ok := s.lastSpins[playerID]
	if !ok {
		return nil, nil
	}
	return &spin, nil
}

// CreateSpin хранится только последнее вращение игрока, его поворот и есть накопитель
func (s *Storage) CreateSpin(ctx context.Context, spin *model.Spin) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if last, ok := s.lastSpins[spin.PlayerID]; ok && last.Nonce >= spin.Nonce {
		return repository.ErrAlreadyExists
	}
	s.touchSpin(ctx, spin.PlayerID)
	s.lastSpins[spin.PlayerID] = *spin
	return nil
}

func (s *Storage) UpdateSpin(ctx context.Context, spin *model.Spin) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	last, ok := s.lastSpins[spin.PlayerID]
	if !ok || last.ID != spin.ID {
		return repository.ErrNotFound
	}
	s.touchSpin(ctx, spin.PlayerID)
	s.lastSpins[spin.PlayerID] = *spin
	return nil
}

func (s *Storage) CreatePurchase(ctx context.Context, purchase *model.Purchase) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, p := range s.purchases[purchase.PlayerID] {
		if p.ItemID == purchase.ItemID {
			return repository.ErrAlreadyExists
		}
	}
	s.touchPurchases(ctx, purchase.PlayerID)
	s.purchases[purchase.PlayerID] = append(s.purchases[purchase.PlayerID], *purchase)
	return nil
}

func (s *Storage) ListPurchases(_ context.Context, playerID string) ([]model.Purchase, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	list := append([]model.Purchase{}, s.purchases[playerID]...)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].PurchasedAt.After(list[j].PurchasedAt)
	})
	return list, nil
}

func (s *Storage) HasPurchase(_ context.Context, playerID, itemID string) (bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, p := range s.purchases[playerID] {
		if p.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

// undoLog прежнее состояние ключей, измененных транзакцией.
// Ключ пишется один раз, при первом изменении. Доступ под Storage.mtx
type undoLog struct {
	players   map[string]*model.Player // nil - игрока не было
	lastSpins map[string]*model.Spin
	purchases map[string]int // Длина списка покупок до транзакции
}

func newUndoLog() *undoLog {
	return &undoLog{
		players:   make(map[string]*model.Player),
		lastSpins: make(map[string]*model.Spin),
		purchases: make(map[string]int),
	}
}

func undoFromContext(ctx context.Context) *undoLog {
	u, _ := ctx.Value(txKey{}).(*undoLog)
	return u
}

func (s *Storage) touchPlayer(ctx context.Context, id string) {
	u := undoFromContext(ctx)
	if u == nil {
		return
	}
	if _, ok := u.players[id]; ok {
		return
	}
	var prev *model.Player
	if p, ok := s.players[id]; ok {
		p = clonePlayer(p)
		prev = &p
	}
	u.players[id] = prev
}

func (s *Storage) touchSpin(ctx context.Context, playerID string) {
	u := undoFromContext(ctx)
	if u == nil {
		return
	}
	if _, ok := u.lastSpins[playerID]; ok {
		return
	}
	var prev *model.Spin
	if spin, ok := s.lastSpins[playerID]; ok {
		prev = &spin
	}
	u.lastSpins[playerID] = prev
}

func (s *Storage) touchPurchases(ctx context.Context, playerID string) {
	u := undoFromContext(ctx)
	if u == nil {
		return
	}
	if _, ok := u.purchases[playerID]; ok {
		return
	}
	u.purchases[playerID] = len(s.purchases[playerID])
}

// rollback возвращает ключи из журнала к состоянию до транзакции
func (s *Storage) rollback(u *undoLog) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for id, p := range u.players {
		if p == nil {
			delete(s.players, id)
			continue
		}
		s.players[id] = *p
	}
	for id, spin := range u.lastSpins {
		if spin == nil {
			delete(s.lastSpins, id)
			continue
		}
		s.lastSpins[id] = *spin
	}
	for id, n := range u.purchases {
		if n == 0 {
			delete(s.purchases, id)
			continue
		}
		s.purchases[id] = s.purchases[id][:n]
	}
}

func clonePlayer(p model.Player) model.Player {
	p.Boosts = append([]model.Boost(nil), p.Boosts...)
	return p
}
