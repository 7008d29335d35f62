package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/lubepos-api/internal/domain/repository"
)

type idempotencyRepository struct {
	mu   sync.RWMutex
	keys map[string]entity.IdempotencyKey
	now  func() time.Time
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository() domainRepo.IdempotencyRepository {
	return &idempotencyRepository{
		keys: make(map[string]entity.IdempotencyKey),
		now:  time.Now,
	}
}

func scopedKey(key, scope string) string {
	return scope + "\x00" + key
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key, scope string) (*entity.IdempotencyKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ikey, ok := r.keys[scopedKey(key, scope)]
	if !ok || ikey.IsExpired(r.now()) {
		return nil, nil
	}
	return &ikey, nil
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.keys[scopedKey(ikey.Key, ikey.Scope)] = *ikey
	return nil
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, ikey := range r.keys {
		if ikey.IsExpired(now) {
			delete(r.keys, k)
		}
	}
	return nil
}
