package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/storefront/account-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Account
	seq       int
	touchErr  error // if set, TouchLastLogin returns this error
	touches   int
	updateSet []domain.AccountPatch
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	clone := *a
	return &clone
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) emailTaken(email, exceptID string) bool {
	for id, a := range r.byID {
		if id != exceptID && strings.EqualFold(a.Email, email) {
			return true
		}
	}
	return false
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(account.Email, "") {
		return nil, domain.ErrEmailTaken
	}
	r.seq++
	stored := cloneAccount(account)
	stored.ID = fmt.Sprintf("acc-%d", r.seq)
	r.byID[stored.ID] = stored
	return cloneAccount(stored), nil
}

func (r *stubAccountRepo) Update(_ context.Context, id string, patch domain.AccountPatch) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, id) {
		return nil, domain.ErrEmailTaken
	}
	r.updateSet = append(r.updateSet, patch)
	if patch.FirstName != nil {
		a.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		a.LastName = *patch.LastName
	}
	if patch.Email != nil {
		a.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		a.PasswordHash = *patch.PasswordHash
	}
	if patch.PhoneNumber != nil {
		a.PhoneNumber = *patch.PhoneNumber
	}
	if patch.IsSuspended != nil {
		v := *patch.IsSuspended
		a.IsSuspended = &v
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubAccountRepo) List(_ context.Context, page, limit int) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Account, 0, len(r.byID))
	for _, a := range r.byID {
		all = append(all, cloneAccount(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	start := (page - 1) * limit
	if start >= len(all) {
		return []*domain.Account{}, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *stubAccountRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touches++
	if r.touchErr != nil {
		return r.touchErr
	}
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.LastLogin = &at
	return nil
}

type stubTokenRepo struct {
	mu               sync.Mutex
	byID             map[string]*domain.Token
	createErr        error
	deleteByOwnerErr error
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{byID: make(map[string]*domain.Token)}
}

func (r *stubTokenRepo) Create(_ context.Context, token *domain.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	clone := *token
	r.byID[token.ID] = &clone
	return nil
}

func (r *stubTokenRepo) FindByID(_ context.Context, id string) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTokenRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTokenNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubTokenRepo) DeleteByOwner(_ context.Context, kind domain.AccountKind, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteByOwnerErr != nil {
		return 0, r.deleteByOwnerErr
	}
	var n int64
	for id, t := range r.byID {
		if t.OwnerKind == kind && t.OwnerID == ownerID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *stubTokenRepo) TouchLastUsed(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return domain.ErrTokenNotFound
	}
	t.LastUsedAt = &at
	return nil
}

func (r *stubTokenRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type stubUsage struct {
	mu     sync.Mutex
	usages []domain.TokenUsage
}

func (u *stubUsage) Record(usage domain.TokenUsage) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.usages = append(u.usages, usage)
}
