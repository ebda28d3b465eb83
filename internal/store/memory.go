// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-item-keeper/models"
)

// MemoryStorage implements [UserRepository] and [ItemRepository] in process
// memory. It backs the "memory" driver and end-to-end tests.
//
// Rows are copied on the way in and out, so callers never share state with
// the store.
type MemoryStorage struct {
	mu sync.RWMutex

	users map[int64]models.User
	items map[int64]models.Item

	userIDCounter int64
	itemIDCounter int64

	now func() time.Time
}

// Ensure interfaces are met.
var (
	_ UserRepository = (*MemoryStorage)(nil)
	_ ItemRepository = (*MemoryStorage)(nil)
)

// NewMemoryStorage returns an empty [MemoryStorage].
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users: make(map[int64]models.User),
		items: make(map[int64]models.Item),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// --- UserRepository ---

func (m *MemoryStorage) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := ctxErr(ctx); err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.emailTaken(user.Email, 0) {
		return models.User{}, ErrEmailAlreadyExists
	}

	m.userIDCounter++
	user.UserID = m.userIDCounter
	user.CreatedAt = m.now()
	m.users[user.UserID] = user

	return user, nil
}

func (m *MemoryStorage) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	if err := ctxErr(ctx); err != nil {
		return models.User{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}
	return user, nil
}

func (m *MemoryStorage) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if err := ctxErr(ctx); err != nil {
		return models.User{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, ErrNoUserWasFound
}

func (m *MemoryStorage) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	if err := ctxErr(ctx); err != nil {
		return models.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}
	if patch.Email != nil && m.emailTaken(*patch.Email, id) {
		return models.User{}, ErrEmailAlreadyExists
	}

	user = patch.Apply(user)
	m.users[id] = user
	return user, nil
}

func (m *MemoryStorage) DeleteUser(ctx context.Context, id int64) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNoUserWasFound
	}
	delete(m.users, id)

	for itemID, item := range m.items {
		if item.OwnerID == id {
			delete(m.items, itemID)
		}
	}
	return nil
}

func (m *MemoryStorage) ListUsers(ctx context.Context, page models.Page) (models.UserList, error) {
	if err := ctxErr(ctx); err != nil {
		return models.UserList{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := sortedKeys(m.users)
	data := make([]models.User, 0, len(ids))
	for _, id := range paginate(ids, page) {
		data = append(data, m.users[id])
	}

	return models.UserList{Data: data, Count: len(ids)}, nil
}

// emailTaken must be called with mu held. Emails compare case-sensitively,
// like the unique index of the SQL backends.
func (m *MemoryStorage) emailTaken(email string, exceptID int64) bool {
	for id, user := range m.users {
		if id != exceptID && user.Email == email {
			return true
		}
	}
	return false
}

// --- ItemRepository ---

func (m *MemoryStorage) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	if err := ctxErr(ctx); err != nil {
		return models.Item{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[item.OwnerID]; !ok {
		return models.Item{}, ErrOwnerNotFound
	}

	m.itemIDCounter++
	item.ItemID = m.itemIDCounter
	item.CreatedAt = m.now()
	item.Description = copyString(item.Description)
	m.items[item.ItemID] = item

	return item, nil
}

func (m *MemoryStorage) FindItemByID(ctx context.Context, id int64) (models.Item, error) {
	if err := ctxErr(ctx); err != nil {
		return models.Item{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return models.Item{}, ErrItemNotFound
	}
	item.Description = copyString(item.Description)
	return item, nil
}

func (m *MemoryStorage) UpdateItem(ctx context.Context, id int64, patch models.ItemPatch) (models.Item, error) {
	if err := ctxErr(ctx); err != nil {
		return models.Item{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return models.Item{}, ErrItemNotFound
	}

	item = patch.Apply(item)
	m.items[id] = item

	item.Description = copyString(item.Description)
	return item, nil
}

func (m *MemoryStorage) DeleteItem(ctx context.Context, id int64) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryStorage) ListItems(ctx context.Context, page models.Page) (models.ItemList, error) {
	return m.listItems(ctx, func(models.Item) bool { return true }, page)
}

func (m *MemoryStorage) ListItemsForOwner(ctx context.Context, ownerID int64, page models.Page) (models.ItemList, error) {
	return m.listItems(ctx, func(it models.Item) bool { return it.OwnerID == ownerID }, page)
}

func (m *MemoryStorage) listItems(ctx context.Context, keep func(models.Item) bool, page models.Page) (models.ItemList, error) {
	if err := ctxErr(ctx); err != nil {
		return models.ItemList{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.items))
	for _, id := range sortedKeys(m.items) {
		if keep(m.items[id]) {
			ids = append(ids, id)
		}
	}

	data := make([]models.Item, 0, len(ids))
	for _, id := range paginate(ids, page) {
		item := m.items[id]
		item.Description = copyString(item.Description)
		data = append(data, item)
	}

	return models.ItemList{Data: data, Count: len(ids)}, nil
}

// ctxErr reports an expired or cancelled request as a transient failure,
// the same way the SQL backends do.
func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func paginate(ids []int64, page models.Page) []int64 {
	page = page.Normalize()
	if page.Skip >= uint64(len(ids)) {
		return nil
	}
	end := min(page.Skip+page.Limit, uint64(len(ids)))
	return ids[page.Skip:end]
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
