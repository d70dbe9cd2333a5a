package handler

import (
	"context"
	"database/sql"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/pojisteni/insurance-agency/internal/model"
	"github.com/pojisteni/insurance-agency/internal/repository"
	"github.com/pojisteni/insurance-agency/internal/utils"
)

// Hand-written in-memory stores backing the handler tests. Each mock
// satisfies the corresponding store interface and supports injecting
// an error through the err field.

type mockHolderStore struct {
	holders map[uint64]*model.PolicyHolder
	nextID  uint64
	deleted []uint64
	err     error
}

func newMockHolderStore() *mockHolderStore {
	return &mockHolderStore{holders: map[uint64]*model.PolicyHolder{}, nextID: 1}
}

func (m *mockHolderStore) Create(_ context.Context, p *model.PolicyHolder) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.holders {
		if existing.BirthID == p.BirthID {
			return repository.ErrBirthIDExists
		}
	}
	p.ID = m.nextID
	m.nextID++
	p.Created = time.Now().UTC()
	p.Updated = p.Created
	cp := *p
	m.holders[p.ID] = &cp
	return nil
}

func (m *mockHolderStore) GetByID(_ context.Context, id uint64) (*model.PolicyHolder, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.holders[id]
	if !ok {
		return nil, repository.ErrPolicyHolderNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockHolderStore) List(_ context.Context, limit, offset int) ([]*model.PolicyHolder, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*model.PolicyHolder, 0, len(m.holders))
	for id := uint64(1); id < m.nextID; id++ {
		if p, ok := m.holders[id]; ok {
			out = append(out, p)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockHolderStore) Count(_ context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.holders), nil
}

func (m *mockHolderStore) Update(_ context.Context, p *model.PolicyHolder) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.holders[p.ID]; !ok {
		return repository.ErrPolicyHolderNotFound
	}
	cp := *p
	m.holders[p.ID] = &cp
	return nil
}

func (m *mockHolderStore) Delete(_ context.Context, id uint64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.holders[id]; !ok {
		return repository.ErrPolicyHolderNotFound
	}
	delete(m.holders, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockPolicyStore struct {
	policies map[uint64]*model.InsurancePolicy
	nextID   uint64
	err      error
}

func newMockPolicyStore() *mockPolicyStore {
	return &mockPolicyStore{policies: map[uint64]*model.InsurancePolicy{}, nextID: 1}
}

func (m *mockPolicyStore) Create(_ context.Context, p *model.InsurancePolicy) error {
	if m.err != nil {
		return m.err
	}
	p.ID = m.nextID
	m.nextID++
	p.Created = time.Now().UTC()
	p.Updated = p.Created
	cp := *p
	m.policies[p.ID] = &cp
	return nil
}

func (m *mockPolicyStore) GetByID(_ context.Context, id uint64) (*model.InsurancePolicy, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.policies[id]
	if !ok {
		return nil, repository.ErrPolicyNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockPolicyStore) List(_ context.Context, limit, offset int) ([]*model.InsurancePolicy, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*model.InsurancePolicy, 0, len(m.policies))
	for id := uint64(1); id < m.nextID; id++ {
		if p, ok := m.policies[id]; ok {
			out = append(out, p)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockPolicyStore) ListByHolder(_ context.Context, holderID uint64) ([]*model.InsurancePolicy, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*model.InsurancePolicy
	for id := uint64(1); id < m.nextID; id++ {
		if p, ok := m.policies[id]; ok && p.PolicyHolderID == holderID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPolicyStore) Count(_ context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.policies), nil
}

func (m *mockPolicyStore) CountByHolder(ctx context.Context, holderID uint64) (int, error) {
	list, err := m.ListByHolder(ctx, holderID)
	return len(list), err
}

func (m *mockPolicyStore) Update(_ context.Context, p *model.InsurancePolicy) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.policies[p.ID]; !ok {
		return repository.ErrPolicyNotFound
	}
	cp := *p
	m.policies[p.ID] = &cp
	return nil
}

func (m *mockPolicyStore) Delete(_ context.Context, id uint64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.policies[id]; !ok {
		return repository.ErrPolicyNotFound
	}
	delete(m.policies, id)
	return nil
}

type mockEventStore struct {
	events map[uint64]*model.Event
	nextID uint64
	err    error
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{events: map[uint64]*model.Event{}, nextID: 1}
}

func (m *mockEventStore) Create(_ context.Context, e *model.Event) error {
	if m.err != nil {
		return m.err
	}
	e.ID = m.nextID
	m.nextID++
	e.Created = time.Now().UTC()
	e.Updated = e.Created
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *mockEventStore) GetByID(_ context.Context, id uint64) (*model.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockEventStore) List(_ context.Context, limit, offset int) ([]*model.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*model.Event, 0, len(m.events))
	for id := uint64(1); id < m.nextID; id++ {
		if e, ok := m.events[id]; ok {
			out = append(out, e)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockEventStore) ListByHolder(_ context.Context, holderID uint64) ([]*model.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*model.Event
	for id := uint64(1); id < m.nextID; id++ {
		if e, ok := m.events[id]; ok && e.PolicyHolderID == holderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventStore) Count(_ context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.events), nil
}

func (m *mockEventStore) CountByHolder(ctx context.Context, holderID uint64) (int, error) {
	list, err := m.ListByHolder(ctx, holderID)
	return len(list), err
}

func (m *mockEventStore) Update(_ context.Context, e *model.Event) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[e.ID]; !ok {
		return repository.ErrEventNotFound
	}
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *mockEventStore) Delete(_ context.Context, id uint64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(m.events, id)
	return nil
}

type mockUserStore struct {
	users  map[string]model.User
	nextID uint64
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[string]model.User{}, nextID: 1}
}

func (m *mockUserStore) Create(_ context.Context, username, password string, cost int) (uint64, error) {
	if _, ok := m.users[username]; ok {
		return 0, repository.ErrUsernameExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	u := model.User{ID: m.nextID, Username: username, PasswordHash: hash}
	m.nextID++
	m.users[username] = u
	return u.ID, nil
}

func (m *mockUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := m.users[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

type mockTokenStore struct {
	refresh map[string]uint64 // hash -> user id
	revoked []string
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{refresh: map[string]uint64{}}
}

func (m *mockTokenStore) StoreRefresh(_ context.Context, userID uint64, tokenHash string, _ time.Time) error {
	m.refresh[tokenHash] = userID
	return nil
}

func (m *mockTokenStore) ValidateRefresh(_ context.Context, tokenHash string) (uint64, error) {
	uid, ok := m.refresh[tokenHash]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return uid, nil
}

func (m *mockTokenStore) RevokeByHash(_ context.Context, tokenHash string) error {
	delete(m.refresh, tokenHash)
	m.revoked = append(m.revoked, tokenHash)
	return nil
}

func (m *mockTokenStore) RevokeAllForUser(_ context.Context, userID uint64) error {
	for h, uid := range m.refresh {
		if uid == userID {
			delete(m.refresh, h)
			m.revoked = append(m.revoked, h)
		}
	}
	return nil
}

type mockFileStore struct {
	nextID  int
	saved   []string
	removed []string
	saveErr error
}

func (m *mockFileStore) Save(fh *multipart.FileHeader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.nextID++
	name := "stored-" + strconv.Itoa(m.nextID) + "_" + fh.Filename
	m.saved = append(m.saved, name)
	return name, nil
}

func (m *mockFileStore) Remove(name string) error {
	m.removed = append(m.removed, name)
	return nil
}
