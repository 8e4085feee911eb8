package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/atharvapisal16/household-ledger/internal/domain"
)

// FakeCredentialRepository is an in-memory fake implementation of CredentialRepository.
type FakeCredentialRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc        func(ctx context.Context, account *domain.Account) error
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.Account, error)
}

func NewFakeCredentialRepository() *FakeCredentialRepository {
	return &FakeCredentialRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *FakeCredentialRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.Username]; ok {
		return domain.ErrAccountExists
	}
	stored := *account
	m.accounts[account.Username] = &stored
	return nil
}

func (m *FakeCredentialRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[username]; ok {
		out := *acc
		return &out, nil
	}
	return nil, domain.ErrAccountNotFound
}

// FakeExpenseRepository is an in-memory fake implementation of ExpenseRepository. By
// default it keeps records in memory per (owner, section) ledger.
type FakeExpenseRepository struct {
	mu      sync.RWMutex
	ledgers map[string][]*domain.Expense

	AddFunc        func(ctx context.Context, owner string, section domain.Section, expense *domain.Expense) error
	AddBatchFunc   func(ctx context.Context, owner string, section domain.Section, expenses []*domain.Expense) error
	UpdateFunc     func(ctx context.Context, owner string, section domain.Section, expense *domain.Expense) error
	DeleteFunc     func(ctx context.Context, owner string, section domain.Section, id string) error
	QueryFunc      func(ctx context.Context, owner string, section domain.Section, year, month int) (domain.Snapshot, error)
	CategoriesFunc func(ctx context.Context, owner string, section domain.Section) ([]string, error)
}

func NewFakeExpenseRepository() *FakeExpenseRepository {
	return &FakeExpenseRepository{
		ledgers: make(map[string][]*domain.Expense),
	}
}

func ledgerKey(owner string, section domain.Section) string {
	return fmt.Sprintf("%s/%s", owner, section)
}

func (m *FakeExpenseRepository) Add(ctx context.Context, owner string, section domain.Section, expense *domain.Expense) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, owner, section, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := ledgerKey(owner, section)
	stored := *expense
	m.ledgers[key] = append(m.ledgers[key], &stored)
	return nil
}

func (m *FakeExpenseRepository) AddBatch(ctx context.Context, owner string, section domain.Section, expenses []*domain.Expense) error {
	if m.AddBatchFunc != nil {
		return m.AddBatchFunc(ctx, owner, section, expenses)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := ledgerKey(owner, section)
	for _, exp := range expenses {
		stored := *exp
		m.ledgers[key] = append(m.ledgers[key], &stored)
	}
	return nil
}

func (m *FakeExpenseRepository) Update(ctx context.Context, owner string, section domain.Section, expense *domain.Expense) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, owner, section, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, exp := range m.ledgers[ledgerKey(owner, section)] {
		if exp.ID == expense.ID {
			stored := *expense
			m.ledgers[ledgerKey(owner, section)][i] = &stored
			return nil
		}
	}
	return domain.ErrExpenseNotFound
}

func (m *FakeExpenseRepository) Delete(ctx context.Context, owner string, section domain.Section, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, owner, section, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := ledgerKey(owner, section)
	for i, exp := range m.ledgers[key] {
		if exp.ID == id {
			m.ledgers[key] = append(m.ledgers[key][:i], m.ledgers[key][i+1:]...)
			return nil
		}
	}
	return domain.ErrExpenseNotFound
}

func (m *FakeExpenseRepository) Query(ctx context.Context, owner string, section domain.Section, year, month int) (domain.Snapshot, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, owner, section, year, month)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := domain.Snapshot{Section: section, Year: year, Month: month}
	for _, exp := range m.ledgers[ledgerKey(owner, section)] {
		if exp.Date.Year() != year {
			continue
		}
		if month != 0 && int(exp.Date.Month()) != month {
			continue
		}
		snap.Records = append(snap.Records, *exp)
	}
	sort.SliceStable(snap.Records, func(i, j int) bool {
		return snap.Records[i].Date.Before(snap.Records[j].Date)
	})
	return snap, nil
}

func (m *FakeExpenseRepository) Categories(ctx context.Context, owner string, section domain.Section) ([]string, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx, owner, section)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	for _, c := range domain.DefaultCategories {
		seen[c] = true
	}
	for _, exp := range m.ledgers[ledgerKey(owner, section)] {
		seen[exp.Category] = true
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

// FakeIDGenerator is an in-memory fake implementation of IDGenerator. Without an
// override it hands out sequential IDs.
type FakeIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (m *FakeIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%04d", m.next)
}
