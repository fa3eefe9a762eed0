// Package ledger implements the application's in-memory data store: users,
// expenses and month budgets, plus the summary queries derived from them.
//
// The whole dataset lives in maps owned by a single Store. One process, one
// Store; nothing is written to disk.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
	"kakeibo/internal/log"
	"kakeibo/internal/session"
)

// Demo account seeded into every fresh store.
const (
	demoUsername = "demo"
	demoPassword = "demo"
)

// Session store defaults, used when Config leaves them zero.
const (
	DefaultSessionTTL        = 30 * 24 * time.Hour
	DefaultSessionMaxEntries = 1024
)

var demoBudgetAmount = decimal.NewFromInt(2000)

// Config holds the store's tunables.
type Config struct {
	SessionTTL        time.Duration
	SessionMaxEntries int
	Logger            *log.Logger
}

// Store is the in-memory repository shared by the whole process. All access
// is serialized behind one RWMutex. Each collection hands out ids from its
// own counter; ids start at 1 and are never reused, deletes included.
type Store struct {
	mu sync.RWMutex

	users    map[int64]core.User
	expenses map[int64]core.Expense
	budgets  map[string]core.Budget // keyed "{userID}-{month}-{year}"

	nextUserID    int64
	nextExpenseID int64
	nextBudgetID  int64

	sessions *session.Store
	logger   *log.Logger
}

// ExpenseParams carries the caller-supplied fields of a new expense.
type ExpenseParams struct {
	Amount      decimal.Decimal
	Category    core.Category
	Date        time.Time
	Description string
}

// BudgetParams carries the caller-supplied fields of a budget write.
type BudgetParams struct {
	Amount decimal.Decimal
	Month  int // 1-12
	Year   int
}

// New builds an empty store, seeds the demo account and starts the session
// janitor. Close releases the janitor when the process winds down.
func New(cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.SessionMaxEntries <= 0 {
		cfg.SessionMaxEntries = DefaultSessionMaxEntries
	}

	s := &Store{
		users:         make(map[int64]core.User),
		expenses:      make(map[int64]core.Expense),
		budgets:       make(map[string]core.Budget),
		nextUserID:    1,
		nextExpenseID: 1,
		nextBudgetID:  1,
		sessions:      session.New(cfg.SessionTTL, cfg.SessionMaxEntries, logger.WithComponent(log.ComponentSession)),
		logger:        logger.WithComponent(log.ComponentLedger),
	}
	s.seed()
	return s
}

// seed creates the demo user with a budget for the current month so a fresh
// process has an account to log into.
func (s *Store) seed() {
	now := time.Now()

	user := core.User{ID: s.nextUserID, Username: demoUsername, Password: demoPassword}
	s.nextUserID++
	s.users[user.ID] = user

	budget := core.Budget{
		ID:     s.nextBudgetID,
		UserID: user.ID,
		Amount: demoBudgetAmount,
		Month:  int(now.Month()),
		Year:   now.Year(),
	}
	s.nextBudgetID++
	s.budgets[budgetKey(user.ID, budget.Month, budget.Year)] = budget

	s.logger.Info("Demo data seeded",
		log.FieldOperation, log.OpSeed,
		log.FieldUserID, user.ID,
		log.FieldMonth, budget.Month,
		log.FieldYear, budget.Year)
}

// Sessions exposes the session store for the web layer's middleware.
func (s *Store) Sessions() *session.Store {
	return s.sessions
}

// Close stops the session janitor. The dataset itself needs no teardown.
func (s *Store) Close() {
	s.sessions.Stop()
	s.logger.Info("Store closed", log.FieldOperation, log.OpShutdown)
}

func budgetKey(userID int64, month, year int) string {
	return fmt.Sprintf("%d-%d-%d", userID, month, year)
}

// GetUser returns the user with id, if any.
func (s *Store) GetUser(_ context.Context, id int64) (core.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

// GetUserByUsername returns the user with an exact, case-sensitive username
// match. When duplicates exist the earliest created one wins.
func (s *Store) GetUserByUsername(_ context.Context, username string) (core.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		found core.User
		ok    bool
	)
	for _, u := range s.users {
		if u.Username != username {
			continue
		}
		if !ok || u.ID < found.ID {
			found = u
			ok = true
		}
	}
	return found, ok
}

// CreateUser stores a new user and returns it with its assigned id. The
// password is held as given and username uniqueness is the caller's
// concern; the store accepts whatever it receives.
func (s *Store) CreateUser(ctx context.Context, username, password string) core.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := core.User{
		ID:       s.nextUserID,
		Username: username,
		Password: password,
	}
	s.nextUserID++
	s.users[user.ID] = user

	s.logger.DebugContext(ctx, "User created",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, user.ID,
		log.FieldUsername, username)

	return user
}

// GetExpense returns the expense with id, if any.
func (s *Store) GetExpense(_ context.Context, id int64) (core.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	return e, ok
}

// ListExpensesByUser returns a user's expenses, newest date first; expenses
// sharing a date keep insertion order. A positive limit truncates the
// result after sorting, zero or negative means everything.
func (s *Store) ListExpensesByUser(_ context.Context, userID int64, limit int) []core.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.Expense
	for _, e := range s.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sortExpenses(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ListExpensesByMonth returns a user's expenses dated in the given calendar
// month, newest first.
func (s *Store) ListExpensesByMonth(_ context.Context, userID int64, month, year int) []core.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.expensesForMonth(userID, month, year)
	sortExpenses(out)
	return out
}

// expensesForMonth collects a user's expenses for one calendar month in map
// order. Callers hold at least the read lock.
func (s *Store) expensesForMonth(userID int64, month, year int) []core.Expense {
	var out []core.Expense
	for _, e := range s.expenses {
		if e.UserID != userID {
			continue
		}
		if int(e.Date.Month()) != month || e.Date.Year() != year {
			continue
		}
		out = append(out, e)
	}
	return out
}

func sortExpenses(items []core.Expense) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Date.Equal(items[j].Date) {
			return items[i].ID < items[j].ID
		}
		return items[i].Date.After(items[j].Date)
	})
}

// CreateExpense stores a new expense for userID and returns it with its
// assigned id and creation time. The user id is not checked against the
// user collection; reads for unknown users simply come back empty.
func (s *Store) CreateExpense(ctx context.Context, userID int64, params ExpenseParams) core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense := core.Expense{
		ID:          s.nextExpenseID,
		UserID:      userID,
		Amount:      params.Amount,
		Category:    params.Category,
		Date:        params.Date,
		Description: params.Description,
		CreatedAt:   time.Now(),
	}
	s.nextExpenseID++
	s.expenses[expense.ID] = expense

	s.logger.DebugContext(ctx, "Expense recorded",
		log.FieldOperation, log.OpCreate,
		log.FieldExpenseID, expense.ID,
		log.FieldUserID, userID,
		log.FieldCategory, expense.Category.String(),
		log.FieldAmount, expense.Amount.String())

	return expense
}

// DeleteExpense removes the expense with id and reports whether a record
// was actually removed. Freed ids are never handed out again.
func (s *Store) DeleteExpense(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return false
	}
	delete(s.expenses, id)

	s.logger.DebugContext(ctx, "Expense deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldExpenseID, id)

	return true
}

// GetBudget returns the budget for the user-month, if one was set.
func (s *Store) GetBudget(_ context.Context, userID int64, month, year int) (core.Budget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.budgets[budgetKey(userID, month, year)]
	return b, ok
}

// CreateOrUpdateBudget stores the budget for the user-month. Writing a
// month that already has one replaces the amount in place; the record keeps
// its original id across updates.
func (s *Store) CreateOrUpdateBudget(ctx context.Context, userID int64, params BudgetParams) core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := budgetKey(userID, params.Month, params.Year)

	if existing, ok := s.budgets[key]; ok {
		existing.Amount = params.Amount
		s.budgets[key] = existing

		s.logger.DebugContext(ctx, "Budget updated",
			log.FieldOperation, log.OpUpdate,
			log.FieldBudgetID, existing.ID,
			log.FieldUserID, userID,
			log.FieldMonth, params.Month,
			log.FieldYear, params.Year)

		return existing
	}

	budget := core.Budget{
		ID:     s.nextBudgetID,
		UserID: userID,
		Amount: params.Amount,
		Month:  params.Month,
		Year:   params.Year,
	}
	s.nextBudgetID++
	s.budgets[key] = budget

	s.logger.DebugContext(ctx, "Budget created",
		log.FieldOperation, log.OpCreate,
		log.FieldBudgetID, budget.ID,
		log.FieldUserID, userID,
		log.FieldMonth, params.Month,
		log.FieldYear, params.Year)

	return budget
}
