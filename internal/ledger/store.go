// Package ledger owns a user's transactions, profile and settings, and derives
// the monthly, yearly and lifetime aggregates shown on the dashboard, the
// analytics view and the profile page.
package ledger

import (
	"io"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"forest-funds/internal/models"
	"forest-funds/internal/storage"

	"github.com/shopspring/decimal"
)

// Store reads and writes ledgers on a key-value medium. Every call is a
// complete read-modify-write against a fresh snapshot; there is no caching.
type Store struct {
	kv       storage.Medium
	now      func() time.Time
	log      *log.Logger
	budget   decimal.Decimal
	currency string
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, used for ids, default profiles and the
// dashboard's current month.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for destructive operations.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithDefaults sets the budget and currency given to users without a saved
// profile. Non-positive budgets and empty currencies are ignored.
func WithDefaults(budget decimal.Decimal, currency string) Option {
	return func(s *Store) {
		if budget.IsPositive() {
			s.budget = budget
		}
		if currency != "" {
			s.currency = currency
		}
	}
}

// NewStore creates a Store on kv.
func NewStore(kv storage.Medium, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		now:      time.Now,
		log:      log.New(io.Discard, "", 0),
		budget:   models.DefaultBudget,
		currency: models.DefaultCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transactions returns the user's ledger in insertion order. A user without a
// stored ledger has an empty one.
func (s *Store) Transactions(userID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if _, err := storage.ReadJSON(s.kv, storage.UserKey(userID, storage.TransactionsKey), &txs); err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, nil
}

func (s *Store) save(userID string, txs []models.Transaction) error {
	return storage.WriteJSON(s.kv, storage.UserKey(userID, storage.TransactionsKey), txs)
}

// ValidateDraft checks the fields a transaction needs before it may be stored.
func ValidateDraft(d models.Draft) error {
	if !d.Amount.IsPositive() {
		return invalid("amount", "Amount must be greater than 0")
	}
	if !d.Type.Valid() {
		return invalid("type", "Type must be income or expense")
	}
	if strings.TrimSpace(d.Category) == "" {
		return invalid("category", "Please fill in all fields")
	}
	if strings.TrimSpace(d.Description) == "" {
		return invalid("description", "Please fill in all fields")
	}
	if d.Date.IsZero() {
		return invalid("date", "Please fill in all fields")
	}
	return nil
}

// AddTransaction validates d, stores it at the end of the user's ledger and
// returns the stored record. Nothing is written when validation fails.
func (s *Store) AddTransaction(userID string, d models.Draft) (models.Transaction, error) {
	if userID == "" {
		return models.Transaction{}, invalid("user", "No user is logged in")
	}
	if err := ValidateDraft(d); err != nil {
		return models.Transaction{}, err
	}

	txs, err := s.Transactions(userID)
	if err != nil {
		return models.Transaction{}, err
	}

	tx := models.Transaction{
		ID:          nextID(txs, s.now()),
		UserID:      userID,
		Amount:      d.Amount,
		Type:        d.Type,
		Category:    d.Category,
		Description: d.Description,
		Date:        d.Date,
	}
	txs = append(txs, tx)

	if err := s.save(userID, txs); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// nextID derives an id from the creation time in milliseconds, moved past any
// timestamp id already in the ledger so ids stay unique within it.
func nextID(txs []models.Transaction, now time.Time) string {
	ms := now.UnixMilli()
	for _, tx := range txs {
		if n, err := strconv.ParseInt(tx.ID, 10, 64); err == nil && n >= ms {
			ms = n + 1
		}
	}
	return strconv.FormatInt(ms, 10)
}

// DeleteTransaction removes the transaction with the given id. Deleting an id
// that is not in the ledger is a no-op.
func (s *Store) DeleteTransaction(userID, id string) error {
	txs, err := s.Transactions(userID)
	if err != nil {
		return err
	}
	txs = slices.DeleteFunc(txs, func(tx models.Transaction) bool { return tx.ID == id })
	return s.save(userID, txs)
}

// ResetLedger drops every transaction of the user. It cannot be undone;
// asking for confirmation is up to the caller.
func (s *Store) ResetLedger(userID string) error {
	if err := s.kv.Delete(storage.UserKey(userID, storage.TransactionsKey)); err != nil {
		return err
	}
	s.log.Printf("ledger reset for user %s", userID)
	return nil
}

// Recent returns up to n transactions, most recent date first.
func (s *Store) Recent(userID string, n int) ([]models.Transaction, error) {
	txs, err := s.Transactions(userID)
	if err != nil {
		return nil, err
	}
	return MostRecent(txs, n), nil
}

// Find returns the transaction with the given id.
func (s *Store) Find(userID, id string) (models.Transaction, bool, error) {
	txs, err := s.Transactions(userID)
	if err != nil {
		return models.Transaction{}, false, err
	}
	i := slices.IndexFunc(txs, func(tx models.Transaction) bool { return tx.ID == id })
	if i < 0 {
		return models.Transaction{}, false, nil
	}
	return txs[i], true, nil
}
