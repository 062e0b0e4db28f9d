// Package auth keeps the user registry and the current session on the
// key-value medium.
package auth

import (
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"forest-funds/internal/ledger"
	"forest-funds/internal/models"
	"forest-funds/internal/storage"

	"github.com/shopspring/decimal"
)

// DefaultMinPasswordLength is the shortest password Register accepts.
const DefaultMinPasswordLength = 8

// Demo account credentials.
const (
	DemoEmail    = "demo@forestfunds.com"
	DemoPassword = "demo123"
	DemoName     = "Demo Explorer"
)

// ErrValidation is matched by errors.Is for every rejected form.
var ErrValidation = errors.New("validation failed")

// ValidationError names the offending field and carries a message fit for
// showing to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// Session is the logged in user. It holds a full copy of the user record as it
// was when the session was opened.
type Session struct {
	User models.User
}

// UserID is the id every ledger call of the session is made with.
func (s Session) UserID() string { return s.User.ID }

// Registration is the sign-up form.
type Registration struct {
	Name          string
	Email         string
	Password      string
	Confirm       string
	MonthlyBudget decimal.Decimal
}

// Service registers users and opens and closes sessions.
type Service struct {
	kv          storage.Medium
	ledger      *ledger.Store
	now         func() time.Time
	log         *log.Logger
	minPassword int
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, used for user ids and creation times.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger used for account events.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMinPasswordLength overrides DefaultMinPasswordLength. Values below 1 are
// ignored.
func WithMinPasswordLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minPassword = n
		}
	}
}

// New creates a Service on kv. store receives the initial profile of newly
// registered users.
func New(kv storage.Medium, store *ledger.Store, opts ...Option) *Service {
	s := &Service{
		kv:          kv,
		ledger:      store,
		now:         time.Now,
		log:         log.New(io.Discard, "", 0),
		minPassword: DefaultMinPasswordLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Users returns the registry in creation order.
func (s *Service) Users() ([]models.User, error) {
	var users []models.User
	if _, err := storage.ReadJSON(s.kv, storage.UsersKey, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *Service) saveUsers(users []models.User) error {
	return storage.WriteJSON(s.kv, storage.UsersKey, users)
}

func findByEmail(users []models.User, email string) (models.User, bool) {
	i := slices.IndexFunc(users, func(u models.User) bool { return u.Email == email })
	if i < 0 {
		return models.User{}, false
	}
	return users[i], true
}

// Register validates form, adds the user to the registry, opens a session for
// it and saves its initial profile. Nothing is written when validation fails.
func (s *Service) Register(form Registration) (Session, error) {
	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)
	if name == "" || email == "" || form.Password == "" || form.Confirm == "" {
		return Session{}, invalid("form", "Please fill in all fields")
	}
	if len(form.Password) < s.minPassword {
		return Session{}, invalid("password", fmt.Sprintf("Password must be at least %d characters", s.minPassword))
	}
	if form.Password != form.Confirm {
		return Session{}, invalid("confirm", "Passwords do not match")
	}

	users, err := s.Users()
	if err != nil {
		return Session{}, err
	}
	if _, exists := findByEmail(users, email); exists {
		return Session{}, invalid("email", "User with this email already exists")
	}

	budget := form.MonthlyBudget
	if !budget.IsPositive() {
		budget = models.DefaultBudget
	}
	now := s.now()
	user := models.User{
		ID:            newID("user", users, now),
		Name:          name,
		Email:         email,
		Password:      form.Password,
		MonthlyBudget: budget.InexactFloat64(),
		CreatedAt:     now.UTC(),
	}
	if err := s.saveUsers(append(users, user)); err != nil {
		return Session{}, err
	}

	profile, err := s.ledger.Profile(user.ID)
	if err != nil {
		return Session{}, err
	}
	profile.MonthlyBudget = budget
	if err := s.ledger.SaveProfile(user.ID, profile); err != nil {
		return Session{}, err
	}

	s.log.Printf("registered user %s", user.ID)
	return s.open(user)
}

// Login opens a session for the user whose email and password both match
// exactly.
func (s *Service) Login(email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, invalid("form", "Please fill in all fields")
	}
	users, err := s.Users()
	if err != nil {
		return Session{}, err
	}
	i := slices.IndexFunc(users, func(u models.User) bool {
		return u.Email == strings.TrimSpace(email) && u.Password == password
	})
	if i < 0 {
		return Session{}, invalid("credentials", "Invalid email or password")
	}
	return s.open(users[i])
}

// LoginWithProvider opens a session for an identity vouched for by an external
// provider. An existing user with the same email is reused; otherwise one is
// created with an id prefixed by the provider name and no password.
func (s *Service) LoginWithProvider(provider, name, email string) (Session, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return Session{}, invalid("provider", "Provider is required")
	}
	if name == "" {
		name = strings.ToUpper(provider[:1]) + provider[1:] + " User"
	}
	if email == "" {
		email = provider + ".user@example.com"
	}

	users, err := s.Users()
	if err != nil {
		return Session{}, err
	}
	if user, ok := findByEmail(users, email); ok {
		return s.open(user)
	}

	now := s.now()
	user := models.User{
		ID:        newID(provider, users, now),
		Name:      name,
		Email:     email,
		Provider:  provider,
		CreatedAt: now.UTC(),
	}
	if err := s.saveUsers(append(users, user)); err != nil {
		return Session{}, err
	}
	s.log.Printf("created %s user %s", provider, user.ID)
	return s.open(user)
}

// EnsureDemoUser adds the demo account to the registry unless a user with the
// demo email already exists, and returns it.
func (s *Service) EnsureDemoUser() (models.User, error) {
	users, err := s.Users()
	if err != nil {
		return models.User{}, err
	}
	if user, ok := findByEmail(users, DemoEmail); ok {
		return user, nil
	}
	now := s.now()
	user := models.User{
		ID:        newID("demo", users, now),
		Name:      DemoName,
		Email:     DemoEmail,
		Password:  DemoPassword,
		CreatedAt: now.UTC(),
	}
	if err := s.saveUsers(append(users, user)); err != nil {
		return models.User{}, err
	}
	s.log.Printf("created demo user %s", user.ID)
	return user, nil
}

// Current returns the open session, if any.
func (s *Service) Current() (Session, bool, error) {
	var user models.User
	found, err := storage.ReadJSON(s.kv, storage.CurrentUserKey, &user)
	if err != nil || !found {
		return Session{}, false, err
	}
	return Session{User: user}, true, nil
}

// Logout closes the open session. It is a no-op when none is open.
func (s *Service) Logout() error {
	return s.kv.Delete(storage.CurrentUserKey)
}

func (s *Service) open(user models.User) (Session, error) {
	if err := storage.WriteJSON(s.kv, storage.CurrentUserKey, user); err != nil {
		return Session{}, err
	}
	return Session{User: user}, nil
}

// newID returns prefix_<unix ms>, moved past any id in users with the same
// prefix so ids stay unique within the registry.
func newID(prefix string, users []models.User, now time.Time) string {
	ms := now.UnixMilli()
	for _, u := range users {
		rest, ok := strings.CutPrefix(u.ID, prefix+"_")
		if !ok {
			continue
		}
		if n, err := strconv.ParseInt(rest, 10, 64); err == nil && n >= ms {
			ms = n + 1
		}
	}
	return prefix + "_" + strconv.FormatInt(ms, 10)
}
