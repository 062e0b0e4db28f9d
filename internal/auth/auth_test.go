package auth

import (
	"testing"
	"time"

	"forest-funds/internal/ledger"
	"forest-funds/internal/models"
	"forest-funds/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	suite.Suite
	db    *storage.DB
	store *ledger.Store
	auth  *Service
	now   time.Time
}

func (suite *AuthTestSuite) SetupTest() {
	var err error
	suite.db, err = storage.NewDB(":memory:")
	suite.Require().NoError(err, "failed to create test database")

	suite.now = time.Date(2024, time.March, 20, 9, 30, 0, 0, time.UTC)
	clock := func() time.Time { return suite.now }
	suite.store = ledger.NewStore(suite.db, ledger.WithClock(clock))
	suite.auth = New(suite.db, suite.store, WithClock(clock))
}

func (suite *AuthTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *AuthTestSuite) form() Registration {
	return Registration{
		Name:     "Satsuki Kusakabe",
		Email:    "satsuki@example.com",
		Password: "totoro123",
		Confirm:  "totoro123",
	}
}

func (suite *AuthTestSuite) TestRegisterCreatesUserSessionAndProfile() {
	form := suite.form()
	form.MonthlyBudget = decimal.NewFromInt(50000)

	sess, err := suite.auth.Register(form)
	suite.Require().NoError(err)
	suite.Equal("user_1710927000000", sess.UserID())
	suite.Equal("Satsuki Kusakabe", sess.User.Name)
	suite.Equal("totoro123", sess.User.Password, "passwords are stored as given")
	suite.Equal(50000.0, sess.User.MonthlyBudget)

	users, err := suite.auth.Users()
	suite.Require().NoError(err)
	suite.Len(users, 1)

	current, ok, err := suite.auth.Current()
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(sess.User.ID, current.UserID())

	profile, found, err := suite.store.ProfileOrDefault(sess.UserID())
	suite.Require().NoError(err)
	suite.True(found, "registration saves the profile")
	suite.Equal("Satsuki Kusakabe", profile.Name)
	suite.Equal("March 2024", profile.MemberSince)
	suite.Equal("LKR", profile.Currency)
	suite.True(profile.MonthlyBudget.Equal(decimal.NewFromInt(50000)))
}

func (suite *AuthTestSuite) TestRegisterDefaultsBudget() {
	sess, err := suite.auth.Register(suite.form())
	suite.Require().NoError(err)

	profile, err := suite.store.Profile(sess.UserID())
	suite.Require().NoError(err)
	suite.True(profile.MonthlyBudget.Equal(models.DefaultBudget))
}

func (suite *AuthTestSuite) TestRegisterValidation() {
	tests := []struct {
		name    string
		mutate  func(*Registration)
		field   string
		message string
	}{
		{"missing name", func(r *Registration) { r.Name = "  " }, "form", "Please fill in all fields"},
		{"missing confirmation", func(r *Registration) { r.Confirm = "" }, "form", "Please fill in all fields"},
		{"short password", func(r *Registration) { r.Password, r.Confirm = "short", "short" }, "password", "Password must be at least 8 characters"},
		{"mismatch", func(r *Registration) { r.Confirm = "totoro124" }, "confirm", "Passwords do not match"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			form := suite.form()
			tt.mutate(&form)
			_, err := suite.auth.Register(form)
			suite.Require().ErrorIs(err, ErrValidation)

			var verr *ValidationError
			suite.Require().ErrorAs(err, &verr)
			suite.Equal(tt.field, verr.Field)
			suite.Equal(tt.message, verr.Message)

			users, err := suite.auth.Users()
			suite.Require().NoError(err)
			suite.Empty(users)
			_, ok, err := suite.auth.Current()
			suite.Require().NoError(err)
			suite.False(ok)
		})
	}
}

func (suite *AuthTestSuite) TestRegisterRejectsDuplicateEmail() {
	_, err := suite.auth.Register(suite.form())
	suite.Require().NoError(err)

	form := suite.form()
	form.Name = "Someone Else"
	_, err = suite.auth.Register(form)
	suite.Require().ErrorIs(err, ErrValidation)
	suite.Contains(err.Error(), "User with this email already exists")

	users, err := suite.auth.Users()
	suite.Require().NoError(err)
	suite.Len(users, 1)
}

func (suite *AuthTestSuite) TestRegisterIDsAreUnique() {
	a, err := suite.auth.Register(suite.form())
	suite.Require().NoError(err)

	form := suite.form()
	form.Email = "mei@example.com"
	b, err := suite.auth.Register(form)
	suite.Require().NoError(err)

	suite.Equal("user_1710927000000", a.UserID())
	suite.Equal("user_1710927000001", b.UserID())
}

func (suite *AuthTestSuite) TestLogin() {
	_, err := suite.auth.Register(suite.form())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.auth.Logout())

	_, err = suite.auth.Login("satsuki@example.com", "wrong-password")
	suite.Require().ErrorIs(err, ErrValidation)
	suite.Contains(err.Error(), "Invalid email or password")

	_, err = suite.auth.Login("SATSUKI@example.com", "totoro123")
	suite.Require().ErrorIs(err, ErrValidation, "emails match exactly")

	_, err = suite.auth.Login("", "totoro123")
	suite.Require().ErrorIs(err, ErrValidation)

	sess, err := suite.auth.Login("satsuki@example.com", "totoro123")
	suite.Require().NoError(err)
	suite.Equal("Satsuki", sess.User.FirstName())

	current, ok, err := suite.auth.Current()
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(sess, current)
}

func (suite *AuthTestSuite) TestLogoutIsIdempotent() {
	suite.NoError(suite.auth.Logout())

	_, err := suite.auth.Register(suite.form())
	suite.Require().NoError(err)
	suite.NoError(suite.auth.Logout())
	suite.NoError(suite.auth.Logout())

	_, ok, err := suite.auth.Current()
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *AuthTestSuite) TestLoginWithProvider() {
	sess, err := suite.auth.LoginWithProvider("google", "", "")
	suite.Require().NoError(err)
	suite.Equal("google_1710927000000", sess.UserID())
	suite.Equal("Google User", sess.User.Name)
	suite.Equal("google.user@example.com", sess.User.Email)
	suite.Equal("google", sess.User.Provider)
	suite.Empty(sess.User.Password)

	suite.now = suite.now.Add(time.Hour)
	again, err := suite.auth.LoginWithProvider("google", "", "")
	suite.Require().NoError(err)
	suite.Equal(sess.UserID(), again.UserID(), "an existing email is reused")

	users, err := suite.auth.Users()
	suite.Require().NoError(err)
	suite.Len(users, 1)

	_, err = suite.auth.LoginWithProvider(" ", "", "")
	suite.ErrorIs(err, ErrValidation)
}

func (suite *AuthTestSuite) TestLoginWithProviderReusesRegisteredEmail() {
	registered, err := suite.auth.Register(suite.form())
	suite.Require().NoError(err)

	sess, err := suite.auth.LoginWithProvider("google", "Satsuki", "satsuki@example.com")
	suite.Require().NoError(err)
	suite.Equal(registered.UserID(), sess.UserID())
}

func (suite *AuthTestSuite) TestEnsureDemoUser() {
	demo, err := suite.auth.EnsureDemoUser()
	suite.Require().NoError(err)
	suite.Equal("demo_1710927000000", demo.ID)
	suite.Equal(DemoName, demo.Name)

	again, err := suite.auth.EnsureDemoUser()
	suite.Require().NoError(err)
	suite.Equal(demo, again)

	sess, err := suite.auth.Login(DemoEmail, DemoPassword)
	suite.Require().NoError(err)
	suite.Equal(demo.ID, sess.UserID())
}

func (suite *AuthTestSuite) TestCorruptRegistryIsReported() {
	suite.Require().NoError(suite.db.Set(storage.UsersKey, "{"))

	_, err := suite.auth.Login("a@example.com", "password")
	suite.ErrorIs(err, storage.ErrCorrupt)

	_, err = suite.auth.Register(suite.form())
	suite.ErrorIs(err, storage.ErrCorrupt)

	raw, ok, err := suite.db.Get(storage.UsersKey)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal("{", raw, "a corrupt registry is not overwritten")
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

func TestMinPasswordLengthOption(t *testing.T) {
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	svc := New(db, ledger.NewStore(db), WithMinPasswordLength(12))
	_, err = svc.Register(Registration{Name: "A", Email: "a@example.com", Password: "elevenchars", Confirm: "elevenchars"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "at least 12 characters")

	_, err = svc.Register(Registration{Name: "A", Email: "a@example.com", Password: "twelve-chars", Confirm: "twelve-chars"})
	assert.NoError(t, err)
}

func TestNewIDSkipsOtherPrefixes(t *testing.T) {
	now := time.UnixMilli(1000)
	users := []models.User{{ID: "google_5000"}, {ID: "user_999"}, {ID: "user_abc"}}
	assert.Equal(t, "user_1000", newID("user", users, now))
	assert.Equal(t, "google_5001", newID("google", users, now))
}
