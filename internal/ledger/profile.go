package ledger

import (
	"slices"

	"forest-funds/internal/models"
	"forest-funds/internal/storage"
)

// Identity shown on the profile of a user that is not in the registry.
const (
	FallbackName  = "Forest Explorer"
	FallbackEmail = "explorer@forestfunds.com"
)

// ProfileOrDefault returns the saved profile of the user, or a default one
// built from the registered identity. found tells which of the two it is.
// The default is not written back.
func (s *Store) ProfileOrDefault(userID string) (p models.Profile, found bool, err error) {
	var saved models.Profile
	found, err = storage.ReadJSON(s.kv, storage.UserKey(userID, storage.ProfilesKey), &saved)
	if err != nil {
		return models.Profile{}, false, err
	}
	if found {
		return saved, true, nil
	}

	user, ok, err := s.lookupUser(userID)
	if err != nil {
		return models.Profile{}, false, err
	}
	p = models.NewProfile(FallbackName, FallbackEmail, s.now())
	if ok {
		since := user.CreatedAt
		if since.IsZero() {
			since = s.now()
		}
		p = models.NewProfile(user.Name, user.Email, since)
	}
	p.MonthlyBudget = s.budget
	p.Currency = s.currency
	return p, false, nil
}

// Profile is ProfileOrDefault without the found flag.
func (s *Store) Profile(userID string) (models.Profile, error) {
	p, _, err := s.ProfileOrDefault(userID)
	return p, err
}

// SaveProfile replaces the user's profile as a whole.
func (s *Store) SaveProfile(userID string, p models.Profile) error {
	if userID == "" {
		return invalid("user", "No user is logged in")
	}
	return storage.WriteJSON(s.kv, storage.UserKey(userID, storage.ProfilesKey), p)
}

// SettingsOrDefault returns the saved settings of the user, or the defaults.
func (s *Store) SettingsOrDefault(userID string) (models.Settings, bool, error) {
	var saved models.Settings
	found, err := storage.ReadJSON(s.kv, storage.UserKey(userID, storage.SettingsKey), &saved)
	if err != nil {
		return models.Settings{}, false, err
	}
	if !found {
		return models.DefaultSettings(), false, nil
	}
	return saved, true, nil
}

// Settings is SettingsOrDefault without the found flag.
func (s *Store) Settings(userID string) (models.Settings, error) {
	st, _, err := s.SettingsOrDefault(userID)
	return st, err
}

// SaveSettings replaces the user's settings as a whole.
func (s *Store) SaveSettings(userID string, st models.Settings) error {
	if userID == "" {
		return invalid("user", "No user is logged in")
	}
	if st.Theme != models.ThemeLight && st.Theme != models.ThemeDark {
		return invalid("theme", "Theme must be light or dark")
	}
	return storage.WriteJSON(s.kv, storage.UserKey(userID, storage.SettingsKey), st)
}

// ToggleTheme switches between the light and dark theme and saves the choice.
func (s *Store) ToggleTheme(userID string) (models.Settings, error) {
	st, err := s.Settings(userID)
	if err != nil {
		return models.Settings{}, err
	}
	if st.Theme == models.ThemeDark {
		st.Theme = models.ThemeLight
	} else {
		st.Theme = models.ThemeDark
	}
	return st, s.SaveSettings(userID, st)
}

func (s *Store) lookupUser(userID string) (models.User, bool, error) {
	var users []models.User
	if _, err := storage.ReadJSON(s.kv, storage.UsersKey, &users); err != nil {
		return models.User{}, false, err
	}
	i := slices.IndexFunc(users, func(u models.User) bool { return u.ID == userID })
	if i < 0 {
		return models.User{}, false, nil
	}
	return users[i], true, nil
}
