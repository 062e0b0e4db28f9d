package storage

// Base key names. Per-user keys are formed by joining a base name and the
// owning user id with an underscore.
const (
	UsersKey        = "forestFunds_users"
	CurrentUserKey  = "forestFunds_currentUser"
	TransactionsKey = "forestFunds_transactions"
	ProfilesKey     = "forestFunds_profiles"
	SettingsKey     = "forestFunds_settings"
	AvatarKey       = "avatar"
	AvatarImageKey  = "avatar_image"
)

// UserKey returns the namespaced key of baseKey for userID.
func UserKey(userID, baseKey string) string {
	return baseKey + "_" + userID
}
