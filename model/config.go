package model

// Config holds process-level configuration. Guild-specific behavior lives in
// the settings table; this is only what the process needs before the
// database is open.
type Config struct {
	BotToken            string
	LogChannelID        string
	DatabasePath        string
	PictureCategoryName string
	UnverifiedKickDays  int
	InactiveKickDays    int
}
