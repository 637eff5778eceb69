package model

import "fmt"

// Settings is one guild's configuration row. A row is created lazily on
// first access with every ID unset and msg_timeout at its default.
type Settings struct {
	GuildID                 int64 `db:"guild_id"`
	ModRoleID               int64 `db:"mod_role_id"`
	VerifiedRoleID          int64 `db:"verified_role_id"`
	WelcomeChannelID        int64 `db:"welcome_channel_id"`
	RulesMessageID          int64 `db:"rules_message_id"`
	RulesChannelID          int64 `db:"rules_channel_id"`
	NotificationChannelID   int64 `db:"notification_channel_id"`
	FlirtingChannelID       int64 `db:"flirting_channel_id"`
	PersonalIntrosChannelID int64 `db:"personal_intros_channel_id"`
	RolesChannelID          int64 `db:"roles_channel_id"`
	InfractionLogChannelID  int64 `db:"infraction_log_channel_id"`
	MsgTimeout              int64 `db:"msg_timeout"`
}

// SettingsField selects one mutable settings column. Using a named type
// keeps invalid column names out of UPDATE statements at compile time;
// ParseSettingsField covers values that arrive as strings from autocomplete.
type SettingsField string

const (
	FieldModRoleID               SettingsField = "mod_role_id"
	FieldVerifiedRoleID          SettingsField = "verified_role_id"
	FieldWelcomeChannelID        SettingsField = "welcome_channel_id"
	FieldRulesMessageID          SettingsField = "rules_message_id"
	FieldRulesChannelID          SettingsField = "rules_channel_id"
	FieldNotificationChannelID   SettingsField = "notification_channel_id"
	FieldFlirtingChannelID       SettingsField = "flirting_channel_id"
	FieldPersonalIntrosChannelID SettingsField = "personal_intros_channel_id"
	FieldRolesChannelID          SettingsField = "roles_channel_id"
	FieldInfractionLogChannelID  SettingsField = "infraction_log_channel_id"
	FieldMsgTimeout              SettingsField = "msg_timeout"
)

// SettingsFields lists every settable field, in display order.
var SettingsFields = []SettingsField{
	FieldModRoleID,
	FieldVerifiedRoleID,
	FieldWelcomeChannelID,
	FieldRulesMessageID,
	FieldRulesChannelID,
	FieldNotificationChannelID,
	FieldFlirtingChannelID,
	FieldPersonalIntrosChannelID,
	FieldRolesChannelID,
	FieldInfractionLogChannelID,
	FieldMsgTimeout,
}

// ParseSettingsField validates a dynamic field name against the settings
// schema. Unknown names are a validation error, not a write.
func ParseSettingsField(name string) (SettingsField, error) {
	for _, f := range SettingsFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%q is not a valid settings property (valid: %v)", name, SettingsFields)
}

// IsSnowflake reports whether the field holds a platform ID and must pass
// the snowflake length rule. msg_timeout is a plain duration in seconds.
func (f SettingsField) IsSnowflake() bool {
	return f != FieldMsgTimeout
}

// Set writes the value onto the in-memory copy. Callers must treat the
// mutated record as the new source of truth.
func (s *Settings) Set(f SettingsField, value int64) {
	switch f {
	case FieldModRoleID:
		s.ModRoleID = value
	case FieldVerifiedRoleID:
		s.VerifiedRoleID = value
	case FieldWelcomeChannelID:
		s.WelcomeChannelID = value
	case FieldRulesMessageID:
		s.RulesMessageID = value
	case FieldRulesChannelID:
		s.RulesChannelID = value
	case FieldNotificationChannelID:
		s.NotificationChannelID = value
	case FieldFlirtingChannelID:
		s.FlirtingChannelID = value
	case FieldPersonalIntrosChannelID:
		s.PersonalIntrosChannelID = value
	case FieldRolesChannelID:
		s.RolesChannelID = value
	case FieldInfractionLogChannelID:
		s.InfractionLogChannelID = value
	case FieldMsgTimeout:
		s.MsgTimeout = value
	}
}

// Get reads the field from the in-memory copy.
func (s *Settings) Get(f SettingsField) int64 {
	switch f {
	case FieldModRoleID:
		return s.ModRoleID
	case FieldVerifiedRoleID:
		return s.VerifiedRoleID
	case FieldWelcomeChannelID:
		return s.WelcomeChannelID
	case FieldRulesMessageID:
		return s.RulesMessageID
	case FieldRulesChannelID:
		return s.RulesChannelID
	case FieldNotificationChannelID:
		return s.NotificationChannelID
	case FieldFlirtingChannelID:
		return s.FlirtingChannelID
	case FieldPersonalIntrosChannelID:
		return s.PersonalIntrosChannelID
	case FieldRolesChannelID:
		return s.RolesChannelID
	case FieldInfractionLogChannelID:
		return s.InfractionLogChannelID
	case FieldMsgTimeout:
		return s.MsgTimeout
	}
	return 0
}
