package model

import (
	"fmt"
	"strconv"
)

// Discord snowflakes are at least 15 decimal digits. Anything shorter is a
// typo or a placeholder, not a real ID.
const minSnowflakeDigits = 15

// CheckSnowflake rejects identifiers that are too short to be a platform
// snowflake. It does not verify the ID refers to anything.
func CheckSnowflake(name string, id int64) error {
	if len(strconv.FormatInt(id, 10)) < minSnowflakeDigits {
		return fmt.Errorf("`%s` value is too short (<%d digits): %d", name, minSnowflakeDigits, id)
	}
	return nil
}

// ParseSnowflake converts a discordgo string ID into an int64 and applies the
// same length rule as CheckSnowflake.
func ParseSnowflake(name, id string) (int64, error) {
	v, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("`%s` is not a numeric ID: %q", name, id)
	}
	if err := CheckSnowflake(name, v); err != nil {
		return 0, err
	}
	return v, nil
}
