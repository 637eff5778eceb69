package model

import "fmt"

// VersionInfo is the schema version persisted in the singleton `version`
// row. Comparison is exact equality of all four fields, not ordering.
type VersionInfo struct {
	Major    int    `db:"major"`
	Minor    int    `db:"minor"`
	Revision int    `db:"revision"`
	Level    string `db:"level"`
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d-%s", v.Major, v.Minor, v.Revision, v.Level)
}
