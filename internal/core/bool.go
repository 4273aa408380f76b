package core

import "strings"

// ParseBoolLike coerces the heterogeneous boolean encodings found in the
// dataset and in query strings. It returns nil for anything unrecognized,
// never a silent false.
//
//	true:  "true", "1", "1.0", "yes", "y"
//	false: "false", "0", "0.0", "no", "n"
func ParseBoolLike(s string) *bool {
	switch strings.ToLower(CleanCell(s)) {
	case "true", "1", "1.0", "yes", "y":
		return boolPtr(true)
	case "false", "0", "0.0", "no", "n":
		return boolPtr(false)
	default:
		return nil
	}
}

func boolPtr(b bool) *bool { return &b }
