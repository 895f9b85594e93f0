// Package schema maps arbitrarily-named tabular sales input onto the
// canonical (timestamp, value) series.
package schema

// RawTable is an unvalidated table: headers in column order with original
// casing, rows as string cells aligned to the headers.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Column roles.
const (
	RoleTimestamp = "timestamp"
	RoleValue     = "value"
)

// aliases maps each role to the accepted lower-cased header names.
// Process-wide constant; matching is first-hit in column order.
var aliases = map[string][]string{
	RoleTimestamp: {"date", "ds", "order_date", "day", "timestamp"},
	RoleValue:     {"sales", "y", "weekly_sales", "revenue", "amount", "value"},
}

// Aliases returns the accepted header names for a role, for diagnostics.
func Aliases(role string) []string {
	out := make([]string, len(aliases[role]))
	copy(out, aliases[role])
	return out
}
