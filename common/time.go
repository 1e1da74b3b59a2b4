package common

// Earliest and latest valid sample timestamps found in a set of records, as
// Unix seconds UTC.

type Timebound struct {
	Earliest int64
	Latest   int64
}
