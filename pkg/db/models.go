package db

// progressRow mirrors one row of progress_history.
type progressRow struct {
	Seq        int64   `db:"seq"`
	ID         string  `db:"id"`
	Category   string  `db:"category"`
	Score      float64 `db:"score"`
	RecordedAt string  `db:"recorded_at"` // RFC 3339, UTC
}
