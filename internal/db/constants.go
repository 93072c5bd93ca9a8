package db

const (
	// timestampLayout is how draw timestamps are stored so that they sort
	// lexically in chronological order.
	timestampLayout = "2006-01-02T15:04:05"

	// sqlDrawColumns is the column list shared by draw queries.
	sqlDrawColumns = "date, n1, n2, n3, n4, n5, timestamp"
)
