//go:build !cgo

package store

// SQLiteErrorClassifier is inert without cgo: the go-sqlite3 driver is a stub
// that fails every call, so there are no driver errors to classify.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

func (c *SQLiteErrorClassifier) Classify(error) ErrorClassification {
	return NonRetryable
}
