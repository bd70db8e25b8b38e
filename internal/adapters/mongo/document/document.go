package document

// Document is a record stored under a caller-chosen string key.
type Document interface {
	GetID() string
}
