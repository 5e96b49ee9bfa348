package persistence

import "context"

// SettingsRepository round-trips the single named settings slot.
type SettingsRepository interface {
	// SaveSettings overwrites the slot.
	SaveSettings(ctx context.Context, settings StoredSettings) error
	// LoadSettings returns the slot contents, ErrNotFound when empty.
	LoadSettings(ctx context.Context) (StoredSettings, error)
	// ClearSettings empties the slot. Clearing an empty slot is not an error.
	ClearSettings(ctx context.Context) error
}

// DocumentRepository stores generated documents.
type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc Document) error
	GetDocument(ctx context.Context, id string) (Document, error)
	// ListDocuments returns documents newest first, at most limit entries
	// (all of them when limit <= 0).
	ListDocuments(ctx context.Context, limit int) ([]Document, error)
	DeleteDocument(ctx context.Context, id string) error
}
