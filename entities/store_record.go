package entities

// StoreRecord backs the SQL implementation of the key-path store: one row per
// path, value stored as raw JSON.
type StoreRecord struct {
	Path  string `gorm:"primary_key" json:"path"`
	Value string `gorm:"type:jsonb" json:"value"`
}
