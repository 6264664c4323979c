package store

import (
	"Recipe-Finder/entities"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormStore keeps the key-path mapping in a single table so the service runs
// against a local database when no hosted store is configured. Child listing
// relies on every write landing at a full path, which is how the repositories
// use the store.
type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// escapeLike neutralizes LIKE metacharacters in a path prefix; collection
// names such as saved_recipes contain underscores, which LIKE would otherwise
// treat as single-character wildcards.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *gormStore) Get(ctx context.Context, out any, segments ...string) (bool, error) {
	path, err := joinPath(segments)
	if err != nil {
		return false, err
	}
	var record entities.StoreRecord
	if err := s.db.WithContext(ctx).Where("path = ?", path).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(record.Value), out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *gormStore) GetAll(ctx context.Context, segments ...string) (map[string]json.RawMessage, error) {
	path, err := joinPath(segments)
	if err != nil {
		return nil, err
	}
	prefix := path + "/"

	var records []entities.StoreRecord
	if err := s.db.WithContext(ctx).
		Where("path LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Find(&records).Error; err != nil {
		return nil, err
	}

	children := make(map[string]json.RawMessage, len(records))
	for _, record := range records {
		rest := strings.TrimPrefix(record.Path, prefix)
		if strings.Contains(rest, "/") {
			continue
		}
		children[rest] = json.RawMessage(record.Value)
	}
	return children, nil
}

func (s *gormStore) Set(ctx context.Context, value any, segments ...string) error {
	path, err := joinPath(segments)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	record := entities.StoreRecord{Path: path, Value: string(payload)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "path"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&record).Error
}

func (s *gormStore) Push(ctx context.Context, value any, segments ...string) (string, error) {
	key := uuid.New().String()
	if err := s.Set(ctx, value, append(append([]string{}, segments...), key)...); err != nil {
		return "", err
	}
	return key, nil
}

func (s *gormStore) Remove(ctx context.Context, segments ...string) error {
	path, err := joinPath(segments)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("path = ? OR path LIKE ? ESCAPE '\\'", path, escapeLike(path+"/")+"%").
		Delete(&entities.StoreRecord{}).Error
}
