package recipe

import (
	"Recipe-Finder/entities"
	"Recipe-Finder/pkg/store"
	"context"
	"encoding/json"
)

type (
	// RelationRepository manages the per-user relation sets (favorites,
	// bookmarks) and the per-recipe rating set. The provenance tag picks the
	// backing collection; the access pattern is identical for both variants.
	RelationRepository interface {
		Favorites(ctx context.Context, userID string, source entities.Provenance) (map[string]*entities.Favorite, error)
		IsFavorited(ctx context.Context, userID, recipeID string, source entities.Provenance) (bool, error)
		AddFavorite(ctx context.Context, userID string, favorite *entities.Favorite) error
		RemoveFavorite(ctx context.Context, userID, recipeID string, source entities.Provenance) error

		Bookmarks(ctx context.Context, userID string, source entities.Provenance) (map[string]*entities.Bookmark, error)
		IsBookmarked(ctx context.Context, userID, recipeID string, source entities.Provenance) (bool, error)
		AddBookmark(ctx context.Context, userID string, bookmark *entities.Bookmark) error
		RemoveBookmark(ctx context.Context, userID, recipeID string, source entities.Provenance) error

		Ratings(ctx context.Context, recipeID string) ([]*entities.Rating, error)
		HasRated(ctx context.Context, recipeID, userID string) (bool, error)
		AddRating(ctx context.Context, recipeID string, rating *entities.Rating) error
		RemoveRatings(ctx context.Context, recipeID string) error
	}

	relationRepository struct {
		store store.Store
	}
)

func NewRelationRepository(st store.Store) RelationRepository {
	return &relationRepository{store: st}
}

func (r *relationRepository) Favorites(ctx context.Context, userID string, source entities.Provenance) (map[string]*entities.Favorite, error) {
	raw, err := r.store.GetAll(ctx, source.FavoritesCollection(), userID)
	if err != nil {
		return nil, err
	}
	favorites := make(map[string]*entities.Favorite, len(raw))
	for recipeID, value := range raw {
		favorite, err := entities.NormalizeFavorite(recipeID, source, value)
		if err != nil {
			continue
		}
		favorites[recipeID] = favorite
	}
	return favorites, nil
}

func (r *relationRepository) IsFavorited(ctx context.Context, userID, recipeID string, source entities.Provenance) (bool, error) {
	var raw json.RawMessage
	return r.store.Get(ctx, &raw, source.FavoritesCollection(), userID, recipeID)
}

func (r *relationRepository) AddFavorite(ctx context.Context, userID string, favorite *entities.Favorite) error {
	return r.store.Set(ctx, favorite, favorite.Source.FavoritesCollection(), userID, favorite.RecipeID)
}

func (r *relationRepository) RemoveFavorite(ctx context.Context, userID, recipeID string, source entities.Provenance) error {
	return r.store.Remove(ctx, source.FavoritesCollection(), userID, recipeID)
}

func (r *relationRepository) Bookmarks(ctx context.Context, userID string, source entities.Provenance) (map[string]*entities.Bookmark, error) {
	raw, err := r.store.GetAll(ctx, source.BookmarksCollection(), userID)
	if err != nil {
		return nil, err
	}
	bookmarks := make(map[string]*entities.Bookmark, len(raw))
	for recipeID, value := range raw {
		bookmark, err := entities.NormalizeBookmark(recipeID, source, value)
		if err != nil {
			continue
		}
		bookmarks[recipeID] = bookmark
	}
	return bookmarks, nil
}

func (r *relationRepository) IsBookmarked(ctx context.Context, userID, recipeID string, source entities.Provenance) (bool, error) {
	var raw json.RawMessage
	return r.store.Get(ctx, &raw, source.BookmarksCollection(), userID, recipeID)
}

func (r *relationRepository) AddBookmark(ctx context.Context, userID string, bookmark *entities.Bookmark) error {
	return r.store.Set(ctx, bookmark, bookmark.Source.BookmarksCollection(), userID, bookmark.RecipeID)
}

func (r *relationRepository) RemoveBookmark(ctx context.Context, userID, recipeID string, source entities.Provenance) error {
	return r.store.Remove(ctx, source.BookmarksCollection(), userID, recipeID)
}

func (r *relationRepository) Ratings(ctx context.Context, recipeID string) ([]*entities.Rating, error) {
	raw, err := r.store.GetAll(ctx, entities.CollectionRatings, recipeID)
	if err != nil {
		return nil, err
	}
	ratings := make([]*entities.Rating, 0, len(raw))
	for userID, value := range raw {
		rating, err := entities.NormalizeRating(userID, value)
		if err != nil {
			continue
		}
		ratings = append(ratings, rating)
	}
	return ratings, nil
}

func (r *relationRepository) HasRated(ctx context.Context, recipeID, userID string) (bool, error) {
	var raw json.RawMessage
	return r.store.Get(ctx, &raw, entities.CollectionRatings, recipeID, userID)
}

func (r *relationRepository) AddRating(ctx context.Context, recipeID string, rating *entities.Rating) error {
	return r.store.Set(ctx, rating, entities.CollectionRatings, recipeID, rating.UserID)
}

func (r *relationRepository) RemoveRatings(ctx context.Context, recipeID string) error {
	return r.store.Remove(ctx, entities.CollectionRatings, recipeID)
}
