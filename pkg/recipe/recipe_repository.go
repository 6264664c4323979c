package recipe

import (
	"Recipe-Finder/entities"
	"Recipe-Finder/pkg/store"
	"context"
	"encoding/json"
)

type (
	// RecipeRepository reads and writes the two recipe record spaces: the
	// shared uploaded collection and the per-user saved (external) collection.
	RecipeRepository interface {
		ListUploaded(ctx context.Context) (map[string]json.RawMessage, error)
		GetUploaded(ctx context.Context, recipeID string) (*entities.Recipe, bool, error)
		CreateUploaded(ctx context.Context, recipe *entities.Recipe) (string, error)
		SetUploaded(ctx context.Context, recipeID string, recipe *entities.Recipe) error
		RemoveUploaded(ctx context.Context, recipeID string) error

		ListSaved(ctx context.Context, userID string) (map[string]json.RawMessage, error)
		GetSaved(ctx context.Context, userID, recipeID string) (*entities.Recipe, bool, error)
		CreateSaved(ctx context.Context, userID string, recipe *entities.Recipe) (string, error)
		RemoveSaved(ctx context.Context, userID, recipeID string) error
	}

	recipeRepository struct {
		store store.Store
	}
)

func NewRecipeRepository(st store.Store) RecipeRepository {
	return &recipeRepository{store: st}
}

func (r *recipeRepository) ListUploaded(ctx context.Context) (map[string]json.RawMessage, error) {
	return r.store.GetAll(ctx, entities.CollectionRecipes)
}

func (r *recipeRepository) GetUploaded(ctx context.Context, recipeID string) (*entities.Recipe, bool, error) {
	var raw json.RawMessage
	found, err := r.store.Get(ctx, &raw, entities.CollectionRecipes, recipeID)
	if err != nil || !found {
		return nil, false, err
	}
	recipe, err := entities.NormalizeRecipe(recipeID, entities.ProvenanceUploaded, raw)
	if err != nil {
		return nil, false, err
	}
	return recipe, true, nil
}

func (r *recipeRepository) CreateUploaded(ctx context.Context, recipe *entities.Recipe) (string, error) {
	return r.store.Push(ctx, recipe, entities.CollectionRecipes)
}

func (r *recipeRepository) SetUploaded(ctx context.Context, recipeID string, recipe *entities.Recipe) error {
	return r.store.Set(ctx, recipe, entities.CollectionRecipes, recipeID)
}

func (r *recipeRepository) RemoveUploaded(ctx context.Context, recipeID string) error {
	return r.store.Remove(ctx, entities.CollectionRecipes, recipeID)
}

func (r *recipeRepository) ListSaved(ctx context.Context, userID string) (map[string]json.RawMessage, error) {
	return r.store.GetAll(ctx, entities.CollectionSavedRecipes, userID)
}

func (r *recipeRepository) GetSaved(ctx context.Context, userID, recipeID string) (*entities.Recipe, bool, error) {
	var raw json.RawMessage
	found, err := r.store.Get(ctx, &raw, entities.CollectionSavedRecipes, userID, recipeID)
	if err != nil || !found {
		return nil, false, err
	}
	recipe, err := entities.NormalizeRecipe(recipeID, entities.ProvenanceExternal, raw)
	if err != nil {
		return nil, false, err
	}
	return recipe, true, nil
}

func (r *recipeRepository) CreateSaved(ctx context.Context, userID string, recipe *entities.Recipe) (string, error) {
	return r.store.Push(ctx, recipe, entities.CollectionSavedRecipes, userID)
}

func (r *recipeRepository) RemoveSaved(ctx context.Context, userID, recipeID string) error {
	return r.store.Remove(ctx, entities.CollectionSavedRecipes, userID, recipeID)
}
