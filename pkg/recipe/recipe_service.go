package recipe

import (
	"Recipe-Finder/domain"
	"Recipe-Finder/entities"
	"Recipe-Finder/internal/utils/mailing"
	"Recipe-Finder/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	// RecipeService is the recipe view aggregator: it merges the uploaded and
	// external record spaces with the per-user relation sets into the exact
	// list each screen displays, and guards the relation mutations.
	RecipeService interface {
		ListAll(ctx context.Context, filters domain.RecipeListFilters) ([]domain.RecipeResponse, error)
		ListSavedByUser(ctx context.Context, userID string) ([]domain.RecipeResponse, error)
		ListFavorites(ctx context.Context, userID string) ([]domain.RecipeResponse, error)
		ListBookmarks(ctx context.Context, userID string) ([]domain.RecipeResponse, error)
		GetDetail(ctx context.Context, recipeID, viewerID string) (domain.RecipeDetailResponse, error)
		GetSavedDetail(ctx context.Context, userID, recipeID string) (domain.RecipeResponse, error)
		AnnotateViewerState(ctx context.Context, recipeID string, source entities.Provenance, viewerID string) domain.ViewerState

		Upload(ctx context.Context, req domain.UploadRecipeRequest, userID, email, role string) (domain.RecipeResponse, error)
		SaveExternal(ctx context.Context, req domain.SaveExternalRecipeRequest, userID, email string) (string, error)
		Delete(ctx context.Context, req domain.DeleteRecipeRequest, userID, role string) error
		Favorite(ctx context.Context, req domain.FavoriteRecipeRequest, userID string) error
		Unfavorite(ctx context.Context, req domain.FavoriteRecipeRequest, userID string) error
		ToggleBookmark(ctx context.Context, req domain.BookmarkRecipeRequest, userID string) (domain.ToggleBookmarkResponse, error)
		Rate(ctx context.Context, recipeID string, req domain.RateRecipeRequest, userID, email string) error
		UploadImage(ctx context.Context, req domain.UploadRecipeImageRequest, image *multipart.FileHeader, userID string) (string, error)

		ShoppingList(ctx context.Context, recipeID string) (domain.ShoppingListResponse, error)
		EmailShoppingList(ctx context.Context, recipeID string, source entities.Provenance, userID, email string) error
	}

	recipeService struct {
		recipeRepository   RecipeRepository
		relationRepository RelationRepository
		s3                 storage.AwsS3
		mailer             mailing.MailService
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	relationRepository RelationRepository,
	s3 storage.AwsS3,
	mailer mailing.MailService,
) RecipeService {
	return &recipeService{
		recipeRepository:   recipeRepository,
		relationRepository: relationRepository,
		s3:                 s3,
		mailer:             mailer,
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toResponse(r *entities.Recipe) domain.RecipeResponse {
	return domain.RecipeResponse{
		ID:           r.ID,
		Name:         r.Name,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		CookingTime:  r.CookingTime,
		Difficulty:   r.Difficulty,
		Source:       string(r.Provenance),
		OwnerEmail:   r.OwnerEmail,
		ImageURL:     r.ImageURL,
		CreatedAt:    r.CreatedAt,
		SavedAt:      r.SavedAt,
	}
}

// matchesSearch reports whether the needle occurs, case-insensitively, in the
// recipe name, any single ingredient, or the instructions. One hit is enough.
func matchesSearch(r *entities.Recipe, needle string) bool {
	if strings.Contains(strings.ToLower(r.Name), needle) {
		return true
	}
	for _, ingredient := range r.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), needle) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(r.Instructions), needle)
}

func (s *recipeService) ListAll(ctx context.Context, filters domain.RecipeListFilters) ([]domain.RecipeResponse, error) {
	raw, err := s.recipeRepository.ListUploaded(ctx)
	if err != nil {
		// Never mix partial results with a success signal.
		return []domain.RecipeResponse{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(filters.SearchText))
	recipes := make([]domain.RecipeResponse, 0, len(raw))
	for _, id := range sortedKeys(raw) {
		recipe, err := entities.NormalizeRecipe(id, entities.ProvenanceUploaded, raw[id])
		if err != nil {
			continue
		}
		if filters.OwnerEmail != "" && recipe.OwnerEmail != filters.OwnerEmail {
			continue
		}
		if needle != "" && !matchesSearch(recipe, needle) {
			continue
		}
		recipes = append(recipes, toResponse(recipe))
	}
	return recipes, nil
}

func (s *recipeService) ListSavedByUser(ctx context.Context, userID string) ([]domain.RecipeResponse, error) {
	uploaded, err := s.recipeRepository.ListUploaded(ctx)
	if err != nil {
		return []domain.RecipeResponse{}, err
	}
	saved, err := s.recipeRepository.ListSaved(ctx, userID)
	if err != nil {
		return []domain.RecipeResponse{}, err
	}

	recipes := make([]domain.RecipeResponse, 0, len(uploaded)+len(saved))
	for _, id := range sortedKeys(uploaded) {
		recipe, err := entities.NormalizeRecipe(id, entities.ProvenanceUploaded, uploaded[id])
		if err != nil || recipe.OwnerID != userID {
			continue
		}
		recipes = append(recipes, toResponse(recipe))
	}
	for _, id := range sortedKeys(saved) {
		recipe, err := entities.NormalizeRecipe(id, entities.ProvenanceExternal, saved[id])
		if err != nil {
			continue
		}
		recipes = append(recipes, toResponse(recipe))
	}

	// Most recently saved first. SliceStable keeps the assembly order for
	// equal timestamps, so repeated calls over unchanged data agree.
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].SavedAt > recipes[j].SavedAt
	})
	return recipes, nil
}

func (s *recipeService) ListFavorites(ctx context.Context, userID string) ([]domain.RecipeResponse, error) {
	uploadedFavorites, err := s.relationRepository.Favorites(ctx, userID, entities.ProvenanceUploaded)
	if err != nil {
		return []domain.RecipeResponse{}, err
	}
	externalFavorites, err := s.relationRepository.Favorites(ctx, userID, entities.ProvenanceExternal)
	if err != nil {
		return []domain.RecipeResponse{}, err
	}

	recipes := make([]domain.RecipeResponse, 0, len(uploadedFavorites)+len(externalFavorites))
	for _, recipeID := range sortedKeys(uploadedFavorites) {
		favorite := uploadedFavorites[recipeID]
		recipe, found, err := s.recipeRepository.GetUploaded(ctx, recipeID)
		if err != nil || !found {
			// A favorite whose target was deleted is a normal condition,
			// not an error; it simply no longer appears.
			continue
		}
		res := toResponse(recipe)
		res.FavoritedAt = favorite.FavoritedAt
		recipes = append(recipes, res)
	}
	for _, recipeID := range sortedKeys(externalFavorites) {
		favorite := externalFavorites[recipeID]
		recipes = append(recipes, domain.RecipeResponse{
			ID:          favorite.RecipeID,
			Name:        favorite.RecipeTitle,
			Ingredients: []string{},
			Difficulty:  entities.DifficultyMedium,
			Source:      string(entities.ProvenanceExternal),
			FavoritedAt: favorite.FavoritedAt,
		})
	}

	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].FavoritedAt > recipes[j].FavoritedAt
	})
	return recipes, nil
}

func (s *recipeService) ListBookmarks(ctx context.Context, userID string) ([]domain.RecipeResponse, error) {
	uploadedBookmarks, err := s.relationRepository.Bookmarks(ctx, userID, entities.ProvenanceUploaded)
	if err != nil {
		return []domain.RecipeResponse{}, err
	}
	externalBookmarks, err := s.relationRepository.Bookmarks(ctx, userID, entities.ProvenanceExternal)
	if err != nil {
		return []domain.RecipeResponse{}, err
	}

	recipes := make([]domain.RecipeResponse, 0, len(uploadedBookmarks)+len(externalBookmarks))
	for _, recipeID := range sortedKeys(uploadedBookmarks) {
		bookmark := uploadedBookmarks[recipeID]
		recipe, found, err := s.recipeRepository.GetUploaded(ctx, recipeID)
		if err != nil || !found {
			continue
		}
		res := toResponse(recipe)
		res.BookmarkedAt = bookmark.BookmarkedAt
		recipes = append(recipes, res)
	}
	for _, recipeID := range sortedKeys(externalBookmarks) {
		bookmark := externalBookmarks[recipeID]
		recipes = append(recipes, domain.RecipeResponse{
			ID:           bookmark.RecipeID,
			Name:         bookmark.RecipeTitle,
			Ingredients:  []string{},
			Difficulty:   entities.DifficultyMedium,
			Source:       string(entities.ProvenanceExternal),
			BookmarkedAt: bookmark.BookmarkedAt,
		})
	}
	return recipes, nil
}

func (s *recipeService) AnnotateViewerState(ctx context.Context, recipeID string, source entities.Provenance, viewerID string) domain.ViewerState {
	state := domain.ViewerState{}

	// The average is a property of the recipe, not the viewer.
	if ratings, err := s.relationRepository.Ratings(ctx, recipeID); err == nil && len(ratings) > 0 {
		sum := 0
		for _, rating := range ratings {
			sum += rating.Rating
		}
		avg := float64(sum) / float64(len(ratings))
		state.AvgRating = math.Round(avg*10) / 10
	}

	if viewerID == "" {
		return state
	}

	if rated, err := s.relationRepository.HasRated(ctx, recipeID, viewerID); err == nil {
		state.UserRated = rated
	}
	if favorited, err := s.relationRepository.IsFavorited(ctx, viewerID, recipeID, source); err == nil {
		state.UserFavorited = favorited
	}
	if bookmarked, err := s.relationRepository.IsBookmarked(ctx, viewerID, recipeID, source); err == nil {
		state.UserBookmarked = bookmarked
	}
	return state
}

func (s *recipeService) GetDetail(ctx context.Context, recipeID, viewerID string) (domain.RecipeDetailResponse, error) {
	recipe, found, err := s.recipeRepository.GetUploaded(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}
	if !found {
		return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
	}
	return domain.RecipeDetailResponse{
		RecipeResponse: toResponse(recipe),
		ViewerState:    s.AnnotateViewerState(ctx, recipeID, entities.ProvenanceUploaded, viewerID),
	}, nil
}

func (s *recipeService) GetSavedDetail(ctx context.Context, userID, recipeID string) (domain.RecipeResponse, error) {
	recipe, found, err := s.recipeRepository.GetSaved(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if !found {
		return domain.RecipeResponse{}, domain.ErrRecipeNotFound
	}
	return toResponse(recipe), nil
}

func (s *recipeService) Upload(ctx context.Context, req domain.UploadRecipeRequest, userID, email, role string) (domain.RecipeResponse, error) {
	if role != domain.RoleChef && role != domain.RoleAdmin {
		return domain.RecipeResponse{}, domain.ErrOnlyChefsCanUpload
	}

	reasons, ingredients, cookingTime, difficulty := validateUpload(req)
	if len(reasons) > 0 {
		return domain.RecipeResponse{}, &domain.ValidationError{Reasons: reasons}
	}

	now := time.Now()
	recipe := &entities.Recipe{
		Provenance:        entities.ProvenanceUploaded,
		Name:              strings.TrimSpace(req.Name),
		Ingredients:       ingredients,
		Instructions:      strings.TrimSpace(req.Instructions),
		CookingTime:       cookingTime,
		Difficulty:        difficulty,
		OwnerID:           userID,
		OwnerEmail:        email,
		OwnerRole:         role,
		CreatedAt:         entities.EpochSeconds(now),
		CreatedAtReadable: now.Format("2006-01-02 15:04:05"),
	}

	id, err := s.recipeRepository.CreateUploaded(ctx, recipe)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	recipe.ID = id
	return toResponse(recipe), nil
}

func (s *recipeService) SaveExternal(ctx context.Context, req domain.SaveExternalRecipeRequest, userID, email string) (string, error) {
	ingredients := make([]string, 0, len(req.Ingredients))
	for _, ingredient := range req.Ingredients {
		if trimmed := strings.TrimSpace(ingredient); trimmed != "" {
			ingredients = append(ingredients, trimmed)
		}
	}

	difficulty := req.Difficulty
	switch difficulty {
	case entities.DifficultyEasy, entities.DifficultyMedium, entities.DifficultyHard:
	default:
		difficulty = entities.DifficultyMedium
	}

	now := time.Now()
	recipe := &entities.Recipe{
		Provenance:        entities.ProvenanceExternal,
		Name:              req.Name,
		Ingredients:       ingredients,
		Instructions:      req.Instructions,
		CookingTime:       req.CookingTime,
		Difficulty:        difficulty,
		OwnerID:           userID,
		OwnerEmail:        email,
		CreatedAt:         entities.EpochSeconds(now),
		CreatedAtReadable: now.Format("2006-01-02 15:04:05"),
		SavedAt:           entities.EpochSeconds(now),
		SavedAtReadable:   now.Format("2006-01-02 15:04:05"),
		ExternalID:        req.ExternalID,
		OriginalURL: fmt.Sprintf(
			"https://spoonacular.com/recipes/%s-%s",
			strings.ReplaceAll(req.Name, " ", "-"),
			req.ExternalID,
		),
	}
	return s.recipeRepository.CreateSaved(ctx, userID, recipe)
}

// Delete runs the cascade as sequential single-path removes. The store has no
// multi-path transaction, so there is no rollback; every failed step is
// reported so the caller never sees a false success.
func (s *recipeService) Delete(ctx context.Context, req domain.DeleteRecipeRequest, userID, role string) error {
	source := entities.ParseProvenance(req.Source)

	var steps []error
	if source == entities.ProvenanceExternal {
		steps = append(steps,
			s.recipeRepository.RemoveSaved(ctx, userID, req.RecipeID),
			s.relationRepository.RemoveFavorite(ctx, userID, req.RecipeID, source),
			s.relationRepository.RemoveBookmark(ctx, userID, req.RecipeID, source),
		)
	} else {
		recipe, found, err := s.recipeRepository.GetUploaded(ctx, req.RecipeID)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrRecipeNotFound
		}
		if recipe.OwnerID != userID && role != domain.RoleAdmin && role != domain.RoleModerator {
			return domain.ErrUserNotAllowed
		}
		steps = append(steps,
			s.recipeRepository.RemoveUploaded(ctx, req.RecipeID),
			s.relationRepository.RemoveFavorite(ctx, userID, req.RecipeID, source),
			s.relationRepository.RemoveBookmark(ctx, userID, req.RecipeID, source),
			s.relationRepository.RemoveRatings(ctx, req.RecipeID),
		)
	}

	var failed []error
	for _, err := range steps {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return errors.Join(append([]error{domain.ErrCascadeIncomplete}, failed...)...)
	}
	return nil
}

// Favorite and Rate share the existence-check-then-write pattern. Two tabs
// racing through the window between check and write is a known last-write-wins
// limitation; the store exposes no conditional write to close it.
func (s *recipeService) Favorite(ctx context.Context, req domain.FavoriteRecipeRequest, userID string) error {
	source := entities.ParseProvenance(req.Source)

	title := req.RecipeTitle
	if source == entities.ProvenanceUploaded {
		recipe, found, err := s.recipeRepository.GetUploaded(ctx, req.RecipeID)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrRecipeNotFound
		}
		title = recipe.Name
	}

	favorited, err := s.relationRepository.IsFavorited(ctx, userID, req.RecipeID, source)
	if err != nil {
		return err
	}
	if favorited {
		return domain.ErrAlreadyFavorited
	}

	favorite := &entities.Favorite{
		RecipeID:    req.RecipeID,
		FavoritedAt: entities.EpochSeconds(time.Now()),
		Source:      source,
	}
	if source.Denormalized() {
		favorite.RecipeTitle = title
	}
	return s.relationRepository.AddFavorite(ctx, userID, favorite)
}

func (s *recipeService) Unfavorite(ctx context.Context, req domain.FavoriteRecipeRequest, userID string) error {
	source := entities.ParseProvenance(req.Source)
	return s.relationRepository.RemoveFavorite(ctx, userID, req.RecipeID, source)
}

func (s *recipeService) ToggleBookmark(ctx context.Context, req domain.BookmarkRecipeRequest, userID string) (domain.ToggleBookmarkResponse, error) {
	source := entities.ParseProvenance(req.Source)

	bookmarked, err := s.relationRepository.IsBookmarked(ctx, userID, req.RecipeID, source)
	if err != nil {
		return domain.ToggleBookmarkResponse{}, err
	}
	if bookmarked {
		if err := s.relationRepository.RemoveBookmark(ctx, userID, req.RecipeID, source); err != nil {
			return domain.ToggleBookmarkResponse{}, err
		}
		return domain.ToggleBookmarkResponse{Bookmarked: false}, nil
	}

	bookmark := &entities.Bookmark{
		RecipeID:     req.RecipeID,
		BookmarkedAt: entities.EpochSeconds(time.Now()),
		Source:       source,
	}
	if source.Denormalized() {
		bookmark.RecipeTitle = req.RecipeTitle
	}
	if err := s.relationRepository.AddBookmark(ctx, userID, bookmark); err != nil {
		return domain.ToggleBookmarkResponse{}, err
	}
	return domain.ToggleBookmarkResponse{Bookmarked: true}, nil
}

func (s *recipeService) Rate(ctx context.Context, recipeID string, req domain.RateRecipeRequest, userID, email string) error {
	if req.Rating < 1 || req.Rating > 5 {
		return domain.ErrInvalidRating
	}

	_, found, err := s.recipeRepository.GetUploaded(ctx, recipeID)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrRecipeNotFound
	}

	rated, err := s.relationRepository.HasRated(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if rated {
		return domain.ErrAlreadyRated
	}

	rating := &entities.Rating{
		UserID:    userID,
		UserEmail: email,
		Rating:    req.Rating,
		RatedAt:   entities.EpochSeconds(time.Now()),
	}
	return s.relationRepository.AddRating(ctx, recipeID, rating)
}

func (s *recipeService) UploadImage(ctx context.Context, req domain.UploadRecipeImageRequest, image *multipart.FileHeader, userID string) (string, error) {
	recipe, found, err := s.recipeRepository.GetUploaded(ctx, req.RecipeID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", domain.ErrRecipeNotFound
	}
	if recipe.OwnerID != userID {
		return "", domain.ErrUserNotAllowed
	}

	var objectKey string
	if recipe.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
		objectKey, err = s.s3.UpdateFile(existingKey, image, storage.AllowImage...)
	} else {
		fileName := fmt.Sprintf("%s-%s", req.RecipeID, uuid.New().String())
		objectKey, err = s.s3.UploadFile(fileName, image, "recipes", storage.AllowImage...)
	}
	if err != nil {
		return "", err
	}

	recipe.ImageURL = s.s3.GetPublicLink(objectKey)
	if err := s.recipeRepository.SetUploaded(ctx, req.RecipeID, recipe); err != nil {
		return "", err
	}
	return recipe.ImageURL, nil
}

func (s *recipeService) ShoppingList(ctx context.Context, recipeID string) (domain.ShoppingListResponse, error) {
	recipe, found, err := s.recipeRepository.GetUploaded(ctx, recipeID)
	if err != nil {
		return domain.ShoppingListResponse{}, err
	}
	if !found {
		return domain.ShoppingListResponse{}, domain.ErrRecipeNotFound
	}
	return domain.ShoppingListResponse{
		RecipeID:    recipeID,
		Name:        recipe.Name,
		Ingredients: recipe.Ingredients,
	}, nil
}

func (s *recipeService) EmailShoppingList(ctx context.Context, recipeID string, source entities.Provenance, userID, email string) error {
	var recipe *entities.Recipe
	var found bool
	var err error
	if source == entities.ProvenanceExternal {
		recipe, found, err = s.recipeRepository.GetSaved(ctx, userID, recipeID)
	} else {
		recipe, found, err = s.recipeRepository.GetUploaded(ctx, recipeID)
	}
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrRecipeNotFound
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h2>Shopping list for %s</h2><ul>", recipe.Name))
	for _, ingredient := range recipe.Ingredients {
		body.WriteString(fmt.Sprintf("<li>%s</li>", ingredient))
	}
	body.WriteString("</ul>")

	return s.mailer.SendMail(email, fmt.Sprintf("Shopping list: %s", recipe.Name), body.String())
}
