package recipe

import (
	"Recipe-Finder/domain"
	"Recipe-Finder/entities"
	"Recipe-Finder/internal/utils/storage"
	"Recipe-Finder/pkg/store"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to      string
	subject string
	body    string
	err     error
}

func (f *fakeMailer) SendMail(toEmail string, subject string, body string) error {
	f.to = toEmail
	f.subject = subject
	f.body = body
	return f.err
}

func newTestService(t *testing.T) (store.Store, RecipeService, *fakeMailer) {
	t.Helper()
	st := store.NewMemoryStore()
	mailer := &fakeMailer{}
	svc := NewRecipeService(
		NewRecipeRepository(st),
		NewRelationRepository(st),
		storage.AwsS3{},
		mailer,
	)
	return st, svc, mailer
}

func mustSet(t *testing.T, st store.Store, value any, segments ...string) {
	t.Helper()
	require.NoError(t, st.Set(context.Background(), value, segments...))
}

func seedUploaded(t *testing.T, st store.Store, id string, recipe entities.Recipe) {
	t.Helper()
	mustSet(t, st, recipe, entities.CollectionRecipes, id)
}

func TestListAll_FiltersByOwnerAndSearch(t *testing.T) {
	st, svc, _ := newTestService(t)
	ctx := context.Background()

	seedUploaded(t, st, "r1", entities.Recipe{
		Name:        "Nasi Goreng",
		Ingredients: []string{"rice", "egg"},
		OwnerEmail:  "chef@example.com",
		CreatedAt:   100,
	})
	seedUploaded(t, st, "r2", entities.Recipe{
		Name:        "Rendang",
		Ingredients: []string{"beef", "coconut milk"},
		OwnerEmail:  "other@example.com",
		CreatedAt:   200,
	})

	all, err := svc.ListAll(ctx, domain.RecipeListFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListAll(ctx, domain.RecipeListFilters{OwnerEmail: "chef@example.com"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Nasi Goreng", mine[0].Name)

	// Search is case-insensitive and matches a single ingredient.
	byIngredient, err := svc.ListAll(ctx, domain.RecipeListFilters{SearchText: "COCONUT"})
	require.NoError(t, err)
	require.Len(t, byIngredient, 1)
	assert.Equal(t, "Rendang", byIngredient[0].Name)

	none, err := svc.ListAll(ctx, domain.RecipeListFilters{SearchText: "durian"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListAll_StoreFailureYieldsEmptyListAndError(t *testing.T) {
	st, svc, _ := newTestService(t)

	seedUploaded(t, st, "r1", entities.Recipe{Name: "Nasi Goreng"})
	store.FailAll(st, true)

	res, err := svc.ListAll(context.Background(), domain.RecipeListFilters{})
	require.Error(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestListAll_SkipsMalformedRecords(t *testing.T) {
	st, svc, _ := newTestService(t)

	seedUploaded(t, st, "r1", entities.Recipe{Name: "Nasi Goreng"})
	mustSet(t, st, "not an object", entities.CollectionRecipes, "r2")

	res, err := svc.ListAll(context.Background(), domain.RecipeListFilters{})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Nasi Goreng", res[0].Name)
}

func TestListSavedByUser_MergesAndSortsBySavedAt(t *testing.T) {
	st, svc, _ := newTestService(t)
	ctx := context.Background()

	// Own upload: saved_at inherits created_at.
	seedUploaded(t, st, "r1", entities.Recipe{
		Name:      "Soto Ayam",
		OwnerID:   "u1",
		CreatedAt: 100,
	})
	// Someone else's upload never shows in u1's saved view.
	seedUploaded(t, st, "r2", entities.Recipe{
		Name:      "Gado Gado",
		OwnerID:   "u2",
		CreatedAt: 300,
	})
	mustSet(t, st, entities.Recipe{Name: "Saved Pasta", OwnerID: "u1", CreatedAt: 150, SavedAt: 200},
		entities.CollectionSavedRecipes, "u1", "s1")
	mustSet(t, st, entities.Recipe{Name: "Saved Salad", OwnerID: "u1", CreatedAt: 40, SavedAt: 50},
		entities.CollectionSavedRecipes, "u1", "s2")

	res, err := svc.ListSavedByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "Saved Pasta", res[0].Name)
	assert.Equal(t, "Soto Ayam", res[1].Name)
	assert.Equal(t, "Saved Salad", res[2].Name)
}

func TestListSavedByUser_TiedTimestampsKeepStableOrder(t *testing.T) {
	st, svc, _ := newTestService(t)
	ctx := context.Background()

	// All four records share one saved_at; the merge order has to be the
	// same on every call regardless.
	seedUploaded(t, st, "r1", entities.Recipe{Name: "Upload One", OwnerID: "u1", CreatedAt: 100})
	seedUploaded(t, st, "r2", entities.Recipe{Name: "Upload Two", OwnerID: "u1", CreatedAt: 100})
	mustSet(t, st, entities.Recipe{Name: "Saved One", OwnerID: "u1", SavedAt: 100},
		entities.CollectionSavedRecipes, "u1", "s1")
	mustSet(t, st, entities.Recipe{Name: "Saved Two", OwnerID: "u1", SavedAt: 100},
		entities.CollectionSavedRecipes, "u1", "s2")

	first, err := svc.ListSavedByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, first, 4)

	second, err := svc.ListSavedByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, second, 4)

	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestListSavedByUser_SavedReadFailure(t *testing.T) {
	st, svc, _ := newTestService(t)

	seedUploaded(t, st, "r1", entities.Recipe{Name: "Soto Ayam", OwnerID: "u1"})
	store.FailPath(st, entities.CollectionSavedRecipes, "u1")

	res, err := svc.ListSavedByUser(context.Background(), "u1")
	require.Error(t, err)
	assert.Empty(t, res)
}

func TestListFavorites_SkipsDanglingAndKeepsExternalTitles(t *testing.T) {
	st, svc, _ := newTestService(t)
	ctx := context.Background()

	seedUploaded(t, st, "r1", entities.Recipe{Name: "Nasi Goreng", CreatedAt: 100})
	mustSet(t, st, entities.Favorite{RecipeID: "r1", FavoritedAt: 10, Source: entities.ProvenanceUploaded},
		entities.CollectionFavorites, "u1", "r1")
	// Target deleted since it was favorited: the entry silently disappears.
	mustSet(t, st, entities.Favorite{RecipeID: "gone", FavoritedAt: 20, Source: entities.ProvenanceUploaded},
		entities.CollectionFavorites, "u1", "gone")
	mustSet(t, st, entities.Favorite{RecipeID: "777", RecipeTitle: "External Pie", FavoritedAt: 30, Source: entities.ProvenanceExternal},
		entities.CollectionExternalFavorites, "u1", "777")

	res, err := svc.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "External Pie", res[0].Name)
	assert.Equal(t, "Nasi Goreng", res[1].Name)
}

func TestAnnotateViewerState(t *testing.T) {
	st, svc, _ := newTestService(t)
	ctx := context.Background()

	seedUploaded(t, st, "r1", entities.Recipe{Name: "Nasi Goreng"})
	mustSet(t, st, entities.Rating{UserID: "u1", Rating: 4}, entities.CollectionRatings, "r1", "u1")
	mustSet(t, st, entities.Rating{UserID: "u2", Rating: 5}, entities.CollectionRatings, "r1", "u2")
	mustSet(t, st, entities.Favorite{RecipeID: "r1", Source: entities.ProvenanceUploaded},
		entities.CollectionFavorites, "u1", "r1")

	state := svc.AnnotateViewerState(ctx, "r1", entities.ProvenanceUploaded, "u1")
	assert.Equal(t, 4.5, state.AvgRating)
	assert.True(t, state.UserRated)
	assert.True(t, state.UserFavorited)
	assert.False(t, state.UserBookmarked)

	// Anonymous viewers still see the average but no per-viewer flags.
	anonymous := svc.AnnotateViewerState(ctx, "r1", entities.ProvenanceUploaded, "")
	assert.Equal(t, 4.5, anonymous.AvgRating)
	assert.False(t, anonymous.UserRated)
	assert.False(t, anonymous.UserFavorited)
}

// countingStore counts point reads so a test can assert an
// operation performed none.
type countingStore struct {
	store.Store
	gets int
}

func (s *countingStore) Get(ctx context.Context, out any, segments ...string) (bool, error) {
	s.gets++
	return s.Store.Get(ctx, out, segments...)
}

func TestAnnotateViewerState_AnonymousPerformsNoViewerLookups(t *testing.T) {
	counting := &countingStore{Store: store.NewMemoryStore()}
	svc := NewRecipeService(
		NewRecipeRepository(counting),
		NewRelationRepository(counting),
		storage.AwsS3{},
		&fakeMailer{},
	)
	ctx := context.Background()

	mustSet(t, counting, entities.Rating{UserID: "u1", Rating: 4}, entities.CollectionRatings, "r1", "u1")
	mustSet(t, counting, entities.Rating{UserID: "u2", Rating: 5}, entities.CollectionRatings, "r1", "u2")
	counting.gets = 0

	state := svc.AnnotateViewerState(ctx, "r1", entities.ProvenanceUploaded, "")
	assert.Equal(t, 4.5, state.AvgRating)
	assert.False(t, state.UserRated)
	assert.False(t, state.UserFavorited)
	assert.False(t, state.UserBookmarked)
	assert.Zero(t, counting.gets)
}

func TestAnnotateViewerState_RoundsAverageToOneDecimal(t *testing.T) {
	st, svc, _ := newTestService(t)

	mustSet(t, st, entities.Rating{UserID: "u1", Rating: 3}, entities.CollectionRatings, "r1", "u1")
	mustSet(t, st, entities.Rating{UserID: "u2", Rating: 4}, entities.CollectionRatings, "r1", "u2")
	mustSet(t, st, entities.Rating{UserID: "u3", Rating: 4}, entities.CollectionRatings, "r1", "u3")

	state := svc.AnnotateViewerState(context.Background(), "r1", entities.ProvenanceUploaded, "")
	assert.Equal(t, 3.7, state.AvgRating)
}

func TestGetDetail_NotFound(t *testing.T) {
	_, svc, _ := newTestService(t)

	_, err := svc.GetDetail(context.Background(), "missing", "")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestFavorite_DuplicateRejected(t *testing.T) {
	st, svc, _ := newTestService(t)
	ctx := context.Background()

	seedUploaded(t, st, "r1", entities.Recipe{Name: "Nasi Goreng"})

	req := domain.FavoriteRecipeRequest{RecipeID: "r1"}
	require.NoError(t, svc.Favorite(ctx, req, "u1"))
	assert.ErrorIs(t, svc.Favorite(ctx, req, "u1"), domain.ErrAlreadyFavorited)

	// A different user is a different membership pair.
	require.NoError(t, svc.Favorite(ctx, req, "u2"))
}

func TestFavorite_MissingUploadedTarget(t *testing.T) {
	_, svc, _ := newTestService(t)

	err := svc.Favorite(context.Background(), domain.FavoriteRecipeRequest{RecipeID: "missing"}, "u1")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestFavorite_ExternalStoresDenormalizedTitle(t *testing.T) {
	_, svc, _ := newTestService(t)
	ctx := context.Background()

	req := domain.FavoriteRecipeRequest{RecipeID: "777", RecipeTitle: "External Pie", Source: "external"}
	require.NoError(t, svc.Favorite(ctx, req, "u1"))

	res, err := svc.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "External Pie", res[0].Name)
	assert.Equal(t, "external", res[0].Source)
}

func TestToggleBookmark_ReportsResultingState(t *testing.T) {
	st, svc, _ := newTestService(t)
	ctx := context.Background()

	seedUploaded(t, st, "r1", entities.Recipe{Name: "Nasi Goreng"})
	req := domain.BookmarkRecipeRequest{RecipeID: "r1"}

	res, err := svc.ToggleBookmark(ctx, req, "u1")
	require.NoError(t, err)
	assert.True(t, res.Bookmarked)

	res, err = svc.ToggleBookmark(ctx, req, "u1")
	require.NoError(t, err)
	assert.False(t, res.Bookmarked)

	bookmarks, err := svc.ListBookmarks(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestRate_Guards(t *testing.T) {
	st, svc, _ := newTestService(t)
	ctx := context.Background()

	seedUploaded(t, st, "r1", entities.Recipe{Name: "Nasi Goreng"})

	assert.ErrorIs(t, svc.Rate(ctx, "r1", domain.RateRecipeRequest{Rating: 0}, "u1", "u1@example.com"), domain.ErrInvalidRating)
	assert.ErrorIs(t, svc.Rate(ctx, "r1", domain.RateRecipeRequest{Rating: 6}, "u1", "u1@example.com"), domain.ErrInvalidRating)
	assert.ErrorIs(t, svc.Rate(ctx, "missing", domain.RateRecipeRequest{Rating: 3}, "u1", "u1@example.com"), domain.ErrRecipeNotFound)

	require.NoError(t, svc.Rate(ctx, "r1", domain.RateRecipeRequest{Rating: 4}, "u1", "u1@example.com"))
	assert.ErrorIs(t, svc.Rate(ctx, "r1", domain.RateRecipeRequest{Rating: 5}, "u1", "u1@example.com"), domain.ErrAlreadyRated)

	state := svc.AnnotateViewerState(ctx, "r1", entities.ProvenanceUploaded, "u1")
	assert.Equal(t, 4.0, state.AvgRating)
	assert.True(t, state.UserRated)
}

func TestDelete_CascadeRemovesRelations(t *testing.T) {
	st, svc, _ := newTestService(t)
	ctx := context.Background()

	seedUploaded(t, st, "r1", entities.Recipe{Name: "Nasi Goreng", OwnerID: "u1"})
	require.NoError(t, svc.Favorite(ctx, domain.FavoriteRecipeRequest{RecipeID: "r1"}, "u1"))
	_, err := svc.ToggleBookmark(ctx, domain.BookmarkRecipeRequest{RecipeID: "r1"}, "u1")
	require.NoError(t, err)
	require.NoError(t, svc.Rate(ctx, "r1", domain.RateRecipeRequest{Rating: 4}, "u2", "u2@example.com"))

	require.NoError(t, svc.Delete(ctx, domain.DeleteRecipeRequest{RecipeID: "r1"}, "u1", domain.RoleChef))

	_, err = svc.GetDetail(ctx, "r1", "")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	favorites, err := svc.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, favorites)

	// The whole ratings node goes with the recipe.
	state := svc.AnnotateViewerState(ctx, "r1", entities.ProvenanceUploaded, "u2")
	assert.Equal(t, 0.0, state.AvgRating)
	assert.False(t, state.UserRated)
}

func TestDelete_PartialFailureIsReported(t *testing.T) {
	st, svc, _ := newTestService(t)
	ctx := context.Background()

	seedUploaded(t, st, "r1", entities.Recipe{Name: "Nasi Goreng", OwnerID: "u1"})
	mustSet(t, st, entities.Rating{UserID: "u2", Rating: 5}, entities.CollectionRatings, "r1", "u2")
	store.FailPath(st, entities.CollectionRatings, "r1")

	err := svc.Delete(ctx, domain.DeleteRecipeRequest{RecipeID: "r1"}, "u1", domain.RoleChef)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCascadeIncomplete)
	assert.ErrorIs(t, err, store.ErrStoreUnavailable)

	// Earlier steps are not rolled back.
	_, err = svc.GetDetail(ctx, "r1", "")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDelete_Authorization(t *testing.T) {
	st, svc, _ := newTestService(t)
	ctx := context.Background()

	seedUploaded(t, st, "r1", entities.Recipe{Name: "Nasi Goreng", OwnerID: "u1"})

	err := svc.Delete(ctx, domain.DeleteRecipeRequest{RecipeID: "r1"}, "u2", domain.RoleChef)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	// Moderators can remove anyone's upload.
	require.NoError(t, svc.Delete(ctx, domain.DeleteRecipeRequest{RecipeID: "r1"}, "u2", domain.RoleModerator))
}

func TestDelete_ExternalRemovesOwnSavedCopy(t *testing.T) {
	st, svc, _ := newTestService(t)
	ctx := context.Background()

	mustSet(t, st, entities.Recipe{Name: "Saved Pasta", OwnerID: "u1", SavedAt: 10},
		entities.CollectionSavedRecipes, "u1", "s1")
	require.NoError(t, svc.Favorite(ctx, domain.FavoriteRecipeRequest{RecipeID: "s1", RecipeTitle: "Saved Pasta", Source: "external"}, "u1"))

	require.NoError(t, svc.Delete(ctx, domain.DeleteRecipeRequest{RecipeID: "s1", Source: "external"}, "u1", domain.RoleRecipeSeeker))

	saved, err := svc.ListSavedByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, saved)

	favorites, err := svc.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestUpload_ChefOnly(t *testing.T) {
	_, svc, _ := newTestService(t)

	req := domain.UploadRecipeRequest{
		Name:        "Nasi Goreng",
		Ingredients: "rice, egg",
	}
	_, err := svc.Upload(context.Background(), req, "u1", "u1@example.com", domain.RoleRecipeSeeker)
	assert.ErrorIs(t, err, domain.ErrOnlyChefsCanUpload)
}

func TestUpload_CollectsAllValidationReasons(t *testing.T) {
	_, svc, _ := newTestService(t)

	req := domain.UploadRecipeRequest{
		Name:         "x",
		Ingredients:  "",
		Instructions: "short",
		CookingTime:  "abc",
	}
	_, err := svc.Upload(context.Background(), req, "u1", "u1@example.com", domain.RoleChef)
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.GreaterOrEqual(t, len(validationErr.Reasons), 4)
}

func TestUpload_AppliesDefaults(t *testing.T) {
	_, svc, _ := newTestService(t)
	ctx := context.Background()

	req := domain.UploadRecipeRequest{
		Name:         "Nasi Goreng",
		Ingredients:  "rice, egg, ",
		Instructions: "Fry the rice with the egg.",
		CookingTime:  "30",
	}
	res, err := svc.Upload(ctx, req, "u1", "u1@example.com", domain.RoleChef)
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, entities.DifficultyMedium, res.Difficulty)
	assert.Equal(t, []string{"rice", "egg"}, res.Ingredients)
	require.NotNil(t, res.CookingTime)
	assert.Equal(t, 30, *res.CookingTime)

	detail, err := svc.GetDetail(ctx, res.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Nasi Goreng", detail.Name)
}

func TestEmailShoppingList(t *testing.T) {
	st, svc, mailer := newTestService(t)
	ctx := context.Background()

	seedUploaded(t, st, "r1", entities.Recipe{
		Name:        "Nasi Goreng",
		Ingredients: []string{"rice", "egg"},
	})

	require.NoError(t, svc.EmailShoppingList(ctx, "r1", entities.ProvenanceUploaded, "u1", "u1@example.com"))
	assert.Equal(t, "u1@example.com", mailer.to)
	assert.Contains(t, mailer.subject, "Nasi Goreng")
	assert.True(t, strings.Contains(mailer.body, "rice") && strings.Contains(mailer.body, "egg"))

	err := svc.EmailShoppingList(ctx, "missing", entities.ProvenanceUploaded, "u1", "u1@example.com")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestShoppingList(t *testing.T) {
	st, svc, _ := newTestService(t)

	seedUploaded(t, st, "r1", entities.Recipe{Name: "Nasi Goreng", Ingredients: []string{"rice"}})

	res, err := svc.ShoppingList(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "Nasi Goreng", res.Name)
	assert.Equal(t, []string{"rice"}, res.Ingredients)

	_, err = svc.ShoppingList(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrRecipeNotFound))
}
