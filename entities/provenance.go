package entities

// Provenance tags which record space a recipe belongs to: authored in this
// application or pulled from the external search provider and saved by a user.
type Provenance string

const (
	ProvenanceUploaded Provenance = "uploaded"
	ProvenanceExternal Provenance = "external"
)

// provenanceSpec holds the per-variant store layout so operations dispatch
// through one table instead of repeating source conditionals.
type provenanceSpec struct {
	FavoritesCollection string
	BookmarksCollection string
	// External relation entries carry a denormalized recipe title because the
	// full record lives only in the saver's private collection.
	Denormalized bool
}

var provenanceSpecs = map[Provenance]provenanceSpec{
	ProvenanceUploaded: {
		FavoritesCollection: CollectionFavorites,
		BookmarksCollection: CollectionBookmarks,
		Denormalized:        false,
	},
	ProvenanceExternal: {
		FavoritesCollection: CollectionExternalFavorites,
		BookmarksCollection: CollectionExternalBookmarks,
		Denormalized:        true,
	},
}

// Store collection names. Relation sets are keyed <collection>/<userID>/<recipeID>;
// ratings are keyed <collection>/<recipeID>/<userID>.
const (
	CollectionRecipes           = "recipes"
	CollectionSavedRecipes      = "saved_recipes"
	CollectionFavorites         = "favorites"
	CollectionBookmarks         = "bookmarks"
	CollectionExternalFavorites = "external_favorites"
	CollectionExternalBookmarks = "external_bookmarks"
	CollectionRatings           = "ratings"
	CollectionCalendar          = "calendar"
	CollectionUsers             = "users"
)

func (p Provenance) Valid() bool {
	_, ok := provenanceSpecs[p]
	return ok
}

func (p Provenance) FavoritesCollection() string {
	return provenanceSpecs[p].FavoritesCollection
}

func (p Provenance) BookmarksCollection() string {
	return provenanceSpecs[p].BookmarksCollection
}

func (p Provenance) Denormalized() bool {
	return provenanceSpecs[p].Denormalized
}

// ParseProvenance defaults to uploaded, matching how requests that omit a
// source field are interpreted.
func ParseProvenance(s string) Provenance {
	if Provenance(s) == ProvenanceExternal {
		return ProvenanceExternal
	}
	return ProvenanceUploaded
}
