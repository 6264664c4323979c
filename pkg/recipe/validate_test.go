package recipe

import (
	"Recipe-Finder/domain"
	"Recipe-Finder/entities"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload_Valid(t *testing.T) {
	reasons, ingredients, cookingTime, difficulty := validateUpload(domain.UploadRecipeRequest{
		Name:         "Nasi Goreng",
		Ingredients:  " rice , egg ,, ",
		Instructions: "Fry the rice with the egg.",
		CookingTime:  "30",
		Difficulty:   "Hard",
	})
	assert.Empty(t, reasons)
	assert.Equal(t, []string{"rice", "egg"}, ingredients)
	require.NotNil(t, cookingTime)
	assert.Equal(t, 30, *cookingTime)
	assert.Equal(t, entities.DifficultyHard, difficulty)
}

func TestValidateUpload_DefaultsDifficulty(t *testing.T) {
	reasons, _, _, difficulty := validateUpload(domain.UploadRecipeRequest{
		Name:        "Nasi Goreng",
		Ingredients: "rice",
	})
	assert.Empty(t, reasons)
	assert.Equal(t, entities.DifficultyMedium, difficulty)
}

func TestValidateUpload_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		req  domain.UploadRecipeRequest
		want string
	}{
		{
			name: "empty name",
			req:  domain.UploadRecipeRequest{Ingredients: "rice"},
			want: "recipe name is required",
		},
		{
			name: "name too long",
			req: domain.UploadRecipeRequest{
				Name:        strings.Repeat("a", 101),
				Ingredients: "rice",
			},
			want: "cannot exceed",
		},
		{
			name: "no ingredients",
			req:  domain.UploadRecipeRequest{Name: "Nasi Goreng"},
			want: "ingredients are required",
		},
		{
			name: "only separators",
			req:  domain.UploadRecipeRequest{Name: "Nasi Goreng", Ingredients: " , , "},
			want: "at least one valid ingredient",
		},
		{
			name: "ingredient markup",
			req:  domain.UploadRecipeRequest{Name: "Nasi Goreng", Ingredients: "rice, <b>egg</b>"},
			want: "invalid characters",
		},
		{
			name: "script in instructions",
			req: domain.UploadRecipeRequest{
				Name:         "Nasi Goreng",
				Ingredients:  "rice",
				Instructions: "Mix well <script>alert(1)</script>",
			},
			want: "unsafe content",
		},
		{
			name: "negative cooking time",
			req: domain.UploadRecipeRequest{
				Name:        "Nasi Goreng",
				Ingredients: "rice",
				CookingTime: "-5",
			},
			want: "positive number",
		},
		{
			name: "cooking time over a day",
			req: domain.UploadRecipeRequest{
				Name:        "Nasi Goreng",
				Ingredients: "rice",
				CookingTime: "2000",
			},
			want: "24 hours",
		},
		{
			name: "unknown difficulty",
			req: domain.UploadRecipeRequest{
				Name:        "Nasi Goreng",
				Ingredients: "rice",
				Difficulty:  "Impossible",
			},
			want: "valid difficulty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasons, _, _, _ := validateUpload(tt.req)
			require.NotEmpty(t, reasons)
			assert.Contains(t, strings.Join(reasons, "; "), tt.want)
		})
	}
}

func TestValidateUpload_AccumulatesReasons(t *testing.T) {
	reasons, _, _, _ := validateUpload(domain.UploadRecipeRequest{
		Name:         "x",
		Ingredients:  "",
		Instructions: "short",
		CookingTime:  "abc",
		Difficulty:   "Nope",
	})
	assert.GreaterOrEqual(t, len(reasons), 5)
}
