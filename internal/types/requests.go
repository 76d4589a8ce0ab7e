package types

// Auth requests

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
}

// Recipe requests

// IngredientInput is one ingredient line of a recipe
type IngredientInput struct {
	Item     string  `json:"item" validate:"required,max=100"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit" validate:"max=30"`
	Notes    string  `json:"notes" validate:"max=200"`
	Group    string  `json:"group" validate:"max=50"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title        string            `json:"title" validate:"required,max=100"`
	Description  string            `json:"description" validate:"max=1000"`
	Ingredients  []IngredientInput `json:"ingredients" validate:"required,min=1,dive"`
	Instructions []string          `json:"instructions" validate:"required,min=1,dive,required,max=2000"`
	PrepTime     int               `json:"prepTime" validate:"gte=0,lte=10080"`
	CookTime     int               `json:"cookTime" validate:"gte=0,lte=10080"`
	Servings     int               `json:"servings" validate:"omitempty,min=1,max=100"`
	Difficulty   string            `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Category     string            `json:"category" validate:"omitempty,oneof=breakfast lunch dinner dessert snack appetizer side beverage"`
	Cuisine      string            `json:"cuisine" validate:"max=50"`
	Tags         []string          `json:"tags" validate:"max=20,dive,required,max=30"`
	Images       []string          `json:"images" validate:"max=10,dive,url"`
	IsPublished  *bool             `json:"isPublished"`
}

// UpdateRecipeRequest represents a partial recipe update. Nil fields are left unchanged.
type UpdateRecipeRequest struct {
	Title        *string           `json:"title" validate:"omitempty,min=1,max=100"`
	Description  *string           `json:"description" validate:"omitempty,max=1000"`
	Ingredients  []IngredientInput `json:"ingredients" validate:"omitempty,dive"`
	Instructions []string          `json:"instructions" validate:"omitempty,dive,required,max=2000"`
	PrepTime     *int              `json:"prepTime" validate:"omitempty,gte=0,lte=10080"`
	CookTime     *int              `json:"cookTime" validate:"omitempty,gte=0,lte=10080"`
	Servings     *int              `json:"servings" validate:"omitempty,min=1,max=100"`
	Difficulty   *string           `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Category     *string           `json:"category" validate:"omitempty,oneof=breakfast lunch dinner dessert snack appetizer side beverage"`
	Cuisine      *string           `json:"cuisine" validate:"omitempty,max=50"`
	Tags         []string          `json:"tags" validate:"omitempty,max=20,dive,required,max=30"`
	Images       []string          `json:"images" validate:"omitempty,max=10,dive,url"`
	IsPublished  *bool             `json:"isPublished"`
}

// RecipeFilter holds listing filters for recipes
type RecipeFilter struct {
	Query      string `form:"q" validate:"max=100"`
	Category   string `form:"category" validate:"omitempty,oneof=breakfast lunch dinner dessert snack appetizer side beverage"`
	Cuisine    string `form:"cuisine" validate:"max=50"`
	Difficulty string `form:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Tag        string `form:"tag" validate:"max=30"`
	Author     string `form:"author" validate:"omitempty,uuid"`
	Sort       string `form:"sort" validate:"omitempty,oneof=newest rating popular"`
	Page       int    `form:"page" validate:"gte=0"`
	Limit      int    `form:"limit" validate:"gte=0,lte=50"`
}

// Review requests

// CreateReviewRequest represents the request body for reviewing a recipe
type CreateReviewRequest struct {
	Rating int      `json:"rating" validate:"required,min=1,max=5"`
	Title  string   `json:"title" validate:"max=100"`
	Text   string   `json:"text" validate:"required,max=2000"`
	Images []string `json:"images" validate:"max=5,dive,url"`
}

// UpdateReviewRequest represents a partial review update
type UpdateReviewRequest struct {
	Rating *int     `json:"rating" validate:"omitempty,min=1,max=5"`
	Title  *string  `json:"title" validate:"omitempty,max=100"`
	Text   *string  `json:"text" validate:"omitempty,min=1,max=2000"`
	Images []string `json:"images" validate:"omitempty,max=5,dive,url"`
}

// Collection requests

// CreateCollectionRequest represents the request body for creating a collection
type CreateCollectionRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsPublic    bool   `json:"isPublic"`
}

// UpdateCollectionRequest represents a partial collection update
type UpdateCollectionRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsPublic    *bool   `json:"isPublic"`
}

// Meal plan requests

// CreateMealPlanRequest represents the request body for creating a meal plan.
// Dates accept YYYY-MM-DD or RFC 3339.
type CreateMealPlanRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Notes     string `json:"notes" validate:"max=500"`
}

// UpdateMealPlanRequest represents a partial update of plan metadata
type UpdateMealPlanRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Notes    *string `json:"notes" validate:"omitempty,max=500"`
	IsActive *bool   `json:"isActive"`
}

// SetSlotRequest assigns or clears a meal slot on one day of a plan
type SetSlotRequest struct {
	Date     string  `json:"date" validate:"required"`
	MealType string  `json:"mealType" validate:"required"`
	RecipeID *string `json:"recipeId"`
	Servings *int    `json:"servings" validate:"omitempty,min=1,max=100"`
	Notes    string  `json:"notes" validate:"max=200"`
}

// RemoveSnackRequest removes one snack from a day of a plan
type RemoveSnackRequest struct {
	Date  string `json:"date" validate:"required"`
	Index *int   `json:"index" validate:"required,min=0"`
}

// ShoppingListEntry is one consolidated line of a shopping list
type ShoppingListEntry struct {
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ShoppingListResponse is the payload of the shopping-list endpoint
type ShoppingListResponse struct {
	ShoppingList []ShoppingListEntry `json:"shoppingList"`
	PlanName     string              `json:"planName"`
}

// External recipe API requests

// ExternalSearchParams are forwarded to the complex search endpoint
type ExternalSearchParams struct {
	Query        string `form:"query" json:"query,omitempty" validate:"max=200"`
	Cuisine      string `form:"cuisine" json:"cuisine,omitempty" validate:"max=100"`
	Diet         string `form:"diet" json:"diet,omitempty" validate:"max=100"`
	Intolerances string `form:"intolerances" json:"intolerances,omitempty" validate:"max=200"`
	Type         string `form:"type" json:"type,omitempty" validate:"max=50"`
	MaxReadyTime int    `form:"maxReadyTime" json:"maxReadyTime,omitempty" validate:"gte=0"`
	Number       int    `form:"number" json:"number,omitempty" validate:"gte=0,lte=100"`
	Offset       int    `form:"offset" json:"offset,omitempty" validate:"gte=0,lte=900"`
}

// ExternalIngredientParams are forwarded to the find-by-ingredients endpoint
type ExternalIngredientParams struct {
	Ingredients string `form:"ingredients" json:"ingredients" validate:"required,max=500"`
	Number      int    `form:"number" json:"number,omitempty" validate:"gte=0,lte=100"`
	Ranking     int    `form:"ranking" json:"ranking,omitempty" validate:"omitempty,oneof=1 2"`
}

// ExternalRandomParams are forwarded to the random recipes endpoint
type ExternalRandomParams struct {
	Tags   string `form:"tags" json:"tags,omitempty" validate:"max=200"`
	Number int    `form:"number" json:"number,omitempty" validate:"gte=0,lte=100"`
}
