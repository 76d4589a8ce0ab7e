package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
	"github.com/pageza/recipe-share/backend/internal/validation"
)

const collectionRecipesTable = "collection_recipes"

// CollectionService handles user-curated recipe collections
type CollectionService struct {
	db *gorm.DB
}

// NewCollectionService creates a new CollectionService instance
func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

// CreateCollection stores a new collection owned by ownerID.
func (s *CollectionService) CreateCollection(ctx context.Context, ownerID uuid.UUID, req *types.CreateCollectionRequest) (*models.Collection, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	collection := &models.Collection{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Recipes:     []models.Recipe{},
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := collectionSlug(tx, ownerID, collection.Name, uuid.Nil)
		if err != nil {
			return err
		}
		collection.Slug = slug
		if err := tx.Omit("Recipes").Create(collection).Error; err != nil {
			return duplicateOr(err, "You already have a collection with this name", "failed to create collection")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return collection, nil
}

// ListCollections returns the owner's collections with recipe counts.
func (s *CollectionService) ListCollections(ctx context.Context, ownerID uuid.UUID) ([]models.Collection, error) {
	db := s.db.WithContext(ctx)

	collections := []models.Collection{}
	if err := db.Where("owner_id = ?", ownerID).Order("updated_at DESC").Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	if len(collections) == 0 {
		return collections, nil
	}

	ids := make([]uuid.UUID, len(collections))
	for i := range collections {
		ids[i] = collections[i].ID
	}
	var counts []struct {
		CollectionID uuid.UUID
		Count        int64
	}
	err := db.Table(collectionRecipesTable).
		Select("collection_id, COUNT(*) AS count").
		Where("collection_id IN ?", ids).
		Group("collection_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count collection recipes: %w", err)
	}
	byID := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		byID[c.CollectionID] = c.Count
	}
	for i := range collections {
		collections[i].RecipeCount = byID[collections[i].ID]
	}
	return collections, nil
}

// GetCollection returns a collection with its recipes. Private collections
// are reported missing to everyone but their owner.
func (s *CollectionService) GetCollection(ctx context.Context, id, viewerID uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	err := s.db.WithContext(ctx).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ? OR author_id = ?", true, viewerID).Order("title ASC")
		}).
		First(&collection, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err, "Collection", "failed to load collection")
	}
	if !collection.IsPublic && collection.OwnerID != viewerID {
		return nil, types.NotFound("Collection")
	}
	collection.RecipeCount = int64(len(collection.Recipes))
	return &collection, nil
}

// UpdateCollection applies req. Only the owner may update a collection.
func (s *CollectionService) UpdateCollection(ctx context.Context, id, callerID uuid.UUID, req *types.UpdateCollectionRequest) (*models.Collection, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		collection, err := ownedCollection(tx, id, callerID)
		if err != nil {
			return err
		}
		if err := validation.Struct(req); err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return types.NewValidationError("name is required")
			}
			if name != collection.Name {
				slug, err := collectionSlug(tx, callerID, name, collection.ID)
				if err != nil {
					return err
				}
				collection.Name = name
				collection.Slug = slug
			}
		}
		if req.Description != nil {
			collection.Description = *req.Description
		}
		if req.IsPublic != nil {
			collection.IsPublic = *req.IsPublic
		}
		if err := tx.Omit("Recipes").Save(collection).Error; err != nil {
			return duplicateOr(err, "You already have a collection with this name", "failed to update collection")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetCollection(ctx, id, callerID)
}

// DeleteCollection removes a collection and its recipe links.
func (s *CollectionService) DeleteCollection(ctx context.Context, id, callerID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ownedCollection(tx, id, callerID); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM "+collectionRecipesTable+" WHERE collection_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to unlink recipes: %w", err)
		}
		if err := tx.Delete(&models.Collection{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
		return nil
	})
}

// AddRecipe links a recipe into a collection. Adding a recipe twice is a
// no-op. Saving someone else's recipe into a public collection notifies
// the recipe's author.
func (s *CollectionService) AddRecipe(ctx context.Context, id, callerID, recipeID uuid.UUID) (*models.Collection, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		collection, err := ownedCollection(tx, id, callerID)
		if err != nil {
			return err
		}

		var recipe models.Recipe
		if err := tx.Select("id", "author_id", "title", "is_published").First(&recipe, "id = ?", recipeID).Error; err != nil {
			return notFoundOr(err, "Recipe", "failed to load recipe")
		}
		if !recipe.IsPublished && recipe.AuthorID != callerID {
			return types.NotFound("Recipe")
		}

		var linked int64
		err = tx.Table(collectionRecipesTable).
			Where("collection_id = ? AND recipe_id = ?", id, recipeID).
			Count(&linked).Error
		if err != nil {
			return fmt.Errorf("failed to check collection link: %w", err)
		}
		if linked > 0 {
			return nil
		}

		err = tx.Table(collectionRecipesTable).Create(map[string]interface{}{
			"collection_id": id,
			"recipe_id":     recipeID,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to link recipe: %w", err)
		}
		if err := tx.Model(collection).UpdateColumn("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error; err != nil {
			return fmt.Errorf("failed to touch collection: %w", err)
		}

		if collection.IsPublic {
			return notify(tx, recipe.AuthorID, callerID, models.NotificationCollectionSave, &recipe.ID,
				fmt.Sprintf("Your recipe %q was saved to the collection %q", recipe.Title, collection.Name))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetCollection(ctx, id, callerID)
}

// RemoveRecipe unlinks a recipe from a collection.
func (s *CollectionService) RemoveRecipe(ctx context.Context, id, callerID, recipeID uuid.UUID) (*models.Collection, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ownedCollection(tx, id, callerID); err != nil {
			return err
		}
		err := tx.Exec("DELETE FROM "+collectionRecipesTable+" WHERE collection_id = ? AND recipe_id = ?", id, recipeID).Error
		if err != nil {
			return fmt.Errorf("failed to unlink recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetCollection(ctx, id, callerID)
}

func ownedCollection(tx *gorm.DB, id, callerID uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := tx.First(&collection, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "Collection", "failed to load collection")
	}
	if collection.OwnerID != callerID {
		return nil, types.ErrForbidden
	}
	return &collection, nil
}

// collectionSlug derives a slug unique among ownerID's collections.
func collectionSlug(tx *gorm.DB, ownerID uuid.UUID, name string, self uuid.UUID) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "collection"
	}
	return uniqueSlug(base, func(candidate string) (bool, error) {
		var count int64
		err := tx.Model(&models.Collection{}).
			Where("owner_id = ? AND slug = ? AND id <> ?", ownerID, candidate, self).
			Count(&count).Error
		if err != nil {
			return false, fmt.Errorf("failed to check slug: %w", err)
		}
		return count > 0, nil
	})
}
