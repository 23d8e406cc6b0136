// routes/likes.go
package routes

import (
	"errors"
	"net/http"

	"github.com/Dexter-Mtetwa/find-my-property/models"
	"github.com/Dexter-Mtetwa/find-my-property/realtime"
	"github.com/Dexter-Mtetwa/find-my-property/storage"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GetLikes returns the property ids the caller has liked, the shape the
// client's optimistic store resyncs from.
func GetLikes(ctx iris.Context) {
	userID := currentUserID(ctx)

	var propertyIDs []uint
	if err := storage.DB.Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("property_id", &propertyIDs).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to retrieve likes"})
		return
	}

	ctx.JSON(iris.Map{"propertyIds": propertyIDs})
}

type toggleLikeInput struct {
	PropertyID uint `json:"propertyId" validate:"required"`
}

// ToggleLike likes an unliked property and unlikes a liked one, keeping the
// cached like_count in step within the same transaction.
func ToggleLike(ctx iris.Context) {
	var input toggleLikeInput
	if err := ctx.ReadJSON(&input); err != nil {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Invalid request payload"})
		return
	}
	if err := validate.Struct(input); err != nil {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": err.Error()})
		return
	}

	userID := currentUserID(ctx)
	liked := false
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("user_id = ? AND property_id = ?", userID, input.PropertyID).
			First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return tx.Model(&models.Property{}).
				Where("id = ? AND like_count > 0", input.PropertyID).
				UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.Like{UserID: userID, PropertyID: input.PropertyID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			liked = true
			return tx.Model(&models.Property{}).
				Where("id = ?", input.PropertyID).
				UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error
		default:
			return err
		}
	})
	if err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to toggle like"})
		return
	}

	realtime.PublishChange(ctx.Request().Context(), realtime.TableLikes, userID)

	ctx.JSON(iris.Map{"liked": liked})
}

// GetLikedProperties joins the like set back to full property rows.
func GetLikedProperties(ctx iris.Context) {
	userID := currentUserID(ctx)

	var propertyIDs []uint
	if err := storage.DB.Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("property_id", &propertyIDs).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to retrieve likes"})
		return
	}
	if len(propertyIDs) == 0 {
		ctx.JSON([]models.Property{})
		return
	}

	var properties []models.Property
	if err := storage.DB.
		Where("id IN ?", propertyIDs).
		Preload("Images").Preload("Seller").
		Find(&properties).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to retrieve liked properties"})
		return
	}

	ctx.JSON(properties)
}
