// routes/properties.go
package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dexter-Mtetwa/find-my-property/lifecycle"
	"github.com/Dexter-Mtetwa/find-my-property/models"
	"github.com/Dexter-Mtetwa/find-my-property/realtime"
	"github.com/Dexter-Mtetwa/find-my-property/storage"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

func GetAvailableProperties(ctx iris.Context) {
	var properties []models.Property
	if err := storage.DB.
		Where("status = ?", models.PropertyAvailable).
		Preload("Images").Preload("Seller").
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to retrieve properties"})
		return
	}

	ctx.JSON(properties)
}

func GetProperty(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Invalid property ID"})
		return
	}

	var property models.Property
	if err := storage.DB.Preload("Images").Preload("Seller").First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(http.StatusNotFound)
			ctx.JSON(iris.Map{"error": "Property not found"})
		} else {
			ctx.StatusCode(http.StatusInternalServerError)
			ctx.JSON(iris.Map{"error": "Failed to retrieve property"})
		}
		return
	}

	ctx.JSON(property)
}

// RecordPropertyView appends a view row and bumps the cached counter.
func RecordPropertyView(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Invalid property ID"})
		return
	}

	viewerID := currentUserID(ctx)
	view := models.PropertyView{PropertyID: id, ViewerID: &viewerID}
	if err := storage.DB.Create(&view).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to record view"})
		return
	}
	storage.DB.Model(&models.Property{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))

	ctx.StatusCode(http.StatusNoContent)
}

type propertyImageInput struct {
	ImageURL    string `json:"imageUrl" validate:"required"`
	StoragePath string `json:"storagePath"`
	IsPrimary   bool   `json:"isPrimary"`
	OrderIndex  int    `json:"orderIndex"`
}

type propertyInput struct {
	Title             string               `json:"title" validate:"required"`
	Description       string               `json:"description"`
	Price             float64              `json:"price" validate:"required,gt=0"`
	Currency          string               `json:"currency"`
	ListingType       models.ListingType   `json:"listingType" validate:"omitempty,oneof=rent buy"`
	Location          string               `json:"location" validate:"required"`
	Latitude          *float64             `json:"latitude"`
	Longitude         *float64             `json:"longitude"`
	Rooms             int                  `json:"rooms" validate:"required,gte=1"`
	Bathrooms         int                  `json:"bathrooms" validate:"gte=0"`
	SquareMeters      *float64             `json:"squareMeters"`
	Floor             *int                 `json:"floor"`
	TotalFloors       *int                 `json:"totalFloors"`
	Amenities         []string             `json:"amenities"`
	PropertyType      models.PropertyType  `json:"propertyType" validate:"omitempty,oneof=apartment house studio room"`
	MinimumStayMonths int                  `json:"minimumStayMonths" validate:"gte=0"`
	Images            []propertyImageInput `json:"images" validate:"required,min=1,dive"`
}

func CreateProperty(ctx iris.Context) {
	var input propertyInput
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

	sellerID := currentUserID(ctx)
	amenities, err := json.Marshal(input.Amenities)
	if err != nil {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Invalid amenities"})
		return
	}

	property := models.Property{
		SellerID:          sellerID,
		Title:             input.Title,
		Description:       input.Description,
		Price:             input.Price,
		Currency:          input.Currency,
		ListingType:       input.ListingType,
		Location:          input.Location,
		Latitude:          input.Latitude,
		Longitude:         input.Longitude,
		Rooms:             input.Rooms,
		Bathrooms:         input.Bathrooms,
		SquareMeters:      input.SquareMeters,
		Floor:             input.Floor,
		TotalFloors:       input.TotalFloors,
		Amenities:         amenities,
		PropertyType:      input.PropertyType,
		MinimumStayMonths: input.MinimumStayMonths,
		Status:            models.PropertyAvailable,
	}
	for _, image := range input.Images {
		property.Images = append(property.Images, models.PropertyImage{
			ImageURL:    image.ImageURL,
			StoragePath: image.StoragePath,
			IsPrimary:   image.IsPrimary,
			OrderIndex:  image.OrderIndex,
		})
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to create property"})
		return
	}

	realtime.PublishChange(ctx.Request().Context(), realtime.TableProperties)

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(property)
}

type propertyUpdateInput struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Price             float64  `json:"price" validate:"omitempty,gt=0"`
	Location          string   `json:"location"`
	Rooms             int      `json:"rooms" validate:"omitempty,gte=1"`
	Bathrooms         int      `json:"bathrooms" validate:"omitempty,gte=0"`
	SquareMeters      *float64 `json:"squareMeters"`
	Amenities         []string `json:"amenities"`
	MinimumStayMonths int      `json:"minimumStayMonths" validate:"omitempty,gte=0"`
}

func UpdateProperty(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Invalid property ID"})
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(http.StatusNotFound)
			ctx.JSON(iris.Map{"error": "Property not found"})
		} else {
			ctx.StatusCode(http.StatusInternalServerError)
			ctx.JSON(iris.Map{"error": "Failed to retrieve property"})
		}
		return
	}

	if property.SellerID != currentUserID(ctx) {
		ctx.StatusCode(http.StatusForbidden)
		ctx.JSON(iris.Map{"error": "You don't have permission to update this property"})
		return
	}

	var input propertyUpdateInput
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

	if input.Title != "" {
		property.Title = input.Title
	}
	if input.Description != "" {
		property.Description = input.Description
	}
	if input.Price != 0 {
		property.Price = input.Price
	}
	if input.Location != "" {
		property.Location = input.Location
	}
	if input.Rooms != 0 {
		property.Rooms = input.Rooms
	}
	if input.Bathrooms != 0 {
		property.Bathrooms = input.Bathrooms
	}
	if input.SquareMeters != nil {
		property.SquareMeters = input.SquareMeters
	}
	if input.Amenities != nil {
		amenities, err := json.Marshal(input.Amenities)
		if err == nil {
			property.Amenities = amenities
		}
	}
	if input.MinimumStayMonths != 0 {
		property.MinimumStayMonths = input.MinimumStayMonths
	}

	if err := storage.DB.Save(&property).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to update property"})
		return
	}

	realtime.PublishChange(ctx.Request().Context(), realtime.TableProperties)

	ctx.JSON(property)
}

// UnlistProperty takes a listing off the market; it stays relistable.
func UnlistProperty(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Invalid property ID"})
		return
	}

	if err := lifecycle.UnlistProperty(storage.DB, id, currentUserID(ctx)); err != nil {
		respondLifecycleError(ctx, err)
		return
	}

	realtime.PublishChange(ctx.Request().Context(), realtime.TableProperties)
	realtime.PublishChange(ctx.Request().Context(), realtime.TableRequests)

	ctx.JSON(iris.Map{"status": models.PropertyRemoved})
}

func RelistProperty(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Invalid property ID"})
		return
	}

	if err := lifecycle.RelistProperty(storage.DB, id, currentUserID(ctx)); err != nil {
		respondLifecycleError(ctx, err)
		return
	}

	realtime.PublishChange(ctx.Request().Context(), realtime.TableProperties)

	ctx.JSON(iris.Map{"status": models.PropertyAvailable})
}

// RemoveProperty is the destructive path: the property and all of its
// dependent rows are deleted for good.
func RemoveProperty(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Invalid property ID"})
		return
	}

	if err := lifecycle.RemoveProperty(storage.DB, id, currentUserID(ctx)); err != nil {
		respondLifecycleError(ctx, err)
		return
	}

	realtime.PublishChange(ctx.Request().Context(), realtime.TableProperties)
	realtime.PublishChange(ctx.Request().Context(), realtime.TableRequests)
	realtime.PublishChange(ctx.Request().Context(), realtime.TableLikes)

	ctx.StatusCode(http.StatusNoContent)
}

// GetSellerProperties returns the landlord's active listings.
func GetSellerProperties(ctx iris.Context) {
	sellerID := currentUserID(ctx)

	var properties []models.Property
	if err := storage.DB.
		Where("seller_id = ? AND status IN ?", sellerID,
			[]models.PropertyStatus{models.PropertyAvailable, models.PropertyRequested}).
		Preload("Images").
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to retrieve properties"})
		return
	}

	ctx.JSON(properties)
}

// GetSellerHistory returns rented and removed listings; removed ones can be
// relisted from here.
func GetSellerHistory(ctx iris.Context) {
	sellerID := currentUserID(ctx)

	var properties []models.Property
	if err := storage.DB.
		Where("seller_id = ? AND status IN ?", sellerID,
			[]models.PropertyStatus{models.PropertyRented, models.PropertyRemoved}).
		Preload("Images").
		Order("updated_at DESC").
		Find(&properties).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to retrieve history"})
		return
	}

	ctx.JSON(properties)
}

// respondLifecycleError maps the coordinator's sentinel errors onto HTTP
// statuses. Anything unrecognized is a 500.
func respondLifecycleError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrPropertyNotFound),
		errors.Is(err, lifecycle.ErrRequestNotFound),
		errors.Is(err, lifecycle.ErrProfileNotFound):
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrNotOwner):
		ctx.StatusCode(http.StatusForbidden)
		ctx.JSON(iris.Map{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrPropertyUnavailable),
		errors.Is(err, lifecycle.ErrPendingRequestExists),
		errors.Is(err, lifecycle.ErrRequestNotPending),
		errors.Is(err, lifecycle.ErrNotRemoved),
		errors.Is(err, lifecycle.ErrPropertyRented):
		ctx.StatusCode(http.StatusConflict)
		ctx.JSON(iris.Map{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrIncompleteProfile),
		errors.Is(err, lifecycle.ErrOwnProperty):
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": err.Error()})
	default:
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "an unexpected error occurred"})
	}
}
