// routes/profile.go
package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dexter-Mtetwa/find-my-property/models"
	"github.com/Dexter-Mtetwa/find-my-property/storage"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

func GetProfile(ctx iris.Context) {
	userID := currentUserID(ctx)

	var profile models.Profile
	if err := storage.DB.First(&profile, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(http.StatusNotFound)
			ctx.JSON(iris.Map{"error": "Profile not found"})
		} else {
			ctx.StatusCode(http.StatusInternalServerError)
			ctx.JSON(iris.Map{"error": "Failed to retrieve profile"})
		}
		return
	}

	ctx.JSON(profile)
}

type profileUpdateInput struct {
	FullName            string        `json:"fullName"`
	Phone               string        `json:"phone"`
	Age                 int           `json:"age" validate:"omitempty,gte=16,lte=120"`
	Gender              models.Gender `json:"gender" validate:"omitempty,oneof=male female other prefer_not_to_say"`
	Location            string        `json:"location"`
	AvatarURL           string        `json:"avatarUrl"`
	IsSeller            *bool         `json:"isSeller"`
	AllowsNotifications *bool         `json:"allowsNotifications"`
}

func UpdateProfile(ctx iris.Context) {
	userID := currentUserID(ctx)

	var profile models.Profile
	if err := storage.DB.First(&profile, userID).Error; err != nil {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"error": "Profile not found"})
		return
	}

	var input profileUpdateInput
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

	if input.FullName != "" {
		profile.FullName = input.FullName
	}
	if input.Phone != "" {
		profile.Phone = input.Phone
	}
	if input.Age != 0 {
		profile.Age = input.Age
	}
	if input.Gender != "" {
		profile.Gender = input.Gender
	}
	if input.Location != "" {
		profile.Location = input.Location
	}
	if input.AvatarURL != "" {
		profile.AvatarURL = input.AvatarURL
	}
	if input.IsSeller != nil {
		profile.IsSeller = *input.IsSeller
	}
	if input.AllowsNotifications != nil {
		profile.AllowsNotifications = input.AllowsNotifications
	}

	if err := storage.DB.Save(&profile).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to update profile"})
		return
	}

	ctx.JSON(profile)
}

type pushTokenInput struct {
	Token string `json:"token" validate:"required"`
}

// RegisterPushToken adds a device's Expo push token to the profile. Tokens
// are deduplicated; registering the same device twice is harmless.
func RegisterPushToken(ctx iris.Context) {
	userID := currentUserID(ctx)

	var profile models.Profile
	if err := storage.DB.First(&profile, userID).Error; err != nil {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"error": "Profile not found"})
		return
	}

	var input pushTokenInput
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

	var tokens []string
	if len(profile.PushTokens) > 0 {
		if err := json.Unmarshal(profile.PushTokens, &tokens); err != nil {
			tokens = nil
		}
	}
	for _, token := range tokens {
		if token == input.Token {
			ctx.JSON(iris.Map{"registered": true})
			return
		}
	}
	tokens = append(tokens, input.Token)

	raw, err := json.Marshal(tokens)
	if err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to register push token"})
		return
	}
	profile.PushTokens = raw

	if err := storage.DB.Save(&profile).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to register push token"})
		return
	}

	ctx.JSON(iris.Map{"registered": true})
}
