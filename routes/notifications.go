package routes

import (
	"net/http"

	"github.com/Dexter-Mtetwa/find-my-property/models"
	"github.com/Dexter-Mtetwa/find-my-property/storage"
	"github.com/Dexter-Mtetwa/find-my-property/utils"
	"github.com/kataras/iris/v12"
)

// TestPushNotification pings the caller's own registered devices so a user
// can verify their push setup from the settings screen.
func TestPushNotification(ctx iris.Context) {
	userID := currentUserID(ctx)

	var profile models.Profile
	if err := storage.DB.First(&profile, userID).Error; err != nil {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"error": "Profile not found"})
		return
	}

	data := map[string]string{
		"url": "findmyproperty://settings",
	}

	if err := utils.NotifyProfile(&profile, "Push Title",
		"Push notifications are working", data); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"sent": true,
	})
}
