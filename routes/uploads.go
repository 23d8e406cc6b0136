package routes

import (
	"net/http"

	"github.com/Dexter-Mtetwa/find-my-property/utils"
	"github.com/kataras/iris/v12"
)

// UploadImage accepts a multipart file and stores it on Cloudinary. The
// returned URL/path pair is what property and avatar rows reference.
func UploadImage(ctx iris.Context) {
	file, _, err := ctx.FormFile("file")
	if err != nil {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Missing file"})
		return
	}
	defer file.Close()

	folder := ctx.URLParamDefault("folder", "properties")
	if folder != "properties" && folder != "avatars" {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Invalid folder"})
		return
	}

	uploaded, err := utils.UploadImage(ctx.Request().Context(), file, folder)
	if err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to upload image"})
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(uploaded)
}
