package utils

import (
	"net/http"

	"github.com/kataras/iris/v12"
)

func CreateError(ctx iris.Context, status int, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"error": message})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(ctx, http.StatusInternalServerError, "an unexpected error occurred")
}
