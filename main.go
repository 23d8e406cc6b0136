package main

import (
	"log"
	"os"

	"github.com/Dexter-Mtetwa/find-my-property/realtime"
	"github.com/Dexter-Mtetwa/find-my-property/routes"
	"github.com/Dexter-Mtetwa/find-my-property/storage"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	storage.InitializeDB()
	realtime.Connect()

	app := iris.New()

	api := app.Party("/api")

	// Open routes
	api.Post("/auth/signup", routes.Signup)
	api.Post("/auth/login", routes.Login)
	api.Get("/properties", routes.GetAvailableProperties)
	api.Get("/properties/{id:uint}", routes.GetProperty)

	// Routes behind the bearer token
	protected := api.Party("/")
	protected.Use(routes.RequireAuth)

	protected.Post("/properties", routes.CreateProperty)
	protected.Put("/properties/{id:uint}", routes.UpdateProperty)
	protected.Post("/properties/{id:uint}/view", routes.RecordPropertyView)
	protected.Post("/properties/{id:uint}/unlist", routes.UnlistProperty)
	protected.Post("/properties/{id:uint}/relist", routes.RelistProperty)
	protected.Delete("/properties/{id:uint}", routes.RemoveProperty)
	protected.Get("/my/properties", routes.GetSellerProperties)
	protected.Get("/my/history", routes.GetSellerHistory)

	protected.Post("/requests", routes.SubmitRequest)
	protected.Get("/requests", routes.GetBuyerRequests)
	protected.Get("/my/requests", routes.GetSellerRequests)
	protected.Post("/requests/{id:uint}/accept", routes.AcceptRequest)
	protected.Post("/requests/{id:uint}/decline", routes.DeclineRequest)
	protected.Post("/requests/{id:uint}/cancel", routes.CancelRequest)

	protected.Get("/likes", routes.GetLikes)
	protected.Post("/likes/toggle", routes.ToggleLike)
	protected.Get("/likes/properties", routes.GetLikedProperties)

	protected.Get("/profile", routes.GetProfile)
	protected.Put("/profile", routes.UpdateProfile)
	protected.Post("/profile/push-token", routes.RegisterPushToken)

	protected.Post("/uploads", routes.UploadImage)
	protected.Post("/notifications/test", routes.TestPushNotification)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("find-my-property server running on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
