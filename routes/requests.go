// routes/requests.go
package routes

import (
	"log"
	"net/http"

	"github.com/Dexter-Mtetwa/find-my-property/lifecycle"
	"github.com/Dexter-Mtetwa/find-my-property/models"
	"github.com/Dexter-Mtetwa/find-my-property/realtime"
	"github.com/Dexter-Mtetwa/find-my-property/storage"
	"github.com/Dexter-Mtetwa/find-my-property/utils"
	"github.com/kataras/iris/v12"
)

type requestInput struct {
	PropertyID uint   `json:"propertyId" validate:"required"`
	Message    string `json:"message"`
}

// SubmitRequest is the only way to create a request: the pending row and the
// property's available->requested flip commit as one transaction.
func SubmitRequest(ctx iris.Context) {
	var input requestInput
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

	buyerID := currentUserID(ctx)
	request, err := lifecycle.SubmitRequest(storage.DB, buyerID, input.PropertyID, input.Message)
	if err != nil {
		respondLifecycleError(ctx, err)
		return
	}

	realtime.PublishChange(ctx.Request().Context(), realtime.TableProperties)
	realtime.PublishChange(ctx.Request().Context(), realtime.TableRequests, request.BuyerID, request.SellerID)

	notifySeller(request)

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(request)
}

// GetBuyerRequests lists the caller's own requests, newest first.
func GetBuyerRequests(ctx iris.Context) {
	buyerID := currentUserID(ctx)

	var requests []models.Request
	if err := storage.DB.
		Where("buyer_id = ?", buyerID).
		Preload("Property").Preload("Property.Images").Preload("Seller").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to retrieve requests"})
		return
	}

	ctx.JSON(requests)
}

// GetSellerRequests lists requests against the caller's listings.
func GetSellerRequests(ctx iris.Context) {
	sellerID := currentUserID(ctx)

	var requests []models.Request
	if err := storage.DB.
		Where("seller_id = ?", sellerID).
		Preload("Property").Preload("Property.Images").Preload("Buyer").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "Failed to retrieve requests"})
		return
	}

	ctx.JSON(requests)
}

func AcceptRequest(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Invalid request ID"})
		return
	}

	request, err := lifecycle.AcceptRequest(storage.DB, id, currentUserID(ctx))
	if err != nil {
		respondLifecycleError(ctx, err)
		return
	}

	realtime.PublishChange(ctx.Request().Context(), realtime.TableProperties)
	realtime.PublishChange(ctx.Request().Context(), realtime.TableRequests, request.BuyerID, request.SellerID)

	notifyBuyerResolved(request)

	ctx.JSON(request)
}

func DeclineRequest(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Invalid request ID"})
		return
	}

	request, err := lifecycle.DeclineRequest(storage.DB, id, currentUserID(ctx))
	if err != nil {
		respondLifecycleError(ctx, err)
		return
	}

	realtime.PublishChange(ctx.Request().Context(), realtime.TableProperties)
	realtime.PublishChange(ctx.Request().Context(), realtime.TableRequests, request.BuyerID, request.SellerID)

	notifyBuyerResolved(request)

	ctx.JSON(request)
}

func CancelRequest(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		ctx.StatusCode(http.StatusBadRequest)
		ctx.JSON(iris.Map{"error": "Invalid request ID"})
		return
	}

	request, err := lifecycle.CancelRequest(storage.DB, id, currentUserID(ctx))
	if err != nil {
		respondLifecycleError(ctx, err)
		return
	}

	realtime.PublishChange(ctx.Request().Context(), realtime.TableProperties)
	realtime.PublishChange(ctx.Request().Context(), realtime.TableRequests, request.BuyerID, request.SellerID)

	ctx.JSON(request)
}

// notifySeller pushes the "new request" notification. Best effort only;
// the request itself already committed.
func notifySeller(request *models.Request) {
	var seller models.Profile
	if err := storage.DB.First(&seller, request.SellerID).Error; err != nil {
		log.Printf("[error] failed to load seller %d for push: %v", request.SellerID, err)
		return
	}

	data := map[string]string{"url": "findmyproperty://requests/" + itoa(request.ID)}
	if err := utils.NotifyProfile(&seller, "New property request",
		"Someone requested one of your properties", data); err != nil {
		log.Printf("[error] failed to notify seller %d: %v", seller.ID, err)
	}
}

func notifyBuyerResolved(request *models.Request) {
	var buyer models.Profile
	if err := storage.DB.First(&buyer, request.BuyerID).Error; err != nil {
		log.Printf("[error] failed to load buyer %d for push: %v", request.BuyerID, err)
		return
	}

	title := "Request declined"
	body := "Your property request was declined"
	if request.Status == models.RequestAccepted {
		title = "Request accepted"
		body = "Your property request was accepted! The owner's contact details are now visible."
	}

	data := map[string]string{"url": "findmyproperty://requests/" + itoa(request.ID)}
	if err := utils.NotifyProfile(&buyer, title, body, data); err != nil {
		log.Printf("[error] failed to notify buyer %d: %v", buyer.ID, err)
	}

	if request.Status == models.RequestAccepted {
		var property models.Property
		if err := storage.DB.First(&property, request.PropertyID).Error; err == nil {
			if err := utils.SendRequestAcceptedEmail(buyer.Email, buyer.FullName, property.Title); err != nil {
				log.Printf("[error] failed to email buyer %d: %v", buyer.ID, err)
			}
		}
	}
}
