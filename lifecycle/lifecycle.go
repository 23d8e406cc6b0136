// Package lifecycle owns every property and request state transition. Each
// operation is a single database transaction so a concurrent reader never
// observes a half-applied transition, and the available->requested flip is a
// guarded update so two buyers can never double-book the same property.
package lifecycle

import (
	"errors"
	"time"

	"github.com/Dexter-Mtetwa/find-my-property/models"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrPropertyNotFound     = errors.New("property not found")
	ErrRequestNotFound      = errors.New("request not found")
	ErrPropertyUnavailable  = errors.New("property is not available for requests")
	ErrPendingRequestExists = errors.New("buyer already has a pending request")
	ErrIncompleteProfile    = errors.New("profile is missing phone or age")
	ErrOwnProperty          = errors.New("cannot request your own property")
	ErrRequestNotPending    = errors.New("request is not pending")
	ErrNotRemoved           = errors.New("property is not removed")
	ErrPropertyRented       = errors.New("property is rented")
	ErrNotOwner             = errors.New("not the owner")
)

// SubmitRequest creates a pending request and flips the property from
// available to requested as one unit. The status flip is a compare-and-swap:
// when two buyers race, exactly one update matches the available row and the
// loser gets ErrPropertyUnavailable.
//
// The profile gate runs before the transaction so an incomplete profile costs
// no writes at all.
func SubmitRequest(db *gorm.DB, buyerID, propertyID uint, message string) (*models.Request, error) {
	var buyer models.Profile
	if err := db.First(&buyer, buyerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if !buyer.CanRequest() {
		return nil, ErrIncompleteProfile
	}

	var request *models.Request
	err := db.Transaction(func(tx *gorm.DB) error {
		var pending int64
		if err := tx.Model(&models.Request{}).
			Where("buyer_id = ? AND status = ?", buyerID, models.RequestPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrPendingRequestExists
		}

		var property models.Property
		if err := tx.First(&property, propertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}
		if property.SellerID == buyerID {
			return ErrOwnProperty
		}

		res := tx.Model(&models.Property{}).
			Where("id = ? AND status = ?", propertyID, models.PropertyAvailable).
			Update("status", models.PropertyRequested)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPropertyUnavailable
		}

		request = &models.Request{
			BuyerID:    buyerID,
			PropertyID: propertyID,
			SellerID:   property.SellerID,
			Status:     models.RequestPending,
			Message:    message,
			BuyerPhone: buyer.Phone,
			BuyerEmail: buyer.Email,
		}
		if err := tx.Create(request).Error; err != nil {
			// The partial unique index on pending requests fires when a
			// concurrent submission by the same buyer slipped past the
			// count above.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrPendingRequestExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// AcceptRequest resolves a pending request and marks the property rented.
func AcceptRequest(db *gorm.DB, requestID, sellerID uint) (*models.Request, error) {
	return resolveRequest(db, requestID, sellerID, models.RequestAccepted, models.PropertyRented)
}

// DeclineRequest resolves a pending request and returns the property to the
// available pool.
func DeclineRequest(db *gorm.DB, requestID, sellerID uint) (*models.Request, error) {
	return resolveRequest(db, requestID, sellerID, models.RequestDeclined, models.PropertyAvailable)
}

func resolveRequest(db *gorm.DB, requestID, sellerID uint, to models.RequestStatus, propertyStatus models.PropertyStatus) (*models.Request, error) {
	var request models.Request
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.SellerID != sellerID {
			return ErrNotOwner
		}

		now := time.Now()
		res := tx.Model(&models.Request{}).
			Where("id = ? AND status = ?", requestID, models.RequestPending).
			Updates(map[string]interface{}{"status": to, "resolved_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotPending
		}

		if err := tx.Model(&models.Property{}).
			Where("id = ?", request.PropertyID).
			Update("status", propertyStatus).Error; err != nil {
			return err
		}

		request.Status = to
		request.ResolvedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CancelRequest is the buyer-side withdrawal of a pending request. The
// property returns to available in the same transaction.
func CancelRequest(db *gorm.DB, requestID, buyerID uint) (*models.Request, error) {
	var request models.Request
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.BuyerID != buyerID {
			return ErrNotOwner
		}

		res := tx.Model(&models.Request{}).
			Where("id = ? AND status = ?", requestID, models.RequestPending).
			Update("status", models.RequestCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotPending
		}

		if err := tx.Model(&models.Property{}).
			Where("id = ?", request.PropertyID).
			Update("status", models.PropertyAvailable).Error; err != nil {
			return err
		}

		request.Status = models.RequestCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// RelistProperty brings a removed property back to the available pool.
// Relisting an already-available property is a no-op; any other status is a
// rejection.
func RelistProperty(db *gorm.DB, propertyID, sellerID uint) error {
	var property models.Property
	if err := db.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return err
	}
	if property.SellerID != sellerID {
		return ErrNotOwner
	}

	res := db.Model(&models.Property{}).
		Where("id = ? AND status = ?", propertyID, models.PropertyRemoved).
		Update("status", models.PropertyAvailable)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if property.Status == models.PropertyAvailable {
			return nil
		}
		return ErrNotRemoved
	}
	return nil
}

// UnlistProperty takes a non-rented property off the market. A dangling
// pending request is cancelled in the same transaction so the buyer's single
// pending slot frees up.
func UnlistProperty(db *gorm.DB, propertyID, sellerID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, propertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}
		if property.SellerID != sellerID {
			return ErrNotOwner
		}
		if property.Status == models.PropertyRented {
			return ErrPropertyRented
		}
		if property.Status == models.PropertyRemoved {
			return nil
		}

		now := time.Now()
		if err := tx.Model(&models.Request{}).
			Where("property_id = ? AND status = ?", propertyID, models.RequestPending).
			Updates(map[string]interface{}{"status": models.RequestCancelled, "resolved_at": now}).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Property{}).
			Where("id = ? AND status <> ?", propertyID, models.PropertyRented).
			Update("status", models.PropertyRemoved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPropertyRented
		}
		return nil
	})
}

// RemoveProperty permanently deletes a property and every dependent row:
// images, likes, requests and view records first, then the property itself.
// Irreversible; there is no relisting after this.
func RemoveProperty(db *gorm.DB, propertyID, sellerID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, propertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}
		if property.SellerID != sellerID {
			return ErrNotOwner
		}

		if err := tx.Unscoped().Where("property_id = ?", propertyID).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", propertyID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("property_id = ?", propertyID).Delete(&models.Request{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", propertyID).Delete(&models.PropertyView{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Property{}, propertyID).Error
	})
}
