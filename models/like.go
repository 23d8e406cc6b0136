package models

import "time"

// Like is a hard-deleted row on purpose: the (user, property) unique index
// must free up as soon as the user unlikes.
type Like struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	UserID     uint      `json:"userId" gorm:"uniqueIndex:idx_like_user_property"`
	PropertyID uint      `json:"propertyId" gorm:"uniqueIndex:idx_like_user_property"`
	CreatedAt  time.Time `json:"createdAt"`
}
