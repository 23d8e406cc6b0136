package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

type Profile struct {
	gorm.Model
	FullName            string         `json:"fullName"`
	Email               string         `json:"email" gorm:"uniqueIndex"`
	Password            string         `json:"-"`
	Phone               string         `json:"phone"`
	Age                 int            `json:"age"`
	Gender              Gender         `json:"gender"`
	Location            string         `json:"location"`
	AvatarURL           string         `json:"avatarUrl"`
	IsSeller            bool           `json:"isSeller"`
	SellerVerified      bool           `json:"sellerVerified"`
	Properties          []Property     `json:"properties,omitempty" gorm:"foreignKey:SellerID"`
	PushTokens          datatypes.JSON `json:"pushTokens"`
	AllowsNotifications *bool          `json:"allowsNotifications"`
}

// CanRequest reports whether the profile is complete enough to submit a
// property request. Contact details are revealed to the seller on request,
// so phone and age are mandatory before the first one.
func (p *Profile) CanRequest() bool {
	return p.Phone != "" && p.Age > 0
}
