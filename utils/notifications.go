package utils

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/Dexter-Mtetwa/find-my-property/models"
	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
)

// SendNotification pushes a single message to one Expo push token.
func SendNotification(token, title, body string, data map[string]string) error {
	pushToken, err := expo.NewExponentPushToken(token)
	if err != nil {
		return err
	}

	client := expo.NewPushClient(nil)
	response, err := client.Publish(&expo.PushMessage{
		To:       []expo.ExponentPushToken{pushToken},
		Title:    title,
		Body:     body,
		Data:     data,
		Sound:    "default",
		Priority: expo.DefaultPriority,
	})
	if err != nil {
		return err
	}
	return response.ValidateResponse()
}

// NotifyProfile pushes to every registered device of a profile, honoring the
// notification opt-out. Token-level failures are logged and skipped so one
// stale token doesn't block the rest.
func NotifyProfile(profile *models.Profile, title, body string, data map[string]string) error {
	if profile.AllowsNotifications != nil && !*profile.AllowsNotifications {
		return nil
	}
	if len(profile.PushTokens) == 0 {
		return nil
	}

	var tokens []string
	if err := json.Unmarshal(profile.PushTokens, &tokens); err != nil {
		return fmt.Errorf("invalid push tokens for profile %d: %w", profile.ID, err)
	}

	for _, token := range tokens {
		if err := SendNotification(token, title, body, data); err != nil {
			log.Printf("[error] push to profile %d failed: %v", profile.ID, err)
		}
	}
	return nil
}
