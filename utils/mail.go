package utils

import (
	"fmt"
	"os"

	mailjet "github.com/mailjet/mailjet-apiv3-go"
)

// SendRequestAcceptedEmail mails the buyer when a seller accepts their
// request. Nop when the Mailjet keys are not configured.
func SendRequestAcceptedEmail(toEmail, toName, propertyTitle string) error {
	publicKey := os.Getenv("MJ_APIKEY_PUBLIC")
	privateKey := os.Getenv("MJ_APIKEY_PRIVATE")
	if publicKey == "" || privateKey == "" {
		return nil
	}
	if toEmail == "" {
		return nil
	}

	client := mailjet.NewMailjetClient(publicKey, privateKey)
	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: os.Getenv("MAIL_FROM_ADDRESS"),
					Name:  "FindMyProperty",
				},
				To: &mailjet.RecipientsV31{
					mailjet.RecipientV31{Email: toEmail, Name: toName},
				},
				Subject: "Your property request was accepted",
				TextPart: fmt.Sprintf(
					"Good news %s! Your request for %q was accepted. The owner's contact details are available in the app.",
					toName, propertyTitle),
			},
		},
	}

	_, err := client.SendMailV31(&messages)
	return err
}
