package utils

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

var fcmClient *messaging.Client

// InitFCM connects to Firebase Cloud Messaging. Push notifications are
// best-effort: when FIREBASE_CREDENTIALS is not configured the app runs
// without them and SendNotification becomes a no-op.
func InitFCM() {
	credentialsPath := os.Getenv("FIREBASE_CREDENTIALS")
	if credentialsPath == "" {
		log.Println("Warning: FIREBASE_CREDENTIALS not set, push notifications disabled")
		return
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		log.Printf("Error initializing firebase app: %v", err)
		return
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Printf("Error getting messaging client: %v", err)
		return
	}

	fcmClient = client
	log.Println("Firebase Cloud Messaging ready")
}

// SendNotification pushes a message to one device token. Callers fire this in
// a goroutine; failures are logged and never block a request.
func SendNotification(token string, title string, body string, data map[string]string) error {
	if fcmClient == nil || token == "" {
		return nil
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data, // extra payload, e.g. request_id
	}

	_, err := fcmClient.Send(context.Background(), message)
	if err != nil {
		log.Printf("Error sending notification: %s", err)
		return err
	}
	return nil
}
