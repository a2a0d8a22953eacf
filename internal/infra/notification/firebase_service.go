package notification

import (
	"context"
	"strings"

	"dashcam/config"
	"dashcam/internal/domain/service"
	"dashcam/internal/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a new Firebase notification service instance.
// An empty credentials path falls back to application default credentials.
func NewFirebaseService(ctx context.Context, cfg *config.FirebaseConfig) (service.NotificationService, error) {
	if cfg == nil {
		return nil, errors.New("firebase is not configured")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	var appConfig *firebase.Config
	if cfg.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{
		client: client,
	}, nil
}

// SendSingleNotification sends a push notification to a single device token
func (s *firebaseService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) (string, error) {
	message, err := buildMessage(token, title, body, data)
	if err != nil {
		return "", err
	}

	messageID, err := s.client.Send(ctx, message)
	if err != nil {
		if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) {
			return "", errors.Wrap(err, "device token rejected")
		}

		return "", errors.Wrap(err, "failed to send notification")
	}

	return messageID, nil
}

// buildMessage assembles a data message; the notification block is only set when there is text to show
func buildMessage(token, title, body string, data map[string]string) (*messaging.Message, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("device token is required")
	}

	message := &messaging.Message{
		Token: token,
		Data:  data,
	}
	if title != "" || body != "" {
		message.Notification = &messaging.Notification{
			Title: title,
			Body:  body,
		}
	}

	return message, nil
}
