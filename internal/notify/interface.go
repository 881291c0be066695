package notify

import "github.com/baselomar044-dev/qs-empire/internal/models"

// NotificationInterface defines the contract for notification services
type NotificationInterface interface {
	SendDigest(digest *models.Digest, recipient string) error
	SendEmail(to, subject, html string) (string, error)
}
