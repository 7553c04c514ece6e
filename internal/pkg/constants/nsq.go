package constants

// NSQ topics
const (
	TopicNotificationEmail = "payments.notification.email"
)
