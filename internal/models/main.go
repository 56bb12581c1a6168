package models

// ModelRegistry lists every model covered by --auto-migrate. Production
// schemas are provisioned by the SQL migrations instead.
var ModelRegistry = []interface{}{
	&WaitlistEntry{},
	&NotificationSubscriber{},
	&SentNotification{},
}
