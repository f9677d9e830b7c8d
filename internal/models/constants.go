package models

// ResourceStatus константы статусов ресурсов
const (
	ResourceStatusAvailable = "available"
	ResourceStatusReserved  = "reserved"
	ResourceStatusClaimed   = "claimed"
)

// NotificationType константы типов уведомлений.
// Закрытый набор: произвольный текст допустим только через NotificationTypeCustom.
const (
	NotificationTypeResourceReserved     = "resource_reserved"
	NotificationTypeResourceClaimed      = "resource_claimed"
	NotificationTypeReservationExpired   = "reservation_expired"
	NotificationTypeNewReview            = "new_review"
	NotificationTypeResourceExpiringSoon = "resource_expiring_soon"
	NotificationTypeCustom               = "custom"
)

// ValidResourceStatuses список валидных статусов ресурсов
var ValidResourceStatuses = map[string]struct{}{
	ResourceStatusAvailable: {},
	ResourceStatusReserved:  {},
	ResourceStatusClaimed:   {},
}

// ValidNotificationTypes список валидных типов уведомлений
var ValidNotificationTypes = map[string]struct{}{
	NotificationTypeResourceReserved:     {},
	NotificationTypeResourceClaimed:      {},
	NotificationTypeReservationExpired:   {},
	NotificationTypeNewReview:            {},
	NotificationTypeResourceExpiringSoon: {},
	NotificationTypeCustom:               {},
}
