package domain

// NotificationKind selects the toast styling
type NotificationKind int

const (
	NotifyInfo NotificationKind = iota
	NotifySuccess
	NotifyError
)

// NotificationStage is the animation stage of a notification
type NotificationStage int

const (
	StageEntering NotificationStage = iota
	StageShown
	StageLeaving
)

// Notification is a transient user-visible message
type Notification struct {
	ID      uint64
	Kind    NotificationKind
	Message string
	Stage   NotificationStage
}
