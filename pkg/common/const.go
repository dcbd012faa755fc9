package common

// Cache keys.
const (
	KEY_PROGRESS = "progress:%s"
)
