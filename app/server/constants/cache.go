package constants

const (
	CacheKeyUserInfo = "users:info:%s" // %s -> user id
)
