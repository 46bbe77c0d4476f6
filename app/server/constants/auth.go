package constants

const (
	ContextKeyClaims = "claims" // echo context 中保存已验证 JWT 声明的键
)
