package config

import (
	"strings"
	"time"
)

type Config struct {
	System   SystemConfig
	Security SecurityConfig
	Cache    CacheConfig
}

type SystemConfig struct {
	Mode               string   `env:"MODE"`                      // 运行模式，以 p 开头视为生产环境
	Port               int      `env:"PORT" envDefault:"3000"`    // 监听端口
	DBConnectionString string   `env:"DB_CONN,required,notEmpty"` // 数据库连接字符串， postgres DSN 或 sqlite:<path>
	CORSOrigins        []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5500,http://127.0.0.1:5500"`
}

type SecurityConfig struct {
	SignatureSecretKey string        `env:"JWT_SECRET,required,notEmpty"`      // 签名密钥，用于签发 JWT ，更新会导致旧有会话失效
	TokenExpires       time.Duration `env:"JWT_EXPIRES" envDefault:"1h"`       // JWT 有效期
	PasswordHash       string        `env:"PASSWORD_HASH" envDefault:"bcrypt"` // 密码哈希算法： bcrypt 或 argon2id
	BcryptCost         int           `env:"BCRYPT_COST" envDefault:"10"`
}

type CacheConfig struct {
	RedisConnectionString string        `env:"REDIS_CONN"` // Redis 连接字符串，留空则不启用缓存
	TTL                   time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

func (s *SystemConfig) IsProd() bool {
	return strings.HasPrefix(strings.ToLower(s.Mode), "p")
}
