package rdx

import (
	"time"

	"milonga/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init creates the shared client. Call once from main after configuration is
// loaded.
func Init(addr string) {
	Conn = redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(globals.Ctx, hash, field).Result()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}
