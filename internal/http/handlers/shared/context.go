package shared

import "github.com/gin-gonic/gin"

// GetContextUintWithKeys 依次尝试多个键读取上下文中的 uint 值
func GetContextUintWithKeys(c *gin.Context, keys ...string) (uint, bool) {
	for _, key := range keys {
		value, exists := c.Get(key)
		if !exists {
			continue
		}
		switch v := value.(type) {
		case uint:
			return v, true
		case uint64:
			return uint(v), true
		case int:
			if v >= 0 {
				return uint(v), true
			}
		case int64:
			if v >= 0 {
				return uint(v), true
			}
		case float64:
			if v >= 0 {
				return uint(v), true
			}
		}
	}
	return 0, false
}

// GetContextString 读取上下文中的字符串值
func GetContextString(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

// GetContextStrings 读取上下文中的字符串切片
func GetContextStrings(c *gin.Context, key string) []string {
	value, exists := c.Get(key)
	if !exists {
		return nil
	}
	items, ok := value.([]string)
	if !ok {
		return nil
	}
	return items
}
