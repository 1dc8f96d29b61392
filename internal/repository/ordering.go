package repository

import (
	"strings"

	"gorm.io/gorm"
)

// menuItemOrderColumns 菜品列表允许的排序键
var menuItemOrderColumns = map[string]string{
	"id":       "id",
	"title":    "title",
	"price":    "price",
	"featured": "featured",
	"category": "category_id",
}

// orderOrderColumns 订单列表允许的排序键
var orderOrderColumns = map[string]string{
	"id":            "id",
	"date":          "date",
	"status":        "status",
	"total":         "total",
	"user":          "user_id",
	"delivery_crew": "delivery_crew_id",
}

// parseOrdering 解析逗号分隔的排序键。- 前缀表示降序，
// 不在白名单内的键被忽略；没有任何有效键时返回空串。
func parseOrdering(raw string, allowed map[string]string) string {
	clauses := make([]string, 0, 4)
	for _, key := range strings.Split(raw, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		direction := "ASC"
		if strings.HasPrefix(key, "-") {
			direction = "DESC"
			key = strings.TrimSpace(strings.TrimPrefix(key, "-"))
		}
		column, ok := allowed[key]
		if !ok {
			continue
		}
		clauses = append(clauses, column+" "+direction)
	}
	return strings.Join(clauses, ", ")
}

// applyOrdering 应用排序，无有效排序键时退回默认排序。
func applyOrdering(query *gorm.DB, raw string, allowed map[string]string, fallback string) *gorm.DB {
	if clause := parseOrdering(raw, allowed); clause != "" {
		return query.Order(clause)
	}
	if fallback != "" {
		return query.Order(fallback)
	}
	return query
}
