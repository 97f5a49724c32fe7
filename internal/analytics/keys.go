// Package analytics names the Redis keys agg-svc writes and analytics-svc
// reads.
package analytics

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// KeyTTL bounds every dated key so a year-over-year comparison still
	// finds last year's data.
	KeyTTL = 400 * 24 * time.Hour

	// Revenue hash fields.
	FieldTotal  = "total"
	FieldTips   = "tips"
	FieldOrders = "orders"
	methodField = "method:"
)

func day(t time.Time) string {
	return t.Format(DateLayout)
}

// DailyProductsKey is a sorted set of product ids scored by quantity sold.
func DailyProductsKey(t time.Time, restaurantID int) string {
	return fmt.Sprintf("analytics:daily:%s:%d", day(t), restaurantID)
}

func AllTimeProductsKey(restaurantID int) string {
	return fmt.Sprintf("analytics:alltime:%d", restaurantID)
}

// ProductNamesKey maps product id to the name it was last sold under.
func ProductNamesKey(restaurantID int) string {
	return fmt.Sprintf("analytics:products:%d", restaurantID)
}

// HoursKey is a hash of hour of day ("0".."23") to orders taken.
func HoursKey(t time.Time, restaurantID int) string {
	return fmt.Sprintf("analytics:hours:%s:%d", day(t), restaurantID)
}

func RevenueKey(t time.Time, restaurantID int) string {
	return fmt.Sprintf("analytics:revenue:%s:%d", day(t), restaurantID)
}

// ProcessedKey marks an event as already counted.
func ProcessedKey(eventType string, orderID int) string {
	return fmt.Sprintf("analytics:processed:%s:%d", eventType, orderID)
}

func MethodField(method string) string {
	return methodField + method
}

// MethodFromField reports the payment method encoded in a revenue hash field.
func MethodFromField(field string) (string, bool) {
	if len(field) <= len(methodField) || field[:len(methodField)] != methodField {
		return "", false
	}
	return field[len(methodField):], true
}
