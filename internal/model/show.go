// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// Show categories. The database enforces the same set with a CHECK constraint,
// but validation rejects bad values long before a query runs.
const (
	CategoryMovie = "movie"
	CategoryAnime = "anime"
	CategorySerie = "serie"
)

// Categories lists every valid Show category, in the order they're reported
// in validation messages.
var Categories = []string{CategoryMovie, CategoryAnime, CategorySerie}

// ValidCategory reports whether c is one of the allowed category values.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Show represents a single catalog entry.
//
// WHY Image *string (not string)?
// A show without an image stores NULL in the database and must serialize as
// JSON null, not "". A nil pointer gives us both for free: sql.Scan fills it
// from a nullable column, and encoding/json renders nil as null.
type Show struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       *string `json:"image"` // reference string like "/uploads/<name>", nil when absent
}
