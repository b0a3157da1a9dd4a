package entity

// BreweryRating is the denormalized per-brewery rating summary.
// Invariant: AverageRating equals the mean rating over all reviews for
// BreweryID, and ReviewCount stays >= 1 while the row exists.
type BreweryRating struct {
	BreweryID     string  `db:"brewery_id"`
	AverageRating float64 `db:"average_rating"`
	ReviewCount   int64   `db:"review_count"`
}
