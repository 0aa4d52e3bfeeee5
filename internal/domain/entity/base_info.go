// Package entity contains the core business objects of the project.
package entity

// BaseInfo is the read-only platform statistics rollup served publicly.
// AverageRating is rounded to one decimal place and reported as 0.0 when no
// reviews exist.
type BaseInfo struct {
	ReviewCount          int64
	AverageRating        float64
	BusinessProfileCount int64
	OfferCount           int64
}
