package models

import (
	"strconv"
	"strings"
)

// Column names of the reviews table.
const (
	ColReviewID     = "review_id"
	ColProductID    = "product_id"
	ColReviewRating = "review_rating"
	ColReviewDesc   = "review_desc"
	ColUID          = "uid"
	ColCreatedAt    = "created_at"
)

// ReviewColumns lists every column a reviews table must carry.
var ReviewColumns = []string{
	ColReviewID,
	ColProductID,
	ColReviewRating,
	ColReviewDesc,
	ColUID,
	ColCreatedAt,
}

// CreatedAtLayout renders timestamps as YYYY-MM-DD HH:MM:SS.ffffff+00.
const CreatedAtLayout = "2006-01-02 15:04:05.000000+00"

// NormalizeColumn folds a header cell to the name it is matched by: a
// leading byte order mark and surrounding whitespace are dropped and case is
// ignored.
func NormalizeColumn(name string) string {
	return strings.TrimSpace(strings.ToLower(strings.TrimPrefix(name, "\ufeff")))
}

type Review struct {
	ReviewID    int64  `json:"review_id"`
	ProductID   int64  `json:"product_id"`
	Rating      int    `json:"review_rating"`
	Description string `json:"review_desc"`
	UID         string `json:"uid"`
	CreatedAt   string `json:"created_at"`
}

// Record lays the review out in header order. Columns the review does not
// know about are left empty.
func (r Review) Record(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		switch NormalizeColumn(name) {
		case ColReviewID:
			out[i] = strconv.FormatInt(r.ReviewID, 10)
		case ColProductID:
			out[i] = strconv.FormatInt(r.ProductID, 10)
		case ColReviewRating:
			out[i] = strconv.Itoa(r.Rating)
		case ColReviewDesc:
			out[i] = r.Description
		case ColUID:
			out[i] = r.UID
		case ColCreatedAt:
			out[i] = r.CreatedAt
		}
	}
	return out
}
