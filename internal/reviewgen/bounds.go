package reviewgen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"trustreviews/pkg/models"
)

// ErrNoReviews is returned when the reviews table has no review_id to start from.
var ErrNoReviews = errors.New("reviews table has no review ids")

// Bounds are computed once per run and shared by every synthesized row.
type Bounds struct {
	MaxID   int64 // largest existing review_id; new ids start above it
	MaxTime int64 // unix seconds upper bound for created_at; negative is treated as 0
}

// ComputeBounds scans the review_id column once and captures now as the
// upper bound for generated timestamps. Blank ids are skipped.
func ComputeBounds(reviews *Table, now time.Time) (Bounds, error) {
	ids, err := reviews.Column(models.ColReviewID)
	if err != nil {
		return Bounds{}, err
	}

	var (
		maxID int64
		found bool
	)
	for i, raw := range ids {
		if raw == "" {
			continue
		}
		id, err := parseInteger(raw)
		if err != nil {
			return Bounds{}, fmt.Errorf("parse %s on row %d: %w", models.ColReviewID, i+1, err)
		}
		if !found || id > maxID {
			maxID = id
			found = true
		}
	}
	if !found {
		return Bounds{}, ErrNoReviews
	}
	if maxID == math.MaxInt64 {
		return Bounds{}, fmt.Errorf("%s %d leaves no room for new ids", models.ColReviewID, maxID)
	}

	maxTime := now.Unix()
	if maxTime < 0 {
		return Bounds{}, fmt.Errorf("clock before unix epoch: %s", now)
	}

	return Bounds{MaxID: maxID, MaxTime: maxTime}, nil
}

// parseInteger accepts plain integers and integral floats such as "500.0",
// which spreadsheet exports tend to produce.
func parseInteger(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		return n, nil
	}
	f, ferr := strconv.ParseFloat(raw, 64)
	if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, err
	}
	return int64(f), nil
}
