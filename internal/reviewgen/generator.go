package reviewgen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"trustreviews/pkg/models"
)

// Generator synthesizes one review per (user, product) pair.
//
// Rand, Now and Location are injectable so runs can be reproduced; the zero
// values fall back to a randomly seeded source, time.Now and time.Local.
type Generator struct {
	Rand     *rand.Rand
	Now      func() time.Time
	Location *time.Location
	Log      logrus.FieldLogger
}

// Summary describes one Augment run.
type Summary struct {
	ExistingRows int
	Users        int
	Products     int
	Generated    int
	FirstID      int64
	LastID       int64
	MaxTime      int64
}

// NewSeeded returns a Generator whose draws are fully determined by seed.
func NewSeeded(seed uint64) *Generator {
	return &Generator{Rand: rand.New(rand.NewPCG(seed, seed))}
}

func (g *Generator) rng() *rand.Rand {
	if g.Rand == nil {
		g.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g.Rand
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Generator) location() *time.Location {
	if g.Location != nil {
		return g.Location
	}
	return time.Local
}

func (g *Generator) log() logrus.FieldLogger {
	if g.Log != nil {
		return g.Log
	}
	return logrus.StandardLogger()
}

// Users returns the distinct non-blank uids of the reviews table in the order
// they first appear.
func Users(reviews *Table) ([]string, error) {
	uids, err := reviews.Column(models.ColUID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(uids))
	out := make([]string, 0, len(uids))
	for _, uid := range uids {
		if uid == "" {
			continue
		}
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		out = append(out, uid)
	}
	return out, nil
}

// Products returns the distinct products of the products table in the order
// they first appear. Blank ids are skipped; anything else must be an integer.
func Products(products *Table) ([]models.Product, error) {
	raw, err := products.Column(models.ColProductID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(raw))
	out := make([]models.Product, 0, len(raw))
	for i, v := range raw {
		if v == "" {
			continue
		}
		id, err := parseInteger(v)
		if err != nil {
			return nil, fmt.Errorf("parse %s on row %d: %w", models.ColProductID, i+1, err)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, models.Product{ID: id})
	}
	return out, nil
}

// Synthesize builds the new reviews, users outer and products inner. Ids
// continue from b.MaxID with no gaps. A negative b.MaxTime pins every
// timestamp to the epoch.
func (g *Generator) Synthesize(users []string, products []models.Product, b Bounds) []models.Review {
	rng := g.rng()
	loc := g.location()
	maxTime := max(b.MaxTime, 0)

	out := make([]models.Review, 0, len(users)*len(products))
	nextID := b.MaxID
	for _, uid := range users {
		for _, p := range products {
			nextID++
			rating := rng.IntN(5) + 1
			created := time.Unix(rng.Int64N(maxTime+1), 0).In(loc)

			out = append(out, models.Review{
				ReviewID:    nextID,
				ProductID:   p.ID,
				Rating:      rating,
				Description: Describe(rating),
				UID:         uid,
				CreatedAt:   created.Format(models.CreatedAtLayout),
			})
		}
	}
	return out
}

// Augment returns a new table holding every row of reviews followed by the
// synthesized rows. Neither input is modified.
func (g *Generator) Augment(products, reviews *Table) (*Table, Summary, error) {
	if err := reviews.Require(models.ReviewColumns...); err != nil {
		return nil, Summary{}, fmt.Errorf("reviews table: %w", err)
	}

	productList, err := Products(products)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("products table: %w", err)
	}

	bounds, err := ComputeBounds(reviews, g.now())
	if err != nil {
		return nil, Summary{}, fmt.Errorf("reviews table: %w", err)
	}

	users, err := Users(reviews)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("reviews table: %w", err)
	}

	if pairs := int64(len(users)) * int64(len(productList)); bounds.MaxID > math.MaxInt64-pairs {
		return nil, Summary{}, fmt.Errorf("reviews table: %d new ids above %s %d overflow int64", pairs, models.ColReviewID, bounds.MaxID)
	}

	generated := g.Synthesize(users, productList, bounds)

	rows := make([][]string, 0, reviews.Len()+len(generated))
	for _, row := range reviews.Rows {
		rows = append(rows, append([]string(nil), row...))
	}
	for _, r := range generated {
		rows = append(rows, r.Record(reviews.Header))
	}

	header := append([]string(nil), reviews.Header...)
	sum := Summary{
		ExistingRows: reviews.Len(),
		Users:        len(users),
		Products:     len(productList),
		Generated:    len(generated),
		MaxTime:      bounds.MaxTime,
	}
	if len(generated) > 0 {
		sum.FirstID = generated[0].ReviewID
		sum.LastID = generated[len(generated)-1].ReviewID
	}

	g.log().WithFields(logrus.Fields{
		"existing":  sum.ExistingRows,
		"users":     sum.Users,
		"products":  sum.Products,
		"generated": sum.Generated,
		"max_id":    bounds.MaxID,
	}).Debug("synthesized reviews")

	return NewTable(header, rows), sum, nil
}
