package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustreviews/internal/reviewgen"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTestGenerator() *reviewgen.Generator {
	log := logrus.New()
	log.SetOutput(io.Discard)

	gen := reviewgen.NewSeeded(1)
	gen.Now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	gen.Location = time.UTC
	gen.Log = log
	return gen
}

func TestRunWritesAugmentedTable(t *testing.T) {
	dir := t.TempDir()
	products := writeFile(t, dir, "products.csv", "product_id\n101\n102\n")
	reviews := writeFile(t, dir, "reviews.csv",
		"review_id,product_id,review_rating,review_desc,uid,created_at\n"+
			"500,101,5,This is fantastic!,u1,2023-01-01 00:00:00.000000+00\n"+
			"499,102,3,This is fine.,u2,2022-01-01 00:00:00.000000+00\n")
	out := filepath.Join(dir, "new_reviews.csv")

	sum, err := run(newTestGenerator(), products, reviews, out, false)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Generated)
	assert.Equal(t, int64(501), sum.FirstID)

	tbl, err := reviewgen.LoadTable(out)
	require.NoError(t, err)
	assert.Equal(t, 6, tbl.Len())
	assert.Equal(t, []string{"review_id", "product_id", "review_rating", "review_desc", "uid", "created_at"}, tbl.Header)
}

func TestRunDryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	products := writeFile(t, dir, "products.csv", "product_id\n1\n")
	reviews := writeFile(t, dir, "reviews.csv",
		"review_id,product_id,review_rating,review_desc,uid,created_at\n1,1,4,This is pretty good!,u1,\n")
	out := filepath.Join(dir, "new_reviews.csv")

	sum, err := run(newTestGenerator(), products, reviews, out, true)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Generated)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRunFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	products := writeFile(t, dir, "products.csv", "product_id\n1\n")
	reviews := writeFile(t, dir, "reviews.csv",
		"review_id,product_id,review_rating,review_desc,uid,created_at\n")
	out := filepath.Join(dir, "new_reviews.csv")

	_, err := run(newTestGenerator(), products, reviews, out, false)
	require.ErrorIs(t, err, reviewgen.ErrNoReviews)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "new_reviews.csv")

	_, err := run(newTestGenerator(), filepath.Join(dir, "products.csv"), filepath.Join(dir, "reviews.csv"), out, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load products")
}
