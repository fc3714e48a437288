package tablekv_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/tablekv"
	"github.com/hupe1980/tablekv/blobindex"
)

func Example() {
	db, err := tablekv.Open()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	_, err = db.StoreBlob(ctx, "report-q1", []byte("quarterly report"), "text/plain",
		map[string]string{"team": "finance"},
		map[string]any{"rating": 5, "keywords": []string{"report", "q1"}},
	)
	if err != nil {
		panic(err)
	}

	results := db.SearchBlobs(ctx, blobindex.Query{
		"rating": map[string]any{"$gt": 3},
	}, 0)

	for _, r := range results {
		fmt.Println(r.Key, r.Tags["team"])
	}
	// Output: report-q1 finance
}
