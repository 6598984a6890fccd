// Package furnidex provides a Go client for the furnidex furniture
// recommendation API.
//
//	client := furnidex.New("http://localhost:8080",
//	    furnidex.WithAPIKey("secret"),
//	)
//
//	result, _ := client.Recommend(ctx, furnidex.RecommendRequest{
//	    Query: "oak dining table for six",
//	    TopK:  5,
//	    Filters: &furnidex.Filters{
//	        MaxPrice: furnidex.Float(500),
//	    },
//	})
//	for _, rec := range result.Recommendations {
//	    fmt.Println(rec.Title, rec.Score)
//	}
//
// API failures are returned as *APIError; inspect the Code field or the
// HTTP status to branch on the failure class.
package furnidex
