// Package dataset loads embedding items produced by an upstream run.
//
// A Source returns raw item objects for a dataset id. Three are provided:
//
//   - ApifySource reads the Apify dataset items API.
//   - S3Source reads {prefix}/{id}.json from a bucket.
//   - DirSource reads {dir}/{id}.json from local disk.
//
// Object and file sources accept either a JSON array or JSON Lines.
//
// Load applies the same filtering to every source: summary rows are dropped,
// items without a usable "embedding" array are skipped with a warning, and
// a dataset that yields nothing fails with a distinct error:
//
//	res, err := dataset.Load(ctx, src, "abc123", dataset.WithLogger(log))
//	switch {
//	case errors.Is(err, dataset.ErrDatasetUnavailable):
//	case errors.Is(err, dataset.ErrEmptyDataset):
//	case errors.Is(err, dataset.ErrNoUsableItems):
//	}
package dataset
