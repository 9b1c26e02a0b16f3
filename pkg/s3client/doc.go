// Package s3client builds AWS SDK v2 S3 clients and wraps the two object
// operations the rest of the module needs: reading a whole object and
// writing one.
//
// New works against AWS and S3-compatible services (MinIO, R2) through
// Config.Endpoint and Config.ForcePathStyle. Static credentials are used when
// both keys are set; otherwise the default AWS credential chain applies.
//
//	client, err := s3client.New(ctx, s3client.Config{
//	    Bucket: "embeddings",
//	    Region: "us-east-1",
//	})
//	data, err := s3client.ReadObject(ctx, client, "embeddings", "datasets/abc.json", 0)
//
// ReadObject and WriteObject accept the narrow Getter and Putter interfaces,
// so tests substitute fakes without touching the network. SDK errors are
// mapped to package sentinels by ClassifyError; missing objects match
// ErrObjectNotFound.
package s3client
