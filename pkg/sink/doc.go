// Package sink publishes run results.
//
// Every Sink receives the final JSON document of a run. WriterSink prints it
// (stdout or a file), S3Sink stores it as an object, WebhookSink POSTs it to
// a URL with HMAC-SHA256 signature headers, and Multi fans out to several
// sinks, joining their errors.
//
//	s := sink.Multi(
//	    sink.NewWriterSink(os.Stdout),
//	    sink.NewWebhookSink(url, secret),
//	)
//	err := s.Publish(ctx, payload)
//
// Webhook deliveries are signed as described in package restclient.
package sink
