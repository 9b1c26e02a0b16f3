// Package sanitizer provides small, composable helpers for cleaning untrusted
// strings before they are validated, logged or sent to a remote service.
//
// The helpers fall into two groups:
//
//   - Strings – trimming, control character stripping, single-lining and
//     length limiting of arbitrary input.
//
//   - Secrets – RedactSecret and Redactor remove API keys (and their
//     identifying prefix) from error messages and response bodies.
//
// Every helper has the shape func(string) string (or can be adapted to it), so
// pipelines are built with Chain:
//
//	clean := sanitizer.Chain(
//	    sanitizer.StripControlChars,
//	    sanitizer.Trim,
//	)
//
//	name := clean(" my-index\x00 ") // "my-index"
//
// Redaction is usually the last step before a message leaves the process:
//
//	safe := sanitizer.Chain(
//	    sanitizer.Redactor(apiKey),
//	    sanitizer.SingleLine,
//	    func(s string) string { return sanitizer.MaxLength(s, 200) },
//	)(responseBody)
//
// # Error handling
//
// None of the helpers returns an error – they always fall back to a safe result
// (usually the original input or an empty string).
//
// The package is stateless and safe for concurrent use.
package sanitizer
