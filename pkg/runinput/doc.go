// Package runinput validates and normalizes the parameters of a single write
// run before anything touches the network.
//
// Validate takes the decoded input object (JSON or YAML) and returns an
// immutable Request, or a *FieldError describing the first rule that failed.
// Rules run in a fixed order and stop at the first failure:
//
//	req, err := runinput.Validate(raw, runinput.DefaultLimits())
//	if err != nil {
//	    // errors.Is(err, runinput.ErrInvalidInput) == true
//	    return err
//	}
//
// Every string parameter is stripped of control characters before it is
// checked. Every error message is scrubbed of the API key, in full and by
// its eight character prefix, so a key pasted into the wrong field never
// leaks into logs or output.
//
// The Qdrant cluster URL must point at a Qdrant Cloud host. Pinecone never
// accepts a user supplied host: its data plane is resolved through the
// Pinecone control plane by the writer.
package runinput
