// Package validator holds the small rule set used to check run input.
//
// A Rule pairs a deferred check with the Violation it reports. First walks
// rules in order and stops at the first failure, so a later rule may rely on
// an earlier one having passed:
//
//	if v := validator.First(
//	    validator.Required("api_key", key).WithMessage("API key is required."),
//	    validator.Between("batch_size", size, 1, 1000),
//	); v != nil {
//	    return v
//	}
package validator
