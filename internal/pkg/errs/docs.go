// Package errs provides the error taxonomy shared by the domain, the
// application layer and the adapters.
//
// Every error type follows the same shape:
//   - a sentinel variable usable with errors.Is (e.g. ErrValueIsRequired)
//   - a struct carrying details (parameter name, identifier, cause)
//   - constructors with and without cause
//   - Error() for formatting and Unwrap() for classification
//
// Classification used by the HTTP adapter:
//   - ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange: validation failures
//   - ObjectNotFound: referenced entity is absent
//   - Conflict and VersionIsInvalid: illegal transition, capacity exhausted,
//     duplicate key or stale optimistic-lock version
//   - TransientStore: connection or timeout problems, safe to retry
//   - Configuration: operator-facing misconfiguration, handled by degrading
package errs
