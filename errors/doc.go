// Package errors provides the structured failure type for identity resolution.
//
// Failures are categorized by Phase (where they occurred) and Kind (what went
// wrong). The Error type carries the offending input verbatim, a detail
// message, an optional structured Reason and the cause chain.
//
// Use the Builder for structured construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindMalformedIdentity).
//		Input("Acme.Core/1").
//		Detail("version must have 2 to 4 components").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeNotFound("Acme.Widget, Acme.Core")
//	err := errors.ModuleNotFound("Acme.Core/1.0")
//
// Callers branch on the kind without matching message text:
//
//	if errors.IsKind(err, errors.KindTypeNotFound) { ... }
//	if r, ok := errors.ReasonOf(err).(errors.TypeNotDefined); ok { ... }
package errors
