// Package errors provides structured errors for the tabletop toolset.
//
// Every error carries a Code, a user facing Message, optional metadata and an
// optional cause. Codes map onto HTTP status codes so the API layer can render
// them without knowing where they came from.
//
// # Creating errors
//
//	err := errors.InvalidArgumentf("unknown die size d%d", size)
//	err := errors.NotFound("grid not found").WithMeta("grid_id", id)
//
// # Wrapping
//
// Wrap keeps the code of the wrapped error, so a NotFound from a repository is
// still a NotFound after the orchestrator added its own context:
//
//	if err != nil {
//	    return errors.Wrap(err, "failed to load grid")
//	}
//
// # Checking
//
//	if errors.IsNotFound(err) {
//	    // fall back to a blank grid
//	}
//
// # Layers
//
// Codecs and rules return InvalidArgument and OutOfRange for bad input.
// Repositories return NotFound, AlreadyExists and DataLoss for corrupt documents.
// Handlers render errors with ToBody, which maps codes through Code.HTTPStatus.
package errors
