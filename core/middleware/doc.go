// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation (X-API-Key header) protecting every route except an
//     explicit skip list such as /health.
//   - rayid: a unique request id (RayID) for every incoming request, stored in the
//     fiber locals for logger.WithRayID and echoed in the X-Ray-ID response header.
//
// These middleware components are registered globally in the start command.
package middleware
