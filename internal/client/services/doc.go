// Package services groups the platform API into typed services, one per
// area of the admin console: auth, events, posts, transactions, users,
// administrators and user management.
//
// Every service is a thin layer over the session-aware client. It builds the
// request, decodes the reply into models types and turns an explicit
// {"success": false} body into models.ErrRejected. Transport and status
// errors from the client are wrapped with the operation name and keep their
// identity for errors.Is/As.
package services
