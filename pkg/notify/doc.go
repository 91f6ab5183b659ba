// Package notify delivers operator alert emails over SMTPS.
//
// The mailer speaks implicit TLS (port 465 style), authenticates with AUTH
// PLAIN, and hand-builds the RFC 822 message: single-part text when there
// are no attachments, multipart/mixed with base64 parts when there are.
// Send failures propagate to the caller; the watchdog has no alert-on-
// alert-failure path.
package notify
