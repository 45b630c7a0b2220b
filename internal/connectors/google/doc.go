// Package google provides shared infrastructure for the Google API adapters.
//
// The sheets and places subpackages use it to:
//   - Build authenticated API clients from an API key or a service-account file
//   - Map common Google API errors (401, 403, 404, 429) onto domain errors
//   - Rate limit requests to stay inside API quotas
//
// # Credentials
//
// An API key is enough for a spreadsheet shared by link and for the Places
// API. A service account is needed for private spreadsheets; share the
// document with the service account's email. The service account uses
// these scopes:
//   - https://www.googleapis.com/auth/spreadsheets.readonly
//   - https://www.googleapis.com/auth/cloud-platform
package google
