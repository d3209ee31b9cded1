// Package server exposes the review pipeline over HTTP.
//
// POST /api/reviews validates a submission, runs the engine, persists the
// result, and — when the submission targets a merge request and a GitLab
// token is configured — posts the comments upstream best-effort. GET
// endpoints serve review history from the store.
package server
