// Package gitlab posts finished review comments to a GitLab merge request.
//
// It is an external collaborator of the review pipeline: the engine only
// attaches merge-request metadata to a result, and this client turns the
// comments list into MR discussions plus a summary note after the fact.
package gitlab
