// Package assemblyai is the HTTP client for the AssemblyAI v2 REST
// API: file upload, transcript creation, status queries, completion
// polling, and the server-rendered subtitle endpoint.
//
// The client performs no transport-level retries; every failure
// surfaces immediately to the caller.
package assemblyai
