// Package replygen turns a social-media post URL into a batch of generated
// reply comments and a short analysis of the post.
// It fetches the post's rendered markup, extracts structured content from
// it, builds a prompt from that content and interprets the output of a
// text-generation backend.
//
// This package contains domain types, interfaces and the pure pipeline
// steps (URL validation, prompt building, response parsing) following Ben
// Johnson's Standard Package Layout. Implementations live in subdirectories
// named after their primary dependency (e.g., goquery/, gemini/, sqlite/).
package replygen
