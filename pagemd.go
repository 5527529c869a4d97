// Package pagemd converts web articles into Markdown documents.
// It recognizes the platform an article comes from, extracts the article
// body with platform-specific rules, optionally downloads embedded media
// next to the output file, and renders the result as clean Markdown.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, htmltomarkdown/, rod/).
package pagemd
