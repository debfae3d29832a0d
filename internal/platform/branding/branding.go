// Package branding centralizes product naming used across services.
package branding

// AppName is the public product name shown in page chrome and titles.
const AppName = "Argus du Libre"
