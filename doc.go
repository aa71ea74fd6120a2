// Package main is the entry point of the CashGlitch server.
// It serves the public content API (blog, categories, sweepstakes and site
// pages), gates the site behind an optional access code, and offers a small
// admin dashboard to the configured operator. Content lives in mysql,
// postgres or sqlite via gorm and is created and seeded on first start.
package main
