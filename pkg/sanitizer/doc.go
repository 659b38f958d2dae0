// Package sanitizer normalizes guest input before it is stored.
//
// All functions are idempotent. Emails are trimmed but keep their case, so two
// spellings of one address are treated as different guests.
package sanitizer
