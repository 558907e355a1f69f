// Package models defines the client-side data model of DocVault: the session
// credential pair, mobile number and OTP normalisation, the two-level
// document taxonomy, tag sets, search queries, upload candidates and the
// document records returned by the API.
//
// All types here are pure values; nothing in this package performs I/O except
// LoadFile.
package models
