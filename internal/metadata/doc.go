// Package metadata resolves capture dates from media file content.
//
// A Resolver dispatches by media kind to a DateReader: EXIF tags for images,
// the ISO BMFF mvhd creation time for videos. Absence of a date is an
// expected outcome and is reported as (zero, false), never as an error, so
// every caller has to make an explicit fallback decision.
package metadata
