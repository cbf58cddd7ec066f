// Package snapshot captures the serialized HTML of a headless tree and
// stores it in a Sink.
//
// A Snapshot carries the HTML together with an xxhash fingerprint, so two
// captures of an unchanged tree compare equal without comparing bytes:
//
//	snap := snapshot.Capture(doc.Body())
//	sink, _ := snapshot.NewFileSink("out")
//	err := snap.Save(ctx, sink, "index")
//
// FileSink writes to a local directory. S3Sink uploads to an S3 bucket (or
// any S3-compatible endpoint).
package snapshot
