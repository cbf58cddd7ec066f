// Package config loads dotrender settings from dotrender.toml or
// dotrender.json.
//
// # Configuration File Structure
//
//	[log]
//	level = "debug"
//	format = "text"
//
//	[metrics]
//	enabled = true
//	namespace = "dotrender"
//
//	[inspector]
//	host = "localhost"
//	port = 7070
//
//	[snapshot]
//	sink = "s3"
//	name = "index"
//
//	[snapshot.s3]
//	bucket = "my-bucket"
//	prefix = "snapshots/"
//	endpoint = "http://localhost:9000"
//	pathStyle = true
//
// The JSON file uses the same keys.
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
