// atlas-archiver copies the daily MongoDB Atlas cloud backup snapshot into an
// S3 bucket and prunes expired copies.
//
// Usage:
//
//	# Archive yesterday's snapshot and apply retention
//	atlas-archiver run
//
//	# Only apply retention, printing what would be deleted
//	atlas-archiver prune --dry-run
//
//	# Upload a local file to the archive bucket
//	atlas-archiver upload -f dump.tar.gz
//
// Settings come from an optional YAML file (--config), a dotenv file
// (DOTENV_PATH, default .env) and the environment, in increasing precedence.
package main

func main() {
	Execute()
}
