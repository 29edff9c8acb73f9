package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	uploadFile   string
	uploadObject string
	uploadBucket string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a local file to the archive bucket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if uploadFile == "" {
			return errors.New("--file is required")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if uploadBucket != "" {
			cfg.Storage.Bucket = uploadBucket
		}
		if err := cfg.ValidateStorage(); err != nil {
			return err
		}

		fi, err := os.Stat(uploadFile)
		if err != nil {
			return err
		}
		name := uploadObject
		if name == "" {
			name = filepath.Base(uploadFile)
		}

		store, err := newStore(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Uploading %s to bucket %s as %s\n", uploadFile, cfg.Storage.Bucket, name)
		_, err = store.UploadFile(cmd.Context(), name, uploadFile, newProgress(out, uploadFile, fi.Size()))
		fmt.Fprintln(out)
		return err
	},
}

func init() {
	f := uploadCmd.Flags()
	f.StringVarP(&uploadFile, "file", "f", "", "local file to upload")
	f.StringVarP(&uploadObject, "object-name", "o", "", "object name in the bucket (default: the file name)")
	f.StringVarP(&uploadBucket, "bucket", "b", "", "bucket to upload to (default: S3_BUCKET_NAME)")
	rootCmd.AddCommand(uploadCmd)
}

// progress prints a running byte count. The uploader reads from it as bytes
// are sent.
type progress struct {
	w     io.Writer
	name  string
	total int64
	seen  int64
}

func newProgress(w io.Writer, name string, total int64) *progress {
	return &progress{w: w, name: name, total: total}
}

func (p *progress) Read(b []byte) (int, error) {
	p.seen += int64(len(b))
	pct := 100.0
	if p.total > 0 {
		pct = float64(p.seen) / float64(p.total) * 100
	}
	fmt.Fprintf(p.w, "\r%s  %d / %d  (%.2f%%)", p.name, p.seen, p.total, pct)
	return len(b), nil
}
