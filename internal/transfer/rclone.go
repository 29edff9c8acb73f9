package transfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-ini/ini"

	"github.com/raoulx24/atlas-archiver/internal/fault"
	"github.com/raoulx24/atlas-archiver/internal/logging"
	"github.com/raoulx24/atlas-archiver/internal/snapshot"
)

const (
	sourceRemote = "http"
	destRemote   = "s3"
)

// Rclone copies with the rclone binary. Each copy gets a throwaway config
// with an http remote rooted at the artifact's directory and an s3 remote
// for the archive bucket.
type Rclone struct {
	Program string
	Remote  S3Remote
	Runner  Runner
	log     logging.Logger
}

// NewRclone returns an Rclone running program, or "rclone" when empty.
func NewRclone(program string, remote S3Remote, runner Runner, log logging.Logger) *Rclone {
	if program == "" {
		program = "rclone"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Rclone{Program: program, Remote: remote, Runner: runner, log: log}
}

func (r *Rclone) Copy(ctx context.Context, deliveryURL, bucket, path string, flags []string) error {
	art, err := snapshot.ParseArtifact(deliveryURL)
	if err != nil {
		return fault.New(fault.TransferFailure, "rclone copy", err)
	}

	cfgFile, err := r.writeConfig(art.BaseURL)
	if err != nil {
		return fault.New(fault.TransferFailure, "rclone copy", err)
	}
	defer os.Remove(cfgFile)

	src := sourceRemote + ":" + art.Name
	dst := destRemote + ":" + strings.TrimSuffix(bucket+"/"+path, "/")
	args := append([]string{"copy", "--config", cfgFile, src, dst}, flags...)

	r.log.Info("running rclone", "source", src, "dest", dst, "flags", strings.Join(flags, " "))
	res, err := r.Runner.Run(ctx, r.Program, args)
	if err != nil {
		return fault.New(fault.TransferFailure, "rclone copy", fmt.Errorf("running %s: %w", r.Program, err))
	}
	if res.ExitCode != 0 {
		r.log.Error("rclone failed", "exit_code", res.ExitCode, "output", string(res.Output))
		return fault.New(fault.TransferFailure, "rclone copy",
			fmt.Errorf("%s exited with status %d", r.Program, res.ExitCode))
	}
	r.log.Debug("rclone finished", "output", string(res.Output))
	return nil
}

func (r *Rclone) writeConfig(baseURL string) (string, error) {
	f, err := os.CreateTemp("", "atlas-archiver-rclone-*.conf")
	if err != nil {
		return "", fmt.Errorf("creating rclone config: %w", err)
	}
	if err := r.renderConfig(f, baseURL); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing rclone config: %w", err)
	}
	return f.Name(), nil
}

// renderConfig writes the two remotes in rclone's INI format. Empty values
// are left out so rclone falls back to its own defaults.
func (r *Rclone) renderConfig(w io.Writer, baseURL string) error {
	cfg := ini.Empty()

	remotes := []struct {
		name string
		keys [][2]string
	}{
		{sourceRemote, [][2]string{
			{"type", "http"},
			{"url", baseURL},
		}},
		{destRemote, [][2]string{
			{"type", "s3"},
			{"provider", r.Remote.Provider},
			{"access_key_id", r.Remote.AccessKeyID},
			{"secret_access_key", r.Remote.SecretAccessKey},
			{"region", r.Remote.Region},
			{"endpoint", r.Remote.Endpoint},
		}},
	}

	for _, rm := range remotes {
		sec, err := cfg.NewSection(rm.name)
		if err != nil {
			return fmt.Errorf("rclone config section %s: %w", rm.name, err)
		}
		for _, kv := range rm.keys {
			if kv[1] == "" {
				continue
			}
			if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
				return fmt.Errorf("rclone config key %s.%s: %w", rm.name, kv[0], err)
			}
		}
	}

	if _, err := cfg.WriteTo(w); err != nil {
		return fmt.Errorf("writing rclone config: %w", err)
	}
	return nil
}
