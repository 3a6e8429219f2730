package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/money-tracker/internal/cli"
	"github.com/Veraticus/money-tracker/internal/config"
	"github.com/Veraticus/money-tracker/internal/guard"
	"github.com/Veraticus/money-tracker/internal/pages"
)

func downloadCmd(v *viper.Viper) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download source code MoneyTracker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, v, guard.Download, func(ctx context.Context, e *env) error {
				var saved string
				sink := fileSink(config.ExpandPath(dir), cmd.ErrOrStderr(), &saved)

				n, err := pages.NewDownloadPage(e.client, e.notify).Download(ctx, sink)
				if err != nil {
					if saved != "" {
						_ = os.Remove(saved)
					}
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo(fmt.Sprintf("%s (%d bytes)", saved, n)))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&dir, "output-dir", "o", ".", "directory the archive is saved in")
	return cmd
}

// fileSink creates the archive under dir and records its path. Progress is
// drawn on w while the body is copied.
func fileSink(dir string, w io.Writer, saved *string) pages.Sink {
	return func(filename string, size int64) (io.WriteCloser, error) {
		path := filepath.Join(dir, filepath.Base(filename))
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		*saved = path

		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Mengunduh"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		)
		return &progressFile{file: f, bar: bar}, nil
	}
}

// progressFile advances bar on every write. It hides the file's ReadFrom so
// io.Copy goes through Write.
type progressFile struct {
	file *os.File
	bar  *progressbar.ProgressBar
}

func (p *progressFile) Write(b []byte) (int, error) {
	n, err := p.file.Write(b)
	_ = p.bar.Add(n)
	return n, err
}

func (p *progressFile) Close() error {
	_ = p.bar.Finish()
	return p.file.Close()
}
