package pages

import (
	"context"
	"fmt"
	"io"
)

// Sink opens the destination for a download of the given name and size.
// Size is -1 when unknown.
type Sink func(filename string, size int64) (io.WriteCloser, error)

// DownloadPage saves the source archive.
type DownloadPage struct {
	api    DownloadAPI
	notify Notifier
	gate   Gate
}

// NewDownloadPage creates the download page.
func NewDownloadPage(a DownloadAPI, n Notifier) *DownloadPage {
	return &DownloadPage{api: a, notify: orDiscard(n)}
}

// Download streams the archive into the writer returned by sink and reports the bytes written.
func (p *DownloadPage) Download(ctx context.Context, sink Sink) (int64, error) {
	var written int64
	err := p.gate.Run(func() error {
		dl, err := p.api.DownloadSourceCode(ctx)
		if err != nil {
			return fail(p.notify, MsgDownloadErr, err)
		}
		defer func() { _ = dl.Body.Close() }()

		dst, err := sink(dl.Filename, dl.Size)
		if err != nil {
			return fail(p.notify, MsgDownloadErr, fmt.Errorf("failed to open destination: %w", err))
		}

		written, err = io.Copy(dst, dl.Body)
		closeErr := dst.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			return fail(p.notify, MsgDownloadErr, fmt.Errorf("failed to save archive: %w", err))
		}

		succeed(p.notify, MsgDownloaded)
		return nil
	})
	return written, err
}
