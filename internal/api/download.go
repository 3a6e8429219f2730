package api

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"
)

// DefaultArchiveName is used when the server does not name the archive.
const DefaultArchiveName = "money-tracker-source-code.zip"

// Download is a streamed file response. The caller must close Body.
type Download struct {
	Body     io.ReadCloser
	Filename string
	Size     int64
}

// DownloadSourceCode starts streaming the source archive.
// Size is -1 when the server does not announce a length.
func (c *Client) DownloadSourceCode(ctx context.Context) (*Download, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/download/source-code", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/zip")

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}

	return &Download{
		Body:     resp.Body,
		Filename: attachmentName(resp.Header.Get("Content-Disposition")),
		Size:     resp.ContentLength,
	}, nil
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return DefaultArchiveName
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return DefaultArchiveName
	}
	name := filepath.Base(params["filename"])
	if name == "" || name == "." || name == "/" {
		return DefaultArchiveName
	}
	return name
}
