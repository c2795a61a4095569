package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"nationwide/internal/media"
)

// File is a local file to upload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// OpenFile opens path for upload. The caller closes the returned file.
func OpenFile(path string) (*File, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return &File{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Size:        info.Size(),
		Body:        f,
	}, f, nil
}

func (f *File) check() error {
	if f.Size > media.MaxUploadSize {
		return ErrFileTooLarge
	}
	return nil
}

// ProgressFunc receives the percentage of a file sent so far.
type ProgressFunc func(percent int)

// uploadProgress reports read progress in whole percent, once per change.
type uploadProgress struct {
	r        io.Reader
	total    int64
	read     int64
	reported int
	report   ProgressFunc
}

func newUploadProgress(r io.Reader, total int64, report ProgressFunc) *uploadProgress {
	return &uploadProgress{r: r, total: total, reported: -1, report: report}
}

func (p *uploadProgress) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.report != nil && p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct != p.reported {
			p.reported = pct
			p.report(pct)
		}
	}
	return n, err
}

// multipartBody streams fields and an optional file part without buffering the file.
func multipartBody(fields map[string]string, fileField string, file *File, progress ProgressFunc) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeParts(mw, fields, fileField, file, progress)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()
	return pr, mw.FormDataContentType()
}

func writeParts(mw *multipart.Writer, fields map[string]string, fileField string, file *File, progress ProgressFunc) error {
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	if file == nil {
		return nil
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, file.Name))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, newUploadProgress(file.Body, file.Size, progress))
	return err
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, fields map[string]string, fileField string, file *File, progress ProgressFunc, out any) error {
	body, contentType := multipartBody(fields, fileField, file, progress)
	defer body.Close()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	return c.send(req, out, true)
}
