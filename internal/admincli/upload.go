package admincli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/netx"
	"github.com/spf13/pflag"
)

// httpClient is a test seam.
var httpClient = &http.Client{Timeout: 5 * time.Minute}

// runUploadMedia PUTs a local file to the presigned URL returned by
// POST /blogs/:id/media.
func runUploadMedia(ctx context.Context, args []string, out io.Writer) error {
	var url, path, contentType string

	fs := pflag.NewFlagSet(CommandUploadMedia, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&url, "url", "", "presigned PUT url")
	fs.StringVar(&path, "file", "", "file to upload")
	fs.StringVar(&contentType, "content-type", netx.DefaultContentType, "Content-Type sent with the object")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if url == "" || path == "" {
		return fmt.Errorf("%w: --url and --file are required", ErrUsage)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return errors.New(path + " is a directory")
	}

	if err := netx.PutPresigned(ctx, httpClient, url, f, info.Size(), contentType); err != nil {
		return err
	}

	fmt.Fprintf(out, "Uploaded %s (%d bytes)\n", path, info.Size())
	return nil
}
