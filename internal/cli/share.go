package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/invoify/internal/api"
)

// FileResult is the data of a command that wrote a file.
type FileResult struct {
	Number string `json:"invoiceNumber"`
	Format string `json:"format"`
	Path   string `json:"path"`
	Bytes  int    `json:"bytes"`
}

// writePayload writes data to <dir>/<number>.<ext>, creating dir, and
// returns the path written.
func writePayload(dir, number, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, fileStem(number)+"."+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// fileStem makes an invoice number safe to use as a file name.
func fileStem(number string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == 0:
			return '_'
		case r < 0x20:
			return -1
		}
		return r
	}, strings.TrimSpace(number))
	stem = strings.Trim(stem, ".")
	if stem == "" {
		return "invoice"
	}
	return stem
}

// outDir returns the --out flag value, falling back to the configured
// output directory.
func (o *RootOptions) outDir(flag string) string {
	if flag != "" {
		return flag
	}
	if o.Config.OutDir != "" {
		return o.Config.OutDir
	}
	return "."
}

// remoteFailure reports a failed API call with the API's own message.
func remoteFailure(f *OutputFormatter, err error) error {
	msg := err.Error()
	var re *api.RemoteError
	if errors.As(err, &re) {
		msg = re.Message
	}
	return f.Fail(ExitFailure, ErrCodeRemote, msg, nil, err)
}
