package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/payslips-extractor/constants"
	"github.com/joseph-ayodele/payslips-extractor/internal/common"
	"github.com/joseph-ayodele/payslips-extractor/internal/record"
)

// JSONPath returns where the record for the document at relPath (slash
// separated, relative to the input root) is written.
func JSONPath(dir, layout, relPath string) string {
	base := path.Base(relPath)
	name := strings.TrimSuffix(base, path.Ext(base)) + constants.ExtractedSuffix
	if layout == common.LayoutMirrored {
		if sub := path.Dir(relPath); sub != "." {
			return filepath.Join(dir, filepath.FromSlash(sub), name)
		}
	}
	return filepath.Join(dir, name)
}

// EncodeJSON renders r with 4-space indentation and a trailing newline.
func EncodeJSON(r *record.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes r to path, creating parent directories. The file is
// replaced atomically so a rerun never leaves a half-written record.
func WriteJSON(path string, r *record.Record) error {
	data, err := EncodeJSON(r)
	if err != nil {
		return common.NewOutputError(path, err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return common.NewOutputError(path, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
