package exporter

import (
	"errors"
	"fmt"
	"strings"
)

// Failure taxonomy. Only the up-front destination probe treats
// ErrFilesystemUnavailable as fatal; once traversal starts, every failure is
// recorded per page or asset and the run continues.
var (
	ErrConversionFailed       = errors.New("conversion failed")
	ErrAssetCopyFailed        = errors.New("asset copy failed")
	ErrReferenceRewriteFailed = errors.New("reference rewrite failed")
	ErrMalformedTimestamp     = errors.New("malformed timestamp")
	ErrFilesystemUnavailable  = errors.New("filesystem unavailable")
)

// Failure records one non-fatal export failure with enough context to find
// the page or asset it concerns.
type Failure struct {
	Kind     error
	Notebook string
	Section  string
	Page     string
	Asset    string
	Err      error
}

func (f Failure) Error() string {
	var where []string
	if f.Notebook != "" {
		where = append(where, f.Notebook)
	}
	if f.Section != "" {
		where = append(where, f.Section)
	}
	if f.Page != "" {
		where = append(where, f.Page)
	}
	if f.Asset != "" {
		where = append(where, f.Asset)
	}
	return fmt.Sprintf("%s (%s): %v", f.Kind, strings.Join(where, " / "), f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

func (f Failure) logFields() map[string]interface{} {
	fields := map[string]interface{}{
		"kind": f.Kind.Error(),
	}
	if f.Notebook != "" {
		fields["notebook"] = f.Notebook
	}
	if f.Section != "" {
		fields["section"] = f.Section
	}
	if f.Page != "" {
		fields["page"] = f.Page
	}
	if f.Asset != "" {
		fields["asset"] = f.Asset
	}
	return fields
}
