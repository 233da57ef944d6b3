package resources

import (
	"embed"
	"io"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
)

//go:embed data/english/model.json
//go:embed data/english-v1/model.json
var f embed.FS

// GetEmbeddedResource
// Returns a ResourceEntry for the given resource name that is embedded in
// the binary.
func GetEmbeddedResource(path string) *ResourceEntry {
	resourceFile, err := f.Open("data/" + path)
	if err != nil {
		return nil
	}
	resourceBytes, err := f.ReadFile("data/" + path)
	if err != nil {
		resourceFile.Close()
		return nil
	}
	return &ResourceEntry{file: resourceFile, Data: &resourceBytes}
}

// EmbeddedDirExists
// Returns true if the given directory is embedded in the binary, otherwise
// false and an error.
func EmbeddedDirExists(path string) (bool, error) {
	if _, err := f.ReadDir("data/" + path); err != nil {
		return false, err
	} else {
		return true, nil
	}
}

// EmbeddedModels lists the model ids compiled into the binary.
func EmbeddedModels() []string {
	entries, err := f.ReadDir("data")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	return ids
}

// FetchHTTP
// Fetch a resource from a remote HTTP server.
func FetchHTTP(uri string, rsrc string) (io.ReadCloser, error) {
	resp, remoteErr := http.Get(uri + "/" + rsrc)
	if remoteErr != nil {
		return nil, remoteErr
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("HTTP status code %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// SizeHTTP
// Get the size of a resource from a remote HTTP server.
func SizeHTTP(uri string, rsrc string) (uint, error) {
	resp, remoteErr := http.Head(uri + "/" + rsrc)
	if remoteErr != nil {
		return 0, remoteErr
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, errors.Errorf("HTTP status code %d", resp.StatusCode)
	}
	length := resp.Header.Get("Content-Length")
	size, parseErr := strconv.ParseUint(length, 10, 64)
	if parseErr != nil {
		return 0, errors.Wrapf(parseErr, "invalid Content-Length `%s` for %s",
			length, rsrc)
	}
	return uint(size), nil
}
