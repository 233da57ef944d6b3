package resources

import (
	"encoding/json"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/wbrown/readable_hash/types"
	"go.uber.org/zap"
)

type ResourceFlag uint8

// WriteCounter counts the number of bytes written to it, and every 10 seconds,
// it logs a message reporting the number of bytes written so far.
type WriteCounter struct {
	Total    uint64
	Last     time.Time
	Reported bool
	Path     string
	Size     uint64
	Logger   *zap.Logger
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.Total += uint64(n)
	if time.Since(wc.Last).Seconds() > 10 {
		wc.Reported = true
		wc.Last = time.Now()
		wc.Logger.Info("downloading",
			zap.String("path", wc.Path),
			zap.String("completed", humanize.Bytes(wc.Total)),
			zap.String("size", humanize.Bytes(wc.Size)))
	}
	return n, nil
}

// Enumeration of resource flags that indicate what the resolver should do
// with the resource.
const (
	RESOURCE_REQUIRED ResourceFlag = 1 << iota
	RESOURCE_OPTIONAL
	RESOURCE_ONEOF
)

const (
	ModelJSON   = "model.json"
	ModelBinary = "model.bin"
)

type ResourceEntryDefs map[string]ResourceFlag
type ResourceEntry struct {
	file  interface{}
	Data  *[]byte
	unmap func() error
}

type Resources map[string]ResourceEntry

func (rsrcs *Resources) Cleanup() {
	for _, rsrc := range *rsrcs {
		if rsrc.unmap != nil {
			rsrc.unmap()
		}
		switch t := rsrc.file.(type) {
		case *os.File:
			t.Close()
		case fs.File:
			t.Close()
		}
	}
}

// GetResourceEntries
// Returns the files that make up a model. One of the two encodings must be
// present; the binary one wins when both are.
func GetResourceEntries() ResourceEntryDefs {
	return ResourceEntryDefs{
		ModelBinary: RESOURCE_ONEOF,
		ModelJSON:   RESOURCE_ONEOF,
	}
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// Fetch
// Given a base URI and a resource name, returns a handle to the local file,
// or fetches the resource from the remote server.
func Fetch(uri string, rsrc string) (io.ReadCloser, error) {
	if isValidUrl(uri) {
		return FetchHTTP(uri, rsrc)
	}
	handle, fileErr := os.Open(path.Join(uri, rsrc))
	if fileErr != nil {
		return nil, errors.Wrapf(fileErr, "error opening %s/%s", uri, rsrc)
	}
	return handle, nil
}

// Size
// Given a base URI and a resource name, determine the size of the resource.
func Size(uri string, rsrc string) (uint, error) {
	if isValidUrl(uri) {
		return SizeHTTP(uri, rsrc)
	}
	fsz, err := os.Stat(path.Join(uri, rsrc))
	if err != nil {
		return 0, err
	}
	return uint(fsz.Size()), nil
}

// AddEntry
// Add a resource to the Resources map, opening it as a mmap.Map.
func (rsrcs *Resources) AddEntry(name string, file *os.File) error {
	fileMmap, unmap, mmapErr := readMmap(file)
	if mmapErr != nil {
		return errors.Wrap(mmapErr, "error trying to mmap file")
	}
	(*rsrcs)[name] = ResourceEntry{file, fileMmap, unmap}
	return nil
}

// download copies a remote resource into dir and returns the open file.
func download(uri string, file string, dir string, size uint,
	logger *zap.Logger) (*os.File, error) {
	targetPath := path.Join(dir, file)
	if targetStat, statErr := os.Stat(targetPath); statErr == nil &&
		uint(targetStat.Size()) == size {
		logger.Debug("skipping download, already exists",
			zap.String("path", targetPath))
		return os.Open(targetPath)
	}
	rsrcReader, rsrcErr := Fetch(uri, file)
	if rsrcErr != nil {
		return nil, errors.Wrapf(rsrcErr, "cannot retrieve `%s` from `%s`",
			file, uri)
	}
	defer rsrcReader.Close()
	rsrcFile, openErr := os.OpenFile(targetPath,
		os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0644)
	if openErr != nil {
		return nil, errors.Wrapf(openErr, "error opening '%s' for write",
			targetPath)
	}
	counter := &WriteCounter{
		Last:   time.Now(),
		Path:   uri + "/" + file,
		Size:   uint64(size),
		Logger: logger,
	}
	bytesDownloaded, ioErr := io.Copy(rsrcFile,
		io.TeeReader(rsrcReader, counter))
	if ioErr != nil {
		rsrcFile.Close()
		return nil, errors.Wrapf(ioErr, "error downloading '%s'", file)
	}
	logger.Info("downloaded",
		zap.String("path", counter.Path),
		zap.String("size", humanize.Bytes(uint64(bytesDownloaded))))
	if _, seekErr := rsrcFile.Seek(0, io.SeekStart); seekErr != nil {
		rsrcFile.Close()
		return nil, seekErr
	}
	return rsrcFile, nil
}

// ResolveResources resolves all model resources at a given uri. Local
// directories are mapped in place; remote resources are downloaded into dir
// first.
func ResolveResources(uri string, dir *string,
	logger *zap.Logger) (*Resources, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	foundResources := make(Resources, 0)
	remote := isValidUrl(uri)
	oneOfFound := false

	for file, flag := range GetResourceEntries() {
		logger.Debug("resolving", zap.String("uri", uri),
			zap.String("resource", file))
		rsrcSize, rsrcSizeErr := Size(uri, file)
		if rsrcSizeErr != nil {
			if flag&RESOURCE_REQUIRED != 0 {
				foundResources.Cleanup()
				return nil, errors.Wrapf(rsrcSizeErr,
					"cannot retrieve required `%s` from `%s`", file, uri)
			}
			logger.Debug("resource not there, not required",
				zap.String("resource", file))
			continue
		}
		var rsrcFile *os.File
		var openErr error
		if remote {
			rsrcFile, openErr = download(uri, file, *dir, rsrcSize, logger)
		} else {
			rsrcFile, openErr = os.Open(path.Join(uri, file))
		}
		if openErr != nil {
			foundResources.Cleanup()
			return nil, openErr
		}
		if mmapErr := foundResources.AddEntry(file, rsrcFile); mmapErr != nil {
			rsrcFile.Close()
			foundResources.Cleanup()
			return nil, mmapErr
		}
		if flag&RESOURCE_ONEOF != 0 {
			oneOfFound = true
		}
	}
	if !oneOfFound {
		return nil, errors.Errorf("no model resources found at `%s`", uri)
	}
	return &foundResources, nil
}

// DecodeModel
// Decodes and validates the model held by the resolved resources.
func DecodeModel(rsrcs Resources) (*types.ModelData, error) {
	var data *types.ModelData
	if binary, ok := rsrcs[ModelBinary]; ok && binary.Data != nil {
		decoded, err := DecodeModelBinary(*binary.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot decode `%s`", ModelBinary)
		}
		data = decoded
	} else if js, ok := rsrcs[ModelJSON]; ok && js.Data != nil {
		data = &types.ModelData{}
		if err := json.Unmarshal(*js.Data, data); err != nil {
			return nil, errors.Wrapf(err, "cannot unmarshal `%s`", ModelJSON)
		}
	} else {
		return nil, errors.New("no model resource to decode")
	}
	if err := data.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid model `%s`", data.Name)
	}
	return data, nil
}

// LoadModelFile
// Loads a single `model.json` or `model.bin` file.
func LoadModelFile(filePath string) (*types.ModelData, error) {
	handle, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	name := ModelJSON
	if strings.HasSuffix(filePath, ".bin") {
		name = ModelBinary
	}
	rsrcs := make(Resources, 1)
	if mmapErr := rsrcs.AddEntry(name, handle); mmapErr != nil {
		handle.Close()
		return nil, mmapErr
	}
	defer rsrcs.Cleanup()
	return DecodeModel(rsrcs)
}

// ResolveModelId
// Resolves a model id to validated model data, from embedded, local
// filesystem, or remote.
func ResolveModelId(modelId string, logger *zap.Logger) (*types.ModelData,
	error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var data *types.ModelData
	var err error
	if _, embedErr := EmbeddedDirExists(modelId); embedErr == nil {
		entry := GetEmbeddedResource(modelId + "/" + ModelJSON)
		if entry == nil {
			return nil, errors.Errorf("embedded model `%s` has no `%s`",
				modelId, ModelJSON)
		}
		rsrcs := Resources{ModelJSON: *entry}
		defer rsrcs.Cleanup()
		data, err = DecodeModel(rsrcs)
	} else if isValidUrl(modelId) {
		dir, dirErr := os.MkdirTemp("", "readable_hash")
		if dirErr != nil {
			return nil, dirErr
		}
		defer os.RemoveAll(dir)
		data, err = resolveDir(modelId, dir, logger)
	} else if stat, statErr := os.Stat(modelId); statErr != nil {
		return nil, errors.Wrapf(statErr,
			"model `%s` is not embedded and cannot be found", modelId)
	} else if stat.IsDir() {
		data, err = resolveDir(modelId, modelId, logger)
	} else {
		data, err = LoadModelFile(modelId)
	}
	if err != nil {
		return nil, err
	}
	if data.Name == "" {
		data.Name = path.Base(modelId)
	}
	logger.Info("model resolved",
		zap.String("model", data.Name),
		zap.Int("tokens", len(data.Tokens)),
		zap.Int("contexts", len(data.Contexts)),
		zap.Int("context_len", data.ContextLen),
		zap.Int("probability_bits", data.ProbabilityBits))
	return data, nil
}

func resolveDir(uri string, dir string, logger *zap.Logger) (
	*types.ModelData, error) {
	rsrcs, err := ResolveResources(uri, &dir, logger)
	if err != nil {
		return nil, err
	}
	defer rsrcs.Cleanup()
	return DecodeModel(*rsrcs)
}
