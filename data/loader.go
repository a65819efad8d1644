package data

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/kcsujeet/bdd-lazy-var-next/framework/helpers"

	"golang.org/x/exp/maps"
)

//go:embed data-files
var dataFilesRoot embed.FS

const dataBasePath = "data-files"

// SourceInfo represents JSON or YAML data that was read from a file, after post-processing to expand
// constants and parameters. For non-parameterized files, you will get one SourceInfo per file. For
// parameterized files, there can be many instances per file, each with its own version of Data.
type SourceInfo struct {
	FilePath string
	BaseName string
	Params   map[string]json.RawMessage
	Data     []byte
}

func (s SourceInfo) ParseInto(target interface{}) error {
	if err := ParseJSONOrYAML(s.Data, target); err != nil {
		return fmt.Errorf("error parsing %q %s: %w", s.BaseName, s.ParamsString(), err)
	}
	return nil
}

// ParamsString describes the parameter values of this instance, in key order, for instance
// "(A=1,B=\"x\")". It returns an empty string if the file was not parameterized.
func (s SourceInfo) ParamsString() string {
	if len(s.Params) == 0 {
		return ""
	}
	ps := make([]string, 0, len(s.Params))
	for _, k := range helpers.Sorted(maps.Keys(s.Params)) {
		ps = append(ps, k+"="+string(s.Params[k]))
	}
	return "(" + strings.Join(ps, ",") + ")"
}

// LoadDataFile reads an embedded data file and performs any necessary constant/parameter
// substitutions. It can return more than one SourceInfo because any file can be parameterized.
//
// The path parameter is relative to data/data-files.
func LoadDataFile(filePath string) ([]SourceInfo, error) {
	return loadFile(dataFilesRoot, dataBasePath, filePath)
}

// LoadAllDataFiles reads all embedded data files in a directory. See LoadDataFile.
func LoadAllDataFiles(dirPath string) ([]SourceInfo, error) {
	return loadDir(dataFilesRoot, dataBasePath, dirPath)
}

// LoadDirectory reads all JSON or YAML files in a directory on disk. See LoadDataFile.
func LoadDirectory(dirPath string) ([]SourceInfo, error) {
	return loadDir(os.DirFS(dirPath), ".", ".")
}

func loadFile(fsys fs.FS, basePath, filePath string) ([]SourceInfo, error) {
	data, err := fs.ReadFile(fsys, path.Join(basePath, filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", filePath, err)
	}
	sources, err := expandSubstitutions(data)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", filePath, err)
	}
	ret := make([]SourceInfo, 0, len(sources))
	for _, source := range sources {
		source.FilePath = filePath
		source.BaseName = path.Base(filePath)
		ret = append(ret, source)
	}
	return ret, nil
}

func loadDir(fsys fs.FS, basePath, dirPath string) ([]SourceInfo, error) {
	files, err := fs.ReadDir(fsys, path.Join(basePath, dirPath))
	if err != nil {
		return nil, err
	}
	var ret []SourceInfo
	for _, file := range files {
		if file.IsDir() || !isDataFileName(file.Name()) {
			continue
		}
		sources, err := loadFile(fsys, basePath, path.Join(dirPath, file.Name()))
		if err != nil {
			return nil, err
		}
		ret = append(ret, sources...)
	}
	return ret, nil
}

func isDataFileName(name string) bool {
	switch path.Ext(name) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
