// Package options loads resolve options from HCL or YAML files.
package options

import (
	"bytes"
	"path/filepath"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/agentic-research/resolvecfg/api"
)

// Load reads options from an HCL file, or a YAML file when the name ends
// in .yaml or .yml.
//
//	project = "weapp"
//	sass    = "src/styles/variables.scss"
func Load(fsys billy.Filesystem, name string) (api.Options, error) {
	data, err := util.ReadFile(fsys, name)
	if err != nil {
		return api.Options{}, errors.Errorf("reading options file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var opts api.Options
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&opts); err != nil {
			return api.Options{}, errors.Errorf("parsing YAML: %w", err)
		}
		return opts, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return api.Options{}, errors.Errorf("parsing HCL: %s", diags.Error())
	}
	var opts api.Options
	if diags := gohcl.DecodeBody(file.Body, nil, &opts); diags.HasErrors() {
		return api.Options{}, errors.Errorf("decoding HCL: %s", diags.Error())
	}
	return opts, nil
}

// Merge returns base with every non-empty field of override applied.
func Merge(base, override api.Options) api.Options {
	if override.Project != "" {
		base.Project = override.Project
	}
	if override.Sass != "" {
		base.Sass = override.Sass
	}
	if override.WorkDir != "" {
		base.WorkDir = override.WorkDir
	}
	return base
}
