package repository

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFile is the CLI configuration file name
	ConfigFile = "testid.yaml"
	// SWCConfigFile is the swc configuration file that may register the plugin
	SWCConfigFile = ".swcrc"

	packageKey = "testid"
)

// pluginNames match plugin registrations such as "swc-plugin-test-id"
var pluginNames = []string{"testid", "test-id"}

// PluginOptions returns the raw options blob registered for the plugin in the project's
// .swcrc (jsc.experimental.plugins) or under the "testid" key of package.json, and the
// file it came from. Missing or unreadable configuration yields an empty blob.
func PluginOptions(project *Project) (string, string) {
	if project == nil {
		return "", ""
	}
	swcrc := filepath.Join(project.RootPath, SWCConfigFile)
	if options, ok := swcPluginOptions(swcrc); ok {
		return options, swcrc
	}
	manifest := filepath.Join(project.RootPath, "package.json")
	if options, ok := packageOptions(manifest); ok {
		return options, manifest
	}
	return "", ""
}

func swcPluginOptions(location string) (string, bool) {
	data, err := os.ReadFile(location)
	if err != nil {
		return "", false
	}
	config := struct {
		JSC struct {
			Experimental struct {
				Plugins [][]yaml.Node `yaml:"plugins"`
			} `yaml:"experimental"`
		} `yaml:"jsc"`
	}{}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return "", false
	}
	for _, plugin := range config.JSC.Experimental.Plugins {
		if len(plugin) < 2 || plugin[0].Kind != yaml.ScalarNode || !isPluginName(plugin[0].Value) {
			continue
		}
		return encode(&plugin[1])
	}
	return "", false
}

func packageOptions(location string) (string, bool) {
	data, err := os.ReadFile(location)
	if err != nil {
		return "", false
	}
	manifest := map[string]yaml.Node{}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return "", false
	}
	node, ok := manifest[packageKey]
	if !ok {
		return "", false
	}
	return encode(&node)
}

func encode(node *yaml.Node) (string, bool) {
	if node.Kind != yaml.MappingNode {
		return "", false
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func isPluginName(name string) bool {
	name = strings.ToLower(name)
	for _, candidate := range pluginNames {
		if strings.Contains(name, candidate) {
			return true
		}
	}
	return false
}
