package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

// FileName is the module information file `trion init` writes.
const FileName = "trion.yml"

type Module struct {
	Package  string `yaml:"Package"`
	Main     string `yaml:"Main,omitempty"`
	History  string `yaml:"History,omitempty"`
	Prompt   string `yaml:"Prompt,omitempty"`
	Warnings bool   `yaml:"Warnings"`
}

func Default(name string) Module {
	return Module{
		Package:  name,
		Main:     "main.tri",
		Prompt:   "trion> ",
		Warnings: true,
	}
}

// Load reads dir/trion.yml. Keys missing from the file keep their defaults.
func Load(dir string) (Module, error) {
	data, err := ioutil.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return Module{}, tracerr.Wrap(err)
	}

	mod := Default("")
	if err := yaml.Unmarshal(data, &mod); err != nil {
		return Module{}, tracerr.Wrap(err)
	}
	return mod, nil
}

// LoadOrDefault is Load, except that a missing file yields Default("").
func LoadOrDefault(dir string) (Module, error) {
	if _, err := os.Stat(filepath.Join(dir, FileName)); os.IsNotExist(err) {
		return Default(""), nil
	}
	return Load(dir)
}

func Save(dir string, mod Module) error {
	out, err := yaml.Marshal(mod)
	if err != nil {
		return tracerr.Wrap(err)
	}
	if err := ioutil.WriteFile(filepath.Join(dir, FileName), out, 0644); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

// HistoryPath is where the REPL keeps its history: the configured path, or
// ~/.trion_history.
func (m Module) HistoryPath() string {
	if m.History != "" {
		return m.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trion_history"
	}
	return filepath.Join(home, ".trion_history")
}
