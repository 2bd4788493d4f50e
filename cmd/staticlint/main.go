// Command staticlint is the project's static analysis binary. It combines
// analyzers from the Go toolchain, third-party analyzers and the project's
// own noexit analyzer into a single multichecker.
//
// The staticcheck analyzers to enable are listed in a JSON file:
//
//	{"Staticcheck": ["SA1000", "SA4006"]}
//
// The file is looked up at $STATICLINT_CONFIG, falling back to config.json
// next to the executable.
//
// Usage:
//
//	staticlint ./...
package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	env "github.com/caarlos0/env/v6"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"honnef.co/go/tools/staticcheck"

	"github.com/gordonklaus/ineffassign/pkg/ineffassign"
	"github.com/gostaticanalysis/nilerr"

	"github.com/patric-chuzhbe/usersapi/cmd/staticlint/noexit"
)

const defaultConfigName = `config.json`

// ConfigData describes the configuration file.
type ConfigData struct {
	Staticcheck []string
}

type settings struct {
	ConfigPath string `env:"STATICLINT_CONFIG"`
}

func configPath() (string, error) {
	var s settings
	if err := env.Parse(&s); err != nil {
		return "", err
	}
	if s.ConfigPath != "" {
		return s.ConfigPath, nil
	}

	appfile, err := os.Executable()
	if err != nil {
		return "", err
	}

	return filepath.Join(filepath.Dir(appfile), defaultConfigName), nil
}

func loadConfig() (ConfigData, error) {
	var cfg ConfigData

	path, err := configPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	err = json.Unmarshal(data, &cfg)
	return cfg, err
}

func analyzers(cfg ConfigData) []*analysis.Analyzer {
	myChecks := []*analysis.Analyzer{
		copylock.Analyzer,     // mutex-holding structs copied by value
		errorsas.Analyzer,     // errors.As with a non-pointer target
		httpresponse.Analyzer, // response used before the error check
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		printf.Analyzer,
		structtag.Analyzer, // malformed env/json/validate tags
		unmarshal.Analyzer,
		unreachable.Analyzer,

		ineffassign.Analyzer,
		nilerr.Analyzer,

		noexit.Analyzer,
	}

	checks := make(map[string]bool)
	for _, v := range cfg.Staticcheck {
		checks[v] = true
	}

	for _, v := range staticcheck.Analyzers {
		if checks[v.Analyzer.Name] {
			myChecks = append(myChecks, v.Analyzer)
		}
	}

	return myChecks
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	multichecker.Main(analyzers(cfg)...)
}
