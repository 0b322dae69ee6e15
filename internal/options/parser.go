package options

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Parser owns the declared parameter surface and the Dict holding current
// values. Registration is a startup phase: every parameter is declared
// exactly once before any consumer snapshots the Dict.
type Parser struct {
	options []*Option
	byFlag  map[string]*Option
	dict    *Dict
}

func NewParser() *Parser {
	return &Parser{
		byFlag: make(map[string]*Option),
		dict:   NewDict(),
	}
}

func (p *Parser) add(o *Option) {
	if _, exists := p.byFlag[o.ID.Flag]; exists {
		panic(fmt.Sprintf("option %q registered twice", o.ID.Flag))
	}
	for _, other := range p.options {
		if o.ID.Name != "" && strings.EqualFold(other.ID.Name, o.ID.Name) {
			panic(fmt.Sprintf("option name %q registered twice", o.ID.Name))
		}
	}
	p.options = append(p.options, o)
	p.byFlag[o.ID.Flag] = o
	p.dict.set(o.ID.Flag, o.Default)
}

func (p *Parser) AddBool(id ID, def bool) {
	p.add(&Option{ID: id, Kind: KindBool, Default: def})
}

func (p *Parser) AddInt(id ID, min, max, def int) {
	p.add(&Option{ID: id, Kind: KindInt, Min: float64(min), Max: float64(max), Default: def})
}

func (p *Parser) AddFloat(id ID, min, max, def float64) {
	p.add(&Option{ID: id, Kind: KindFloat, Min: min, Max: max, Default: def})
}

func (p *Parser) AddString(id ID, def string) {
	p.add(&Option{ID: id, Kind: KindString, Default: def})
}

func (p *Parser) AddChoice(id ID, choices []string, def string) {
	p.add(&Option{ID: id, Kind: KindChoice, Choices: choices, Default: def})
}

// HideOption keeps the flag but drops the parameter from the protocol listing.
func (p *Parser) HideOption(id ID) {
	if o, ok := p.byFlag[id.Flag]; ok {
		o.hidden = true
	}
}

// Dict returns the live value store.
func (p *Parser) Dict() *Dict {
	return p.dict
}

// ListOptionsUci renders every visible parameter in protocol-option form.
func (p *Parser) ListOptionsUci() []string {
	var result []string
	for _, o := range p.options {
		if o.hidden || o.ID.Name == "" {
			continue
		}
		result = append(result, o.UciString(p.dict.get(o.ID)))
	}
	return result
}

// SetUciOption updates a named parameter from protocol text. A non-empty
// context routes the value into that context's sub-dict.
func (p *Parser) SetUciOption(name, value, context string) error {
	for _, o := range p.options {
		if o.ID.Name != "" && strings.EqualFold(o.ID.Name, name) {
			v, err := o.Parse(value)
			if err != nil {
				return err
			}
			var dict = p.dict
			if context != "" {
				dict = dict.Sub(context)
			}
			dict.set(o.ID.Flag, v)
			return nil
		}
	}
	return fmt.Errorf("unhandled option %q", name)
}

// ProcessFlags populates the Dict from the command line, with an optional
// YAML config file underneath: defaults < config file < flags. Returns
// pflag.ErrHelp after printing usage when help was requested.
func (p *Parser) ProcessFlags(args []string) error {
	var fs = pflag.NewFlagSet("selfplay", pflag.ContinueOnError)
	fs.SortFlags = false
	var configPath = fs.String("config", "", "path to a YAML configuration file")
	for _, o := range p.options {
		switch o.Kind {
		case KindBool:
			fs.Bool(o.ID.Flag, o.Default.(bool), o.ID.Help)
		case KindInt:
			fs.Int(o.ID.Flag, o.Default.(int), o.ID.Help)
		case KindFloat:
			fs.Float64(o.ID.Flag, o.Default.(float64), o.ID.Help)
		case KindString, KindChoice:
			fs.String(o.ID.Flag, o.Default.(string), o.ID.Help)
		}
	}
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n%s", fs.FlagUsages())
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	var fileValues map[string]any
	if *configPath != "" {
		var err error
		fileValues, err = loadConfigFile(*configPath)
		if err != nil {
			return err
		}
		for key := range fileValues {
			if _, ok := p.byFlag[key]; !ok {
				return fmt.Errorf("config file: unknown option %q", key)
			}
		}
	}

	for _, o := range p.options {
		var raw string
		if fs.Changed(o.ID.Flag) {
			raw = fs.Lookup(o.ID.Flag).Value.String()
		} else if fileValue, ok := fileValues[o.ID.Flag]; ok {
			raw = fmt.Sprint(fileValue)
		} else {
			continue
		}
		v, err := o.Parse(raw)
		if err != nil {
			return err
		}
		p.dict.set(o.ID.Flag, v)
	}
	return nil
}

func loadConfigFile(path string) (map[string]any, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(buf, &values); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return values, nil
}
