package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// OptionType defines the type of value an option expects
type OptionType int

const (
	OptionTypeBool OptionType = iota
	OptionTypeString
	OptionTypeInt
	OptionTypeList // repeatable string option, values accumulate
)

// OptionDef defines a command-line option
type OptionDef struct {
	Long        string
	Short       string
	Type        OptionType
	Description string
	Default     string
}

// ParsedOptions holds the parsed command-line options
type ParsedOptions struct {
	values        map[string]string
	lists         map[string][]string
	args          []string
	defs          map[string]*OptionDef
	shortMap      map[string]string // short option -> long option
	explicitlySet map[string]bool
}

// NewParsedOptions creates a new options parser
func NewParsedOptions() *ParsedOptions {
	return &ParsedOptions{
		values:        make(map[string]string),
		lists:         make(map[string][]string),
		defs:          make(map[string]*OptionDef),
		shortMap:      make(map[string]string),
		explicitlySet: make(map[string]bool),
	}
}

// DefineOption defines a command-line option
func (p *ParsedOptions) DefineOption(long, short string, optType OptionType, defaultValue, description string) {
	p.defs[long] = &OptionDef{
		Long:        long,
		Short:       short,
		Type:        optType,
		Description: description,
		Default:     defaultValue,
	}
	if short != "" {
		p.shortMap[short] = long
	}
	if defaultValue != "" && optType != OptionTypeList {
		p.values[long] = defaultValue
	}
}

// Parse parses command-line arguments
func (p *ParsedOptions) Parse(args []string) error {
	consumed := make([]bool, len(args))

	for i := 0; i < len(args); i++ {
		if consumed[i] {
			continue
		}

		arg := args[i]
		switch {
		case strings.HasPrefix(arg, "--"):
			consumed[i] = true
			if err := p.parseLongOption(arg); err != nil {
				return err
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			consumed[i] = true
			if err := p.parseShortOptions(arg, args, i, consumed); err != nil {
				return err
			}
		}
	}

	for i := 0; i < len(args); i++ {
		if !consumed[i] {
			p.args = append(p.args, args[i])
		}
	}

	return nil
}

// parseLongOption parses --option or --option=value
func (p *ParsedOptions) parseLongOption(arg string) error {
	optName := strings.TrimPrefix(arg, "--")
	optValue, hasValue := "", false
	if eq := strings.Index(optName, "="); eq != -1 {
		optName, optValue, hasValue = optName[:eq], optName[eq+1:], true
	}

	def, exists := p.defs[optName]
	if !exists {
		return fmt.Errorf("unknown option: --%s", optName)
	}

	if def.Type == OptionTypeBool {
		if !hasValue {
			return p.set(optName, "true")
		}
		switch optValue {
		case "true", "1":
			return p.set(optName, "true")
		case "false", "0":
			return p.set(optName, "false")
		default:
			return fmt.Errorf("invalid boolean value for --%s: %s", optName, optValue)
		}
	}

	if !hasValue || optValue == "" {
		return fmt.Errorf("option --%s requires a value (use --%s=value)", optName, optName)
	}
	if def.Type == OptionTypeInt {
		if _, err := strconv.Atoi(optValue); err != nil {
			return fmt.Errorf("invalid integer value for --%s: %s", optName, optValue)
		}
	}
	return p.set(optName, optValue)
}

// parseShortOptions parses -o or -abc. A repeated int option counts its
// repetitions (-vvv = 3).
func (p *ParsedOptions) parseShortOptions(arg string, args []string, idx int, consumed []bool) error {
	counts := make(map[string]int)
	var order []string
	for _, r := range strings.TrimPrefix(arg, "-") {
		short := string(r)
		if _, exists := p.shortMap[short]; !exists {
			return fmt.Errorf("unknown option: -%s", short)
		}
		if counts[short] == 0 {
			order = append(order, short)
		}
		counts[short]++
	}

	for _, short := range order {
		long := p.shortMap[short]
		switch p.defs[long].Type {
		case OptionTypeBool:
			p.set(long, "true")
		case OptionTypeInt:
			switch {
			case counts[short] > 1:
				p.set(long, strconv.Itoa(counts[short]))
			default:
				value := p.takeNextArg(args, idx, consumed, true)
				if value == "" {
					value = "1"
				}
				p.set(long, value)
			}
		case OptionTypeString, OptionTypeList:
			value := p.takeNextArg(args, idx, consumed, false)
			if value == "" {
				return fmt.Errorf("option -%s requires a value", short)
			}
			p.set(long, value)
		}
	}

	return nil
}

// takeNextArg consumes the next unconsumed non-option argument after idx.
// With intOnly set, only an integer argument is taken.
func (p *ParsedOptions) takeNextArg(args []string, idx int, consumed []bool, intOnly bool) string {
	for i := idx + 1; i < len(args); i++ {
		if consumed[i] || strings.HasPrefix(args[i], "-") {
			continue
		}
		if intOnly {
			if _, err := strconv.Atoi(args[i]); err != nil {
				return ""
			}
		}
		consumed[i] = true
		return args[i]
	}
	return ""
}

func (p *ParsedOptions) set(option, value string) error {
	if p.defs[option].Type == OptionTypeList {
		p.lists[option] = append(p.lists[option], value)
	} else {
		p.values[option] = value
	}
	p.explicitlySet[option] = true
	return nil
}

// GetString returns a string option value
func (p *ParsedOptions) GetString(option string) string {
	return p.values[option]
}

// GetInt returns an integer option value
func (p *ParsedOptions) GetInt(option string) int {
	if intVal, err := strconv.Atoi(p.values[option]); err == nil {
		return intVal
	}
	return 0
}

// GetBool returns a boolean option value
func (p *ParsedOptions) GetBool(option string) bool {
	return p.values[option] == "true"
}

// GetList returns every value given for a repeatable option
func (p *ParsedOptions) GetList(option string) []string {
	return p.lists[option]
}

// IsSet returns true if an option was explicitly set
func (p *ParsedOptions) IsSet(option string) bool {
	return p.explicitlySet[option]
}

// GetArgs returns non-option arguments
func (p *ParsedOptions) GetArgs() []string {
	return p.args
}

// WriteUsage writes the option table, sorted by long name
func (p *ParsedOptions) WriteUsage(w io.Writer) {
	names := make([]string, 0, len(p.defs))
	for name := range p.defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := p.defs[name]
		var shortOpt string
		if def.Short != "" {
			shortOpt = fmt.Sprintf("-%s, ", def.Short)
		}

		var valueDesc string
		switch def.Type {
		case OptionTypeString, OptionTypeList:
			valueDesc = "=VALUE"
		case OptionTypeInt:
			valueDesc = "=N"
		}

		fmt.Fprintf(w, "  %s--%s%s\n", shortOpt, def.Long, valueDesc)
		fmt.Fprintf(w, "        %s\n", def.Description)
	}
}
