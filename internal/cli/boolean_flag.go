package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Boolean flags such as --summary default to a value and accept an optional
// literal, so `--summary`, `--summary=false`, and `--summary false` all work.

const booleanFlagTypeName = "bool"

var booleanLiteralValues = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

type optionalBooleanValue struct {
	target   *bool
	flagName string
}

func (value *optionalBooleanValue) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		*value.target = true
		return nil
	}
	parsed, known := booleanLiteralValues[normalized]
	if !known {
		return fmt.Errorf("invalid boolean value %q for --%s", input, value.flagName)
	}
	*value.target = parsed
	return nil
}

func (value *optionalBooleanValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *optionalBooleanValue) Type() string { return booleanFlagTypeName }

// registerBooleanFlag wires an optional-value boolean flag with the given
// default onto the flag set.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&optionalBooleanValue{target: target, flagName: name}, name, usage)
	if registered := flagSet.Lookup(name); registered != nil {
		registered.DefValue = strconv.FormatBool(defaultValue)
		registered.NoOptDefVal = strconv.FormatBool(true)
	}
}

// normalizeBooleanFlagArguments rewrites `--flag value` into `--flag=value`
// for the boolean flags of the command tree. pflag treats a flag carrying
// NoOptDefVal as valueless and would otherwise read the literal as a
// positional argument.
func normalizeBooleanFlagArguments(rootCommand *cobra.Command, arguments []string) []string {
	booleanFlagNames := map[string]struct{}{}
	collectBooleanFlagNames(rootCommand, booleanFlagNames)
	if len(booleanFlagNames) == 0 || len(arguments) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if strings.HasPrefix(currentArgument, "--") && !strings.Contains(currentArgument, "=") {
			flagName := strings.TrimPrefix(currentArgument, "--")
			if _, isBooleanFlag := booleanFlagNames[flagName]; isBooleanFlag && index+1 < len(arguments) {
				literal := strings.ToLower(strings.TrimSpace(arguments[index+1]))
				if _, isLiteral := booleanLiteralValues[literal]; isLiteral {
					normalized = append(normalized, currentArgument+"="+arguments[index+1])
					index++
					continue
				}
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, names map[string]struct{}) {
	gather := func(flagSet *pflag.FlagSet) {
		flagSet.VisitAll(func(registeredFlag *pflag.Flag) {
			if registeredFlag.Value != nil && registeredFlag.Value.Type() == booleanFlagTypeName {
				names[registeredFlag.Name] = struct{}{}
			}
		})
	}
	gather(command.PersistentFlags())
	gather(command.Flags())
	for _, childCommand := range command.Commands() {
		collectBooleanFlagNames(childCommand, names)
	}
}
