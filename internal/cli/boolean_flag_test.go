package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func TestRegisterBooleanFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var target bool
	registerBooleanFlag(flagSet, &target, "summary", true, "usage")

	if !target {
		t.Fatalf("registration must apply the default")
	}
	registered := flagSet.Lookup("summary")
	if registered == nil {
		t.Fatalf("flag not registered")
	}
	if registered.DefValue != "true" || registered.NoOptDefVal != "true" {
		t.Fatalf("unexpected flag metadata: DefValue=%q NoOptDefVal=%q", registered.DefValue, registered.NoOptDefVal)
	}

	if parseError := flagSet.Parse([]string{"--summary=no"}); parseError != nil {
		t.Fatalf("parse error: %v", parseError)
	}
	if target {
		t.Fatalf("literal no must disable the flag")
	}

	invalidSet := pflag.NewFlagSet("invalid", pflag.ContinueOnError)
	var other bool
	registerBooleanFlag(invalidSet, &other, "tokens", false, "usage")
	if parseError := invalidSet.Parse([]string{"--tokens=sometimes"}); parseError == nil {
		t.Fatalf("expected an error for an unknown literal")
	}
}

func TestNormalizeBooleanFlagArguments(t *testing.T) {
	rootCommand := createRootCommand(zap.NewNop(), &recordingCopier{})

	testCases := []struct {
		testName string
		input    []string
		expected []string
	}{
		{
			testName: "space separated literal becomes assignment",
			input:    []string{"snap", "--summary", "false", "--path", "x"},
			expected: []string{"snap", "--summary=false", "--path", "x"},
		},
		{
			testName: "bare flag before another flag stays bare",
			input:    []string{"snap", "--summary", "--tokens", "yes"},
			expected: []string{"snap", "--summary", "--tokens=yes"},
		},
		{
			testName: "string flag values pass through",
			input:    []string{"snap", "--output", "false"},
			expected: []string{"snap", "--output", "false"},
		},
		{
			testName: "native boolean flags join in",
			input:    []string{"snap", "--force", "true"},
			expected: []string{"snap", "--force=true"},
		},
		{
			testName: "double dash ends rewriting",
			input:    []string{"snap", "--", "--summary", "false"},
			expected: []string{"snap", "--", "--summary", "false"},
		},
		{
			testName: "non literal value stays positional",
			input:    []string{"snap", "--summary", "extra"},
			expected: []string{"snap", "--summary", "extra"},
		},
	}

	for caseIndex, testCase := range testCases {
		normalized := normalizeBooleanFlagArguments(rootCommand, testCase.input)
		if !reflect.DeepEqual(normalized, testCase.expected) {
			t.Fatalf("case %d (%s): got %v, want %v", caseIndex, testCase.testName, normalized, testCase.expected)
		}
	}
}
