package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testBoolID   = ID{Flag: "test-bool", Name: "TestBool", Help: "a bool"}
	testIntID    = ID{Flag: "test-int", Name: "TestInt", Help: "an int"}
	testFloatID  = ID{Flag: "test-float", Name: "TestFloat", Help: "a float"}
	testStringID = ID{Flag: "test-string", Name: "TestString", Help: "a string"}
	testChoiceID = ID{Flag: "test-choice", Name: "TestChoice", Help: "a choice"}
	cliOnlyID    = ID{Flag: "cli-only", Help: "not on the protocol"}
)

func newTestParser() *Parser {
	var p = NewParser()
	p.AddBool(testBoolID, true)
	p.AddInt(testIntID, 0, 100, 42)
	p.AddFloat(testFloatID, -10, 10, 1.5)
	p.AddString(testStringID, "hello")
	p.AddChoice(testChoiceID, []string{"red", "green", "blue"}, "green")
	p.AddString(cliOnlyID, "")
	return p
}

func TestDefaults(t *testing.T) {
	var p = newTestParser()
	var d = p.Dict()
	assert.Equal(t, true, d.GetBool(testBoolID))
	assert.Equal(t, 42, d.GetInt(testIntID))
	assert.Equal(t, 1.5, d.GetFloat(testFloatID))
	assert.Equal(t, "hello", d.GetString(testStringID))
	assert.Equal(t, "green", d.GetString(testChoiceID))
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	var p = newTestParser()
	assert.Panics(t, func() { p.AddInt(testIntID, 0, 1, 0) })
	// Same protocol name under a different flag is also a clash.
	assert.Panics(t, func() {
		p.AddInt(ID{Flag: "test-int-2", Name: "TestInt"}, 0, 1, 0)
	})
}

func TestUnregisteredReadPanics(t *testing.T) {
	var d = NewDict()
	assert.Panics(t, func() { d.GetBool(testBoolID) })
}

func TestListOptionsUci(t *testing.T) {
	var p = newTestParser()
	var lines = p.ListOptionsUci()
	require.Len(t, lines, 5) // cli-only is not listed
	assert.Equal(t, "option name TestBool type check default true", lines[0])
	assert.Equal(t, "option name TestInt type spin default 42 min 0 max 100", lines[1])
	assert.Equal(t, "option name TestFloat type string default 1.5", lines[2])
	assert.Equal(t, "option name TestString type string default hello", lines[3])
	assert.Equal(t, "option name TestChoice type combo default green var red var green var blue", lines[4])
}

func TestHideOption(t *testing.T) {
	var p = newTestParser()
	p.HideOption(testBoolID)
	for _, line := range p.ListOptionsUci() {
		assert.NotContains(t, line, "TestBool")
	}
	// Hidden options keep their value.
	assert.Equal(t, true, p.Dict().GetBool(testBoolID))
}

func TestSetUciOption(t *testing.T) {
	t.Run("CaseInsensitiveName", func(t *testing.T) {
		var p = newTestParser()
		require.NoError(t, p.SetUciOption("testint", "7", ""))
		assert.Equal(t, 7, p.Dict().GetInt(testIntID))
	})
	t.Run("OutOfRange", func(t *testing.T) {
		var p = newTestParser()
		assert.Error(t, p.SetUciOption("TestInt", "1000", ""))
		assert.Equal(t, 42, p.Dict().GetInt(testIntID))
	})
	t.Run("BadValue", func(t *testing.T) {
		var p = newTestParser()
		assert.Error(t, p.SetUciOption("TestBool", "banana", ""))
		assert.Error(t, p.SetUciOption("TestChoice", "purple", ""))
	})
	t.Run("UnknownName", func(t *testing.T) {
		var p = newTestParser()
		assert.Error(t, p.SetUciOption("NoSuchOption", "1", ""))
	})
	t.Run("Context", func(t *testing.T) {
		var p = newTestParser()
		require.NoError(t, p.SetUciOption("TestFloat", "2.5", "player1"))
		assert.Equal(t, 2.5, p.Dict().Sub("player1").GetFloat(testFloatID))
		// The root value is untouched; player2 falls back to it.
		assert.Equal(t, 1.5, p.Dict().GetFloat(testFloatID))
		assert.Equal(t, 1.5, p.Dict().Sub("player2").GetFloat(testFloatID))
	})
}

func TestProcessFlags(t *testing.T) {
	var p = newTestParser()
	var err = p.ProcessFlags([]string{
		"--test-bool=false", "--test-int", "13", "--test-float", "-2.25",
		"--test-choice", "blue",
	})
	require.NoError(t, err)
	var d = p.Dict()
	assert.Equal(t, false, d.GetBool(testBoolID))
	assert.Equal(t, 13, d.GetInt(testIntID))
	assert.Equal(t, -2.25, d.GetFloat(testFloatID))
	assert.Equal(t, "blue", d.GetString(testChoiceID))
	// Untouched options keep their defaults.
	assert.Equal(t, "hello", d.GetString(testStringID))
}

func TestProcessFlagsErrors(t *testing.T) {
	assert.Error(t, newTestParser().ProcessFlags([]string{"--no-such-flag"}))
	assert.Error(t, newTestParser().ProcessFlags([]string{"--test-int", "500"}))
	assert.Error(t, newTestParser().ProcessFlags([]string{"--test-choice", "purple"}))
}

func TestConfigFile(t *testing.T) {
	var writeConfig = func(t *testing.T, body string) string {
		var path = filepath.Join(t.TempDir(), "selfplay.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	t.Run("FileBelowFlags", func(t *testing.T) {
		var p = newTestParser()
		var path = writeConfig(t, "test-int: 7\ntest-float: 3.5\ntest-bool: false\n")
		require.NoError(t, p.ProcessFlags([]string{"--config", path, "--test-int", "9"}))
		var d = p.Dict()
		assert.Equal(t, 9, d.GetInt(testIntID), "flag wins over config file")
		assert.Equal(t, 3.5, d.GetFloat(testFloatID))
		assert.Equal(t, false, d.GetBool(testBoolID))
	})
	t.Run("UnknownKey", func(t *testing.T) {
		var p = newTestParser()
		var path = writeConfig(t, "no-such-option: 1\n")
		assert.Error(t, p.ProcessFlags([]string{"--config", path}))
	})
	t.Run("OutOfRangeValue", func(t *testing.T) {
		var p = newTestParser()
		var path = writeConfig(t, "test-int: 500\n")
		assert.Error(t, p.ProcessFlags([]string{"--config", path}))
	})
	t.Run("MissingFile", func(t *testing.T) {
		var p = newTestParser()
		assert.Error(t, p.ProcessFlags([]string{"--config", "/does/not/exist.yaml"}))
	})
}
