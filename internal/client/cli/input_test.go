package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Name?")
}

func TestGetSimpleTextEOFWithPartialLine(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestGetTextDefault(t *testing.T) {
	var out bytes.Buffer

	in := bufio.NewReader(strings.NewReader("\n"))
	got, err := GetTextDefault(in, "Size", "256", &out)
	require.NoError(t, err)
	assert.Equal(t, "256", got)
	assert.Contains(t, out.String(), "[256]")

	in = bufio.NewReader(strings.NewReader("512\n"))
	got, err = GetTextDefault(in, "Size", "256", &out)
	require.NoError(t, err)
	assert.Equal(t, "512", got)
}

func TestGetYesNo(t *testing.T) {
	var out bytes.Buffer
	cases := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"yes\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"whatever\n", true, false},
	}
	for _, tc := range cases {
		in := bufio.NewReader(strings.NewReader(tc.input))
		got, err := GetYesNo(in, "Sure?", tc.def, &out)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q def %v", tc.input, tc.def)
	}
}

func TestGetPasswordError(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	assert.Error(t, err)
}

func TestGetPasswordStubbed(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("secret1"), nil
	}
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret1"), pw)
	assert.Contains(t, out.String(), "Enter password")
}
