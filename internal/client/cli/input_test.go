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
	var out bytes.Buffer
	s, err := GetSimpleText(bufio.NewReader(strings.NewReader("  hello \nnext\n")), "Say", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
	assert.Equal(t, "Say\n> ", out.String())

	s, err = GetSimpleText(bufio.NewReader(strings.NewReader("partial")), "Say", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", s)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "Say", &out)
	require.Error(t, err)
}

func TestGetPassword_Terminal(t *testing.T) {
	origRead, origTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origTerm })
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	var out bytes.Buffer
	pw, err := GetPassword(bufio.NewReader(strings.NewReader("ignored\n")), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(pw))
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	_, err = GetPassword(bufio.NewReader(strings.NewReader("")), "Password", &out)
	require.Error(t, err)
}

func TestGetPassword_PipedInput(t *testing.T) {
	origTerm := isTerminal
	t.Cleanup(func() { isTerminal = origTerm })
	isTerminal = func(int) bool { return false }

	var out bytes.Buffer
	pw, err := GetPassword(bufio.NewReader(strings.NewReader("piped\n")), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "piped", string(pw))
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("one\ntwo\r\n\nafter\n"))
	s, err := GetMultiline(r, "Rules", &out)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo", s)

	rest, _ := r.ReadString('\n')
	assert.Equal(t, "after\n", rest)

	s, err = GetMultiline(bufio.NewReader(strings.NewReader("last")), "Rules", &out)
	require.NoError(t, err)
	assert.Equal(t, "last", s)
}

func TestPromptDefaultAndAmount(t *testing.T) {
	var out bytes.Buffer
	s, err := promptDefault(bufio.NewReader(strings.NewReader("\n")), "Name", "keep", &out)
	require.NoError(t, err)
	assert.Equal(t, "keep", s)
	assert.Contains(t, out.String(), "Name [keep]")

	v, err := promptAmount(bufio.NewReader(strings.NewReader("\n")), "Fee", 7.5, &out)
	require.NoError(t, err)
	assert.Equal(t, 7.5, v)

	v, err = promptAmount(bufio.NewReader(strings.NewReader("12\n")), "Fee", 0, &out)
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)

	_, err = promptAmount(bufio.NewReader(strings.NewReader("-1\n")), "Fee", 0, &out)
	require.Error(t, err)
	_, err = promptAmount(bufio.NewReader(strings.NewReader("ten\n")), "Fee", 0, &out)
	require.Error(t, err)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false} {
		got, err := confirm(bufio.NewReader(strings.NewReader(in)), "Sure?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestParseKV(t *testing.T) {
	kv, err := parseKV([]string{"Type=credit", "search=a=b", "to="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"type": "credit", "search": "a=b", "to": ""}, kv)

	_, err = parseKV([]string{"credit"})
	require.Error(t, err)
	_, err = parseKV([]string{"=x"})
	require.Error(t, err)
}

func TestPageAndIDArgs(t *testing.T) {
	p, err := pageArg(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, p)
	p, err = pageArg([]string{"3"})
	require.NoError(t, err)
	assert.Equal(t, 3, p)
	_, err = pageArg([]string{"0"})
	require.Error(t, err)

	id, err := idArg("ban", []string{"u1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
	_, err = idArg("ban", nil)
	assert.EqualError(t, err, "usage: ban <id>")
}
