package midi

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePort string

func (p fakePort) String() string { return string(p) }

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestSelectPortNoPorts(t *testing.T) {
	var out bytes.Buffer
	_, err := SelectPort([]fakePort{}, "", reader(""), &out)
	require.ErrorIs(t, err, ErrNoPortFound)
}

func TestSelectPortSingleAutoSelects(t *testing.T) {
	var out bytes.Buffer
	p, err := SelectPort([]fakePort{"nanoKEY2"}, "", reader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, fakePort("nanoKEY2"), p)
	assert.Contains(t, out.String(), "Choosing the only available input port: nanoKEY2")
}

func TestSelectPortPrompt(t *testing.T) {
	ports := []fakePort{"Midi Through", "nanoKEY2", "Launchkey MK3"}

	tests := []struct {
		name    string
		input   string
		want    fakePort
		wantErr bool
	}{
		{name: "valid index", input: "1\n", want: "nanoKEY2"},
		{name: "surrounding spaces", input: "  2 \n", want: "Launchkey MK3"},
		{name: "no trailing newline", input: "0", want: "Midi Through"},
		{name: "out of range", input: "3\n", wantErr: true},
		{name: "negative", input: "-1\n", wantErr: true},
		{name: "not a number", input: "two\n", wantErr: true},
		{name: "empty line", input: "\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p, err := SelectPort(ports, "", reader(tt.input), &out)
			assert.Contains(t, out.String(), "1: nanoKEY2")
			assert.Contains(t, out.String(), "Please select input port: ")
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestSelectPortEOF(t *testing.T) {
	var out bytes.Buffer
	_, err := SelectPort([]fakePort{"a", "b"}, "", reader(""), &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSelection)
}

func TestSelectPortPreset(t *testing.T) {
	ports := []fakePort{"Midi Through", "nanoKEY2"}

	var out bytes.Buffer
	p, err := SelectPort(ports, "1", reader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, fakePort("nanoKEY2"), p)
	assert.Empty(t, out.String())

	p, err = SelectPort(ports, "NANOKEY", reader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, fakePort("nanoKEY2"), p)

	_, err = SelectPort(ports, "launchpad", reader(""), &out)
	require.ErrorIs(t, err, ErrInvalidSelection)

	_, err = SelectPort(ports, "5", reader(""), &out)
	require.ErrorIs(t, err, ErrInvalidSelection)
}
