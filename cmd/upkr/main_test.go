package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackCommands(t *testing.T) {
	r := require.New(t)

	dir := t.TempDir()
	payload := []byte(strings.Repeat("command line round trip. ", 50))

	in := filepath.Join(dir, "payload.bin")
	r.NoError(os.WriteFile(in, payload, 0o644))

	r.NoError(app.Run([]string{"upkr", "pack", "-q", "-l", "4", in}))

	packed, err := os.ReadFile(in + ".upk")
	r.NoError(err)
	r.Less(len(packed), len(payload))

	// Default unpack target is the packed name without its extension.
	r.NoError(os.Remove(in))
	r.NoError(app.Run([]string{"upkr", "unpack", "-q", in + ".upk"}))

	got, err := os.ReadFile(in)
	r.NoError(err)
	r.Equal(payload, got)
}

func TestPackRefusesToOverwrite(t *testing.T) {
	r := require.New(t)

	dir := t.TempDir()

	in := filepath.Join(dir, "data")
	r.NoError(os.WriteFile(in, []byte("hello hello hello"), 0o644))

	r.NoError(app.Run([]string{"upkr", "pack", "-q", in}))

	err := app.Run([]string{"upkr", "pack", "-q", in})
	r.ErrorContains(err, "already exists")

	r.NoError(app.Run([]string{"upkr", "pack", "-q", "-f", in}))
}

func TestRawStreamCommands(t *testing.T) {
	r := require.New(t)

	dir := t.TempDir()
	payload := []byte(strings.Repeat("raw stream, no header. ", 20))

	in := filepath.Join(dir, "raw.bin")
	r.NoError(os.WriteFile(in, payload, 0o644))

	rawPath := filepath.Join(dir, "raw.upk")
	outPath := filepath.Join(dir, "raw.out")

	r.NoError(app.Run([]string{"upkr", "pack", "-q", "--raw", "-o", rawPath, in}))

	r.NoError(app.Run([]string{
		"upkr", "unpack", "-q", "--raw",
		"-n", strconv.Itoa(len(payload)),
		"-o", outPath,
		rawPath,
	}))

	got, err := os.ReadFile(outPath)
	r.NoError(err)
	r.Equal(payload, got)
}

func TestCommandArguments(t *testing.T) {
	r := require.New(t)

	dir := t.TempDir()

	in := filepath.Join(dir, "args.bin")
	r.NoError(os.WriteFile(in, []byte("argument validation payload"), 0o644))

	other := filepath.Join(dir, "other.bin")
	r.NoError(os.WriteFile(other, []byte("second input"), 0o644))

	testCases := []struct {
		name string

		args []string

		checkErr func(err error, msgAndArgs ...interface{})
	}{
		{
			name:     "pack_no_inputs",
			args:     []string{"upkr", "pack", "-q"},
			checkErr: r.Error,
		},
		{
			name:     "pack_level_out_of_range",
			args:     []string{"upkr", "pack", "-q", "-f", "-l", "99", in},
			checkErr: r.Error,
		},
		{
			name:     "pack_missing_input",
			args:     []string{"upkr", "pack", "-q", filepath.Join(dir, "nope")},
			checkErr: r.Error,
		},
		{
			name:     "pack_output_with_multiple_inputs",
			args:     []string{"upkr", "pack", "-q", "-o", filepath.Join(dir, "x"), in, other},
			checkErr: r.Error,
		},
		{
			name:     "pack_ok",
			args:     []string{"upkr", "pack", "-q", "-f", "-l", "9", in},
			checkErr: r.NoError,
		},
		{
			name:     "unpack_no_inputs",
			args:     []string{"upkr", "unpack", "-q"},
			checkErr: r.Error,
		},
		{
			name:     "unpack_not_a_frame",
			args:     []string{"upkr", "unpack", "-q", "-f", in},
			checkErr: r.Error,
		},
		{
			name:     "unpack_ok",
			args:     []string{"upkr", "unpack", "-q", "-f", in + ".upk"},
			checkErr: r.NoError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.checkErr(app.Run(tc.args))
		})
	}
}

func TestInfoCommand(t *testing.T) {
	r := require.New(t)

	dir := t.TempDir()

	in := filepath.Join(dir, "data")
	r.NoError(os.WriteFile(in, []byte("inspect my header"), 0o644))

	r.NoError(app.Run([]string{"upkr", "pack", "-q", in}))
	r.NoError(app.Run([]string{"upkr", "info", in + ".upk"}))

	// Raw streams have no header for info to read.
	err := app.Run([]string{"upkr", "info", in})
	r.Error(err)
}
