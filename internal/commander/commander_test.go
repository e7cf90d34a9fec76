package commander

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UCLA-Rocket-Project/ccbootload/internal/globals"
)

// mockBootloader answers each written record with the next scripted byte
type mockBootloader struct {
	responses []byte
	writes    []string
	reads     int
	writeErr  error
	readErr   error
}

func (m *mockBootloader) WriteSingleMessage(message []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes = append(m.writes, string(message))
	return nil
}

func (m *mockBootloader) ReadSingleByte() (byte, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if m.reads >= len(m.responses) {
		return 0, errors.New("no scripted response left")
	}
	rc := m.responses[m.reads]
	m.reads++
	return rc, nil
}

const (
	line1 = ":100000000211B6E4F5F0F5820583E5F0F583E4F08B\n"
	line2 = ":0400100075810722C9\r\n"
	line3 = ":00000001FF\n"
)

func TestDescribe(t *testing.T) {
	expected := map[byte]string{
		'0': "OK",
		'1': "Intel HEX Invalid",
		'2': "Bad Checksum",
		'3': "Bad Address",
		'4': "Bad Record Type",
		'5': "Record Too Long",
	}
	for rc, want := range expected {
		got, ok := Describe(rc)
		assert.True(t, ok, "code %q", rc)
		assert.Equal(t, want, got, "code %q", rc)
	}

	for _, rc := range []byte{'6', '9', 'A', 0x00, 0xFF, '\n'} {
		_, ok := Describe(rc)
		assert.False(t, ok, "code %q", rc)
	}
}

func TestDownloadCommand_AllOK(t *testing.T) {
	conn := &mockBootloader{responses: []byte{'0', '0'}}
	var out bytes.Buffer

	ok := DownloadCommand(strings.NewReader(line1+line2), conn, &out)

	require.True(t, ok)
	assert.Equal(t, []string{line1, line2}, conn.writes)
	assert.Equal(t, 2, conn.reads)
	assert.Equal(t, 2, strings.Count(out.String(), "(OK)"))
	assert.NotContains(t, out.String(), "Error Downloading Code!")
}

func TestDownloadCommand_HaltsOnError(t *testing.T) {
	conn := &mockBootloader{responses: []byte{'0', '2', '0'}}
	var out bytes.Buffer

	ok := DownloadCommand(strings.NewReader(line1+line2+line3), conn, &out)

	require.False(t, ok)
	assert.Equal(t, []string{line1, line2}, conn.writes)
	assert.Equal(t, 2, conn.reads)
	assert.Contains(t, out.String(), ":0400100075810722C9 RC = 2 (Bad Checksum)\n")
	assert.Contains(t, out.String(), "Error Downloading Code!")
}

func TestDownloadCommand_EveryCodeHaltsAtN(t *testing.T) {
	lines := []string{line1, line2, line3}
	for n := 1; n <= len(lines); n++ {
		for _, rc := range []byte{'1', '2', '3', '4', '5', '7', 0xFF} {
			responses := bytes.Repeat([]byte{globals.RC_OK}, n-1)
			responses = append(responses, rc)
			conn := &mockBootloader{responses: responses}
			var out bytes.Buffer

			ok := DownloadCommand(strings.NewReader(strings.Join(lines, "")), conn, &out)

			assert.False(t, ok)
			assert.Equal(t, lines[:n], conn.writes)
			assert.Equal(t, n, conn.reads)
		}
	}
}

func TestDownloadCommand_UnknownCode(t *testing.T) {
	conn := &mockBootloader{responses: []byte{'9'}}
	var out bytes.Buffer

	ok := DownloadCommand(strings.NewReader(line1+line2), conn, &out)

	require.False(t, ok)
	assert.Len(t, conn.writes, 1)
	assert.Contains(t, out.String(), "RC = 9 (Unknown Error)")
}

func TestDownloadCommand_NonPrintableCode(t *testing.T) {
	conn := &mockBootloader{responses: []byte{0x00}}
	var out bytes.Buffer

	require.False(t, DownloadCommand(strings.NewReader(line1), conn, &out))
	assert.Contains(t, out.String(), "RC = 0x00 (Unknown Error)")
}

func TestDownloadCommand_LastLineWithoutTerminator(t *testing.T) {
	conn := &mockBootloader{responses: []byte{'0', '0'}}
	var out bytes.Buffer

	require.True(t, DownloadCommand(strings.NewReader(line1+":00000001FF"), conn, &out))
	assert.Equal(t, []string{line1, ":00000001FF"}, conn.writes)
}

func TestDownloadCommand_EmptyInput(t *testing.T) {
	conn := &mockBootloader{}
	var out bytes.Buffer

	require.True(t, DownloadCommand(strings.NewReader(""), conn, &out))
	assert.Empty(t, conn.writes)
	assert.Zero(t, conn.reads)
	assert.Empty(t, out.String())
}

func TestDownloadCommand_TransportErrors(t *testing.T) {
	var out bytes.Buffer
	conn := &mockBootloader{writeErr: errors.New("unplugged")}
	require.False(t, DownloadCommand(strings.NewReader(line1+line2), conn, &out))
	assert.Zero(t, conn.reads)
	assert.Contains(t, out.String(), "Write failed: unplugged")

	out.Reset()
	conn = &mockBootloader{readErr: errors.New("timed out")}
	require.False(t, DownloadCommand(strings.NewReader(line1+line2), conn, &out))
	assert.Equal(t, []string{line1}, conn.writes)
	assert.Contains(t, out.String(), "Read failed: timed out")
}

func TestEraseCommands(t *testing.T) {
	var out bytes.Buffer
	conn := &mockBootloader{responses: []byte{'0', '0'}}

	require.True(t, ResetEraseMapCommand(conn, &out))
	require.True(t, EraseAllCommand(conn, &out))
	assert.Equal(t, []string{globals.RECORD_RESET_ERASE_MAP, globals.RECORD_ERASE_ALL}, conn.writes)
	assert.Contains(t, out.String(), ":00000023DD RC = 0 (OK)")

	out.Reset()
	conn = &mockBootloader{responses: []byte{'4'}}
	require.False(t, EraseAllCommand(conn, &out))
	assert.Contains(t, out.String(), "(Bad Record Type)")
	assert.Contains(t, out.String(), "Could not erase user flash")
}
