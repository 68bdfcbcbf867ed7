package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wifivet/wifivet/pkg/event"
)

func TestParseTSVQuotedRows(t *testing.T) {
	out := "frame.number\tframe.time_epoch\twlan.sa\n" +
		"\"1\"\t\"1700000000.123456789\"\t\"aa:bb:cc:dd:ee:ff\"\n" +
		"\"2\"\t\"1700000001.000000000\"\t\"\"\n"

	rows := parseTSV(out)
	require.Len(t, rows, 2)

	assert.Equal(t, "1", rows[0][event.FieldFrameNumber])
	assert.Equal(t, "1700000000.123456789", rows[0][event.FieldTimeEpoch])
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", rows[0][event.FieldSourceAddr])

	assert.Equal(t, "2", rows[1][event.FieldFrameNumber])
	assert.Equal(t, "", rows[1][event.FieldSourceAddr], "quoted empty value stays absent")
}

func TestParseTSVShortRowsTolerated(t *testing.T) {
	out := "frame.number\twlan.sa\twlan.da\n" +
		"\"7\"\t\"aa:bb:cc:dd:ee:ff\"\n"

	rows := parseTSV(out)
	require.Len(t, rows, 1)

	assert.Equal(t, "7", rows[0][event.FieldFrameNumber])
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", rows[0][event.FieldSourceAddr])
	assert.Equal(t, "", rows[0][event.FieldDestAddr])
}

func TestParseTSVCarriageReturns(t *testing.T) {
	out := "frame.number\twlan.sa\r\n\"3\"\t\"11:22:33:44:55:66\"\r\n"

	rows := parseTSV(out)
	require.Len(t, rows, 1)
	assert.Equal(t, "3", rows[0][event.FieldFrameNumber])
	assert.Equal(t, "11:22:33:44:55:66", rows[0][event.FieldSourceAddr])
}

func TestParseTSVEmptyOutput(t *testing.T) {
	assert.Nil(t, parseTSV(""))
	assert.Nil(t, parseTSV("\n"))
}

func TestParseTSVHeaderOnly(t *testing.T) {
	assert.Empty(t, parseTSV("frame.number\twlan.sa\n"))
}

func TestParseTSVSkipsBlankLines(t *testing.T) {
	out := "frame.number\n\"1\"\n\n\"2\"\n"
	rows := parseTSV(out)
	require.Len(t, rows, 2)
}

func TestTSharkBackendName(t *testing.T) {
	assert.Equal(t, "tshark", (&TSharkBackend{}).Name())
}

func TestResolveNewestPicksLastSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"assoc-20240101.pcap",
		"assoc-20240301.pcap",
		"assoc-20240201.pcap",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	got, err := ResolveNewest(filepath.Join(dir, "assoc-*.pcap"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "assoc-20240301.pcap"), got)
}

func TestResolveNewestSingleMatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.pcapng")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	got, err := ResolveNewest(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolveNewestNoMatch(t *testing.T) {
	_, err := ResolveNewest(filepath.Join(t.TempDir(), "*.pcap"))
	assert.Error(t, err)
}

func TestResolveNewestBadPattern(t *testing.T) {
	_, err := ResolveNewest("[")
	assert.Error(t, err)
}
