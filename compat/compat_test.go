package compat

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asynclog/asynclog"
)

var recordLine = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\]\[[^\]]+\]\[([A-Z ]{5})\]\[([^\]]+)\]\[([^\]]+)\]\t(.*)$`)

type parsedRecord struct {
	level   string
	logger  string
	source  string
	payload string
}

// createTestCompatBuilder builds a file-backed logger under t.TempDir and a
// compat.Builder wrapping it, mirroring how a gnet/fasthttp server would
// share one asynclog.Logger across its internal diagnostics.
func createTestCompatBuilder(t *testing.T) (*Builder, *asynclog.Logger, string) {
	t.Helper()
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "compat.log")

	appLogger, err := asynclog.NewBuilder("compat-test").
		WithFile(logPath, asynclog.FlushSync).
		Build()
	require.NoError(t, err)

	builder := NewBuilder().WithLogger(appLogger)
	return builder, appLogger, logPath
}

// readLogRecords shuts the logger down (which drains the worker and closes
// its sinks synchronously) and parses every line of the resulting file.
func readLogRecords(t *testing.T, logger *asynclog.Logger, path string) []parsedRecord {
	t.Helper()
	require.NoError(t, logger.Shutdown())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []parsedRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		m := recordLine.FindStringSubmatch(line)
		require.NotNil(t, m, "line does not match record format: %q", line)
		records = append(records, parsedRecord{
			level:   m[1],
			logger:  m[2],
			source:  m[3],
			payload: m[4],
		})
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestCompatBuilder(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		builder, logger, path := createTestCompatBuilder(t)

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.NotNil(t, gnetAdapter)
		assert.Same(t, logger, gnetAdapter.logger)

		require.NoError(t, logger.Shutdown())
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("without existing logger builds a default one", func(t *testing.T) {
		builder := NewBuilder()
		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.NotNil(t, fasthttpAdapter)

		logger, err := builder.GetLogger()
		require.NoError(t, err)
		require.NoError(t, logger.Shutdown())
	})
}

func TestGnetAdapter(t *testing.T) {
	builder, logger, path := createTestCompatBuilder(t)

	var fatalCalled bool
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalCalled = true
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	records := readLogRecords(t, logger, path)
	require.Len(t, records, 5)

	expected := []struct{ level, msg string }{
		{"DEBUG", "gnet debug id=1"},
		{"INFO ", "gnet info id=2"},
		{"WARN ", "gnet warn id=3"},
		{"ERROR", "gnet error id=4"},
		{"ERROR", "gnet fatal id=5"},
	}
	for i, rec := range records {
		assert.Equal(t, expected[i].level, rec.level)
		assert.Equal(t, expected[i].msg, rec.payload)
		assert.Equal(t, "compat-test", rec.logger)
		assert.Equal(t, "gnet:0", rec.source)
	}
	assert.True(t, fatalCalled, "custom fatal handler should have been called")
}

func TestGnetAdapter_BuildInstallsDefaultFatalHandler(t *testing.T) {
	builder, logger, _ := createTestCompatBuilder(t)
	defer logger.Shutdown()

	adapter, err := builder.BuildGnet()
	require.NoError(t, err)
	assert.NotNil(t, adapter)
	assert.NotNil(t, adapter.fatalHandler)
}

func TestFastHTTPAdapter(t *testing.T) {
	builder, logger, path := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}

	records := readLogRecords(t, logger, path)
	require.Len(t, records, 4)

	expectedLevels := []string{"INFO ", "DEBUG", "WARN ", "ERROR"}
	for i, rec := range records {
		assert.Equal(t, expectedLevels[i], rec.level)
		assert.Equal(t, testMessages[i], rec.payload)
		assert.Equal(t, "fasthttp:0", rec.source)
	}
}

func TestFastHTTPAdapter_InfoWhenNoKeywordMatches(t *testing.T) {
	builder, logger, path := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	adapter.Printf("routine request handled")

	records := readLogRecords(t, logger, path)
	require.Len(t, records, 1)
	assert.Equal(t, "INFO ", records[0].level)
}

func TestDetectLogLevel(t *testing.T) {
	cases := map[string]string{
		"request failed with status 500": "ERROR",
		"deprecated option in use":        "WARN ",
		"trace: entering handler":         "DEBUG",
		"accepted connection":             "INFO ",
	}
	for msg, want := range cases {
		got := DetectLogLevel(msg).String()
		assert.Equal(t, want, got, "message: %q", msg)
	}
}
