package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendLogWritesOneLinePerAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	log, err := Open(path, false)
	require.NoError(t, err)
	defer log.Close()

	require.NoError(t, log.Append([]byte(`{"a":1}`)))
	require.NoError(t, log.Append([]byte(`{"b":2}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", string(data))
}

func TestAppendLogCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "log.jsonl")
	log, err := Open(path, false)
	require.NoError(t, err)
	defer log.Close()

	require.NoError(t, log.Append([]byte("x")))
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestAppendLogNeverTruncatesAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")

	log, err := Open(path, false)
	require.NoError(t, err)
	require.NoError(t, log.Append([]byte("first")))
	require.NoError(t, log.Close())

	log, err = Open(path, true)
	require.NoError(t, err)
	require.NoError(t, log.Append([]byte("second")))
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestAppendLogConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	log, err := Open(path, false)
	require.NoError(t, err)
	defer log.Close()

	const writers = 16
	const linesPerWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < linesPerWriter; i++ {
				line := fmt.Sprintf(`{"writer":%d,"seq":%d}`, w, i)
				if err := log.Append([]byte(line)); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	scanner := bufio.NewScanner(file)
	count := 0
	for scanner.Scan() {
		line := scanner.Text()
		require.True(t, strings.HasPrefix(line, `{"writer":`), "corrupt line: %q", line)
		require.True(t, strings.HasSuffix(line, "}"), "truncated line: %q", line)
		count++
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, writers*linesPerWriter, count)
}

func TestAppendAfterCloseFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	log, err := Open(path, false)
	require.NoError(t, err)
	require.NoError(t, log.Close())

	assert.Error(t, log.Append([]byte("late")))
}
