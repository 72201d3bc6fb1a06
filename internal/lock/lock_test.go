package lock

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/healthdigest/internal/config"
	hderrors "github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLockConfig() config.LockConfig {
	return config.LockConfig{
		Enabled: true,
		Timeout: 200 * time.Millisecond,
		Stale:   10 * time.Minute,
	}
}

func fastRetry(t *testing.T) {
	t.Helper()
	orig := retryInterval
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() { retryInterval = orig })
}

// plantLock creates a lock directory held by someone else.
func plantLock(t *testing.T, target string, info *LockInfo) {
	t.Helper()
	require.NoError(t, os.MkdirAll(Dir(target), 0o755))
	data, err := json.Marshal(info)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(Dir(target), infoName), data, 0o644))
}

func TestLockInfo_NewLockInfo(t *testing.T) {
	info := NewLockInfo("record")

	if info.User == "" {
		t.Error("Expected User to be set")
	}
	if info.Hostname == "" {
		t.Error("Expected Hostname to be set")
	}
	if info.PID == 0 {
		t.Error("Expected PID to be non-zero")
	}
	if time.Since(info.Started) > time.Second {
		t.Error("Expected Started to be within the last second")
	}
	assert.Equal(t, "record", info.Command)
}

func TestLockInfo_Age(t *testing.T) {
	info := &LockInfo{Started: time.Now().Add(-5 * time.Minute)}

	age := info.Age()
	if age < 5*time.Minute-time.Second || age > 5*time.Minute+time.Second {
		t.Errorf("Expected age around 5 minutes, got %v", age)
	}
}

func TestLockInfo_RoundTrip(t *testing.T) {
	original := &LockInfo{
		User:     "ops",
		Hostname: "monitor-1",
		Started:  time.Date(2024, 1, 5, 6, 30, 0, 0, time.UTC),
		PID:      4242,
		Command:  "record",
	}

	data, err := original.Marshal()
	require.NoError(t, err)

	parsed, err := ParseLockInfo(data)
	require.NoError(t, err)
	assert.Equal(t, original.User, parsed.User)
	assert.Equal(t, original.PID, parsed.PID)
	assert.True(t, original.Started.Equal(parsed.Started))

	_, err = ParseLockInfo([]byte("not json"))
	assert.Error(t, err)
}

func TestLockInfo_String(t *testing.T) {
	tests := []struct {
		name string
		info LockInfo
		want string
	}{
		{
			name: "with command",
			info: LockInfo{User: "ops", Hostname: "monitor-1", PID: 4242, Command: "record"},
			want: "ops@monitor-1 (pid 4242) running record",
		},
		{
			name: "without command",
			info: LockInfo{User: "ops", Hostname: "monitor-1", PID: 7},
			want: "ops@monitor-1 (pid 7)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestAcquireRelease(t *testing.T) {
	target := filepath.Join(t.TempDir(), "results", "node_2401.csv")

	l, err := Acquire(target, testLockConfig(), "record")
	require.NoError(t, err)
	assert.Equal(t, target+".lock", l.Dir)
	assert.DirExists(t, l.Dir)
	assert.FileExists(t, filepath.Join(l.Dir, infoName))
	assert.Contains(t, Holder(l.Dir), "running record")

	require.NoError(t, l.Release())
	assert.NoDirExists(t, l.Dir)

	// A second release is harmless.
	assert.NoError(t, l.Release())
}

func TestRelease_NilLock(t *testing.T) {
	var l *Lock
	assert.NoError(t, l.Release())
}

func TestTryAcquire_Held(t *testing.T) {
	target := filepath.Join(t.TempDir(), "node_2401.csv")

	first, err := TryAcquire(target, testLockConfig(), "record")
	require.NoError(t, err)
	defer first.Release()

	_, err = TryAcquire(target, testLockConfig(), "record")
	assert.True(t, errors.Is(err, ErrLocked), "want ErrLocked, got %v", err)
}

func TestAcquire_TimesOut(t *testing.T) {
	fastRetry(t)
	target := filepath.Join(t.TempDir(), "node_2401.csv")
	plantLock(t, target, &LockInfo{User: "ops", Hostname: "monitor-2", PID: 99, Started: time.Now()})

	start := time.Now()
	_, err := Acquire(target, testLockConfig(), "record")
	require.Error(t, err)
	assert.True(t, hderrors.IsCode(err, hderrors.ErrLock))
	assert.Contains(t, err.Error(), "Timed out waiting for lock")
	assert.Contains(t, err.Error(), "ops@monitor-2 (pid 99)")
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

func TestAcquire_RemovesStaleLock(t *testing.T) {
	target := filepath.Join(t.TempDir(), "node_2401.csv")
	plantLock(t, target, &LockInfo{User: "ops", Hostname: "gone", PID: 1, Started: time.Now().Add(-time.Hour)})

	l, err := Acquire(target, testLockConfig(), "record")
	require.NoError(t, err)
	defer l.Release()
	assert.NotContains(t, Holder(l.Dir), "gone")
}

func TestAcquire_UnreadableInfoIsNotStale(t *testing.T) {
	fastRetry(t)
	target := filepath.Join(t.TempDir(), "node_2401.csv")
	require.NoError(t, os.MkdirAll(Dir(target), 0o755))

	_, err := Acquire(target, testLockConfig(), "record")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lock held by: unknown")
}

func TestAcquire_WaitsForRelease(t *testing.T) {
	fastRetry(t)
	target := filepath.Join(t.TempDir(), "node_2401.csv")
	cfg := testLockConfig()
	cfg.Timeout = 5 * time.Second

	held, err := Acquire(target, cfg, "first")
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = held.Release()
	}()

	l, err := Acquire(target, cfg, "second")
	require.NoError(t, err)
	defer l.Release()
	assert.Contains(t, Holder(l.Dir), "running second")
}

func TestAcquire_Concurrent(t *testing.T) {
	fastRetry(t)
	target := filepath.Join(t.TempDir(), "node_2401.csv")
	cfg := testLockConfig()
	cfg.Timeout = 10 * time.Second

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		peak    int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l, err := Acquire(target, cfg, "record")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			holders++
			peak = max(peak, holders)
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()
			assert.NoError(t, l.Release())
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, peak)
}

func TestHolder(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, "unknown", Holder(filepath.Join(dir, "missing.lock")))

	raw := filepath.Join(dir, "raw.lock")
	require.NoError(t, os.MkdirAll(raw, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(raw, infoName), []byte("  someone  \n"), 0o644))
	assert.Equal(t, "someone", strings.TrimSpace(Holder(raw)))
}
