package lock

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"
)

// LockInfo names the process holding a lock. It is stored as info.json
// inside the lock directory.
type LockInfo struct {
	User     string    `json:"user"`
	Hostname string    `json:"hostname"`
	Started  time.Time `json:"started"`
	PID      int       `json:"pid"`
	Command  string    `json:"command,omitempty"`
}

// NewLockInfo describes the current process running command.
func NewLockInfo(command string) *LockInfo {
	info := &LockInfo{
		User:     "unknown",
		Hostname: "unknown",
		Started:  time.Now(),
		PID:      os.Getpid(),
		Command:  command,
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		info.User = u.Username
	} else if env := os.Getenv("USER"); env != "" {
		info.User = env
	}
	if h, err := os.Hostname(); err == nil {
		info.Hostname = h
	}
	return info
}

// Age returns how long ago the lock was acquired.
func (i *LockInfo) Age() time.Duration {
	return time.Since(i.Started)
}

// Marshal serializes the LockInfo to JSON.
func (i *LockInfo) Marshal() ([]byte, error) {
	return json.Marshal(i)
}

// ParseLockInfo deserializes JSON data into a LockInfo.
func ParseLockInfo(data []byte) (*LockInfo, error) {
	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ReadInfo reads the holder information of the lock at lockDir.
func ReadInfo(lockDir string) (*LockInfo, error) {
	data, err := os.ReadFile(filepath.Join(lockDir, infoName))
	if err != nil {
		return nil, err
	}
	return ParseLockInfo(data)
}

func (i *LockInfo) write(lockDir string) error {
	data, err := i.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(lockDir, infoName), data, 0o644)
}

// String returns a human-readable description of who holds the lock.
func (i *LockInfo) String() string {
	s := fmt.Sprintf("%s@%s (pid %d)", i.User, i.Hostname, i.PID)
	if i.Command != "" {
		s += " running " + i.Command
	}
	return s
}
