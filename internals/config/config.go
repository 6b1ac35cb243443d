// Package config holds the run configuration. It is built once from viper
// and not changed afterwards
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/auth"
	"github.com/iamfatinilham/nuxcraft-pycher/internals/platform"
)

// Config keys. Every key can also be set as NUXCRAFT_<KEY> in the environment
const (
	KeyPlayer           = "player"
	KeyJava             = "java"
	KeyGameDir          = "gamedir"
	KeyMemory           = "memory"
	KeyThreads          = "threads"
	KeyPlatform         = "platform"
	KeyOffline          = "offline"
	KeyRefresh          = "refresh"
	KeyRecheck          = "recheck"
	KeySnapshots        = "snapshots"
	KeyBeta             = "beta"
	KeyOld              = "old"
	KeyJVMFlags         = "jvmflags"
	KeyGameFlags        = "gameflags"
	KeyOpenAL           = "openal"
	KeyNoOpenAL         = "noopenal"
	KeyDisableHugePages = "disablehugepages"
	KeyFullscreen       = "fullscreen"
	KeyDemo             = "demo"
	KeyVerbose          = "verbose"
	KeyRateLimit        = "ratelimit"
	KeyTimeout          = "timeout"
	KeyNonInteractive   = "noninteractive"
	KeyRetryMissingOnly = "retrymissingonly"
)

const (
	// DefaultPlayer is used when no player name is set
	DefaultPlayer = "player"
	// DefaultGameDir is relative to the working directory
	DefaultGameDir = ".game"
	// DefaultMemory is the default max heap
	DefaultMemory = "2G"
)

var (
	// ErrInvalidThreads is returned for a thread count below 1
	ErrInvalidThreads = errors.New("invalid thread count. Must be a positive integer")
	// ErrInvalidTimeout is returned for a negative timeout
	ErrInvalidTimeout = errors.New("timeout can not be negative")
)

// Config is everything one run needs to know
type Config struct {
	Player   string
	Java     string
	GameDir  string
	Memory   string
	Threads  int
	Platform platform.Platform

	Offline bool
	Refresh bool
	Recheck bool

	Snapshots bool
	Beta      bool
	Old       bool

	JVMFlags  []string
	GameFlags []string

	OpenAL           bool
	NoOpenAL         bool
	DisableHugePages bool
	Fullscreen       bool
	Demo             bool

	Verbose          bool
	NonInteractive   bool
	RetryMissingOnly bool
	// RateLimit is the max amount of requests per second. 0 means unlimited
	RateLimit int
	// Timeout is the max time a download may stall
	Timeout time.Duration
}

// SetDefaults registers the default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPlayer, DefaultPlayer)
	v.SetDefault(KeyJava, "java")
	v.SetDefault(KeyGameDir, DefaultGameDir)
	v.SetDefault(KeyMemory, DefaultMemory)
	v.SetDefault(KeyThreads, runtime.NumCPU())
	v.SetDefault(KeyTimeout, 15*time.Second)
}

// FromViper builds the config. The thread count is clamped to the cpu count
func FromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		Player:           strings.TrimSpace(v.GetString(KeyPlayer)),
		Java:             v.GetString(KeyJava),
		Memory:           v.GetString(KeyMemory),
		Threads:          v.GetInt(KeyThreads),
		Offline:          v.GetBool(KeyOffline),
		Refresh:          v.GetBool(KeyRefresh),
		Recheck:          v.GetBool(KeyRecheck),
		Snapshots:        v.GetBool(KeySnapshots),
		Beta:             v.GetBool(KeyBeta),
		Old:              v.GetBool(KeyOld),
		JVMFlags:         splitFlags(v.GetString(KeyJVMFlags)),
		GameFlags:        splitFlags(v.GetString(KeyGameFlags)),
		OpenAL:           v.GetBool(KeyOpenAL),
		NoOpenAL:         v.GetBool(KeyNoOpenAL),
		DisableHugePages: v.GetBool(KeyDisableHugePages),
		Fullscreen:       v.GetBool(KeyFullscreen),
		Demo:             v.GetBool(KeyDemo),
		Verbose:          v.GetBool(KeyVerbose),
		NonInteractive:   v.GetBool(KeyNonInteractive),
		RetryMissingOnly: v.GetBool(KeyRetryMissingOnly),
		RateLimit:        v.GetInt(KeyRateLimit),
		Timeout:          v.GetDuration(KeyTimeout),
	}

	if c.Player == "" {
		c.Player = DefaultPlayer
	}
	if c.Java == "" {
		c.Java = "java"
	}
	if c.Memory == "" {
		c.Memory = DefaultMemory
	}

	gameDir := v.GetString(KeyGameDir)
	if gameDir == "" {
		gameDir = DefaultGameDir
	}
	abs, err := filepath.Abs(gameDir)
	if err != nil {
		return nil, fmt.Errorf("invalid game directory %s: %w", gameDir, err)
	}
	c.GameDir = abs

	if c.Threads <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidThreads, c.Threads)
	}
	if c.Threads > runtime.NumCPU() {
		c.Threads = runtime.NumCPU()
	}
	if c.Timeout < 0 {
		return nil, ErrInvalidTimeout
	}

	c.Platform = platform.Detect()
	if name := v.GetString(KeyPlatform); name != "" {
		p, err := platform.ByName(name)
		if err != nil {
			return nil, err
		}
		c.Platform = p
	}

	return c, nil
}

// UseOpenAL reports if the system OpenAL override should be tried.
// --openal wins over --no-openal
func (c *Config) UseOpenAL() bool {
	return !c.NoOpenAL || c.OpenAL
}

// PlayerNameWarning returns a hint if the player name will probably be
// rejected by multiplayer servers. Singleplayer accepts any name
func (c *Config) PlayerNameWarning() string {
	if auth.ValidName(c.Player) {
		return ""
	}
	return fmt.Sprintf("player name %q should be 3-16 characters of letters, numbers and _", c.Player)
}

// splitFlags splits extra flags on whitespace
func splitFlags(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return fields
}
