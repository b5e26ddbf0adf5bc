package sysinfo

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"

	"github.com/kbukum/babelink/logger"
	"github.com/kbukum/babelink/process"
)

// Result keys.
const (
	KeyPlatform      = "platform"
	KeyArch          = "arch"
	KeyDisplayInfo   = "display_info"
	KeyHostname      = "hostname"
	KeyOSVersion     = "os_version"
	KeyKernelVersion = "kernel_version"
	KeyCPUCount      = "cpu_count"
	KeyMemoryTotal   = "memory_total"
)

// DefaultTimeout bounds the system_profiler run.
const DefaultTimeout = 20 * time.Second

// Config tunes the collector.
type Config struct {
	// Binary is the system_profiler executable.
	Binary string `yaml:"binary" mapstructure:"binary"`
	// Timeout bounds system_profiler. Defaults to 20s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// DisableHostFacts drops the gopsutil keys from the result.
	DisableHostFacts bool `yaml:"disable_host_facts" mapstructure:"disable_host_facts"`
}

// ApplyDefaults fills in zero values.
func (c *Config) ApplyDefaults() {
	if c.Binary == "" {
		c.Binary = "system_profiler"
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// Platform maps a GOOS value to the front-end's platform name.
func Platform(goos string) string {
	if goos == "darwin" {
		return "macos"
	}
	return goos
}

// Arch maps a GOARCH value to the front-end's architecture name.
func Arch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "386":
		return "x86"
	default:
		return goarch
	}
}

type fact struct {
	key  string
	read func(ctx context.Context) (string, error)
}

func hostFacts() []fact {
	return []fact{
		{KeyHostname, func(ctx context.Context) (string, error) {
			info, err := host.InfoWithContext(ctx)
			if err != nil {
				return "", err
			}
			return info.Hostname, nil
		}},
		{KeyOSVersion, func(ctx context.Context) (string, error) {
			info, err := host.InfoWithContext(ctx)
			if err != nil {
				return "", err
			}
			return info.Platform + " " + info.PlatformVersion, nil
		}},
		{KeyKernelVersion, func(ctx context.Context) (string, error) {
			return host.KernelVersionWithContext(ctx)
		}},
		{KeyCPUCount, func(ctx context.Context) (string, error) {
			n, err := cpu.CountsWithContext(ctx, true)
			if err != nil {
				return "", err
			}
			return strconv.Itoa(n), nil
		}},
		{KeyMemoryTotal, func(ctx context.Context) (string, error) {
			vm, err := mem.VirtualMemoryWithContext(ctx)
			if err != nil {
				return "", err
			}
			return strconv.FormatUint(vm.Total, 10), nil
		}},
	}
}

// Collector gathers system information.
type Collector struct {
	exec   process.Executor
	goos   string
	goarch string
	cfg    Config
	facts  []fact
	log    *logger.Logger
}

// New creates a Collector for the running platform.
func New(exec process.Executor, cfg Config) *Collector {
	return NewFor(runtime.GOOS, runtime.GOARCH, exec, cfg)
}

// NewFor creates a Collector reporting goos and goarch.
func NewFor(goos, goarch string, exec process.Executor, cfg Config) *Collector {
	cfg.ApplyDefaults()
	c := &Collector{exec: exec, goos: goos, goarch: goarch, cfg: cfg, log: logger.WithComponent("sysinfo")}
	if !cfg.DisableHostFacts {
		c.facts = hostFacts()
	}
	return c
}

// Collect returns the system information map. Only the macOS display report
// can fail the call; host facts that cannot be read are left out.
func (c *Collector) Collect(ctx context.Context) (map[string]string, error) {
	info := map[string]string{
		KeyPlatform: Platform(c.goos),
		KeyArch:     Arch(c.goarch),
	}

	if c.goos == "darwin" {
		res, err := c.exec.Run(ctx, process.Command{
			Tool:    "system_profiler",
			Binary:  c.cfg.Binary,
			Args:    []string{"SPDisplaysDataType"},
			Timeout: c.cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		info[KeyDisplayInfo] = string(res.Stdout)
	}

	for _, f := range c.facts {
		v, err := f.read(ctx)
		if err != nil {
			c.log.Warn("host fact unavailable", logger.MergeWithError(logger.Fields("fact", f.key), err))
			continue
		}
		info[f.key] = v
	}
	return info, nil
}
