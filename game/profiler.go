package game

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Profiler captures a CPU profile and an execution trace when the frame
// rate drops
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string

	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewProfiler creates a profiler writing into cfg.Dir
func NewProfiler(cfg ProfileConfig, logger *zap.Logger) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{
		captureCooldown: cfg.Cooldown,
		captureDuration: cfg.Duration,
		profilesDir:     cfg.Dir,
		logger:          logger.Named("profiler"),
	}
}

// CaptureProfile starts a background capture tagged with reason. It fails
// while a capture is running or within the cooldown of the previous one.
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lastCaptureTime.IsZero() && time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", time.Since(p.lastCaptureTime).Round(time.Millisecond))
	}
	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}
	if err := os.MkdirAll(p.profilesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create profiles dir: %w", err)
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := fmt.Sprintf("fps-drop-%s-%s", p.lastCaptureTime.Format("20060102-150405"), reason)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.logger.Warn("CPU profile capture failed", zap.Error(err))
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.logger.Warn("Trace capture failed", zap.Error(err))
			}
		}()
		wg.Wait()

		p.summarize(baseName)
	}()
	return nil
}

// Wait blocks until the running capture, if any, has finished
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// IsProfiling reports whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	p.logger.Info("CPU profile saved", zap.String("path", path))
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	path := filepath.Join(p.profilesDir, baseName+".trace")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	p.logger.Info("Trace saved", zap.String("path", path))
	return nil
}

// summarize logs where the capture went and the heap state after it
func (p *Profiler) summarize(baseName string) {
	path := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(path)
	if err != nil {
		p.logger.Warn("Could not analyze profile", zap.Error(err))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info("Performance capture complete",
		zap.String("profile", path),
		zap.Float64("size_kb", float64(info.Size())/1024),
		zap.String("view", "go tool pprof -http=:8080 "+path),
		zap.Uint64("alloc_kb", m.Alloc/1024),
		zap.Uint64("sys_kb", m.Sys/1024),
		zap.Uint32("num_gc", m.NumGC),
		zap.Uint64("heap_objects", m.HeapObjects),
	)
}
