package debug

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"image-studio/internal/logger"
)

// Component toggles, set once at startup by the application shell.
var (
	EnablePerformanceDebug = true
	EnableGUIDebug         = false
)

// Manager collects per-operation timings and funnels all shell logging
// through the zerolog adapter.
type Manager struct {
	mu               sync.RWMutex
	log              *logger.ZerologAdapter
	timings          map[string][]time.Duration
	memoryStats      runtime.MemStats
	lastMemoryUpdate time.Time
}

func NewManager() *Manager {
	return &Manager{
		log:     logger.NewConsoleLogger(zerolog.InfoLevel),
		timings: make(map[string][]time.Duration),
	}
}

func (dm *Manager) StartTiming(operation string) time.Time {
	return time.Now()
}

func (dm *Manager) EndTiming(operation string, startTime time.Time) {
	duration := time.Since(startTime)

	dm.mu.Lock()
	dm.timings[operation] = append(dm.timings[operation], duration)
	dm.mu.Unlock()

	if EnablePerformanceDebug {
		dm.log.Debug("Performance", operation, map[string]interface{}{
			"duration": duration.String(),
		})
	}
}

func (dm *Manager) LogInfo(component string, message string) {
	dm.log.Info(component, message, nil)
}

func (dm *Manager) LogError(component string, err error) {
	dm.log.Error(component, err, nil)
}

func (dm *Manager) LogWarning(component string, message string) {
	dm.log.Warning(component, message, nil)
}

func (dm *Manager) LogGUIEvent(event string, fields map[string]interface{}) {
	if EnableGUIDebug {
		dm.log.Debug("GUI", event, fields)
	}
}

func (dm *Manager) GetMemoryStats() string {
	dm.updateMemoryStats()

	dm.mu.RLock()
	defer dm.mu.RUnlock()

	return fmt.Sprintf(`Memory Statistics:
- Allocated: %.2f MB
- Total Allocated: %.2f MB
- System Memory: %.2f MB
- Garbage Collections: %d
- Goroutines: %d`,
		float64(dm.memoryStats.Alloc)/1024/1024,
		float64(dm.memoryStats.TotalAlloc)/1024/1024,
		float64(dm.memoryStats.Sys)/1024/1024,
		dm.memoryStats.NumGC,
		runtime.NumGoroutine())
}

func (dm *Manager) GetPerformanceReport() string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	report := "Performance Report:\n"

	for operation, timings := range dm.timings {
		if len(timings) == 0 {
			continue
		}

		var total time.Duration
		min := timings[0]
		max := timings[0]

		for _, timing := range timings {
			total += timing
			if timing < min {
				min = timing
			}
			if timing > max {
				max = timing
			}
		}

		avg := total / time.Duration(len(timings))

		report += fmt.Sprintf("- %s: count=%d, avg=%v, min=%v, max=%v\n",
			operation, len(timings), avg, min, max)
	}

	return report
}

func (dm *Manager) updateMemoryStats() {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	// Update memory stats at most once per second
	if time.Since(dm.lastMemoryUpdate) > time.Second {
		runtime.ReadMemStats(&dm.memoryStats)
		dm.lastMemoryUpdate = time.Now()
	}
}

func (dm *Manager) Cleanup() {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.timings = make(map[string][]time.Duration)
	dm.log.Info("Debug", "Debug manager cleaned up", nil)
}
