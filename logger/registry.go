package logger

import "sync"

// registry caches component loggers derived from the global logger, so hot
// paths such as process runs do not rebuild one per call.
var registry = &componentLoggers{loggers: make(map[string]*Logger)}

type componentLoggers struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Register makes Get(name) return l until the next Init.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	registry.loggers[name] = l
	registry.mu.Unlock()
}

// Get returns the logger for component name, deriving it from the global
// logger on first use.
func Get(name string) *Logger {
	registry.mu.RLock()
	l, ok := registry.loggers[name]
	registry.mu.RUnlock()
	if ok {
		return l
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	if l, ok := registry.loggers[name]; ok {
		return l
	}
	l = GetGlobalLogger().WithComponent(name)
	registry.loggers[name] = l
	return l
}

// reset drops every cached logger so the next Get sees a new global config.
func (r *componentLoggers) reset() {
	r.mu.Lock()
	r.loggers = make(map[string]*Logger)
	r.mu.Unlock()
}
