package media

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rankreel/rankreel/internal/config"
	"github.com/rankreel/rankreel/pkg/logger"
)

// fakeRunner records every invocation and dispatches to a scripted handler.
type fakeRunner struct {
	mu       sync.Mutex
	calls    [][]string
	handler  func(name string, args []string) ([]byte, error)
	lookPath func(name string) (string, error)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()
	if f.handler == nil {
		return nil, nil
	}
	return f.handler(name, args)
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.lookPath != nil {
		return f.lookPath(name)
	}
	return name, nil
}

func (f *fakeRunner) recorded() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func callsContaining(calls [][]string, needle string) [][]string {
	var out [][]string
	for _, call := range calls {
		if strings.Contains(strings.Join(call, " "), needle) {
			out = append(out, call)
		}
	}
	return out
}

func testLogger() logger.Logger {
	l := logger.NewApiLogger(&config.Config{
		Server: config.ServerConfig{Mode: "Development"},
		Logger: config.Logger{Encoding: "console", Level: "error"},
	})
	l.InitLogger()
	return l
}

func newTestTool(run *fakeRunner) *Tool {
	return NewToolWithRunner(&config.MediaConfig{}, testLogger(), run)
}

func argValue(call []string, flag string) (string, bool) {
	for i, a := range call {
		if a == flag && i+1 < len(call) {
			return call[i+1], true
		}
	}
	return "", false
}

func hasArg(call []string, flag string) bool {
	for _, a := range call {
		if a == flag {
			return true
		}
	}
	return false
}

// probeHandler scripts ffprobe responses for a fixed geometry.
func probeHandler(width, height int, fps, codec string, duration float64, hasAudio bool) func(string, []string) ([]byte, error) {
	return func(name string, args []string) ([]byte, error) {
		if name != "ffprobe" {
			return nil, nil
		}
		joined := strings.Join(args, " ")
		switch {
		case strings.Contains(joined, "stream=width,height"):
			return []byte(fmt.Sprintf("%d,%d,%s,%s\n", width, height, fps, codec)), nil
		case strings.Contains(joined, "format=duration"):
			return []byte(fmt.Sprintf("%f\n", duration)), nil
		case strings.Contains(joined, "stream=index"):
			if hasAudio {
				return []byte("1\n"), nil
			}
			return []byte(""), nil
		}
		return nil, nil
	}
}
