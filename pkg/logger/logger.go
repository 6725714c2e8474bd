package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category represents a log category
type Category string

const (
	CategoryAuth      Category = "auth"
	CategoryAPI       Category = "api"
	CategoryDB        Category = "db"
	CategoryUpload    Category = "upload"
	CategoryFace      Category = "face"
	CategoryQueue     Category = "queue"
	CategoryStats     Category = "stats"
	CategoryScheduler Category = "scheduler"
	CategoryStartup   Category = "startup"
)

// Level represents log level
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     Level                  `json:"level"`
	Category  Category               `json:"category"`
	Action    string                 `json:"action"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	UserID    string                 `json:"user_id,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Duration  string                 `json:"duration,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Logger writes structured entries to per-category daily files and,
// optionally, a colored console.
type Logger struct {
	mu      sync.Mutex
	logDir  string
	writers map[Category]*os.File
	console bool
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the default logger
func Init(logDir string, console bool) error {
	var err error
	once.Do(func() {
		defaultLogger, err = NewLogger(logDir, console)
	})
	return err
}

// NewLogger creates a new logger
func NewLogger(logDir string, console bool) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &Logger{
		logDir:  logDir,
		writers: make(map[Category]*os.File),
		console: console,
	}, nil
}

// getWriter returns or creates a file writer for the category
func (l *Logger) getWriter(category Category) (io.Writer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", category, today)
	path := filepath.Join(l.logDir, filename)

	if writer, exists := l.writers[category]; exists {
		if info, err := writer.Stat(); err == nil {
			if info.Name() == filename {
				return writer, nil
			}
		}
		writer.Close()
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l.writers[category] = file
	return file, nil
}

// Log writes a log entry
func (l *Logger) Log(entry LogEntry) {
	entry.Timestamp = time.Now()

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Printf("Error marshaling log entry: %v\n", err)
		return
	}

	writer, err := l.getWriter(entry.Category)
	if err != nil {
		fmt.Printf("Error getting log writer: %v\n", err)
	} else {
		fmt.Fprintln(writer, string(jsonData))
	}

	if l.console {
		l.printToConsole(entry)
	}
}

// printToConsole prints formatted log to console
func (l *Logger) printToConsole(entry LogEntry) {
	timestamp := entry.Timestamp.Format("15:04:05.000")

	levelColors := map[Level]string{
		LevelDebug: "\033[36m", // Cyan
		LevelInfo:  "\033[32m", // Green
		LevelWarn:  "\033[33m", // Yellow
		LevelError: "\033[31m", // Red
	}
	reset := "\033[0m"

	color := levelColors[entry.Level]

	fmt.Printf("%s[%s]%s [%s] [%s] %s: %s",
		color,
		entry.Level,
		reset,
		timestamp,
		entry.Category,
		entry.Action,
		entry.Message,
	)

	if entry.UserID != "" {
		fmt.Printf(" (user: %s)", entry.UserID)
	}
	if entry.Duration != "" {
		fmt.Printf(" (duration: %s)", entry.Duration)
	}
	if entry.Error != "" {
		fmt.Printf(" ERROR: %s", entry.Error)
	}
	fmt.Println()

	if len(entry.Data) > 0 {
		dataJSON, _ := json.MarshalIndent(entry.Data, "    ", "  ")
		fmt.Printf("    Data: %s\n", string(dataJSON))
	}
}

// Close closes all file writers
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, writer := range l.writers {
		writer.Close()
	}
	l.writers = make(map[Category]*os.File)
}

// Default returns the default logger
func Default() *Logger {
	if defaultLogger == nil {
		Init("logs", true)
	}
	return defaultLogger
}

// Helper functions for common log operations

// Upload logs photo upload pipeline events
func Upload(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryUpload, Action: action, Message: message, Data: data})
}

// UploadError logs photo upload pipeline errors
func UploadError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryUpload, Action: action, Message: message, Error: errString(err), Data: data})
}

// Face logs face recognition operations
func Face(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryFace, Action: action, Message: message, Data: data})
}

// FaceError logs face recognition errors
func FaceError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryFace, Action: action, Message: message, Error: errString(err), Data: data})
}

// Queue logs AI-queue lifecycle events
func Queue(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryQueue, Action: action, Message: message, Data: data})
}

// QueueError logs AI-queue lifecycle errors
func QueueError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryQueue, Action: action, Message: message, Error: errString(err), Data: data})
}

// Stats logs counter/reconciliation events
func Stats(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryStats, Action: action, Message: message, Data: data})
}

// StatsError logs counter/reconciliation errors
func StatsError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryStats, Action: action, Message: message, Error: errString(err), Data: data})
}

// Scheduler logs scheduled-job events
func Scheduler(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryScheduler, Action: action, Message: message, Data: data})
}

// SchedulerWarn logs scheduled-job warnings
func SchedulerWarn(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelWarn, Category: CategoryScheduler, Action: action, Message: message, Data: data})
}

// SchedulerError logs scheduled-job errors
func SchedulerError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryScheduler, Action: action, Message: message, Error: errString(err), Data: data})
}

// API logs API request/response events
func API(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryAPI, Action: action, Message: message, Data: data})
}

// Startup logs startup/initialization events
func Startup(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: CategoryStartup, Action: action, Message: message, Data: data})
}

// StartupWarn logs startup warnings
func StartupWarn(action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelWarn, Category: CategoryStartup, Action: action, Message: message, Data: data})
}

// StartupError logs startup errors
func StartupError(action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: CategoryStartup, Action: action, Message: message, Error: errString(err), Data: data})
}

// Info logs info level message
func Info(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelInfo, Category: category, Action: action, Message: message, Data: data})
}

// Warn logs warning level message
func Warn(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelWarn, Category: category, Action: action, Message: message, Data: data})
}

// Error logs error level message
func Error(category Category, action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelError, Category: category, Action: action, Message: message, Error: errString(err), Data: data})
}

// Debug logs debug level message
func Debug(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{Level: LevelDebug, Category: category, Action: action, Message: message, Data: data})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
