/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05.000"

var (
	loggerRegistryMu sync.RWMutex
	loggerRegistry   = map[string]*logrus.Logger{}
	defaultLevel     = ParseLogLevel(EnvDefaultString("LOG_LEVEL", "info"))
	consoleLogFormat = EnvDefaultString("CONSOLE_LOG_FORMAT", "text")
	consoleOutput    io.Writer = os.Stdout
)

// ParseLogLevel maps a level name to a logrus level, defaulting to info.
func ParseLogLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

// ConfigureLogLevel sets the level of every registered logger and of
// loggers created afterwards.
func ConfigureLogLevel(levelStr string) {
	lvl := ParseLogLevel(levelStr)
	loggerRegistryMu.Lock()
	defaultLevel = lvl
	for _, lg := range loggerRegistry {
		lg.SetLevel(lvl)
	}
	loggerRegistryMu.Unlock()
}

// ConfigureConsoleLogFormat selects "json" or "text" output for loggers
// created afterwards.
func ConfigureConsoleLogFormat(format string) {
	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		consoleLogFormat = "json"
	} else {
		consoleLogFormat = "text"
	}
}

// SetLoggerLevel changes the level of one named logger.
func SetLoggerLevel(name string, lvlStr string) bool {
	loggerRegistryMu.RLock()
	lg, ok := loggerRegistry[name]
	loggerRegistryMu.RUnlock()
	if !ok {
		return false
	}
	lg.SetLevel(ParseLogLevel(lvlStr))
	return true
}

// NewLogger returns the logger registered under name, creating it on first use.
func NewLogger(name string) *logrus.Logger {
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	if lg, ok := loggerRegistry[name]; ok {
		return lg
	}

	l := logrus.New()
	l.SetOutput(consoleOutput)
	l.SetLevel(defaultLevel)
	l.SetReportCaller(true)
	if consoleLogFormat == "json" {
		l.SetFormatter(&JSONLogFormatter{LoggerName: name})
	} else {
		l.SetFormatter(&Log4jColorFormatter{LoggerName: name, NameWidth: 10})
	}
	loggerRegistry[name] = l
	return l
}

// Log4jColorFormatter renders "time LEVEL pid --- [name] caller : msg k=v".
type Log4jColorFormatter struct {
	LoggerName string
	NameWidth  int
}

func (f *Log4jColorFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteString(entry.Time.Format(timestampFormat))
	b.WriteByte(' ')
	b.WriteString(colorLevel(fmt.Sprintf("%7s", strings.ToUpper(entry.Level.String())), entry.Level))
	b.WriteByte(' ')
	b.WriteString(colorWrap(fmt.Sprintf("%-6d", os.Getpid()), ansiMagenta))
	b.WriteString(" --- ")
	b.WriteString(colorWrap(fmt.Sprintf("[%*s]", f.NameWidth, limitRunes(f.LoggerName, f.NameWidth)), ansiCyan))
	if caller := callerOf(entry); caller != "" {
		b.WriteString(colorWrap(" "+caller, ansiFaint))
	}
	b.WriteString(colorWrap(" :", ansiFaint))
	b.WriteByte(' ')
	b.WriteString(entry.Message)
	for _, k := range sortedKeys(entry.Data) {
		if k == CallerField {
			continue
		}
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// JSONLogFormatter renders one JSON object per line. Request fields set by
// the HTTP middleware are lifted to top-level keys.
type JSONLogFormatter struct {
	LoggerName string
}

type jsonLogRecord struct {
	Time        string                 `json:"time"`
	Level       string                 `json:"level"`
	Model       string                 `json:"model"`
	Caller      string                 `json:"caller,omitempty"`
	Message     string                 `json:"message"`
	ClientIP    string                 `json:"client_ip,omitempty"`
	Method      string                 `json:"method,omitempty"`
	Path        string                 `json:"path,omitempty"`
	StatusCode  int                    `json:"status_code,omitempty"`
	LatencyTime string                 `json:"latency_time,omitempty"`
	Fields      map[string]interface{} `json:"fields,omitempty"`
}

func (f *JSONLogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	rec := jsonLogRecord{
		Time:    entry.Time.Format(timestampFormat),
		Level:   entry.Level.String(),
		Model:   f.LoggerName,
		Message: entry.Message,
		Caller:  callerOf(entry),
	}

	extra := make(map[string]interface{}, len(entry.Data))
	for k, v := range entry.Data {
		s, isString := v.(string)
		switch {
		case k == CallerField:
		case k == "req_uri" && isString:
			rec.Path = s
		case k == "req_method" && isString:
			rec.Method = s
		case k == "client_ip" && isString:
			rec.ClientIP = s
		case k == "latency_time" && isString:
			rec.LatencyTime = s
		case k == "status_code":
			if n, ok := v.(int); ok {
				rec.StatusCode = n
			} else {
				extra[k] = v
			}
		case isError(v):
			extra[k] = v.(error).Error()
		default:
			extra[k] = v
		}
	}
	if len(extra) > 0 {
		rec.Fields = extra
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func isError(v interface{}) bool {
	_, ok := v.(error)
	return ok
}

const (
	ansiReset   = "\x1b[0m"
	ansiFaint   = "\x1b[2m"
	ansiRed     = "\x1b[31m"
	ansiYellow  = "\x1b[33m"
	ansiGreen   = "\x1b[32m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"
	ansiCyan    = "\x1b[36m"
)

func colorWrap(s, code string) string { return code + s + ansiReset }

func colorLevel(s string, level logrus.Level) string {
	switch level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return colorWrap(s, ansiRed)
	case logrus.WarnLevel:
		return colorWrap(s, ansiYellow)
	case logrus.InfoLevel:
		return colorWrap(s, ansiGreen)
	case logrus.DebugLevel:
		return colorWrap(s, ansiBlue)
	default:
		return colorWrap(s, ansiMagenta)
	}
}

func sortedKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func limitRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// CallerField carries a caller location computed by WithCaller. Formatters
// print it in place of the frame logrus records.
const CallerField = "caller"

// WithCaller pins the entry's caller to the frame skip levels above the
// function calling WithCaller. Adapters that wrap a logger use it so the
// reported location is their caller rather than the adapter itself.
func WithCaller(entry *logrus.Entry, skip int) *logrus.Entry {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return entry
	}
	return entry.WithField(CallerField, fmt.Sprintf("%s:%d", shortPath(file), line))
}

func callerOf(entry *logrus.Entry) string {
	if s, ok := entry.Data[CallerField].(string); ok && s != "" {
		return s
	}
	if entry.Caller != nil {
		return fmt.Sprintf("%s:%d", shortPath(entry.Caller.File), entry.Caller.Line)
	}
	return ""
}

// shortPath keeps the last directory and the file name.
func shortPath(p string) string {
	parts := strings.Split(filepath.ToSlash(p), "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return parts[0]
}

func EnvDefaultString(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
