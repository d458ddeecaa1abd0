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
	"encoding/json"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"trace":   logrus.TraceLevel,
		"DEBUG":   logrus.DebugLevel,
		" info ":  logrus.InfoLevel,
		"":        logrus.InfoLevel,
		"warning": logrus.WarnLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"bogus":   logrus.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLogger_ReturnsRegisteredInstance(t *testing.T) {
	a := NewLogger("TEST-SAME")
	b := NewLogger("TEST-SAME")
	if a != b {
		t.Error("NewLogger should return the registered logger for a known name")
	}
	if !SetLoggerLevel("TEST-SAME", "error") {
		t.Fatal("SetLoggerLevel() = false for a registered logger")
	}
	if a.GetLevel() != logrus.ErrorLevel {
		t.Errorf("level = %v, want error", a.GetLevel())
	}
	if SetLoggerLevel("TEST-MISSING", "error") {
		t.Error("SetLoggerLevel() = true for an unknown logger")
	}
}

func testEntry(data logrus.Fields) *logrus.Entry {
	return &logrus.Entry{
		Logger:  logrus.New(),
		Data:    data,
		Time:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "hello",
	}
}

func TestLog4jColorFormatter_AppendsFields(t *testing.T) {
	f := &Log4jColorFormatter{LoggerName: "HTTP", NameWidth: 10}
	out, err := f.Format(testEntry(logrus.Fields{"b": 2, "a": "x"}))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	line := string(out)
	if !strings.HasPrefix(line, "2025-01-02 03:04:05.000") {
		t.Errorf("line should start with timestamp: %q", line)
	}
	if !strings.Contains(line, "hello a=x b=2\n") {
		t.Errorf("fields should follow message in key order: %q", line)
	}
}

func TestJSONLogFormatter_LiftsRequestFields(t *testing.T) {
	f := &JSONLogFormatter{LoggerName: "HTTP"}
	out, err := f.Format(testEntry(logrus.Fields{
		"req_method":  "GET",
		"req_uri":     "/students/",
		"status_code": 200,
		"error":       errors.New("boom"),
		"other":       "v",
	}))
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	var rec map[string]interface{}
	if err := json.Unmarshal(out, &rec); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if rec["method"] != "GET" || rec["path"] != "/students/" || rec["status_code"] != float64(200) {
		t.Errorf("request fields not lifted: %v", rec)
	}
	fields, _ := rec["fields"].(map[string]interface{})
	if fields["error"] != "boom" || fields["other"] != "v" {
		t.Errorf("extra fields = %v", fields)
	}
	if rec["model"] != "HTTP" || rec["message"] != "hello" {
		t.Errorf("record = %v", rec)
	}
}

func TestWithCaller_ReplacesRecordedFrame(t *testing.T) {
	entry := WithCaller(testEntry(logrus.Fields{"a": "x"}), 0)
	caller, _ := entry.Data[CallerField].(string)
	if !strings.HasPrefix(caller, "utils/logger_test.go:") {
		t.Fatalf("caller = %q", caller)
	}
	entry.Caller = &runtime.Frame{File: "/src/roster/database/logger.go", Line: 7}
	entry.Message = "hello"
	entry.Level = logrus.InfoLevel

	text, err := (&Log4jColorFormatter{LoggerName: "DATABASE", NameWidth: 10}).Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	line := string(text)
	if !strings.Contains(line, caller) || strings.Contains(line, "database/logger.go") {
		t.Errorf("text caller not taken from field: %q", line)
	}
	if strings.Contains(line, CallerField+"=") {
		t.Errorf("caller should not repeat as a field: %q", line)
	}

	out, err := (&JSONLogFormatter{LoggerName: "DATABASE"}).Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	var rec map[string]interface{}
	if err := json.Unmarshal(out, &rec); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if rec["caller"] != caller {
		t.Errorf("json caller = %v, want %q", rec["caller"], caller)
	}
	fields, _ := rec["fields"].(map[string]interface{})
	if _, ok := fields[CallerField]; ok || fields["a"] != "x" {
		t.Errorf("fields = %v", fields)
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("ROSTER_TEST_STR", "v")

	if got := EnvDefaultString("ROSTER_TEST_STR", "d"); got != "v" {
		t.Errorf("EnvDefaultString() = %q", got)
	}
	if got := EnvDefaultString("ROSTER_TEST_UNSET", "d"); got != "d" {
		t.Errorf("EnvDefaultString(unset) = %q", got)
	}
}
