package utils

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/trimble-oss/trcphotometry/pkg/core"
)

func TestSplitList(t *testing.T) {
	seeds := " a.yml, ,b.yml,"
	got := SplitList(&seeds)
	if diff := cmp.Diff([]string{"a.yml", "b.yml"}, got); diff != "" {
		t.Fatalf("SplitList mismatch (-want +got):\n%s", diff)
	}
	if SplitList(nil) != nil {
		t.Fatalf("Expected nil for nil input")
	}
	empty := ""
	if RefLength(&empty) != 0 || RefLength(nil) != 0 {
		t.Fatalf("Expected zero length")
	}
}

func TestLogHelpersRestorePrefix(t *testing.T) {
	var buf bytes.Buffer
	config := &core.CoreConfig{Log: log.New(&buf, "[trcphot]", 0), IsHeadless: true}

	LogInfo(config, "loaded\nseed")
	LogErrorObject(config, errors.New("bad\rthing"), false)
	LogWarningMessage(config, "careful")

	out := buf.String()
	for _, want := range []string{"[INFO]loadedseed", "[ERROR]badthing", "[WARN]careful"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Expected %q in log output, got: %s", want, out)
		}
	}
	if config.Log.Prefix() != "[trcphot]" {
		t.Fatalf("Expected prefix restored, got %q", config.Log.Prefix())
	}
	if err := LogErrorAndSafeExit(config, errors.New("fail"), 1); err == nil {
		t.Fatalf("Expected error returned when ExitOnFailure is false")
	}
}
