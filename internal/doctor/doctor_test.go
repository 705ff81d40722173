package doctor

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/wanderpoints/platshim/internal/shimfile"
)

type file struct{ name, content string }

func writeFiles(t *testing.T, fs afero.Fs, files ...file) {
	t.Helper()
	for _, f := range files {
		if err := fs.MkdirAll(filepath.Dir(f.name), 0755); err != nil {
			t.Fatal(err)
		}
		if err := afero.WriteFile(fs, f.name, []byte(f.content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCheckAllGood(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs,
		file{"/app/shims/react-native-maps/index.js", ""},
		file{"/app/node_modules/react-native-maps/package.json", `{"version":"1.18.0","main":"index.js"}`},
		file{"/app/node_modules/react-native-maps/index.js", ""},
	)
	f := &shimfile.File{Version: 1, Rules: []shimfile.Rule{{
		Platform:   "web",
		Module:     "react-native-maps",
		Substitute: "./shims/react-native-maps/index.js",
		Compat:     ">=1.0.0 <2.0.0",
	}}}

	var buf bytes.Buffer
	rep, err := Check(&buf, fs, f, Options{Root: "/app", BaseDir: "/app"})
	if err != nil {
		t.Fatalf("Check: %v\n%s", err, buf.String())
	}
	if rep.OK != 3 || rep.Fail != 0 || rep.Warn != 0 {
		t.Errorf("report = %+v, want 3 OK\n%s", rep, buf.String())
	}
	if !strings.Contains(buf.String(), "resolves on ios (/app/node_modules/react-native-maps/index.js), android (/app/node_modules/react-native-maps/index.js)") {
		t.Errorf("output missing native resolution line:\n%s", buf.String())
	}
}

func TestCheckMissingSubstitute(t *testing.T) {
	fs := afero.NewMemMapFs()
	f := &shimfile.File{Version: 1, Rules: []shimfile.Rule{{
		Platform: "web", Module: "react-native-maps", Substitute: "shims/missing.js",
	}}}

	var buf bytes.Buffer
	rep, err := Check(&buf, fs, f, Options{Root: "/app", BaseDir: "/app"})
	if !errors.Is(err, ErrChecksFailed) {
		t.Fatalf("err = %v, want ErrChecksFailed", err)
	}
	if rep.Fail != 1 {
		t.Errorf("Fail = %d, want 1", rep.Fail)
	}
	if rep.Info != 1 {
		t.Errorf("Info = %d, want 1 (library not installed)", rep.Info)
	}
	if !strings.Contains(buf.String(), "[FAIL] react-native-maps on web: substitute /app/shims/missing.js does not exist") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestCheckIncompatibleVersion(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs,
		file{"/app/stub.js", ""},
		file{"/app/node_modules/react-native-maps/package.json", `{"version":"2.1.0","main":"index.js"}`},
		file{"/app/node_modules/react-native-maps/index.js", ""},
	)
	f := &shimfile.File{Version: 1, Rules: []shimfile.Rule{{
		Platform: "web", Module: "react-native-maps", Substitute: "/app/stub.js", Compat: "^1.0.0",
	}}}

	var buf bytes.Buffer
	rep, err := Check(&buf, fs, f, Options{Root: "/app", BaseDir: "/elsewhere"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if rep.Warn != 1 {
		t.Errorf("Warn = %d, want 1\n%s", rep.Warn, buf.String())
	}
}

func TestCheckNoRules(t *testing.T) {
	var buf bytes.Buffer
	rep, err := Check(&buf, afero.NewMemMapFs(), &shimfile.File{Version: 1}, Options{Root: "/app"})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if rep.Info != 1 {
		t.Errorf("Info = %d, want 1", rep.Info)
	}
}

func TestCheckRealModuleTriesEveryOtherPlatform(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs,
		file{"/app/shims/ios-kit.js", ""},
		file{"/app/node_modules/ios-kit/package.json", `{"version":"1.0.0","react-native":"src/index.ts"}`},
		file{"/app/node_modules/ios-kit/src/index.ts", ""},
	)
	f := &shimfile.File{Version: 1, Rules: []shimfile.Rule{{
		Platform: "android", Module: "ios-kit", Substitute: "shims/ios-kit.js",
	}}}

	var buf bytes.Buffer
	rep, err := Check(&buf, fs, f, Options{Root: "/app", BaseDir: "/app"})
	if err != nil {
		t.Fatalf("Check: %v\n%s", err, buf.String())
	}
	if rep.Info != 0 || rep.OK != 2 {
		t.Errorf("report = %+v, want 2 OK and no INFO\n%s", rep, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "ios-kit on android: resolves on ios (/app/node_modules/ios-kit/src/index.ts)") {
		t.Errorf("output missing ios resolution:\n%s", out)
	}
	if strings.Contains(out, "web (") {
		t.Errorf("web should not resolve a native-only package:\n%s", out)
	}
}
