package resolver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/wanderpoints/platshim/internal/platform"
)

const (
	mapsModule = "native-maps-lib"
	stubPath   = "/app/shims/web-stub/index.js"
)

// recordingResolver stands in for the host's default resolver. It returns
// node_modules paths for a fixed set of installed modules.
type recordingResolver struct {
	installed map[string]bool
	calls     int
	lastCtx   Context
}

func (d *recordingResolver) Resolve(ctx Context, module string, p platform.Platform) (Resolution, error) {
	d.calls++
	d.lastCtx = ctx
	if !d.installed[module] {
		return Resolution{}, fmt.Errorf("%w: %s", ErrModuleNotFound, module)
	}
	return Resolution{Type: SourceFile, FilePath: "/app/node_modules/" + module + "/index." + string(p) + ".js"}, nil
}

func newTestResolver(t *testing.T) (*Resolver, *recordingResolver) {
	t.Helper()
	table, err := NewTable(Rule{Platform: platform.Web, Module: mapsModule, Substitute: stubPath})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	def := &recordingResolver{installed: map[string]bool{mapsModule: true, "lodash": true}}
	r, err := New(table, def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r, def
}

func TestResolveSubstitutesOnWeb(t *testing.T) {
	r, def := newTestResolver(t)

	contexts := []Context{
		{},
		{OriginPath: "/app/src/screens/Map.tsx"},
		{OriginPath: "/elsewhere/x.js", Attributes: map[string]string{"dev": "true"}},
	}
	for _, ctx := range contexts {
		got, err := r.Resolve(ctx, mapsModule, platform.Web)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		want := Resolution{Type: SourceFile, FilePath: stubPath}
		if got != want {
			t.Errorf("Resolve(%+v) = %+v, want %+v", ctx, got, want)
		}
	}
	if def.calls != 0 {
		t.Errorf("default resolver called %d times, want 0", def.calls)
	}
}

func TestResolveDelegatesOnNative(t *testing.T) {
	r, def := newTestResolver(t)

	for _, p := range []platform.Platform{platform.IOS, platform.Android} {
		got, err := r.Resolve(Context{}, mapsModule, p)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", p, err)
		}
		want, _ := def.Resolve(Context{}, mapsModule, p)
		if got != want {
			t.Errorf("Resolve(%s) = %+v, want %+v", p, got, want)
		}
		if got.FilePath == stubPath {
			t.Errorf("Resolve(%s) returned the web stub", p)
		}
	}
}

func TestResolveUnlistedModuleMatchesDefault(t *testing.T) {
	r, def := newTestResolver(t)

	for _, p := range append(platform.All(), "", "desktop") {
		got, gotErr := r.Resolve(Context{}, "lodash", p)
		want, wantErr := def.Resolve(Context{}, "lodash", p)
		if got != want {
			t.Errorf("Resolve(lodash, %q) = %+v, want %+v", p, got, want)
		}
		if (gotErr == nil) != (wantErr == nil) {
			t.Errorf("Resolve(lodash, %q) err = %v, want %v", p, gotErr, wantErr)
		}
	}
}

func TestResolveUnknownPlatformNeverMatchesWeb(t *testing.T) {
	r, _ := newTestResolver(t)

	for _, p := range []platform.Platform{"", "Web", "WEB", " web", "web-legacy", "desktop"} {
		got, err := r.Resolve(Context{}, mapsModule, p)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", p, err)
		}
		if got.FilePath == stubPath {
			t.Errorf("platform %q matched the web substitution", p)
		}
		if r.Substituted(mapsModule, p) {
			t.Errorf("Substituted(%q) = true", p)
		}
	}
}

func TestResolvePassesContextThrough(t *testing.T) {
	r, def := newTestResolver(t)
	ctx := Context{OriginPath: "/app/App.tsx", Attributes: map[string]string{"k": "v"}}

	if _, err := r.Resolve(ctx, "lodash", platform.Web); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if def.lastCtx.OriginPath != ctx.OriginPath || def.lastCtx.Attributes["k"] != "v" {
		t.Errorf("default resolver got ctx %+v, want %+v", def.lastCtx, ctx)
	}
}

func TestResolvePropagatesErrorUnchanged(t *testing.T) {
	sentinel := fmt.Errorf("%w: left-pad from /app/a.js", ErrModuleNotFound)
	def := DefaultResolverFunc(func(Context, string, platform.Platform) (Resolution, error) {
		return Resolution{}, sentinel
	})
	r, err := New(nil, def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, got := r.Resolve(Context{}, "left-pad", platform.Web)
	if got != sentinel {
		t.Errorf("error = %v, want the default resolver's error value", got)
	}
	if !errors.Is(got, ErrModuleNotFound) {
		t.Error("errors.Is(err, ErrModuleNotFound) = false")
	}
}

func TestResolveIdempotent(t *testing.T) {
	r, _ := newTestResolver(t)

	cases := []struct {
		module string
		p      platform.Platform
	}{
		{mapsModule, platform.Web},
		{mapsModule, platform.IOS},
		{"lodash", platform.Web},
	}
	for _, c := range cases {
		first, err1 := r.Resolve(Context{}, c.module, c.p)
		second, err2 := r.Resolve(Context{}, c.module, c.p)
		if first != second || (err1 == nil) != (err2 == nil) {
			t.Errorf("Resolve(%s, %s) not idempotent: %+v/%v then %+v/%v", c.module, c.p, first, err1, second, err2)
		}
	}
}

func TestResolveEmptyModule(t *testing.T) {
	r, def := newTestResolver(t)
	if _, err := r.Resolve(Context{}, "", platform.Web); !errors.Is(err, ErrEmptyModule) {
		t.Errorf("err = %v, want ErrEmptyModule", err)
	}
	if def.calls != 0 {
		t.Error("default resolver should not be called for an empty module")
	}
}

func TestNewRequiresFallback(t *testing.T) {
	if _, err := New(nil, nil); !errors.Is(err, ErrNoDefaultResolver) {
		t.Errorf("err = %v, want ErrNoDefaultResolver", err)
	}
}

func TestMultipleRules(t *testing.T) {
	table, err := NewTable(
		Rule{Platform: platform.Web, Module: mapsModule, Substitute: stubPath},
		Rule{Platform: platform.Web, Module: "react-native-haptics", Substitute: "/app/shims/haptics.js"},
		Rule{Platform: platform.Android, Module: "ios-only-kit", Substitute: "/app/shims/noop.js"},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	def := &recordingResolver{installed: map[string]bool{"ios-only-kit": true}}
	r, _ := New(table, def)

	got, _ := r.Resolve(Context{}, "react-native-haptics", platform.Web)
	if got.FilePath != "/app/shims/haptics.js" {
		t.Errorf("haptics on web = %q", got.FilePath)
	}
	got, _ = r.Resolve(Context{}, "ios-only-kit", platform.Android)
	if got.FilePath != "/app/shims/noop.js" {
		t.Errorf("ios-only-kit on android = %q", got.FilePath)
	}
	got, _ = r.Resolve(Context{}, "ios-only-kit", platform.IOS)
	if got.FilePath == "/app/shims/noop.js" {
		t.Error("ios-only-kit on ios should not be substituted")
	}
}
