// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iust/softhub/internal/catalog"
	"github.com/iust/softhub/internal/catalog/catalogtest"
	"github.com/iust/softhub/internal/locale"
	"github.com/iust/softhub/internal/prefs"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"list"},
			wantSub: "list",
		},
		{
			name:    "subcommand with flag",
			args:    []string{"list", "--search", "cad"},
			wantSub: "list",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("search") != "cad" {
					t.Errorf("Flag(search) = %q, want %q", p.Flag("search"), "cad")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"list", "--category=engineering"},
			wantSub: "list",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("category") != "engineering" {
					t.Errorf("Flag(category) = %q", p.Flag("category"))
				}
			},
		},
		{
			name:    "bool flag does not swallow positional",
			args:    []string{"--json", "show", "autocad"},
			wantSub: "show",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("json") {
					t.Error("BoolFlag(json) should be true")
				}
				if p.Positional(1) != "autocad" {
					t.Errorf("Positional(1) = %q, want autocad", p.Positional(1))
				}
			},
		},
		{
			name:    "explicit false",
			args:    []string{"list", "--json=false"},
			wantSub: "list",
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("json") {
					t.Error("BoolFlag(json) should be false")
				}
				if !p.HasFlag("json") {
					t.Error("HasFlag(json) should be true")
				}
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"ask", "--", "--what", "is", "this"},
			wantSub: "ask",
			validate: func(t *testing.T, p *ArgParser) {
				if got := JoinPositionalArgs(p, 1); got != "--what is this" {
					t.Errorf("JoinPositionalArgs = %q", got)
				}
			},
		},
		{
			name:    "no arguments",
			args:    nil,
			wantSub: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, boolFlags...)
			if p.Subcommand() != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", p.Subcommand(), tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"true", "YES", "y", "1", "on"} {
		if b, err := ParseBoolString(s); err != nil || !b {
			t.Errorf("ParseBoolString(%q) = %v, %v", s, b, err)
		}
	}
	for _, s := range []string{"false", "no", "N", "0", "off"} {
		if b, err := ParseBoolString(s); err != nil || b {
			t.Errorf("ParseBoolString(%q) = %v, %v", s, b, err)
		}
	}
	if _, err := ParseBoolString("maybe"); err == nil {
		t.Error("ParseBoolString(maybe) should fail")
	}
}

// =============================================================================
// PARSE TESTS (cli.go)
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
		check   func(*testing.T, Args)
	}{
		{"default is tui", nil, CmdTUI, nil},
		{"tui", []string{"tui"}, CmdTUI, nil},
		{"list alias", []string{"ls"}, CmdList, nil},
		{
			"list flags", []string{"list", "--search", "cad", "--category", "1", "--json"}, CmdList,
			func(t *testing.T, a Args) {
				if a.Search != "cad" || a.Category != "1" || !a.JSON {
					t.Errorf("args = %+v", a)
				}
			},
		},
		{
			"show slug", []string{"show", "autocad"}, CmdShow,
			func(t *testing.T, a Args) {
				if a.Slug != "autocad" {
					t.Errorf("Slug = %q", a.Slug)
				}
			},
		},
		{
			"ask joins words", []string{"ask", "how", "to", "install?", "--slug", "matlab"}, CmdAsk,
			func(t *testing.T, a Args) {
				if a.Query != "how to install?" || a.Slug != "matlab" {
					t.Errorf("args = %+v", a)
				}
			},
		},
		{
			"global flags anywhere", []string{"--api", "http://localhost:8000", "-v", "list", "--locale", "en"}, CmdList,
			func(t *testing.T, a Args) {
				if a.API != "http://localhost:8000" || !a.Verbose || a.Locale != "en" {
					t.Errorf("args = %+v", a)
				}
			},
		},
		{
			"theme defaults to show", []string{"theme"}, CmdTheme,
			func(t *testing.T, a Args) {
				if a.Subcommand != "show" {
					t.Errorf("Subcommand = %q", a.Subcommand)
				}
			},
		},
		{
			"config init force", []string{"config", "init", "--force"}, CmdConfig,
			func(t *testing.T, a Args) {
				if a.Subcommand != "init" || !a.Force {
					t.Errorf("args = %+v", a)
				}
			},
		},
		{"version", []string{"version"}, CmdVersion, nil},
		{"version flag", []string{"--version"}, CmdVersion, nil},
		{"help flag wins", []string{"list", "-h"}, CmdHelp, nil},
		{"chat", []string{"chat", "--slug", "autocad"}, CmdChat, nil},
		{"doctor", []string{"doctor"}, CmdDoctor, nil},
		{"doctor alias", []string{"diag", "--json"}, CmdDoctor, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, err := Parse(tt.argv)
			if err != nil {
				t.Fatalf("Parse(%v) error: %v", tt.argv, err)
			}
			if cmd != tt.wantCmd {
				t.Errorf("Parse(%v) = %v, want %v", tt.argv, cmd, tt.wantCmd)
			}
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantExit int
	}{
		{"show without slug", []string{"show"}, ExitFailure},
		{"ask without question", []string{"ask", "  "}, ExitFailure},
		{"unknown command", []string{"frobnicate"}, ExitUsageError},
		{"unknown theme", []string{"theme", "sepia"}, ExitUsageError},
		{"unknown config action", []string{"config", "set"}, ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.argv)
			if err == nil {
				t.Fatalf("Parse(%v) should fail", tt.argv)
			}
			if got := GetExitCode(err); got != tt.wantExit {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.wantExit)
			}
		})
	}

	var missing *MissingArgumentError
	_, _, err := Parse([]string{"show"})
	if !errors.As(err, &missing) || missing.Command != "show" {
		t.Errorf("want MissingArgumentError for show, got %v", err)
	}
}

func TestGetExitCode(t *testing.T) {
	if GetExitCode(nil) != ExitSuccess {
		t.Error("nil should exit 0")
	}
	if GetExitCode(&NotFoundError{Resource: "software", ID: "x"}) != ExitFailure {
		t.Error("not found should exit 1")
	}
	if GetExitCode(&CommandError{Command: "theme", Action: "save", Err: io.EOF}) != ExitFailure {
		t.Error("command error should exit 1")
	}
}

func TestCommandString(t *testing.T) {
	if CmdShow.String() != "show" || Command(99).String() != "unknown" {
		t.Errorf("unexpected names %q %q", CmdShow, Command(99))
	}
}

func TestPrintUsageAndVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf)
	for _, want := range []string{"softhub list", "--category", "softhub theme"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage missing %q", want)
		}
	}

	buf.Reset()
	PrintVersion(&buf)
	if !strings.Contains(buf.String(), Version) {
		t.Errorf("version output = %q", buf.String())
	}
}

// =============================================================================
// COMMAND TESTS
// =============================================================================

type stubAsker struct {
	query, context string
	calls          int
}

func (a *stubAsker) Ask(_ context.Context, query, contextText string) string {
	a.calls++
	a.query, a.context = query, contextText
	return "reply to " + query
}

// configuredAsker is a stubAsker that also reports provider readiness.
type configuredAsker struct {
	stubAsker
	ready bool
}

func (a *configuredAsker) Configured() bool { return a.ready }

type testEnv struct {
	*Env
	out    *bytes.Buffer
	asker  *stubAsker
	server *catalogtest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	server := catalogtest.NewServer()
	t.Cleanup(server.Close)

	out := &bytes.Buffer{}
	asker := &stubAsker{}
	env := &Env{
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Catalog:    catalog.NewClient(&catalog.ClientConfig{BaseURL: server.URL}, nil),
		Assistant:  asker,
		Bundle:     locale.For("en"),
		Store:      prefs.NewMemoryStore(),
		DetectDark: func() bool { return false },
		Out:        out,
		Err:        io.Discard,
	}
	env.normalize()
	return &testEnv{Env: env, out: out, asker: asker, server: server}
}

func decodeResponse(t *testing.T, data []byte) (JSONResponse, map[string]interface{}) {
	t.Helper()
	var resp JSONResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("invalid JSON %q: %v", data, err)
	}
	payload, _ := resp.Data.(map[string]interface{})
	return resp, payload
}

func TestHandleList(t *testing.T) {
	te := newTestEnv(t)

	if err := Run(context.Background(), te.Env, CmdList, Args{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"autocad", "Visual Studio Code", "MATLAB R2023b", "12,500", "3 / 3"} {
		if !strings.Contains(te.out.String(), want) {
			t.Errorf("list output missing %q:\n%s", want, te.out.String())
		}
	}
}

func TestHandleListFilters(t *testing.T) {
	tests := []struct {
		name     string
		args     Args
		wantShow int
		wantErr  bool
	}{
		{"by id", Args{Category: "1"}, 2, false},
		{"by slug", Args{Category: "programming"}, 1, false},
		{"by title", Args{Category: "engineering"}, 2, false},
		{"all", Args{Category: "All"}, 3, false},
		{"unknown id fails open", Args{Category: "42"}, 3, false},
		{"search and category", Args{Category: "1", Search: "matlab"}, 1, false},
		{"unknown name", Args{Category: "cooking"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEnv(t)
			tt.args.JSON = true
			err := HandleList(context.Background(), te.Env, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			resp, payload := decodeResponse(t, te.out.Bytes())
			if !resp.Success {
				t.Fatalf("response not successful: %+v", resp)
			}
			if got := int(payload["shown"].(float64)); got != tt.wantShow {
				t.Errorf("shown = %d, want %d", got, tt.wantShow)
			}
			if got := int(payload["count"].(float64)); got != 3 {
				t.Errorf("count = %d, want 3", got)
			}
		})
	}
}

func TestHandleListEmpty(t *testing.T) {
	te := newTestEnv(t)
	if err := HandleList(context.Background(), te.Env, Args{Search: "zzz"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(te.out.String(), te.Bundle.NoResults) {
		t.Errorf("output = %q", te.out.String())
	}
}

func TestHandleShow(t *testing.T) {
	te := newTestEnv(t)

	if err := HandleShow(context.Background(), te.Env, Args{Slug: "autocad"}); err != nil {
		t.Fatalf("show: %v", err)
	}
	out := te.out.String()
	for _, want := range []string{
		"AutoCAD 2024",
		"Autodesk",
		"8,400",
		"2024-03-20",
		"https://dl.example.edu/autocad/2024.1.part2.rar",
		"Run setup.exe as administrator.",
		te.server.URL + "/media/covers/autocad.png",
		te.Bundle.FallbackGuide,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q", want)
		}
	}
}

func TestHandleShowJSON(t *testing.T) {
	te := newTestEnv(t)

	if err := HandleShow(context.Background(), te.Env, Args{Slug: "autocad", JSON: true}); err != nil {
		t.Fatalf("show: %v", err)
	}
	_, payload := decodeResponse(t, te.out.Bytes())
	if payload["slug"] != "autocad" {
		t.Errorf("slug = %v", payload["slug"])
	}
	if rating := payload["rating"].(float64); rating != 4.7 {
		t.Errorf("rating = %v, want 4.7", rating)
	}
}

func TestHandleShowNotFound(t *testing.T) {
	te := newTestEnv(t)

	err := HandleShow(context.Background(), te.Env, Args{Slug: "vscode"})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
	if !strings.Contains(err.Error(), te.Bundle.NotFound) {
		t.Errorf("error = %q, want locale text", err.Error())
	}
	if GetExitCode(err) != ExitFailure {
		t.Errorf("exit code = %d", GetExitCode(err))
	}
}

func TestHighlightJSON(t *testing.T) {
	src := `{"title": "MATLAB", "count": 3}`
	got := highlightJSON(src, true)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", got)
	}
	if !strings.Contains(got, "MATLAB") {
		t.Errorf("highlighted output lost content: %q", got)
	}
}

func TestHandleAsk(t *testing.T) {
	te := newTestEnv(t)

	if err := HandleAsk(context.Background(), te.Env, Args{Query: "is it free?"}); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if te.asker.context != "" {
		t.Errorf("context = %q, want empty", te.asker.context)
	}
	if !strings.Contains(te.out.String(), "reply to is it free?") {
		t.Errorf("output = %q", te.out.String())
	}
}

func TestHandleAskWithSlug(t *testing.T) {
	te := newTestEnv(t)

	err := HandleAsk(context.Background(), te.Env, Args{Query: "which part first?", Slug: "autocad", JSON: true})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !strings.HasPrefix(te.asker.context, `User is viewing the software "AutoCAD 2024".`) {
		t.Errorf("context = %q", te.asker.context)
	}
	_, payload := decodeResponse(t, te.out.Bytes())
	if payload["reply"] != "reply to which part first?" || payload["slug"] != "autocad" {
		t.Errorf("payload = %v", payload)
	}

	te.asker.calls = 0
	err = HandleAsk(context.Background(), te.Env, Args{Query: "q", Slug: "missing"})
	if err == nil || te.asker.calls != 0 {
		t.Errorf("unknown slug should fail before asking (err=%v calls=%d)", err, te.asker.calls)
	}
}

// scripted returns a readFunc that replays lines and then reports EOF.
func scripted(lines ...string) readFunc {
	return func(string) (string, error) {
		if len(lines) == 0 {
			return "", io.EOF
		}
		line := lines[0]
		lines = lines[1:]
		return line, nil
	}
}

func TestRunChat(t *testing.T) {
	te := newTestEnv(t)
	conv := newConversation(te.Env, "")

	err := runChat(context.Background(), te.Env, conv, scripted("", "/help", "hello", "/history", "/exit", "never sent"))
	if err != nil {
		t.Fatalf("runChat: %v", err)
	}
	if te.asker.calls != 1 || te.asker.query != "hello" {
		t.Errorf("asker calls=%d query=%q", te.asker.calls, te.asker.query)
	}
	out := te.out.String()
	for _, want := range []string{te.Bundle.Greeting, "/context", "reply to hello", "(3 messages)", "[user] hello"} {
		if !strings.Contains(out, want) {
			t.Errorf("chat output missing %q:\n%s", want, out)
		}
	}
	if conv.Len() != 3 {
		t.Errorf("transcript length = %d, want 3", conv.Len())
	}
}

func TestRunChatEOFAndCancel(t *testing.T) {
	te := newTestEnv(t)

	if err := runChat(context.Background(), te.Env, newConversation(te.Env, ""), scripted()); err != nil {
		t.Errorf("EOF should end chat cleanly: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := runChat(ctx, te.Env, newConversation(te.Env, ""), scripted("hello")); err != nil {
		t.Errorf("cancelled chat: %v", err)
	}
	if te.asker.calls != 0 {
		t.Errorf("cancelled chat asked %d times", te.asker.calls)
	}

	failing := func(string) (string, error) { return "", errors.New("tty gone") }
	if err := runChat(context.Background(), te.Env, newConversation(te.Env, ""), failing); err == nil {
		t.Error("read failure should be reported")
	}
}

func TestHandleTheme(t *testing.T) {
	te := newTestEnv(t)

	if err := HandleTheme(te.Env, Args{Subcommand: "show"}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(te.out.String()) != "light" {
		t.Errorf("show = %q, want light", te.out.String())
	}

	if err := HandleTheme(te.Env, Args{Subcommand: "toggle"}); err != nil {
		t.Fatal(err)
	}
	if saved, _ := te.Store.Get(prefs.KeyTheme); saved != "dark" {
		t.Errorf("saved = %q, want dark", saved)
	}

	te.out.Reset()
	if err := HandleTheme(te.Env, Args{Subcommand: "light", JSON: true}); err != nil {
		t.Fatal(err)
	}
	_, payload := decodeResponse(t, te.out.Bytes())
	if payload["theme"] != "light" || payload["changed"] != true {
		t.Errorf("payload = %v", payload)
	}

	te.Store = nil
	if err := HandleTheme(te.Env, Args{Subcommand: "dark"}); err == nil {
		t.Error("saving without a store should fail")
	}
}

func TestHandleConfig(t *testing.T) {
	te := newTestEnv(t)
	te.Config.Assistant.APIKey = "sk-secret"

	if err := HandleConfig(te.Env, Args{Subcommand: "show"}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(te.out.String(), "sk-secret") {
		t.Error("config show leaked the API key")
	}

	te.out.Reset()
	if err := HandleConfig(te.Env, Args{Subcommand: "path"}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(te.out.String()) != te.ConfigPath {
		t.Errorf("path = %q", te.out.String())
	}

	if err := HandleConfig(te.Env, Args{Subcommand: "init"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(te.ConfigPath); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if err := HandleConfig(te.Env, Args{Subcommand: "init"}); err == nil {
		t.Error("init over an existing file should fail without --force")
	}
	if err := HandleConfig(te.Env, Args{Subcommand: "init", Force: true}); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, "show", &NotFoundError{Resource: "software", ID: "x"}, true)
	resp, _ := decodeResponse(t, buf.Bytes())
	if resp.Success || resp.Error == nil || resp.Command != "show" {
		t.Errorf("resp = %+v", resp)
	}

	buf.Reset()
	DisplayError(&buf, "show", errors.New("boom"), false)
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestDisplayErrorSkipsReported(t *testing.T) {
	var buf bytes.Buffer
	err := &ReportedError{Err: errors.New("already shown")}
	DisplayError(&buf, "doctor", err, false)
	DisplayError(&buf, "doctor", err, true)
	if buf.Len() != 0 {
		t.Errorf("reported error printed again: %q", buf.String())
	}
	if GetExitCode(err) != ExitFailure {
		t.Errorf("exit code = %d", GetExitCode(err))
	}
}

// =============================================================================
// CONFIRM TESTS (confirm.go)
// =============================================================================

func TestRequireConfirmation(t *testing.T) {
	tests := []struct {
		name        string
		args        Args
		interactive bool
		input       string
		want        bool
		wantErr     bool
	}{
		{"force skips prompt", Args{Force: true}, false, "", true, false},
		{"json needs force", Args{JSON: true}, true, "y\n", false, true},
		{"no terminal", Args{}, false, "y\n", false, true},
		{"yes", Args{}, true, "y\n", true, false},
		{"full yes", Args{}, true, " YES \n", true, false},
		{"no", Args{}, true, "n\n", false, false},
		{"empty answer declines", Args{}, true, "\n", false, false},
		{"eof declines", Args{}, true, "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			env := &Env{In: strings.NewReader(tt.input), Out: out, Interactive: tt.interactive}
			got, err := RequireConfirmation(env, tt.args, "overwrite it")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("confirmed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleConfigInitPrompts(t *testing.T) {
	te := newTestEnv(t)
	if err := HandleConfig(te.Env, Args{Subcommand: "init"}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(te.ConfigPath, []byte("# mine\n"), 0600); err != nil {
		t.Fatal(err)
	}

	te.Interactive = true
	te.In = strings.NewReader("n\n")
	if err := HandleConfig(te.Env, Args{Subcommand: "init"}); err != nil {
		t.Fatalf("declined init: %v", err)
	}
	data, _ := os.ReadFile(te.ConfigPath)
	if string(data) != "# mine\n" {
		t.Error("declining overwrote the file")
	}

	te.In = strings.NewReader("y\n")
	if err := HandleConfig(te.Env, Args{Subcommand: "init"}); err != nil {
		t.Fatalf("confirmed init: %v", err)
	}
	data, _ = os.ReadFile(te.ConfigPath)
	if string(data) == "# mine\n" {
		t.Error("confirming did not overwrite the file")
	}
}

// =============================================================================
// DOCTOR TESTS (doctor.go)
// =============================================================================

func TestHandleDoctor(t *testing.T) {
	te := newTestEnv(t)

	if err := HandleDoctor(context.Background(), te.Env, Args{JSON: true}); err != nil {
		t.Fatalf("HandleDoctor: %v", err)
	}
	resp, payload := decodeResponse(t, te.out.Bytes())
	if !resp.Success {
		t.Fatalf("resp = %+v", resp)
	}
	summary, _ := payload["summary"].(map[string]interface{})
	if summary["failed"] != float64(0) || summary["healthy"] != true {
		t.Errorf("summary = %v", summary)
	}
	// Memory preferences and a missing API key are warnings only.
	if summary["warned"] != float64(2) {
		t.Errorf("warned = %v", summary["warned"])
	}

	checks, _ := payload["checks"].([]interface{})
	if len(checks) != 5 {
		t.Fatalf("got %d checks", len(checks))
	}
	first, _ := checks[0].(map[string]interface{})
	if first["name"] != "Config Valid" || first["status"] != "pass" {
		t.Errorf("first check = %v", first)
	}
}

func TestHandleDoctorCatalogDown(t *testing.T) {
	te := newTestEnv(t)
	te.server.Status.Store(502)

	err := HandleDoctor(context.Background(), te.Env, Args{})
	var reported *ReportedError
	if !errors.As(err, &reported) {
		t.Fatalf("err = %v, want ReportedError", err)
	}
	if !strings.Contains(te.out.String(), "Catalog at") {
		t.Errorf("output = %q", te.out.String())
	}
	if !strings.Contains(te.out.String(), "1 failed") {
		t.Errorf("summary missing: %q", te.out.String())
	}
}

func TestCheckAssistantKey(t *testing.T) {
	tests := []struct {
		provider, key string
		want          CheckStatus
	}{
		{"gemini", "", CheckWarn},
		{"gemini", "AIza-test", CheckPass},
		{"openrouter", "bad-key", CheckWarn},
		{"openrouter", "sk-or-v1-abc", CheckPass},
	}
	for _, tt := range tests {
		te := newTestEnv(t)
		te.Config.Assistant.Provider = tt.provider
		te.Config.Assistant.APIKey = tt.key
		if got := checkAssistantKey(te.Env).Status; got != tt.want {
			t.Errorf("%s/%q: status = %v, want %v", tt.provider, tt.key, got, tt.want)
		}
	}
}

func TestCheckAssistantKeyProviderDown(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		ready bool
		want  CheckStatus
	}{
		{"key but no provider", "AIza-test", false, CheckFail},
		{"key and provider", "AIza-test", true, CheckPass},
		{"no key", "", false, CheckWarn},
	}
	for _, tt := range tests {
		te := newTestEnv(t)
		te.Config.Assistant.Provider = "gemini"
		te.Config.Assistant.APIKey = tt.key
		te.Assistant = &configuredAsker{ready: tt.ready}

		check := checkAssistantKey(te.Env)
		if check.Status != tt.want {
			t.Errorf("%s: status = %v, want %v (%s)", tt.name, check.Status, tt.want, check.Message)
		}
		if tt.want == CheckFail && check.Fix == "" {
			t.Errorf("%s: failing check has no fix", tt.name)
		}
	}
}

// =============================================================================
// TERMINAL TESTS (terminal.go)
// =============================================================================

func TestWantColor(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		tty  bool
		want bool
	}{
		{"tty", nil, true, true},
		{"pipe", nil, false, false},
		{"no color beats tty", map[string]string{"NO_COLOR": "1"}, true, false},
		{"no color beats force", map[string]string{"NO_COLOR": "1", "FORCE_COLOR": "1"}, true, false},
		{"force on pipe", map[string]string{"FORCE_COLOR": "1"}, false, true},
		{"force beats dumb", map[string]string{"FORCE_COLOR": "1", "TERM": "dumb"}, false, true},
		{"dumb terminal", map[string]string{"TERM": "dumb"}, true, false},
	}
	for _, tt := range tests {
		getenv := func(k string) string { return tt.env[k] }
		if got := wantColor(getenv, tt.tty); got != tt.want {
			t.Errorf("%s: wantColor = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClampWidth(t *testing.T) {
	tests := []struct {
		w    int
		err  error
		want int
	}{
		{120, nil, 120},
		{0, nil, fallbackWidth},
		{200, errors.New("not a terminal"), fallbackWidth},
		{12, nil, narrowestWidth},
		{narrowestWidth, nil, narrowestWidth},
	}
	for _, tt := range tests {
		if got := clampWidth(tt.w, tt.err); got != tt.want {
			t.Errorf("clampWidth(%d, %v) = %d, want %d", tt.w, tt.err, got, tt.want)
		}
	}
}
