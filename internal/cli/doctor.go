// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - health checks for softhub.
//
// Command: doctor
// Aliases: diag
//
// Checks performed:
//  1. Config Valid       - configuration validates, file present or defaults
//  2. Catalog Reachable  - the portal answers the category listing
//  3. Assistant Key      - an API key is configured and its provider started
//  4. Preferences        - the preference file is writable
//  5. Log File           - the log directory is writable
//
// Exit codes: 0 when nothing failed, 1 otherwise. Warnings do not fail.

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iust/softhub/internal/prefs"
)

// doctorPingTimeout bounds the catalog reachability check.
const doctorPingTimeout = 10 * time.Second

// CheckStatus is the outcome of one health check.
type CheckStatus int

const (
	CheckPass CheckStatus = iota
	CheckWarn
	CheckFail
)

// String returns the lowercase status name used in JSON output.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the rendered status marker.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return SuccessStyle.Render("[OK]")
	case CheckWarn:
		return WarningStyle.Render("[!!]")
	case CheckFail:
		return ErrorStyle.Render("[FAIL]")
	default:
		return "?"
	}
}

// HealthCheck is a single check result.
type HealthCheck struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"-"`
	Message string      `json:"message"`
	Fix     string      `json:"fix,omitempty"`
}

// Render formats the check for the terminal.
func (c *HealthCheck) Render() string {
	line := fmt.Sprintf("%s %s", c.Status.Symbol(), c.Message)
	if c.Status != CheckPass && c.Fix != "" {
		line += "\n     " + DimStyle.Render("-> "+c.Fix)
	}
	return line
}

// Pinger is implemented by catalog sources that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) (int, error)
}

// Configurer is implemented by assistants that can report whether a
// provider was actually constructed.
type Configurer interface {
	Configured() bool
}

type doctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Fix     string `json:"fix,omitempty"`
}

type doctorSummary struct {
	Passed  int  `json:"passed"`
	Warned  int  `json:"warned"`
	Failed  int  `json:"failed"`
	Healthy bool `json:"healthy"`
}

type doctorOutput struct {
	Checks  []doctorCheck `json:"checks"`
	Summary doctorSummary `json:"summary"`
}

// HandleDoctor runs every health check and prints the results.
func HandleDoctor(ctx context.Context, env *Env, args Args) error {
	checks := runAllChecks(ctx, env)

	var sum doctorSummary
	for _, c := range checks {
		switch c.Status {
		case CheckPass:
			sum.Passed++
		case CheckWarn:
			sum.Warned++
		case CheckFail:
			sum.Failed++
		}
	}
	sum.Healthy = sum.Failed == 0

	var failure error
	if sum.Failed > 0 {
		failure = fmt.Errorf("%d health check(s) failed", sum.Failed)
	}

	if args.JSON {
		out := doctorOutput{Checks: make([]doctorCheck, 0, len(checks)), Summary: sum}
		for _, c := range checks {
			out.Checks = append(out.Checks, doctorCheck{
				Name:    c.Name,
				Status:  c.Status.String(),
				Message: c.Message,
				Fix:     c.Fix,
			})
		}
		resp := NewJSONResponse("doctor", out)
		if failure != nil {
			msg := failure.Error()
			resp.Success = false
			resp.Error = &msg
		}
		if err := resp.Write(env.Out); err != nil {
			return err
		}
		if failure != nil {
			return &ReportedError{Err: failure}
		}
		return nil
	}

	fmt.Fprintln(env.Out, TitleStyle.Render("softhub doctor"))
	fmt.Fprintln(env.Out, RenderSeparator(41))
	for _, c := range checks {
		fmt.Fprintln(env.Out, c.Render())
	}
	fmt.Fprintln(env.Out, RenderSeparator(41))

	parts := []string{fmt.Sprintf("%d passed", sum.Passed)}
	if sum.Warned > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%d warning", sum.Warned)))
	}
	if sum.Failed > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("%d failed", sum.Failed)))
	}
	fmt.Fprintln(env.Out, strings.Join(parts, ", "))

	if failure != nil {
		return &ReportedError{Err: failure}
	}
	return nil
}

func runAllChecks(ctx context.Context, env *Env) []*HealthCheck {
	return []*HealthCheck{
		checkConfigValid(env),
		checkCatalogReachable(ctx, env),
		checkAssistantKey(env),
		checkPreferences(env),
		checkLogFile(env),
	}
}

func checkConfigValid(env *Env) *HealthCheck {
	check := &HealthCheck{Name: "Config Valid"}

	if err := env.Config.Validate(); err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Config invalid: %s", err)
		check.Fix = "Run: softhub config init --force"
		return check
	}

	if env.ConfigPath == "" {
		check.Status = CheckPass
		check.Message = "Config valid (using defaults)"
		return check
	}
	if _, err := os.Stat(env.ConfigPath); os.IsNotExist(err) {
		check.Status = CheckPass
		check.Message = "Config valid (using defaults)"
		return check
	}

	check.Status = CheckPass
	check.Message = fmt.Sprintf("Config valid (%s)", env.ConfigPath)
	return check
}

func checkCatalogReachable(ctx context.Context, env *Env) *HealthCheck {
	check := &HealthCheck{Name: "Catalog Reachable"}
	origin := env.Config.Catalog.BaseURL

	pinger, ok := env.Catalog.(Pinger)
	if !ok {
		check.Status = CheckWarn
		check.Message = "Catalog reachability cannot be checked"
		return check
	}

	ctx, cancel := context.WithTimeout(ctx, doctorPingTimeout)
	defer cancel()

	n, err := pinger.Ping(ctx)
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Catalog at %s unreachable: %s", origin, err)
		check.Fix = "Check --api or SOFTHUB_API_URL"
		return check
	}
	if n == 0 {
		check.Status = CheckWarn
		check.Message = fmt.Sprintf("Catalog at %s has no categories", origin)
		return check
	}

	check.Status = CheckPass
	check.Message = fmt.Sprintf("Catalog reachable (%d categories)", n)
	return check
}

func checkAssistantKey(env *Env) *HealthCheck {
	check := &HealthCheck{Name: "Assistant Key"}
	a := env.Config.Assistant

	if a.APIKey == "" {
		check.Status = CheckWarn
		check.Message = "No assistant API key (the assistant will only explain how to add one)"
		check.Fix = "Set GEMINI_API_KEY or SOFTHUB_ASSISTANT_KEY"
		return check
	}
	if c, ok := env.Assistant.(Configurer); ok && !c.Configured() {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Assistant key is set but the %s provider could not start", a.Provider)
		check.Fix = "Run with --verbose and check the log for the provider error"
		return check
	}
	if a.Provider == "openrouter" && !strings.HasPrefix(a.APIKey, "sk-or-") {
		check.Status = CheckWarn
		check.Message = "OpenRouter key format may be invalid"
		check.Fix = "Get a key from https://openrouter.ai/keys"
		return check
	}

	check.Status = CheckPass
	check.Message = fmt.Sprintf("Assistant configured (%s, %s)", a.Provider, a.Model)
	return check
}

func checkPreferences(env *Env) *HealthCheck {
	check := &HealthCheck{Name: "Preferences"}

	fs, ok := env.Store.(*prefs.FileStore)
	if !ok {
		check.Status = CheckWarn
		check.Message = "Preferences are kept in memory and will not persist"
		return check
	}
	if err := checkWritable(filepath.Dir(fs.Path())); err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Preference directory not writable: %s", err)
		check.Fix = fmt.Sprintf("Check permissions on %s", filepath.Dir(fs.Path()))
		return check
	}

	check.Status = CheckPass
	check.Message = fmt.Sprintf("Preferences writable (%s)", fs.Path())
	return check
}

func checkLogFile(env *Env) *HealthCheck {
	check := &HealthCheck{Name: "Log File"}
	path := env.Config.Logging.File

	if path == "" {
		check.Status = CheckPass
		check.Message = "Logging to stderr"
		return check
	}
	if err := checkWritable(filepath.Dir(path)); err != nil {
		check.Status = CheckWarn
		check.Message = fmt.Sprintf("Log directory not writable: %s", err)
		check.Fix = "Set SOFTHUB_LOG_FILE to a writable path"
		return check
	}

	check.Status = CheckPass
	check.Message = fmt.Sprintf("Logging to %s", path)
	return check
}

// checkWritable creates dir if needed and writes a throwaway file in it.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
