package tests

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openacuity/acuity/internal/config"
	"github.com/openacuity/acuity/internal/dom"
	"github.com/openacuity/acuity/internal/engine"
	"github.com/openacuity/acuity/internal/server"
	"github.com/openacuity/acuity/pkg/protocol"
)

const samplePage = `<html><body>
<h1>Store</h1>
<h3>Deals</h3>
<img src="hero.png">
<img src="divider.png" alt="">
<form>
  <label for="email">Email</label>
  <input id="email" type="email">
  <input id="phone" type="tel">
</form>
<p style="color: #777777; background-color: #808080">Fine print</p>
</body></html>`

func TestEngineE2E(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "acuity-e2e-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := config.Load()
	cfg.PrefsDBPath = filepath.Join(tmpDir, "prefs.db")
	cfg.SocketPath = filepath.Join(tmpDir, "daemon.sock")

	ctx := context.Background()
	eng, err := engine.New(cfg, engine.Options{})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	if err := eng.Init(ctx); err != nil {
		t.Fatalf("engine.Init: %v", err)
	}
	defer eng.Dispose()

	t.Run("Audit_FullPipeline", func(t *testing.T) {
		doc, err := dom.ParseString(samplePage)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}

		report := eng.RunAudit(doc)

		// heading skip (moderate), missing alt (critical),
		// unlabeled phone input (serious), contrast fail (serious)
		if report.Summary.Critical != 1 {
			t.Errorf("critical = %d, want 1", report.Summary.Critical)
		}
		if report.Summary.Serious != 2 {
			t.Errorf("serious = %d, want 2", report.Summary.Serious)
		}
		if report.Summary.Moderate != 1 {
			t.Errorf("moderate = %d, want 1", report.Summary.Moderate)
		}

		// weight 4+3+3+2 = 12, score 100-24 = 76
		if report.Score != 76 {
			t.Errorf("score = %d, want 76", report.Score)
		}

		markdown := eng.GenerateReport(report)
		if !strings.Contains(markdown, "**Score:** 76/100") {
			t.Error("markdown missing score line")
		}
		if !strings.Contains(markdown, "## Next Steps") {
			t.Error("markdown missing footer")
		}
	})

	t.Run("Contrast_AdHocCheck", func(t *testing.T) {
		result, err := eng.CheckContrastHex("#000000", "#FFFFFF")
		if err != nil {
			t.Fatalf("CheckContrastHex: %v", err)
		}
		if result.Level != "AAA" {
			t.Errorf("black on white level = %s, want AAA", result.Level)
		}

		if _, err := eng.CheckContrastHex("#XYZ123", "#FFFFFF"); err == nil {
			t.Error("malformed color should fail")
		}
	})

	t.Run("Daemon_OverSocket", func(t *testing.T) {
		srv := server.New(cfg.SocketPath, eng)
		if err := srv.Start(ctx); err != nil {
			t.Fatalf("server.Start: %v", err)
		}
		defer srv.Shutdown()

		client, err := server.Dial(ctx, cfg.SocketPath)
		if err != nil {
			t.Fatalf("Dial: %v", err)
		}
		defer client.Close()

		var health protocol.HealthResult
		if err := client.Call(ctx, protocol.MethodHealth, nil, &health); err != nil {
			t.Fatalf("health: %v", err)
		}
		if health.Status != "ok" {
			t.Errorf("status = %q, want ok", health.Status)
		}

		var result protocol.AuditResult
		params := protocol.AuditRunParams{HTML: samplePage}
		if err := client.Call(ctx, protocol.MethodAuditRun, params, &result); err != nil {
			t.Fatalf("audit.run: %v", err)
		}
		if result.Score != 76 {
			t.Errorf("score over socket = %d, want 76", result.Score)
		}
	})

	t.Run("Prefs_PersistAcrossEngines", func(t *testing.T) {
		p, err := eng.Preferences()
		if err != nil {
			t.Fatalf("Preferences: %v", err)
		}
		p.Motion = "reduced"
		if err := eng.SetPreferences(p); err != nil {
			t.Fatalf("SetPreferences: %v", err)
		}
		if err := eng.Dispose(); err != nil {
			t.Fatalf("Dispose: %v", err)
		}

		second, err := engine.New(cfg, engine.Options{})
		if err != nil {
			t.Fatalf("engine.New: %v", err)
		}
		if err := second.Init(ctx); err != nil {
			t.Fatalf("engine.Init: %v", err)
		}
		defer second.Dispose()

		got, err := second.Preferences()
		if err != nil {
			t.Fatalf("Preferences: %v", err)
		}
		if got.Motion != "reduced" {
			t.Errorf("Motion = %q, want reduced after restart", got.Motion)
		}
	})
}
