package commands

import (
	"os"
	"path/filepath"

	"github.com/belegwerk-dev/belegwerk/internal/config"
	"github.com/belegwerk-dev/belegwerk/internal/console"
	"github.com/belegwerk-dev/belegwerk/internal/desktop"
)

// configPath prefers a config.yaml in the working directory over the one in
// the home directory, so a project folder can carry its own settings.
func configPath() string {
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return config.DefaultPath()
}

// accountsPath returns the chart-of-accounts file next to the config file.
func accountsPath(cfgPath string) string {
	return filepath.Join(filepath.Dir(cfgPath), "accounts.csv")
}

// ensureAPIKey makes sure a Gemini API key is present in the environment,
// prompting for one if needed. Returns false when the operator quits.
func ensureAPIKey(c *console.Console) bool {
	if os.Getenv("GOOGLE_API_KEY") != "" || os.Getenv("GEMINI_API_KEY") != "" {
		return true
	}

	const url = "https://aistudio.google.com/"
	c.Rule()
	c.Warnf("KEIN GOOGLE API KEY GEFUNDEN")
	c.Rule()
	c.Printf("  1. Gehe zu: %s\n", url)
	c.Printf("  2. Melde dich mit deinem Google-Konto an.\n")
	c.Printf("  3. Klicke auf 'Get API Key' oder gehe zu den API-Einstellungen.\n")
	c.Printf("  4. Erstelle einen neuen API Key oder kopiere einen bestehenden.\n")
	c.Rule()

	if c.Confirm("\n  Soll " + url + " im Browser geöffnet werden?") {
		c.Printf("  Öffne %s im Browser...\n", url)
		desktop.OpenURL(url)
	}
	c.Printf("\n")

	for {
		key := c.Prompt("Google API Key (GOOGLE_API_KEY oder GEMINI_API_KEY) [oder 'q' zum Beenden]: ")
		if console.IsQuit(key) || c.EOF() {
			return false
		}
		if key != "" {
			os.Setenv("GOOGLE_API_KEY", key)
			return true
		}
		c.Warnf("Bitte gib einen gültigen API Key ein oder 'q' zum Beenden.")
	}
}

// ensureCompanyName resolves the company name from the environment, the
// persisted config, or an interactive prompt. Returns "" when the operator
// quits.
func ensureCompanyName(c *console.Console, cfg *config.Config) string {
	if name := os.Getenv("COMPANY_NAME"); name != "" {
		return name
	}
	if cfg.CompanyName != "" {
		return cfg.CompanyName
	}

	for {
		name := c.Prompt("Firmenname (COMPANY_NAME) [oder 'q' zum Beenden]: ")
		if console.IsQuit(name) || c.EOF() {
			return ""
		}
		if name != "" {
			return name
		}
		c.Warnf("Bitte gib einen Firmennamen ein oder 'q' zum Beenden.")
	}
}
