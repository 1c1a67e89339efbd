package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sandevgo/heroguide/configs"
	"github.com/sandevgo/heroguide/internal/config"
	"github.com/sandevgo/heroguide/internal/storage/jsonfile"
)

// SaveEnvStep writes the collected configuration to .env file
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}

	if err := writeEnv(config.GetRuntimePath(), state.EnvVars); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

// writeEnv refuses to overwrite an existing .env.
func writeEnv(dir string, vars map[string]string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := godotenv.Marshal(vars)
	if err != nil {
		return fmt.Errorf("failed to encode .env: %w", err)
	}

	if err := os.WriteFile(envPath, []byte(content+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write .env: %w", err)
	}
	return nil
}

// SeedKnowledgeStep installs the bundled hero database unless one already exists.
type SeedKnowledgeStep struct {
	err     error
	done    bool
	skipped bool
}

func NewSeedKnowledgeStep() Step {
	return &SeedKnowledgeStep{}
}

func (s *SeedKnowledgeStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SeedKnowledgeStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.done {
		return nil, nil
	}

	path := filepath.Join(config.GetRuntimePath(), configs.HeroesFile)
	seeded, err := seedKnowledge(context.Background(), path)
	if err != nil {
		s.err = err
		return s, nil
	}

	s.skipped = !seeded
	s.done = true
	return nil, nil
}

func (s *SeedKnowledgeStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.skipped {
		return "Existing hero database kept.\n"
	}
	if s.done {
		return "Hero database initialized successfully!\n"
	}
	return "Initializing hero database...\n"
}

func seedKnowledge(ctx context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := configs.FS.ReadFile(configs.HeroesFile)
	if err != nil {
		return false, fmt.Errorf("failed to read embedded %s: %w", configs.HeroesFile, err)
	}
	heroes, err := jsonfile.Decode(data)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create runtime directory: %w", err)
	}
	if err := jsonfile.NewFileStore(path).Save(ctx, heroes); err != nil {
		return false, err
	}
	return true, nil
}
