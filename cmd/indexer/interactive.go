package main

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var errPromptAborted = errors.New("user aborted")

// urlPrompt is a single-line bubbletea prompt that only completes once the
// trimmed input passes validate.
type urlPrompt struct {
	input    textinput.Model
	title    lipgloss.Style
	problem  lipgloss.Style
	question string
	validate func(string) error

	value   string
	errMsg  string
	done    bool
	aborted bool
}

func newURLPrompt(r *lipgloss.Renderer, question, placeholder string, validate func(string) error) urlPrompt {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = "> "
	in.Focus()

	return urlPrompt{
		input:    in,
		title:    r.NewStyle().Bold(true),
		problem:  r.NewStyle().Foreground(lipgloss.Color("1")),
		question: question,
		validate: validate,
	}
}

func (p urlPrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (p urlPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			p.aborted = true
			return p, tea.Quit
		case tea.KeyEnter:
			val := strings.TrimSpace(p.input.Value())
			if p.validate != nil {
				if err := p.validate(val); err != nil {
					p.errMsg = err.Error()
					return p, nil
				}
			}
			p.value = val
			p.done = true
			return p, tea.Quit
		}
	}

	p.errMsg = ""
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p urlPrompt) View() string {
	if p.done || p.aborted {
		return ""
	}
	lines := []string{p.title.Render(p.question), p.input.View()}
	if p.errMsg != "" {
		lines = append(lines, p.problem.Render(p.errMsg))
	}
	return strings.Join(lines, "\n") + "\n"
}

// promptForkURL asks for the URL of the user's fork of the Geode index,
// drawing the prompt on w.
func promptForkURL(in io.Reader, w io.Writer) (string, error) {
	p := newURLPrompt(lipgloss.NewRenderer(w), "Enter your forked URL", "git@github.com:you/indexer.git", validateForkURL)
	final, err := tea.NewProgram(p, tea.WithInput(in), tea.WithOutput(w)).Run()
	if err != nil {
		return "", err
	}
	res := final.(urlPrompt)
	if res.aborted {
		return "", errPromptAborted
	}
	return res.value, nil
}

// validateForkURL rejects URLs from which no repository name can be read.
func validateForkURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("fork URL is required")
	}
	switch name := repoNameFromURL(s); name {
	case "", ".", "/":
		return fmt.Errorf("cannot infer repository name from URL %q", s)
	}
	return nil
}

// repoNameFromURL returns the repository name of an SSH (git@host:org/repo.git),
// URL-style or local path remote.
func repoNameFromURL(url string) string {
	url = strings.TrimRight(url, "/")
	if i := strings.LastIndex(url, ":"); i != -1 && !strings.Contains(url, "://") {
		url = url[i+1:]
	}
	return strings.TrimSuffix(path.Base(url), ".git")
}
