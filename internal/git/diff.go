// Package git narrows scenario evaluation to the files touched in the working
// tree, for use in pre-commit hooks and review pipelines.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dotcommander/cognishield/internal/scenario"
)

// GetStagedFiles returns absolute paths of staged scenario files under
// rootPath. Outside a git repository it returns an empty slice.
func GetStagedFiles(rootPath string, patterns []string) ([]string, error) {
	if !IsGitRepo(rootPath) {
		return []string{}, nil
	}

	output, err := run(rootPath, "diff", "--name-only", "--relative", "--staged")
	if err != nil {
		return nil, err
	}
	return filterScenarioFiles(output, rootPath, patterns), nil
}

// GetChangedFiles returns absolute paths of scenario files with uncommitted
// changes, staged or not. In a repository without commits every tracked
// scenario file counts as changed.
func GetChangedFiles(rootPath string, patterns []string) ([]string, error) {
	if !IsGitRepo(rootPath) {
		return []string{}, nil
	}

	if _, err := run(rootPath, "rev-parse", "HEAD"); err != nil {
		output, err := run(rootPath, "ls-files")
		if err != nil {
			return nil, err
		}
		return filterScenarioFiles(output, rootPath, patterns), nil
	}

	output, err := run(rootPath, "diff", "--name-only", "--relative", "HEAD")
	if err != nil {
		return nil, err
	}
	return filterScenarioFiles(output, rootPath, patterns), nil
}

// IsGitRepo reports whether rootPath is inside a git work tree.
func IsGitRepo(rootPath string) bool {
	_, err := run(rootPath, "rev-parse", "--git-dir")
	return err == nil
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

// filterScenarioFiles keeps the listed paths that still exist and match the
// scenario patterns, returned as absolute paths.
func filterScenarioFiles(gitOutput, rootPath string, patterns []string) []string {
	files := []string{}
	for _, line := range strings.Split(strings.TrimSpace(gitOutput), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !scenario.Matches(line, patterns) {
			continue
		}
		absPath, err := filepath.Abs(filepath.Join(rootPath, line))
		if err != nil {
			continue
		}
		// git reports deletions too
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			continue
		}
		files = append(files, absPath)
	}
	return files
}
